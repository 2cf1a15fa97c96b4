// Package overlay draws one block of text over another without disturbing
// the styling of the cells it does not cover.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor selects where the foreground is placed.
type Anchor int

const (
	// Center places the foreground in the middle of the area.
	Center Anchor = iota
	// Bottom centers the foreground horizontally against the bottom edge.
	Bottom
	// BottomRight places the foreground against the bottom right corner.
	BottomRight
)

// Options controls placement.
type Options struct {
	Width  int
	Height int
	Anchor Anchor

	// MarginX and MarginY keep the foreground away from the anchored edges.
	// Center ignores them.
	MarginX int
	MarginY int
}

// Place splices fg into bg. Background lines are padded to Height; cells to
// the left and right of the foreground keep their escape sequences.
func Place(fg, bg string, opts Options) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < opts.Height {
		bgLines = append(bgLines, "")
	}

	x, y := origin(opts, lipgloss.Width(fg), len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	var right string
	if end := x + ansi.StringWidth(fg); end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

// origin returns the top-left cell of the foreground, never negative.
func origin(opts Options, width, height int) (x, y int) {
	switch opts.Anchor {
	case Bottom:
		x = (opts.Width - width) / 2
		y = opts.Height - height - opts.MarginY
	case BottomRight:
		x = opts.Width - width - opts.MarginX
		y = opts.Height - height - opts.MarginY
	default:
		x = (opts.Width - width) / 2
		y = (opts.Height - height) / 2
	}
	return max(x, 0), max(y, 0)
}
