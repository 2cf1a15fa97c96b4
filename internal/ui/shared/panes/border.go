// Package panes contains bordered pane components used to frame the
// playground sidebar and demo areas.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/syntaxview/internal/ui/styles"
)

// Rounded border characters.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures a bordered pane. Width and Height include the
// border.
type BorderConfig struct {
	Content string
	Width   int
	Height  int

	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string

	Focused            bool
	TitleColor         lipgloss.TerminalColor
	BorderColor        lipgloss.TerminalColor
	FocusedBorderColor lipgloss.TerminalColor
}

// BorderedPane renders content inside a rounded border with titles
// embedded in the top and bottom edges. Content lines longer than the inner
// width are cut, not wrapped, so styled code keeps its layout.
//
// Colors fall back as follows: with neither border color set the default
// border color is used; a lone BorderColor is used in both states; a lone
// FocusedBorderColor applies only while focused.
func BorderedPane(cfg BorderConfig) string {
	borderStyle := lipgloss.NewStyle().Foreground(resolveBorderColor(cfg.BorderColor, cfg.FocusedBorderColor, cfg.Focused))
	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = styles.BorderDefaultColor
	}
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(cfg.Width-2, 1)
	innerHeight := max(cfg.Height-2, 1)

	lines := strings.Split(cfg.Content, "\n")
	body := make([]string, innerHeight)
	side := borderStyle.Render(borderVertical)
	for i := range body {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], innerWidth, "")
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		body[i] = side + line + side
	}

	top := edge(borderTopLeft, borderTopRight, cfg.TopLeft, cfg.TopRight, innerWidth, borderStyle, titleStyle)
	bottom := edge(borderBottomLeft, borderBottomRight, cfg.BottomLeft, cfg.BottomRight, innerWidth, borderStyle, titleStyle)

	return top + "\n" + strings.Join(body, "\n") + "\n" + bottom
}

func resolveBorderColor(borderColor, focusedBorderColor lipgloss.TerminalColor, focused bool) lipgloss.TerminalColor {
	switch {
	case focused && focusedBorderColor != nil:
		return focusedBorderColor
	case borderColor != nil:
		return borderColor
	default:
		return styles.BorderDefaultColor
	}
}

// edge builds one horizontal border: ╭─ Left ───── Right ─╮. Titles that do
// not fit are dropped right first, then the left title is truncated.
func edge(leftCorner, rightCorner, left, right string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(leftCorner + rightCorner)
	}

	leftW, rightW := lipgloss.Width(left), lipgloss.Width(right)

	// "─ " + left + " " and " " + right + " ─" plus at least one dash between.
	need := 1
	if left != "" {
		need += leftW + 3
	}
	if right != "" {
		need += rightW + 3
	}
	if need > innerWidth && right != "" {
		right, rightW = "", 0
		need = 1
		if left != "" {
			need += leftW + 3
		}
	}
	if need > innerWidth && left != "" {
		if innerWidth < 5 {
			left = ""
		} else {
			left = styles.TruncateString(left, innerWidth-4)
			leftW = lipgloss.Width(left)
		}
	}

	var sb strings.Builder
	sb.WriteString(borderStyle.Render(leftCorner))
	used := 0
	if left != "" {
		sb.WriteString(borderStyle.Render(borderHorizontal + " "))
		sb.WriteString(titleStyle.Render(left))
		sb.WriteString(borderStyle.Render(" "))
		used += leftW + 3
	}
	tail := 0
	if right != "" {
		tail = rightW + 3
	}
	sb.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, max(innerWidth-used-tail, 0))))
	if right != "" {
		sb.WriteString(borderStyle.Render(" "))
		sb.WriteString(titleStyle.Render(right))
		sb.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	sb.WriteString(borderStyle.Render(rightCorner))
	return sb.String()
}
