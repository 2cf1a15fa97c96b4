package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/syntaxview/internal/theme"
)

// Run is a styled span of text.
type Run struct {
	Text  string
	Style theme.Style

	// Placeholder marks the single space substituted for an empty token.
	Placeholder bool
}

// Row is one rendered line. Number is the 1-indexed line number, or 0 when
// line numbers are off.
type Row struct {
	Number int
	Runs   []Run
}

// Frame is the visual tree produced by a render.
type Frame struct {
	Rows   []Row
	Inline bool

	// Background is "" for transparent.
	Background string
	Foreground string

	LineNumbersColor      string
	LineNumbersBackground string

	Layout Layout
}

// Text flattens the frame back to source text. Placeholder runs are skipped
// so the result equals the rendered input.
func (f Frame) Text() string {
	var sb strings.Builder
	for i, row := range f.Rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, run := range row.Runs {
			if !run.Placeholder {
				sb.WriteString(run.Text)
			}
		}
	}
	return sb.String()
}

// DisplayText is like Text but keeps placeholder spaces.
func (f Frame) DisplayText() string {
	var sb strings.Builder
	for i, row := range f.Rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, run := range row.Runs {
			sb.WriteString(run.Text)
		}
	}
	return sb.String()
}

// LineNumbers returns the numbers carried by the rows, in order.
func (f Frame) LineNumbers() []int {
	var nums []int
	for _, row := range f.Rows {
		if row.Number > 0 {
			nums = append(nums, row.Number)
		}
	}
	return nums
}

// View renders the frame to a terminal string.
func (f Frame) View() string {
	if f.Inline {
		return f.renderInline()
	}
	return strings.Join(f.Lines(), "\n")
}

// Lines renders a block frame to one string per terminal line, including
// padding rows. Source row i is at index Layout.PadRows + i.
func (f Frame) Lines() []string {
	if f.Inline {
		return strings.Split(f.renderInline(), "\n")
	}

	lines := make([]string, len(f.Rows))
	width := 0
	for i, row := range f.Rows {
		lines[i] = f.renderGutter(row) + f.renderRuns(row.Runs)
		width = max(width, lipgloss.Width(lines[i]))
	}

	fill := lipgloss.NewStyle()
	if f.Background != "" {
		fill = fill.Background(lipgloss.Color(f.Background))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + fill.Render(strings.Repeat(" ", width-w))
		}
	}

	body := strings.Join(lines, "\n")
	if f.Layout.PadRows > 0 || f.Layout.PadCols > 0 {
		body = fill.Padding(f.Layout.PadRows, f.Layout.PadCols).Render(body)
	}
	return strings.Split(body, "\n")
}

func (f Frame) renderInline() string {
	var sb strings.Builder
	for _, row := range f.Rows {
		sb.WriteString(f.renderRuns(row.Runs))
	}
	return sb.String()
}

func (f Frame) renderRuns(runs []Run) string {
	var sb strings.Builder
	for _, run := range runs {
		if run.Text == "\n" {
			sb.WriteString("\n")
			continue
		}
		st := run.Style
		// Every run carries the block background: ANSI resets after each
		// run would otherwise clear it.
		if st.Background == "" {
			st.Background = f.Background
		}
		sb.WriteString(st.Lipgloss().Render(run.Text))
	}
	return sb.String()
}

func (f Frame) renderGutter(row Row) string {
	cells := f.Layout.GutterCells
	if cells == 0 || row.Number == 0 {
		return ""
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(f.LineNumbersColor))
	bg := f.LineNumbersBackground
	if bg == "" {
		bg = f.Background
	}
	if bg != "" {
		st = st.Background(lipgloss.Color(bg))
	}
	// Right-aligned label, then a single cell gap before the code.
	return st.Render(fmt.Sprintf("%*d ", cells-1, row.Number))
}
