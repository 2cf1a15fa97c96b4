// Package codeblock renders standalone multi-line code samples inside a
// rounded frame.
package codeblock

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/syntaxview/internal/render"
	"github.com/zjrosen/syntaxview/internal/theme"
	"github.com/zjrosen/syntaxview/internal/ui/styles"
)

const (
	// DefaultLanguage is used when a block has no language.
	DefaultLanguage = "python"
	// DefaultFontSize is the block font size in points.
	DefaultFontSize = 14.0
	// DefaultPadding is the frame padding in points.
	DefaultPadding = 16.0
)

// Block is a framed, highlighted code sample.
type Block struct {
	Code     string
	Language string
	Theme    string

	// StyleTable overrides Theme when set.
	StyleTable *theme.StyleTable

	FontSize        float64
	FontFamily      string
	Padding         float64
	BackgroundColor string
	ForegroundColor string

	ShowLineNumbers            bool
	LineNumbersColor           string
	LineNumbersBackgroundColor string

	// Width is the total width including the border; 0 sizes to content.
	Width int
}

// New creates a block with default styling.
func New(code, language string) Block {
	if language == "" {
		language = DefaultLanguage
	}
	return Block{
		Code:            code,
		Language:        language,
		Theme:           theme.DefaultTheme,
		FontSize:        DefaultFontSize,
		Padding:         DefaultPadding,
		BackgroundColor: theme.DarkBackground,
	}
}

// Options returns the render options for the block.
func (b Block) Options() render.Options {
	opts := render.DefaultOptions()
	opts.FontSize = b.FontSize
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultFontSize
	}
	opts.FontFamily = b.FontFamily
	opts.Padding = b.Padding
	opts.BackgroundColor = b.BackgroundColor
	opts.ForegroundColor = b.ForegroundColor
	opts.LineNumbers = b.ShowLineNumbers
	if b.LineNumbersColor != "" {
		opts.LineNumbersColor = b.LineNumbersColor
	}
	opts.LineNumbersBackgroundColor = b.LineNumbersBackgroundColor
	return opts
}

// Frame renders the block content without the border.
func (b Block) Frame() render.Frame {
	language := b.Language
	if language == "" {
		language = DefaultLanguage
	}
	table := b.StyleTable
	if table == nil {
		table = theme.Resolve(b.Theme)
	}
	return render.Render(b.Code, language, table, b.Options())
}

// View renders the framed block.
func (b Block) View() string {
	frame := b.Frame()
	lines := frame.Lines()

	if b.Width > 0 {
		inner := max(b.Width-2, 1)
		fill := lipgloss.NewStyle()
		if frame.Background != "" {
			fill = fill.Background(lipgloss.Color(frame.Background))
		}
		for i, line := range lines {
			line = ansi.Truncate(line, inner, "")
			if w := lipgloss.Width(line); w < inner {
				line += fill.Render(strings.Repeat(" ", inner-w))
			}
			lines[i] = line
		}
	}

	return frameStyle.Render(strings.Join(lines, "\n"))
}

var frameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(styles.BorderDefaultColor).
	Margin(1, 0)
