// Package inlinecode renders short code fragments for embedding in running
// text.
package inlinecode

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/syntaxview/internal/render"
	"github.com/zjrosen/syntaxview/internal/theme"
)

const (
	// DefaultLanguage is used when a label has no language.
	DefaultLanguage = "python"
	// DefaultFontSize is the inline font size in points.
	DefaultFontSize = 14.0
)

// Label is a highlighted code span without block chrome.
type Label struct {
	Code     string
	Language string
	Theme    string

	// StyleTable overrides Theme when set.
	StyleTable *theme.StyleTable

	FontSize float64

	// ForegroundColor overrides the theme foreground.
	ForegroundColor string
}

// New creates a label with default language, theme and font size.
func New(code string) Label {
	return Label{
		Code:     code,
		Language: DefaultLanguage,
		Theme:    theme.DefaultTheme,
		FontSize: DefaultFontSize,
	}
}

// Frame renders the label in inline mode.
func (l Label) Frame() render.Frame {
	language := l.Language
	if language == "" {
		language = DefaultLanguage
	}
	fontSize := l.FontSize
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	table := l.StyleTable
	if table == nil {
		table = theme.Resolve(l.Theme)
	}

	opts := render.DefaultOptions()
	opts.FontSize = fontSize
	opts.Padding = 0
	opts.BackgroundColor = render.Transparent
	opts.ForegroundColor = l.ForegroundColor
	opts.Inline = true

	return render.Render(l.Code, language, table, opts)
}

// View renders the label.
func (l Label) View() string {
	return l.Frame().View()
}

// Segment is one piece of a paragraph.
type Segment interface {
	View() string
}

// Text is a plain paragraph segment.
type Text string

// View implements Segment.
func (t Text) View() string { return string(t) }

// Paragraph joins segments into one flow and word-wraps it to width.
// A width of zero or less disables wrapping.
func Paragraph(width int, segments ...Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.View())
	}
	if width <= 0 {
		return sb.String()
	}
	return wordwrap.String(sb.String(), width)
}
