// Package markdown renders the playground's documentation pages.
package markdown

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/syntaxview/internal/theme"
)

// Renderer wraps glamour with a margin-free document style whose fenced
// code blocks use a syntax theme.
type Renderer struct {
	renderer  *glamour.TermRenderer
	width     int
	codeTheme string
}

// New creates a markdown renderer. style is a glamour style ("dark" when
// empty). codeTheme names the syntax theme for fenced code; unknown names
// resolve to the default theme.
//
// A fixed style is used instead of glamour's auto style: auto detection
// queries the terminal and the reply leaks into the input stream.
func New(width int, style, codeTheme string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	codeTheme = theme.Resolve(codeTheme).Name

	overrides, err := json.Marshal(map[string]any{
		"document": map[string]any{
			"margin":       0,
			"block_prefix": "",
			"block_suffix": "",
		},
		// The built-in styles carry explicit chroma colors, which take
		// precedence over a named theme.
		"code_block": map[string]any{
			"theme":  codeTheme,
			"chroma": nil,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding markdown style: %w", err)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes(overrides),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width, codeTheme: codeTheme}, nil
}

// Width returns the word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// CodeTheme returns the resolved syntax theme used for fenced code.
func (r *Renderer) CodeTheme() string {
	return r.codeTheme
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
