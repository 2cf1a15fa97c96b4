// Package theme maps theme names to style tables.
package theme

import "github.com/charmbracelet/lipgloss"

// Attr is a tri-state text attribute so inner styles can switch an outer
// attribute off again.
type Attr uint8

const (
	AttrUnset Attr = iota
	AttrOn
	AttrOff
)

// IsOn reports whether the attribute is explicitly on.
func (a Attr) IsOn() bool { return a == AttrOn }

func mergeAttr(base, over Attr) Attr {
	if over != AttrUnset {
		return over
	}
	return base
}

// Style is the visual style attached to a classification tag.
// Empty color strings mean "not set".
type Style struct {
	Foreground string
	Background string
	Bold       Attr
	Italic     Attr
	Underline  Attr
}

// Merge returns s with every property set in over replacing its own.
func (s Style) Merge(over Style) Style {
	if over.Foreground != "" {
		s.Foreground = over.Foreground
	}
	if over.Background != "" {
		s.Background = over.Background
	}
	s.Bold = mergeAttr(s.Bold, over.Bold)
	s.Italic = mergeAttr(s.Italic, over.Italic)
	s.Underline = mergeAttr(s.Underline, over.Underline)
	return s
}

// IsZero reports whether no property is set.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Lipgloss converts the style to a lipgloss style.
func (s Style) Lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		st = st.Background(lipgloss.Color(s.Background))
	}
	if s.Bold.IsOn() {
		st = st.Bold(true)
	}
	if s.Italic.IsOn() {
		st = st.Italic(true)
	}
	if s.Underline.IsOn() {
		st = st.Underline(true)
	}
	return st
}

// StyleTable is an immutable mapping from classification tag to style,
// plus the theme's base foreground and background.
type StyleTable struct {
	Name    string
	Base    Style
	Classes map[string]Style
}

// Lookup returns the style for a class.
func (t *StyleTable) Lookup(class string) (Style, bool) {
	if t == nil {
		return Style{}, false
	}
	s, ok := t.Classes[class]
	return s, ok
}

// Compose merges the styles of classes in order over base; later classes
// win. Unknown classes are ignored.
func (t *StyleTable) Compose(base Style, classes []string) Style {
	for _, c := range classes {
		if s, ok := t.Lookup(c); ok {
			base = base.Merge(s)
		}
	}
	return base
}
