package theme

import (
	"sort"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/patrickmn/go-cache"

	"github.com/zjrosen/syntaxview/internal/highlight"
	"github.com/zjrosen/syntaxview/internal/log"
)

const (
	// DefaultTheme is used whenever a theme name cannot be resolved.
	// It is chroma's rendition of Atom One Dark.
	DefaultTheme = "onedark"

	// DarkBackground is the Atom One Dark editor background, the default
	// for code blocks.
	DarkBackground = "#282c34"
)

// aliases maps highlight.js style names (after kebab-casing) to chroma names.
var aliases = map[string]string{
	"atom-one-dark":   DefaultTheme,
	"one-dark":        DefaultTheme,
	"github-gist":     "github",
	"monokai-sublime": "monokai",
}

// tables caches built style tables by canonical name. Tables never change
// once built, so entries do not expire.
var tables = cache.New(cache.NoExpiration, 0)

// Resolve returns the style table for name, falling back to DefaultTheme
// when the name is empty or unknown.
func Resolve(name string) *StyleTable {
	canonical, ok := Canonical(name)
	if !ok {
		if name != "" {
			log.Warn(log.CatTheme, "Unknown theme, using default", "name", name, "default", DefaultTheme)
		}
		canonical = DefaultTheme
	}

	if cached, found := tables.Get(canonical); found {
		return cached.(*StyleTable)
	}

	cs, ok := styles.Registry[canonical]
	if !ok {
		cs = styles.Fallback
	}
	table := build(canonical, cs)
	tables.SetDefault(canonical, table)
	log.Debug(log.CatTheme, "Built style table", "name", canonical, "classes", len(table.Classes))
	return table
}

// Canonical maps a user supplied theme name to a chroma style name.
// Accepts chroma names, camelCase highlight.js names and known aliases.
func Canonical(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	for _, candidate := range []string{name, strings.ToLower(name), kebab(name)} {
		if _, ok := styles.Registry[candidate]; ok {
			return candidate, true
		}
		if target, ok := aliases[candidate]; ok {
			if _, exists := styles.Registry[target]; exists {
				return target, true
			}
		}
	}
	return "", false
}

// Known reports whether name resolves without falling back.
func Known(name string) bool {
	_, ok := Canonical(name)
	return ok
}

// Names returns the sorted names of every available theme.
func Names() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// kebab converts camelCase to kebab-case: solarizedDark -> solarized-dark.
func kebab(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// build flattens a chroma style into a class table. Properties a class only
// inherits from the base are dropped so caller overrides of the base colors
// are not masked by every token.
func build(name string, cs *chroma.Style) *StyleTable {
	bgEntry := cs.Get(chroma.Background)
	base := Style{
		Foreground: colour(bgEntry.Colour),
		Background: colour(bgEntry.Background),
	}

	classes := make(map[string]Style)
	for tt := range chroma.StandardTypes {
		if tt < 0 || !cs.Has(tt) {
			continue
		}
		class := highlight.ClassName(tt)
		if class == "" {
			continue
		}
		s := fromEntry(cs.Get(tt))
		if s.Foreground == base.Foreground {
			s.Foreground = ""
		}
		if s.Background == base.Background {
			s.Background = ""
		}
		if s.IsZero() {
			continue
		}
		classes[class] = s
	}

	return &StyleTable{Name: name, Base: base, Classes: classes}
}

func fromEntry(e chroma.StyleEntry) Style {
	return Style{
		Foreground: colour(e.Colour),
		Background: colour(e.Background),
		Bold:       trilean(e.Bold),
		Italic:     trilean(e.Italic),
		Underline:  trilean(e.Underline),
	}
}

func colour(c chroma.Colour) string {
	if !c.IsSet() {
		return ""
	}
	return c.String()
}

func trilean(t chroma.Trilean) Attr {
	switch t {
	case chroma.Yes:
		return AttrOn
	case chroma.No:
		return AttrOff
	default:
		return AttrUnset
	}
}
