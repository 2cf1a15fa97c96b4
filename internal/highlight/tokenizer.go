package highlight

import (
	"sort"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/zjrosen/syntaxview/internal/log"
)

// Tokenizer converts source text in a language into row nodes.
// Implementations never fail: anything they cannot classify comes back as
// plain rows.
type Tokenizer interface {
	Tokenize(text, language string) []Node
}

// Chroma is the default Tokenizer, backed by chroma lexers.
type Chroma struct{}

// Default is the package-level tokenizer.
var Default Tokenizer = Chroma{}

// Tokenize implements Tokenizer.
func (Chroma) Tokenize(text, language string) []Node {
	if text == "" {
		return Plain(text)
	}

	lexer := Lexer(language)
	if lexer == nil {
		log.Debug(log.CatHighlight, "Unknown language, rendering plain", "language", language)
		return Plain(text)
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		log.ErrorErr(log.CatHighlight, "Tokenise failed", err, "language", language)
		return Plain(text)
	}

	rows := buildRows(it.Tokens(), len(text))
	if Flatten(rows) != text {
		// Some lexers rewrite input (e.g. line endings); never show altered text.
		log.Warn(log.CatHighlight, "Token output diverged from input", "language", language)
		return Plain(text)
	}
	return rows
}

// Lexer looks a lexer up by name, alias or file extension.
// Returns nil when nothing matches.
func Lexer(language string) chroma.Lexer {
	if strings.TrimSpace(language) == "" {
		return nil
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

// Detect returns the language name for a file name, or "" if unknown.
func Detect(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}

// Languages returns the sorted names of every known language.
func Languages() []string {
	names := lexers.Names(false)
	sort.Strings(names)
	return names
}

// buildRows splits chroma tokens into one row per line. Token text beyond
// limit bytes is dropped; lexers configured with EnsureNL append a newline
// the caller never wrote.
func buildRows(tokens []chroma.Token, limit int) []Node {
	rows := []Node{Element(nil)}
	remaining := limit

	for _, tok := range tokens {
		if remaining <= 0 {
			break
		}
		value := tok.Value
		if len(value) > remaining {
			value = value[:remaining]
		}
		remaining -= len(value)

		for i, part := range strings.Split(value, "\n") {
			if i > 0 {
				rows = append(rows, Element(nil))
			}
			if part == "" {
				continue
			}
			row := &rows[len(rows)-1]
			row.Children = append(row.Children, tokenNode(tok.Type, part))
		}
	}

	for i := range rows {
		if len(rows[i].Children) == 0 {
			rows[i].Children = []Node{Leaf("")}
		}
	}
	return rows
}

func tokenNode(tt chroma.TokenType, value string) Node {
	if tt == chroma.Text || tt == chroma.TextWhitespace {
		return Leaf(value)
	}
	return Element(Classes(tt), Leaf(value))
}

// Classes returns the classification tags for a token type, general to
// specific: LiteralStringDouble yields literal, literal-string,
// literal-string-double.
func Classes(tt chroma.TokenType) []string {
	var classes []string
	seen := make(map[string]bool, 3)
	for _, t := range []chroma.TokenType{tt.Category(), tt.SubCategory(), tt} {
		name := ClassName(t)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		classes = append(classes, name)
	}
	return classes
}

// ClassName converts a token type to its kebab-case tag. Returns "" for
// types without a symbolic name.
func ClassName(tt chroma.TokenType) string {
	name := tt.String()
	if name == "" || strings.HasPrefix(name, "TokenType(") {
		return ""
	}
	var sb strings.Builder
	for i, r := range name {
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
