package render

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/syntaxview/internal/highlight"
	"github.com/zjrosen/syntaxview/internal/theme"
)

func init() {
	// Force true color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// fixedTokenizer returns the same rows for any input.
type fixedTokenizer []highlight.Node

func (f fixedTokenizer) Tokenize(string, string) []highlight.Node { return f }

func testTable() *theme.StyleTable {
	return &theme.StyleTable{
		Name: "test",
		Base: theme.Style{Foreground: "#abb2bf", Background: "#282c34"},
		Classes: map[string]theme.Style{
			"keyword":     {Foreground: "#c678dd"},
			"keyword-fn":  {Foreground: "#61afef", Bold: theme.AttrOn},
			"string":      {Foreground: "#98c379"},
			"highlighted": {Background: "#3e4451"},
		},
	}
}

func TestRender_EmptyInput(t *testing.T) {
	table := testTable()
	opts := DefaultOptions()
	opts.LineNumbers = true

	frame := Render("", "go", table, opts)

	require.Len(t, frame.Rows, 1)
	require.Equal(t, 1, frame.Rows[0].Number)
	require.Len(t, frame.Rows[0].Runs, 1)

	run := frame.Rows[0].Runs[0]
	require.Equal(t, " ", run.Text)
	require.True(t, run.Placeholder)
	require.Equal(t, "#abb2bf", run.Style.Foreground)
	require.Equal(t, "#282c34", frame.Background)
	require.Equal(t, "", frame.Text())
	require.Equal(t, " ", frame.DisplayText())
}

func TestRender_EmptyLinesBecomePlaceholders(t *testing.T) {
	frame := Render("a\n\nb", "", testTable(), DefaultOptions())

	require.Len(t, frame.Rows, 3)
	require.Equal(t, "a\n\nb", frame.Text())
	require.Equal(t, "a\n \nb", frame.DisplayText())
	require.True(t, frame.Rows[1].Runs[0].Placeholder)
}

func TestRender_NestedClassesInnerWins(t *testing.T) {
	rows := []highlight.Node{
		highlight.Element(nil,
			highlight.Element([]string{"keyword"},
				highlight.Leaf("fn"),
				highlight.Element([]string{"keyword-fn"}, highlight.Leaf("main")),
			),
			highlight.Leaf(" "),
		),
	}
	r := New(fixedTokenizer(rows))

	frame := r.Render(context.Background(), "fnmain ", "x", testTable(), DefaultOptions())

	runs := frame.Rows[0].Runs
	require.Len(t, runs, 3)
	require.Equal(t, "#c678dd", runs[0].Style.Foreground)
	require.Equal(t, "#61afef", runs[1].Style.Foreground)
	require.True(t, runs[1].Style.Bold.IsOn())
	require.Equal(t, "#abb2bf", runs[2].Style.Foreground, "unclassified leaf keeps base foreground")
}

func TestRender_ClassesComposeAcrossProperties(t *testing.T) {
	rows := []highlight.Node{
		highlight.Element(nil,
			highlight.Element([]string{"highlighted"},
				highlight.Element([]string{"string"}, highlight.Leaf(`"x"`)),
			),
		),
	}
	r := New(fixedTokenizer(rows))

	frame := r.Render(context.Background(), `"x"`, "x", testTable(), DefaultOptions())

	st := frame.Rows[0].Runs[0].Style
	require.Equal(t, "#98c379", st.Foreground)
	require.Equal(t, "#3e4451", st.Background)
}

func TestRender_BackgroundResolution(t *testing.T) {
	table := testTable()

	opts := DefaultOptions()
	opts.BackgroundColor = "#000000"
	require.Equal(t, "#000000", Render("x", "", table, opts).Background, "explicit override wins")

	opts.BackgroundColor = ""
	require.Equal(t, "#282c34", Render("x", "", table, opts).Background, "theme base background")

	bare := &theme.StyleTable{Base: theme.Style{Foreground: "#ffffff"}}
	require.Equal(t, "", Render("x", "", bare, opts).Background, "transparent when theme has none")

	opts.BackgroundColor = "transparent"
	require.Equal(t, "", Render("x", "", table, opts).Background)
}

func TestRender_ForegroundResolution(t *testing.T) {
	table := testTable()
	opts := DefaultOptions()

	frame := Render("plain", "", table, opts)
	require.Equal(t, "#abb2bf", frame.Rows[0].Runs[0].Style.Foreground)

	opts.ForegroundColor = "#ff0000"
	frame = Render("plain", "", table, opts)
	require.Equal(t, "#ff0000", frame.Rows[0].Runs[0].Style.Foreground)
}

func TestRender_LineNumbers(t *testing.T) {
	opts := DefaultOptions()
	opts.LineNumbers = true

	frame := Render("a\nb\nc", "", testTable(), opts)

	require.Equal(t, []int{1, 2, 3}, frame.LineNumbers())

	view := ansi.Strip(frame.View())
	lines := strings.Split(view, "\n")
	pad := frame.Layout.PadRows
	require.Contains(t, lines[pad], "1 a")
	require.Contains(t, lines[pad+2], "3 c")
}

func TestRender_LineNumbersOff(t *testing.T) {
	frame := Render("a\nb", "", testTable(), DefaultOptions())
	require.Empty(t, frame.LineNumbers())
	require.Equal(t, 0, frame.Layout.GutterCells)
}

func TestRender_LineNumbersRestartEachRender(t *testing.T) {
	opts := DefaultOptions()
	opts.LineNumbers = true
	first := Render("a\nb\nc\nd", "", testTable(), opts)
	second := Render("x", "", testTable(), opts)

	require.Equal(t, []int{1, 2, 3, 4}, first.LineNumbers())
	require.Equal(t, []int{1}, second.LineNumbers())
}

func TestRender_InlineDropsChrome(t *testing.T) {
	opts := DefaultOptions()
	opts.LineNumbers = true
	opts.BackgroundColor = "#123456"
	opts.Inline = true

	frame := Render("x := 1\ny", "go", testTable(), opts)

	require.True(t, frame.Inline)
	require.Len(t, frame.Rows, 1)
	require.Empty(t, frame.LineNumbers())
	require.Equal(t, "", frame.Background)
	require.Equal(t, 0, frame.Layout.PadCols)
	require.Equal(t, 0, frame.Layout.PadRows)
	require.Equal(t, 0, frame.Layout.GutterCells)
	require.Equal(t, "x := 1\ny", frame.Text())
	require.Equal(t, "x := 1\ny", ansi.Strip(frame.View()))
}

func TestRender_BlockBackgroundOnEveryRun(t *testing.T) {
	frame := Render("a b", "", testTable(), DefaultOptions())
	view := frame.View()

	// #282c34 = rgb(40, 44, 52)
	require.Contains(t, view, "48;2;40;44;52")
}

func TestRender_GoHighlighting(t *testing.T) {
	table := theme.Resolve(theme.DefaultTheme)
	frame := Render("package main", "go", table, DefaultOptions())

	require.Equal(t, "package main", frame.Text())
	var keywordColor string
	for _, run := range frame.Rows[0].Runs {
		if run.Text == "package" {
			keywordColor = run.Style.Foreground
		}
	}
	require.NotEmpty(t, keywordColor)
	require.NotEqual(t, table.Base.Foreground, keywordColor)
}

func TestRender_NilTableUsesDefaultTheme(t *testing.T) {
	frame := Render("x", "", nil, DefaultOptions())
	require.Equal(t, theme.Resolve(theme.DefaultTheme).Base.Background, frame.Background)
}

func TestLayout_Metrics(t *testing.T) {
	opts := DefaultOptions()
	opts.LineNumbers = true
	opts.FontSize = 16

	l := computeLayout(opts.normalized(), 3)

	require.InDelta(t, 28.0, l.GutterWidth, 0.001)
	require.InDelta(t, 23.0, l.LabelWidth, 0.001)
	require.InDelta(t, 11.2, l.LineNumberFontSize, 0.001)
	require.InDelta(t, 24.0, l.LineHeight, 0.001)
	require.Equal(t, 3, l.GutterCells)
	require.Equal(t, 2, l.PadCols)
	require.Equal(t, 1, l.PadRows)
	require.Equal(t, 5, l.TextColumn())
}

func TestLayout_GutterGrowsWithDigits(t *testing.T) {
	opts := DefaultOptions()
	opts.LineNumbers = true

	l := computeLayout(opts.normalized(), 12345)
	require.Equal(t, 6, l.GutterCells)
}

func TestLineHeight_PlatformRule(t *testing.T) {
	require.InDelta(t, 21.0, LineHeight(PlatformAndroid, 14, 30), 0.001, "android ignores supplied value")
	require.InDelta(t, 30.0, LineHeight(PlatformIOS, 14, 30), 0.001)
	require.InDelta(t, 21.0, LineHeight(PlatformIOS, 14, 0), 0.001, "ios without a value falls back")
}

func TestPlatform_ParseAndDefaults(t *testing.T) {
	require.Equal(t, PlatformIOS, ParsePlatform("iOS"))
	require.Equal(t, PlatformAndroid, ParsePlatform("android"))
	require.Equal(t, PlatformAndroid, ParsePlatform("windows"))
	require.Equal(t, "ios", PlatformIOS.String())
	require.Equal(t, "Menlo-Regular", DefaultFontFamily(PlatformIOS))
	require.Equal(t, "monospace", DefaultFontFamily(PlatformAndroid))
}

func TestOptions_NormalizedDefaults(t *testing.T) {
	o := Options{Platform: PlatformIOS}.normalized()
	require.Equal(t, DefaultFontSize, o.FontSize)
	require.Equal(t, "Menlo-Regular", o.FontFamily)
	require.Equal(t, DefaultLineNumbersColor, o.LineNumbersColor)
}

func TestRender_Properties(t *testing.T) {
	table := theme.Resolve(theme.DefaultTheme)
	languages := []string{"go", "python", "javascript", "", "nope"}

	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-z0-9 (){}":=.\n\t]{0,60}`).Draw(rt, "text")
		language := rapid.SampledFrom(languages).Draw(rt, "language")
		opts := DefaultOptions()
		opts.LineNumbers = rapid.Bool().Draw(rt, "lineNumbers")
		opts.Inline = rapid.Bool().Draw(rt, "inline")

		frame := Render(text, language, table, opts)

		require.Equal(rt, text, frame.Text())

		if opts.Inline {
			require.Len(rt, frame.Rows, 1)
			require.Empty(rt, frame.LineNumbers())
			require.Equal(rt, "", frame.Background)
			return
		}

		require.Len(rt, frame.Rows, strings.Count(text, "\n")+1)
		for i, row := range frame.Rows {
			require.NotEmpty(rt, row.Runs, "row %d has no runs", i)
			for _, run := range row.Runs {
				require.NotEqual(rt, "", run.Text)
			}
			if opts.LineNumbers {
				require.Equal(rt, i+1, row.Number)
			} else {
				require.Equal(rt, 0, row.Number)
			}
		}
	})
}
