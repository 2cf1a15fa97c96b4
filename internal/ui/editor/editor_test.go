package editor

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/syntaxview/internal/render"
	"github.com/zjrosen/syntaxview/internal/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

type changedMsg string

type keyMsg string

func testConfig(initial string) Config {
	cfg := DefaultConfig()
	cfg.InitialValue = initial
	cfg.OnChange = func(text string) tea.Msg { return changedMsg(text) }
	cfg.OnKeyPress = func(k string) tea.Msg { return keyMsg(k) }
	return cfg
}

// collect runs a command and flattens batches and sequences into their
// messages, keeping sequence order.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if cmds, ok := subCommands(msg); ok {
		var out []tea.Msg
		for _, c := range cmds {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// subCommands unpacks tea.BatchMsg and the sequence message tea.Sequence
// produces, which is an unexported []tea.Cmd.
func subCommands(msg tea.Msg) ([]tea.Cmd, bool) {
	if batch, ok := msg.(tea.BatchMsg); ok {
		return batch, true
	}
	v := reflect.ValueOf(msg)
	if !v.IsValid() || v.Kind() != reflect.Slice || v.Type().Elem() != reflect.TypeOf(tea.Cmd(nil)) {
		return nil, false
	}
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i] = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds, true
}

func changes(msgs []tea.Msg) []string {
	var out []string
	for _, msg := range msgs {
		if c, ok := msg.(changedMsg); ok {
			out = append(out, string(c))
		}
	}
	return out
}

func keysOf(msgs []tea.Msg) []string {
	var out []string
	for _, msg := range msgs {
		if k, ok := msg.(keyMsg); ok {
			out = append(out, string(k))
		}
	}
	return out
}

func press(m Model, msg tea.KeyMsg) (Model, []tea.Msg) {
	m, cmd := m.Update(msg)
	return m, collect(cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func special(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func manyLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 16.0, cfg.FontSize)
	require.Equal(t, 16.0, cfg.Padding)
	require.True(t, cfg.AutoFocus)
	require.Equal(t, 2, cfg.TabWidth)
	require.Equal(t, theme.DefaultTheme, cfg.Theme)
}

func TestNew_InitialState(t *testing.T) {
	m := New(testConfig("x = 1"))

	require.Equal(t, "x = 1", m.Value())
	require.Equal(t, Selection{}, m.Selection())
	require.True(t, m.Focused())
	require.False(t, m.ReadOnly())
	require.Equal(t, 0, m.ScrollOffset())
	require.Equal(t, 0, m.HighlightOffset())
}

func TestNew_AutoFocusOff(t *testing.T) {
	cfg := testConfig("x")
	cfg.AutoFocus = false
	require.False(t, New(cfg).Focused())
}

func TestNew_IDs(t *testing.T) {
	m := New(testConfig(""))
	_, err := uuid.Parse(m.TestID())
	require.NoError(t, err, "default id is a uuid")
	require.NotEqual(t, m.TestID(), New(testConfig("")).TestID())

	cfg := testConfig("")
	cfg.TestID = "code"
	m = New(cfg)
	require.Equal(t, "code", m.TestID())
	require.Equal(t, "code-syntax-highlighter", m.HighlighterID())
	require.Equal(t, "code-text-input", m.InputID())
}

func TestInit_EmitsInitialValue(t *testing.T) {
	m := New(testConfig("a\tb"))

	require.Equal(t, []string{"a  b"}, changes(collect(m.Init())))
}

func TestInit_NoCallback(t *testing.T) {
	m := New(DefaultConfig())
	require.Nil(t, m.Init())
}

func TestUpdate_TypingChangesText(t *testing.T) {
	m := New(testConfig(""))

	m, msgs := press(m, runes("x"))

	require.Equal(t, "x", m.Value())
	require.Equal(t, Selection{Start: 1, End: 1}, m.Selection())
	require.Equal(t, []string{"x"}, changes(msgs))
	require.Equal(t, "x", m.Frame().Text())
}

func TestUpdate_TabExpandsAtCaret(t *testing.T) {
	cfg := testConfig("ab")
	cfg.TabWidth = 4
	m := New(cfg)

	m, _ = press(m, special(tea.KeyRight))
	m, msgs := press(m, special(tea.KeyTab))

	require.Equal(t, "a    b", m.Value())
	require.Equal(t, Selection{Start: 5, End: 5}, m.Selection())
	require.Equal(t, []string{"a    b"}, changes(msgs))
	require.Equal(t, []string{"tab"}, keysOf(msgs))

	// The caret stays after the inserted spaces.
	m, _ = press(m, runes("z"))
	require.Equal(t, "a    zb", m.Value())
}

func TestUpdate_PasteWithTabs(t *testing.T) {
	m := New(testConfig(""))

	m, msgs := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x\ty\tz"), Paste: true})

	require.Equal(t, "x  y  z", m.Value())
	require.Equal(t, Selection{Start: 7, End: 7}, m.Selection())
	require.Equal(t, []string{"x  y  z"}, changes(msgs))
}

func TestUpdate_KeyPressForwardedVerbatim(t *testing.T) {
	m := New(testConfig("x"))

	var got []string
	for _, msg := range []tea.KeyMsg{runes("a"), special(tea.KeyCtrlS), special(tea.KeyEnter), special(tea.KeyDown)} {
		var msgs []tea.Msg
		m, msgs = press(m, msg)
		got = append(got, keysOf(msgs)...)
	}

	require.Equal(t, []string{"a", "ctrl+s", "enter", "down"}, got)
}

// callbacks keeps only callback messages, in delivery order.
func callbacks(msgs []tea.Msg) []tea.Msg {
	var out []tea.Msg
	for _, msg := range msgs {
		switch msg.(type) {
		case changedMsg, keyMsg:
			out = append(out, msg)
		}
	}
	return out
}

func TestUpdate_KeyPressDeliveredBeforeChange(t *testing.T) {
	m := New(testConfig(""))

	m, msgs := press(m, runes("x"))
	require.Equal(t, []tea.Msg{keyMsg("x"), changedMsg("x")}, callbacks(msgs))

	_, msgs = press(m, special(tea.KeyTab))
	require.Equal(t, []tea.Msg{keyMsg("tab"), changedMsg("x  ")}, callbacks(msgs))
}

func TestUpdate_CallbacksAreSequenced(t *testing.T) {
	m := New(testConfig(""))

	_, cmd := m.Update(runes("x"))
	require.NotNil(t, cmd)

	var sequenced bool
	for _, msg := range collectShallow(cmd) {
		if cmds, ok := subCommands(msg); ok {
			if _, isBatch := msg.(tea.BatchMsg); !isBatch && len(cmds) == 2 {
				sequenced = true
			}
		}
	}
	require.True(t, sequenced, "key and change callbacks travel in one sequence")
}

// collectShallow runs cmd and unpacks one level of batching.
func collectShallow(cmd tea.Cmd) []tea.Msg {
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

func TestUpdate_BlurredIgnoresKeys(t *testing.T) {
	m := New(testConfig("x"))
	m.Blur()

	m, msgs := press(m, runes("y"))

	require.Equal(t, "x", m.Value())
	require.Empty(t, msgs)
}

func TestReadOnly_BlocksEditingKeepsNavigation(t *testing.T) {
	cfg := testConfig("abc\ndef")
	cfg.ReadOnly = true
	m := New(cfg)
	require.True(t, m.ReadOnly())

	m, msgs := press(m, runes("x"))
	require.Equal(t, "abc\ndef", m.Value())
	require.Empty(t, changes(msgs))
	require.Equal(t, []string{"x"}, keysOf(msgs), "key presses still forwarded")

	m, _ = press(m, special(tea.KeyTab))
	m, _ = press(m, special(tea.KeyBackspace))
	require.Equal(t, "abc\ndef", m.Value())

	m, _ = press(m, special(tea.KeyDown))
	require.Equal(t, Selection{Start: 4, End: 4}, m.Selection())

	m.SetReadOnly(false)
	m, _ = press(m, runes("x"))
	require.Equal(t, "abc\nxdef", m.Value())
}

func TestScroll_FollowsCaretAndMirrors(t *testing.T) {
	m := New(testConfig(manyLines(50)))
	m.SetSize(40, 10)

	for range 30 {
		m, _ = press(m, special(tea.KeyDown))
	}

	require.Positive(t, m.ScrollOffset())
	require.Equal(t, m.ScrollOffset(), m.HighlightOffset())

	m, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	require.Equal(t, m.ScrollOffset(), m.HighlightOffset())

	for range 40 {
		m, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	}
	require.Equal(t, m.ScrollOffset(), m.HighlightOffset())
	require.Equal(t, 50+2*m.Frame().Layout.PadRows-10, m.ScrollOffset(), "clamped at bottom")
}

func TestScroll_MirroredUnderRandomInput(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := New(testConfig(manyLines(rapid.IntRange(1, 40).Draw(rt, "lines"))))
		m.SetSize(30, rapid.IntRange(3, 12).Draw(rt, "height"))

		actions := rapid.SliceOfN(rapid.IntRange(0, 7), 1, 60).Draw(rt, "actions")
		for _, a := range actions {
			var msg tea.Msg
			switch a {
			case 0:
				msg = special(tea.KeyDown)
			case 1:
				msg = special(tea.KeyUp)
			case 2:
				msg = tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}
			case 3:
				msg = tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
			case 4:
				msg = special(tea.KeyEnter)
			case 5:
				msg = special(tea.KeyBackspace)
			case 6:
				msg = special(tea.KeyTab)
			default:
				msg = runes("q")
			}
			m, _ = m.Update(msg)

			require.Equal(rt, m.ScrollOffset(), m.HighlightOffset())
			require.NotContains(rt, m.Value(), "\t")
			require.Equal(rt, m.Value(), m.Frame().Text())
		}
	})
}

func TestSetValue_NormalizesAndNotifies(t *testing.T) {
	m := New(testConfig("old"))

	msgs := collect(m.SetValue("\tnew"))

	require.Equal(t, "  new", m.Value())
	require.Equal(t, []string{"  new"}, changes(msgs))
}

func TestView_ShowsTextAndCursor(t *testing.T) {
	cfg := testConfig("hello\nworld")
	cfg.Language = "text"
	m := New(cfg)

	view := m.View()
	plain := ansi.Strip(view)
	require.Contains(t, plain, "hello")
	require.Contains(t, plain, "world")
	require.Contains(t, view, "\x1b[7", "caret drawn in reverse video")

	m.Blur()
	require.NotContains(t, m.View(), "\x1b[7")
}

func TestView_LineNumbers(t *testing.T) {
	cfg := testConfig("a\nb\nc")
	cfg.ShowLineNumbers = true
	m := New(cfg)

	require.Equal(t, []int{1, 2, 3}, m.Frame().LineNumbers())
	require.Contains(t, ansi.Strip(m.View()), "3 c")
}

func TestSetTheme(t *testing.T) {
	m := New(testConfig("x"))

	m.SetTheme("dracula")
	require.Equal(t, "dracula", m.Theme())

	m.SetTheme("no-such-theme")
	require.Equal(t, theme.DefaultTheme, m.Theme())
}

func TestStyleTableOverridesTheme(t *testing.T) {
	table := &theme.StyleTable{Name: "custom", Base: theme.Style{Foreground: "#010203", Background: "#040506"}}
	cfg := testConfig("x")
	cfg.Theme = "dracula"
	cfg.StyleTable = table
	m := New(cfg)

	require.Equal(t, "custom", m.Theme())
	require.Equal(t, "#040506", m.Frame().Background)
}

func TestSetStyleTable(t *testing.T) {
	cfg := testConfig("x")
	cfg.Theme = "dracula"
	m := New(cfg)

	table := &theme.StyleTable{Name: "custom", Base: theme.Style{Foreground: "#010203", Background: "#040506"}}
	m.SetStyleTable(table)
	require.Equal(t, "custom", m.Theme())
	require.Equal(t, "#040506", m.Frame().Background)

	m.SetStyleTable(nil)
	require.Equal(t, "dracula", m.Theme(), "nil falls back to the configured theme name")
	require.Equal(t, theme.Resolve("dracula").Base.Background, m.Frame().Background)
}

func TestPlatformLineHeight(t *testing.T) {
	cfg := testConfig("x")
	cfg.LineHeight = 30

	require.InDelta(t, 24.0, New(cfg).Frame().Layout.LineHeight, 0.001)

	cfg.Platform = render.PlatformIOS
	m := New(cfg)
	require.InDelta(t, 30.0, m.Frame().Layout.LineHeight, 0.001)
	require.Equal(t, "Menlo-Regular", m.Frame().Layout.FontFamily)
}
