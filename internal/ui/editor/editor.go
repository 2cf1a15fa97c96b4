// Package editor provides an editable code surface: an invisible textarea
// layered over a syntax highlighted rendering of the same text.
//
// The textarea owns the text, the caret and the scroll offset. Every change
// it reports is normalized, re-rendered into the highlight layer, and mirrored
// onto the highlight viewport so the two layers stay aligned.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/syntaxview/internal/log"
	"github.com/zjrosen/syntaxview/internal/render"
	"github.com/zjrosen/syntaxview/internal/theme"
)

// Config defines editor configuration with optional callbacks.
type Config struct {
	// Language is the lexer name used for highlighting.
	Language string

	// Theme names the style table. Ignored when StyleTable is set.
	Theme      string
	StyleTable *theme.StyleTable

	FontSize   float64
	FontFamily string
	Padding    float64

	// BackgroundColor overrides the theme background. "transparent" disables it.
	BackgroundColor string

	// HighlighterColor overrides the theme foreground.
	HighlighterColor string

	ShowLineNumbers            bool
	LineNumbersColor           string
	LineNumbersBackgroundColor string

	ReadOnly  bool
	AutoFocus bool

	InitialValue string

	// TabWidth is the number of spaces a tab expands to.
	TabWidth int

	Platform render.Platform

	// LineHeight is honored on iOS only.
	LineHeight float64

	// InputColor tints the caret. Useful to check layer alignment.
	InputColor string

	// TestID identifies the editor. Defaults to a random UUID.
	TestID string

	// OnChange produces a message after every text transition, including
	// the initial value. If nil, no message is emitted. Within one Update
	// the messages arrive in order, after that update's OnKeyPress
	// messages; across updates they may interleave, so hosts compare the
	// text against Value to drop stale ones.
	OnChange func(text string) tea.Msg

	// OnKeyPress produces a message for every key press, with the key as
	// reported by tea.KeyMsg.String. If nil, no message is emitted.
	OnKeyPress func(key string) tea.Msg
}

// DefaultConfig returns the editor defaults.
func DefaultConfig() Config {
	return Config{
		Theme:     theme.DefaultTheme,
		FontSize:  render.DefaultFontSize,
		Padding:   render.DefaultPadding,
		AutoFocus: true,
		TabWidth:  DefaultTabWidth,
	}
}

// Model is the editable code surface.
type Model struct {
	config Config
	id     string

	input     textInput
	highlight viewport.Model
	table     *theme.StyleTable
	frame     render.Frame

	text      string
	selection Selection

	width   int
	height  int
	focused bool
}

// New creates an editor. Zero font size, padding and tab width fall back to
// the defaults.
func New(cfg Config) Model {
	if cfg.FontSize <= 0 {
		cfg.FontSize = render.DefaultFontSize
	}
	if cfg.Padding < 0 {
		cfg.Padding = 0
	}
	if cfg.TabWidth < 1 {
		cfg.TabWidth = DefaultTabWidth
	}

	id := cfg.TestID
	if id == "" {
		id = uuid.NewString()
	}

	table := cfg.StyleTable
	if table == nil {
		table = theme.Resolve(cfg.Theme)
	}

	text := ConvertTabsToSpaces(cfg.InitialValue, cfg.TabWidth)

	m := Model{
		config:    cfg,
		id:        id,
		input:     newTextInput(text),
		highlight: viewport.New(0, 0),
		table:     table,
		text:      text,
	}
	m.input.readOnly = cfg.ReadOnly
	m.highlight.MouseWheelEnabled = false
	m.rerender()

	if cfg.AutoFocus {
		m.Focus()
	}
	return m
}

// Init emits OnChange for the initial value.
func (m Model) Init() tea.Cmd {
	return m.onChangeCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && !m.focused {
		return m, nil
	}

	events, cmd := m.input.Update(msg)
	return m, tea.Batch(cmd, m.apply(events))
}

// apply handles input layer events in order. Writing normalized text back
// to the input can produce further events, which are queued behind.
// Callback messages are delivered in sequence: key presses first, then
// every text change in the order it happened.
func (m *Model) apply(events []Event) tea.Cmd {
	var keyCmds, changeCmds []tea.Cmd
	for len(events) > 0 {
		ev := events[0]
		events = events[1:]

		switch ev := ev.(type) {
		case TextChangedEvent:
			text := ConvertTabsToSpaces(ev.Text, m.config.TabWidth)
			if text != ev.Text {
				sel := Selection{
					Start: expandedOffset(ev.Text, ev.Selection.Start, m.config.TabWidth),
					End:   expandedOffset(ev.Text, ev.Selection.End, m.config.TabWidth),
				}
				events = append(events, m.input.setValue(text, sel)...)
			}
			m.text = text
			m.rerender()
			changeCmds = append(changeCmds, m.onChangeCmd())
			log.Debug(log.CatEditor, "Text changed", "id", m.id, "bytes", len(text))

		case SelectionChangedEvent:
			m.selection = ev.Selection

		case ScrolledEvent:
			m.highlight.SetYOffset(ev.Offset)

		case KeyPressedEvent:
			if m.config.OnKeyPress != nil {
				k := ev.Key
				onKeyPress := m.config.OnKeyPress
				keyCmds = append(keyCmds, func() tea.Msg { return onKeyPress(k) })
			}
		}
	}
	cmds := append(keyCmds, changeCmds...)
	if len(cmds) == 0 {
		return nil
	}
	return tea.Sequence(cmds...)
}

func (m Model) onChangeCmd() tea.Cmd {
	if m.config.OnChange == nil {
		return nil
	}
	text := m.text
	onChange := m.config.OnChange
	return func() tea.Msg { return onChange(text) }
}

func (m Model) options() render.Options {
	opts := render.DefaultOptions()
	opts.FontSize = m.config.FontSize
	opts.FontFamily = m.config.FontFamily
	opts.Padding = m.config.Padding
	opts.BackgroundColor = m.config.BackgroundColor
	opts.ForegroundColor = m.config.HighlighterColor
	opts.LineNumbers = m.config.ShowLineNumbers
	if m.config.LineNumbersColor != "" {
		opts.LineNumbersColor = m.config.LineNumbersColor
	}
	opts.LineNumbersBackgroundColor = m.config.LineNumbersBackgroundColor
	opts.LineHeight = m.config.LineHeight
	opts.Platform = m.config.Platform
	return opts
}

// rerender rebuilds the highlight layer from the current text and mirrors
// the input offset onto it.
func (m *Model) rerender() {
	m.frame = render.Render(m.text, m.config.Language, m.table, m.options())
	lines := m.frame.Lines()

	width := m.width
	if width <= 0 {
		for _, line := range lines {
			width = max(width, lipgloss.Width(line))
		}
	}
	fill := lipgloss.NewStyle()
	if m.frame.Background != "" {
		fill = fill.Background(lipgloss.Color(m.frame.Background))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + fill.Render(strings.Repeat(" ", width-w))
		}
	}

	height := m.height
	if height <= 0 {
		height = len(lines)
	}

	m.highlight.Width = width
	m.highlight.Height = height
	m.highlight.SetContent(strings.Join(lines, "\n"))

	m.input.padRows = m.frame.Layout.PadRows
	m.input.height = m.height
	m.highlight.SetYOffset(m.input.offset)
}

// View renders the highlight layer with the caret drawn over it.
func (m Model) View() string {
	view := m.highlight.View()
	if !m.focused {
		return view
	}

	row, col := m.input.cursor()
	lines := strings.Split(view, "\n")
	idx := m.frame.Layout.PadRows + row - m.highlight.YOffset
	if idx < 0 || idx >= len(lines) {
		return view
	}
	lines[idx] = m.drawCursor(lines[idx], row, col)
	return strings.Join(lines, "\n")
}

func (m Model) drawCursor(line string, row, col int) string {
	var src []rune
	if rows := strings.Split(m.text, "\n"); row < len(rows) {
		src = []rune(rows[row])
	}
	col = min(col, len(src))

	x := m.frame.Layout.TextColumn() + runewidth.StringWidth(string(src[:col]))
	cluster, _, w, _ := uniseg.FirstGraphemeClusterInString(string(src[col:]), -1)
	if cluster == "" {
		cluster, w = " ", 1
	}
	if x+w > lipgloss.Width(line) {
		return line
	}

	return ansi.Truncate(line, x, "") + m.cursorStyle().Render(cluster) + ansi.TruncateLeft(line, x+w, "")
}

func (m Model) cursorStyle() lipgloss.Style {
	if m.config.InputColor != "" {
		st := lipgloss.NewStyle().Background(lipgloss.Color(m.config.InputColor))
		if m.frame.Background != "" {
			st = st.Foreground(lipgloss.Color(m.frame.Background))
		}
		return st
	}
	st := lipgloss.NewStyle().Reverse(true)
	if m.frame.Foreground != "" {
		st = st.Foreground(lipgloss.Color(m.frame.Foreground))
	}
	if m.frame.Background != "" {
		st = st.Background(lipgloss.Color(m.frame.Background))
	}
	return st
}

// SetSize sets the visible size. Zero sizes the layer to its content.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	events := m.input.resize(height)
	m.rerender()
	m.apply(events)
}

// Focus focuses the editor.
func (m *Model) Focus() {
	m.focused = true
	m.input.ta.Focus()
}

// Blur removes focus from the editor.
func (m *Model) Blur() {
	m.focused = false
	m.input.ta.Blur()
}

// Focused returns whether the editor is focused.
func (m Model) Focused() bool {
	return m.focused
}

// Value returns the current, normalized text.
func (m Model) Value() string {
	return m.text
}

// SetValue replaces the text. The caret is kept at its offset when possible.
func (m *Model) SetValue(text string) tea.Cmd {
	text = ConvertTabsToSpaces(text, m.config.TabWidth)
	end := min(m.selection.End, len([]rune(text)))
	events := m.input.setValue(text, Selection{Start: end, End: end})
	m.text = text
	m.rerender()
	return tea.Sequence(m.apply(events), m.onChangeCmd())
}

// Selection returns the current selection as rune offsets.
func (m Model) Selection() Selection {
	return m.selection
}

// ScrollOffset returns the input layer's vertical offset in lines.
func (m Model) ScrollOffset() int {
	return m.input.offset
}

// HighlightOffset returns the highlight layer's vertical offset in lines.
func (m Model) HighlightOffset() int {
	return m.highlight.YOffset
}

// SetReadOnly toggles editing. Navigation, key callbacks and scrolling stay
// active while read-only.
func (m *Model) SetReadOnly(readOnly bool) {
	m.config.ReadOnly = readOnly
	m.input.readOnly = readOnly
}

// ReadOnly reports whether editing is disabled.
func (m Model) ReadOnly() bool {
	return m.config.ReadOnly
}

// SetTheme switches to a named theme.
func (m *Model) SetTheme(name string) {
	m.config.Theme = name
	m.config.StyleTable = nil
	m.table = theme.Resolve(name)
	m.rerender()
}

// SetStyleTable switches to an explicit style table.
func (m *Model) SetStyleTable(table *theme.StyleTable) {
	if table == nil {
		m.SetTheme(m.config.Theme)
		return
	}
	m.config.StyleTable = table
	m.table = table
	m.rerender()
}

// Theme returns the name of the active style table.
func (m Model) Theme() string {
	return m.table.Name
}

// SetLanguage switches the highlighting language.
func (m *Model) SetLanguage(language string) {
	m.config.Language = language
	m.rerender()
}

// Language returns the highlighting language.
func (m Model) Language() string {
	return m.config.Language
}

// SetShowLineNumbers toggles the line number gutter.
func (m *Model) SetShowLineNumbers(show bool) {
	m.config.ShowLineNumbers = show
	m.rerender()
}

// Frame returns the last rendered frame.
func (m Model) Frame() render.Frame {
	return m.frame
}

// TestID returns the editor id.
func (m Model) TestID() string {
	return m.id
}

// HighlighterID identifies the highlight layer.
func (m Model) HighlighterID() string {
	return m.id + "-syntax-highlighter"
}

// InputID identifies the input layer.
func (m Model) InputID() string {
	return m.id + "-text-input"
}
