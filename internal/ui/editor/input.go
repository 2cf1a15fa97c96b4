package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Selection is a rune offset range into the text. Start == End is a caret.
type Selection struct {
	Start int
	End   int
}

// Event is emitted by the input layer.
type Event interface {
	event()
}

// TextChangedEvent reports new input text, before tab normalization.
type TextChangedEvent struct {
	Text      string
	Selection Selection
}

// SelectionChangedEvent reports a moved caret or selection.
type SelectionChangedEvent struct {
	Selection Selection
}

// ScrolledEvent reports the input layer's vertical offset in lines.
type ScrolledEvent struct {
	Offset int
}

// KeyPressedEvent reports a raw key press.
type KeyPressedEvent struct {
	Key string
}

func (TextChangedEvent) event()      {}
func (SelectionChangedEvent) event() {}
func (ScrolledEvent) event()         {}
func (KeyPressedEvent) event()       {}

const (
	// inputWidth keeps the textarea from soft wrapping so its rows match
	// the highlighted rows one to one.
	inputWidth = 4096
	wheelStep  = 3
)

// textInput is the invisible editing layer. It owns the text the user types,
// the caret and the scroll offset, and reports changes as events.
type textInput struct {
	ta       textarea.Model
	readOnly bool

	// padRows is the padding above and below the rows in the highlighted
	// layer, so offsets are comparable across the two layers.
	padRows int
	height  int
	offset  int

	text string
	sel  Selection
}

func newTextInput(value string) textInput {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.SetWidth(inputWidth)
	ta.Cursor.SetMode(cursor.CursorHide)
	ta.SetValue(value)

	in := textInput{ta: ta, text: ta.Value()}
	in.placeCursor(0)
	return in
}

// Update feeds a message to the input layer and returns the resulting events.
func (in *textInput) Update(msg tea.Msg) ([]Event, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		events := []Event{KeyPressedEvent{Key: msg.String()}}
		if in.readOnly && !in.isNavigation(msg) {
			return events, nil
		}
		if ev, ok := in.rawInsert(msg); ok {
			return append(events, ev), nil
		}
		var cmd tea.Cmd
		in.ta, cmd = in.ta.Update(msg)
		return append(events, in.sync()...), cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return nil, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return in.scrollTo(in.offset - wheelStep), nil
		case tea.MouseButtonWheelDown:
			return in.scrollTo(in.offset + wheelStep), nil
		}
		return nil, nil
	}

	var cmd tea.Cmd
	in.ta, cmd = in.ta.Update(msg)
	return nil, cmd
}

// rawInsert handles input containing tabs. The textarea would flatten tabs
// to single spaces, so the raw text is reported and the owner writes the
// normalized value back with setValue.
func (in *textInput) rawInsert(msg tea.KeyMsg) (Event, bool) {
	var s string
	switch {
	case msg.Type == tea.KeyTab:
		s = "\t"
	case msg.Type == tea.KeyRunes && strings.ContainsRune(string(msg.Runes), '\t'):
		s = string(msg.Runes)
	default:
		return nil, false
	}

	value := []rune(in.ta.Value())
	at := min(in.caret(), len(value))
	raw := string(value[:at]) + s + string(value[at:])
	end := at + len([]rune(s))
	return TextChangedEvent{Text: raw, Selection: Selection{Start: end, End: end}}, true
}

func (in *textInput) isNavigation(msg tea.KeyMsg) bool {
	km := in.ta.KeyMap
	return key.Matches(msg,
		km.CharacterForward, km.CharacterBackward,
		km.WordForward, km.WordBackward,
		km.LineNext, km.LinePrevious,
		km.LineStart, km.LineEnd,
		km.InputBegin, km.InputEnd,
	)
}

// setValue replaces the text and places the caret at sel.End.
func (in *textInput) setValue(text string, sel Selection) []Event {
	in.ta.SetValue(text)
	in.text = text
	in.placeCursor(sel.End)
	return in.sync()
}

// resize sets the visible height and keeps the caret in view.
func (in *textInput) resize(height int) []Event {
	in.height = height
	return in.sync()
}

// sync compares the textarea with the last reported state and emits the
// difference.
func (in *textInput) sync() []Event {
	var events []Event
	if v := in.ta.Value(); v != in.text {
		in.text = v
		events = append(events, TextChangedEvent{Text: v, Selection: in.selection()})
	}
	if sel := in.selection(); sel != in.sel {
		in.sel = sel
		events = append(events, SelectionChangedEvent{Selection: sel})
	}

	prev := in.offset
	in.ensureCursorVisible()
	if in.offset != prev {
		events = append(events, ScrolledEvent{Offset: in.offset})
	}
	return events
}

func (in *textInput) scrollTo(offset int) []Event {
	prev := in.offset
	in.offset = max(min(offset, in.maxOffset()), 0)
	if in.offset == prev {
		return nil
	}
	return []Event{ScrolledEvent{Offset: in.offset}}
}

func (in *textInput) ensureCursorVisible() {
	if in.height <= 0 {
		in.offset = 0
		return
	}
	line := in.padRows + in.ta.Line()
	in.offset = min(in.offset, line)
	if line >= in.offset+in.height {
		in.offset = line - in.height + 1
	}
	in.offset = max(min(in.offset, in.maxOffset()), 0)
}

func (in *textInput) maxOffset() int {
	total := 2*in.padRows + in.ta.LineCount()
	return max(total-in.height, 0)
}

// cursor returns the caret row and rune column.
func (in *textInput) cursor() (row, col int) {
	li := in.ta.LineInfo()
	return in.ta.Line(), li.StartColumn + li.ColumnOffset
}

// caret returns the caret as a rune offset into the text.
func (in *textInput) caret() int {
	row, col := in.cursor()
	return positionToOffset(in.ta.Value(), row, col)
}

func (in *textInput) selection() Selection {
	at := in.caret()
	return Selection{Start: at, End: at}
}

// placeCursor moves the caret to a rune offset. The textarea leaves the caret
// at the end after SetValue, so it walks up to the target row.
func (in *textInput) placeCursor(offset int) {
	row, col := offsetToPosition(in.ta.Value(), offset)
	for i := in.ta.Line(); i > row; i-- {
		in.ta.CursorUp()
	}
	for i := in.ta.Line(); i < row; i++ {
		in.ta.CursorDown()
	}
	in.ta.SetCursor(col)
}

func offsetToPosition(text string, offset int) (row, col int) {
	for i, line := range strings.Split(text, "\n") {
		n := len([]rune(line))
		if offset <= n {
			return i, max(offset, 0)
		}
		offset -= n + 1
		row, col = i, n
	}
	return row, col
}

func positionToOffset(text string, row, col int) int {
	offset := 0
	for i, line := range strings.Split(text, "\n") {
		n := len([]rune(line))
		if i == row {
			return offset + min(col, n)
		}
		offset += n + 1
	}
	return max(offset-1, 0)
}
