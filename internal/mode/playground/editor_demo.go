package playground

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/syntaxview/internal/config"
	"github.com/zjrosen/syntaxview/internal/keys"
	"github.com/zjrosen/syntaxview/internal/log"
	"github.com/zjrosen/syntaxview/internal/ui/editor"
	"github.com/zjrosen/syntaxview/internal/ui/shared/panes"
	"github.com/zjrosen/syntaxview/internal/ui/styles"
)

// editorChangedMsg carries the editor's OnChange callback.
type editorChangedMsg struct {
	text string
}

// editorKeyMsg carries the editor's OnKeyPress callback.
type editorKeyMsg struct {
	key string
}

// languageSavedMsg reports the result of writing the language to the
// config file.
type languageSavedMsg struct {
	language string
	err      error
}

// EditorDemoModel wraps the editable code surface. Host actions (copy,
// read-only, line numbers, language) are driven by the editor's key
// callback rather than by intercepting keys before the editor sees them.
type EditorDemoModel struct {
	env     DemoEnv
	editor  editor.Model
	help    help.Model
	focused bool

	// reported is the text last acknowledged, through OnChange or an
	// action.
	reported string
}

func createEditorDemo(env DemoEnv) DemoModel {
	cfg := env.Editor
	cfg.Theme = env.Theme
	cfg.Language = env.Language
	cfg.InitialValue = env.code()
	cfg.AutoFocus = false
	cfg.OnChange = func(text string) tea.Msg { return editorChangedMsg{text: text} }
	cfg.OnKeyPress = func(k string) tea.Msg { return editorKeyMsg{key: k} }

	ed := editor.New(cfg)
	m := &EditorDemoModel{
		env:      env,
		editor:   ed,
		help:     help.New(),
		reported: ed.Value(),
	}
	m.resize()
	return m
}

func (m *EditorDemoModel) resize() {
	// One line for the key help under the pane, two for its border.
	m.editor.SetSize(max(m.env.Width-2, 1), max(m.env.Height-3, 1))
	m.help.Width = m.env.Width
}

func bound(b key.Binding, k string) bool {
	return slices.Contains(b.Keys(), k)
}

func (m *EditorDemoModel) Update(msg tea.Msg) (DemoModel, tea.Cmd, string) {
	switch msg := msg.(type) {
	case editorChangedMsg:
		// Changes from earlier updates can arrive after newer ones.
		if msg.text != m.editor.Value() || msg.text == m.reported {
			return m, nil, ""
		}
		m.reported = msg.text
		return m, nil, fmt.Sprintf("Edited: %d lines", strings.Count(msg.text, "\n")+1)

	case editorKeyMsg:
		return m.handleAction(msg.key)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd, ""
}

func (m *EditorDemoModel) handleAction(k string) (DemoModel, tea.Cmd, string) {
	model, cmd, action := m.runAction(k)
	if action != "" {
		m.reported = m.editor.Value()
	}
	return model, cmd, action
}

func (m *EditorDemoModel) runAction(k string) (DemoModel, tea.Cmd, string) {
	switch {
	case bound(keys.Editor.Copy, k):
		if m.env.Clipboard == nil {
			return m, nil, "Copy unavailable"
		}
		if err := m.env.Clipboard.Copy(m.editor.Value()); err != nil {
			log.ErrorErr(log.CatUI, "Copy failed", err)
			return m, nil, "Copy failed: " + err.Error()
		}
		return m, nil, fmt.Sprintf("Copied %d bytes", len(m.editor.Value()))

	case bound(keys.Editor.ToggleReadOnly, k):
		m.editor.SetReadOnly(!m.editor.ReadOnly())
		return m, nil, fmt.Sprintf("Read-only: %t", m.editor.ReadOnly())

	case bound(keys.Editor.ToggleLineNumbers, k):
		m.env.Editor.ShowLineNumbers = !m.env.Editor.ShowLineNumbers
		m.editor.SetShowLineNumbers(m.env.Editor.ShowLineNumbers)
		return m, nil, fmt.Sprintf("Line numbers: %t", m.env.Editor.ShowLineNumbers)

	case bound(keys.Editor.NextLanguage, k):
		m.env.Language = nextLanguage(m.editor.Language())
		m.editor.SetLanguage(m.env.Language)
		return m, m.saveLanguage(), "Language: " + m.env.Language
	}
	return m, nil, ""
}

func (m *EditorDemoModel) saveLanguage() tea.Cmd {
	if m.env.ConfigPath == "" {
		return nil
	}
	path, language := m.env.ConfigPath, m.env.Language
	return func() tea.Msg {
		return languageSavedMsg{language: language, err: config.SaveLanguage(path, language)}
	}
}

// caretLine returns the 1-indexed line holding the caret.
func (m *EditorDemoModel) caretLine() int {
	runes := []rune(m.editor.Value())
	end := min(m.editor.Selection().End, len(runes))
	return strings.Count(string(runes[:end]), "\n") + 1
}

func (m *EditorDemoModel) View() string {
	mode := "editing"
	if m.editor.ReadOnly() {
		mode = "read-only"
	}
	pane := panes.BorderedPane(panes.BorderConfig{
		Content:            m.editor.View(),
		Width:              m.env.Width,
		Height:             max(m.env.Height-1, 3),
		TopLeft:            m.editor.Language(),
		TopRight:           m.editor.Theme(),
		BottomLeft:         mode,
		BottomRight:        fmt.Sprintf("Ln %d", m.caretLine()),
		Focused:            m.focused,
		FocusedBorderColor: styles.BorderHighlightFocusColor,
	})
	return pane + "\n" + m.help.ShortHelpView(keys.Editor.ShortHelp())
}

func (m *EditorDemoModel) SetSize(width, height int) DemoModel {
	m.env.Width, m.env.Height = width, height
	m.resize()
	return m
}

func (m *EditorDemoModel) SetTheme(name string) DemoModel {
	m.env.Theme = name
	m.editor.SetTheme(name)
	return m
}

func (m *EditorDemoModel) SetFocused(focused bool) DemoModel {
	m.focused = focused
	if focused {
		m.editor.Focus()
	} else {
		m.editor.Blur()
	}
	return m
}

func (m *EditorDemoModel) Reset() DemoModel {
	fresh := createEditorDemo(m.env)
	return fresh.SetFocused(m.focused)
}

// Init returns the editor's initial OnChange.
func (m *EditorDemoModel) Init() tea.Cmd {
	return m.editor.Init()
}
