// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// Common holds bindings shared by every view.
var Common = struct {
	Escape key.Binding
	Quit   key.Binding
	Help   key.Binding
}{
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to list"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "toggle help"),
	),
}

// PlaygroundKeyMap holds the playground's navigation bindings. Bindings
// that apply while a demo has focus must not be printable, since the
// editor demo receives text input.
type PlaygroundKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Focus     key.Binding
	Reset     key.Binding
	NextTheme key.Binding
	PrevTheme key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// Playground is the default playground keymap.
var Playground = PlaygroundKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous demo"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next demo"),
	),
	Focus: key.NewBinding(
		key.WithKeys("enter", "tab", "right", "l"),
		key.WithHelp("enter/tab", "open demo"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset demo"),
	),
	NextTheme: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "next theme"),
	),
	PrevTheme: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("f3", "previous theme"),
	),
	Help: Common.Help,
	Quit: Common.Quit,
}

// ShortHelp implements help.KeyMap.
func (k PlaygroundKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.NextTheme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k PlaygroundKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus, Common.Escape},
		{k.NextTheme, k.PrevTheme, k.Reset},
		{k.Help, k.Quit},
	}
}

// EditorKeyMap holds the editor demo's actions. None of these collide with
// the text input's own editing bindings.
type EditorKeyMap struct {
	Copy              key.Binding
	ToggleReadOnly    key.Binding
	ToggleLineNumbers key.Binding
	NextLanguage      key.Binding
}

// Editor is the default editor demo keymap.
var Editor = EditorKeyMap{
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy code"),
	),
	ToggleReadOnly: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "toggle read-only"),
	),
	ToggleLineNumbers: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "toggle line numbers"),
	),
	NextLanguage: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "next language"),
	),
}

// ShortHelp implements help.KeyMap.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.ToggleReadOnly, k.ToggleLineNumbers, k.NextLanguage, Common.Escape}
}

// FullHelp implements help.KeyMap.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
