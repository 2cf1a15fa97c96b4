// Package playground provides an interactive showcase of the code
// components.
package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/syntaxview/internal/keys"
	"github.com/zjrosen/syntaxview/internal/mode/shared"
	"github.com/zjrosen/syntaxview/internal/ui/codeblock"
	"github.com/zjrosen/syntaxview/internal/ui/editor"
	"github.com/zjrosen/syntaxview/internal/ui/inlinecode"
	"github.com/zjrosen/syntaxview/internal/ui/styles"
)

// DemoEnv carries what a demo needs to build itself.
type DemoEnv struct {
	Width  int
	Height int

	Theme    string
	Language string

	// Code replaces the built-in sample when set.
	Code string

	// Editor is the base configuration for the editor demo.
	Editor editor.Config

	// ConfigPath receives language changes made in the editor demo.
	// Empty disables saving.
	ConfigPath string

	Clipboard shared.Clipboard
}

func (e DemoEnv) code() string {
	if e.Code != "" {
		return e.Code
	}
	return sampleFor(e.Language)
}

// ComponentDemo represents a demo-able component in the playground.
type ComponentDemo struct {
	Name        string
	Description string
	Create      func(env DemoEnv) DemoModel
}

// DemoModel is the interface that all demo models must implement.
type DemoModel interface {
	// Update returns the model, a command and a short description of the
	// action taken, if any.
	Update(msg tea.Msg) (DemoModel, tea.Cmd, string)
	View() string
	SetSize(width, height int) DemoModel
	SetTheme(name string) DemoModel
	SetFocused(focused bool) DemoModel
	Reset() DemoModel
	// Init returns the command to run when the demo is mounted.
	Init() tea.Cmd
}

// GetComponentDemos returns the registry of all component demos.
func GetComponentDemos() []ComponentDemo {
	return []ComponentDemo{
		{
			Name:        "Inline code",
			Description: "Highlighted spans inside wrapped prose",
			Create:      createInlineDemo,
		},
		{
			Name:        "Code block",
			Description: "Framed, padded block with line numbers",
			Create:      createBlockDemo,
		},
		{
			Name:        "Code editor",
			Description: "Editable surface with live highlighting",
			Create:      createEditorDemo,
		},
		{
			Name:        "Theme classes",
			Description: "Every class in the active style table",
			Create:      createClassesDemo,
		},
		{
			Name:        "About",
			Description: "Component reference",
			Create:      createAboutDemo,
		},
	}
}

// renderDemoArea renders the demo with a last-action line underneath.
func renderDemoArea(demo DemoModel, lastAction string) string {
	var sb strings.Builder
	if demo != nil {
		sb.WriteString(demo.View())
	}
	if lastAction != "" {
		actionStyle := lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true)
		sb.WriteString("\n\n")
		sb.WriteString(" " + actionStyle.Render("Last action: "+lastAction))
	}
	return sb.String()
}

// =============================================================================
// Inline code
// =============================================================================

// InlineDemoModel shows inline labels flowing inside a paragraph.
type InlineDemoModel struct {
	env DemoEnv
}

func createInlineDemo(env DemoEnv) DemoModel {
	return &InlineDemoModel{env: env}
}

func (m *InlineDemoModel) label(code, language string) inlinecode.Label {
	l := inlinecode.New(code)
	l.Language = language
	l.Theme = m.env.Theme
	return l
}

func (m *InlineDemoModel) Update(tea.Msg) (DemoModel, tea.Cmd, string) {
	return m, nil, ""
}

func (m *InlineDemoModel) View() string {
	width := max(m.env.Width-2, 10)
	paragraph := inlinecode.Paragraph(width,
		inlinecode.Text("Call "),
		m.label(`print("hello")`, "python"),
		inlinecode.Text(" to greet, measure a list with "),
		m.label("len(items)", "python"),
		inlinecode.Text(", or in Go reach for "),
		m.label(`fmt.Sprintf("%d", n)`, "go"),
		inlinecode.Text(". Spans keep the surrounding text flowing and wrap with it; they never draw a background, padding or gutter."),
	)

	var sb strings.Builder
	sb.WriteString(styles.HeaderStyle.Render("Paragraph"))
	sb.WriteString("\n\n")
	sb.WriteString(paragraph)
	sb.WriteString("\n\n")
	sb.WriteString(styles.HeaderStyle.Render("Languages"))
	sb.WriteString("\n\n")
	for _, row := range [][2]string{
		{"python", "[x * 2 for x in xs if x]"},
		{"go", "for i := range n { total += i }"},
		{"javascript", "const ok = await fetch(url);"},
		{"rust", "let v: Vec<u8> = Vec::new();"},
	} {
		sb.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%-11s", row[0])))
		sb.WriteString(m.label(row[1], row[0]).View())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *InlineDemoModel) SetSize(width, height int) DemoModel {
	m.env.Width, m.env.Height = width, height
	return m
}

func (m *InlineDemoModel) SetTheme(name string) DemoModel {
	m.env.Theme = name
	return m
}

func (m *InlineDemoModel) SetFocused(bool) DemoModel { return m }

func (m *InlineDemoModel) Init() tea.Cmd { return nil }

func (m *InlineDemoModel) Reset() DemoModel {
	return createInlineDemo(m.env)
}

// =============================================================================
// Code block
// =============================================================================

// BlockDemoModel shows a framed code block in a scrollable viewport.
type BlockDemoModel struct {
	env      DemoEnv
	block    codeblock.Block
	viewport viewport.Model
}

func createBlockDemo(env DemoEnv) DemoModel {
	b := codeblock.New(env.code(), env.Language)
	b.Theme = env.Theme
	b.ShowLineNumbers = true

	m := &BlockDemoModel{env: env, block: b, viewport: viewport.New(0, 0)}
	m.refresh()
	return m
}

func (m *BlockDemoModel) refresh() {
	m.block.Width = max(m.env.Width, 20)
	m.viewport.Width = m.env.Width
	// One line for the key hints.
	m.viewport.Height = max(m.env.Height-1, 1)
	m.viewport.SetContent(m.block.View())
}

func (m *BlockDemoModel) Update(msg tea.Msg) (DemoModel, tea.Cmd, string) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Editor.ToggleLineNumbers):
			m.block.ShowLineNumbers = !m.block.ShowLineNumbers
			m.refresh()
			return m, nil, fmt.Sprintf("Line numbers: %t", m.block.ShowLineNumbers)
		case key.Matches(msg, keys.Editor.NextLanguage) && m.env.Code == "":
			m.env.Language = nextLanguage(m.block.Language)
			m.block.Language = m.env.Language
			m.block.Code = sampleFor(m.env.Language)
			m.refresh()
			return m, nil, "Language: " + m.env.Language
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd, ""
}

func (m *BlockDemoModel) View() string {
	hints := [][2]string{{keys.Editor.ToggleLineNumbers.Help().Key, "line numbers"}}
	if m.env.Code == "" {
		hints = append(hints, [2]string{keys.Editor.NextLanguage.Help().Key, "language"})
	}
	return m.viewport.View() + "\n" + styles.MutedStyle.Render(" "+styles.KeyHints(hints...))
}

func (m *BlockDemoModel) SetSize(width, height int) DemoModel {
	m.env.Width, m.env.Height = width, height
	m.refresh()
	return m
}

func (m *BlockDemoModel) SetTheme(name string) DemoModel {
	m.env.Theme = name
	m.block.Theme = name
	m.refresh()
	return m
}

func (m *BlockDemoModel) SetFocused(bool) DemoModel { return m }

func (m *BlockDemoModel) Init() tea.Cmd { return nil }

func (m *BlockDemoModel) Reset() DemoModel {
	return createBlockDemo(m.env)
}
