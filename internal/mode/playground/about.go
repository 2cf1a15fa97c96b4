package playground

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/syntaxview/internal/log"
	"github.com/zjrosen/syntaxview/internal/ui/markdown"
	"github.com/zjrosen/syntaxview/internal/ui/shared/panes"
)

const aboutMarkdown = `# syntaxview

Terminal components for displaying and editing highlighted source code.

## Components

- **Inline code** renders a highlighted span that flows inside text. It never
  draws a background, padding or line numbers.
- **Code block** renders a framed, padded block with an optional line number
  gutter. Empty lines keep their height.
- **Code editor** stacks an invisible text input over a highlighted copy of the
  same text. Scrolling the input scrolls the highlight; tabs become spaces.

## Themes

Any chroma style works, and highlight.js names such as ` + "`atomOneDark`" + ` are
accepted. Unknown names fall back to **onedark**. Press ` + "`f2`" + ` and ` + "`f3`" + `
to cycle; the choice is written back to the config file.

## Example

` + "```go" + `
block := codeblock.New(src, "go")
block.ShowLineNumbers = true
fmt.Println(block.View())
` + "```" + `
`

// AboutDemoModel renders the reference page through glamour, with fenced
// code in the active theme.
type AboutDemoModel struct {
	env      DemoEnv
	viewport viewport.Model
	rendered string
}

func createAboutDemo(env DemoEnv) DemoModel {
	m := &AboutDemoModel{env: env, viewport: viewport.New(0, 0)}
	m.render()
	return m
}

func (m *AboutDemoModel) render() {
	width := max(min(m.env.Width-4, 80), 20)
	r, err := markdown.New(width, "dark", m.env.Theme)
	if err != nil {
		log.ErrorErr(log.CatUI, "Creating markdown renderer failed", err)
		m.rendered = "Error creating markdown renderer: " + err.Error()
		return
	}
	out, err := r.Render(aboutMarkdown)
	if err != nil {
		log.ErrorErr(log.CatUI, "Rendering markdown failed", err)
		m.rendered = "Error rendering markdown: " + err.Error()
		return
	}
	m.rendered = out
}

func (m *AboutDemoModel) Update(msg tea.Msg) (DemoModel, tea.Cmd, string) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd, ""
}

func (m *AboutDemoModel) View() string {
	return panes.ScrollablePane(m.env.Width, m.env.Height, panes.ScrollableConfig{
		Viewport:  &m.viewport,
		LeftTitle: "About",
	}, func(int) string {
		return m.rendered
	})
}

func (m *AboutDemoModel) SetSize(width, height int) DemoModel {
	resized := width != m.env.Width
	m.env.Width, m.env.Height = width, height
	if resized {
		m.render()
	}
	return m
}

func (m *AboutDemoModel) SetTheme(name string) DemoModel {
	m.env.Theme = name
	m.render()
	return m
}

func (m *AboutDemoModel) SetFocused(bool) DemoModel { return m }

func (m *AboutDemoModel) Init() tea.Cmd { return nil }

func (m *AboutDemoModel) Reset() DemoModel {
	return createAboutDemo(m.env)
}
