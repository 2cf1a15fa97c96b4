package playground

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/syntaxview/internal/theme"
	"github.com/zjrosen/syntaxview/internal/ui/shared/panes"
	"github.com/zjrosen/syntaxview/internal/ui/styles"
)

// ClassesDemoModel lists every class of the active style table with a
// styled swatch.
type ClassesDemoModel struct {
	env      DemoEnv
	viewport viewport.Model
}

func createClassesDemo(env DemoEnv) DemoModel {
	return &ClassesDemoModel{env: env, viewport: viewport.New(0, 0)}
}

// renderClassTable renders one row per class: name, swatch, colors and
// attributes.
func renderClassTable(table *theme.StyleTable, width int) string {
	names := make([]string, 0, len(table.Classes))
	nameWidth := len("base")
	for name := range table.Classes {
		names = append(names, name)
		nameWidth = max(nameWidth, len(name))
	}
	slices.Sort(names)

	var sb strings.Builder
	row := func(name string, st theme.Style) {
		swatch := st
		if swatch.Background == "" {
			swatch.Background = table.Base.Background
		}
		if swatch.Foreground == "" {
			swatch.Foreground = table.Base.Foreground
		}
		line := fmt.Sprintf("%-*s  %s  %s", nameWidth, name,
			swatch.Lipgloss().Render(" sample "),
			styles.MutedStyle.Render(describeStyle(st)))
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	row("base", table.Base)
	sb.WriteString(styles.MutedStyle.Render(strings.Repeat("─", max(min(width, nameWidth+40), 1))))
	sb.WriteString("\n")
	for _, name := range names {
		row(name, table.Classes[name])
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func describeStyle(st theme.Style) string {
	var parts []string
	if st.Foreground != "" {
		parts = append(parts, "fg "+st.Foreground)
	}
	if st.Background != "" {
		parts = append(parts, "bg "+st.Background)
	}
	for _, a := range []struct {
		name string
		on   bool
	}{
		{"bold", st.Bold.IsOn()},
		{"italic", st.Italic.IsOn()},
		{"underline", st.Underline.IsOn()},
	} {
		if a.on {
			parts = append(parts, a.name)
		}
	}
	return strings.Join(parts, " ")
}

func (m *ClassesDemoModel) Update(msg tea.Msg) (DemoModel, tea.Cmd, string) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd, ""
}

func (m *ClassesDemoModel) View() string {
	table := theme.Resolve(m.env.Theme)
	return panes.ScrollablePane(m.env.Width, m.env.Height, panes.ScrollableConfig{
		Viewport:   &m.viewport,
		LeftTitle:  table.Name,
		RightTitle: fmt.Sprintf("%d classes", len(table.Classes)),
		TitleColor: lipgloss.Color(table.Base.Foreground),
	}, func(width int) string {
		return renderClassTable(table, width)
	})
}

func (m *ClassesDemoModel) SetSize(width, height int) DemoModel {
	m.env.Width, m.env.Height = width, height
	return m
}

func (m *ClassesDemoModel) SetTheme(name string) DemoModel {
	m.env.Theme = name
	m.viewport.GotoTop()
	return m
}

func (m *ClassesDemoModel) SetFocused(bool) DemoModel { return m }

func (m *ClassesDemoModel) Init() tea.Cmd { return nil }

func (m *ClassesDemoModel) Reset() DemoModel {
	return createClassesDemo(m.env)
}
