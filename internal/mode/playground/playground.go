package playground

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/syntaxview/internal/config"
	"github.com/zjrosen/syntaxview/internal/keys"
	"github.com/zjrosen/syntaxview/internal/log"
	"github.com/zjrosen/syntaxview/internal/mode/shared"
	"github.com/zjrosen/syntaxview/internal/theme"
	"github.com/zjrosen/syntaxview/internal/ui/editor"
	"github.com/zjrosen/syntaxview/internal/ui/shared/panes"
	"github.com/zjrosen/syntaxview/internal/ui/styles"
	"github.com/zjrosen/syntaxview/internal/ui/toaster"
	"github.com/zjrosen/syntaxview/internal/watcher"
)

// FocusPane represents which pane has focus.
type FocusPane int

const (
	// FocusSidebar means the sidebar has focus.
	FocusSidebar FocusPane = iota
	// FocusDemo means the demo area has focus.
	FocusDemo
)

// Config configures the playground.
type Config struct {
	Theme    string
	Language string

	// Code replaces the built-in samples when set.
	Code string

	// Editor is the base configuration of the editor demo.
	Editor editor.Config

	// ConfigPath is where theme changes are saved and reloaded from.
	// Empty disables both.
	ConfigPath string

	// Changes signals that ConfigPath changed on disk.
	Changes <-chan struct{}

	Clipboard shared.Clipboard

	// ToastDuration is how long theme and config notices stay up. Zero
	// uses the toaster default; negative keeps them until replaced.
	ToastDuration time.Duration
}

// Model holds the playground state.
type Model struct {
	focus         FocusPane
	selectedIndex int
	lastAction    string

	demos          []ComponentDemo
	demoModel      DemoModel
	demoModelIndex int

	env        DemoEnv
	configPath string
	changes    <-chan struct{}

	zones *zone.Manager
	help  help.Model
	toast toaster.Model

	width    int
	height   int
	quitting bool
}

// themeSavedMsg reports the result of writing the theme to the config file.
type themeSavedMsg struct {
	theme string
	err   error
}

// New creates a new playground model.
func New(cfg Config) Model {
	language := cfg.Language
	if language == "" {
		language = "python"
	}
	clip := cfg.Clipboard
	if clip == nil {
		clip = shared.SystemClipboard{}
	}

	toast := toaster.New()
	toast.Duration = cfg.ToastDuration

	m := Model{
		focus:          FocusSidebar,
		demos:          GetComponentDemos(),
		demoModelIndex: -1,
		env: DemoEnv{
			Theme:      theme.Resolve(cfg.Theme).Name,
			Language:   language,
			Code:       cfg.Code,
			Editor:     cfg.Editor,
			Clipboard:  clip,
			ConfigPath: cfg.ConfigPath,
		},
		configPath: cfg.ConfigPath,
		changes:    cfg.Changes,
		zones:      zone.New(),
		help:       help.New(),
		toast:      toast,
	}
	m.loadDemo()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var demoInit tea.Cmd
	if m.demoModel != nil {
		demoInit = m.demoModel.Init()
	}
	return tea.Batch(tea.EnableMouseCellMotion, m.listen(), demoInit)
}

func (m Model) listen() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	return watcher.Listen(m.changes, m.configPath)
}

// Theme returns the active theme name.
func (m Model) Theme() string {
	return m.env.Theme
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.toast = m.toast.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.demoModel != nil {
			w, h := m.demoSize()
			m.demoModel = m.demoModel.SetSize(w, h)
		}
		return m, nil

	case watcher.ChangedMsg:
		next, cmd := m.reloadConfig()
		return next, tea.Batch(cmd, next.listen())

	case themeSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "Saving theme failed", msg.err, "theme", msg.theme)
			m.lastAction = "Could not save theme: " + msg.err.Error()
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Show("Could not save theme", toaster.Error)
			return m, cmd
		}
		return m, nil

	case languageSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "Saving language failed", msg.err, "language", msg.language)
			m.lastAction = "Could not save language: " + msg.err.Error()
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Show("Could not save language", toaster.Error)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m.forward(msg)
}

// forward passes msg to the loaded demo.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.demoModel == nil {
		return m, nil
	}
	var cmd tea.Cmd
	var action string
	m.demoModel, cmd, action = m.demoModel.Update(msg)
	if action != "" {
		m.lastAction = action
	}
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Playground.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Playground.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Playground.NextTheme):
		return m.cycleTheme(1)
	case key.Matches(msg, keys.Playground.PrevTheme):
		return m.cycleTheme(-1)
	case key.Matches(msg, keys.Playground.Reset):
		if m.demoModel != nil {
			m.demoModel = m.demoModel.Reset()
			m.lastAction = "Reset: " + m.demos[m.selectedIndex].Name
			return m, m.demoModel.Init()
		}
		return m, nil
	}

	if m.focus == FocusDemo {
		if key.Matches(msg, keys.Common.Escape) {
			m.setFocus(FocusSidebar)
			return m, nil
		}
		return m.forward(msg)
	}
	return m.handleSidebarKeys(msg)
}

func (m Model) handleSidebarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Playground.Down):
		m.selectedIndex = (m.selectedIndex + 1) % len(m.demos)
		return m, m.loadDemo()
	case key.Matches(msg, keys.Playground.Up):
		m.selectedIndex = (m.selectedIndex - 1 + len(m.demos)) % len(m.demos)
		return m, m.loadDemo()
	case key.Matches(msg, keys.Playground.Focus):
		m.setFocus(FocusDemo)
	}
	return m, nil
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		for i := range m.demos {
			if z := m.zones.Get(demoZoneID(i)); z != nil && z.InBounds(msg) {
				m.selectedIndex = i
				cmd := m.loadDemo()
				m.setFocus(FocusSidebar)
				return m, cmd
			}
		}
		if z := m.zones.Get(zoneDemo); z != nil && z.InBounds(msg) {
			m.setFocus(FocusDemo)
			return m, nil
		}
	}
	return m.forward(msg)
}

func (m *Model) setFocus(f FocusPane) {
	m.focus = f
	if m.demoModel != nil {
		m.demoModel = m.demoModel.SetFocused(f == FocusDemo)
	}
}

// loadDemo creates the demo for the current selection if it is not the
// one already loaded, and returns the new demo's Init command.
func (m *Model) loadDemo() tea.Cmd {
	if m.demoModelIndex == m.selectedIndex || m.selectedIndex >= len(m.demos) {
		return nil
	}
	env := m.env
	env.Width, env.Height = m.demoSize()
	m.demoModel = m.demos[m.selectedIndex].Create(env)
	m.demoModelIndex = m.selectedIndex
	log.Debug(log.CatUI, "Loaded demo", "name", m.demos[m.selectedIndex].Name)
	return m.demoModel.Init()
}

func (m Model) cycleTheme(step int) (tea.Model, tea.Cmd) {
	names := theme.Names()
	i := slices.Index(names, m.env.Theme)
	next := names[((i+step)%len(names)+len(names))%len(names)]
	if !m.applyTheme(next) {
		return m, nil
	}
	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Show("Theme: "+m.env.Theme, toaster.Info)
	if m.configPath == "" {
		return m, toastCmd
	}
	path := m.configPath
	return m, tea.Batch(toastCmd, func() tea.Msg {
		return themeSavedMsg{theme: next, err: config.SaveTheme(path, next)}
	})
}

// applyTheme switches every demo to name and reports whether it changed.
func (m *Model) applyTheme(name string) bool {
	name = theme.Resolve(name).Name
	if name == m.env.Theme {
		return false
	}
	m.env.Theme = name
	if m.demoModel != nil {
		m.demoModel = m.demoModel.SetTheme(name)
	}
	m.lastAction = "Theme: " + name
	log.Debug(log.CatTheme, "Theme applied", "theme", name)
	return true
}

// reloadConfig applies the theme from the config file after it changed on
// disk.
func (m Model) reloadConfig() (Model, tea.Cmd) {
	var cmd tea.Cmd
	cfg, err := config.Load(m.configPath)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Reloading config failed", err, "path", m.configPath)
		m.lastAction = "Config reload failed"
		m.toast, cmd = m.toast.Show("Config reload failed", toaster.Error)
		return m, cmd
	}
	if m.applyTheme(cfg.Theme) {
		m.toast, cmd = m.toast.Show("Reloaded theme: "+m.env.Theme, toaster.Info)
	}
	return m, cmd
}

// sidebarWidth returns 30% of the width, clamped to 20..30.
func (m Model) sidebarWidth() int {
	return max(min(m.width*30/100, 30), 20)
}

// paneHeight leaves room for the help footer.
func (m Model) paneHeight() int {
	footer := 1
	if m.help.ShowAll {
		footer = 4
	}
	return max(m.height-footer, 5)
}

// demoSize is the space inside the demo pane, minus the last-action line.
func (m Model) demoSize() (int, int) {
	w := m.width - m.sidebarWidth() - 1 - 2
	h := m.paneHeight() - 2 - 2
	return max(w, 20), max(h, 5)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sidebarWidth := m.sidebarWidth()
	height := m.paneHeight()

	sidebar := panes.BorderedPane(panes.BorderConfig{
		Content:            renderSidebar(m.zones, m.demos, m.selectedIndex, sidebarWidth, m.focus == FocusSidebar),
		Width:              sidebarWidth,
		Height:             height,
		TopRight:           m.env.Theme,
		Focused:            m.focus == FocusSidebar,
		FocusedBorderColor: styles.BorderHighlightFocusColor,
	})

	var name string
	if m.selectedIndex < len(m.demos) {
		name = m.demos[m.selectedIndex].Name
	}
	demoArea := panes.BorderedPane(panes.BorderConfig{
		Content:            renderDemoArea(m.demoModel, m.lastAction),
		Width:              m.width - sidebarWidth - 1,
		Height:             height,
		TopLeft:            name,
		Focused:            m.focus == FocusDemo,
		FocusedBorderColor: styles.BorderHighlightFocusColor,
	})

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebar,
		" ",
		m.zones.Mark(zoneDemo, demoArea),
	)
	footer := m.help.View(keys.Playground)

	view := m.zones.Scan(strings.Join([]string{main, footer}, "\n"))
	return m.toast.Overlay(view, m.width, m.height, m.height-height)
}
