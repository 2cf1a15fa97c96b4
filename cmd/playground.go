package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/syntaxview/internal/config"
	"github.com/zjrosen/syntaxview/internal/log"
	"github.com/zjrosen/syntaxview/internal/mode/playground"
	"github.com/zjrosen/syntaxview/internal/mode/shared"
	"github.com/zjrosen/syntaxview/internal/render"
	"github.com/zjrosen/syntaxview/internal/ui/editor"
	"github.com/zjrosen/syntaxview/internal/watcher"
)

func newPlaygroundCmd(a *app) *cobra.Command {
	var (
		file     string
		language string
		noWatch  bool
	)

	c := &cobra.Command{
		Use:   "playground",
		Short: "Explore the code components interactively",
		Long: `Open a full-screen showcase of the inline, block and editor components.

Theme changes made with F2/F3 are written back to the config file, and
edits to the config file are picked up while the playground is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pcfg, err := a.playgroundConfig(file, language)
			if err != nil {
				return err
			}

			if !noWatch {
				stop, changes := a.watchConfig()
				defer stop()
				pcfg.Changes = changes
			}

			// Query the terminal background before Bubble Tea owns stdin.
			_ = lipgloss.HasDarkBackground()

			p := tea.NewProgram(
				playground.New(pcfg),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running playground: %w", err)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "show this file instead of the built-in samples")
	c.Flags().StringVarP(&language, "language", "l", "", "language for --file (default: detected)")
	c.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the config file on change")
	return c
}

func (a *app) playgroundConfig(file, language string) (playground.Config, error) {
	pcfg := playground.Config{
		Theme:      a.cfg.Theme,
		Language:   a.cfg.Language,
		Editor:     editorConfig(a.cfg),
		ConfigPath: a.configPath,
		Clipboard:  shared.SystemClipboard{Output: termenv.NewOutput(os.Stdout)},
	}
	if file != "" {
		code, err := readSource(file, os.Stdin)
		if err != nil {
			return playground.Config{}, err
		}
		pcfg.Code = code
		pcfg.Language = resolveLanguage(language, file, a.cfg.Language)
	} else if language != "" {
		pcfg.Language = language
	}
	pcfg.Editor.Language = pcfg.Language
	return pcfg, nil
}

// watchConfig starts a watcher on the config file. A failure only disables
// live reload.
func (a *app) watchConfig() (stop func(), changes <-chan struct{}) {
	noop := func() {}
	if a.configPath == "" {
		return noop, nil
	}
	if _, err := os.Stat(a.configPath); err != nil {
		return noop, nil
	}

	w, err := watcher.New(watcher.DefaultConfig(a.configPath))
	if err != nil {
		log.Warn(log.CatWatcher, "Config watcher unavailable", "path", a.configPath, "error", err)
		return noop, nil
	}
	ch, err := w.Start()
	if err != nil {
		log.Warn(log.CatWatcher, "Config watcher failed to start", "path", a.configPath, "error", err)
		_ = w.Stop()
		return noop, nil
	}
	return func() { _ = w.Stop() }, ch
}

// editorConfig maps the editor section of the config onto editor options.
func editorConfig(c config.Config) editor.Config {
	ec := editor.DefaultConfig()
	ec.Theme = c.Theme
	ec.Language = c.Language

	e := c.Editor
	if e.FontSize > 0 {
		ec.FontSize = e.FontSize
	}
	ec.FontFamily = e.FontFamily
	ec.Padding = e.Padding
	if e.TabWidth > 0 {
		ec.TabWidth = e.TabWidth
	}
	ec.ShowLineNumbers = e.ShowLineNumbers
	ec.ReadOnly = e.ReadOnly
	ec.Platform = render.ParsePlatform(e.Platform)
	ec.LineHeight = e.LineHeight
	ec.BackgroundColor = e.BackgroundColor
	ec.LineNumbersColor = e.LineNumbersColor
	ec.InputColor = e.InputColor
	return ec
}
