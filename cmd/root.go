// Package cmd implements the syntaxview command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/syntaxview/internal/config"
	"github.com/zjrosen/syntaxview/internal/log"
	"github.com/zjrosen/syntaxview/internal/tracing"
)

var version = "dev"

// app holds state shared by the commands of one invocation.
type app struct {
	cfgFile      string
	debug        bool
	colorProfile string

	cfg        config.Config
	configPath string

	cleanup []func()
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "syntaxview",
		Short:   "Syntax highlighted code for the terminal",
		Long:    `Render highlighted code blocks and inline spans, or explore the components in an interactive playground.`,
		Version: version,

		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.teardown()
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: .syntaxview/config.yaml, then ~/.config/syntaxview/config.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false,
		"write debug logs (also SYNTAXVIEW_DEBUG)")
	root.PersistentFlags().StringVar(&a.colorProfile, "color-profile", "auto",
		"color profile: auto, truecolor, ansi256, ansi, ascii")

	root.AddCommand(
		newRenderCmd(a),
		newInlineCmd(a),
		newPlaygroundCmd(a),
		newThemesCmd(a),
		newLanguagesCmd(),
	)
	return root
}

func (a *app) setup(ctx context.Context) error {
	if os.Getenv("SYNTAXVIEW_DEBUG") != "" || a.debug {
		logPath := os.Getenv("SYNTAXVIEW_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "syntaxview")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		a.cleanup = append(a.cleanup, cleanup)
		log.Info(log.CatConfig, "syntaxview starting", "version", version, "logPath", logPath)
	}

	profile, ok, err := parseColorProfile(a.colorProfile)
	if err != nil {
		return err
	}
	if ok {
		lipgloss.SetColorProfile(profile)
	}

	if err := a.loadConfig(); err != nil {
		return err
	}

	provider, err := tracing.NewProvider(tracingConfig(a.cfg.Tracing))
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	a.cleanup = append(a.cleanup, func() {
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	})
	return nil
}

func (a *app) teardown() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	a.cleanup = nil
}

// loadConfig reads the config file, writing the default template first
// when no config exists anywhere.
func (a *app) loadConfig() error {
	home, _ := os.UserHomeDir()
	path, found := resolveConfigPath(a.cfgFile, home)

	if !found && a.cfgFile == "" {
		if err := config.WriteDefaultConfig(path); err != nil {
			log.Warn(log.CatConfig, "Could not write default config", "path", path, "error", err)
		}
	}

	v := viper.New()
	config.SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || (!errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist)) {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		log.Debug(log.CatConfig, "No config file, using defaults", "path", path)
	}

	if err := v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.configPath = path
	log.Debug(log.CatConfig, "Config loaded", "path", path, "theme", a.cfg.Theme)
	return nil
}

// resolveConfigPath applies the lookup order: explicit flag, then
// .syntaxview/config.yaml, then the user config. found reports whether the
// returned file exists.
func resolveConfigPath(flag, home string) (path string, found bool) {
	if flag != "" {
		_, err := os.Stat(flag)
		return flag, err == nil
	}
	candidates := []string{filepath.Join(".syntaxview", "config.yaml")}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", "syntaxview", "config.yaml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, true
		}
	}
	return candidates[len(candidates)-1], false
}

// parseColorProfile maps a flag value to a termenv profile. ok is false for
// "auto".
func parseColorProfile(s string) (profile termenv.Profile, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return termenv.Ascii, false, nil
	case "truecolor", "24bit":
		return termenv.TrueColor, true, nil
	case "ansi256", "256":
		return termenv.ANSI256, true, nil
	case "ansi", "16":
		return termenv.ANSI, true, nil
	case "ascii", "none":
		return termenv.Ascii, true, nil
	}
	return termenv.Ascii, false, fmt.Errorf("unknown color profile %q", s)
}

func tracingConfig(c config.TracingConfig) tracing.Config {
	tc := tracing.DefaultConfig()
	tc.Enabled = c.Enabled
	if c.Exporter != "" {
		tc.Exporter = c.Exporter
	}
	tc.FilePath = c.FilePath
	if tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	if c.OTLPEndpoint != "" {
		tc.OTLPEndpoint = c.OTLPEndpoint
	}
	if c.SampleRate > 0 {
		tc.SampleRate = c.SampleRate
	}
	return tc
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
}
