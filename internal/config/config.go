// Package config provides configuration types and defaults for syntaxview.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/zjrosen/syntaxview/internal/log"
)

// Config holds all configuration options for syntaxview.
type Config struct {
	// Theme is the default style table name (chroma or highlight.js style).
	Theme string `mapstructure:"theme"`

	// Language is used when no language is given and none can be detected.
	Language string `mapstructure:"language"`

	Editor  EditorConfig  `mapstructure:"editor"`
	Inline  InlineConfig  `mapstructure:"inline"`
	Block   BlockConfig   `mapstructure:"block"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// EditorConfig holds options for the editable code surface.
type EditorConfig struct {
	FontSize         float64 `mapstructure:"font_size"`
	FontFamily       string  `mapstructure:"font_family"`
	Padding          float64 `mapstructure:"padding"`
	TabWidth         int     `mapstructure:"tab_width"`
	ShowLineNumbers  bool    `mapstructure:"show_line_numbers"`
	ReadOnly         bool    `mapstructure:"read_only"`
	Platform         string  `mapstructure:"platform"`    // "android" (default) or "ios"
	LineHeight       float64 `mapstructure:"line_height"` // honored on ios only
	BackgroundColor  string  `mapstructure:"background_color"`
	LineNumbersColor string  `mapstructure:"line_numbers_color"`
	InputColor       string  `mapstructure:"input_color"` // caret tint
}

// InlineConfig holds options for inline code labels.
type InlineConfig struct {
	Language string  `mapstructure:"language"`
	FontSize float64 `mapstructure:"font_size"`
}

// BlockConfig holds options for framed code blocks.
type BlockConfig struct {
	FontSize         float64 `mapstructure:"font_size"`
	Padding          float64 `mapstructure:"padding"`
	BackgroundColor  string  `mapstructure:"background_color"`
	ShowLineNumbers  bool    `mapstructure:"show_line_numbers"`
	LineNumbersColor string  `mapstructure:"line_numbers_color"`
}

// TracingConfig holds render tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/syntaxview/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/syntaxview/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "syntaxview", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Theme:    "onedark",
		Language: "python",
		Editor: EditorConfig{
			FontSize: 16,
			Padding:  16,
			TabWidth: 2,
			Platform: "android",
		},
		Inline: InlineConfig{
			Language: "python",
			FontSize: 14,
		},
		Block: BlockConfig{
			FontSize:         14,
			Padding:          16,
			BackgroundColor:  "#282c34",
			LineNumbersColor: "#7f7f7f",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// SetDefaults registers every default with a viper instance.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("theme", d.Theme)
	v.SetDefault("language", d.Language)
	v.SetDefault("editor.font_size", d.Editor.FontSize)
	v.SetDefault("editor.padding", d.Editor.Padding)
	v.SetDefault("editor.tab_width", d.Editor.TabWidth)
	v.SetDefault("editor.platform", d.Editor.Platform)
	v.SetDefault("inline.language", d.Inline.Language)
	v.SetDefault("inline.font_size", d.Inline.FontSize)
	v.SetDefault("block.font_size", d.Block.FontSize)
	v.SetDefault("block.padding", d.Block.Padding)
	v.SetDefault("block.background_color", d.Block.BackgroundColor)
	v.SetDefault("block.line_numbers_color", d.Block.LineNumbersColor)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// Load reads a config file on top of the defaults.
func Load(configPath string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor accepts "", "transparent" or a hex color.
func ValidateColor(field, value string) error {
	if value == "" || strings.EqualFold(value, "transparent") || hexColor.MatchString(value) {
		return nil
	}
	return fmt.Errorf("%s must be a hex color like \"#282c34\" or \"transparent\", got %q", field, value)
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(e EditorConfig) error {
	if e.FontSize < 0 {
		return fmt.Errorf("editor.font_size must not be negative, got %v", e.FontSize)
	}
	if e.Padding < 0 {
		return fmt.Errorf("editor.padding must not be negative, got %v", e.Padding)
	}
	if e.TabWidth < 0 || e.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 0 and 16, got %d", e.TabWidth)
	}
	if e.LineHeight < 0 {
		return fmt.Errorf("editor.line_height must not be negative, got %v", e.LineHeight)
	}
	switch strings.ToLower(e.Platform) {
	case "", "android", "ios":
	default:
		return fmt.Errorf("editor.platform must be \"android\" or \"ios\", got %q", e.Platform)
	}
	for field, value := range map[string]string{
		"editor.background_color":   e.BackgroundColor,
		"editor.line_numbers_color": e.LineNumbersColor,
		"editor.input_color":        e.InputColor,
	} {
		if err := ValidateColor(field, value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateInline checks inline configuration for errors.
func ValidateInline(i InlineConfig) error {
	if i.FontSize < 0 {
		return fmt.Errorf("inline.font_size must not be negative, got %v", i.FontSize)
	}
	return nil
}

// ValidateBlock checks block configuration for errors.
func ValidateBlock(b BlockConfig) error {
	if b.FontSize < 0 {
		return fmt.Errorf("block.font_size must not be negative, got %v", b.FontSize)
	}
	if b.Padding < 0 {
		return fmt.Errorf("block.padding must not be negative, got %v", b.Padding)
	}
	if err := ValidateColor("block.background_color", b.BackgroundColor); err != nil {
		return err
	}
	return ValidateColor("block.line_numbers_color", b.LineNumbersColor)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateInline(c.Inline); err != nil {
		return err
	}
	if err := ValidateBlock(c.Block); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# syntaxview configuration

# Default theme. Accepts chroma style names (run 'syntaxview themes')
# and highlight.js names such as atomOneDark or solarizedDark.
theme: onedark

# Fallback language when none is given and none can be detected
language: python

# Code editor (playground)
editor:
  font_size: 16
  padding: 16
  tab_width: 2              # spaces inserted for each tab
  show_line_numbers: false
  read_only: false
  platform: android         # android or ios (ios honors line_height)
  # line_height: 20
  # background_color: "#282c34"   # or "transparent"
  # line_numbers_color: "#7f7f7f"
  # input_color: "#ff00ff"        # tint the caret to check layer alignment

# Inline code spans
inline:
  language: python
  font_size: 14

# Framed code blocks
block:
  font_size: 14
  padding: 16
  background_color: "#282c34"
  show_line_numbers: false
  line_numbers_color: "#7f7f7f"

# Render tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/syntaxview/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
