package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, "onedark", cfg.Theme)
	require.Equal(t, "python", cfg.Language)
	require.Equal(t, 16.0, cfg.Editor.FontSize)
	require.Equal(t, 16.0, cfg.Editor.Padding)
	require.Equal(t, 2, cfg.Editor.TabWidth)
	require.Equal(t, "python", cfg.Inline.Language)
	require.Equal(t, 14.0, cfg.Inline.FontSize)
	require.Equal(t, 14.0, cfg.Block.FontSize)
	require.Equal(t, 16.0, cfg.Block.Padding)
	require.Equal(t, "#282c34", cfg.Block.BackgroundColor)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.NoError(t, cfg.Validate())
}

func TestValidateEditor(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EditorConfig)
		wantErr string
	}{
		{"defaults", func(*EditorConfig) {}, ""},
		{"negative font size", func(e *EditorConfig) { e.FontSize = -1 }, "editor.font_size"},
		{"negative padding", func(e *EditorConfig) { e.Padding = -2 }, "editor.padding"},
		{"tab width too large", func(e *EditorConfig) { e.TabWidth = 17 }, "editor.tab_width"},
		{"bad platform", func(e *EditorConfig) { e.Platform = "web" }, "editor.platform"},
		{"ios upper case", func(e *EditorConfig) { e.Platform = "iOS" }, ""},
		{"negative line height", func(e *EditorConfig) { e.LineHeight = -3 }, "editor.line_height"},
		{"bad color", func(e *EditorConfig) { e.BackgroundColor = "red" }, "editor.background_color"},
		{"transparent color", func(e *EditorConfig) { e.BackgroundColor = "transparent" }, ""},
		{"short hex", func(e *EditorConfig) { e.InputColor = "#f0f" }, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := Defaults().Editor
			tc.mutate(&e)
			err := ValidateEditor(e)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateBlockAndInline(t *testing.T) {
	require.NoError(t, ValidateBlock(Defaults().Block))
	require.Error(t, ValidateBlock(BlockConfig{Padding: -1}))
	require.Error(t, ValidateBlock(BlockConfig{BackgroundColor: "#12"}))
	require.Error(t, ValidateInline(InlineConfig{FontSize: -4}))
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(Defaults().Tracing))

	err := ValidateTracing(TracingConfig{SampleRate: 1.5})
	require.ErrorContains(t, err, "sample_rate")

	err = ValidateTracing(TracingConfig{Exporter: "jaeger", SampleRate: 1})
	require.ErrorContains(t, err, "tracing.exporter")

	err = ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp", SampleRate: 1})
	require.ErrorContains(t, err, "otlp_endpoint")
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Defaults()
	require.Equal(t, want.Theme, cfg.Theme)
	require.Equal(t, want.Language, cfg.Language)
	require.Equal(t, want.Editor, cfg.Editor)
	require.Equal(t, want.Inline, cfg.Inline)
	require.Equal(t, want.Block, cfg.Block)
	require.Equal(t, want.Tracing, cfg.Tracing)
}

func TestWriteDefaultConfig_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `theme: dracula
editor:
  tab_width: 4
  show_line_numbers: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "dracula", cfg.Theme)
	require.Equal(t, 4, cfg.Editor.TabWidth)
	require.True(t, cfg.Editor.ShowLineNumbers)
	require.Equal(t, 16.0, cfg.Editor.FontSize, "unset keys keep defaults")
	require.Equal(t, "python", cfg.Inline.Language)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "reading config")
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	require.Equal(t, "onedark", v.GetString("theme"))
	require.Equal(t, 2, v.GetInt("editor.tab_width"))
	require.Equal(t, "#282c34", v.GetString("block.background_color"))
}
