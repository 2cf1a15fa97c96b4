package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/syntaxview/internal/highlight"
	"github.com/zjrosen/syntaxview/internal/log"
	"github.com/zjrosen/syntaxview/internal/ui/codeblock"
	"github.com/zjrosen/syntaxview/internal/ui/inlinecode"
)

type renderOptions struct {
	language    string
	theme       string
	lineNumbers bool
	inline      bool
	fontSize    float64
	padding     float64
	background  string
	width       int
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions

	c := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Print a highlighted code block",
		Long: `Render a file, or standard input when the argument is "-" or missing.

The language comes from --language, then the file name, then the config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			code, err := readSource(name, cmd.InOrStdin())
			if err != nil {
				return err
			}
			out := renderSource(a, cmd, opts, name, code)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	f := c.Flags()
	f.StringVarP(&opts.language, "language", "l", "", "language name (default: detected from file name)")
	f.StringVarP(&opts.theme, "theme", "t", "", "theme name (default: from config)")
	f.BoolVarP(&opts.lineNumbers, "line-numbers", "n", false, "show line numbers")
	f.BoolVar(&opts.inline, "inline", false, "render as an inline span without a frame")
	f.Float64Var(&opts.fontSize, "font-size", 0, "font size in points")
	f.Float64Var(&opts.padding, "padding", 0, "padding in points")
	f.StringVar(&opts.background, "background", "", `background color, or "transparent"`)
	f.IntVarP(&opts.width, "width", "w", 0, "total block width (default: fit content)")
	return c
}

func readSource(name string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// resolveLanguage picks the explicit language, then the detected one, then
// the fallback.
func resolveLanguage(explicit, filename, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if filename != "" && filename != "-" {
		if detected := highlight.Detect(filepath.Base(filename)); detected != "" {
			return strings.ToLower(detected)
		}
	}
	return fallback
}

func renderSource(a *app, cmd *cobra.Command, opts renderOptions, name, code string) string {
	cfg := a.cfg
	themeName := opts.theme
	if themeName == "" {
		themeName = cfg.Theme
	}

	if opts.inline {
		label := inlinecode.New(code)
		label.Language = resolveLanguage(opts.language, name, cfg.Inline.Language)
		label.Theme = themeName
		if cfg.Inline.FontSize > 0 {
			label.FontSize = cfg.Inline.FontSize
		}
		if opts.fontSize > 0 {
			label.FontSize = opts.fontSize
		}
		log.Debug(log.CatRender, "Rendering inline", "language", label.Language, "theme", themeName)
		return label.View()
	}

	block := codeblock.New(code, resolveLanguage(opts.language, name, cfg.Language))
	block.Theme = themeName
	if cfg.Block.FontSize > 0 {
		block.FontSize = cfg.Block.FontSize
	}
	block.Padding = cfg.Block.Padding
	block.BackgroundColor = cfg.Block.BackgroundColor
	block.ShowLineNumbers = cfg.Block.ShowLineNumbers
	block.LineNumbersColor = cfg.Block.LineNumbersColor

	f := cmd.Flags()
	if f.Changed("font-size") {
		block.FontSize = opts.fontSize
	}
	if f.Changed("padding") {
		block.Padding = opts.padding
	}
	if f.Changed("background") {
		block.BackgroundColor = opts.background
	}
	if f.Changed("line-numbers") {
		block.ShowLineNumbers = opts.lineNumbers
	}
	block.Width = opts.width

	log.Debug(log.CatRender, "Rendering block", "language", block.Language, "theme", themeName, "bytes", len(code))
	return block.View()
}
