package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/syntaxview/internal/ui/inlinecode"
)

func newInlineCmd(a *app) *cobra.Command {
	var language, themeName string

	c := &cobra.Command{
		Use:     "inline <code>...",
		Short:   "Print a highlighted inline span",
		Example: `  syntaxview inline -l go 'fmt.Println("hi")'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := inlinecode.New(strings.Join(args, " "))
			label.Language = a.cfg.Inline.Language
			if language != "" {
				label.Language = language
			}
			label.Theme = a.cfg.Theme
			if themeName != "" {
				label.Theme = themeName
			}
			if a.cfg.Inline.FontSize > 0 {
				label.FontSize = a.cfg.Inline.FontSize
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), label.View())
			return err
		},
	}

	c.Flags().StringVarP(&language, "language", "l", "", "language name (default: from config)")
	c.Flags().StringVarP(&themeName, "theme", "t", "", "theme name (default: from config)")
	return c
}
