package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/syntaxview/internal/highlight"
	"github.com/zjrosen/syntaxview/internal/theme"
)

func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List theme names",
		Long:  `List every theme name. The configured theme is marked with "*".`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := theme.Resolve(a.cfg.Theme).Name
			var sb strings.Builder
			for _, name := range theme.Names() {
				marker := " "
				if name == current {
					marker = "*"
				}
				fmt.Fprintf(&sb, "%s %s\n", marker, name)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return err
		},
	}
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List language names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(highlight.Languages(), "\n"))
			return err
		},
	}
}
