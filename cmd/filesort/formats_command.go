package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Show the active Format Table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			table, err := cfg.FormatTable()
			if err != nil {
				return err
			}
			categories := table.Categories()
			rows := make([][]string, 0, len(categories))
			for _, category := range categories {
				rows = append(rows, []string{category.Name, strings.Join(category.Extensions, ", ")})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Category", "Extensions"}, rows, nil))
			fmt.Fprintln(out, "Unmatched extensions go to Miscellaneous; matching ignores case.")
			return nil
		},
	}
}
