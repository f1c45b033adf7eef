package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"filesort/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [source] [output]",
		Short: "Verify directories and settings before organizing",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sourceDir, outputDir, err := ctx.resolveDirs(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(cfg, sourceDir, outputDir)

			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			if ctx.configPath != "" {
				fmt.Fprintln(out, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Journal", statusInfo, yesNo(cfg.Journal.Enabled), colorize))
			for _, result := range results {
				fmt.Fprintln(out, renderResult(result, colorize))
			}
			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
