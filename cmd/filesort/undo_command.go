package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"filesort/internal/logging"
	"filesort/internal/mover"
	"filesort/internal/organizer"
	"filesort/internal/report"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "undo <run-id>",
		Short: "Move the files of a recorded run back where they came from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := openJournal(cmd, ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run.UndoneAt != nil {
				return fmt.Errorf("run %s was already undone at %s", shortID(run.ID), formatLocal(*run.UndoneAt))
			}
			entries, err := store.Entries(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			relocations := make([]organizer.Relocation, 0, len(entries))
			for _, entry := range entries {
				if entry.Moved() {
					relocations = append(relocations, organizer.Relocation{Source: entry.Source, Destination: entry.Destination})
				}
			}

			out := cmd.OutOrStdout()
			table, err := cfg.FormatTable()
			if err != nil {
				return err
			}
			m := mover.New(report.NewConsole(out), mover.WithJobs(cfg.Organize.Jobs), mover.WithLogger(logger))
			org := organizer.New(table, m, logger)

			runCtx := logging.WithRunID(cmd.Context(), run.ID)
			summary := organizer.Summarize(organizer.WaitAll(org.Undo(runCtx, relocations, list)))
			printSummary(out, summary, list)

			if list {
				return nil
			}
			if summary.HasFailures() {
				return fmt.Errorf("%d of %d files could not be restored; run %s left as is", summary.Failed, summary.Total, shortID(run.ID))
			}
			if err := store.MarkUndone(cmd.Context(), run.ID, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Run %s undone\n", shortID(run.ID))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "Only print the moves that would happen")
	return cmd
}
