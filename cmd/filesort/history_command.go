package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"filesort/internal/journal"
)

const historyTimeLayout = "2006-01-02 15:04"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or the moves of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openJournal(cmd, ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				runs, err := store.Runs(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				fmt.Fprintln(out, renderRuns(runs))
				return nil
			}

			run, err := store.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			entries, err := store.Entries(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Run %s (%s) %s -> %s\n", run.ID, run.Strategy, run.SourceDir, run.OutputDir)
			fmt.Fprintln(out, renderEntries(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 = all)")
	return cmd
}

func openJournal(cmd *cobra.Command, ctx *commandContext) (*journal.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Journal.Enabled {
		return nil, errors.New("journal is disabled; set [journal] enabled = true in the config")
	}
	return journal.Open(cmd.Context(), cfg)
}

func renderRuns(runs []journal.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		undone := ""
		if run.UndoneAt != nil {
			undone = formatLocal(*run.UndoneAt)
		}
		rows = append(rows, []string{
			shortID(run.ID),
			formatLocal(run.StartedAt),
			run.Strategy,
			run.SourceDir,
			strconv.Itoa(run.Moved),
			strconv.Itoa(run.Failed),
			undone,
		})
	}
	return renderTable(
		[]string{"ID", "Started", "Strategy", "Source", "Moved", "Failed", "Undone"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func renderEntries(entries []journal.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		detail := entry.Destination
		if entry.Error != "" {
			detail = entry.Error
		}
		rows = append(rows, []string{
			strconv.Itoa(entry.Seq),
			entry.File,
			entry.Category,
			entry.Status,
			detail,
		})
	}
	return renderTable(
		[]string{"#", "File", "Folder", "Status", "Destination"},
		rows,
		[]columnAlignment{alignRight},
	)
}

func formatLocal(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(historyTimeLayout)
}
