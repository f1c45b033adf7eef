package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"filesort/internal/config"
	"filesort/internal/faults"
	"filesort/internal/journal"
	"filesort/internal/logging"
	"filesort/internal/mover"
	"filesort/internal/organizer"
	"filesort/internal/report"
	"filesort/internal/textutil"
)

type organizeOptions struct {
	list    bool
	byDate  bool
	formats string
	folder  string
	jobs    int
}

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var opts organizeOptions

	cmd := &cobra.Command{
		Use:   "organize [source] [output]",
		Short: "Move files into category folders",
		Long: `Classify every regular, non-hidden file in the source directory and move it
into a folder under the output directory.

By default files are grouped by extension using the Format Table. --by-date
groups them by modification date (YYYY-MM-DD) instead, and --formats with
--folder moves only the listed extensions (matched case-sensitively) into one
folder. --list prints the moves as "mv <source> <destination>" without
touching anything.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("jobs") {
				opts.jobs = -1
			}
			return runOrganize(cmd, ctx, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "Only print the moves that would happen")
	cmd.Flags().BoolVarP(&opts.byDate, "by-date", "d", false, "Group files by modification date")
	cmd.Flags().StringVarP(&opts.formats, "formats", "f", "", "Comma separated extensions to move (e.g. png,jpg)")
	cmd.Flags().StringVarP(&opts.folder, "folder", "t", "", "Target folder for --formats")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "Maximum concurrent moves (0 = unbounded, default from config)")
	cmd.MarkFlagsMutuallyExclusive("by-date", "formats")
	cmd.MarkFlagsRequiredTogether("formats", "folder")
	return cmd
}

func runOrganize(cmd *cobra.Command, ctx *commandContext, args []string, opts organizeOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	sourceDir, outputDir, err := ctx.resolveDirs(args)
	if err != nil {
		return err
	}

	files, err := listDirectory(sourceDir)
	if err != nil {
		return err
	}

	table, err := cfg.FormatTable()
	if err != nil {
		return err
	}
	jobs := cfg.Organize.Jobs
	if opts.jobs >= 0 {
		jobs = opts.jobs
	}

	out := cmd.OutOrStdout()
	reporter := report.NewConsole(out)
	m := mover.New(reporter, mover.WithJobs(jobs), mover.WithLogger(logger))
	org := organizer.New(table, m, logger)

	runID := journal.NewRunID()
	runCtx := logging.WithRunID(cmd.Context(), runID)
	started := time.Now()

	var (
		strategy string
		pending  []*mover.Pending
	)
	switch {
	case opts.formats != "":
		strategy = organizer.StrategyFileTypes
		pending, err = org.BySpecificFileTypes(runCtx, textutil.SplitList(opts.formats), opts.folder, files, sourceDir, outputDir, opts.list)
	case opts.byDate:
		strategy = organizer.StrategyDates
		pending, err = org.ByDates(runCtx, files, sourceDir, outputDir, opts.list)
	default:
		strategy = organizer.StrategyDefaults
		pending, err = org.ByDefaults(runCtx, files, sourceDir, outputDir, opts.list)
	}
	if err != nil {
		if faults.IsFatal(err) {
			return fmt.Errorf("organize aborted, no files were moved: %w", err)
		}
		return err
	}

	outcomes := organizer.WaitAll(pending)
	summary := organizer.Summarize(outcomes)
	logging.WithContext(runCtx, logger).Info("organize finished",
		logging.String(logging.FieldStrategy, strategy),
		logging.Int("moved", summary.Moved),
		logging.Int("planned", summary.Planned),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", time.Since(started)),
	)
	printSummary(out, summary, opts.list)

	if !opts.list && summary.Moved > 0 && cfg.Journal.Enabled {
		run := journal.Run{
			ID:        runID,
			Strategy:  strategy,
			SourceDir: sourceDir,
			OutputDir: outputDir,
			StartedAt: started,
		}
		if err := recordRun(runCtx, cfg, logger, run, outcomes); err != nil {
			reporter.Warn(fmt.Sprintf("run not recorded: %v", err))
		} else {
			fmt.Fprintf(out, "Recorded run %s (undo with `filesort undo %s`)\n", shortID(runID), shortID(runID))
		}
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total)
	}
	return nil
}

func listDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func printSummary(out io.Writer, summary organizer.Summary, dryRun bool) {
	if summary.Total == 0 {
		fmt.Fprintln(out, "Nothing to organize")
		return
	}
	countHeader := "Moved"
	if dryRun {
		countHeader = "Planned"
	}
	rows := make([][]string, 0, len(summary.ByCategory))
	for _, name := range summary.Categories() {
		rows = append(rows, []string{name, strconv.Itoa(summary.ByCategory[name])})
	}
	done := summary.Moved
	if dryRun {
		done = summary.Planned
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Folder", countHeader},
		rows,
		[]columnAlignment{alignLeft, alignRight},
		"Total", strconv.Itoa(done),
	))
	if summary.Failed > 0 {
		fmt.Fprintf(out, "Failed: %d\n", summary.Failed)
	}
}

func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, run journal.Run, outcomes []mover.Outcome) error {
	store, err := journal.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.RecordRun(ctx, run, outcomes); err != nil {
		return err
	}
	logging.WithContext(ctx, logger).Debug("run recorded", logging.String("journal", store.Path()))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
