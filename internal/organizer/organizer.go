package organizer

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"filesort/internal/classify"
	"filesort/internal/faults"
	"filesort/internal/fileutil"
	"filesort/internal/formats"
	"filesort/internal/logging"
	"filesort/internal/mover"
	"filesort/internal/textutil"
)

// Strategy names recorded in logs and the journal.
const (
	StrategyDefaults  = "defaults"
	StrategyFileTypes = "file-types"
	StrategyDates     = "dates"
	StrategyUndo      = "undo"
)

// Organizer dispatches batches of moves.
type Organizer struct {
	table  *formats.Table
	mover  *mover.Mover
	logger *slog.Logger
}

// New constructs an organizer classifying with table and moving with m.
// A nil table falls back to formats.Default.
func New(table *formats.Table, m *mover.Mover, logger *slog.Logger) *Organizer {
	if table == nil {
		table = formats.Default()
	}
	if m == nil {
		m = mover.New(nil, mover.WithLogger(logger))
	}
	return &Organizer{
		table:  table,
		mover:  m,
		logger: logging.NewComponentLogger(logger, "organizer"),
	}
}

// Table returns the Format Table used by ByDefaults.
func (o *Organizer) Table() *formats.Table {
	return o.table
}

type planned struct {
	req mover.Request
	err error
}

// ByDefaults classifies every eligible file by extension and moves it into
// the matching category folder, or Miscellaneous.
func (o *Organizer) ByDefaults(ctx context.Context, files []string, sourceDir, outputDir string, dryRun bool) ([]*mover.Pending, error) {
	plan := make([]planned, 0, len(files))
	for _, name := range files {
		if !classify.IsEligible(name, sourceDir) {
			continue
		}
		category := textutil.SanitizeFolderName(classify.ByExtension(o.table, name))
		if category == "" {
			category = formats.Miscellaneous
		}
		plan = append(plan, planned{req: newRequest(sourceDir, outputDir, name, category, dryRun)})
	}
	return o.dispatch(logging.WithStrategy(ctx, StrategyDefaults), plan, outputDir, dryRun)
}

// BySpecificFileTypes moves eligible files whose extension exactly matches
// one of exts into folder. The comparison is case-sensitive: "png" does not
// select "x.PNG".
func (o *Organizer) BySpecificFileTypes(ctx context.Context, exts []string, folder string, files []string, sourceDir, outputDir string, dryRun bool) ([]*mover.Pending, error) {
	target := textutil.SanitizeFolderName(folder)
	if target == "" {
		return nil, faults.Wrap(faults.ErrValidation, "organizing", "resolve target folder",
			"a target folder name is required when selecting file types", nil)
	}
	wanted := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext = strings.TrimPrefix(strings.TrimSpace(ext), "."); ext != "" {
			wanted = append(wanted, ext)
		}
	}

	plan := make([]planned, 0, len(files))
	for _, name := range files {
		if !classify.IsEligible(name, sourceDir) || !classify.MatchesExtension(name, wanted) {
			continue
		}
		plan = append(plan, planned{req: newRequest(sourceDir, outputDir, name, target, dryRun)})
	}
	return o.dispatch(logging.WithStrategy(ctx, StrategyFileTypes), plan, outputDir, dryRun)
}

// ByDates moves every eligible file into a folder named after its
// modification date (YYYY-MM-DD, local time). A file whose date cannot be read
// yields a failed outcome without affecting the rest of the batch.
func (o *Organizer) ByDates(ctx context.Context, files []string, sourceDir, outputDir string, dryRun bool) ([]*mover.Pending, error) {
	plan := make([]planned, 0, len(files))
	for _, name := range files {
		if !classify.IsEligible(name, sourceDir) {
			continue
		}
		category, err := classify.ByDate(filepath.Join(sourceDir, name))
		if err != nil {
			plan = append(plan, planned{
				req: newRequest(sourceDir, outputDir, name, "", dryRun),
				err: faults.Wrap(faults.ErrClassification, "organizing", "read modification time", name, err),
			})
			continue
		}
		plan = append(plan, planned{req: newRequest(sourceDir, outputDir, name, category, dryRun)})
	}
	return o.dispatch(logging.WithStrategy(ctx, StrategyDates), plan, outputDir, dryRun)
}

// Relocation is one completed move to reverse.
type Relocation struct {
	Source      string
	Destination string
}

// Undo moves each relocation's destination file back to its source path.
// Missing files surface as failed outcomes.
func (o *Organizer) Undo(ctx context.Context, relocations []Relocation, dryRun bool) []*mover.Pending {
	logger := logging.WithContext(logging.WithStrategy(ctx, StrategyUndo), o.logger)
	logger.Debug("undo dispatch", logging.Int("files", len(relocations)), logging.Bool("dry_run", dryRun))

	pending := make([]*mover.Pending, 0, len(relocations))
	for _, r := range relocations {
		originalDir := filepath.Dir(r.Source)
		pending = append(pending, o.mover.Move(mover.Request{
			SourceDir: filepath.Dir(r.Destination),
			OutputDir: filepath.Dir(originalDir),
			File:      filepath.Base(r.Destination),
			Category:  filepath.Base(originalDir),
			DryRun:    dryRun,
		}))
	}
	return pending
}

func newRequest(sourceDir, outputDir, name, category string, dryRun bool) mover.Request {
	return mover.Request{
		SourceDir: sourceDir,
		OutputDir: outputDir,
		File:      name,
		Category:  category,
		DryRun:    dryRun,
	}
}

func (o *Organizer) dispatch(ctx context.Context, plan []planned, outputDir string, dryRun bool) ([]*mover.Pending, error) {
	logger := logging.WithContext(ctx, o.logger)

	if !dryRun {
		if err := prepareDirectories(plan, outputDir); err != nil {
			logger.Error("directory creation failed",
				logging.String(logging.FieldEventType, "directory_creation_failed"),
				logging.String(logging.FieldErrorHint, "check that the output directory is writable"),
				logging.Error(err),
			)
			return nil, err
		}
	}

	logger.Debug("dispatching moves",
		logging.Int("files", len(plan)),
		logging.Bool("dry_run", dryRun),
	)

	pending := make([]*mover.Pending, 0, len(plan))
	for _, item := range plan {
		if item.err != nil {
			pending = append(pending, o.mover.Reject(item.req, item.err))
			continue
		}
		pending = append(pending, o.mover.Move(item.req))
	}
	return pending, nil
}

// prepareDirectories creates the output directory and every category folder
// the plan needs. Existing directories are fine.
func prepareDirectories(plan []planned, outputDir string) error {
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return faults.Wrap(faults.ErrDirectoryCreation, "organizing", "create output directory", outputDir, err)
	}
	seen := make(map[string]struct{}, len(plan))
	for _, item := range plan {
		if item.err != nil {
			continue
		}
		dir := item.req.CategoryDir()
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		if err := fileutil.EnsureDir(dir); err != nil {
			return faults.Wrap(faults.ErrDirectoryCreation, "organizing", "create category directory", item.req.Category, err)
		}
	}
	return nil
}
