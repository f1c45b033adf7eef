package mover

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/semaphore"

	"filesort/internal/faults"
	"filesort/internal/fileutil"
	"filesort/internal/logging"
	"filesort/internal/report"
)

// Request describes one file relocation.
type Request struct {
	SourceDir string
	OutputDir string
	File      string
	Category  string
	DryRun    bool
}

// SourcePath is the absolute path of the file being moved.
func (r Request) SourcePath() string {
	return absolute(filepath.Join(r.SourceDir, r.File))
}

// CategoryDir is the absolute path of the destination folder.
func (r Request) CategoryDir() string {
	return absolute(filepath.Join(r.OutputDir, r.Category))
}

// DestinationPath is the absolute path the file ends up at.
func (r Request) DestinationPath() string {
	return filepath.Join(r.CategoryDir(), r.File)
}

// Preview renders the list-only line for the request.
func (r Request) Preview() string {
	return fmt.Sprintf("mv %s %s", r.SourcePath(), r.DestinationPath())
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Mover dispatches file moves.
type Mover struct {
	reporter report.Reporter
	logger   *slog.Logger
	sem      *semaphore.Weighted
	move     func(src, dst string) error
}

// Option customizes a Mover.
type Option func(*Mover)

// WithJobs bounds how many moves touch the filesystem at once. Zero or less
// removes the bound.
func WithJobs(jobs int) Option {
	return func(m *Mover) {
		if jobs > 0 {
			m.sem = semaphore.NewWeighted(int64(jobs))
		} else {
			m.sem = nil
		}
	}
}

// WithLogger attaches a structured logger for per-file debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mover) {
		m.logger = logging.NewComponentLogger(logger, "mover")
	}
}

// WithMoveFunc replaces the relocation primitive. Tests use it to inject failures.
func WithMoveFunc(fn func(src, dst string) error) Option {
	return func(m *Mover) {
		if fn != nil {
			m.move = fn
		}
	}
}

// New constructs a Mover reporting through reporter.
func New(reporter report.Reporter, opts ...Option) *Mover {
	if reporter == nil {
		reporter = report.Nop()
	}
	m := &Mover{
		reporter: reporter,
		logger:   logging.NewComponentLogger(nil, "mover"),
		move:     fileutil.Move,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Move starts relocating req.File and returns without waiting for it.
func (m *Mover) Move(req Request) *Pending {
	p := newPending(req.File)
	go func() {
		p.complete(m.run(req))
	}()
	return p
}

// Reject records a file that failed before it could be moved, for example
// because it could not be classified. The warning is reported immediately and
// the returned handle is already resolved.
func (m *Mover) Reject(req Request, err error) *Pending {
	outcome := Outcome{
		File:     req.File,
		Category: req.Category,
		Source:   req.SourcePath(),
		Status:   StatusFailed,
		Err:      err,
		Message:  fmt.Sprintf("failed to move %s: %v", req.File, err),
	}
	if req.Category != "" {
		outcome.Destination = req.DestinationPath()
	}
	m.reporter.Warn(outcome.Message)
	logging.WarnWithContext(m.logger, "file rejected", "move_rejected",
		logging.String(logging.FieldFile, req.File),
		logging.Error(err),
	)
	return Resolved(outcome)
}

func (m *Mover) run(req Request) Outcome {
	outcome := Outcome{
		File:        req.File,
		Category:    req.Category,
		Source:      req.SourcePath(),
		Destination: req.DestinationPath(),
	}

	if req.DryRun {
		outcome.Status = StatusPlanned
		outcome.Message = req.Preview()
		m.reporter.Info(outcome.Message)
		return outcome
	}

	if m.sem != nil {
		// Never cancelled: a dispatched move always runs.
		_ = m.sem.Acquire(context.Background(), 1)
		defer m.sem.Release(1)
	}

	if err := m.relocate(req, outcome); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		outcome.Message = fmt.Sprintf("failed to move %s: %v", req.File, err)
		m.reporter.Warn(outcome.Message)
		logging.WarnWithContext(m.logger, "move failed", "move_failed",
			logging.String(logging.FieldFile, req.File),
			logging.String(logging.FieldCategory, req.Category),
			logging.Error(err),
		)
		return outcome
	}

	outcome.Status = StatusMoved
	outcome.Message = fmt.Sprintf("moved %s to %s", req.File, req.Category)
	m.reporter.Info(outcome.Message)
	m.logger.Debug("file moved",
		logging.String(logging.FieldFile, req.File),
		logging.String("destination", outcome.Destination),
	)
	return outcome
}

func (m *Mover) relocate(req Request, outcome Outcome) error {
	if err := fileutil.EnsureDir(absolute(req.OutputDir)); err != nil {
		return faults.Wrap(faults.ErrDirectoryCreation, "moving", "create output directory", req.OutputDir, err)
	}
	if err := fileutil.EnsureDir(req.CategoryDir()); err != nil {
		return faults.Wrap(faults.ErrDirectoryCreation, "moving", "create category directory", req.Category, err)
	}
	if err := m.move(outcome.Source, outcome.Destination); err != nil {
		return faults.Wrap(faults.ErrMove, "moving", "relocate file", req.File, err)
	}
	return nil
}
