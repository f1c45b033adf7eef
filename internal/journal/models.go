package journal

import (
	"time"

	"filesort/internal/mover"
)

// Run is one recorded organize invocation.
type Run struct {
	ID         string
	Strategy   string
	SourceDir  string
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Moved      int
	Failed     int
	UndoneAt   *time.Time
}

// Undone reports whether the run has been reverted.
func (r Run) Undone() bool {
	return r.UndoneAt != nil
}

// Entry is one file of a recorded run.
type Entry struct {
	RunID       string
	Seq         int
	File        string
	Category    string
	Source      string
	Destination string
	Status      string
	Error       string
}

// Moved reports whether the entry's file actually changed location.
func (e Entry) Moved() bool {
	return e.Status == mover.StatusMoved.String()
}

func entriesFromOutcomes(runID string, outcomes []mover.Outcome) []Entry {
	entries := make([]Entry, 0, len(outcomes))
	for i, o := range outcomes {
		entry := Entry{
			RunID:       runID,
			Seq:         i + 1,
			File:        o.File,
			Category:    o.Category,
			Source:      o.Source,
			Destination: o.Destination,
			Status:      o.Status.String(),
		}
		if o.Err != nil {
			entry.Error = o.Err.Error()
		}
		entries = append(entries, entry)
	}
	return entries
}
