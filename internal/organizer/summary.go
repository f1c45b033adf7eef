package organizer

import (
	"sort"

	"filesort/internal/mover"
)

// WaitAll blocks until every handle resolves and returns outcomes in the same
// order as pending.
func WaitAll(pending []*mover.Pending) []mover.Outcome {
	outcomes := make([]mover.Outcome, 0, len(pending))
	for _, p := range pending {
		outcomes = append(outcomes, p.Wait())
	}
	return outcomes
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Total      int
	Moved      int
	Planned    int
	Failed     int
	ByCategory map[string]int
}

// Summarize tallies outcomes. Failed files are not counted per category.
func Summarize(outcomes []mover.Outcome) Summary {
	s := Summary{Total: len(outcomes), ByCategory: make(map[string]int)}
	for _, o := range outcomes {
		switch o.Status {
		case mover.StatusMoved:
			s.Moved++
		case mover.StatusPlanned:
			s.Planned++
		case mover.StatusFailed:
			s.Failed++
			continue
		}
		s.ByCategory[o.Category]++
	}
	return s
}

// Categories returns the categories that received files, sorted by name.
func (s Summary) Categories() []string {
	names := make([]string, 0, len(s.ByCategory))
	for name := range s.ByCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasFailures reports whether any file failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}
