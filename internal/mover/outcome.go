package mover

// Status classifies a finished move.
type Status int

const (
	StatusMoved Status = iota
	StatusPlanned
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusPlanned:
		return "planned"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one move attempt.
type Outcome struct {
	File        string
	Category    string
	Source      string
	Destination string
	Status      Status
	Message     string
	Err         error
}

// Failed reports whether the move did not happen.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed
}

// Pending is a handle to a move that may still be running.
type Pending struct {
	file    string
	done    chan struct{}
	outcome Outcome
}

func newPending(file string) *Pending {
	return &Pending{file: file, done: make(chan struct{})}
}

// Resolved returns an already-completed handle. The organizer uses it for
// files that fail before a move can be dispatched.
func Resolved(outcome Outcome) *Pending {
	p := newPending(outcome.File)
	p.complete(outcome)
	return p
}

func (p *Pending) complete(outcome Outcome) {
	p.outcome = outcome
	close(p.done)
}

// File returns the file name this handle belongs to.
func (p *Pending) File() string {
	return p.file
}

// Done is closed once the outcome is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the move finishes and returns its outcome.
func (p *Pending) Wait() Outcome {
	<-p.done
	return p.outcome
}
