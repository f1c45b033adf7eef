package testsupport

import "sync"

// Reporter records every message it receives. Safe for concurrent use.
type Reporter struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (r *Reporter) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, message)
}

func (r *Reporter) Warn(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns = append(r.warns, message)
}

// Infos returns a copy of the info messages received so far.
func (r *Reporter) Infos() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.infos...)
}

// Warns returns a copy of the warnings received so far.
func (r *Reporter) Warns() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.warns...)
}
