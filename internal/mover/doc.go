// Package mover relocates a single file into its category folder.
//
// Each Move call returns immediately with a Pending handle while the work runs
// on its own goroutine. In list-only mode nothing on disk changes and the
// outcome carries an "mv <source> <destination>" preview. Successes and
// previews go to the reporter's Info channel, failures to Warn; a failure
// never affects other moves.
package mover
