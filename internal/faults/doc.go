// Package faults defines the error markers shared by the organizer, mover,
// journal and CLI layers.
//
// Failures are wrapped with Wrap so callers can classify them with errors.Is
// while still printing a message that names the stage and operation that
// failed. Directory creation failures abort a batch; move failures only mark
// the file they belong to.
package faults
