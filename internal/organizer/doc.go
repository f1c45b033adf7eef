// Package organizer turns a directory listing into a batch of category moves.
//
// Each strategy filters the listing with classify.IsEligible, assigns every
// remaining file exactly one category, creates the output and category
// directories up front and then hands each file to the mover. The returned
// pending handles follow input order; WaitAll joins them. A directory that
// cannot be created aborts the batch before anything moves, while a single
// file failing to classify or move never affects its siblings.
//
// Undo reverses journal entries through the same mover so reverted runs are
// reported exactly like forward ones.
package organizer
