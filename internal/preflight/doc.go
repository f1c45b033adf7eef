// Package preflight provides readiness checks run by "filesort check" before a
// batch touches anything.
//
// Checks report rather than fail: each returns a Result and the caller
// decides how to render it. A missing output directory passes when its
// nearest existing parent is writable, since organize creates it on demand.
// The device check is informational and tells the user whether moves will be
// renames or copies.
package preflight
