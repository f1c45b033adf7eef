// Package journal persists the history of organize runs in SQLite so they can
// be listed and undone later.
//
// The journal is optional and only written after a batch has finished: it
// never takes part in the moves themselves. Writers serialize on an exclusive
// file lock next to the database so two filesort invocations finishing at the
// same time do not interleave their runs. SQLITE_BUSY errors are retried with a
// short backoff.
package journal
