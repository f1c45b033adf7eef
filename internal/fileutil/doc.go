// Package fileutil holds the filesystem primitives the mover is built on:
// idempotent directory creation, rename-based moves that fall back to a
// verified copy across devices, and streaming copy helpers.
package fileutil
