// Package textutil cleans user-supplied names before they become path
// segments.
package textutil
