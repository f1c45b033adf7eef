// Package main hosts the filesort CLI entrypoint and command graph.
//
// Commands resolve configuration once through commandContext, build the
// organizer from internal packages and render results as tables or status
// lines. Moving logic lives in internal/organizer and internal/mover; this
// package only parses flags and prints.
package main
