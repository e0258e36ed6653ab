// Package persist defines the sink interface the editor pushes document
// changes into. The editor never awaits persistence: an external layer
// diffs successive published states into patches and owns durability,
// debouncing, and schema migration. The sinks here are the consumed
// contract plus small built-ins for tests and tooling.
package persist
