// Package command provides the undoable mutation units of the editor and
// the two-stack undo/redo history that applies them.
//
// # Commands
//
// A Command is an immutable value carrying its own before/after payload,
// captured at construction. Do and Undo are pure: they clone the input
// state, apply the payload, and return the clone. Commands never read
// ambient mutable fields, so a command replayed after undo always
// reproduces the exact post-Do state.
//
// Built-in commands:
//   - CreateShape / DeleteShapes: document structure, with cascading
//     binding and page cleanup captured up front
//   - UpdateShape: one shape's before/after snapshot
//   - PutBinding / DeleteBindings: binding table edits, normally composed
//     with UpdateShape in a Compound
//   - SetSelection / SetCamera: UI and camera state
//   - Compound: several commands as one undo unit
//
// # History
//
// History keeps undo and redo stacks of executed commands. Execute clears
// the redo stack (linear history, no branch merging); Undo and Redo return
// false instead of an error on an empty stack. History is not safe for
// concurrent use; the store serializes access to it.
package command
