package command

import (
	"time"

	"github.com/drawkit/drawkit/internal/state"
)

// DefaultHistoryLimit caps the undo stack when no explicit limit is given.
const DefaultHistoryLimit = 100

// Entry is one executed command with the time it was executed.
type Entry struct {
	Command   Command
	Timestamp time.Time
}

// History holds the linear undo/redo stacks. It is not safe for concurrent
// use; the store serializes access to it.
type History struct {
	undo       []Entry
	redo       []Entry
	maxEntries int
}

// NewHistory creates a history capped at maxEntries undo entries. Values
// below 1 fall back to DefaultHistoryLimit.
func NewHistory(maxEntries int) *History {
	if maxEntries < 1 {
		maxEntries = DefaultHistoryLimit
	}
	return &History{maxEntries: maxEntries}
}

// Execute applies the command, pushes it onto the undo stack, and clears
// the redo stack. Linear history: there is no branch merging.
func (h *History) Execute(st *state.EditorState, cmd Command) *state.EditorState {
	next := cmd.Do(st)
	h.undo = append(h.undo, Entry{Command: cmd, Timestamp: time.Now()})
	h.redo = nil
	if len(h.undo) > h.maxEntries {
		excess := len(h.undo) - h.maxEntries
		h.undo = append([]Entry(nil), h.undo[excess:]...)
	}
	return next
}

// Undo reverses the most recent command. Returns the input state and false
// when the undo stack is empty.
func (h *History) Undo(st *state.EditorState) (*state.EditorState, bool) {
	if len(h.undo) == 0 {
		return st, false
	}
	entry := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	next := entry.Command.Undo(st)
	h.redo = append(h.redo, entry)
	return next, true
}

// Redo reapplies the most recently undone command. Returns the input state
// and false when the redo stack is empty.
func (h *History) Redo(st *state.EditorState) (*state.EditorState, bool) {
	if len(h.redo) == 0 {
		return st, false
	}
	entry := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	next := entry.Command.Do(st)
	h.undo = append(h.undo, entry)
	return next, true
}

// CanUndo reports whether an undo is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoCount returns the number of undoable entries.
func (h *History) UndoCount() int { return len(h.undo) }

// RedoCount returns the number of redoable entries.
func (h *History) RedoCount() int { return len(h.redo) }

// PeekUndo returns the entry Undo would reverse next.
func (h *History) PeekUndo() (Entry, bool) {
	if len(h.undo) == 0 {
		return Entry{}, false
	}
	return h.undo[len(h.undo)-1], true
}

// PeekRedo returns the entry Redo would reapply next.
func (h *History) PeekRedo() (Entry, bool) {
	if len(h.redo) == 0 {
		return Entry{}, false
	}
	return h.redo[len(h.redo)-1], true
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
