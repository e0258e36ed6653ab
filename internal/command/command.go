package command

import "github.com/drawkit/drawkit/internal/state"

// Kind classifies what part of the editor state a command mutates.
type Kind uint8

const (
	// KindDoc commands mutate the document.
	KindDoc Kind = iota
	// KindUI commands mutate interface state such as the selection.
	KindUI
	// KindCamera commands mutate the camera.
	KindCamera
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUI:
		return "ui"
	case KindCamera:
		return "camera"
	default:
		return "doc"
	}
}

// Command is an undoable unit of document, UI, or camera mutation. Both Do
// and Undo are pure: they return a new state and leave the input untouched.
type Command interface {
	// Name identifies the command for history display and logging.
	Name() string

	// Kind reports what part of the state the command mutates.
	Kind() Kind

	// Do applies the command's captured after-payload.
	Do(st *state.EditorState) *state.EditorState

	// Undo restores the command's captured before-payload.
	Undo(st *state.EditorState) *state.EditorState
}

// Compound groups several commands as one undo unit.
type Compound struct {
	name     string
	commands []Command
}

// NewCompound creates a compound command. Nil sub-commands are dropped.
func NewCompound(name string, commands ...Command) *Compound {
	kept := make([]Command, 0, len(commands))
	for _, c := range commands {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &Compound{name: name, commands: kept}
}

// Name returns the compound's own name.
func (c *Compound) Name() string { return c.name }

// Kind reports the widest kind among the sub-commands: doc wins over ui,
// ui over camera.
func (c *Compound) Kind() Kind {
	kind := KindCamera
	for _, cmd := range c.commands {
		switch cmd.Kind() {
		case KindDoc:
			return KindDoc
		case KindUI:
			kind = KindUI
		}
	}
	return kind
}

// Do applies all sub-commands in order.
func (c *Compound) Do(st *state.EditorState) *state.EditorState {
	for _, cmd := range c.commands {
		st = cmd.Do(st)
	}
	return st
}

// Undo reverses all sub-commands in reverse order.
func (c *Compound) Undo(st *state.EditorState) *state.EditorState {
	for i := len(c.commands) - 1; i >= 0; i-- {
		st = c.commands[i].Undo(st)
	}
	return st
}

// Len returns the number of sub-commands.
func (c *Compound) Len() int { return len(c.commands) }
