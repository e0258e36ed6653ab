// Package tools implements the input state machines that turn pointer and
// keyboard actions into document mutations.
//
// A Tool is pure and synchronous: OnAction receives the current state and
// one action and returns the next state plus an optional command for the
// history. Ephemeral manipulation (drafts, live drags, marquee, binding
// previews) flows through the returned state; committed mutations flow
// through the returned command. The Router applies the state first and
// executes the command second; commands carry absolute payloads, so the
// order cannot skew them.
//
// Exactly one tool is active at a time, selected by ui.ToolID. Switching
// runs the outgoing tool's OnExit, which must roll back any uncommitted
// gesture, before the incoming tool's OnEnter. Tools assume one pointer
// gesture at a time and are not reentrant.
package tools
