package tools

import (
	"errors"
	"fmt"
	"sync"

	"github.com/drawkit/drawkit/internal/command"
	"github.com/drawkit/drawkit/internal/input"
	"github.com/drawkit/drawkit/internal/state"
	"github.com/drawkit/drawkit/internal/store"
)

// ErrUnknownTool is returned when switching to an unregistered tool id.
var ErrUnknownTool = errors.New("unknown tool")

// Router owns the registered tools and dispatches actions to whichever one
// ui.ToolID names. Registration is safe concurrently with dispatch: live
// config reloads re-register tools while actions are in flight.
type Router struct {
	store *store.Store

	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRouter creates a router bound to a store.
func NewRouter(s *store.Store) *Router {
	return &Router{store: s, tools: make(map[string]Tool)}
}

// Register adds a tool. A tool registered twice replaces its predecessor.
func (r *Router) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.ID()] = t
}

// Active returns the currently active tool, or nil when ui.ToolID names
// nothing registered.
func (r *Router) Active() Tool {
	id := r.store.GetState().UI.ToolID
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[id]
}

// Switch deactivates the current tool and activates the named one. The
// outgoing tool's OnExit runs before the incoming tool's OnEnter, and both
// transitions publish through the store. Switching to the already-active
// tool is a no-op.
func (r *Router) Switch(id string) error {
	r.mu.RLock()
	next, ok := r.tools[id]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("switch to %q: %w", id, ErrUnknownTool)
	}
	if r.store.GetState().UI.ToolID == id {
		return nil
	}
	current := r.Active()
	r.store.SetState(func(st *state.EditorState) *state.EditorState {
		if current != nil {
			st = current.OnExit(st)
		}
		out := st.Clone()
		out.UI.ToolID = id
		return next.OnEnter(out)
	})
	return nil
}

// Dispatch routes one action to the active tool, applies the returned
// state, and executes the returned command. Actions arriving with no
// active tool are dropped.
func (r *Router) Dispatch(act input.Action) {
	tool := r.Active()
	if tool == nil {
		return
	}
	var cmd command.Command
	r.store.SetState(func(st *state.EditorState) *state.EditorState {
		next, c := tool.OnAction(st, act)
		cmd = c
		if next == st {
			return nil
		}
		return next
	})
	if cmd != nil {
		r.store.ExecuteCommand(cmd)
	}
}
