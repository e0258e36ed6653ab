package store

import (
	"sync"

	"github.com/drawkit/drawkit/internal/command"
	"github.com/drawkit/drawkit/internal/state"
)

// Listener receives every published state, including the current one at
// subscription time.
type Listener func(st *state.EditorState)

// Option configures a Store.
type Option func(*Store)

// WithHistoryLimit caps the undo stack.
func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.history = command.NewHistory(n) }
}

// Store holds one EditorState and the history that mutates it. All public
// methods are safe for concurrent use; listeners run outside the lock.
type Store struct {
	mu          sync.Mutex
	state       *state.EditorState
	history     *command.History
	subscribers map[int]Listener
	nextSubID   int
}

// New creates a store around an initial state. The initial state is
// repaired before it becomes visible. A nil initial state starts empty.
func New(initial *state.EditorState, opts ...Option) *Store {
	if initial == nil {
		initial = state.New()
	}
	s := &Store{
		state:       Repair(initial),
		history:     command.NewHistory(0),
		subscribers: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetState returns the current state. Callers must treat it as immutable.
func (s *Store) GetState() *state.EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetState applies an updater outside the history. The updater receives
// the current state and returns its replacement; returning nil skips the
// publish entirely. Returning the input reference republishes it, which
// subscribers can recognize as "no real change".
func (s *Store) SetState(update func(st *state.EditorState) *state.EditorState) {
	s.mu.Lock()
	next := update(s.state)
	if next == nil {
		s.mu.Unlock()
		return
	}
	s.publishLocked(next)
}

// ExecuteCommand runs a command through the history, repairs the result,
// and publishes it.
func (s *Store) ExecuteCommand(cmd command.Command) {
	if cmd == nil {
		return
	}
	s.mu.Lock()
	next := s.history.Execute(s.state, cmd)
	s.publishLocked(next)
}

// Undo reverses the most recent command. Returns false when the undo
// stack is empty.
func (s *Store) Undo() bool {
	s.mu.Lock()
	next, ok := s.history.Undo(s.state)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.publishLocked(next)
	return true
}

// Redo reapplies the most recently undone command. Returns false when the
// redo stack is empty.
func (s *Store) Redo() bool {
	s.mu.Lock()
	next, ok := s.history.Redo(s.state)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.publishLocked(next)
	return true
}

// CanUndo reports whether an undo is available.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo is available.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// History exposes the underlying history for inspection.
func (s *Store) History() *command.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// ClearHistory drops both undo and redo stacks.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
}

// Subscribe registers a listener and synchronously delivers the current
// state to it before returning. The returned function unsubscribes and is
// idempotent.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	current := s.state
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// publishLocked repairs next, installs it, and notifies subscribers. The
// caller holds the lock; publishLocked releases it before notifying.
func (s *Store) publishLocked(next *state.EditorState) {
	next = Repair(next)
	s.state = next
	listeners := make([]Listener, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}
