package persist

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/drawkit/drawkit/internal/doc"
)

// Patch is one enqueued document change: a full snapshot of the document
// at publish time. Diffing snapshots into minimal patches is the sink
// implementation's concern.
type Patch struct {
	Doc  *doc.Document `json:"doc"`
	Time time.Time     `json:"time"`
}

// Sink receives document changes. EnqueueDocPatch must not block the
// caller; Flush drains anything buffered.
type Sink interface {
	EnqueueDocPatch(boardID string, patch Patch) error
	Flush() error
}

// NopSink discards everything.
type NopSink struct{}

// EnqueueDocPatch implements Sink.
func (NopSink) EnqueueDocPatch(string, Patch) error { return nil }

// Flush implements Sink.
func (NopSink) Flush() error { return nil }

// WriterSink buffers the latest patch per board and writes each as one
// JSON line on Flush. It backs the command-line driver and tests.
type WriterSink struct {
	mu      sync.Mutex
	w       io.Writer
	pending map[string]Patch
	order   []string
}

// NewWriterSink creates a sink writing JSON lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w, pending: make(map[string]Patch)}
}

// EnqueueDocPatch implements Sink. Only the latest patch per board is
// kept; earlier ones are superseded.
func (s *WriterSink) EnqueueDocPatch(boardID string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[boardID]; !ok {
		s.order = append(s.order, boardID)
	}
	s.pending[boardID] = patch
	return nil
}

// Flush implements Sink.
func (s *WriterSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	enc := json.NewEncoder(s.w)
	for _, id := range s.order {
		line := struct {
			BoardID string `json:"boardId"`
			Patch   Patch  `json:"patch"`
		}{BoardID: id, Patch: s.pending[id]}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("flush board %s: %w", id, err)
		}
	}
	s.pending = make(map[string]Patch)
	s.order = nil
	return nil
}
