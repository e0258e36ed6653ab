package store

import (
	"reflect"
	"testing"

	"github.com/drawkit/drawkit/internal/command"
	"github.com/drawkit/drawkit/internal/doc"
	"github.com/drawkit/drawkit/internal/state"
)

func newSeededState(t *testing.T) (*state.EditorState, *doc.Page, *doc.Shape) {
	t.Helper()
	st := state.New()
	page := st.Doc.AddPage("Page 1")
	st.UI.CurrentPageID = page.ID
	shape := doc.NewRectShape(page.ID, 0, 0, 100, 100, doc.DefaultStyle())
	st.Doc.AddShape(shape)
	return st, page, shape
}

func TestSubscribeReplaysLatest(t *testing.T) {
	st, _, _ := newSeededState(t)
	s := New(st)

	var got []*state.EditorState
	unsub := s.Subscribe(func(st *state.EditorState) { got = append(got, st) })
	defer unsub()

	if len(got) != 1 || got[0] != s.GetState() {
		t.Fatal("subscribe must deliver the current state synchronously")
	}

	s.SetState(func(st *state.EditorState) *state.EditorState {
		next := st.Clone()
		next.UI.ToolID = "rect"
		return next
	})
	if len(got) != 2 || got[1].UI.ToolID != "rect" {
		t.Error("publish not delivered to subscriber")
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	s := New(nil)
	calls := 0
	unsub := s.Subscribe(func(*state.EditorState) { calls++ })
	unsub()
	unsub()
	s.SetState(func(st *state.EditorState) *state.EditorState { return st.Clone() })
	if calls != 1 {
		t.Errorf("calls = %d, want only the replay delivery", calls)
	}
}

func TestSetStateNilIsNoOp(t *testing.T) {
	s := New(nil)
	before := s.GetState()
	published := 0
	unsub := s.Subscribe(func(*state.EditorState) { published++ })
	defer unsub()

	s.SetState(func(*state.EditorState) *state.EditorState { return nil })
	if s.GetState() != before || published != 1 {
		t.Error("nil updater result must not publish")
	}
}

func TestRepairedStateKeepsReference(t *testing.T) {
	st, _, _ := newSeededState(t)
	repaired := Repair(st)
	if repaired != st {
		t.Fatal("repairing a valid state must return the same reference")
	}
	if again := Repair(repaired); again != repaired {
		t.Error("repair is not idempotent on its own output")
	}
}

func TestRepairResetsDanglingCurrentPage(t *testing.T) {
	st, _, _ := newSeededState(t)
	st.UI.CurrentPageID = "missing"

	repaired := Repair(st)
	if repaired == st {
		t.Fatal("dangling page id must trigger a repair")
	}
	if repaired.UI.CurrentPageID != st.Doc.FirstPageID() {
		t.Errorf("currentPageID = %q, want first page", repaired.UI.CurrentPageID)
	}

	empty := state.New()
	empty.UI.CurrentPageID = "missing"
	if got := Repair(empty); got.UI.CurrentPageID != "" {
		t.Error("with no pages left, currentPageID must reset to empty")
	}
}

func TestRepairFiltersSelection(t *testing.T) {
	st, page, shape := newSeededState(t)
	other := st.Doc.AddPage("Page 2")
	elsewhere := doc.NewRectShape(other.ID, 0, 0, 10, 10, doc.DefaultStyle())
	st.Doc.AddShape(elsewhere)

	st.UI.SelectionIDs = []string{shape.ID, "missing", elsewhere.ID}
	repaired := Repair(st)
	if want := []string{shape.ID}; !reflect.DeepEqual(repaired.UI.SelectionIDs, want) {
		t.Errorf("selection = %v, want %v", repaired.UI.SelectionIDs, want)
	}

	// Everything invalid: the selection collapses to nil.
	st.UI.SelectionIDs = []string{"missing"}
	if got := Repair(st); got.UI.SelectionIDs != nil {
		t.Error("fully-invalid selection should become nil")
	}
	_ = page
}

func TestRepairCleansPageList(t *testing.T) {
	st, page, shape := newSeededState(t)
	page.ShapeIDs = []string{shape.ID, shape.ID, "ghost"}

	repaired := Repair(st)
	got := repaired.Doc.Page(page.ID).ShapeIDs
	if want := []string{shape.ID}; !reflect.DeepEqual(got, want) {
		t.Errorf("page shape list = %v, want %v", got, want)
	}
}

func TestRepairDropsNonArrowBindings(t *testing.T) {
	st, page, shape := newSeededState(t)
	arrow := doc.NewArrowShape(page.ID, shape.Pos(), shape.Pos(), doc.DefaultStyle())
	st.Doc.AddShape(arrow)

	good := &doc.Binding{ID: "good", FromShapeID: arrow.ID, Handle: doc.HandleStart, ToShapeID: shape.ID, Anchor: doc.CenterAnchor()}
	bad := &doc.Binding{ID: "bad", FromShapeID: shape.ID, Handle: doc.HandleStart, ToShapeID: arrow.ID, Anchor: doc.CenterAnchor()}
	dangling := &doc.Binding{ID: "dangling", FromShapeID: "missing", Handle: doc.HandleEnd, ToShapeID: shape.ID, Anchor: doc.CenterAnchor()}
	st.Doc.AddBinding(good)
	st.Doc.AddBinding(bad)
	st.Doc.AddBinding(dangling)

	repaired := Repair(st)
	if repaired.Doc.Binding("good") == nil {
		t.Error("valid binding removed")
	}
	if repaired.Doc.Binding("bad") != nil || repaired.Doc.Binding("dangling") != nil {
		t.Error("invalid bindings survived repair")
	}
}

func TestExecuteUndoRedoThroughStore(t *testing.T) {
	st, page, _ := newSeededState(t)
	s := New(st)

	shape := doc.NewRectShape(page.ID, 10, 10, 50, 50, doc.DefaultStyle())
	s.ExecuteCommand(command.NewCreateShape(shape))
	if s.GetState().Doc.Shape(shape.ID) == nil {
		t.Fatal("command not applied")
	}
	if !s.CanUndo() || s.CanRedo() {
		t.Fatal("history flags wrong after execute")
	}

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if s.GetState().Doc.Shape(shape.ID) != nil {
		t.Error("undo did not remove the shape")
	}
	if !s.Redo() {
		t.Fatal("redo failed")
	}
	if s.GetState().Doc.Shape(shape.ID) == nil {
		t.Error("redo did not restore the shape")
	}

	if s.Undo() && s.Undo() {
		t.Error("undo past the bottom of the stack should return false")
	}
	if s.Redo() && s.Redo() {
		t.Error("redo past the top of the stack should return false")
	}
}

func TestDeleteCurrentPageRepairsThroughStore(t *testing.T) {
	st, page, shape := newSeededState(t)
	second := st.Doc.AddPage("Page 2")
	s := New(st)

	var last *state.EditorState
	unsub := s.Subscribe(func(st *state.EditorState) { last = st })
	defer unsub()

	s.SetState(func(st *state.EditorState) *state.EditorState {
		next := st.Clone()
		next.UI.SelectionIDs = []string{shape.ID}
		next.Doc.RemovePage(page.ID)
		return next
	})

	if last.UI.CurrentPageID != second.ID {
		t.Errorf("currentPageID = %q, want the surviving page", last.UI.CurrentPageID)
	}
	if last.UI.SelectionIDs != nil {
		t.Error("selection of deleted shapes should be cleared by repair")
	}
}

func TestClearHistory(t *testing.T) {
	s := New(nil)
	s.ExecuteCommand(command.NewSetSelection(nil, nil))
	if !s.CanUndo() {
		t.Fatal("expected an undoable entry")
	}
	s.ClearHistory()
	if s.CanUndo() || s.CanRedo() || s.History().UndoCount() != 0 {
		t.Error("ClearHistory should empty both stacks")
	}
}
