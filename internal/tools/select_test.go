package tools

import (
	"math"
	"reflect"
	"testing"

	"github.com/drawkit/drawkit/internal/doc"
	"github.com/drawkit/drawkit/internal/geom"
	"github.com/drawkit/drawkit/internal/input"
	"github.com/drawkit/drawkit/internal/state"
	"github.com/drawkit/drawkit/internal/store"
)

func newEnv(t *testing.T) (*store.Store, *Router, string) {
	t.Helper()
	st := state.New()
	page := st.Doc.AddPage("Page 1")
	st.UI.CurrentPageID = page.ID

	s := store.New(st)
	r := NewRouter(s)
	p := DefaultParams()
	style := doc.DefaultStyle()
	r.Register(NewSelect(p))
	r.Register(NewRectTool(p, style))
	r.Register(NewEllipseTool(p, style))
	r.Register(NewLineTool(p, style))
	r.Register(NewArrowTool(p, style))
	r.Register(NewTextTool(p, style))
	r.Register(NewMarkdownTool(p, style))
	r.Register(NewPenTool(p, style))
	if err := r.Switch(ToolSelect); err != nil {
		t.Fatal(err)
	}
	return s, r, page.ID
}

func ptr(x, y float64) input.Pointer {
	return input.Pointer{World: geom.Pt(x, y), Screen: geom.Pt(x, y)}
}

func down(x, y float64) input.PointerDown { return input.PointerDown{Pointer: ptr(x, y)} }
func move(x, y float64) input.PointerMove { return input.PointerMove{Pointer: ptr(x, y)} }
func up(x, y float64) input.PointerUp     { return input.PointerUp{Pointer: ptr(x, y)} }

func addRect(t *testing.T, s *store.Store, pageID string, x, y, w, h float64) string {
	t.Helper()
	shape := doc.NewRectShape(pageID, x, y, w, h, doc.DefaultStyle())
	s.SetState(func(st *state.EditorState) *state.EditorState {
		next := st.Clone()
		next.Doc.AddShape(shape)
		return next
	})
	return shape.ID
}

func selectIDs(s *store.Store, ids ...string) {
	s.SetState(func(st *state.EditorState) *state.EditorState {
		next := st.Clone()
		next.UI.SelectionIDs = append([]string(nil), ids...)
		return next
	})
}

func addBoundArrow(t *testing.T, s *store.Store, pageID string, from, to geom.Point, startTarget, endTarget string) string {
	t.Helper()
	arrow := doc.NewArrowShape(pageID, from, to, doc.DefaultStyle())
	s.SetState(func(st *state.EditorState) *state.EditorState {
		next := st.Clone()
		next.Doc.AddShape(arrow)
		added := next.Doc.Shape(arrow.ID)
		if startTarget != "" {
			b := &doc.Binding{ID: doc.NewID(), FromShapeID: arrow.ID, Handle: doc.HandleStart, ToShapeID: startTarget, Anchor: doc.CenterAnchor()}
			next.Doc.AddBinding(b)
			added.Arrow.Start = doc.Endpoint{BindingID: b.ID}
		}
		if endTarget != "" {
			b := &doc.Binding{ID: doc.NewID(), FromShapeID: arrow.ID, Handle: doc.HandleEnd, ToShapeID: endTarget, Anchor: doc.CenterAnchor()}
			next.Doc.AddBinding(b)
			added.Arrow.End = doc.Endpoint{BindingID: b.ID}
		}
		return next
	})
	return arrow.ID
}

func TestClickSelectsTopmost(t *testing.T) {
	s, r, pageID := newEnv(t)
	addRect(t, s, pageID, 100, 100, 200, 200)
	small := addRect(t, s, pageID, 150, 150, 100, 100)

	r.Dispatch(down(200, 200))
	r.Dispatch(up(200, 200))

	if want := []string{small}; !reflect.DeepEqual(s.GetState().UI.SelectionIDs, want) {
		t.Errorf("selection = %v, want %v", s.GetState().UI.SelectionIDs, want)
	}
}

func TestShiftClickTogglesMembership(t *testing.T) {
	s, r, pageID := newEnv(t)
	a := addRect(t, s, pageID, 0, 0, 50, 50)
	b := addRect(t, s, pageID, 100, 0, 50, 50)
	selectIDs(s, a)

	shiftDown := input.PointerDown{Pointer: ptr(125, 25)}
	shiftDown.Mod.Shift = true
	r.Dispatch(shiftDown)
	r.Dispatch(up(125, 25))
	if want := []string{a, b}; !reflect.DeepEqual(s.GetState().UI.SelectionIDs, want) {
		t.Fatalf("selection = %v, want %v", s.GetState().UI.SelectionIDs, want)
	}

	shiftDown = input.PointerDown{Pointer: ptr(25, 25)}
	shiftDown.Mod.Shift = true
	r.Dispatch(shiftDown)
	r.Dispatch(up(25, 25))
	if want := []string{b}; !reflect.DeepEqual(s.GetState().UI.SelectionIDs, want) {
		t.Errorf("selection = %v, want %v", s.GetState().UI.SelectionIDs, want)
	}
}

func TestMarqueeSelectsByBoundsOverlap(t *testing.T) {
	s, r, pageID := newEnv(t)
	r1 := addRect(t, s, pageID, 0, 0, 100, 100)
	r2 := addRect(t, s, pageID, 200, 0, 100, 100)
	s.SetState(func(st *state.EditorState) *state.EditorState {
		next := st.Clone()
		next.Doc.AddShape(doc.NewEllipseShape(pageID, 0, 200, 80, 80, doc.DefaultStyle()))
		return next
	})

	r.Dispatch(down(-50, -50))
	r.Dispatch(move(350, 150))
	r.Dispatch(up(350, 150))

	if want := []string{r1, r2}; !reflect.DeepEqual(s.GetState().UI.SelectionIDs, want) {
		t.Errorf("selection = %v, want %v", s.GetState().UI.SelectionIDs, want)
	}
}

func TestDragMovesSelectionAndUndoes(t *testing.T) {
	s, r, pageID := newEnv(t)
	id := addRect(t, s, pageID, 0, 0, 50, 50)

	r.Dispatch(down(25, 25))
	r.Dispatch(move(125, 75))
	r.Dispatch(up(125, 75))

	got := s.GetState().Doc.Shape(id)
	if got.X != 100 || got.Y != 50 {
		t.Fatalf("shape at (%v,%v), want (100,50)", got.X, got.Y)
	}
	if !s.Undo() {
		t.Fatal("drag should be undoable")
	}
	got = s.GetState().Doc.Shape(id)
	if got.X != 0 || got.Y != 0 {
		t.Errorf("undo left shape at (%v,%v)", got.X, got.Y)
	}
}

func TestDraggingBoundArrowDropsAllBindings(t *testing.T) {
	s, r, pageID := newEnv(t)
	t1 := addRect(t, s, pageID, 0, 0, 50, 50)
	t2 := addRect(t, s, pageID, 300, 0, 50, 50)
	arrowID := addBoundArrow(t, s, pageID, geom.Pt(100, 25), geom.Pt(250, 25), t1, t2)

	if n := len(s.GetState().Doc.Bindings); n != 2 {
		t.Fatalf("setup bindings = %d, want 2", n)
	}

	r.Dispatch(down(175, 25))
	r.Dispatch(move(175, 125))
	r.Dispatch(up(175, 125))

	st := s.GetState()
	if n := len(st.Doc.Bindings); n != 0 {
		t.Errorf("bindings after whole-arrow drag = %d, want 0", n)
	}
	arrow := st.Doc.Shape(arrowID)
	if arrow.Arrow.Start.Bound() || arrow.Arrow.End.Bound() {
		t.Error("endpoints should be reset to free")
	}
	if arrow.Y != 125 {
		t.Errorf("arrow Y = %v, want 125", arrow.Y)
	}

	if !s.Undo() {
		t.Fatal("expected undoable drag")
	}
	st = s.GetState()
	if n := len(st.Doc.Bindings); n != 2 {
		t.Errorf("bindings after undo = %d, want 2", n)
	}
	arrow = st.Doc.Shape(arrowID)
	if !arrow.Arrow.Start.Bound() || !arrow.Arrow.End.Bound() {
		t.Error("undo should restore bound endpoints")
	}
}

func TestEndpointDragBindsToDropTarget(t *testing.T) {
	s, r, pageID := newEnv(t)
	target := addRect(t, s, pageID, 300, -25, 50, 50)
	arrowID := addBoundArrow(t, s, pageID, geom.Pt(0, 0), geom.Pt(200, 0), "", "")
	selectIDs(s, arrowID)

	r.Dispatch(down(200, 0))
	r.Dispatch(move(325, 0))
	if pv := s.GetState().UI.BindingPreview; pv == nil || pv.ToShapeID != target || pv.Handle != doc.HandleEnd {
		t.Fatalf("binding preview = %+v, want staged target", pv)
	}
	r.Dispatch(up(325, 0))

	st := s.GetState()
	if st.UI.BindingPreview != nil {
		t.Error("binding preview must be cleared on pointer-up")
	}
	arrow := st.Doc.Shape(arrowID)
	if !arrow.Arrow.End.Bound() {
		t.Fatal("end endpoint should be bound after drop")
	}
	b := st.Doc.Binding(arrow.Arrow.End.BindingID)
	if b == nil || b.ToShapeID != target || b.Anchor.Kind != doc.AnchorEdge {
		t.Fatalf("binding = %+v, want edge binding to target", b)
	}

	// Dragging the endpoint off the target removes the binding again.
	r.Dispatch(down(325, 0))
	r.Dispatch(move(200, 200))
	r.Dispatch(up(200, 200))
	st = s.GetState()
	if len(st.Doc.Bindings) != 0 {
		t.Error("miss on drop should delete the binding")
	}
	if st.Doc.Shape(arrowID).Arrow.End.Bound() {
		t.Error("endpoint should be free after unbinding drop")
	}
}

func TestAltClickInsertsPointAndDeleteRemovesIt(t *testing.T) {
	s, r, pageID := newEnv(t)
	arrowID := addBoundArrow(t, s, pageID, geom.Pt(0, 0), geom.Pt(200, 0), "", "")
	selectIDs(s, arrowID)

	altDown := input.PointerDown{Pointer: ptr(100, 3)}
	altDown.Mod.Alt = true
	r.Dispatch(altDown)
	r.Dispatch(up(100, 3))

	arrow := s.GetState().Doc.Shape(arrowID)
	if n := len(arrow.Arrow.Points); n != 3 {
		t.Fatalf("points = %d, want 3 after insertion", n)
	}
	inserted := arrow.Arrow.Points[1]
	if inserted.X != 100 || inserted.Y != 3 {
		t.Errorf("inserted point = %+v, want (100,3)", inserted)
	}

	// Grab the new point and delete it.
	r.Dispatch(down(100, 3))
	r.Dispatch(input.KeyDown{Key: input.KeyDelete})
	r.Dispatch(up(100, 3))

	arrow = s.GetState().Doc.Shape(arrowID)
	if n := len(arrow.Arrow.Points); n != 2 {
		t.Errorf("points = %d, want 2 after removal", n)
	}
}

func TestDeleteKeyCascades(t *testing.T) {
	s, r, pageID := newEnv(t)
	target := addRect(t, s, pageID, 0, 0, 50, 50)
	arrowID := addBoundArrow(t, s, pageID, geom.Pt(100, 25), geom.Pt(250, 25), target, "")
	selectIDs(s, target)

	r.Dispatch(input.KeyDown{Key: input.KeyBackspace})

	st := s.GetState()
	if st.Doc.Shape(target) != nil {
		t.Error("selected shape should be deleted")
	}
	if len(st.Doc.Bindings) != 0 {
		t.Error("bindings referencing the deleted shape should be removed")
	}
	if st.Doc.Shape(arrowID).Arrow.Start.Bound() {
		t.Error("arrow endpoint should be detached")
	}
	if st.UI.SelectionIDs != nil {
		t.Errorf("selection = %v, want empty", st.UI.SelectionIDs)
	}
	if !s.Undo() {
		t.Fatal("delete should be undoable")
	}
	if s.GetState().Doc.Shape(target) == nil {
		t.Error("undo should restore the shape")
	}
}

func TestEscapeRollsBackDragAndClearsSelection(t *testing.T) {
	s, r, pageID := newEnv(t)
	id := addRect(t, s, pageID, 0, 0, 50, 50)

	r.Dispatch(down(25, 25))
	r.Dispatch(move(125, 125))
	r.Dispatch(input.KeyDown{Key: input.KeyEscape})

	st := s.GetState()
	got := st.Doc.Shape(id)
	if got.X != 0 || got.Y != 0 {
		t.Errorf("shape at (%v,%v) after escape, want (0,0)", got.X, got.Y)
	}
	if st.UI.SelectionIDs != nil {
		t.Error("escape should clear the selection")
	}
	if s.CanUndo() {
		t.Error("a cancelled gesture must not enter the history")
	}
}

func TestResizeClampsToMinimumSize(t *testing.T) {
	s, r, pageID := newEnv(t)
	id := addRect(t, s, pageID, 0, 0, 100, 100)
	selectIDs(s, id)

	r.Dispatch(down(100, 100)) // bottom-right corner handle
	r.Dispatch(move(2, 2))
	r.Dispatch(up(2, 2))

	got := s.GetState().Doc.Shape(id)
	if got.Rect.W != 5 || got.Rect.H != 5 {
		t.Errorf("resized to %vx%v, want the 5x5 minimum", got.Rect.W, got.Rect.H)
	}
}

func TestResizeFromCorner(t *testing.T) {
	s, r, pageID := newEnv(t)
	id := addRect(t, s, pageID, 0, 0, 100, 100)
	selectIDs(s, id)

	r.Dispatch(down(100, 100))
	r.Dispatch(move(150, 80))
	r.Dispatch(up(150, 80))

	got := s.GetState().Doc.Shape(id)
	if got.X != 0 || got.Y != 0 || got.Rect.W != 150 || got.Rect.H != 80 {
		t.Errorf("bounds = (%v,%v,%v,%v), want (0,0,150,80)", got.X, got.Y, got.Rect.W, got.Rect.H)
	}
}

func TestRotateHandle(t *testing.T) {
	s, r, pageID := newEnv(t)
	id := addRect(t, s, pageID, 0, 0, 100, 100)
	selectIDs(s, id)

	// Rotate handle sits above the top edge midpoint; dragging a quarter
	// turn around the pivot.
	r.Dispatch(down(50, -20))
	r.Dispatch(move(120, 50))
	r.Dispatch(up(120, 50))

	got := s.GetState().Doc.Shape(id)
	if math.Abs(got.Rot-math.Pi/2) > 1e-9 {
		t.Errorf("Rot = %v, want π/2", got.Rot)
	}
}

func TestLabelDragAdjustsOffset(t *testing.T) {
	s, r, pageID := newEnv(t)
	arrowID := addBoundArrow(t, s, pageID, geom.Pt(0, 0), geom.Pt(200, 0), "", "")
	s.SetState(func(st *state.EditorState) *state.EditorState {
		next := st.Clone()
		next.Doc.Shape(arrowID).Arrow.Label = &doc.Label{Text: "yes", Align: doc.AlignCenter}
		return next
	})
	selectIDs(s, arrowID)

	r.Dispatch(down(100, 0)) // label handle at the path midpoint
	r.Dispatch(move(50, 0))
	r.Dispatch(up(50, 0))

	label := s.GetState().Doc.Shape(arrowID).Arrow.Label
	if math.Abs(label.Offset+50) > 1e-9 {
		t.Errorf("label offset = %v, want -50", label.Offset)
	}
}

func TestDeleteDuringResizeRollsBackBeforeDeleting(t *testing.T) {
	s, r, pageID := newEnv(t)
	id := addRect(t, s, pageID, 0, 0, 100, 100)
	selectIDs(s, id)

	r.Dispatch(down(100, 100)) // bottom-right corner handle
	r.Dispatch(move(200, 200))
	r.Dispatch(input.KeyDown{Key: input.KeyDelete})

	if s.GetState().Doc.Shape(id) != nil {
		t.Fatal("shape should be deleted")
	}
	if !s.Undo() {
		t.Fatal("undo failed")
	}
	restored := s.GetState().Doc.Shape(id)
	if restored == nil || restored.Rect.W != 100 || restored.Rect.H != 100 {
		t.Fatalf("restored shape = %+v, want the pre-resize 100x100", restored)
	}

	// The gesture ended with the delete: the trailing pointer-up must not
	// commit anything.
	r.Dispatch(up(200, 200))
	if s.CanUndo() {
		t.Error("pointer-up after a mid-gesture delete should not commit a command")
	}
}

func TestMarqueeExposesLiveRect(t *testing.T) {
	sel := NewSelect(DefaultParams())
	st := state.New()
	page := st.Doc.AddPage("Page 1")
	st.UI.CurrentPageID = page.ID

	if _, ok := sel.Marquee(); ok {
		t.Fatal("idle tool should report no marquee")
	}
	st, _ = sel.OnAction(st, down(10, 10))
	st, _ = sel.OnAction(st, move(60, 40))
	got, ok := sel.Marquee()
	if want := geom.NewRect(10, 10, 50, 30); !ok || got != want {
		t.Errorf("marquee = %v ok=%v, want %v", got, ok, want)
	}
	sel.OnAction(st, up(60, 40))
	if _, ok := sel.Marquee(); ok {
		t.Error("marquee should clear on pointer-up")
	}
}

func TestPointerDownWithoutPageIsNoOp(t *testing.T) {
	st := state.New()
	s := store.New(st)
	r := NewRouter(s)
	r.Register(NewSelect(DefaultParams()))
	if err := r.Switch(ToolSelect); err != nil {
		t.Fatal(err)
	}
	before := s.GetState()
	r.Dispatch(down(10, 10))
	if s.GetState() != before {
		t.Error("pointer-down with no current page should not publish a change")
	}
}
