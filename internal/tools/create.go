package tools

import (
	"math"

	"github.com/drawkit/drawkit/internal/command"
	"github.com/drawkit/drawkit/internal/doc"
	"github.com/drawkit/drawkit/internal/geom"
	"github.com/drawkit/drawkit/internal/input"
	"github.com/drawkit/drawkit/internal/state"
)

// Default extents for click-placed shapes.
const (
	defaultTextWidth      = 160
	defaultTextHeight     = 40
	defaultMarkdownWidth  = 240
	defaultMarkdownHeight = 160
	defaultStrokeSize     = 4
)

// draft tracks an uncommitted shape created on pointer-down.
type draft struct {
	id     string
	origin geom.Point
}

// removeDraft strips an uncommitted draft from the document.
func removeDraft(st *state.EditorState, d *draft) *state.EditorState {
	if d == nil || st.Doc.Shape(d.id) == nil {
		return st
	}
	next := st.Clone()
	next.Doc.DeleteShapes(d.id)
	return next
}

// BoxTool drag-creates rect and ellipse shapes. The draft lives in the
// document ephemerally from pointer-down; pointer-up commits it when its
// diagonal reaches the minimum size and discards it otherwise.
type BoxTool struct {
	id     string
	kind   doc.Kind
	style  doc.Style
	params Params
	draft  *draft
}

// NewRectTool creates the rectangle tool.
func NewRectTool(p Params, style doc.Style) *BoxTool {
	return &BoxTool{id: ToolRect, kind: doc.KindRect, style: style, params: p}
}

// NewEllipseTool creates the ellipse tool.
func NewEllipseTool(p Params, style doc.Style) *BoxTool {
	return &BoxTool{id: ToolEllipse, kind: doc.KindEllipse, style: style, params: p}
}

// ID implements Tool.
func (t *BoxTool) ID() string { return t.id }

// OnEnter implements Tool.
func (t *BoxTool) OnEnter(st *state.EditorState) *state.EditorState { return st }

// OnExit discards any uncommitted draft.
func (t *BoxTool) OnExit(st *state.EditorState) *state.EditorState {
	next := removeDraft(st, t.draft)
	t.draft = nil
	return next
}

// OnAction implements Tool.
func (t *BoxTool) OnAction(st *state.EditorState, act input.Action) (*state.EditorState, command.Command) {
	switch a := act.(type) {
	case input.PointerDown:
		page := st.CurrentPage()
		if page == nil || t.draft != nil {
			return st, nil
		}
		world := a.World
		var s *doc.Shape
		if t.kind == doc.KindEllipse {
			s = doc.NewEllipseShape(page.ID, world.X, world.Y, 0, 0, t.style)
		} else {
			s = doc.NewRectShape(page.ID, world.X, world.Y, 0, 0, t.style)
		}
		next := st.Clone()
		next.Doc.AddShape(s)
		t.draft = &draft{id: s.ID, origin: world}
		return next, nil
	case input.PointerMove:
		if t.draft == nil {
			return st, nil
		}
		cur := st.Doc.Shape(t.draft.id)
		if cur == nil {
			t.draft = nil
			return st, nil
		}
		box := geom.RectFromPoints(t.draft.origin, clampPoint(a.World, t.params.MaxCoordinate))
		next := st.Clone()
		updated := cur.Clone()
		applyBounds(updated, updated.Bounds(), box)
		next.Doc.Shapes[updated.ID] = updated
		return next, nil
	case input.PointerUp:
		if t.draft == nil {
			return st, nil
		}
		d := t.draft
		t.draft = nil
		cur := st.Doc.Shape(d.id)
		if cur == nil {
			return st, nil
		}
		b := cur.Bounds()
		if math.Hypot(b.W, b.H) < t.params.MinShapeSize {
			return removeDraft(st, d), nil
		}
		return st, command.NewCreateShape(cur)
	default:
		return st, nil
	}
}

// LineTool drag-creates straight line shapes.
type LineTool struct {
	style  doc.Style
	params Params
	draft  *draft
}

// NewLineTool creates the line tool.
func NewLineTool(p Params, style doc.Style) *LineTool {
	return &LineTool{style: style, params: p}
}

// ID implements Tool.
func (t *LineTool) ID() string { return ToolLine }

// OnEnter implements Tool.
func (t *LineTool) OnEnter(st *state.EditorState) *state.EditorState { return st }

// OnExit discards any uncommitted draft.
func (t *LineTool) OnExit(st *state.EditorState) *state.EditorState {
	next := removeDraft(st, t.draft)
	t.draft = nil
	return next
}

// OnAction implements Tool.
func (t *LineTool) OnAction(st *state.EditorState, act input.Action) (*state.EditorState, command.Command) {
	switch a := act.(type) {
	case input.PointerDown:
		page := st.CurrentPage()
		if page == nil || t.draft != nil {
			return st, nil
		}
		s := doc.NewLineShape(page.ID, a.World, a.World, t.style)
		next := st.Clone()
		next.Doc.AddShape(s)
		t.draft = &draft{id: s.ID, origin: a.World}
		return next, nil
	case input.PointerMove:
		if t.draft == nil {
			return st, nil
		}
		cur := st.Doc.Shape(t.draft.id)
		if cur == nil || cur.Line == nil {
			t.draft = nil
			return st, nil
		}
		next := st.Clone()
		updated := cur.Clone()
		updated.Line.B = worldToLocal(updated, clampPoint(a.World, t.params.MaxCoordinate))
		next.Doc.Shapes[updated.ID] = updated
		return next, nil
	case input.PointerUp:
		if t.draft == nil {
			return st, nil
		}
		d := t.draft
		t.draft = nil
		cur := st.Doc.Shape(d.id)
		if cur == nil || cur.Line == nil {
			return st, nil
		}
		if cur.Line.A.Distance(cur.Line.B) < t.params.MinShapeSize {
			return removeDraft(st, d), nil
		}
		return st, command.NewCreateShape(cur)
	default:
		return st, nil
	}
}

// ArrowTool drag-creates two-point arrows and binds endpoints to the
// shapes they are dropped over.
type ArrowTool struct {
	style  doc.Style
	params Params
	draft  *draft
}

// NewArrowTool creates the arrow tool.
func NewArrowTool(p Params, style doc.Style) *ArrowTool {
	return &ArrowTool{style: style, params: p}
}

// ID implements Tool.
func (t *ArrowTool) ID() string { return ToolArrow }

// OnEnter implements Tool.
func (t *ArrowTool) OnEnter(st *state.EditorState) *state.EditorState { return st }

// OnExit discards any uncommitted draft.
func (t *ArrowTool) OnExit(st *state.EditorState) *state.EditorState {
	next := removeDraft(st, t.draft)
	t.draft = nil
	return next
}

// OnAction implements Tool.
func (t *ArrowTool) OnAction(st *state.EditorState, act input.Action) (*state.EditorState, command.Command) {
	switch a := act.(type) {
	case input.PointerDown:
		page := st.CurrentPage()
		if page == nil || t.draft != nil {
			return st, nil
		}
		s := doc.NewArrowShape(page.ID, a.World, a.World, t.style)
		next := st.Clone()
		next.Doc.AddShape(s)
		t.draft = &draft{id: s.ID, origin: a.World}
		return next, nil
	case input.PointerMove:
		if t.draft == nil {
			return st, nil
		}
		cur := st.Doc.Shape(t.draft.id)
		if cur == nil || cur.Arrow == nil {
			t.draft = nil
			return st, nil
		}
		next := st.Clone()
		updated := cur.Clone()
		last := len(updated.Arrow.Points) - 1
		updated.Arrow.Points[last] = worldToLocal(updated, clampPoint(a.World, t.params.MaxCoordinate))
		next.Doc.Shapes[updated.ID] = updated
		return next, nil
	case input.PointerUp:
		if t.draft == nil {
			return st, nil
		}
		d := t.draft
		t.draft = nil
		cur := st.Doc.Shape(d.id)
		if cur == nil || cur.Arrow == nil || len(cur.Arrow.Points) < 2 {
			return st, nil
		}
		end := localToWorld(cur, cur.Arrow.Points[len(cur.Arrow.Points)-1])
		if d.origin.Distance(end) < t.params.MinShapeSize {
			return removeDraft(st, d), nil
		}
		return st, t.commit(st, cur, d.origin, end)
	default:
		return st, nil
	}
}

// commit creates the arrow and binds each endpoint dropped over another
// shape with an edge anchor.
func (t *ArrowTool) commit(st *state.EditorState, arrow *doc.Shape, start, end geom.Point) command.Command {
	final := arrow.Clone()
	var bindings []command.Command

	bind := func(h doc.Handle, world geom.Point) {
		target := st.Doc.HitTestPointExcluding(final.PageID, world, t.params.HitTolerance, final.ID)
		if target == "" {
			return
		}
		ts := st.Doc.Shape(target)
		b := &doc.Binding{
			ID:          doc.NewID(),
			FromShapeID: final.ID,
			Handle:      h,
			ToShapeID:   target,
			Anchor:      doc.NormalizedAnchor(world, ts),
		}
		if h == doc.HandleStart {
			final.Arrow.Start = doc.Endpoint{BindingID: b.ID}
		} else {
			final.Arrow.End = doc.Endpoint{BindingID: b.ID}
		}
		bindings = append(bindings, command.NewPutBinding(nil, b))
	}
	bind(doc.HandleStart, start)
	bind(doc.HandleEnd, end)

	create := command.NewCreateShape(final)
	if len(bindings) == 0 {
		return create
	}
	return command.NewCompound("create-arrow", append([]command.Command{create}, bindings...)...)
}

// PlaceTool click-places fixed-size text and markdown boxes. There is no
// draft phase: the shape is committed on pointer-down.
type PlaceTool struct {
	id     string
	kind   doc.Kind
	style  doc.Style
	params Params
}

// NewTextTool creates the text tool.
func NewTextTool(p Params, style doc.Style) *PlaceTool {
	return &PlaceTool{id: ToolText, kind: doc.KindText, style: style, params: p}
}

// NewMarkdownTool creates the markdown note tool.
func NewMarkdownTool(p Params, style doc.Style) *PlaceTool {
	return &PlaceTool{id: ToolMarkdown, kind: doc.KindMarkdown, style: style, params: p}
}

// ID implements Tool.
func (t *PlaceTool) ID() string { return t.id }

// OnEnter implements Tool.
func (t *PlaceTool) OnEnter(st *state.EditorState) *state.EditorState { return st }

// OnExit implements Tool.
func (t *PlaceTool) OnExit(st *state.EditorState) *state.EditorState { return st }

// OnAction implements Tool.
func (t *PlaceTool) OnAction(st *state.EditorState, act input.Action) (*state.EditorState, command.Command) {
	a, ok := act.(input.PointerDown)
	if !ok {
		return st, nil
	}
	page := st.CurrentPage()
	if page == nil {
		return st, nil
	}
	world := clampPoint(a.World, t.params.MaxCoordinate)
	var s *doc.Shape
	if t.kind == doc.KindMarkdown {
		s = doc.NewMarkdownShape(page.ID, world.X, world.Y, defaultMarkdownWidth, defaultMarkdownHeight, "", t.style)
	} else {
		s = doc.NewTextShape(page.ID, world.X, world.Y, defaultTextWidth, defaultTextHeight, "", t.style)
	}
	return st, command.NewCreateShape(s)
}

// PenTool accumulates freehand stroke points. Unlike the snapshot-based
// gestures, a stroke grows incrementally by construction.
type PenTool struct {
	style  doc.Style
	params Params
	draft  *draft
}

// NewPenTool creates the pen tool.
func NewPenTool(p Params, style doc.Style) *PenTool {
	return &PenTool{style: style, params: p}
}

// ID implements Tool.
func (t *PenTool) ID() string { return ToolPen }

// OnEnter implements Tool.
func (t *PenTool) OnEnter(st *state.EditorState) *state.EditorState { return st }

// OnExit discards any uncommitted draft.
func (t *PenTool) OnExit(st *state.EditorState) *state.EditorState {
	next := removeDraft(st, t.draft)
	t.draft = nil
	return next
}

// OnAction implements Tool.
func (t *PenTool) OnAction(st *state.EditorState, act input.Action) (*state.EditorState, command.Command) {
	switch a := act.(type) {
	case input.PointerDown:
		page := st.CurrentPage()
		if page == nil || t.draft != nil {
			return st, nil
		}
		s := doc.NewStrokeShape(page.ID, a.World, defaultStrokeSize, t.style)
		next := st.Clone()
		next.Doc.AddShape(s)
		t.draft = &draft{id: s.ID, origin: a.World}
		return next, nil
	case input.PointerMove:
		if t.draft == nil {
			return st, nil
		}
		cur := st.Doc.Shape(t.draft.id)
		if cur == nil || cur.Stroke == nil {
			t.draft = nil
			return st, nil
		}
		next := st.Clone()
		updated := cur.Clone()
		local := worldToLocal(updated, clampPoint(a.World, t.params.MaxCoordinate))
		updated.Stroke.Points = append(updated.Stroke.Points, local)
		next.Doc.Shapes[updated.ID] = updated
		return next, nil
	case input.PointerUp:
		if t.draft == nil {
			return st, nil
		}
		d := t.draft
		t.draft = nil
		cur := st.Doc.Shape(d.id)
		if cur == nil || cur.Stroke == nil {
			return st, nil
		}
		if len(cur.Stroke.Points) < 2 || geom.PolylineLength(cur.Stroke.Points) < t.params.MinShapeSize {
			return removeDraft(st, d), nil
		}
		return st, command.NewCreateShape(cur)
	default:
		return st, nil
	}
}

func clampPoint(p geom.Point, limit float64) geom.Point {
	return geom.Pt(clampCoord(p.X, limit), clampCoord(p.Y, limit))
}
