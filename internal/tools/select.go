package tools

import (
	"math"

	"github.com/drawkit/drawkit/internal/command"
	"github.com/drawkit/drawkit/internal/doc"
	"github.com/drawkit/drawkit/internal/geom"
	"github.com/drawkit/drawkit/internal/input"
	"github.com/drawkit/drawkit/internal/state"
)

// gesture is the phase of the Select tool's state machine. Each phase has
// its own payload struct so invalid combinations cannot be represented.
type gesture uint8

const (
	gestureIdle gesture = iota
	gestureDragging
	gestureMarquee
	gestureHandle
)

// dragState snapshots every selected shape at drag start. Moves are
// recomputed from the snapshots and the cumulative pointer delta, never
// incrementally, so there is no drift.
type dragState struct {
	origin    geom.Point
	snapshots map[string]*doc.Shape
	moved     bool
}

type marqueeState struct {
	origin geom.Point
	corner geom.Point
}

// handleState snapshots the shape and its bounds at handle grab time. The
// pivot and start angle are captured for rotation only.
type handleState struct {
	handle     ShapeHandle
	shapeID    string
	snapshot   *doc.Shape
	bounds     geom.Rect
	pivot      geom.Point
	startAngle float64
	moved      bool
}

// Select is the selection and manipulation tool: click and marquee
// selection, dragging, handle-based resize/rotate/point/label editing, and
// arrow endpoint rebinding.
type Select struct {
	params  Params
	phase   gesture
	drag    *dragState
	marquee *marqueeState
	handle  *handleState
}

// NewSelect creates the select tool.
func NewSelect(p Params) *Select {
	return &Select{params: p}
}

// ID implements Tool.
func (t *Select) ID() string { return ToolSelect }

// OnEnter implements Tool.
func (t *Select) OnEnter(st *state.EditorState) *state.EditorState { return st }

// OnExit rolls back any in-progress gesture.
func (t *Select) OnExit(st *state.EditorState) *state.EditorState {
	next := t.rollback(st)
	t.clearGesture()
	if next.UI.BindingPreview != nil {
		if next == st {
			next = st.Clone()
		}
		next.UI.BindingPreview = nil
	}
	return next
}

// Marquee returns the live marquee rectangle while one is being dragged.
func (t *Select) Marquee() (geom.Rect, bool) {
	if t.phase != gestureMarquee {
		return geom.Rect{}, false
	}
	return geom.RectFromPoints(t.marquee.origin, t.marquee.corner), true
}

// OnAction implements Tool.
func (t *Select) OnAction(st *state.EditorState, act input.Action) (*state.EditorState, command.Command) {
	switch a := act.(type) {
	case input.PointerDown:
		return t.pointerDown(st, a.Pointer)
	case input.PointerMove:
		return t.pointerMove(st, a.Pointer)
	case input.PointerUp:
		return t.pointerUp(st, a.Pointer)
	case input.KeyDown:
		return t.keyDown(st, a)
	default:
		return st, nil
	}
}

// pointerDown resolves, in order: alt-click point insertion on the sole
// selected arrow, handle grab on the sole selected shape, topmost shape
// hit (select and start dragging), and finally marquee from empty space.
func (t *Select) pointerDown(st *state.EditorState, p input.Pointer) (*state.EditorState, command.Command) {
	page := st.CurrentPage()
	if page == nil || t.phase != gestureIdle {
		return st, nil
	}
	world := p.World

	if p.Mod.Alt && len(st.UI.SelectionIDs) == 1 {
		if s := st.Doc.Shape(st.UI.SelectionIDs[0]); s != nil && s.Kind == doc.KindArrow {
			if cmd := t.insertArrowPoint(st, s, world); cmd != nil {
				return st, cmd
			}
		}
	}

	if len(st.UI.SelectionIDs) == 1 {
		if s := st.Doc.Shape(st.UI.SelectionIDs[0]); s != nil {
			if h, ok := hitHandle(shapeHandles(st.Doc, s, t.params), world, t.params.HandleRadius); ok {
				hs := &handleState{
					handle:   h,
					shapeID:  s.ID,
					snapshot: s.Clone(),
					bounds:   s.Bounds(),
				}
				if h.Kind == HandleRotate {
					hs.pivot = hs.bounds.Center()
					hs.startAngle = world.Sub(hs.pivot).Angle()
				}
				t.phase, t.handle = gestureHandle, hs
				return st, nil
			}
		}
	}

	if id := st.Doc.HitTestPoint(page.ID, world, t.params.HitTolerance); id != "" {
		next := st.Clone()
		if p.Mod.Shift {
			next.UI.SelectionIDs = toggleID(next.UI.SelectionIDs, id)
		} else if !st.Selected(id) {
			next.UI.SelectionIDs = []string{id}
		}
		snaps := make(map[string]*doc.Shape)
		for _, s := range next.SelectedShapes() {
			snaps[s.ID] = s.Clone()
		}
		t.phase = gestureDragging
		t.drag = &dragState{origin: world, snapshots: snaps}
		return next, nil
	}

	next := st
	if !p.Mod.Shift && st.UI.SelectionIDs != nil {
		next = st.Clone()
		next.UI.SelectionIDs = nil
	}
	t.phase = gestureMarquee
	t.marquee = &marqueeState{origin: world, corner: world}
	return next, nil
}

func (t *Select) pointerMove(st *state.EditorState, p input.Pointer) (*state.EditorState, command.Command) {
	world := p.World
	switch t.phase {
	case gestureDragging:
		delta := world.Sub(t.drag.origin)
		if delta.X == 0 && delta.Y == 0 {
			return st, nil
		}
		t.drag.moved = true
		next := st.Clone()
		for id, snap := range t.drag.snapshots {
			if next.Doc.Shape(id) == nil {
				continue
			}
			moved := snap.Clone()
			moved.X = clampCoord(snap.X+delta.X, t.params.MaxCoordinate)
			moved.Y = clampCoord(snap.Y+delta.Y, t.params.MaxCoordinate)
			next.Doc.Shapes[id] = moved
		}
		return next, nil
	case gestureMarquee:
		t.marquee.corner = world
		return st, nil
	case gestureHandle:
		return t.moveHandle(st, world), nil
	default:
		return st, nil
	}
}

func (t *Select) pointerUp(st *state.EditorState, p input.Pointer) (*state.EditorState, command.Command) {
	switch t.phase {
	case gestureMarquee:
		rect := geom.RectFromPoints(t.marquee.origin, t.marquee.corner)
		next := st.Clone()
		next.UI.SelectionIDs = nil
		if page := next.CurrentPage(); page != nil {
			var sel []string
			for _, id := range page.ShapeIDs {
				if s := next.Doc.Shape(id); s != nil && s.Bounds().Intersects(rect) {
					sel = append(sel, id)
				}
			}
			next.UI.SelectionIDs = sel
		}
		t.clearGesture()
		return next, nil
	case gestureDragging:
		drag := t.drag
		t.clearGesture()
		if !drag.moved {
			return st, nil
		}
		return st, t.commitDrag(st, drag)
	case gestureHandle:
		hs := t.handle
		t.clearGesture()
		return t.commitHandle(st, hs, p.World)
	default:
		t.clearGesture()
		return st, nil
	}
}

func (t *Select) keyDown(st *state.EditorState, k input.KeyDown) (*state.EditorState, command.Command) {
	switch k.Key {
	case input.KeyEscape:
		next := t.rollback(st)
		t.clearGesture()
		if next == st {
			if st.UI.SelectionIDs == nil && st.UI.BindingPreview == nil {
				return st, nil
			}
			next = st.Clone()
		}
		next.UI.SelectionIDs = nil
		next.UI.BindingPreview = nil
		return next, nil
	case input.KeyDelete, input.KeyBackspace:
		if t.phase == gestureHandle {
			if cmd := t.removeArrowPoint(); cmd != nil {
				t.clearGesture()
				return st, cmd
			}
		}
		// A delete mid-gesture rolls the ephemeral edits back first so the
		// command captures the pre-gesture shapes, then ends the gesture.
		next := t.rollback(st)
		t.clearGesture()
		cmd := command.NewDeleteShapes(next, next.UI.SelectionIDs)
		if cmd.Empty() {
			return next, nil
		}
		return next, cmd
	default:
		return st, nil
	}
}

// insertArrowPoint inserts an intermediate point where the click lands on
// the arrow's polyline, within the segment tolerance. Returns nil on miss.
func (t *Select) insertArrowPoint(st *state.EditorState, s *doc.Shape, world geom.Point) command.Command {
	path := literalArrowPath(st.Doc, s)
	if path == nil {
		return nil
	}
	idx, dist := geom.NearestSegment(world, path)
	if idx < 0 || dist > t.params.SegmentTolerance {
		return nil
	}
	after := s.Clone()
	local := worldToLocal(s, world)
	pts := after.Arrow.Points
	after.Arrow.Points = append(pts[:idx+1:idx+1], append([]geom.Point{local}, pts[idx+1:]...)...)
	return command.NewUpdateShape(s, after)
}

// removeArrowPoint removes the grabbed intermediate arrow point. Endpoints
// are never removed, and a 2-point arrow keeps both its points.
func (t *Select) removeArrowPoint() command.Command {
	hs := t.handle
	snap := hs.snapshot
	if hs.handle.Kind != HandlePoint || snap.Kind != doc.KindArrow {
		return nil
	}
	idx := hs.handle.Index
	if idx <= 0 || idx >= len(snap.Arrow.Points)-1 || len(snap.Arrow.Points) <= 2 {
		return nil
	}
	after := snap.Clone()
	after.Arrow.Points = append(after.Arrow.Points[:idx], after.Arrow.Points[idx+1:]...)
	return command.NewUpdateShape(snap, after)
}

// moveHandle recomputes the manipulated shape from its grab-time snapshot
// given the current pointer. The document is updated ephemerally; nothing
// is committed until pointer-up.
func (t *Select) moveHandle(st *state.EditorState, world geom.Point) *state.EditorState {
	hs := t.handle
	if st.Doc.Shape(hs.shapeID) == nil {
		return st
	}
	hs.moved = true
	next := st.Clone()
	updated := hs.snapshot.Clone()

	switch hs.handle.Kind {
	case HandleResize:
		resized := resizeBounds(hs.bounds, hs.handle.Index, world, t.params)
		applyBounds(updated, hs.bounds, resized)
	case HandleRotate:
		angle := world.Sub(hs.pivot).Angle()
		updated.Rot = hs.snapshot.Rot + angle - hs.startAngle
	case HandlePoint:
		t.movePoint(next, updated, world)
	case HandleLabel:
		moveLabel(st.Doc, updated, world)
	}

	next.Doc.Shapes[updated.ID] = updated
	return next
}

// movePoint moves one line/arrow point to the pointer. Dragging an arrow
// endpoint frees it ephemerally so it tracks the pointer, and stages a
// speculative rebinding target in ui.BindingPreview without committing.
func (t *Select) movePoint(next *state.EditorState, updated *doc.Shape, world geom.Point) {
	clamped := geom.Pt(
		clampCoord(world.X, t.params.MaxCoordinate),
		clampCoord(world.Y, t.params.MaxCoordinate),
	)
	idx := t.handle.handle.Index
	switch updated.Kind {
	case doc.KindLine:
		if updated.Line == nil {
			return
		}
		local := worldToLocal(updated, clamped)
		if idx == 0 {
			updated.Line.A = local
		} else {
			updated.Line.B = local
		}
	case doc.KindArrow:
		if updated.Arrow == nil || idx < 0 || idx >= len(updated.Arrow.Points) {
			return
		}
		updated.Arrow.Points[idx] = worldToLocal(updated, clamped)
		last := len(updated.Arrow.Points) - 1
		if idx != 0 && idx != last {
			return
		}
		h := doc.HandleStart
		if idx == last {
			h = doc.HandleEnd
		}
		if idx == 0 {
			updated.Arrow.Start = doc.Endpoint{}
		} else {
			updated.Arrow.End = doc.Endpoint{}
		}
		next.UI.BindingPreview = nil
		target := next.Doc.HitTestPointExcluding(updated.PageID, clamped, t.params.HitTolerance, updated.ID)
		if target == "" {
			return
		}
		ts := next.Doc.Shape(target)
		next.UI.BindingPreview = &state.BindingPreview{
			ArrowID:   updated.ID,
			Handle:    h,
			ToShapeID: target,
			Anchor:    doc.NormalizedAnchor(clamped, ts),
		}
	}
}

// moveLabel slides the arrow label along the live path: the pointer is
// projected onto the polyline and the label's signed offset is rederived
// from its alignment base.
func moveLabel(d *doc.Document, updated *doc.Shape, world geom.Point) {
	if updated.Arrow == nil || updated.Arrow.Label == nil {
		return
	}
	path := d.ArrowPath(updated.ID)
	if path == nil {
		return
	}
	total := geom.PolylineLength(path)
	var base float64
	switch updated.Arrow.Label.Align {
	case doc.AlignStart:
		base = 0
	case doc.AlignEnd:
		base = total
	default:
		base = total / 2
	}
	updated.Arrow.Label.Offset = distanceAlongPath(path, world) - base
}

// commitDrag turns the ephemeral translation into one undo unit. Moving an
// entire bound arrow drops all of its bindings and resets both endpoints
// to free; bindings survive only explicit endpoint-handle drags.
func (t *Select) commitDrag(st *state.EditorState, drag *dragState) command.Command {
	var cmds []command.Command
	var dropped []*doc.Binding
	for id, snap := range drag.snapshots {
		cur := st.Doc.Shape(id)
		if cur == nil {
			continue
		}
		after := cur.Clone()
		if after.Kind == doc.KindArrow && after.Arrow != nil {
			for _, h := range []doc.Handle{doc.HandleStart, doc.HandleEnd} {
				if b := st.Doc.ArrowBinding(id, h); b != nil {
					dropped = append(dropped, b)
				}
			}
			after.Arrow.Start = doc.Endpoint{}
			after.Arrow.End = doc.Endpoint{}
		}
		cmds = append(cmds, command.NewUpdateShape(snap, after))
	}
	if len(cmds) == 0 {
		return nil
	}
	if len(dropped) > 0 {
		cmds = append(cmds, command.NewDeleteBindings(dropped...))
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return command.NewCompound("move-shapes", cmds...)
}

// commitHandle finalizes a handle drag. Arrow endpoint drops resolve their
// binding here: a hit over another shape creates or replaces an edge
// binding, a miss deletes any existing one. The staged binding preview is
// cleared unconditionally.
func (t *Select) commitHandle(st *state.EditorState, hs *handleState, world geom.Point) (*state.EditorState, command.Command) {
	next := st
	if st.UI.BindingPreview != nil {
		next = st.Clone()
		next.UI.BindingPreview = nil
	}
	if !hs.moved {
		return next, nil
	}
	cur := st.Doc.Shape(hs.shapeID)
	if cur == nil {
		return next, nil
	}
	after := cur.Clone()

	if hs.handle.Kind == HandlePoint && after.Kind == doc.KindArrow && after.Arrow != nil {
		last := len(after.Arrow.Points) - 1
		if hs.handle.Index == 0 || hs.handle.Index == last {
			h := doc.HandleStart
			if hs.handle.Index == last {
				h = doc.HandleEnd
			}
			return next, t.resolveEndpointDrop(st, hs, after, h, world)
		}
	}

	return next, command.NewUpdateShape(hs.snapshot, after)
}

func (t *Select) resolveEndpointDrop(st *state.EditorState, hs *handleState, after *doc.Shape, h doc.Handle, world geom.Point) command.Command {
	existing := bindingForHandle(st.Doc, hs.snapshot, h)
	target := st.Doc.HitTestPointExcluding(after.PageID, world, t.params.HitTolerance, after.ID)
	if target == "" {
		if existing != nil {
			return command.NewCompound("unbind-arrow-endpoint",
				command.NewUpdateShape(hs.snapshot, after),
				command.NewDeleteBindings(existing),
			)
		}
		return command.NewUpdateShape(hs.snapshot, after)
	}

	ts := st.Doc.Shape(target)
	id := doc.NewID()
	if existing != nil {
		id = existing.ID
	}
	binding := &doc.Binding{
		ID:          id,
		FromShapeID: after.ID,
		Handle:      h,
		ToShapeID:   target,
		Anchor:      doc.NormalizedAnchor(world, ts),
	}
	if h == doc.HandleStart {
		after.Arrow.Start = doc.Endpoint{BindingID: id}
	} else {
		after.Arrow.End = doc.Endpoint{BindingID: id}
	}
	return command.NewCompound("bind-arrow-endpoint",
		command.NewUpdateShape(hs.snapshot, after),
		command.NewPutBinding(existing, binding),
	)
}

// rollback restores every shape touched by the active gesture to its
// snapshot. Idle and marquee phases touch nothing.
func (t *Select) rollback(st *state.EditorState) *state.EditorState {
	switch t.phase {
	case gestureDragging:
		if !t.drag.moved {
			return st
		}
		next := st.Clone()
		for id, snap := range t.drag.snapshots {
			if next.Doc.Shape(id) != nil {
				next.Doc.Shapes[id] = snap.Clone()
			}
		}
		return next
	case gestureHandle:
		if !t.handle.moved {
			return st
		}
		next := st.Clone()
		if next.Doc.Shape(t.handle.shapeID) != nil {
			next.Doc.Shapes[t.handle.shapeID] = t.handle.snapshot.Clone()
		}
		next.UI.BindingPreview = nil
		return next
	default:
		return st
	}
}

func (t *Select) clearGesture() {
	t.phase = gestureIdle
	t.drag = nil
	t.marquee = nil
	t.handle = nil
}

// literalArrowPath is the arrow's world polyline with resolved endpoints
// and every interior point at its literal position, one entry per stored
// point regardless of routing mode.
func literalArrowPath(d *doc.Document, s *doc.Shape) []geom.Point {
	start, end, ok := d.ResolveArrowEndpoints(s.ID)
	if !ok {
		return nil
	}
	out := make([]geom.Point, len(s.Arrow.Points))
	out[0] = start
	out[len(out)-1] = end
	for i := 1; i < len(s.Arrow.Points)-1; i++ {
		out[i] = localToWorld(s, s.Arrow.Points[i])
	}
	return out
}

func bindingForHandle(d *doc.Document, arrow *doc.Shape, h doc.Handle) *doc.Binding {
	if arrow.Arrow == nil {
		return nil
	}
	ep := arrow.Arrow.Start
	if h == doc.HandleEnd {
		ep = arrow.Arrow.End
	}
	if !ep.Bound() {
		return nil
	}
	return d.Binding(ep.BindingID)
}

func toggleID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(append([]string(nil), ids[:i]...), ids[i+1:]...)
		}
	}
	return append(append([]string(nil), ids...), id)
}

func distanceAlongPath(path []geom.Point, p geom.Point) float64 {
	idx, _ := geom.NearestSegment(p, path)
	if idx < 0 {
		return 0
	}
	var d float64
	for i := 0; i < idx; i++ {
		d += path[i].Distance(path[i+1])
	}
	cp, _ := geom.ClosestPointOnSegment(p, path[idx], path[idx+1])
	return d + path[idx].Distance(cp)
}

// resizeBounds moves the grabbed corner or edge of the snapshot bounds to
// the pointer, clamping the opposite edge to the minimum size and every
// coordinate to the world limit.
func resizeBounds(b geom.Rect, index int, pt geom.Point, p Params) geom.Rect {
	min, max := b.Min(), b.Max()
	x := clampCoord(pt.X, p.MaxCoordinate)
	y := clampCoord(pt.Y, p.MaxCoordinate)

	switch index {
	case ResizeTopLeft, ResizeBottomLeft, ResizeLeft:
		min.X = math.Min(x, max.X-p.MinShapeSize)
	case ResizeTopRight, ResizeBottomRight, ResizeRight:
		max.X = math.Max(x, min.X+p.MinShapeSize)
	}
	switch index {
	case ResizeTopLeft, ResizeTopRight, ResizeTop:
		min.Y = math.Min(y, max.Y-p.MinShapeSize)
	case ResizeBottomLeft, ResizeBottomRight, ResizeBottom:
		max.Y = math.Max(y, min.Y+p.MinShapeSize)
	}
	return geom.RectFromPoints(min, max)
}

// applyBounds writes resized bounds back into the shape's position and
// extents. Strokes scale their points proportionally.
func applyBounds(s *doc.Shape, old, resized geom.Rect) {
	switch s.Kind {
	case doc.KindRect:
		if s.Rect == nil {
			return
		}
		s.X, s.Y = resized.X, resized.Y
		s.Rect.W, s.Rect.H = resized.W, resized.H
	case doc.KindEllipse:
		if s.Ellipse == nil {
			return
		}
		s.X, s.Y = resized.X, resized.Y
		s.Ellipse.RX, s.Ellipse.RY = resized.W/2, resized.H/2
	case doc.KindText:
		if s.Text == nil {
			return
		}
		s.X, s.Y = resized.X, resized.Y
		s.Text.W, s.Text.H = resized.W, resized.H
	case doc.KindMarkdown:
		if s.Markdown == nil {
			return
		}
		s.X, s.Y = resized.X, resized.Y
		s.Markdown.W, s.Markdown.H = resized.W, resized.H
	case doc.KindStroke:
		if s.Stroke == nil {
			return
		}
		sx, sy := 1.0, 1.0
		if old.W != 0 {
			sx = resized.W / old.W
		}
		if old.H != 0 {
			sy = resized.H / old.H
		}
		rel := s.Pos().Sub(old.Min())
		s.X = resized.X + rel.X*sx
		s.Y = resized.Y + rel.Y*sy
		for i, pt := range s.Stroke.Points {
			s.Stroke.Points[i] = geom.Pt(pt.X*sx, pt.Y*sy)
		}
	}
}
