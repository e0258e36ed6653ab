package command

import (
	"github.com/drawkit/drawkit/internal/doc"
	"github.com/drawkit/drawkit/internal/state"
)

// CreateShape adds one shape to the document and lists it on its page.
type CreateShape struct {
	shape *doc.Shape
}

// NewCreateShape captures the shape by value.
func NewCreateShape(s *doc.Shape) *CreateShape {
	return &CreateShape{shape: s.Clone()}
}

// Name implements Command.
func (c *CreateShape) Name() string { return "create-shape" }

// Kind implements Command.
func (c *CreateShape) Kind() Kind { return KindDoc }

// Do adds the captured shape. Re-applying over an existing draft with the
// same id overwrites it without duplicating the page listing.
func (c *CreateShape) Do(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	next.Doc.AddShape(c.shape.Clone())
	return next
}

// Undo removes the shape again.
func (c *CreateShape) Undo(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	next.Doc.DeleteShapes(c.shape.ID)
	return next
}

// UpdateShape replaces one shape with a new version of itself.
type UpdateShape struct {
	before *doc.Shape
	after  *doc.Shape
}

// NewUpdateShape captures both versions by value.
func NewUpdateShape(before, after *doc.Shape) *UpdateShape {
	return &UpdateShape{before: before.Clone(), after: after.Clone()}
}

// Name implements Command.
func (c *UpdateShape) Name() string { return "update-shape" }

// Kind implements Command.
func (c *UpdateShape) Kind() Kind { return KindDoc }

// Do installs the after version.
func (c *UpdateShape) Do(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	next.Doc.Shapes[c.after.ID] = c.after.Clone()
	return next
}

// Undo restores the before version.
func (c *UpdateShape) Undo(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	next.Doc.Shapes[c.before.ID] = c.before.Clone()
	return next
}

// DeleteShapes removes shapes with full cascade: page listings, bindings
// referencing a deleted shape on either side, and the endpoint state of
// surviving arrows detached by the cascade. All restoration payloads are
// captured at construction.
type DeleteShapes struct {
	ids             []string
	shapes          []*doc.Shape
	bindings        []*doc.Binding
	detachedArrows  []*doc.Shape
	pagesBefore     map[string][]string
	selectionBefore []string
	selectionAfter  []string
}

// NewDeleteShapes captures everything the cascade will remove or modify.
// Unknown ids are ignored.
func NewDeleteShapes(st *state.EditorState, ids []string) *DeleteShapes {
	c := &DeleteShapes{pagesBefore: make(map[string][]string)}
	deleted := make(map[string]bool, len(ids))
	for _, id := range ids {
		s := st.Doc.Shape(id)
		if s == nil || deleted[id] {
			continue
		}
		deleted[id] = true
		c.ids = append(c.ids, id)
		c.shapes = append(c.shapes, s.Clone())
	}

	removedBindings := make(map[string]bool)
	for _, id := range c.ids {
		for _, b := range st.Doc.BindingsFor(id) {
			if removedBindings[b.ID] {
				continue
			}
			removedBindings[b.ID] = true
			c.bindings = append(c.bindings, b.Clone())
			if !deleted[b.FromShapeID] {
				if arrow := st.Doc.Shape(b.FromShapeID); arrow != nil {
					c.detachedArrows = append(c.detachedArrows, arrow.Clone())
				}
			}
		}
	}

	for pid, p := range st.Doc.Pages {
		for _, sid := range p.ShapeIDs {
			if deleted[sid] {
				c.pagesBefore[pid] = append([]string(nil), p.ShapeIDs...)
				break
			}
		}
	}

	if st.UI.SelectionIDs != nil {
		c.selectionBefore = append([]string(nil), st.UI.SelectionIDs...)
	}
	for _, sid := range st.UI.SelectionIDs {
		if !deleted[sid] {
			c.selectionAfter = append(c.selectionAfter, sid)
		}
	}
	return c
}

// Name implements Command.
func (c *DeleteShapes) Name() string { return "delete-shapes" }

// Kind implements Command.
func (c *DeleteShapes) Kind() Kind { return KindDoc }

// Empty reports whether the command would delete nothing.
func (c *DeleteShapes) Empty() bool { return len(c.ids) == 0 }

// Do applies the cascade.
func (c *DeleteShapes) Do(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	next.Doc.DeleteShapes(c.ids...)
	next.UI.SelectionIDs = nil
	if c.selectionAfter != nil {
		next.UI.SelectionIDs = append([]string(nil), c.selectionAfter...)
	}
	return next
}

// Undo restores shapes, page order, bindings, detached arrow endpoints, and
// the selection.
func (c *DeleteShapes) Undo(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	for _, s := range c.shapes {
		next.Doc.Shapes[s.ID] = s.Clone()
	}
	for pid, shapeIDs := range c.pagesBefore {
		if p := next.Doc.Page(pid); p != nil {
			p.ShapeIDs = append([]string(nil), shapeIDs...)
		}
	}
	for _, b := range c.bindings {
		next.Doc.Bindings[b.ID] = b.Clone()
	}
	for _, arrow := range c.detachedArrows {
		next.Doc.Shapes[arrow.ID] = arrow.Clone()
	}
	next.UI.SelectionIDs = nil
	if c.selectionBefore != nil {
		next.UI.SelectionIDs = append([]string(nil), c.selectionBefore...)
	}
	return next
}

// PutBinding creates or replaces one binding. A nil before means creation.
// Endpoint state on the owning arrow is not touched here; compose with
// UpdateShape when the arrow changes too.
type PutBinding struct {
	before *doc.Binding
	after  *doc.Binding
}

// NewPutBinding captures both versions by value.
func NewPutBinding(before, after *doc.Binding) *PutBinding {
	return &PutBinding{before: before.Clone(), after: after.Clone()}
}

// Name implements Command.
func (c *PutBinding) Name() string { return "put-binding" }

// Kind implements Command.
func (c *PutBinding) Kind() Kind { return KindDoc }

// Do installs the after binding.
func (c *PutBinding) Do(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	if c.before != nil && c.before.ID != c.after.ID {
		delete(next.Doc.Bindings, c.before.ID)
	}
	next.Doc.Bindings[c.after.ID] = c.after.Clone()
	return next
}

// Undo removes the after binding and restores the before one, if any.
func (c *PutBinding) Undo(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	delete(next.Doc.Bindings, c.after.ID)
	if c.before != nil {
		next.Doc.Bindings[c.before.ID] = c.before.Clone()
	}
	return next
}

// DeleteBindings removes bindings from the binding table. Endpoint state on
// owning arrows is not touched here; compose with UpdateShape.
type DeleteBindings struct {
	bindings []*doc.Binding
}

// NewDeleteBindings captures the bindings by value. Nil entries are dropped.
func NewDeleteBindings(bindings ...*doc.Binding) *DeleteBindings {
	c := &DeleteBindings{}
	for _, b := range bindings {
		if b != nil {
			c.bindings = append(c.bindings, b.Clone())
		}
	}
	return c
}

// Name implements Command.
func (c *DeleteBindings) Name() string { return "delete-bindings" }

// Kind implements Command.
func (c *DeleteBindings) Kind() Kind { return KindDoc }

// Empty reports whether the command would delete nothing.
func (c *DeleteBindings) Empty() bool { return len(c.bindings) == 0 }

// Do removes the captured bindings.
func (c *DeleteBindings) Do(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	for _, b := range c.bindings {
		delete(next.Doc.Bindings, b.ID)
	}
	return next
}

// Undo restores the captured bindings.
func (c *DeleteBindings) Undo(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	for _, b := range c.bindings {
		next.Doc.Bindings[b.ID] = b.Clone()
	}
	return next
}

// SetSelection replaces the selection.
type SetSelection struct {
	before []string
	after  []string
}

// NewSetSelection captures both selections by value.
func NewSetSelection(before, after []string) *SetSelection {
	c := &SetSelection{}
	if before != nil {
		c.before = append([]string(nil), before...)
	}
	if after != nil {
		c.after = append([]string(nil), after...)
	}
	return c
}

// Name implements Command.
func (c *SetSelection) Name() string { return "set-selection" }

// Kind implements Command.
func (c *SetSelection) Kind() Kind { return KindUI }

// Do installs the after selection.
func (c *SetSelection) Do(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	next.UI.SelectionIDs = nil
	if c.after != nil {
		next.UI.SelectionIDs = append([]string(nil), c.after...)
	}
	return next
}

// Undo restores the before selection.
func (c *SetSelection) Undo(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	next.UI.SelectionIDs = nil
	if c.before != nil {
		next.UI.SelectionIDs = append([]string(nil), c.before...)
	}
	return next
}

// SetCamera replaces the camera transform.
type SetCamera struct {
	before state.Camera
	after  state.Camera
}

// NewSetCamera captures both camera values.
func NewSetCamera(before, after state.Camera) *SetCamera {
	return &SetCamera{before: before, after: after}
}

// Name implements Command.
func (c *SetCamera) Name() string { return "set-camera" }

// Kind implements Command.
func (c *SetCamera) Kind() Kind { return KindCamera }

// Do installs the after camera.
func (c *SetCamera) Do(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	next.Camera = c.after
	return next
}

// Undo restores the before camera.
func (c *SetCamera) Undo(st *state.EditorState) *state.EditorState {
	next := st.Clone()
	next.Camera = c.before
	return next
}
