package doc

import (
	"testing"

	"github.com/drawkit/drawkit/internal/geom"
)

func newTestDocument() (*Document, *Page) {
	d := NewDocument()
	p := d.AddPage("Page 1")
	return d, p
}

func TestAddShapeListsOnPage(t *testing.T) {
	d, p := newTestDocument()
	s := NewRectShape(p.ID, 0, 0, 100, 100, DefaultStyle())
	d.AddShape(s)

	if d.Shape(s.ID) == nil {
		t.Fatal("shape not stored")
	}
	if !p.Contains(s.ID) {
		t.Fatal("shape not listed on page")
	}

	// Re-adding must not duplicate the z-order entry.
	d.AddShape(s)
	if len(p.ShapeIDs) != 1 {
		t.Errorf("page lists %d ids, want 1", len(p.ShapeIDs))
	}
}

func TestDeleteShapesCascades(t *testing.T) {
	d, p := newTestDocument()
	target := NewRectShape(p.ID, 0, 0, 100, 100, DefaultStyle())
	other := NewRectShape(p.ID, 200, 0, 100, 100, DefaultStyle())
	arrow := NewArrowShape(p.ID, geom.Pt(150, 150), geom.Pt(50, 50), DefaultStyle())
	d.AddShape(target)
	d.AddShape(other)
	d.AddShape(arrow)

	b := &Binding{
		ID:          NewID(),
		FromShapeID: arrow.ID,
		Handle:      HandleEnd,
		ToShapeID:   target.ID,
		Anchor:      CenterAnchor(),
	}
	d.AddBinding(b)
	arrow.Arrow.End = Endpoint{BindingID: b.ID}

	d.DeleteShapes(target.ID)

	if d.Shape(target.ID) != nil {
		t.Error("deleted shape still stored")
	}
	if p.Contains(target.ID) {
		t.Error("deleted shape still listed on page")
	}
	if d.Binding(b.ID) != nil {
		t.Error("binding referencing deleted shape survived")
	}
	if d.Shape(arrow.ID).Arrow.End.Bound() {
		t.Error("surviving arrow endpoint not detached")
	}
	if d.Shape(other.ID) == nil {
		t.Error("unrelated shape was deleted")
	}
}

func TestDeleteShapesRemovesArrowBindings(t *testing.T) {
	d, p := newTestDocument()
	target := NewRectShape(p.ID, 0, 0, 100, 100, DefaultStyle())
	arrow := NewArrowShape(p.ID, geom.Pt(150, 150), geom.Pt(50, 50), DefaultStyle())
	d.AddShape(target)
	d.AddShape(arrow)
	b := &Binding{
		ID: NewID(), FromShapeID: arrow.ID, Handle: HandleStart,
		ToShapeID: target.ID, Anchor: EdgeAnchorAt(1, 0),
	}
	d.AddBinding(b)
	arrow.Arrow.Start = Endpoint{BindingID: b.ID}

	// Deleting the arrow itself drops bindings it owns.
	d.DeleteShapes(arrow.ID)
	if d.Binding(b.ID) != nil {
		t.Error("binding owned by deleted arrow survived")
	}
}

func TestDeleteShapesUnknownIDIsNoop(t *testing.T) {
	d, p := newTestDocument()
	s := NewRectShape(p.ID, 0, 0, 10, 10, DefaultStyle())
	d.AddShape(s)
	d.DeleteShapes("missing")
	if d.Shape(s.ID) == nil || len(p.ShapeIDs) != 1 {
		t.Error("no-op delete modified the document")
	}
}

func TestRemoveBindingDetachesEndpoint(t *testing.T) {
	d, p := newTestDocument()
	target := NewRectShape(p.ID, 0, 0, 100, 100, DefaultStyle())
	arrow := NewArrowShape(p.ID, geom.Pt(150, 150), geom.Pt(50, 50), DefaultStyle())
	d.AddShape(target)
	d.AddShape(arrow)
	b := &Binding{
		ID: NewID(), FromShapeID: arrow.ID, Handle: HandleEnd,
		ToShapeID: target.ID, Anchor: CenterAnchor(),
	}
	d.AddBinding(b)
	arrow.Arrow.End = Endpoint{BindingID: b.ID}

	d.RemoveBinding(b.ID)
	if arrow.Arrow.End.Bound() {
		t.Error("endpoint still bound after binding removal")
	}
}

func TestArrowBinding(t *testing.T) {
	d, p := newTestDocument()
	target := NewRectShape(p.ID, 0, 0, 100, 100, DefaultStyle())
	arrow := NewArrowShape(p.ID, geom.Pt(150, 150), geom.Pt(50, 50), DefaultStyle())
	d.AddShape(target)
	d.AddShape(arrow)
	b := &Binding{
		ID: NewID(), FromShapeID: arrow.ID, Handle: HandleEnd,
		ToShapeID: target.ID, Anchor: CenterAnchor(),
	}
	d.AddBinding(b)
	arrow.Arrow.End = Endpoint{BindingID: b.ID}

	if got := d.ArrowBinding(arrow.ID, HandleEnd); got != b {
		t.Errorf("ArrowBinding(end) = %v, want %v", got, b)
	}
	if got := d.ArrowBinding(arrow.ID, HandleStart); got != nil {
		t.Errorf("ArrowBinding(start) = %v, want nil for a free endpoint", got)
	}
	if got := d.ArrowBinding(target.ID, HandleEnd); got != nil {
		t.Errorf("ArrowBinding(non-arrow) = %v, want nil", got)
	}
	if got := d.ArrowBinding("missing", HandleEnd); got != nil {
		t.Errorf("ArrowBinding(missing) = %v, want nil", got)
	}
}

func TestRemovePageCascades(t *testing.T) {
	d, p := newTestDocument()
	s := NewRectShape(p.ID, 0, 0, 10, 10, DefaultStyle())
	d.AddShape(s)
	d.RemovePage(p.ID)

	if d.Page(p.ID) != nil {
		t.Error("page still stored")
	}
	if d.Shape(s.ID) != nil {
		t.Error("shape on removed page survived")
	}
	if d.FirstPageID() != "" {
		t.Errorf("FirstPageID = %q, want empty", d.FirstPageID())
	}
}

func TestFirstPageIDSkipsRemoved(t *testing.T) {
	d := NewDocument()
	p1 := d.AddPage("one")
	p2 := d.AddPage("two")
	delete(d.Pages, p1.ID) // simulate a stale order entry
	if got := d.FirstPageID(); got != p2.ID {
		t.Errorf("FirstPageID = %q, want %q", got, p2.ID)
	}
}

func TestCloneIsDeep(t *testing.T) {
	d, p := newTestDocument()
	arrow := NewArrowShape(p.ID, geom.Pt(0, 0), geom.Pt(10, 10), DefaultStyle())
	d.AddShape(arrow)

	clone := d.Clone()
	clone.Shapes[arrow.ID].Arrow.Points[1] = geom.Pt(99, 99)
	clone.Pages[p.ID].ShapeIDs = nil

	if d.Shapes[arrow.ID].Arrow.Points[1] != geom.Pt(10, 10) {
		t.Error("clone shares arrow points with original")
	}
	if len(p.ShapeIDs) != 1 {
		t.Error("clone shares page id list with original")
	}
}
