package doc

import "sort"

// Document is the root of the editor's data model: id-keyed arenas of pages,
// shapes, and bindings. PageOrder preserves the user-visible page order,
// which the maps cannot.
type Document struct {
	Pages     map[string]*Page    `json:"pages"`
	PageOrder []string            `json:"pageOrder"`
	Shapes    map[string]*Shape   `json:"shapes"`
	Bindings  map[string]*Binding `json:"bindings"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		Pages:    make(map[string]*Page),
		Shapes:   make(map[string]*Shape),
		Bindings: make(map[string]*Binding),
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Pages:    make(map[string]*Page, len(d.Pages)),
		Shapes:   make(map[string]*Shape, len(d.Shapes)),
		Bindings: make(map[string]*Binding, len(d.Bindings)),
	}
	if d.PageOrder != nil {
		out.PageOrder = append([]string(nil), d.PageOrder...)
	}
	for id, p := range d.Pages {
		out.Pages[id] = p.Clone()
	}
	for id, s := range d.Shapes {
		out.Shapes[id] = s.Clone()
	}
	for id, b := range d.Bindings {
		out.Bindings[id] = b.Clone()
	}
	return out
}

// Page returns the page with the given id, or nil.
func (d *Document) Page(id string) *Page {
	return d.Pages[id]
}

// Shape returns the shape with the given id, or nil.
func (d *Document) Shape(id string) *Shape {
	return d.Shapes[id]
}

// Binding returns the binding with the given id, or nil.
func (d *Document) Binding(id string) *Binding {
	return d.Bindings[id]
}

// FirstPageID returns the id of the first page in order, or "" for an empty
// document. Order entries pointing at removed pages are skipped.
func (d *Document) FirstPageID() string {
	for _, id := range d.PageOrder {
		if _, ok := d.Pages[id]; ok {
			return id
		}
	}
	return ""
}

// AddPage creates a new page at the end of the page order.
func (d *Document) AddPage(name string) *Page {
	p := &Page{ID: NewID(), Name: name}
	d.Pages[p.ID] = p
	d.PageOrder = append(d.PageOrder, p.ID)
	return p
}

// RemovePage deletes the page and every shape on it, cascading shape
// deletion as DeleteShapes does. Unknown ids are a no-op.
func (d *Document) RemovePage(id string) {
	p := d.Pages[id]
	if p == nil {
		return
	}
	d.DeleteShapes(p.ShapeIDs...)
	delete(d.Pages, id)
	order := d.PageOrder[:0]
	for _, pid := range d.PageOrder {
		if pid != id {
			order = append(order, pid)
		}
	}
	d.PageOrder = order
}

// AddShape inserts the shape and lists it at the top of its page's z-order.
// Re-adding an existing shape overwrites the entry without duplicating the
// page listing.
func (d *Document) AddShape(s *Shape) {
	d.Shapes[s.ID] = s
	if p := d.Pages[s.PageID]; p != nil {
		p.Append(s.ID)
	}
}

// AddBinding inserts the binding.
func (d *Document) AddBinding(b *Binding) {
	d.Bindings[b.ID] = b
}

// RemoveBinding deletes the binding and resets the owning arrow's endpoint
// to free. Unknown ids are a no-op.
func (d *Document) RemoveBinding(id string) {
	b := d.Bindings[id]
	if b == nil {
		return
	}
	delete(d.Bindings, id)
	arrow := d.Shapes[b.FromShapeID]
	if arrow == nil || arrow.Kind != KindArrow || arrow.Arrow == nil {
		return
	}
	if arrow.Arrow.Start.BindingID == id {
		arrow.Arrow.Start = Endpoint{}
	}
	if arrow.Arrow.End.BindingID == id {
		arrow.Arrow.End = Endpoint{}
	}
}

// DeleteShapes removes the shapes and cascades: every page's id list loses
// the ids, and every binding referencing a deleted shape on either side is
// removed, detaching surviving arrows from it.
func (d *Document) DeleteShapes(ids ...string) {
	if len(ids) == 0 {
		return
	}
	deleted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := d.Shapes[id]; ok {
			deleted[id] = true
			delete(d.Shapes, id)
		}
	}
	if len(deleted) == 0 {
		return
	}
	for _, p := range d.Pages {
		kept := p.ShapeIDs[:0]
		for _, sid := range p.ShapeIDs {
			if !deleted[sid] {
				kept = append(kept, sid)
			}
		}
		p.ShapeIDs = kept
	}
	for id, b := range d.Bindings {
		if deleted[b.FromShapeID] || deleted[b.ToShapeID] {
			d.RemoveBinding(id)
		}
	}
}

// BindingsFor returns the bindings referencing the shape on either side,
// sorted by id for deterministic iteration.
func (d *Document) BindingsFor(shapeID string) []*Binding {
	var out []*Binding
	for _, b := range d.Bindings {
		if b.References(shapeID) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ArrowBinding returns the binding attached to the given end of the arrow,
// or nil.
func (d *Document) ArrowBinding(arrowID string, h Handle) *Binding {
	s := d.Shapes[arrowID]
	if s == nil || s.Kind != KindArrow || s.Arrow == nil {
		return nil
	}
	ep := s.Arrow.Start
	if h == HandleEnd {
		ep = s.Arrow.End
	}
	if !ep.Bound() {
		return nil
	}
	return d.Bindings[ep.BindingID]
}
