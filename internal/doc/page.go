package doc

// Page is a named, ordered collection of shape ids. The order of ShapeIDs is
// both draw order and hit-test priority: the last id is topmost.
type Page struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ShapeIDs []string `json:"shapeIds"`
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	out := *p
	if p.ShapeIDs != nil {
		out.ShapeIDs = append([]string(nil), p.ShapeIDs...)
	}
	return &out
}

// Contains reports whether the page lists the shape id.
func (p *Page) Contains(id string) bool {
	return p.IndexOf(id) >= 0
}

// IndexOf returns the z-order index of the shape id, or -1.
func (p *Page) IndexOf(id string) int {
	for i, sid := range p.ShapeIDs {
		if sid == id {
			return i
		}
	}
	return -1
}

// Append adds the shape id at the top of the z-order. Ids already listed are
// left where they are.
func (p *Page) Append(id string) {
	if p.Contains(id) {
		return
	}
	p.ShapeIDs = append(p.ShapeIDs, id)
}

// Remove strips the shape id from the page, preserving the order of the
// remaining ids.
func (p *Page) Remove(id string) {
	out := p.ShapeIDs[:0]
	for _, sid := range p.ShapeIDs {
		if sid != id {
			out = append(out, sid)
		}
	}
	p.ShapeIDs = out
}
