package doc

import "github.com/drawkit/drawkit/internal/geom"

// DefaultHitTolerance is the proximity tolerance, in world units, applied to
// line-like shapes during hit testing.
const DefaultHitTolerance = 5

// HitTestPoint returns the id of the topmost shape on the page hit by the
// world point, iterating the page's z-order from top to bottom. It returns
// "" when nothing is hit or the page does not exist.
func (d *Document) HitTestPoint(pageID string, p geom.Point, tolerance float64) string {
	return d.HitTestPointExcluding(pageID, p, tolerance, "")
}

// HitTestPointExcluding is HitTestPoint skipping one shape id, used when
// probing for an arrow's rebinding target without the arrow shadowing it.
func (d *Document) HitTestPointExcluding(pageID string, p geom.Point, tolerance float64, exclude string) string {
	page := d.Pages[pageID]
	if page == nil {
		return ""
	}
	for i := len(page.ShapeIDs) - 1; i >= 0; i-- {
		id := page.ShapeIDs[i]
		if id == exclude {
			continue
		}
		s := d.Shapes[id]
		if s != nil && s.HitBy(p, tolerance) {
			return id
		}
	}
	return ""
}
