package doc

import "github.com/drawkit/drawkit/internal/geom"

// ResolveArrowEndpoints returns the arrow's live world endpoints. A free
// endpoint is the arrow's own literal point translated by its position. A
// bound endpoint is recomputed from the current state of the target shape:
// center anchors land exactly on the live bounds center; edge anchors are
// additionally offset inward along the anchor normal by half the arrow's
// stroke width so the rendered stroke does not pierce the target's border.
// A binding whose target no longer exists is treated as a free endpoint.
// ok is false when the shape is missing, not an arrow, or degenerate.
func (d *Document) ResolveArrowEndpoints(arrowID string) (start, end geom.Point, ok bool) {
	s := d.Shapes[arrowID]
	if s == nil || s.Kind != KindArrow || s.Arrow == nil || len(s.Arrow.Points) < 2 {
		return geom.Point{}, geom.Point{}, false
	}
	return d.resolveEndpoint(s, HandleStart), d.resolveEndpoint(s, HandleEnd), true
}

func (d *Document) resolveEndpoint(s *Shape, h Handle) geom.Point {
	pts := s.Arrow.Points
	local := pts[0]
	ep := s.Arrow.Start
	if h == HandleEnd {
		local = pts[len(pts)-1]
		ep = s.Arrow.End
	}
	free := s.toWorld(local)
	if !ep.Bound() {
		return free
	}
	b := d.Bindings[ep.BindingID]
	if b == nil {
		return free
	}
	target := d.Shapes[b.ToShapeID]
	if target == nil {
		return free
	}
	switch b.Anchor.Kind {
	case AnchorCenter:
		return target.Bounds().Center()
	case AnchorEdge:
		pt := EdgeAnchorPoint(target, b.Anchor.NX, b.Anchor.NY)
		// Fixed half-stroke-width inset; a documented approximation that
		// ignores non-uniform scaling under rotation.
		n := geom.Point{X: b.Anchor.NX, Y: b.Anchor.NY}.Normalize()
		return pt.Sub(n.Mul(s.Style.StrokeWidth / 2))
	default:
		return free
	}
}

// ArrowPath returns the arrow's full live world polyline: resolved endpoints
// with interior points translated by the arrow's position. Two-point arrows
// in orthogonal routing mode are routed through geom.OrthogonalPath. Returns
// nil when the shape is missing or not a valid arrow.
func (d *Document) ArrowPath(arrowID string) []geom.Point {
	start, end, ok := d.ResolveArrowEndpoints(arrowID)
	if !ok {
		return nil
	}
	s := d.Shapes[arrowID]
	pts := s.Arrow.Points
	if s.Arrow.Routing == RoutingOrthogonal && len(pts) == 2 {
		return geom.OrthogonalPath(start, end)
	}
	out := make([]geom.Point, len(pts))
	out[0] = start
	out[len(out)-1] = end
	for i := 1; i < len(pts)-1; i++ {
		out[i] = s.toWorld(pts[i])
	}
	return out
}

// ArrowLabelPosition returns the world position of the arrow's label: the
// point at the label's signed arclength offset from its alignment anchor,
// clamped to the path. ok is false when the arrow or its label is missing.
func (d *Document) ArrowLabelPosition(arrowID string) (geom.Point, bool) {
	path := d.ArrowPath(arrowID)
	if path == nil {
		return geom.Point{}, false
	}
	s := d.Shapes[arrowID]
	label := s.Arrow.Label
	if label == nil {
		return geom.Point{}, false
	}
	total := geom.PolylineLength(path)
	var base float64
	switch label.Align {
	case AlignStart:
		base = 0
	case AlignEnd:
		base = total
	default:
		base = total / 2
	}
	dist := base + label.Offset
	if dist < 0 {
		dist = 0
	} else if dist > total {
		dist = total
	}
	return geom.PointAtDistance(path, dist), true
}
