package doc

import "github.com/drawkit/drawkit/internal/geom"

// LocalBounds returns the shape's bounding box in its own local space, with
// the shape's position at the local origin.
func (s *Shape) LocalBounds() geom.Rect {
	switch s.Kind {
	case KindRect:
		if s.Rect != nil {
			return geom.Rect{W: s.Rect.W, H: s.Rect.H}
		}
	case KindEllipse:
		if s.Ellipse != nil {
			return geom.Rect{W: 2 * s.Ellipse.RX, H: 2 * s.Ellipse.RY}
		}
	case KindLine:
		if s.Line != nil {
			return geom.BoundsOfPoints([]geom.Point{s.Line.A, s.Line.B})
		}
	case KindArrow:
		if s.Arrow != nil {
			return geom.BoundsOfPoints(s.Arrow.Points)
		}
	case KindText:
		if s.Text != nil {
			return geom.Rect{W: s.Text.W, H: s.Text.H}
		}
	case KindStroke:
		if s.Stroke != nil {
			return geom.BoundsOfPoints(s.Stroke.Points).Expanded(s.Stroke.Size / 2)
		}
	case KindMarkdown:
		if s.Markdown != nil {
			return geom.Rect{W: s.Markdown.W, H: s.Markdown.H}
		}
	}
	return geom.Rect{}
}

// Bounds returns the shape's world-space axis-aligned bounding box. Rotated
// shapes rotate their local outline points about the local origin before the
// box is taken, so this is the AABB of the rotated shape, not its minimal
// oriented box.
func (s *Shape) Bounds() geom.Rect {
	if s.Rot == 0 {
		return s.LocalBounds().Translated(s.Pos())
	}
	pts := s.localOutline()
	world := make([]geom.Point, len(pts))
	for i, p := range pts {
		world[i] = p.Rotate(s.Rot).Add(s.Pos())
	}
	return geom.BoundsOfPoints(world)
}

// localOutline returns the local points whose rotated hull determines the
// shape's bounds: the polyline points for line-like kinds, the local bounds
// corners otherwise.
func (s *Shape) localOutline() []geom.Point {
	switch s.Kind {
	case KindLine:
		if s.Line != nil {
			return []geom.Point{s.Line.A, s.Line.B}
		}
	case KindArrow:
		if s.Arrow != nil {
			return s.Arrow.Points
		}
	}
	c := s.LocalBounds().Corners()
	return c[:]
}

// toLocal transforms a world point into the shape's local space via inverse
// translate then inverse rotate.
func (s *Shape) toLocal(p geom.Point) geom.Point {
	return p.Sub(s.Pos()).Rotate(-s.Rot)
}

// toWorld transforms a local point into world space.
func (s *Shape) toWorld(p geom.Point) geom.Point {
	return p.Rotate(s.Rot).Add(s.Pos())
}

// HitBy reports whether the world point hits the shape. Line, arrow, and
// stroke kinds test proximity to their polyline within the tolerance; box
// kinds test containment; ellipses use the normalized ellipse equation.
func (s *Shape) HitBy(p geom.Point, tolerance float64) bool {
	lp := s.toLocal(p)
	switch s.Kind {
	case KindRect:
		return s.Rect != nil && geom.Rect{W: s.Rect.W, H: s.Rect.H}.Contains(lp)
	case KindEllipse:
		if s.Ellipse == nil {
			return false
		}
		c := geom.Point{X: s.Ellipse.RX, Y: s.Ellipse.RY}
		return geom.PointInEllipse(lp, c, s.Ellipse.RX, s.Ellipse.RY)
	case KindLine:
		return s.Line != nil && geom.NearSegment(lp, s.Line.A, s.Line.B, tolerance)
	case KindArrow:
		return s.Arrow != nil && geom.NearPolyline(lp, s.Arrow.Points, tolerance)
	case KindText:
		return s.Text != nil && geom.Rect{W: s.Text.W, H: s.Text.H}.Contains(lp)
	case KindStroke:
		return s.Stroke != nil && geom.NearPolyline(lp, s.Stroke.Points, tolerance+s.Stroke.Size/2)
	case KindMarkdown:
		return s.Markdown != nil && geom.Rect{W: s.Markdown.W, H: s.Markdown.H}.Contains(lp)
	default:
		return false
	}
}
