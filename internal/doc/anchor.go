package doc

import "github.com/drawkit/drawkit/internal/geom"

// NormalizedAnchor maps a world point to an edge anchor on the shape:
// coordinates normalized to [-1,1] per axis relative to the shape's bounds
// center, clamped at the bounds edge. A degenerate axis maps to 0.
func NormalizedAnchor(p geom.Point, s *Shape) Anchor {
	b := s.Bounds()
	c := b.Center()
	return EdgeAnchorAt(
		normalizeAxis(p.X-c.X, b.W/2),
		normalizeAxis(p.Y-c.Y, b.H/2),
	)
}

func normalizeAxis(delta, half float64) float64 {
	if half <= 0 {
		return 0
	}
	n := delta / half
	if n < -1 {
		return -1
	}
	if n > 1 {
		return 1
	}
	return n
}

// EdgeAnchorPoint is the inverse of NormalizedAnchor: it maps normalized
// anchor coordinates back to a world point on or inside the shape's bounds.
// (0,0) is the bounds center.
func EdgeAnchorPoint(s *Shape, nx, ny float64) geom.Point {
	b := s.Bounds()
	c := b.Center()
	return geom.Point{
		X: c.X + nx*b.W/2,
		Y: c.Y + ny*b.H/2,
	}
}
