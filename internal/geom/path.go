package geom

// OrthogonalPath routes between two points using axis-aligned segments.
// When a and b share an axis (or coincide) the result is the 2-point straight
// path. Otherwise the path bends once at the horizontal midpoint between
// them, producing a 4-point path.
func OrthogonalPath(a, b Point) []Point {
	if a.X == b.X || a.Y == b.Y {
		return []Point{a, b}
	}
	midX := (a.X + b.X) / 2
	return []Point{
		a,
		{X: midX, Y: a.Y},
		{X: midX, Y: b.Y},
		b,
	}
}

// PointInEllipse reports whether p lies inside or on the ellipse centered at
// c with radii rx and ry, using the normalized ellipse equation. Degenerate
// radii never contain any point.
func PointInEllipse(p, c Point, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (p.X - c.X) / rx
	dy := (p.Y - c.Y) / ry
	return dx*dx+dy*dy <= 1
}
