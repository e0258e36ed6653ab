package geom

// ClosestPointOnSegment returns the point on segment [a,b] closest to p,
// along with the clamped projection parameter t in [0,1].
func ClosestPointOnSegment(p, a, b Point) (Point, float64) {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t)), t
}

// DistanceToSegment returns the distance from p to segment [a,b].
func DistanceToSegment(p, a, b Point) float64 {
	closest, _ := ClosestPointOnSegment(p, a, b)
	return p.Distance(closest)
}

// NearSegment reports whether p lies within tolerance of segment [a,b].
func NearSegment(p, a, b Point, tolerance float64) bool {
	return DistanceToSegment(p, a, b) <= tolerance
}

// NearPolyline reports whether p lies within tolerance of any segment of the
// polyline. A single-point polyline is treated as that point.
func NearPolyline(p Point, pts []Point, tolerance float64) bool {
	switch len(pts) {
	case 0:
		return false
	case 1:
		return p.Distance(pts[0]) <= tolerance
	}
	for i := 0; i < len(pts)-1; i++ {
		if NearSegment(p, pts[i], pts[i+1], tolerance) {
			return true
		}
	}
	return false
}

// NearestSegment returns the index i of the polyline segment [pts[i],
// pts[i+1]] closest to p and the distance to it. Returns -1 for polylines
// with fewer than two points.
func NearestSegment(p Point, pts []Point) (int, float64) {
	if len(pts) < 2 {
		return -1, 0
	}
	best := -1
	bestDist := 0.0
	for i := 0; i < len(pts)-1; i++ {
		d := DistanceToSegment(p, pts[i], pts[i+1])
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}
