package geom

// PolylineLength returns the total arclength of the polyline.
func PolylineLength(pts []Point) float64 {
	total := 0.0
	for i := 0; i < len(pts)-1; i++ {
		total += pts[i].Distance(pts[i+1])
	}
	return total
}

// PointAtDistance returns the point at the given arclength along the
// polyline. The distance is clamped to [0, length]. An empty polyline yields
// the zero Point; a single point is returned as-is.
func PointAtDistance(pts []Point, dist float64) Point {
	switch len(pts) {
	case 0:
		return Point{}
	case 1:
		return pts[0]
	}
	if dist <= 0 {
		return pts[0]
	}
	remaining := dist
	for i := 0; i < len(pts)-1; i++ {
		segLen := pts[i].Distance(pts[i+1])
		if remaining <= segLen && segLen > 0 {
			return pts[i].Lerp(pts[i+1], remaining/segLen)
		}
		remaining -= segLen
	}
	return pts[len(pts)-1]
}
