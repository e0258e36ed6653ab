// Package geom provides the pure geometry primitives used by the editor core.
//
// Everything in this package operates on world or shape-local coordinates as
// plain float64 pairs; nothing here knows about shapes, pages, or documents.
// Key concepts:
//
// # Points and Rects
//
// Point is a 2D point or vector with the usual vector operations. Rect is an
// axis-aligned rectangle stored as origin plus extent, always normalized so
// that W and H are non-negative.
//
// # Proximity
//
// DistanceToSegment projects a point onto a segment, clamping the projection
// parameter to [0,1], and is the basis for polyline hit testing with a
// tolerance.
//
// # Polylines
//
// PolylineLength and PointAtDistance provide arclength parameterization over
// an ordered point list, used to place arrow labels at a signed offset from
// an alignment anchor.
//
// # Routing
//
// OrthogonalPath routes between two points using at most one horizontal-
// midpoint bend, producing either a 2-point straight path or a 4-point bent
// path.
package geom
