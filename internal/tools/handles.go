package tools

import (
	"github.com/drawkit/drawkit/internal/doc"
	"github.com/drawkit/drawkit/internal/geom"
)

// HandleKind distinguishes the interactive hotspots of a selected shape.
type HandleKind uint8

const (
	// HandleResize is a corner or edge-midpoint resize hotspot.
	HandleResize HandleKind = iota
	// HandleRotate sits above the shape's bounds.
	HandleRotate
	// HandlePoint is a line or arrow polyline point, endpoints included.
	HandlePoint
	// HandleLabel is the draggable arrow label.
	HandleLabel
)

// Resize handle indexes. Corners first, then edge midpoints, on the
// shape's world AABB.
const (
	ResizeTopLeft = iota
	ResizeTopRight
	ResizeBottomRight
	ResizeBottomLeft
	ResizeTop
	ResizeRight
	ResizeBottom
	ResizeLeft
)

// ShapeHandle is one hotspot with its live world position. Index is the
// resize corner/edge for HandleResize and the polyline point index for
// HandlePoint.
type ShapeHandle struct {
	Kind  HandleKind
	Index int
	Pos   geom.Point
}

// shapeHandles returns the hotspots of the sole selected shape: resize and
// rotate handles for box-like shapes, point handles at the live polyline
// for lines and arrows, and a label handle when an arrow carries one.
func shapeHandles(d *doc.Document, s *doc.Shape, p Params) []ShapeHandle {
	switch s.Kind {
	case doc.KindLine:
		if s.Line == nil {
			return nil
		}
		a := localToWorld(s, s.Line.A)
		b := localToWorld(s, s.Line.B)
		return []ShapeHandle{
			{Kind: HandlePoint, Index: 0, Pos: a},
			{Kind: HandlePoint, Index: 1, Pos: b},
		}
	case doc.KindArrow:
		return arrowHandles(d, s)
	case doc.KindRect, doc.KindEllipse, doc.KindText, doc.KindStroke, doc.KindMarkdown:
		return boxHandles(s, p)
	default:
		return nil
	}
}

func boxHandles(s *doc.Shape, p Params) []ShapeHandle {
	b := s.Bounds()
	min, max := b.Min(), b.Max()
	cx := (min.X + max.X) / 2
	cy := (min.Y + max.Y) / 2
	out := []ShapeHandle{
		{Kind: HandleResize, Index: ResizeTopLeft, Pos: min},
		{Kind: HandleResize, Index: ResizeTopRight, Pos: geom.Pt(max.X, min.Y)},
		{Kind: HandleResize, Index: ResizeBottomRight, Pos: max},
		{Kind: HandleResize, Index: ResizeBottomLeft, Pos: geom.Pt(min.X, max.Y)},
		{Kind: HandleResize, Index: ResizeTop, Pos: geom.Pt(cx, min.Y)},
		{Kind: HandleResize, Index: ResizeRight, Pos: geom.Pt(max.X, cy)},
		{Kind: HandleResize, Index: ResizeBottom, Pos: geom.Pt(cx, max.Y)},
		{Kind: HandleResize, Index: ResizeLeft, Pos: geom.Pt(min.X, cy)},
		{Kind: HandleRotate, Pos: geom.Pt(cx, min.Y-p.RotateHandleOffset)},
	}
	return out
}

func arrowHandles(d *doc.Document, s *doc.Shape) []ShapeHandle {
	path := d.ArrowPath(s.ID)
	if path == nil {
		return nil
	}
	out := make([]ShapeHandle, 0, len(s.Arrow.Points)+1)
	out = append(out, ShapeHandle{Kind: HandlePoint, Index: 0, Pos: path[0]})
	for i := 1; i < len(s.Arrow.Points)-1; i++ {
		out = append(out, ShapeHandle{Kind: HandlePoint, Index: i, Pos: localToWorld(s, s.Arrow.Points[i])})
	}
	last := len(s.Arrow.Points) - 1
	out = append(out, ShapeHandle{Kind: HandlePoint, Index: last, Pos: path[len(path)-1]})
	if pos, ok := d.ArrowLabelPosition(s.ID); ok {
		out = append(out, ShapeHandle{Kind: HandleLabel, Pos: pos})
	}
	return out
}

// hitHandle returns the first handle within radius of the point. Later
// handles win ties so label and point handles shadow resize corners.
func hitHandle(handles []ShapeHandle, pt geom.Point, radius float64) (ShapeHandle, bool) {
	for i := len(handles) - 1; i >= 0; i-- {
		if handles[i].Pos.Distance(pt) <= radius {
			return handles[i], true
		}
	}
	return ShapeHandle{}, false
}

func localToWorld(s *doc.Shape, p geom.Point) geom.Point {
	return p.Rotate(s.Rot).Add(s.Pos())
}

func worldToLocal(s *doc.Shape, p geom.Point) geom.Point {
	return p.Sub(s.Pos()).Rotate(-s.Rot)
}
