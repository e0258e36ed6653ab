package doc

import (
	"fmt"

	"github.com/drawkit/drawkit/internal/geom"
)

// Kind identifies a shape variant.
type Kind uint8

const (
	// KindInvalid is the zero Kind; no valid shape carries it.
	KindInvalid Kind = iota
	// KindRect is an axis-sized rectangle.
	KindRect
	// KindEllipse is an ellipse sized by two radii.
	KindEllipse
	// KindLine is a straight segment between two local points.
	KindLine
	// KindArrow is a polyline with bindable endpoints.
	KindArrow
	// KindText is a positioned text box.
	KindText
	// KindStroke is a freehand pen stroke.
	KindStroke
	// KindMarkdown is a markdown note box; rendering is external.
	KindMarkdown
)

// String returns the kind name used in serialized documents.
func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindEllipse:
		return "ellipse"
	case KindLine:
		return "line"
	case KindArrow:
		return "arrow"
	case KindText:
		return "text"
	case KindStroke:
		return "stroke"
	case KindMarkdown:
		return "markdown"
	default:
		return "invalid"
	}
}

// ParseKind parses a serialized kind name.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "rect":
		return KindRect, true
	case "ellipse":
		return KindEllipse, true
	case "line":
		return KindLine, true
	case "arrow":
		return KindArrow, true
	case "text":
		return KindText, true
	case "stroke":
		return KindStroke, true
	case "markdown":
		return KindMarkdown, true
	default:
		return KindInvalid, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	kind, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("unknown shape kind %q", string(b))
	}
	*k = kind
	return nil
}

// Shape is a positioned, rotatable drawable entity. Exactly one of the
// per-kind props pointers is non-nil, selected by Kind.
type Shape struct {
	ID     string  `json:"id"`
	PageID string  `json:"pageId"`
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Rot    float64 `json:"rot,omitempty"` // radians
	Style  Style   `json:"style"`

	Rect     *RectProps     `json:"rect,omitempty"`
	Ellipse  *EllipseProps  `json:"ellipse,omitempty"`
	Line     *LineProps     `json:"line,omitempty"`
	Arrow    *ArrowProps    `json:"arrow,omitempty"`
	Text     *TextProps     `json:"text,omitempty"`
	Stroke   *StrokeProps   `json:"strokeShape,omitempty"`
	Markdown *MarkdownProps `json:"markdown,omitempty"`
}

// RectProps sizes a rectangle shape.
type RectProps struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// EllipseProps sizes an ellipse shape by its radii. The shape's position is
// the top-left corner of the ellipse's bounding box.
type EllipseProps struct {
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

// LineProps holds the two local endpoints of a line shape.
type LineProps struct {
	A geom.Point `json:"a"`
	B geom.Point `json:"b"`
}

// ArrowProps holds the ordered local polyline of an arrow, its per-endpoint
// binding state, routing mode, and optional label.
type ArrowProps struct {
	Points  []geom.Point `json:"points"`
	Start   Endpoint     `json:"start"`
	End     Endpoint     `json:"end"`
	Routing Routing      `json:"routing"`
	Label   *Label       `json:"label,omitempty"`
}

// TextProps holds the content and box extent of a text shape.
type TextProps struct {
	Text string  `json:"text"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

// StrokeProps holds the local points and brush size of a freehand stroke.
// Outline computation from points and brush is external; the core treats the
// stroke as its polyline inflated by half the brush size.
type StrokeProps struct {
	Points []geom.Point `json:"points"`
	Size   float64      `json:"size"`
}

// MarkdownProps holds the source and box extent of a markdown note.
type MarkdownProps struct {
	Source string  `json:"source"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
}

// Endpoint is the binding state of one arrow endpoint. An empty BindingID
// means the endpoint is free.
type Endpoint struct {
	BindingID string `json:"bindingId,omitempty"`
}

// Bound reports whether the endpoint is bound to a target shape.
func (e Endpoint) Bound() bool {
	return e.BindingID != ""
}

// Routing selects how an arrow's path is derived from its points.
type Routing uint8

const (
	// RoutingStraight connects the points directly.
	RoutingStraight Routing = iota
	// RoutingOrthogonal routes a two-point arrow with axis-aligned segments.
	RoutingOrthogonal
)

// String returns the routing name used in serialized documents.
func (r Routing) String() string {
	if r == RoutingOrthogonal {
		return "orthogonal"
	}
	return "straight"
}

// MarshalText implements encoding.TextMarshaler.
func (r Routing) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Routing) UnmarshalText(b []byte) error {
	switch string(b) {
	case "straight", "":
		*r = RoutingStraight
	case "orthogonal":
		*r = RoutingOrthogonal
	default:
		return fmt.Errorf("unknown routing %q", string(b))
	}
	return nil
}

// LabelAlign anchors an arrow label along its path.
type LabelAlign uint8

const (
	// AlignCenter anchors the label at the path midpoint.
	AlignCenter LabelAlign = iota
	// AlignStart anchors the label at the path start.
	AlignStart
	// AlignEnd anchors the label at the path end.
	AlignEnd
)

// String returns the alignment name used in serialized documents.
func (a LabelAlign) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	default:
		return "center"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a LabelAlign) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *LabelAlign) UnmarshalText(b []byte) error {
	switch string(b) {
	case "center", "":
		*a = AlignCenter
	case "start":
		*a = AlignStart
	case "end":
		*a = AlignEnd
	default:
		return fmt.Errorf("unknown label alignment %q", string(b))
	}
	return nil
}

// Label is a draggable text label placed along an arrow's path at a signed
// arclength offset from its alignment anchor.
type Label struct {
	Text   string     `json:"text"`
	Align  LabelAlign `json:"align"`
	Offset float64    `json:"offset,omitempty"`
}

// Pos returns the shape's position as a point.
func (s *Shape) Pos() geom.Point {
	return geom.Point{X: s.X, Y: s.Y}
}

// Clone returns a deep copy of the shape.
func (s *Shape) Clone() *Shape {
	if s == nil {
		return nil
	}
	out := *s
	switch s.Kind {
	case KindRect:
		if s.Rect != nil {
			r := *s.Rect
			out.Rect = &r
		}
	case KindEllipse:
		if s.Ellipse != nil {
			e := *s.Ellipse
			out.Ellipse = &e
		}
	case KindLine:
		if s.Line != nil {
			l := *s.Line
			out.Line = &l
		}
	case KindArrow:
		if s.Arrow != nil {
			a := *s.Arrow
			a.Points = append([]geom.Point(nil), s.Arrow.Points...)
			if s.Arrow.Label != nil {
				lbl := *s.Arrow.Label
				a.Label = &lbl
			}
			out.Arrow = &a
		}
	case KindText:
		if s.Text != nil {
			t := *s.Text
			out.Text = &t
		}
	case KindStroke:
		if s.Stroke != nil {
			st := *s.Stroke
			st.Points = append([]geom.Point(nil), s.Stroke.Points...)
			out.Stroke = &st
		}
	case KindMarkdown:
		if s.Markdown != nil {
			m := *s.Markdown
			out.Markdown = &m
		}
	}
	return &out
}

// NewRectShape creates an unrotated rectangle shape on the given page.
func NewRectShape(pageID string, x, y, w, h float64, style Style) *Shape {
	return &Shape{
		ID: NewID(), PageID: pageID, Kind: KindRect, X: x, Y: y, Style: style,
		Rect: &RectProps{W: w, H: h},
	}
}

// NewEllipseShape creates an ellipse shape whose bounding box has the given
// origin and extent.
func NewEllipseShape(pageID string, x, y, w, h float64, style Style) *Shape {
	return &Shape{
		ID: NewID(), PageID: pageID, Kind: KindEllipse, X: x, Y: y, Style: style,
		Ellipse: &EllipseProps{RX: w / 2, RY: h / 2},
	}
}

// NewLineShape creates a line shape positioned at a with local endpoints
// (0,0) and b-a.
func NewLineShape(pageID string, a, b geom.Point, style Style) *Shape {
	return &Shape{
		ID: NewID(), PageID: pageID, Kind: KindLine, X: a.X, Y: a.Y, Style: style,
		Line: &LineProps{B: b.Sub(a)},
	}
}

// NewArrowShape creates a two-point straight arrow positioned at a.
func NewArrowShape(pageID string, a, b geom.Point, style Style) *Shape {
	return &Shape{
		ID: NewID(), PageID: pageID, Kind: KindArrow, X: a.X, Y: a.Y, Style: style,
		Arrow: &ArrowProps{Points: []geom.Point{{}, b.Sub(a)}},
	}
}

// NewTextShape creates a text shape with the given box extent.
func NewTextShape(pageID string, x, y, w, h float64, text string, style Style) *Shape {
	return &Shape{
		ID: NewID(), PageID: pageID, Kind: KindText, X: x, Y: y, Style: style,
		Text: &TextProps{Text: text, W: w, H: h},
	}
}

// NewStrokeShape creates a freehand stroke positioned at origin.
func NewStrokeShape(pageID string, origin geom.Point, size float64, style Style) *Shape {
	return &Shape{
		ID: NewID(), PageID: pageID, Kind: KindStroke, X: origin.X, Y: origin.Y, Style: style,
		Stroke: &StrokeProps{Points: []geom.Point{{}}, Size: size},
	}
}

// NewMarkdownShape creates a markdown note with the given box extent.
func NewMarkdownShape(pageID string, x, y, w, h float64, source string, style Style) *Shape {
	return &Shape{
		ID: NewID(), PageID: pageID, Kind: KindMarkdown, X: x, Y: y, Style: style,
		Markdown: &MarkdownProps{Source: source, W: w, H: h},
	}
}
