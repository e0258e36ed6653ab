package doc

import "fmt"

// Handle identifies which end of an arrow a binding attaches.
type Handle uint8

const (
	// HandleStart is the first point of the arrow's polyline.
	HandleStart Handle = iota
	// HandleEnd is the last point of the arrow's polyline.
	HandleEnd
)

// String returns the handle name used in serialized documents.
func (h Handle) String() string {
	if h == HandleEnd {
		return "end"
	}
	return "start"
}

// MarshalText implements encoding.TextMarshaler.
func (h Handle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Handle) UnmarshalText(b []byte) error {
	switch string(b) {
	case "start", "":
		*h = HandleStart
	case "end":
		*h = HandleEnd
	default:
		return fmt.Errorf("unknown binding handle %q", string(b))
	}
	return nil
}

// AnchorKind selects how a binding attaches to its target.
type AnchorKind uint8

const (
	// AnchorCenter attaches to the target's live bounds center.
	AnchorCenter AnchorKind = iota
	// AnchorEdge attaches at a normalized position relative to the
	// target's bounds center.
	AnchorEdge
)

// String returns the anchor kind name used in serialized documents.
func (k AnchorKind) String() string {
	if k == AnchorEdge {
		return "edge"
	}
	return "center"
}

// MarshalText implements encoding.TextMarshaler.
func (k AnchorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AnchorKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "center", "":
		*k = AnchorCenter
	case "edge":
		*k = AnchorEdge
	default:
		return fmt.Errorf("unknown anchor kind %q", string(b))
	}
	return nil
}

// Anchor describes the attachment point on a binding's target shape. For
// AnchorEdge, NX and NY are normalized to [-1,1] per axis relative to the
// target's bounds center; (0,0) is the center itself.
type Anchor struct {
	Kind AnchorKind `json:"kind"`
	NX   float64    `json:"nx,omitempty"`
	NY   float64    `json:"ny,omitempty"`
}

// CenterAnchor returns the center anchor.
func CenterAnchor() Anchor {
	return Anchor{Kind: AnchorCenter}
}

// EdgeAnchorAt returns an edge anchor at the given normalized position.
func EdgeAnchorAt(nx, ny float64) Anchor {
	return Anchor{Kind: AnchorEdge, NX: nx, NY: ny}
}

// Binding is a directed anchor relationship from one arrow endpoint to a
// target shape. FromShapeID always names an arrow.
type Binding struct {
	ID          string `json:"id"`
	FromShapeID string `json:"fromShapeId"`
	Handle      Handle `json:"handle"`
	ToShapeID   string `json:"toShapeId"`
	Anchor      Anchor `json:"anchor"`
}

// Clone returns a copy of the binding.
func (b *Binding) Clone() *Binding {
	if b == nil {
		return nil
	}
	out := *b
	return &out
}

// References reports whether the binding names the shape id on either side.
func (b *Binding) References(shapeID string) bool {
	return b.FromShapeID == shapeID || b.ToShapeID == shapeID
}
