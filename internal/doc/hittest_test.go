package doc

import (
	"testing"

	"github.com/drawkit/drawkit/internal/geom"
)

func TestHitTestPointTopmostWins(t *testing.T) {
	d, p := newTestDocument()
	big := NewRectShape(p.ID, 100, 100, 200, 200, DefaultStyle())
	small := NewRectShape(p.ID, 150, 150, 100, 100, DefaultStyle())
	d.AddShape(big)
	d.AddShape(small) // later in page order, so topmost

	if got := d.HitTestPoint(p.ID, geom.Pt(200, 200), DefaultHitTolerance); got != small.ID {
		t.Errorf("HitTestPoint = %q, want topmost %q", got, small.ID)
	}
	// Outside the small rect, the big one is hit.
	if got := d.HitTestPoint(p.ID, geom.Pt(120, 120), DefaultHitTolerance); got != big.ID {
		t.Errorf("HitTestPoint = %q, want %q", got, big.ID)
	}
}

func TestHitTestPointMiss(t *testing.T) {
	d, p := newTestDocument()
	d.AddShape(NewRectShape(p.ID, 0, 0, 10, 10, DefaultStyle()))
	if got := d.HitTestPoint(p.ID, geom.Pt(500, 500), DefaultHitTolerance); got != "" {
		t.Errorf("HitTestPoint = %q, want empty", got)
	}
}

func TestHitTestPointNoPage(t *testing.T) {
	d := NewDocument()
	if got := d.HitTestPoint("missing", geom.Pt(0, 0), DefaultHitTolerance); got != "" {
		t.Errorf("HitTestPoint on missing page = %q, want empty", got)
	}
}

func TestHitTestPointSkipsDanglingIDs(t *testing.T) {
	d, p := newTestDocument()
	s := NewRectShape(p.ID, 0, 0, 10, 10, DefaultStyle())
	d.AddShape(s)
	p.ShapeIDs = append(p.ShapeIDs, "dangling")
	if got := d.HitTestPoint(p.ID, geom.Pt(5, 5), DefaultHitTolerance); got != s.ID {
		t.Errorf("HitTestPoint = %q, want %q", got, s.ID)
	}
}

func TestHitTestPointExcluding(t *testing.T) {
	d, p := newTestDocument()
	under := NewRectShape(p.ID, 0, 0, 100, 100, DefaultStyle())
	over := NewRectShape(p.ID, 0, 0, 100, 100, DefaultStyle())
	d.AddShape(under)
	d.AddShape(over)
	got := d.HitTestPointExcluding(p.ID, geom.Pt(50, 50), DefaultHitTolerance, over.ID)
	if got != under.ID {
		t.Errorf("HitTestPointExcluding = %q, want %q", got, under.ID)
	}
}
