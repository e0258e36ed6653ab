package tools

import (
	"github.com/drawkit/drawkit/internal/command"
	"github.com/drawkit/drawkit/internal/input"
	"github.com/drawkit/drawkit/internal/state"
)

// Tool ids.
const (
	ToolSelect   = "select"
	ToolRect     = "rect"
	ToolEllipse  = "ellipse"
	ToolLine     = "line"
	ToolArrow    = "arrow"
	ToolText     = "text"
	ToolPen      = "pen"
	ToolMarkdown = "markdown"
)

// Tool is one input state machine. Implementations hold private transient
// gesture state; everything observable is written into the returned
// EditorState or the returned command.
type Tool interface {
	// ID returns the stable tool identifier stored in ui.ToolID.
	ID() string

	// OnEnter prepares the tool when it becomes active.
	OnEnter(st *state.EditorState) *state.EditorState

	// OnExit rolls back any in-progress, uncommitted gesture.
	OnExit(st *state.EditorState) *state.EditorState

	// OnAction handles one input action. The returned command is nil unless
	// the action committed an undoable mutation. Unrecognized actions
	// return the input state unchanged.
	OnAction(st *state.EditorState, act input.Action) (*state.EditorState, command.Command)
}

// Params carries the interaction tunables shared by the tools.
type Params struct {
	// HitTolerance is the proximity tolerance for hit-testing line-like
	// shapes.
	HitTolerance float64

	// HandleRadius is the pick radius around a handle hotspot.
	HandleRadius float64

	// SegmentTolerance is the pick tolerance for alt-click point insertion
	// on an arrow segment.
	SegmentTolerance float64

	// MinShapeSize is the diagonal below which a drag-created draft is
	// discarded, and the minimum extent a resize may shrink to.
	MinShapeSize float64

	// MaxCoordinate clamps every manipulated coordinate to ±MaxCoordinate.
	MaxCoordinate float64

	// RotateHandleOffset is the distance of the rotate handle above the
	// selected shape's bounds.
	RotateHandleOffset float64
}

// DefaultParams returns the standard interaction tunables.
func DefaultParams() Params {
	return Params{
		HitTolerance:       5,
		HandleRadius:       10,
		SegmentTolerance:   10,
		MinShapeSize:       5,
		MaxCoordinate:      1e6,
		RotateHandleOffset: 20,
	}
}

func clampCoord(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
