package input

import (
	"time"

	"github.com/drawkit/drawkit/internal/geom"
)

// Button identifies which pointer button an event refers to.
type Button uint8

const (
	// ButtonLeft is the primary button.
	ButtonLeft Button = iota
	// ButtonMiddle is the wheel button.
	ButtonMiddle
	// ButtonRight is the secondary button.
	ButtonRight
)

// Modifiers carries the keyboard modifier state of an event.
type Modifiers struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// Pointer is the shared payload of the pointer actions. Screen is the raw
// device position, World the camera-transformed canvas position; tools
// consume World only.
type Pointer struct {
	Screen  geom.Point
	World   geom.Point
	Button  Button
	Buttons int
	Mod     Modifiers
	Time    time.Time
}

// Action is the closed union of input events.
type Action interface {
	isAction()
}

// PointerDown reports a button press.
type PointerDown struct{ Pointer }

// PointerMove reports pointer motion, pressed or not.
type PointerMove struct{ Pointer }

// PointerUp reports a button release.
type PointerUp struct{ Pointer }

// KeyDown reports a key press.
type KeyDown struct {
	Key  string
	Code string
	Mod  Modifiers
}

// Wheel reports scroll input. Tools ignore it; the embedding layer uses it
// for camera control.
type Wheel struct {
	Screen geom.Point
	World  geom.Point
	Delta  geom.Point
	Mod    Modifiers
}

func (PointerDown) isAction() {}
func (PointerMove) isAction() {}
func (PointerUp) isAction()   {}
func (KeyDown) isAction()     {}
func (Wheel) isAction()       {}

// Key names used by the tools.
const (
	KeyEscape    = "Escape"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
)
