// Package state defines the editor's single state value: the document plus
// the UI and camera state that tools and commands operate on.
//
// EditorState is treated as immutable by convention: every mutation path
// clones the state, modifies the clone, and publishes it. Clone is deep for
// the document and shallow-copying for the UI slices, so a published state
// is never aliased by a later one.
package state

import "github.com/drawkit/drawkit/internal/doc"

// Camera is the viewport transform. The core consumes already-resolved
// world coordinates; the camera is carried here only so camera mutations can
// participate in undo history.
type Camera struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// BindingPreview is a speculative rebinding target staged while an arrow
// endpoint is being dragged, before anything is committed.
type BindingPreview struct {
	ArrowID   string     `json:"arrowId"`
	Handle    doc.Handle `json:"handle"`
	ToShapeID string     `json:"toShapeId"`
	Anchor    doc.Anchor `json:"anchor"`
}

// UI holds the transient interface state published alongside the document.
type UI struct {
	CurrentPageID  string          `json:"currentPageId,omitempty"`
	SelectionIDs   []string        `json:"selectionIds,omitempty"`
	ToolID         string          `json:"toolId,omitempty"`
	BindingPreview *BindingPreview `json:"bindingPreview,omitempty"`
}

// EditorState is the complete editor state.
type EditorState struct {
	Doc    *doc.Document `json:"doc"`
	UI     UI            `json:"ui"`
	Camera Camera        `json:"camera"`
}

// New returns an empty editor state with a unit camera.
func New() *EditorState {
	return &EditorState{
		Doc:    doc.NewDocument(),
		Camera: Camera{Zoom: 1},
	}
}

// Clone returns a deep copy of the state.
func (s *EditorState) Clone() *EditorState {
	out := &EditorState{
		Doc:    s.Doc.Clone(),
		UI:     s.UI,
		Camera: s.Camera,
	}
	if s.UI.SelectionIDs != nil {
		out.UI.SelectionIDs = append([]string(nil), s.UI.SelectionIDs...)
	}
	if s.UI.BindingPreview != nil {
		bp := *s.UI.BindingPreview
		out.UI.BindingPreview = &bp
	}
	return out
}

// CurrentPage returns the current page, or nil when none is selected or the
// id no longer resolves.
func (s *EditorState) CurrentPage() *doc.Page {
	if s.UI.CurrentPageID == "" {
		return nil
	}
	return s.Doc.Page(s.UI.CurrentPageID)
}

// Selected reports whether the shape id is in the selection.
func (s *EditorState) Selected(id string) bool {
	for _, sid := range s.UI.SelectionIDs {
		if sid == id {
			return true
		}
	}
	return false
}

// SelectedShapes returns the selected shapes in selection order, skipping
// ids that no longer resolve.
func (s *EditorState) SelectedShapes() []*doc.Shape {
	var out []*doc.Shape
	for _, id := range s.UI.SelectionIDs {
		if sh := s.Doc.Shape(id); sh != nil {
			out = append(out, sh)
		}
	}
	return out
}
