package store

import (
	"github.com/drawkit/drawkit/internal/doc"
	"github.com/drawkit/drawkit/internal/state"
)

// Repair enforces the referential invariants on a state about to be
// published:
//
//  1. a page's shape list has no duplicates and lists only existing shapes
//  2. a binding's from-shape must resolve to an arrow, otherwise the
//     binding is removed
//  3. a dangling currentPageID is reset to the first remaining page, or ""
//     when no pages remain
//  4. selectionIDs keeps only ids that exist in the document and are
//     listed on the (possibly just-reset) current page
//
// Repair is copy-on-write: when nothing is violated the input reference is
// returned unchanged, so callers can detect "no repair happened" with a
// pointer comparison.
func Repair(st *state.EditorState) *state.EditorState {
	if !needsRepair(st) {
		return st
	}

	next := st.Clone()

	for _, p := range next.Doc.Pages {
		if pageListDirty(next.Doc, p) {
			p.ShapeIDs = cleanShapeList(next.Doc, p.ShapeIDs)
		}
	}

	for id, b := range next.Doc.Bindings {
		if !bindingValid(next.Doc, b) {
			delete(next.Doc.Bindings, id)
		}
	}

	if next.UI.CurrentPageID != "" && next.Doc.Page(next.UI.CurrentPageID) == nil {
		next.UI.CurrentPageID = next.Doc.FirstPageID()
	}

	next.UI.SelectionIDs = cleanSelection(next)

	return next
}

func needsRepair(st *state.EditorState) bool {
	for _, p := range st.Doc.Pages {
		if pageListDirty(st.Doc, p) {
			return true
		}
	}
	for _, b := range st.Doc.Bindings {
		if !bindingValid(st.Doc, b) {
			return true
		}
	}
	if st.UI.CurrentPageID != "" && st.Doc.Page(st.UI.CurrentPageID) == nil {
		return true
	}
	return selectionDirty(st)
}

func pageListDirty(d *doc.Document, p *doc.Page) bool {
	seen := make(map[string]bool, len(p.ShapeIDs))
	for _, id := range p.ShapeIDs {
		if seen[id] || d.Shape(id) == nil {
			return true
		}
		seen[id] = true
	}
	return false
}

func cleanShapeList(d *doc.Document, ids []string) []string {
	seen := make(map[string]bool, len(ids))
	kept := ids[:0:0]
	for _, id := range ids {
		if seen[id] || d.Shape(id) == nil {
			continue
		}
		seen[id] = true
		kept = append(kept, id)
	}
	return kept
}

func bindingValid(d *doc.Document, b *doc.Binding) bool {
	from := d.Shape(b.FromShapeID)
	return from != nil && from.Kind == doc.KindArrow
}

func selectionDirty(st *state.EditorState) bool {
	if len(st.UI.SelectionIDs) == 0 {
		return false
	}
	page := st.CurrentPage()
	for _, id := range st.UI.SelectionIDs {
		if st.Doc.Shape(id) == nil || page == nil || !page.Contains(id) {
			return true
		}
	}
	return false
}

// cleanSelection filters the selection against the repaired document and
// current page. An emptied selection becomes nil.
func cleanSelection(st *state.EditorState) []string {
	if len(st.UI.SelectionIDs) == 0 {
		return st.UI.SelectionIDs
	}
	page := st.CurrentPage()
	var kept []string
	for _, id := range st.UI.SelectionIDs {
		if st.Doc.Shape(id) != nil && page != nil && page.Contains(id) {
			kept = append(kept, id)
		}
	}
	return kept
}
