// Package doc defines the document model of the editor: pages, shapes, and
// bindings, plus the shape-aware geometry built on top of it.
//
// # Arena model
//
// The three entity kinds live in id-keyed maps on Document. Entities never
// hold references to each other, only ids; a Page holds a non-owning ordered
// list of shape ids that doubles as z-order (last is topmost) and hit-test
// priority. This lets commands snapshot and restore entities by value
// without deep object graphs or cycles.
//
// # Shapes
//
// Shape is a closed union over seven kinds (rect, ellipse, line, arrow,
// text, stroke, markdown). The Kind tag selects exactly one of the per-kind
// props pointers; code switching over Kind treats unknown kinds as a no-op
// rather than panicking.
//
// # Bindings
//
// A Binding is a directed edge from one arrow endpoint to a target shape,
// described by an anchor: either the target's center or a normalized edge
// position. Arrow endpoints are resolved live against the current target
// state, never cached.
package doc
