// Package input defines the action union consumed by the tool router.
//
// Actions arrive with world coordinates already camera-transformed by the
// embedding layer; the core never does viewport math. The union is closed:
// routers and tools switch over the concrete action types and ignore
// anything they do not handle.
package input
