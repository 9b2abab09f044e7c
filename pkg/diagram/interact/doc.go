// Package interact implements the editing operations of the diagram:
// dragging, resizing, and rotating nodes, re-attaching link endpoints,
// and managing free-text labels.
//
// Every operation is a plain function over the graph and placement
// table. Callers own synchronization and decide when to re-route; the
// package itself never computes geometry beyond the edited element.
package interact
