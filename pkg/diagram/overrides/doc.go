// Package overrides persists manual layout edits per year.
//
// An [Override] is a full snapshot of the diagram's editable geometry:
// every node's rectangle and rotation plus the manual link placement
// table. Snapshots are merged, never pruned, so an entry for a node or
// link absent from the current year's data survives until that element
// reappears.
//
// The [Store] interface abstracts persistence, with a JSON file backend
// for local use and a MongoDB backend for shared deployments.
package overrides
