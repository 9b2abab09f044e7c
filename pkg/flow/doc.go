// Package flow defines the material-flow data model and the graph builder.
//
// A [Row] is one year's record of rare-earth element flows in kilotonnes,
// keyed by named fields. [Build] maps a row onto the fixed ten-node stage
// vocabulary (ore through end-of-life) and emits value-weighted, typed
// links for every domain transition carried by the row.
//
// The package also holds the shared geometry primitives ([Point], [Rect],
// [Side]) used by the layout and routing engines.
package flow
