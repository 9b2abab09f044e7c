// Package render generates output artifacts from a routed flow graph.
//
// Two renderers are provided:
//
//   - [RenderSVG] draws the interactive Sankey view: node rectangles
//     filled by category and links stroked as cubic Béziers with their
//     layout widths.
//   - [ToDOT] and [DOTToSVG] export a schematic node-link view of the
//     topology through Graphviz, useful for quick structural checks
//     without geometry.
//
// Rendering is pure with respect to the graph: the same routed graph,
// labels, and options always produce identical bytes, which makes the
// artifacts safe to cache by content hash.
package render
