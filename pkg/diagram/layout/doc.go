// Package layout computes node geometry for the flow diagram.
//
// Two strategies implement [Strategy]:
//
//   - [ProportionalFlowLayout] is the generic column-based flow layout:
//     columns by topological depth, vertical extent proportional to the
//     flow through each node, compressed by FlowScale and centered in the
//     canvas. It also resolves the diagram's value→size scale, which sets
//     every link's rendered width.
//   - [FixedReferenceLayout] is the hand-authored reference arrangement
//     matching the published figure: the process chain across the middle,
//     the export bar along the top, the loss bar along the bottom, and
//     end-of-life offset to the right.
//
// [Compute] runs both: the proportional pass supplies sizing, then nodes
// without a saved manual override take their fixed reference rectangle.
package layout
