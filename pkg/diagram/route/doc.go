// Package route resolves link endpoint geometry for the flow diagram.
//
// For every link, each end attaches to one side of its node rectangle:
// either the side saved in the manual placement [Table], or a side
// inferred from the node's orientation and the opposing endpoint's
// position. Links sharing a (node, side, direction) bucket are laid
// end-to-end along the edge in a deterministic crossing-minimizing order,
// and each resolved endpoint pair is joined by a cubic Bézier whose
// control points leave the rectangle edges perpendicularly.
//
// Routing is pure: identical graph, geometry, and table produce identical
// output on every invocation.
package route
