package interact

import (
	"github.com/reeflow/reeflow/pkg/diagram/route"
	"github.com/reeflow/reeflow/pkg/errors"
	"github.com/reeflow/reeflow/pkg/flow"
)

// MinNodeSize is the smallest edge length a resize may produce.
const MinNodeSize = 10.0

// DragNode translates a node by (dx, dy), clamped so the rectangle stays
// inside bounds.
func DragNode(g *flow.Graph, id string, dx, dy float64, bounds flow.Rect) error {
	n, ok := g.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q", id)
	}
	n.Rect = n.Rect.Translate(dx, dy).ClampInside(bounds)
	return nil
}

// ResizeNode sets a node's width and height. The top-left corner stays
// fixed; dimensions are floored at [MinNodeSize] and the far corner is
// clamped to bounds.
func ResizeNode(g *flow.Graph, id string, w, h float64, bounds flow.Rect) error {
	n, ok := g.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q", id)
	}
	if w < MinNodeSize {
		w = MinNodeSize
	}
	if h < MinNodeSize {
		h = MinNodeSize
	}
	r := flow.Rect{
		X0: n.Rect.X0,
		Y0: n.Rect.Y0,
		X1: n.Rect.X0 + w,
		Y1: n.Rect.Y0 + h,
	}
	if r.X1 > bounds.X1 {
		r.X1 = bounds.X1
	}
	if r.Y1 > bounds.Y1 {
		r.Y1 = bounds.Y1
	}
	n.Rect = r
	return nil
}

// RotateNode swaps the node rectangle's width and height about its
// center and toggles the Rotated flag, so attachment-side inference
// follows the new visual orientation.
func RotateNode(g *flow.Graph, id string, bounds flow.Rect) error {
	n, ok := g.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q", id)
	}

	cx, cy := n.Rect.CenterX(), n.Rect.CenterY()
	w, h := n.Rect.Width(), n.Rect.Height()
	n.Rect = flow.Rect{
		X0: cx - h/2,
		Y0: cy - w/2,
		X1: cx + h/2,
		Y1: cy + w/2,
	}.ClampInside(bounds)
	n.Rotated = !n.Rotated
	return nil
}

// DragEndpoint re-attaches one end of a link to the position under the
// pointer and records the result as a manual placement.
//
// The side is chosen from the pointer's position relative to the node
// center on the node's orientation axis: a wide node offers its top or
// bottom edge, a tall node its left or right edge. The offset is the
// pointer's coordinate along the chosen edge, clamped to the edge.
func DragEndpoint(g *flow.Graph, tbl route.Table, key string, end route.End, pointer flow.Point) error {
	l, ok := g.Link(key)
	if !ok {
		return errors.New(errors.ErrCodeLinkNotFound, "link %q", key)
	}

	id := l.Source
	if end == route.EndTarget {
		id = l.Target
	}
	n, ok := g.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q", id)
	}

	var side flow.Side
	var offset float64
	if n.Wide() {
		if pointer.Y >= n.Rect.CenterY() {
			side = flow.SideBottom
		} else {
			side = flow.SideTop
		}
		offset = pointer.X - n.Rect.X0
	} else {
		if pointer.X >= n.Rect.CenterX() {
			side = flow.SideRight
		} else {
			side = flow.SideLeft
		}
		offset = pointer.Y - n.Rect.Y0
	}

	if max := n.EdgeLength(side); offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}

	tbl.Set(key, end, route.Placement{Side: side, Offset: offset})
	return nil
}
