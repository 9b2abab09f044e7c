package route

import (
	"math"
	"sort"

	"github.com/reeflow/reeflow/pkg/flow"
)

// attachment is one link end being routed: the link, which end this is,
// the node it attaches to, the opposing node, and the resolved side.
type attachment struct {
	link  *flow.Link
	end   End
	node  *flow.Node
	other *flow.Node
	side  flow.Side

	// manual is the saved placement for this end, nil for automatic.
	manual *Placement

	// offset is the resolved center position along the edge.
	offset float64
}

// bucketKey groups attachments by node, side, and direction. Every node
// has at most eight buckets: four outgoing sides and four incoming sides.
type bucketKey struct {
	node     string
	side     flow.Side
	outgoing bool
}

// Route resolves every link's endpoint coordinates and path control
// points in place. tbl supplies manual placements; nil means fully
// automatic. The graph's node geometry is read, never written.
func Route(g *flow.Graph, tbl Table) {
	buckets := make(map[bucketKey][]*attachment)
	var order []bucketKey

	for _, l := range g.Links {
		src, okS := g.Node(l.Source)
		dst, okD := g.Node(l.Target)
		if !okS || !okD {
			continue
		}
		for _, a := range []*attachment{
			{link: l, end: EndSource, node: src, other: dst},
			{link: l, end: EndTarget, node: dst, other: src},
		} {
			a.manual = tbl.Get(l.Key(), a.end)
			if a.manual != nil && a.manual.Side.Valid() {
				a.side = a.manual.Side
			} else {
				a.side = InferSide(a.node, a.other.Rect.Center())
			}
			key := bucketKey{node: a.node.ID, side: a.side, outgoing: a.end == EndSource}
			if _, seen := buckets[key]; !seen {
				order = append(order, key)
			}
			buckets[key] = append(buckets[key], a)
		}
	}

	for _, key := range order {
		placeBucket(buckets[key])
	}

	for _, l := range g.Links {
		l.Path = curve(l.SourceCoords, l.TargetCoords)
	}
}

// InferSide picks the attachment side for a node given the opposing
// endpoint's center. Wide nodes attach on top or bottom depending on
// whether the opposing center lies above or below; tall nodes attach on
// left or right by the analogous x comparison. The node's Rotated flag
// participates through [flow.Node.Wide].
func InferSide(n *flow.Node, other flow.Point) flow.Side {
	if n.Wide() {
		if other.Y >= n.Rect.CenterY() {
			return flow.SideBottom
		}
		return flow.SideTop
	}
	if other.X >= n.Rect.CenterX() {
		return flow.SideRight
	}
	return flow.SideLeft
}

// placeBucket assigns an on-edge offset to every attachment sharing one
// (node, side, direction) bucket and projects the resulting endpoint onto
// the node rectangle.
//
// Attachments are sorted by the cross-axis center of their opposing
// endpoint, which minimizes crossings among links fanning out of one
// edge. Automatic attachments are laid end-to-end from a cursor that
// starts centered within the edge; manual attachments take their saved
// offset instead but still advance the cursor, so a manual link can
// overlap its neighbors. That overlap is the user's to resolve while
// editing; the engine never rejects a placement, only clamps it onto the
// edge.
func placeBucket(bucket []*attachment) {
	sort.SliceStable(bucket, func(i, j int) bool {
		a, b := crossAxis(bucket[i]), crossAxis(bucket[j])
		if a != b {
			return a < b
		}
		return bucket[i].link.Key() < bucket[j].link.Key()
	})

	edge := bucket[0].node.EdgeLength(bucket[0].side)

	var total float64
	for _, a := range bucket {
		total += a.link.Width
	}
	cursor := (edge - total) / 2
	if cursor < 0 {
		cursor = 0
	}

	for _, a := range bucket {
		w := a.link.Width
		pos := cursor
		cursor += w

		if a.manual != nil {
			pos = a.manual.Offset - w/2
			if limit := edge - w; pos > limit {
				pos = limit
			}
			if pos < 0 {
				pos = 0
			}
		}

		a.offset = pos + w/2
		project(a)
	}
}

// crossAxis returns the opposing endpoint's coordinate along the bucket's
// edge axis: x for top/bottom edges, y for left/right.
func crossAxis(a *attachment) float64 {
	if a.side.Horizontal() {
		return a.other.Rect.CenterX()
	}
	return a.other.Rect.CenterY()
}

// project converts the attachment's edge offset into a concrete point on
// the node rectangle and stores it on the link.
func project(a *attachment) {
	r := a.node.Rect
	var p flow.Point
	switch a.side {
	case flow.SideTop:
		p = flow.Point{X: r.X0 + a.offset, Y: r.Y0}
	case flow.SideBottom:
		p = flow.Point{X: r.X0 + a.offset, Y: r.Y1}
	case flow.SideLeft:
		p = flow.Point{X: r.X0, Y: r.Y0 + a.offset}
	case flow.SideRight:
		p = flow.Point{X: r.X1, Y: r.Y0 + a.offset}
	}

	ep := flow.Endpoint{Point: p, Side: a.side}
	if a.end == EndSource {
		a.link.SourceCoords = ep
	} else {
		a.link.TargetCoords = ep
	}
}

// normal returns the outward unit vector for a rectangle side.
func normal(s flow.Side) flow.Point {
	switch s {
	case flow.SideTop:
		return flow.Point{Y: -1}
	case flow.SideBottom:
		return flow.Point{Y: 1}
	case flow.SideLeft:
		return flow.Point{X: -1}
	default:
		return flow.Point{X: 1}
	}
}

// curve builds the cubic Bézier between two resolved endpoints. Control
// points project outward from each endpoint along its attachment side by
// half the endpoint distance, so links leave and enter rectangle edges
// perpendicularly regardless of relative node placement.
func curve(src, dst flow.Endpoint) flow.Path {
	dx := dst.Point.X - src.Point.X
	dy := dst.Point.Y - src.Point.Y
	half := math.Hypot(dx, dy) / 2

	ns, nd := normal(src.Side), normal(dst.Side)
	return flow.Path{
		Start: src.Point,
		C1:    flow.Point{X: src.Point.X + ns.X*half, Y: src.Point.Y + ns.Y*half},
		C2:    flow.Point{X: dst.Point.X + nd.X*half, Y: dst.Point.Y + nd.Y*half},
		End:   dst.Point,
	}
}
