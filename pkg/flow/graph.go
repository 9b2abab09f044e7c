package flow

import "errors"

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with
	// the same ID already exists. Node IDs are unique per diagram.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownEndpoint is returned by [Graph.AddLink] when the source or
	// target node does not exist in the graph.
	ErrUnknownEndpoint = errors.New("unknown link endpoint")

	// ErrDuplicateLink is returned by [Graph.AddLink] when a link with the
	// same (source, target) pair already exists. Parallel links between
	// the same pair are not part of the model.
	ErrDuplicateLink = errors.New("duplicate link")
)

// Category classifies a node by its role in the material flow.
type Category string

// Node categories.
const (
	CategoryProcess   Category = "process"
	CategoryTrade     Category = "trade"
	CategoryLoss      Category = "loss"
	CategoryEndOfLife Category = "end_of_life"
)

// LinkType classifies a link and drives its rendered color.
type LinkType string

// Link types.
const (
	LinkDomestic LinkType = "domestic"
	LinkTrade    LinkType = "trade"
	LinkLoss     LinkType = "loss"
)

// Node is one stage of the material flow with its rendered extent.
// Identity is the stable string ID from the fixed stage vocabulary.
type Node struct {
	ID       string   `json:"id" bson:"id"`
	Name     string   `json:"name" bson:"name"`
	Category Category `json:"category" bson:"category"`
	Rect     Rect     `json:"rect" bson:"rect"`

	// Rotated swaps the rectangle's orientation semantics for link
	// attachment: a wide rect behaves as a tall one and vice versa.
	Rotated bool `json:"rotated,omitempty" bson:"rotated,omitempty"`
}

// Wide reports the node's effective orientation for attachment-side
// inference: true means links prefer the top/bottom edges. The Rotated
// flag inverts the aspect-ratio test.
func (n *Node) Wide() bool {
	wide := n.Rect.Width() >= n.Rect.Height()
	if n.Rotated {
		wide = !wide
	}
	return wide
}

// EdgeLength returns the physical length of the given rectangle edge.
func (n *Node) EdgeLength(s Side) float64 {
	if s.Horizontal() {
		return n.Rect.Width()
	}
	return n.Rect.Height()
}

// Endpoint is a resolved link attachment: the point on the node edge and
// the side it sits on.
type Endpoint struct {
	Point Point `json:"point" bson:"point"`
	Side  Side  `json:"side" bson:"side"`
}

// Link is a value-weighted directed flow between two nodes.
//
// Value is the magnitude used for layout width and may have been floored
// to the force-visibility minimum; RealValue is always the true magnitude
// and is what labels and tooltips must show.
type Link struct {
	Source    string   `json:"source" bson:"source"`
	Target    string   `json:"target" bson:"target"`
	Value     float64  `json:"value" bson:"value"`
	RealValue float64  `json:"real_value" bson:"real_value"`
	Type      LinkType `json:"type" bson:"type"`

	// Width is the rendered stroke width, resolved by the layout engine
	// from Value and the diagram's value→size scale.
	Width float64 `json:"width,omitempty" bson:"width,omitempty"`

	// Resolved endpoint geometry, filled in by the routing engine.
	SourceCoords Endpoint `json:"source_coords" bson:"source_coords"`
	TargetCoords Endpoint `json:"target_coords" bson:"target_coords"`
	Path         Path     `json:"path" bson:"path"`
}

// Key returns the link's stable identity string, "{source}-{target}".
func (l *Link) Key() string { return LinkKey(l.Source, l.Target) }

// LinkKey builds the identity string for a (source, target) pair.
func LinkKey(source, target string) string { return source + "-" + target }

// Graph is the working node/link graph for one year's row. Node and link
// order is the fixed transition-table order, which keeps downstream layout
// and routing deterministic.
//
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	Nodes []*Node
	Links []*Link

	nodeIndex map[string]*Node
	linkIndex map[string]*Link
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIndex: make(map[string]*Node),
		linkIndex: make(map[string]*Link),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID for an empty ID or ErrDuplicateNodeID if the
// ID is already present.
func (g *Graph) AddNode(n *Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodeIndex[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	g.Nodes = append(g.Nodes, n)
	g.nodeIndex[n.ID] = n
	return nil
}

// AddLink adds a link between two existing nodes.
// Returns ErrUnknownEndpoint if either endpoint is missing, or
// ErrDuplicateLink if the (source, target) pair is already present.
func (g *Graph) AddLink(l *Link) error {
	if _, ok := g.nodeIndex[l.Source]; !ok {
		return ErrUnknownEndpoint
	}
	if _, ok := g.nodeIndex[l.Target]; !ok {
		return ErrUnknownEndpoint
	}
	if _, exists := g.linkIndex[l.Key()]; exists {
		return ErrDuplicateLink
	}
	g.Links = append(g.Links, l)
	g.linkIndex[l.Key()] = l
	return nil
}

// Node returns the node with the given ID, or nil and false if absent.
// The pointer refers to the live node; mutations affect the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodeIndex[id]
	return n, ok
}

// Link returns the link with the given identity key ("{source}-{target}"),
// or nil and false if absent.
func (g *Graph) Link(key string) (*Link, bool) {
	l, ok := g.linkIndex[key]
	return l, ok
}

// Incoming returns the links whose target is the given node, in graph
// order.
func (g *Graph) Incoming(id string) []*Link {
	var links []*Link
	for _, l := range g.Links {
		if l.Target == id {
			links = append(links, l)
		}
	}
	return links
}

// Outgoing returns the links whose source is the given node, in graph
// order.
func (g *Graph) Outgoing(id string) []*Link {
	var links []*Link
	for _, l := range g.Links {
		if l.Source == id {
			links = append(links, l)
		}
	}
	return links
}

// FlowThrough returns the larger of the summed incoming and summed
// outgoing link values at the node. The layout engine sizes the node's
// extent proportionally to this figure.
func (g *Graph) FlowThrough(id string) float64 {
	var in, out float64
	for _, l := range g.Links {
		if l.Target == id {
			in += l.Value
		}
		if l.Source == id {
			out += l.Value
		}
	}
	if in > out {
		return in
	}
	return out
}

// Clone returns a deep copy of the graph. Interaction transitions use
// this to produce a new snapshot instead of mutating in place.
func (g *Graph) Clone() *Graph {
	out := NewGraph()
	for _, n := range g.Nodes {
		cp := *n
		// AddNode cannot fail here: IDs were unique in the source graph.
		_ = out.AddNode(&cp)
	}
	for _, l := range g.Links {
		cp := *l
		_ = out.AddLink(&cp)
	}
	return out
}
