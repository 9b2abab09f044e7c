package flow

import (
	"encoding/json"
	"fmt"
)

// graphJSON is the wire form of a graph.
type graphJSON struct {
	Nodes []*Node `json:"nodes"`
	Links []*Link `json:"links"`
}

// MarshalJSON encodes the graph as {"nodes": [...], "links": [...]} in
// graph order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphJSON{Nodes: g.Nodes, Links: g.Links})
}

// UnmarshalJSON decodes a graph and rebuilds its lookup indexes. The
// input is validated with the same rules as [Graph.AddNode] and
// [Graph.AddLink].
func (g *Graph) UnmarshalJSON(data []byte) error {
	var wire graphJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*g = *NewGraph()
	for _, n := range wire.Nodes {
		if err := g.AddNode(n); err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, l := range wire.Links {
		if err := g.AddLink(l); err != nil {
			return fmt.Errorf("link %s: %w", l.Key(), err)
		}
	}
	return nil
}
