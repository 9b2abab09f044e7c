package overrides

import (
	"time"

	"github.com/reeflow/reeflow/pkg/diagram/route"
	"github.com/reeflow/reeflow/pkg/flow"
)

// NodeOverride is the saved geometry of one node.
type NodeOverride struct {
	Rect    flow.Rect `json:"rect" bson:"rect"`
	Rotated bool      `json:"rotated,omitempty" bson:"rotated,omitempty"`
}

// Override is the saved layout state for a dataset: node geometry keyed
// by node ID and the manual link placement table keyed by link identity.
// Node and link identities are stable across years, so one override
// applies to every year's rebuilt graph. Entries whose node or link is
// missing from a given year's graph are carried along unchanged so they
// reattach when the element returns.
type Override struct {
	Nodes   map[string]NodeOverride `json:"nodes" bson:"nodes"`
	Links   route.Table             `json:"links" bson:"links"`
	SavedAt time.Time               `json:"saved_at" bson:"saved_at"`
}

// NewOverride returns an empty override.
func NewOverride() *Override {
	return &Override{
		Nodes: make(map[string]NodeOverride),
		Links: make(route.Table),
	}
}

// HasNode reports whether the override pins the given node's geometry.
func (o *Override) HasNode(id string) bool {
	if o == nil {
		return false
	}
	_, ok := o.Nodes[id]
	return ok
}

// Snapshot merges the current graph geometry and placement table into
// prev and returns the result. Every node in g and every entry in tbl is
// recorded; entries already in prev that name elements absent from g
// and tbl are retained. prev may be nil.
func Snapshot(prev *Override, g *flow.Graph, tbl route.Table) *Override {
	out := NewOverride()
	if prev != nil {
		for id, n := range prev.Nodes {
			out.Nodes[id] = n
		}
		out.Links = prev.Links.Clone()
	}

	for _, n := range g.Nodes {
		out.Nodes[n.ID] = NodeOverride{Rect: n.Rect, Rotated: n.Rotated}
	}
	for key, ends := range tbl {
		if ends.Source != nil {
			out.Links.Set(key, route.EndSource, *ends.Source)
		}
		if ends.Target != nil {
			out.Links.Set(key, route.EndTarget, *ends.Target)
		}
	}

	out.SavedAt = time.Now().UTC()
	return out
}

// Apply writes the override's node geometry onto matching graph nodes
// and copies saved placements for links present in the graph into tbl.
// Entries naming unknown nodes or links are ignored. Apply is
// idempotent: reapplying the same override changes nothing.
func Apply(o *Override, g *flow.Graph, tbl route.Table) {
	if o == nil {
		return
	}
	for id, saved := range o.Nodes {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		n.Rect = saved.Rect
		n.Rotated = saved.Rotated
	}
	for key, ends := range o.Links {
		if _, ok := g.Link(key); !ok {
			continue
		}
		if ends.Source != nil {
			tbl.Set(key, route.EndSource, *ends.Source)
		}
		if ends.Target != nil {
			tbl.Set(key, route.EndTarget, *ends.Target)
		}
	}
}
