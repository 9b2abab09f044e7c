package overrides

import (
	"testing"

	"github.com/reeflow/reeflow/pkg/diagram/route"
	"github.com/reeflow/reeflow/pkg/flow"
)

func twoNodeGraph(t *testing.T, ids ...string) *flow.Graph {
	t.Helper()
	g := flow.NewGraph()
	for i, id := range ids {
		n := &flow.Node{ID: id, Rect: flow.Rect{X0: float64(i * 100), Y0: 0, X1: float64(i*100 + 50), Y1: 40}}
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i+1 < len(ids); i++ {
		if err := g.AddLink(&flow.Link{Source: ids[i], Target: ids[i+1], Value: 1}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestSnapshotRecordsGraphGeometry(t *testing.T) {
	g := twoNodeGraph(t, "a", "b")
	n, _ := g.Node("a")
	n.Rotated = true

	tbl := route.Table{}
	tbl.Set("a-b", route.EndSource, route.Placement{Side: flow.SideRight, Offset: 12})

	o := Snapshot(nil, g, tbl)
	saved, ok := o.Nodes["a"]
	if !ok || !saved.Rotated || saved.Rect != n.Rect {
		t.Errorf("node a snapshot = %+v (ok=%v), want rect %+v rotated", saved, ok, n.Rect)
	}
	if p := o.Links.Get("a-b", route.EndSource); p == nil || p.Offset != 12 {
		t.Errorf("link placement = %+v, want offset 12", p)
	}
	if o.SavedAt.IsZero() {
		t.Error("SavedAt not stamped")
	}
}

func TestSnapshotRetainsAbsentEntries(t *testing.T) {
	prev := NewOverride()
	prev.Nodes["gone"] = NodeOverride{Rect: flow.Rect{X0: 1, Y0: 2, X1: 3, Y1: 4}}
	prev.Links.Set("gone-away", route.EndTarget, route.Placement{Side: flow.SideTop, Offset: 9})

	g := twoNodeGraph(t, "a", "b")
	o := Snapshot(prev, g, route.Table{})

	if _, ok := o.Nodes["gone"]; !ok {
		t.Error("snapshot pruned an entry for a node absent from the graph")
	}
	if p := o.Links.Get("gone-away", route.EndTarget); p == nil || p.Offset != 9 {
		t.Error("snapshot pruned a placement for a link absent from the graph")
	}
	if _, ok := o.Nodes["a"]; !ok {
		t.Error("current graph node missing from merged snapshot")
	}
}

func TestApplyOverwritesAndIgnoresUnknown(t *testing.T) {
	o := NewOverride()
	o.Nodes["a"] = NodeOverride{Rect: flow.Rect{X0: 5, Y0: 6, X1: 55, Y1: 46}, Rotated: true}
	o.Nodes["phantom"] = NodeOverride{Rect: flow.Rect{X1: 1, Y1: 1}}
	o.Links.Set("a-b", route.EndTarget, route.Placement{Side: flow.SideLeft, Offset: 3})
	o.Links.Set("x-y", route.EndSource, route.Placement{Side: flow.SideTop, Offset: 1})

	g := twoNodeGraph(t, "a", "b")
	tbl := route.Table{}
	Apply(o, g, tbl)

	a, _ := g.Node("a")
	if a.Rect != o.Nodes["a"].Rect || !a.Rotated {
		t.Errorf("node a not overwritten: %+v rotated=%v", a.Rect, a.Rotated)
	}
	if p := tbl.Get("a-b", route.EndTarget); p == nil || p.Side != flow.SideLeft {
		t.Errorf("placement not seeded: %+v", p)
	}
	if p := tbl.Get("x-y", route.EndSource); p != nil {
		t.Error("placement for a link absent from the graph was seeded")
	}

	// Idempotent: a second application changes nothing.
	before := a.Rect
	Apply(o, g, tbl)
	if a.Rect != before {
		t.Error("Apply is not idempotent")
	}
}

func TestApplyNil(t *testing.T) {
	g := twoNodeGraph(t, "a", "b")
	a, _ := g.Node("a")
	before := a.Rect
	Apply(nil, g, route.Table{})
	if a.Rect != before {
		t.Error("Apply(nil) must be a no-op")
	}
}

func TestHasNode(t *testing.T) {
	o := NewOverride()
	o.Nodes["a"] = NodeOverride{}

	if !o.HasNode("a") {
		t.Error("HasNode(a) = false, want true")
	}
	if o.HasNode("b") {
		t.Error("HasNode(b) = true, want false")
	}
	var nilO *Override
	if nilO.HasNode("a") {
		t.Error("nil override must report no nodes")
	}
}
