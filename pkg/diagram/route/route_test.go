package route

import (
	"testing"

	"github.com/reeflow/reeflow/pkg/flow"
)

// hub returns a graph with one central wide node and three targets spread
// horizontally below it, all links routed out of the hub's bottom edge.
func hub(t *testing.T) *flow.Graph {
	t.Helper()
	g := flow.NewGraph()
	nodes := []*flow.Node{
		{ID: "hub", Rect: flow.Rect{X0: 100, Y0: 100, X1: 300, Y1: 140}},
		{ID: "left", Rect: flow.Rect{X0: 40, Y0: 300, X1: 80, Y1: 400}},
		{ID: "mid", Rect: flow.Rect{X0: 180, Y0: 300, X1: 220, Y1: 400}},
		{ID: "right", Rect: flow.Rect{X0: 330, Y0: 300, X1: 370, Y1: 400}},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, target := range []string{"left", "mid", "right"} {
		if err := g.AddLink(&flow.Link{Source: "hub", Target: target, Value: 10, Width: 20}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestInferSide(t *testing.T) {
	wide := &flow.Node{Rect: flow.Rect{X0: 0, Y0: 0, X1: 200, Y1: 50}}
	tall := &flow.Node{Rect: flow.Rect{X0: 0, Y0: 0, X1: 50, Y1: 200}}
	rotated := &flow.Node{Rect: flow.Rect{X0: 0, Y0: 0, X1: 200, Y1: 50}, Rotated: true}

	tests := []struct {
		name  string
		node  *flow.Node
		other flow.Point
		want  flow.Side
	}{
		{"wide, other below", wide, flow.Point{X: 100, Y: 300}, flow.SideBottom},
		{"wide, other above", wide, flow.Point{X: 100, Y: -300}, flow.SideTop},
		{"tall, other right", tall, flow.Point{X: 300, Y: 100}, flow.SideRight},
		{"tall, other left", tall, flow.Point{X: -300, Y: 100}, flow.SideLeft},
		{"rotated wide behaves tall", rotated, flow.Point{X: 300, Y: 25}, flow.SideRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferSide(tt.node, tt.other); got != tt.want {
				t.Errorf("InferSide() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouteDeterminism(t *testing.T) {
	a := hub(t)
	b := hub(t)
	tbl := Table{}
	tbl.Set(flow.LinkKey("hub", "mid"), EndSource, Placement{Side: flow.SideBottom, Offset: 30})

	Route(a, tbl)
	Route(b, tbl)
	// Re-route the first graph: results must be byte-identical.
	Route(a, tbl)

	for i := range a.Links {
		la, lb := a.Links[i], b.Links[i]
		if la.SourceCoords != lb.SourceCoords || la.TargetCoords != lb.TargetCoords {
			t.Errorf("link %s endpoints differ: %+v/%+v vs %+v/%+v",
				la.Key(), la.SourceCoords, la.TargetCoords, lb.SourceCoords, lb.TargetCoords)
		}
		if la.Path != lb.Path {
			t.Errorf("link %s path differs", la.Key())
		}
	}
}

func TestRouteBucketOrderAndDisjointness(t *testing.T) {
	g := hub(t)
	Route(g, Table{})

	// All three links leave the hub's bottom edge, sorted by their
	// target's center x: left < mid < right.
	var xs []float64
	for _, key := range []string{"hub-left", "hub-mid", "hub-right"} {
		l, ok := g.Link(key)
		if !ok {
			t.Fatalf("link %s missing", key)
		}
		if l.SourceCoords.Side != flow.SideBottom {
			t.Errorf("link %s source side = %q, want bottom", key, l.SourceCoords.Side)
		}
		if l.SourceCoords.Point.Y != 140 {
			t.Errorf("link %s source y = %v, want 140 (bottom edge)", key, l.SourceCoords.Point.Y)
		}
		xs = append(xs, l.SourceCoords.Point.X)
	}
	if !(xs[0] < xs[1] && xs[1] < xs[2]) {
		t.Errorf("bucket order wrong: xs = %v, want ascending", xs)
	}

	// Auto-placed links occupy disjoint [start, start+width) intervals.
	for i := 0; i < len(xs); i++ {
		for j := i + 1; j < len(xs); j++ {
			si, sj := xs[i]-10, xs[j]-10 // width 20, offset is the center
			if si < sj+20 && sj < si+20 {
				t.Errorf("links %d and %d overlap: starts %v, %v", i, j, si, sj)
			}
		}
	}

	// Total occupied length (3×20) is centered on the 200-wide edge:
	// first interval starts at 100 + (200-60)/2 = 170.
	if start := xs[0] - 10; start != 170 {
		t.Errorf("first interval starts at %v, want 170", start)
	}
}

func TestRouteManualOffset(t *testing.T) {
	g := hub(t)
	tbl := Table{}
	tbl.Set("hub-left", EndSource, Placement{Side: flow.SideBottom, Offset: 15})
	Route(g, tbl)

	l, _ := g.Link("hub-left")
	// Offset 15 centers the 20-wide link at edge position 15. Its start
	// (15 - 10) is inside the edge, so no clamping applies.
	if got := l.SourceCoords.Point.X - 100; got != 15 {
		t.Errorf("manual source center at edge offset %v, want 15", got)
	}

	// The automatic links keep their default cursor positions: the
	// cursor advances past the manual link as if it were automatic.
	auto := hub(t)
	Route(auto, Table{})
	for _, key := range []string{"hub-mid", "hub-right"} {
		want, _ := auto.Link(key)
		got, _ := g.Link(key)
		if got.SourceCoords != want.SourceCoords {
			t.Errorf("auto link %s moved when a manual placement was added: %+v vs %+v",
				key, got.SourceCoords, want.SourceCoords)
		}
	}
}

func TestRouteManualOffsetClamped(t *testing.T) {
	g := hub(t)
	tbl := Table{}
	// Far beyond the 200-long edge: clamps to [0, edge-width].
	tbl.Set("hub-left", EndSource, Placement{Side: flow.SideBottom, Offset: 9999})
	Route(g, tbl)

	l, _ := g.Link("hub-left")
	if got := l.SourceCoords.Point.X - 100; got != 190 {
		t.Errorf("clamped center at edge offset %v, want 190 (edge 200 - width 20 + half)", got)
	}

	tbl.Set("hub-left", EndSource, Placement{Side: flow.SideBottom, Offset: -50})
	Route(g, tbl)
	l, _ = g.Link("hub-left")
	if got := l.SourceCoords.Point.X - 100; got != 10 {
		t.Errorf("clamped center at edge offset %v, want 10 (start pinned to 0)", got)
	}
}

func TestRouteManualSideOverride(t *testing.T) {
	g := hub(t)
	tbl := Table{}
	tbl.Set("hub-mid", EndSource, Placement{Side: flow.SideRight, Offset: 20})
	Route(g, tbl)

	l, _ := g.Link("hub-mid")
	if l.SourceCoords.Side != flow.SideRight {
		t.Errorf("source side = %q, want right (manual)", l.SourceCoords.Side)
	}
	if l.SourceCoords.Point.X != 300 {
		t.Errorf("source x = %v, want 300 (right edge)", l.SourceCoords.Point.X)
	}
	if got := l.SourceCoords.Point.Y - 100; got != 20 {
		t.Errorf("source edge offset = %v, want 20", got)
	}
}

func TestCurvePerpendicularExit(t *testing.T) {
	src := flow.Endpoint{Point: flow.Point{X: 100, Y: 100}, Side: flow.SideRight}
	dst := flow.Endpoint{Point: flow.Point{X: 200, Y: 100}, Side: flow.SideLeft}
	p := curve(src, dst)

	// Distance is 100; control points sit half that outward along each
	// side's normal.
	if (p.C1 != flow.Point{X: 150, Y: 100}) {
		t.Errorf("C1 = %+v, want {150 100}", p.C1)
	}
	if (p.C2 != flow.Point{X: 150, Y: 100}) {
		t.Errorf("C2 = %+v, want {150 100}", p.C2)
	}
	if p.Start != src.Point || p.End != dst.Point {
		t.Error("curve endpoints must match the resolved attachment points")
	}
}

func TestTableSetGetClone(t *testing.T) {
	tbl := Table{}
	tbl.Set("a-b", EndSource, Placement{Side: flow.SideTop, Offset: 5})
	tbl.Set("a-b", EndTarget, Placement{Side: flow.SideLeft, Offset: 7})

	if p := tbl.Get("a-b", EndSource); p == nil || p.Offset != 5 {
		t.Fatalf("Get(source) = %+v, want offset 5", p)
	}
	if p := tbl.Get("a-b", EndTarget); p == nil || p.Side != flow.SideLeft {
		t.Fatalf("Get(target) = %+v, want left side", p)
	}
	if p := tbl.Get("missing", EndSource); p != nil {
		t.Errorf("Get(missing) = %+v, want nil", p)
	}

	cp := tbl.Clone()
	cp.Set("a-b", EndSource, Placement{Side: flow.SideBottom, Offset: 99})
	if p := tbl.Get("a-b", EndSource); p.Offset != 5 {
		t.Error("Clone() shares placement storage with original")
	}
}
