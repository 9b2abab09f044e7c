package layout

import (
	"errors"
	"testing"

	"github.com/reeflow/reeflow/pkg/flow"
)

var testCanvas = Size{W: 1000, H: 600}

func buildTestGraph(t *testing.T) *flow.Graph {
	t.Helper()
	return flow.Build(flow.Row{
		"domestic-ore":         100,
		"domestic-concentrate": 80,
		"domestic-metal":       50,
		"export-concentrate":   15,
		"loss-metal":           10,
	})
}

func TestAssignColumns(t *testing.T) {
	g := buildTestGraph(t)
	cols, err := assignColumns(g)
	if err != nil {
		t.Fatalf("assignColumns() error: %v", err)
	}

	tests := []struct {
		id   string
		want int
	}{
		{flow.NodeOre, 0},
		{flow.NodeConcentrate, 1},
		{flow.NodeMetal, 2},
		// Loss receives flow from metal (col 2) and eol; it lands one
		// column past its deepest parent.
		{flow.NodeExport, 2},
	}
	for _, tt := range tests {
		if got := cols[tt.id]; got != tt.want {
			t.Errorf("column(%s) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestAssignColumnsCycle(t *testing.T) {
	g := flow.NewGraph()
	for _, id := range []string{"a", "b"} {
		if err := g.AddNode(&flow.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	_ = g.AddLink(&flow.Link{Source: "a", Target: "b", Value: 1})
	_ = g.AddLink(&flow.Link{Source: "b", Target: "a", Value: 1})

	if _, err := assignColumns(g); !errors.Is(err, ErrCyclicTopology) {
		t.Errorf("assignColumns(cycle) = %v, want ErrCyclicTopology", err)
	}
}

func TestProportionalHeights(t *testing.T) {
	g := buildTestGraph(t)
	prop := &ProportionalFlowLayout{}
	opts := Options{NodeWidth: 60, NodePadding: 20, FlowScale: 0.8, Align: AlignJustify}
	if err := prop.Apply(g, opts, testCanvas); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	// Flow through ore is 100 (outgoing); through metal it is 80
	// (incoming 80 vs outgoing 60). Heights share one scale.
	ore, _ := g.Node(flow.NodeOre)
	metal, _ := g.Node(flow.NodeMetal)
	if ore.Rect.Height() <= metal.Rect.Height() {
		t.Errorf("ore height %v should exceed metal height %v (flow 100 vs 80)",
			ore.Rect.Height(), metal.Rect.Height())
	}

	ratio := ore.Rect.Height() / metal.Rect.Height()
	want := 100.0 / 80.0
	if diff := ratio - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("height ratio = %v, want %v", ratio, want)
	}
}

func TestProportionalLinkWidths(t *testing.T) {
	g := buildTestGraph(t)
	prop := &ProportionalFlowLayout{}
	if err := prop.Apply(g, Options{}, testCanvas); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	big, _ := g.Link(flow.LinkKey(flow.NodeOre, flow.NodeConcentrate))
	small, _ := g.Link(flow.LinkKey(flow.NodeMetal, flow.NodeLoss))
	if big.Width <= 0 || small.Width <= 0 {
		t.Fatalf("link widths not resolved: %v, %v", big.Width, small.Width)
	}
	ratio := big.Width / small.Width
	if diff := ratio - 10; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("width ratio = %v, want 10 (values 100 vs 10)", ratio)
	}
}

func TestProportionalFlowScaleCentering(t *testing.T) {
	g := buildTestGraph(t)
	prop := &ProportionalFlowLayout{}
	opts := Options{NodeWidth: 60, NodePadding: 10, FlowScale: 0.5, Align: AlignJustify}
	if err := prop.Apply(g, opts, testCanvas); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	// Each column stack is centered: the margin above the first node of
	// column 0 equals the margin below its last node. In graph order the
	// column-0 stack runs ore → other_final.
	first, _ := g.Node(flow.NodeOre)
	last, _ := g.Node(flow.NodeOtherFinal)
	top := first.Rect.Y0
	bottom := testCanvas.H - last.Rect.Y1
	if diff := top - bottom; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("column margins not symmetric: top %v, bottom %v", top, bottom)
	}
}

func TestColumnXAlignPolicies(t *testing.T) {
	opts := Options{NodeWidth: 100, NodePadding: 10, FlowScale: 1}.withDefaults()
	canvas := Size{W: 1000, H: 600}
	const ncols = 3

	tests := []struct {
		name  string
		align Align
		col   int
		want  float64
	}{
		{"justify first", AlignJustify, 0, 0},
		{"justify last", AlignJustify, 2, 900},
		{"left first", AlignLeft, 0, 0},
		{"left second", AlignLeft, 1, 200},
		{"right last", AlignRight, 2, 900},
		{"right second", AlignRight, 1, 700},
		{"center middle", AlignCenter, 1, 450},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := opts
			o.Align = tt.align
			if got := columnX(tt.col, ncols, o, canvas); got != tt.want {
				t.Errorf("columnX(%d, %s) = %v, want %v", tt.col, tt.align, got, tt.want)
			}
		})
	}
}

func TestFixedReferenceRectScaling(t *testing.T) {
	ref := &FixedReferenceLayout{}

	r, ok := ref.Rect(flow.NodeOre, Size{W: 500, H: 300})
	if !ok {
		t.Fatal("Rect(ore) not found")
	}
	// Nominal ore rect is (30,270)-(110,330) on a 1000x600 canvas.
	want := flow.Rect{X0: 15, Y0: 135, X1: 55, Y1: 165}
	if r != want {
		t.Errorf("Rect(ore) = %+v, want %+v", r, want)
	}

	if _, ok := ref.Rect("unknown", testCanvas); ok {
		t.Error("Rect(unknown) should report not found")
	}
}

func TestComputeDefaultsToReference(t *testing.T) {
	g := buildTestGraph(t)
	if err := Compute(g, Options{}, testCanvas, nil); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	ref := &FixedReferenceLayout{}
	for _, n := range g.Nodes {
		want, _ := ref.Rect(n.ID, testCanvas)
		if n.Rect != want {
			t.Errorf("node %s rect = %+v, want reference %+v", n.ID, n.Rect, want)
		}
	}
}

func TestComputeSkipsOverriddenNodes(t *testing.T) {
	g := buildTestGraph(t)
	hasOverride := func(id string) bool { return id == flow.NodeOre }
	if err := Compute(g, Options{}, testCanvas, hasOverride); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	ref := &FixedReferenceLayout{}
	ore, _ := g.Node(flow.NodeOre)
	refRect, _ := ref.Rect(flow.NodeOre, testCanvas)
	if ore.Rect == refRect {
		t.Error("overridden node should keep proportional geometry, not the reference rect")
	}

	conc, _ := g.Node(flow.NodeConcentrate)
	want, _ := ref.Rect(flow.NodeConcentrate, testCanvas)
	if conc.Rect != want {
		t.Errorf("non-overridden node rect = %+v, want reference %+v", conc.Rect, want)
	}
}

func TestComputeIdempotent(t *testing.T) {
	a := buildTestGraph(t)
	b := buildTestGraph(t)
	for _, g := range []*flow.Graph{a, b} {
		if err := Compute(g, Options{}, testCanvas, nil); err != nil {
			t.Fatalf("Compute() error: %v", err)
		}
	}
	// Run the first graph a second time; geometry must not drift.
	if err := Compute(a, Options{}, testCanvas, nil); err != nil {
		t.Fatalf("Compute() second run error: %v", err)
	}

	for i := range a.Nodes {
		if a.Nodes[i].Rect != b.Nodes[i].Rect {
			t.Errorf("node %s rect drifted: %+v vs %+v", a.Nodes[i].ID, a.Nodes[i].Rect, b.Nodes[i].Rect)
		}
	}
	for i := range a.Links {
		if a.Links[i].Width != b.Links[i].Width {
			t.Errorf("link %s width drifted: %v vs %v", a.Links[i].Key(), a.Links[i].Width, b.Links[i].Width)
		}
	}
}

func TestComputeEmptyCanvas(t *testing.T) {
	g := buildTestGraph(t)
	if err := Compute(g, Options{}, Size{}, nil); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("Compute(empty canvas) = %v, want ErrEmptyCanvas", err)
	}
}
