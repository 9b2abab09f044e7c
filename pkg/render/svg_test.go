package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reeflow/reeflow/pkg/diagram/interact"
	"github.com/reeflow/reeflow/pkg/diagram/layout"
	"github.com/reeflow/reeflow/pkg/diagram/route"
	"github.com/reeflow/reeflow/pkg/flow"
)

var canvas = layout.Size{W: 1000, H: 600}

func routedGraph(t *testing.T) *flow.Graph {
	t.Helper()
	g := flow.Build(flow.Row{
		"domestic-ore":         100,
		"domestic-concentrate": 80,
		"loss-concentrate":     5,
	})
	if err := layout.Compute(g, layout.Options{}, canvas, nil); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	route.Route(g, route.Table{})
	return g
}

func TestRenderSVGDeterministic(t *testing.T) {
	g := routedGraph(t)
	a := RenderSVG(g, nil, canvas, SVGOptions{ShowValues: true})
	b := RenderSVG(g, nil, canvas, SVGOptions{ShowValues: true})
	if !bytes.Equal(a, b) {
		t.Error("identical input must produce identical SVG bytes")
	}
}

func TestRenderSVGContent(t *testing.T) {
	g := routedGraph(t)
	labels := interact.Labels{{ID: "x", Text: "estimate < 2023", At: flow.Point{X: 10, Y: 20}}}
	svg := string(RenderSVG(g, labels, canvas, SVGOptions{ShowValues: true}))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing svg root element")
	}
	// Every node in the fixed vocabulary is drawn.
	for _, name := range []string{"Ore", "Concentrate", "Wind turbine", "End of life"} {
		if !strings.Contains(svg, ">"+name+"<") {
			t.Errorf("node %q missing from SVG", name)
		}
	}
	// True magnitudes appear, not floored layout values.
	if !strings.Contains(svg, ">100 kt<") {
		t.Error("link value label missing")
	}
	// Force-visible placeholders (real value 0) are drawn dashed.
	if !strings.Contains(svg, `stroke-dasharray`) {
		t.Error("placeholder links should be dashed")
	}
	// Label text is XML-escaped.
	if !strings.Contains(svg, "estimate &lt; 2023") {
		t.Error("label text not escaped")
	}
}

func TestRenderSVGStyles(t *testing.T) {
	g := routedGraph(t)
	simple := RenderSVG(g, nil, canvas, SVGOptions{Style: "simple"})
	dark := RenderSVG(g, nil, canvas, SVGOptions{Style: "dark"})
	if bytes.Equal(simple, dark) {
		t.Error("styles should differ")
	}
	// Unknown style falls back to simple.
	fallback := RenderSVG(g, nil, canvas, SVGOptions{Style: "bogus"})
	if !bytes.Equal(simple, fallback) {
		t.Error("unknown style should fall back to simple")
	}
}

func TestToDOT(t *testing.T) {
	g := routedGraph(t)
	dot := ToDOT(g, DOTOptions{})

	if !strings.HasPrefix(dot, "digraph flows {") {
		t.Error("missing digraph header")
	}
	if !strings.Contains(dot, `"ore" -> "concentrate"`) {
		t.Error("domestic edge missing")
	}
	// Loss links are dashed.
	if !strings.Contains(dot, `"concentrate" -> "loss" [label="5", style=dashed];`) {
		t.Errorf("loss edge wrong:\n%s", dot)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100"},
		{12.25, "12.25"},
		{0.001, "0.001"},
		{0, "0"},
		{1.5, "1.5"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
