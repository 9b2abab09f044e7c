package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/reeflow/reeflow/pkg/flow"
)

// DOTOptions configures node-link DOT export.
type DOTOptions struct {
	// Detailed includes categories and flow magnitudes in labels.
	// When false, only the stage name is shown.
	Detailed bool
}

// ToDOT converts the flow graph to Graphviz DOT format for a schematic
// node-link view of the topology. The result can be rendered with
// [DOTToSVG] or fed to external Graphviz tooling.
//
// Loss and trade links are drawn dashed to separate them visually from
// the domestic process chain.
func ToDOT(g *flow.Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph flows {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		label := n.Name
		if opts.Detailed {
			label = fmt.Sprintf("%s\n%s\n%s kt", n.Name, n.Category, formatValue(g.FlowThrough(n.ID)))
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, label)
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		attrs := fmt.Sprintf("label=%q", formatValue(l.RealValue))
		if l.Type != flow.LinkDomestic {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.Source, l.Target, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// DOTToSVG renders a DOT graph to SVG using Graphviz.
func DOTToSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
