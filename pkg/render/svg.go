package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/reeflow/reeflow/pkg/diagram/interact"
	"github.com/reeflow/reeflow/pkg/diagram/layout"
	"github.com/reeflow/reeflow/pkg/flow"
)

// SVGOptions configures Sankey SVG rendering.
type SVGOptions struct {
	// Style selects a named palette; empty means "simple".
	Style string

	// ShowValues draws each link's true magnitude at the curve midpoint.
	ShowValues bool
}

// palette holds the fill and stroke colors for one style.
type palette struct {
	background string
	node       map[flow.Category]string
	link       map[flow.LinkType]string
	text       string
}

var palettes = map[string]palette{
	"simple": {
		background: "#ffffff",
		node: map[flow.Category]string{
			flow.CategoryProcess:   "#4e79a7",
			flow.CategoryTrade:     "#f28e2b",
			flow.CategoryLoss:      "#e15759",
			flow.CategoryEndOfLife: "#76b7b2",
		},
		link: map[flow.LinkType]string{
			flow.LinkDomestic: "#86a8cc",
			flow.LinkTrade:    "#f2b36b",
			flow.LinkLoss:     "#e58e8f",
		},
		text: "#1f2430",
	},
	"dark": {
		background: "#1f2430",
		node: map[flow.Category]string{
			flow.CategoryProcess:   "#7aa2f7",
			flow.CategoryTrade:     "#e0af68",
			flow.CategoryLoss:      "#f7768e",
			flow.CategoryEndOfLife: "#73daca",
		},
		link: map[flow.LinkType]string{
			flow.LinkDomestic: "#566a9e",
			flow.LinkTrade:    "#9e8451",
			flow.LinkLoss:     "#9e5566",
		},
		text: "#c0caf5",
	},
}

// ValidStyles is the set of supported SVG styles.
var ValidStyles = map[string]bool{
	"simple": true,
	"dark":   true,
}

// RenderSVG draws the routed diagram as a standalone SVG document.
// Link paths are stroked with their resolved widths, nodes are filled by
// category, and labels are free-text annotations. Links whose true
// magnitude differs from the layout value (force-visible placeholders)
// are drawn dashed.
func RenderSVG(g *flow.Graph, labels interact.Labels, canvas layout.Size, opts SVGOptions) []byte {
	style := opts.Style
	if style == "" {
		style = "simple"
	}
	pal, ok := palettes[style]
	if !ok {
		pal = palettes["simple"]
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		canvas.W, canvas.H, canvas.W, canvas.H)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", pal.background)

	// Links first so nodes overlap their attachment points.
	for _, l := range g.Links {
		color := pal.link[l.Type]
		dash := ""
		if l.RealValue < l.Value {
			dash = ` stroke-dasharray="6,4"`
		}
		fmt.Fprintf(&buf,
			`  <path d="M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f" fill="none" stroke="%s" stroke-width="%.2f" stroke-opacity="0.65"%s/>`+"\n",
			l.Path.Start.X, l.Path.Start.Y,
			l.Path.C1.X, l.Path.C1.Y,
			l.Path.C2.X, l.Path.C2.Y,
			l.Path.End.X, l.Path.End.Y,
			color, l.Width, dash)

		if opts.ShowValues {
			mx := (l.Path.Start.X + l.Path.End.X) / 2
			my := (l.Path.Start.Y+l.Path.End.Y)/2 - 4
			fmt.Fprintf(&buf,
				`  <text x="%.2f" y="%.2f" font-size="11" text-anchor="middle" fill="%s">%s kt</text>`+"\n",
				mx, my, pal.text, formatValue(l.RealValue))
		}
	}

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf,
			`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" fill="%s"/>`+"\n",
			n.Rect.X0, n.Rect.Y0, n.Rect.Width(), n.Rect.Height(), pal.node[n.Category])
		fmt.Fprintf(&buf,
			`  <text x="%.2f" y="%.2f" font-size="12" text-anchor="middle" dominant-baseline="middle" fill="#ffffff">%s</text>`+"\n",
			n.Rect.CenterX(), n.Rect.CenterY(), escape(n.Name))
	}

	for _, lb := range labels {
		fmt.Fprintf(&buf,
			`  <text x="%.2f" y="%.2f" font-size="12" font-style="italic" fill="%s">%s</text>`+"\n",
			lb.At.X, lb.At.Y, pal.text, escape(lb.Text))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// formatValue prints a kilotonne figure with up to three decimals,
// trimming trailing zeros.
func formatValue(v float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.3f", v), "0")
	return strings.TrimRight(s, ".")
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
