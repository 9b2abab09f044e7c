package layout

import "github.com/reeflow/reeflow/pkg/flow"

// minNodeHeight keeps zero-flow nodes from collapsing to invisible slivers.
const minNodeHeight = 1.0

// ProportionalFlowLayout is the generic column-based flow layout. Columns
// follow topological depth, the horizontal band follows the Align policy,
// and each node's vertical extent is proportional to the flow through it,
// compressed by FlowScale and centered in the canvas.
//
// The pass also resolves the diagram's value→size scale and writes every
// link's rendered width (Value × scale).
type ProportionalFlowLayout struct{}

// Name implements [Strategy].
func (*ProportionalFlowLayout) Name() string { return "proportional" }

// Apply implements [Strategy].
func (p *ProportionalFlowLayout) Apply(g *flow.Graph, opts Options, canvas Size) error {
	opts = opts.withDefaults()
	if canvas.W <= 0 || canvas.H <= 0 {
		return ErrEmptyCanvas
	}

	cols, err := assignColumns(g)
	if err != nil {
		return err
	}
	ncols := maxColumn(cols) + 1

	byCol := make([][]*flow.Node, ncols)
	for _, n := range g.Nodes {
		c := cols[n.ID]
		byCol[c] = append(byCol[c], n)
	}

	scale := p.resolveScale(g, opts, canvas, byCol)

	for c, nodes := range byCol {
		x := columnX(c, ncols, opts, canvas)

		total := float64(len(nodes)-1) * opts.NodePadding
		heights := make([]float64, len(nodes))
		for i, n := range nodes {
			h := g.FlowThrough(n.ID) * scale
			if h < minNodeHeight {
				h = minNodeHeight
			}
			heights[i] = h
			total += h
		}

		y := (canvas.H - total) / 2
		if y < 0 {
			y = 0
		}
		for i, n := range nodes {
			n.Rect = flow.Rect{X0: x, Y0: y, X1: x + opts.NodeWidth, Y1: y + heights[i]}
			y += heights[i] + opts.NodePadding
		}
	}

	for _, l := range g.Links {
		l.Width = l.Value * scale
	}
	return nil
}

// resolveScale picks the largest value→pixel factor that fits every
// column's flow plus padding into the FlowScale-compressed band.
func (p *ProportionalFlowLayout) resolveScale(g *flow.Graph, opts Options, canvas Size, byCol [][]*flow.Node) float64 {
	avail := canvas.H * opts.FlowScale

	scale := 0.0
	first := true
	for _, nodes := range byCol {
		var sum float64
		for _, n := range nodes {
			sum += g.FlowThrough(n.ID)
		}
		if sum <= 0 {
			continue
		}
		usable := avail - float64(len(nodes)-1)*opts.NodePadding
		if usable < minNodeHeight {
			usable = minNodeHeight
		}
		if s := usable / sum; first || s < scale {
			scale = s
			first = false
		}
	}
	return scale
}

// columnX returns the left edge of the given column under the alignment
// policy. Columns are indexed left to right; span is the travel available
// to a node of NodeWidth.
func columnX(c, ncols int, opts Options, canvas Size) float64 {
	span := canvas.W - opts.NodeWidth
	if span < 0 {
		span = 0
	}
	if ncols <= 1 {
		return span / 2
	}

	step := 2 * opts.NodeWidth
	switch opts.Align {
	case AlignLeft:
		x := float64(c) * step
		if x > span {
			x = span
		}
		return x
	case AlignRight:
		x := span - float64(ncols-1-c)*step
		if x < 0 {
			x = 0
		}
		return x
	case AlignCenter:
		band := float64(ncols-1) * step
		start := (span - band) / 2
		if start < 0 {
			start = 0
		}
		x := start + float64(c)*step
		if x > span {
			x = span
		}
		return x
	default: // AlignJustify spreads columns across the full width.
		return float64(c) * span / float64(ncols-1)
	}
}
