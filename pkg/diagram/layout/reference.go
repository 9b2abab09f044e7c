package layout

import "github.com/reeflow/reeflow/pkg/flow"

// Nominal canvas the reference coordinates were authored against.
// Rects scale linearly to the actual canvas.
const (
	referenceW = 1000.0
	referenceH = 600.0
)

// referenceRects is the hand-tuned arrangement matching the published
// figure: the domestic process chain runs left to right through the
// middle, export is a thin bar along the top, loss a thin bar along the
// bottom, and end-of-life sits offset to the right.
var referenceRects = map[string]flow.Rect{
	flow.NodeOre:         {X0: 30, Y0: 270, X1: 110, Y1: 330},
	flow.NodeConcentrate: {X0: 170, Y0: 270, X1: 250, Y1: 330},
	flow.NodeMetal:       {X0: 310, Y0: 270, X1: 390, Y1: 330},
	flow.NodeMagnet:      {X0: 450, Y0: 240, X1: 530, Y1: 300},
	flow.NodeOtherSemi:   {X0: 450, Y0: 360, X1: 530, Y1: 420},
	flow.NodeWindTurbine: {X0: 600, Y0: 210, X1: 680, Y1: 270},
	flow.NodeOtherFinal:  {X0: 600, Y0: 350, X1: 680, Y1: 410},
	flow.NodeEOL:         {X0: 760, Y0: 280, X1: 840, Y1: 340},
	flow.NodeExport:      {X0: 60, Y0: 40, X1: 900, Y1: 70},
	flow.NodeLoss:        {X0: 60, Y0: 530, X1: 900, Y1: 560},
}

// FixedReferenceLayout positions nodes at the hand-authored reference
// coordinates. It is the default arrangement: the proportional pass is
// consulted only for value-derived sizing, and any node without a saved
// manual override ends up here.
type FixedReferenceLayout struct{}

// Name implements [Strategy].
func (*FixedReferenceLayout) Name() string { return "reference" }

// Apply implements [Strategy]. Nodes outside the fixed vocabulary keep
// their current geometry.
func (f *FixedReferenceLayout) Apply(g *flow.Graph, _ Options, canvas Size) error {
	if canvas.W <= 0 || canvas.H <= 0 {
		return ErrEmptyCanvas
	}
	for _, n := range g.Nodes {
		if r, ok := f.Rect(n.ID, canvas); ok {
			n.Rect = r
		}
	}
	return nil
}

// Rect returns the reference rectangle for a node, scaled to the canvas.
// ok is false for ids outside the fixed vocabulary.
func (f *FixedReferenceLayout) Rect(id string, canvas Size) (flow.Rect, bool) {
	r, ok := referenceRects[id]
	if !ok {
		return flow.Rect{}, false
	}
	sx := canvas.W / referenceW
	sy := canvas.H / referenceH
	return flow.Rect{X0: r.X0 * sx, Y0: r.Y0 * sy, X1: r.X1 * sx, Y1: r.Y1 * sy}, true
}
