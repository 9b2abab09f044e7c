package layout

import (
	"errors"
	"fmt"

	"github.com/reeflow/reeflow/pkg/flow"
)

var (
	// ErrCyclicTopology is returned when column assignment cannot finish
	// because the link topology contains a cycle. The caller keeps the
	// previous working graph in that case.
	ErrCyclicTopology = errors.New("flow topology contains a cycle")

	// ErrEmptyCanvas is returned for a canvas with a non-positive extent.
	ErrEmptyCanvas = errors.New("canvas must have positive width and height")
)

// Align selects the horizontal band policy of the proportional layout.
type Align string

// Alignment policies.
const (
	AlignJustify Align = "justify"
	AlignLeft    Align = "left"
	AlignRight   Align = "right"
	AlignCenter  Align = "center"
)

// Valid reports whether a is a recognized alignment policy.
func (a Align) Valid() bool {
	switch a {
	case AlignJustify, AlignLeft, AlignRight, AlignCenter:
		return true
	}
	return false
}

// Size is the drawing canvas extent in pixels.
type Size struct {
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// Bounds returns the canvas as a rectangle anchored at the origin.
func (s Size) Bounds() flow.Rect { return flow.Rect{X1: s.W, Y1: s.H} }

// Options configures the proportional layout pass.
type Options struct {
	// NodeWidth is the horizontal extent of process nodes in pixels.
	NodeWidth float64

	// NodePadding is the vertical gap between stacked nodes in a column.
	NodePadding float64

	// FlowScale compresses the vertical extent the layout may use,
	// 0 < FlowScale <= 1. The compressed band is centered in the canvas,
	// leaving symmetric top and bottom margins.
	FlowScale float64

	// Align is the horizontal band policy for columns.
	Align Align
}

// Defaults for unset options.
const (
	DefaultNodeWidth   = 80.0
	DefaultNodePadding = 24.0
	DefaultFlowScale   = 0.85
)

// withDefaults fills zero-valued fields.
func (o Options) withDefaults() Options {
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodePadding <= 0 {
		o.NodePadding = DefaultNodePadding
	}
	if o.FlowScale <= 0 || o.FlowScale > 1 {
		o.FlowScale = DefaultFlowScale
	}
	if !o.Align.Valid() {
		o.Align = AlignJustify
	}
	return o
}

// Strategy positions every node of the graph on the canvas.
// Implementations must be pure: identical inputs yield identical geometry.
type Strategy interface {
	// Name identifies the strategy in logs and errors.
	Name() string

	// Apply positions g's nodes in place.
	Apply(g *flow.Graph, opts Options, canvas Size) error
}

// Compute runs the full automatic layout: the proportional pass for
// value-derived sizing and link widths, then the fixed reference
// arrangement for every node without a saved manual override.
//
// hasOverride reports whether a node has persisted manual geometry; nil
// means no overrides. Compute is idempotent for identical inputs.
func Compute(g *flow.Graph, opts Options, canvas Size, hasOverride func(id string) bool) error {
	opts = opts.withDefaults()

	prop := &ProportionalFlowLayout{}
	if err := prop.Apply(g, opts, canvas); err != nil {
		return fmt.Errorf("%s: %w", prop.Name(), err)
	}

	ref := &FixedReferenceLayout{}
	for _, n := range g.Nodes {
		if hasOverride != nil && hasOverride(n.ID) {
			continue
		}
		if r, ok := ref.Rect(n.ID, canvas); ok {
			n.Rect = r
			n.Rotated = false
		}
	}
	return nil
}
