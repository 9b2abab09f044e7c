package flow

// Stage node IDs. The builder emits exactly this vocabulary for every row,
// whether or not the row carries flow for a stage.
const (
	NodeOre         = "ore"
	NodeConcentrate = "concentrate"
	NodeMetal       = "metal"
	NodeMagnet      = "magnet"
	NodeOtherSemi   = "other_semi"
	NodeWindTurbine = "wind_turbine"
	NodeOtherFinal  = "other_final"
	NodeLoss        = "loss"
	NodeExport      = "export"
	NodeEOL         = "eol"
)

const (
	// Epsilon is the near-zero threshold below which a flow is treated as
	// absent unless the transition is force-visible.
	Epsilon = 0.001

	// DisplayFloor is the minimum layout value for force-visible links.
	// RealValue keeps the true magnitude; only Value is floored, so the
	// link stays visible without lying in labels.
	DisplayFloor = 0.25
)

// nodeDef declares one entry of the fixed stage vocabulary.
type nodeDef struct {
	id       string
	name     string
	category Category
}

// nodeDefs lists the ten stages in diagram order.
var nodeDefs = []nodeDef{
	{NodeOre, "Ore", CategoryProcess},
	{NodeConcentrate, "Concentrate", CategoryProcess},
	{NodeMetal, "Metal", CategoryProcess},
	{NodeMagnet, "Magnet", CategoryProcess},
	{NodeOtherSemi, "Other semi-finished", CategoryProcess},
	{NodeWindTurbine, "Wind turbine", CategoryProcess},
	{NodeOtherFinal, "Other final products", CategoryProcess},
	{NodeExport, "Export", CategoryTrade},
	{NodeLoss, "Loss", CategoryLoss},
	{NodeEOL, "End of life", CategoryEndOfLife},
}

// Transition declares one domain flow: the node pair, the link type, and
// the row fields that contribute to it. Fields are independent
// contributions and sum; each field resolves canonical-then-alias.
type Transition struct {
	From, To     string
	Type         LinkType
	Fields       []Field
	ForceVisible bool
}

// Value computes the transition's true magnitude from the row.
func (t Transition) Value(r Row) float64 { return r.Sum(t.Fields) }

// Transitions is the fixed domain topology: the domestic process chain,
// per-stage exports aggregated into the single export node, per-stage
// losses aggregated into the loss node, and the end-of-life flows.
//
// End-of-life outflows and end-of-life loss are force-visible so the
// stage stays present in the diagram even in years with no reported flow.
var Transitions = []Transition{
	// Domestic process chain.
	{From: NodeOre, To: NodeConcentrate, Type: LinkDomestic,
		Fields: []Field{{Canonical: "domestic-ore", Aliases: []string{"ore-concentrate"}}}},
	{From: NodeConcentrate, To: NodeMetal, Type: LinkDomestic,
		Fields: []Field{{Canonical: "domestic-concentrate", Aliases: []string{"concentrate-metal"}}}},
	{From: NodeMetal, To: NodeMagnet, Type: LinkDomestic,
		Fields: []Field{{Canonical: "domestic-metal", Aliases: []string{"metal-magnet"}}}},
	{From: NodeMetal, To: NodeOtherSemi, Type: LinkDomestic,
		Fields: []Field{{Canonical: "domestic-other-semi", Aliases: []string{"metal-other-semi"}}}},
	{From: NodeMagnet, To: NodeWindTurbine, Type: LinkDomestic,
		Fields: []Field{{Canonical: "domestic-magnet-wind", Aliases: []string{"magnet-wind-turbine"}}}},
	{From: NodeMagnet, To: NodeOtherFinal, Type: LinkDomestic,
		Fields: []Field{{Canonical: "domestic-magnet-other", Aliases: []string{"magnet-other-final"}}}},
	{From: NodeOtherSemi, To: NodeOtherFinal, Type: LinkDomestic,
		Fields: []Field{{Canonical: "other-semi-final"}}},

	// End-of-life inflows and loss; always shown.
	{From: NodeWindTurbine, To: NodeEOL, Type: LinkDomestic, ForceVisible: true,
		Fields: []Field{{Canonical: "wind-turbine-outflow", Aliases: []string{"Wind Turbine outflow"}}}},
	{From: NodeOtherFinal, To: NodeEOL, Type: LinkDomestic, ForceVisible: true,
		Fields: []Field{{Canonical: "other-final-outflow", Aliases: []string{"Other Final outflow"}}}},
	{From: NodeEOL, To: NodeLoss, Type: LinkLoss, ForceVisible: true,
		Fields: []Field{{Canonical: "loss-eol", Aliases: []string{"eol-loss"}}}},

	// Exports, one link per originating stage. Historical datasets carried
	// separate "trade" and "export" columns for the same stage; both count.
	{From: NodeOre, To: NodeExport, Type: LinkTrade,
		Fields: []Field{{Canonical: "export-ore"}, {Canonical: "trade-ore"}}},
	{From: NodeConcentrate, To: NodeExport, Type: LinkTrade,
		Fields: []Field{{Canonical: "export-concentrate"}, {Canonical: "trade-concentrate"}}},
	{From: NodeMetal, To: NodeExport, Type: LinkTrade,
		Fields: []Field{{Canonical: "export-metal"}, {Canonical: "trade-metal"}}},
	{From: NodeMagnet, To: NodeExport, Type: LinkTrade,
		Fields: []Field{{Canonical: "export-magnet"}, {Canonical: "trade-magnet"}}},
	{From: NodeEOL, To: NodeExport, Type: LinkTrade,
		Fields: []Field{{Canonical: "export-eol"}, {Canonical: "trade-eol"}}},

	// Losses, aggregated into the single loss node.
	{From: NodeConcentrate, To: NodeLoss, Type: LinkLoss,
		Fields: []Field{{Canonical: "loss-concentrate", Aliases: []string{"concentrate-loss"}}}},
	{From: NodeMetal, To: NodeLoss, Type: LinkLoss,
		Fields: []Field{{Canonical: "loss-metal", Aliases: []string{"metal-loss"}}}},
	{From: NodeMagnet, To: NodeLoss, Type: LinkLoss,
		Fields: []Field{{Canonical: "loss-magnet", Aliases: []string{"magnet-loss"}}}},
}

// Build maps one input row to the working graph: the full ten-node
// vocabulary plus one link per transition whose magnitude clears Epsilon
// or which is force-visible.
//
// Build never fails: absent fields default to zero, so a malformed or
// empty row still yields all fixed nodes with few or no visible links.
func Build(row Row) *Graph {
	g := NewGraph()
	for _, def := range nodeDefs {
		// The vocabulary is static and unique; AddNode cannot fail.
		_ = g.AddNode(&Node{ID: def.id, Name: def.name, Category: def.category})
	}

	for _, t := range Transitions {
		real := t.Value(row)
		if real <= Epsilon && !t.ForceVisible {
			continue
		}
		value := real
		if t.ForceVisible && value < DisplayFloor {
			value = DisplayFloor
		}
		_ = g.AddLink(&Link{
			Source:    t.From,
			Target:    t.To,
			Value:     value,
			RealValue: real,
			Type:      t.Type,
		})
	}
	return g
}
