// Package pkg provides the core libraries for Reeflow material-flow
// visualization.
//
// # Overview
//
// Reeflow turns yearly rare-earth supply chain data into interactive
// Sankey-style diagrams: nodes are supply chain stages, links are
// material flows in kilotonnes. The pkg directory is organized into
// five main areas:
//
//  1. [flow] - Domain model (stage vocabulary, graph construction)
//  2. [diagram] - The diagram pipeline (layout, routing, overrides, interaction)
//  3. [render] - Output formats (SVG, Graphviz DOT)
//  4. [dataset] - Data input (CSV and JSON readers)
//  5. [cache], [config], [errors], [observability] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through Reeflow:
//
//	CSV/JSON dataset
//	         ↓
//	    [flow] package (build the flow graph for a year)
//	         ↓
//	    [diagram/layout] package (automatic proportional layout)
//	         ↓
//	    [diagram/overrides] package (apply saved manual adjustments)
//	         ↓
//	    [diagram/route] package (attach and curve the links)
//	         ↓
//	    SVG/DOT/JSON output
//
// # Quick Start
//
// Load a dataset and render one year:
//
//	import (
//	    "context"
//	    "github.com/reeflow/reeflow/pkg/dataset"
//	    "github.com/reeflow/reeflow/pkg/diagram"
//	)
//
//	ds, _ := dataset.LoadCSV("flows.csv")
//	session := diagram.NewSession(diagram.Config{Dataset: ds})
//	svg, _ := session.Render(context.Background(), 2022, "svg", "simple")
//
// # Main Packages
//
// [flow] - The fixed supply chain stage vocabulary (ore through
// end-of-life), flow rows with field aliases, and graph construction
// with display flooring for sub-threshold flows.
//
// [diagram] - The Session type, which owns per-year diagram state and
// serializes reads and edits. Subpackages:
//
//   - [diagram/layout]: column-based proportional layout with alignment policies
//   - [diagram/route]: deterministic link attachment and Bézier routing
//   - [diagram/overrides]: manual layout snapshots with file and MongoDB stores
//   - [diagram/interact]: pure node, endpoint, and label edit operations
//
// [render] - SVG rendering with selectable styles and Graphviz DOT
// export for structural inspection.
//
// [dataset] - Year-indexed flow rows parsed from CSV or JSON.
//
// [cache] - Content-addressed artifact caching with file, Redis, and
// null backends.
//
// [config] - TOML application configuration.
//
// [errors] - Structured errors with machine-readable codes, mapped to
// HTTP statuses by the server.
//
// [observability] - Optional hooks for metrics and tracing backends.
//
// [flow]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/flow
// [diagram]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/diagram
// [diagram/layout]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/diagram/layout
// [diagram/route]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/diagram/route
// [diagram/overrides]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/diagram/overrides
// [diagram/interact]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/diagram/interact
// [render]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/render
// [dataset]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/dataset
// [cache]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/cache
// [config]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/config
// [errors]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/errors
// [observability]: https://pkg.go.dev/github.com/reeflow/reeflow/pkg/observability
package pkg
