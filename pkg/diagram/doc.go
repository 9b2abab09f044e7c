// Package diagram ties the pipeline together: it builds the yearly flow
// graph, computes layout, applies saved overrides, routes links, and
// serves consistent snapshots to the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline for one year runs build → layout → apply → route:
//
//  1. Build: map the year's data row to the fixed node vocabulary and
//     its visible links
//  2. Layout: compute node rectangles and link widths
//  3. Apply: overwrite geometry with the year's saved override
//  4. Route: resolve link endpoint coordinates and Bézier paths
//
// A [Session] owns the per-year state and serializes all access: reads
// get immutable [Diagram] snapshots, edits run on a private clone and
// swap in atomically, and a failed rebuild leaves the previous state
// visible.
package diagram
