// Package dataset loads yearly material-flow data for diagram building.
//
// # Overview
//
// A dataset is a series of yearly rows, each mapping flow field names to
// masses in kilotonnes. The package reads two formats:
//
//   - CSV: one row per year, one column per flow field
//   - JSON: an array of row objects
//
// # CSV Format
//
// The first record is the header. One column must be named "year"
// (case-insensitive); every other column is a flow field whose cells are
// parsed as floating-point kilotonnes. Empty cells mean zero:
//
//	year,domestic-ore,domestic-concentrate,export-concentrate
//	2022,120.5,95.0,12.25
//	2023,131.0,,14.0
//
// # JSON Format
//
// A JSON array of objects, each carrying a "year" field plus flow
// fields:
//
//	[
//	  {"year": 2022, "domestic-ore": 120.5, "domestic-concentrate": 95.0},
//	  {"year": 2023, "domestic-ore": 131.0}
//	]
//
// # Import
//
// Use [LoadCSV] or [LoadJSON] to read from a file path, or [ReadCSV] and
// [ReadJSON] to read from any io.Reader. All functions validate field
// names and reject duplicate years. The returned [Dataset] is independent
// of the reader and safe for concurrent reads.
package dataset
