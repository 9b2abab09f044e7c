package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reeflow/reeflow/pkg/errors"
	"github.com/reeflow/reeflow/pkg/flow"
)

const sampleCSV = `year,domestic-ore,domestic-concentrate,export-concentrate
2022,120.5,95.0,12.25
2023,131.0,,14.0
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}

	if got := ds.Years(); len(got) != 2 || got[0] != 2022 || got[1] != 2023 {
		t.Errorf("Years() = %v, want [2022 2023]", got)
	}

	row, err := ds.Row(2022)
	if err != nil {
		t.Fatalf("Row(2022) error: %v", err)
	}
	if v := row.Lookup(flow.Field{Canonical: "domestic-ore"}); v != 120.5 {
		t.Errorf("domestic-ore = %v, want 120.5", v)
	}
	if row.Year() != 2022 {
		t.Errorf("Year() = %d, want 2022", row.Year())
	}

	// Empty cell means zero.
	row, _ = ds.Row(2023)
	if v := row.Lookup(flow.Field{Canonical: "domestic-concentrate"}); v != 0 {
		t.Errorf("empty cell = %v, want 0", v)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		code errors.Code
	}{
		{
			name: "missing year column",
			csv:  "domestic-ore\n12.5\n",
			code: errors.ErrCodeInvalidRow,
		},
		{
			name: "bad year cell",
			csv:  "year,domestic-ore\nabc,12.5\n",
			code: errors.ErrCodeInvalidRow,
		},
		{
			name: "bad value cell",
			csv:  "year,domestic-ore\n2022,not-a-number\n",
			code: errors.ErrCodeInvalidRow,
		},
		{
			name: "duplicate year",
			csv:  "year,domestic-ore\n2022,1\n2022,2\n",
			code: errors.ErrCodeInvalidRow,
		},
		{
			name: "year out of range",
			csv:  "year,domestic-ore\n10,1\n",
			code: errors.ErrCodeInvalidYear,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.csv))
			if err == nil {
				t.Fatal("ReadCSV() = nil error, want failure")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestRowNotFound(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ds.Row(1990); !errors.Is(err, errors.ErrCodeYearNotFound) {
		t.Errorf("Row(absent) code = %v, want YEAR_NOT_FOUND", errors.GetCode(err))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(ds, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if back.Len() != ds.Len() {
		t.Fatalf("round trip lost years: %d vs %d", back.Len(), ds.Len())
	}
	row, _ := back.Row(2022)
	if v := row.Lookup(flow.Field{Canonical: "export-concentrate"}); v != 12.25 {
		t.Errorf("export-concentrate = %v, want 12.25", v)
	}
}
