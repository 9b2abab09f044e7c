package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/reeflow/reeflow/pkg/errors"
	"github.com/reeflow/reeflow/pkg/flow"
)

// ReadCSV decodes yearly flow rows from r.
//
// The first record is the header; one column must be named "year"
// (case-insensitive). Every other column becomes a flow field. Cells are
// parsed as float64 kilotonnes, with empty cells treated as zero.
//
// ReadCSV returns an error if:
//   - The CSV is malformed or has ragged records
//   - The year column is missing or a year cell is not an integer
//   - A field name fails validation
//   - Two records carry the same year
//
// ReadCSV does not close r.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	yearCol := -1
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if strings.EqualFold(name, "year") {
			yearCol = i
			continue
		}
		if err := errors.ValidateFieldName(name); err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
	}
	if yearCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidRow, "missing year column")
	}

	var rows []flow.Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[yearCol]))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRow, err, "line %d: bad year %q", line, record[yearCol])
		}

		row := flow.Row{"year": float64(year)}
		for i, cell := range record {
			if i == yearCol {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidRow, err, "line %d, column %s: bad value %q", line, header[i], cell)
			}
			row[header[i]] = v
		}
		rows = append(rows, row)
	}

	return New(rows)
}

// LoadCSV reads a CSV file at path and returns the decoded dataset.
//
// LoadCSV opens the file, decodes it using [ReadCSV], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
