package dataset

import (
	"sort"

	"github.com/reeflow/reeflow/pkg/errors"
	"github.com/reeflow/reeflow/pkg/flow"
)

// Dataset is an immutable collection of yearly flow rows.
type Dataset struct {
	rows map[int]flow.Row
}

// New builds a dataset from rows. Each row must carry a valid "year"
// field; duplicate years are rejected.
func New(rows []flow.Row) (*Dataset, error) {
	ds := &Dataset{rows: make(map[int]flow.Row, len(rows))}
	for _, r := range rows {
		year := r.Year()
		if err := errors.ValidateYear(year); err != nil {
			return nil, err
		}
		if _, dup := ds.rows[year]; dup {
			return nil, errors.New(errors.ErrCodeInvalidRow, "duplicate year: %d", year)
		}
		ds.rows[year] = r
	}
	return ds, nil
}

// Years returns the dataset's years in ascending order.
func (d *Dataset) Years() []int {
	years := make([]int, 0, len(d.rows))
	for y := range d.rows {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Row returns the flow row for a year.
// Returns a YEAR_NOT_FOUND error for years absent from the dataset.
func (d *Dataset) Row(year int) (flow.Row, error) {
	r, ok := d.rows[year]
	if !ok {
		return nil, errors.New(errors.ErrCodeYearNotFound, "no data for year %d", year)
	}
	return r, nil
}

// Len returns the number of years in the dataset.
func (d *Dataset) Len() int { return len(d.rows) }
