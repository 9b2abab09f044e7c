package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/reeflow/reeflow/pkg/flow"
)

// ReadJSON decodes an array of yearly flow rows from r.
// Each object must carry a "year" field; all other fields are flow
// values in kilotonnes. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var rows []flow.Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return New(rows)
}

// LoadJSON reads a JSON file at path and returns the decoded dataset.
func LoadJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes the dataset's rows to w in ascending year order.
func WriteJSON(d *Dataset, w io.Writer) error {
	rows := make([]flow.Row, 0, d.Len())
	for _, year := range d.Years() {
		r, err := d.Row(year)
		if err != nil {
			return err
		}
		rows = append(rows, r)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the dataset to a JSON file at path.
func ExportJSON(d *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
