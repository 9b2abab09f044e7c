package flow

import "math"

// Row is one year's record of flow volumes in kilotonnes, keyed by field
// name. Rows come from an external tabular loader; the builder only needs
// lookup by the fixed field vocabulary and treats missing keys as zero.
type Row map[string]float64

// Field names one logical flow column. Canonical is the preferred name;
// Aliases are backward-compatibility column names consulted only when the
// canonical field is absent. Values are magnitudes: sign is discarded.
type Field struct {
	Canonical string
	Aliases   []string
}

// Lookup resolves the field against the row. The canonical name wins when
// present; otherwise the first present alias is used. Absent fields are
// zero, and negative values are folded to their magnitude.
func (r Row) Lookup(f Field) float64 {
	if v, ok := r[f.Canonical]; ok {
		return math.Abs(v)
	}
	for _, alias := range f.Aliases {
		if v, ok := r[alias]; ok {
			return math.Abs(v)
		}
	}
	return 0
}

// Sum resolves several independent contribution fields and adds them.
// This is how historical "trade" and "export" columns for the same stage
// combine into a single link value.
func (r Row) Sum(fields []Field) float64 {
	var total float64
	for _, f := range fields {
		total += r.Lookup(f)
	}
	return total
}

// Year returns the row's year column, or 0 if absent.
func (r Row) Year() int {
	return int(r["year"])
}
