package flow

import "testing"

func TestRowLookup(t *testing.T) {
	tests := []struct {
		name  string
		row   Row
		field Field
		want  float64
	}{
		{
			name:  "canonical present",
			row:   Row{"domestic-ore": 100},
			field: Field{Canonical: "domestic-ore", Aliases: []string{"ore-concentrate"}},
			want:  100,
		},
		{
			name:  "canonical wins over alias",
			row:   Row{"domestic-ore": 100, "ore-concentrate": 50},
			field: Field{Canonical: "domestic-ore", Aliases: []string{"ore-concentrate"}},
			want:  100,
		},
		{
			name:  "alias fallback",
			row:   Row{"ore-concentrate": 50},
			field: Field{Canonical: "domestic-ore", Aliases: []string{"ore-concentrate"}},
			want:  50,
		},
		{
			name:  "first present alias wins",
			row:   Row{"b": 2, "c": 3},
			field: Field{Canonical: "a", Aliases: []string{"b", "c"}},
			want:  2,
		},
		{
			name:  "absent is zero",
			row:   Row{},
			field: Field{Canonical: "domestic-ore"},
			want:  0,
		},
		{
			name:  "sign discarded",
			row:   Row{"loss-metal": -3.5},
			field: Field{Canonical: "loss-metal"},
			want:  3.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Lookup(tt.field); got != tt.want {
				t.Errorf("Lookup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowSum(t *testing.T) {
	row := Row{"export-metal": 4, "trade-metal": 6}
	fields := []Field{{Canonical: "export-metal"}, {Canonical: "trade-metal"}}
	if got := row.Sum(fields); got != 10 {
		t.Errorf("Sum() = %v, want 10", got)
	}
}

func TestRowYear(t *testing.T) {
	if got := (Row{"year": 2020}).Year(); got != 2020 {
		t.Errorf("Year() = %d, want 2020", got)
	}
	if got := (Row{}).Year(); got != 0 {
		t.Errorf("Year() on empty row = %d, want 0", got)
	}
}
