package route

import "github.com/reeflow/reeflow/pkg/flow"

// End selects one end of a link.
type End int

// Link ends.
const (
	EndSource End = iota
	EndTarget
)

// String returns "source" or "target".
func (e End) String() string {
	if e == EndTarget {
		return "target"
	}
	return "source"
}

// Placement is a manual attachment for one link end: the side of the node
// rectangle and the offset of the link's center along that edge, in
// pixels from the edge's origin (left end for top/bottom, top end for
// left/right).
type Placement struct {
	Side   flow.Side `json:"side" bson:"side"`
	Offset float64   `json:"offset" bson:"offset"`
}

// Ends holds the optional manual placements of a link's two ends.
// A nil end means the side and offset are inferred automatically.
type Ends struct {
	Source *Placement `json:"source,omitempty" bson:"source,omitempty"`
	Target *Placement `json:"target,omitempty" bson:"target,omitempty"`
}

// IsZero reports whether neither end has a manual placement.
func (e Ends) IsZero() bool { return e.Source == nil && e.Target == nil }

// Table maps a link identity key ("{source}-{target}") to its manual end
// placements. The table is the single source of truth for endpoint edits:
// the interaction layer writes it, the routing engine reads it, and the
// override store snapshots it.
type Table map[string]Ends

// Get returns the manual placement for one end of a link, or nil.
func (t Table) Get(key string, end End) *Placement {
	e, ok := t[key]
	if !ok {
		return nil
	}
	if end == EndSource {
		return e.Source
	}
	return e.Target
}

// Set records a manual placement for one end of a link, leaving the
// other end untouched.
func (t Table) Set(key string, end End, p Placement) {
	e := t[key]
	cp := p
	if end == EndSource {
		e.Source = &cp
	} else {
		e.Target = &cp
	}
	t[key] = e
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for key, e := range t {
		var cp Ends
		if e.Source != nil {
			s := *e.Source
			cp.Source = &s
		}
		if e.Target != nil {
			tgt := *e.Target
			cp.Target = &tgt
		}
		out[key] = cp
	}
	return out
}
