package diagram

import (
	"encoding/json"

	"github.com/reeflow/reeflow/pkg/cache"
	"github.com/reeflow/reeflow/pkg/diagram/interact"
	"github.com/reeflow/reeflow/pkg/diagram/layout"
	"github.com/reeflow/reeflow/pkg/diagram/route"
	"github.com/reeflow/reeflow/pkg/flow"
)

// Diagram is an immutable snapshot of one year's fully routed diagram.
// It carries everything a client needs to draw and edit: the graph with
// resolved geometry, the manual placement table, and free-text labels.
type Diagram struct {
	Year    int             `json:"year"`
	Canvas  layout.Size     `json:"canvas"`
	Graph   *flow.Graph     `json:"graph"`
	Offsets route.Table     `json:"offsets"`
	Labels  interact.Labels `json:"labels,omitempty"`
}

// Hash returns the content hash of the snapshot, used to key cached
// render artifacts.
func (d *Diagram) Hash() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
