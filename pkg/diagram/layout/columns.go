package layout

import "github.com/reeflow/reeflow/pkg/flow"

// assignColumns computes the topological depth of every node using a
// longest-path traversal (Kahn's algorithm). Each node lands one column
// to the right of its deepest parent, so sources sit in column 0 and
// every link points rightward.
//
// Nodes without any link stay in column 0. Returns ErrCyclicTopology if
// the traversal cannot reach every linked node.
func assignColumns(g *flow.Graph) (map[string]int, error) {
	cols := make(map[string]int, len(g.Nodes))
	inDegree := make(map[string]int, len(g.Nodes))
	queue := make([]string, 0, len(g.Nodes))

	for _, l := range g.Links {
		inDegree[l.Target]++
	}
	for _, n := range g.Nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	processed := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		processed++

		for _, l := range g.Outgoing(curr) {
			if col := cols[curr] + 1; col > cols[l.Target] {
				cols[l.Target] = col
			}
			inDegree[l.Target]--
			if inDegree[l.Target] == 0 {
				queue = append(queue, l.Target)
			}
		}
	}

	if processed < len(g.Nodes) {
		return nil, ErrCyclicTopology
	}
	return cols, nil
}

// maxColumn returns the highest assigned column, or 0 for an empty map.
func maxColumn(cols map[string]int) int {
	max := 0
	for _, c := range cols {
		if c > max {
			max = c
		}
	}
	return max
}
