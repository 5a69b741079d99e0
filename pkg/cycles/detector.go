package cycles

import (
	"github.com/askeland/codegraph/pkg/graph"
	"github.com/askeland/codegraph/pkg/model"
)

// DetectCycles finds all circular dependencies in the graph. A cycle is
// a strongly connected component of two or more files, or a single file
// that imports itself after resolution.
func DetectCycles(dg *graph.DependencyGraph) []*model.Cycle {
	tarjan := NewTarjanSCC(dg)
	sccs := tarjan.FindSCCs()

	// Self-loops form 1-member components that Tarjan filters out;
	// re-add them in node order after the multi-node components.
	for _, n := range dg.Nodes() {
		if dg.HasEdge(n.ID, n.ID) && !inAnySCC(sccs, n.ID) {
			sccs = append(sccs, []string{n.ID})
		}
	}

	cycles := make([]*model.Cycle, 0, len(sccs))
	for i, scc := range sccs {
		labels := make([]string, 0, len(scc))
		for _, id := range scc {
			if node := dg.Node(id); node != nil {
				labels = append(labels, node.Label())
			}
		}

		cycles = append(cycles, &model.Cycle{
			ID:         i + 1,
			Nodes:      scc,
			NodeLabels: labels,
			Size:       len(scc),
			Severity:   classifySeverity(len(scc)),
		})
	}

	return cycles
}

// classifySeverity maps component size to severity: 4+ nodes is high,
// exactly 3 is medium, everything smaller is low.
func classifySeverity(size int) model.Severity {
	switch {
	case size >= 4:
		return model.SeverityHigh
	case size == 3:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func inAnySCC(sccs [][]string, id string) bool {
	for _, scc := range sccs {
		for _, member := range scc {
			if member == id {
				return true
			}
		}
	}
	return false
}
