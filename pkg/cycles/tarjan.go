package cycles

import (
	"github.com/askeland/codegraph/pkg/graph"
)

// TarjanSCC finds all strongly connected components using Tarjan's
// algorithm. The traversal uses an explicit frame stack instead of
// native recursion so that deep dependency chains cannot exhaust the
// call stack. Nodes are visited in input order and neighbors in
// edge-list order, making the output deterministic.
type TarjanSCC struct {
	graph   *graph.DependencyGraph
	index   int
	stack   []string
	onStack map[string]bool
	indices map[string]int
	lowLink map[string]int
	sccs    [][]string
}

// frame is one suspended visit on the explicit traversal stack: a node
// and the position reached in its successor list.
type frame struct {
	node string
	succ []string
	pos  int
}

// NewTarjanSCC creates a new Tarjan SCC finder over the graph.
func NewTarjanSCC(g *graph.DependencyGraph) *TarjanSCC {
	return &TarjanSCC{
		graph:   g,
		stack:   make([]string, 0),
		onStack: make(map[string]bool),
		indices: make(map[string]int),
		lowLink: make(map[string]int),
		sccs:    make([][]string, 0),
	}
}

// FindSCCs returns all strongly connected components with more than one
// member, in discovery order. Each component lists its members starting
// from the first node discovered.
func (t *TarjanSCC) FindSCCs() [][]string {
	for _, n := range t.graph.Nodes() {
		if _, visited := t.indices[n.ID]; !visited {
			t.strongConnect(n.ID)
		}
	}
	return t.sccs
}

// strongConnect runs the traversal from one root using heap-allocated
// frames. Each frame resumes neighbor iteration where it left off when
// control returns from a deeper node.
func (t *TarjanSCC) strongConnect(root string) {
	t.visit(root)
	frames := []frame{{node: root, succ: t.graph.Successors(root)}}

	for len(frames) > 0 {
		f := &frames[len(frames)-1]

		descended := false
		for f.pos < len(f.succ) {
			w := f.succ[f.pos]
			f.pos++

			if _, visited := t.indices[w]; !visited {
				// Unvisited successor: descend.
				t.visit(w)
				frames = append(frames, frame{node: w, succ: t.graph.Successors(w)})
				descended = true
				break
			}
			if t.onStack[w] {
				// Successor is on the stack, hence in the current SCC.
				t.lowLink[f.node] = min(t.lowLink[f.node], t.indices[w])
			}
		}
		if descended {
			continue
		}

		// All successors explored: finalize this node.
		node := f.node
		if t.lowLink[node] == t.indices[node] {
			t.popComponent(node)
		}

		frames = frames[:len(frames)-1]
		if len(frames) > 0 {
			parent := &frames[len(frames)-1]
			t.lowLink[parent.node] = min(t.lowLink[parent.node], t.lowLink[node])
		}
	}
}

// visit assigns the discovery index and pushes the node onto the
// component stack.
func (t *TarjanSCC) visit(node string) {
	t.indices[node] = t.index
	t.lowLink[node] = t.index
	t.index++
	t.stack = append(t.stack, node)
	t.onStack[node] = true
}

// popComponent pops the stack down to the component root. Members are
// reversed so the listing starts at the first-discovered node. Only
// components with more than one node are kept; single-node components
// with a genuine self-loop are added by the caller.
func (t *TarjanSCC) popComponent(root string) {
	scc := make([]string, 0)
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		scc = append(scc, w)
		if w == root {
			break
		}
	}

	if len(scc) > 1 {
		for i, j := 0, len(scc)-1; i < j; i, j = i+1, j-1 {
			scc[i], scc[j] = scc[j], scc[i]
		}
		t.sccs = append(t.sccs, scc)
	}
}
