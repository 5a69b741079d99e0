package graph

import (
	"github.com/askeland/codegraph/pkg/model"
	"gonum.org/v1/gonum/graph/simple"
)

// DependencyGraph is the file-level dependency graph. A gonum directed
// graph provides the id space and O(1) edge-existence checks; ordered
// node and edge slices are carried alongside so that output order is
// deterministic (input order for nodes, first-seen order for edges),
// which gonum's map-backed iteration does not guarantee.
type DependencyGraph struct {
	graph  *simple.DirectedGraph
	ids    map[string]int64 // node id -> gonum id
	nodes  []*model.Node    // input order
	byID   map[string]*model.Node
	edges  []*model.Edge       // first-seen order
	out    map[string][]string // successors, edge-list order
	selfs  map[string]bool     // self-loop sources; simple graphs reject self edges
	nextID int64
}

// NewDependencyGraph creates a new empty dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		graph: simple.NewDirectedGraph(),
		ids:   make(map[string]int64),
		nodes: make([]*model.Node, 0),
		byID:  make(map[string]*model.Node),
		edges: make([]*model.Edge, 0),
		out:   make(map[string][]string),
		selfs: make(map[string]bool),
	}
}

// addNode registers a node under its id. Duplicate ids are ignored.
func (dg *DependencyGraph) addNode(n *model.Node) {
	if _, exists := dg.byID[n.ID]; exists {
		return
	}

	dg.byID[n.ID] = n
	dg.nodes = append(dg.nodes, n)
	dg.ids[n.ID] = dg.nextID
	dg.graph.AddNode(simple.Node(dg.nextID))
	dg.nextID++
}

// addEdge records a directed edge between two existing nodes,
// collapsing duplicates. Self-loops are kept (they matter for cycle
// detection) but tracked outside the gonum graph, which rejects them.
func (dg *DependencyGraph) addEdge(source, target string) {
	if source == target {
		if dg.selfs[source] {
			return
		}
		dg.selfs[source] = true
	} else {
		sourceID, targetID := dg.ids[source], dg.ids[target]
		if dg.graph.HasEdgeFromTo(sourceID, targetID) {
			return
		}
		dg.graph.SetEdge(dg.graph.NewEdge(dg.graph.Node(sourceID), dg.graph.Node(targetID)))
	}

	dg.edges = append(dg.edges, &model.Edge{Source: source, Target: target})
	dg.out[source] = append(dg.out[source], target)
}

// Node returns the node with the given id, or nil.
func (dg *DependencyGraph) Node(id string) *model.Node {
	return dg.byID[id]
}

// Nodes returns all nodes in input order.
func (dg *DependencyGraph) Nodes() []*model.Node {
	return dg.nodes
}

// Edges returns all deduplicated edges in first-seen order.
func (dg *DependencyGraph) Edges() []*model.Edge {
	return dg.edges
}

// Successors returns the targets of a node's outgoing edges in
// edge-list order.
func (dg *DependencyGraph) Successors(id string) []string {
	return dg.out[id]
}

// HasEdge reports whether the directed edge source->target exists.
func (dg *DependencyGraph) HasEdge(source, target string) bool {
	if source == target {
		return dg.selfs[source]
	}
	sourceID, ok := dg.ids[source]
	if !ok {
		return false
	}
	targetID, ok := dg.ids[target]
	if !ok {
		return false
	}
	return dg.graph.HasEdgeFromTo(sourceID, targetID)
}

// Len returns the number of nodes.
func (dg *DependencyGraph) Len() int {
	return len(dg.nodes)
}

// Directed returns the underlying gonum graph (self-loops excluded).
func (dg *DependencyGraph) Directed() *simple.DirectedGraph {
	return dg.graph
}

// Export returns the graph as its plain serializable form.
func (dg *DependencyGraph) Export() *model.Graph {
	return &model.Graph{Nodes: dg.nodes, Edges: dg.edges}
}
