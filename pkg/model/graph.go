package model

import "path"

// Graph is the dependency graph built from file records.
// It is the common data model for the analytics engine and the
// visualization layer, and is immutable once returned by the builder.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make([]*Node, 0),
		Edges: make([]*Edge, 0),
	}
}

// Node represents a single source file in the dependency graph.
// Degree counts are derived from the deduplicated edge set during
// construction and frozen afterwards.
type Node struct {
	ID         string `json:"id"` // FileRecord.Path, unique key across the graph
	Language   string `json:"language"`
	LOC        int    `json:"loc"`
	Complexity int    `json:"complexity"`
	Directory  string `json:"directory"` // Derived from the path
	InDegree   int    `json:"inDegree"`
	OutDegree  int    `json:"outDegree"`
}

// Edge is a directed import relationship between two files.
// The edge set is a set of unique ordered pairs: multiple imports
// between the same two files collapse to one edge.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Label returns the display label for a node (its base filename).
func (n *Node) Label() string {
	return path.Base(n.ID)
}

// DirectoryOf derives the directory component of a repo-relative path.
// Top-level files map to ".".
func DirectoryOf(p string) string {
	return path.Dir(p)
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
