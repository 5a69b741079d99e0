package centrality

import (
	"sort"

	"github.com/askeland/codegraph/pkg/graph"
	"github.com/askeland/codegraph/pkg/model"
)

const (
	damping    = 0.85
	iterations = 20
	topN       = 10
)

// Compute builds the centrality report: per-node degree counts, an
// approximate betweenness measure, PageRank, and the top-10 rankings
// for each. An empty graph yields an empty report with no records.
func Compute(dg *graph.DependencyGraph) *model.Centrality {
	result := &model.Centrality{
		ByNode:           make(map[string]*model.CentralityRecord),
		TopByDegree:      make([]model.NodeRank, 0),
		TopByPageRank:    make([]model.NodeRank, 0),
		TopByBetweenness: make([]model.NodeRank, 0),
	}
	if dg.Len() == 0 {
		return result
	}

	betweenness := approximateBetweenness(dg)
	ranks := pageRank(dg)

	for _, n := range dg.Nodes() {
		result.ByNode[n.ID] = &model.CentralityRecord{
			InDegree:    n.InDegree,
			OutDegree:   n.OutDegree,
			TotalDegree: n.InDegree + n.OutDegree,
			Betweenness: betweenness[n.ID],
			PageRank:    ranks[n.ID],
		}
	}

	result.TopByDegree = topRanking(dg, func(r *model.CentralityRecord) float64 {
		return float64(r.TotalDegree)
	}, result.ByNode)
	result.TopByPageRank = topRanking(dg, func(r *model.CentralityRecord) float64 {
		return r.PageRank
	}, result.ByNode)
	result.TopByBetweenness = topRanking(dg, func(r *model.CentralityRecord) float64 {
		return r.Betweenness
	}, result.ByNode)

	return result
}

// approximateBetweenness runs one unweighted BFS per source, recording
// the single first-found path to every reachable node, and counts how
// often each node sits in the interior of such a path. Counts are then
// normalized by the maximum count (floor 1, so an edgeless graph stays
// all zero). This is a single-path approximation, not all-shortest-paths
// Brandes betweenness; callers must not assume exactness.
func approximateBetweenness(dg *graph.DependencyGraph) map[string]float64 {
	counts := make(map[string]float64, dg.Len())

	for _, src := range dg.Nodes() {
		parent := make(map[string]string)
		visited := map[string]bool{src.ID: true}
		queue := []string{src.ID}

		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, w := range dg.Successors(u) {
				if visited[w] {
					continue
				}
				visited[w] = true
				parent[w] = u
				queue = append(queue, w)
			}
		}

		// Credit interior nodes of every discovered path longer than
		// two nodes.
		for _, dst := range dg.Nodes() {
			if dst.ID == src.ID {
				continue
			}
			if _, reached := parent[dst.ID]; !reached {
				continue
			}
			for v := parent[dst.ID]; v != src.ID; v = parent[v] {
				counts[v]++
			}
		}
	}

	max := 1.0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}

	normalized := make(map[string]float64, dg.Len())
	for _, n := range dg.Nodes() {
		normalized[n.ID] = counts[n.ID] / max
	}
	return normalized
}

// pageRank runs the classic power iteration for a fixed number of
// rounds with no convergence check, starting every node at 1/n.
// Dangling nodes (out-degree 0) contribute nothing on an iteration, so
// total rank mass leaks below 1 when they exist; that behavior is kept
// as-is rather than redistributing the dangling mass.
func pageRank(dg *graph.DependencyGraph) map[string]float64 {
	n := dg.Len()
	ranks := make(map[string]float64, n)
	if n == 0 {
		return ranks
	}

	incoming := make(map[string][]string, n)
	for _, e := range dg.Edges() {
		incoming[e.Target] = append(incoming[e.Target], e.Source)
	}

	initial := 1.0 / float64(n)
	for _, node := range dg.Nodes() {
		ranks[node.ID] = initial
	}

	base := (1.0 - damping) / float64(n)
	for i := 0; i < iterations; i++ {
		next := make(map[string]float64, n)
		for _, node := range dg.Nodes() {
			sum := 0.0
			for _, u := range incoming[node.ID] {
				if out := dg.Node(u).OutDegree; out > 0 {
					sum += ranks[u] / float64(out)
				}
			}
			next[node.ID] = base + damping*sum
		}
		ranks = next
	}

	return ranks
}

// topRanking sorts all nodes by a metric, descending, and keeps the
// first ten. The sort is stable so ties resolve to input node order.
func topRanking(dg *graph.DependencyGraph, metric func(*model.CentralityRecord) float64, byNode map[string]*model.CentralityRecord) []model.NodeRank {
	ranking := make([]model.NodeRank, 0, dg.Len())
	for _, n := range dg.Nodes() {
		ranking = append(ranking, model.NodeRank{NodeID: n.ID, Score: metric(byNode[n.ID])})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})

	if len(ranking) > topN {
		ranking = ranking[:topN]
	}
	return ranking
}
