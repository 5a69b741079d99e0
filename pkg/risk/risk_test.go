package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askeland/codegraph/pkg/model"
)

func node(id string, complexity, loc, inDeg, outDeg int) *model.Node {
	return &model.Node{
		ID:         id,
		Language:   "javascript",
		LOC:        loc,
		Complexity: complexity,
		Directory:  ".",
		InDegree:   inDeg,
		OutDegree:  outDeg,
	}
}

func centralityFor(nodes []*model.Node, betweenness map[string]float64) *model.Centrality {
	byNode := make(map[string]*model.CentralityRecord)
	for _, n := range nodes {
		byNode[n.ID] = &model.CentralityRecord{
			InDegree:    n.InDegree,
			OutDegree:   n.OutDegree,
			TotalDegree: n.InDegree + n.OutDegree,
			Betweenness: betweenness[n.ID],
		}
	}
	return &model.Centrality{ByNode: byNode}
}

func TestClassifyLevelBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  model.RiskLevel
	}{
		{24, model.RiskLow},
		{25, model.RiskMedium},
		{49, model.RiskMedium},
		{50, model.RiskHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyLevel(tc.score), "score %d", tc.score)
	}
}

func TestHighComplexityScoresMedium(t *testing.T) {
	// complexity 21, no other factors: exactly +30, which lands in the
	// medium band (>= 25).
	nodes := []*model.Node{node("a.js", 21, 0, 0, 0)}

	records := Compute(nodes, centralityFor(nodes, nil), nil)
	require.Len(t, records, 1)

	assert.Equal(t, 30, records[0].RiskScore)
	assert.Equal(t, model.RiskMedium, records[0].RiskLevel)
	assert.Equal(t, []string{"high complexity"}, records[0].RiskFactors)
}

func TestComplexityTiersAreExclusive(t *testing.T) {
	// complexity 15 fires only the moderate tier.
	nodes := []*model.Node{node("a.js", 15, 0, 0, 0)}

	records := Compute(nodes, centralityFor(nodes, nil), nil)
	require.Len(t, records, 1)
	assert.Equal(t, 15, records[0].RiskScore)
	assert.Equal(t, []string{"moderate complexity"}, records[0].RiskFactors)
}

func TestCouplingAndDependencyTiers(t *testing.T) {
	cases := []struct {
		name    string
		inDeg   int
		outDeg  int
		score   int
		factors []string
	}{
		{"moderate coupling", 4, 0, 10, []string{"moderate coupling"}},
		{"high coupling", 6, 0, 25, []string{"high coupling"}},
		{"many dependencies", 0, 6, 10, []string{"many dependencies"}},
		{"too many dependencies", 0, 9, 20, []string{"too many dependencies"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nodes := []*model.Node{node("a.js", 1, 0, tc.inDeg, tc.outDeg)}
			records := Compute(nodes, centralityFor(nodes, nil), nil)
			require.Len(t, records, 1)
			assert.Equal(t, tc.score, records[0].RiskScore)
			assert.Equal(t, tc.factors, records[0].RiskFactors)
		})
	}
}

func TestGodModuleRule(t *testing.T) {
	// loc=500 with totalDegree 7 fires the god-module rule.
	nodes := []*model.Node{node("big.js", 1, 500, 3, 4)}

	records := Compute(nodes, centralityFor(nodes, nil), nil)
	require.Len(t, records, 1)

	assert.GreaterOrEqual(t, records[0].RiskScore, 25)
	assert.Contains(t, records[0].RiskFactors, "god module")
}

func TestCircularDependencyRule(t *testing.T) {
	nodes := []*model.Node{
		node("a.js", 1, 0, 1, 1),
		node("b.js", 1, 0, 1, 1),
		node("clean.js", 1, 0, 0, 0),
	}
	cycles := []*model.Cycle{{
		ID:    1,
		Nodes: []string{"a.js", "b.js"},
		Size:  2,
	}}

	records := Compute(nodes, centralityFor(nodes, nil), cycles)
	require.Len(t, records, 2)

	for _, r := range records {
		assert.Equal(t, 35, r.RiskScore)
		assert.Equal(t, []string{"circular dependency"}, r.RiskFactors)
	}
}

func TestBottleneckRule(t *testing.T) {
	nodes := []*model.Node{node("mid.js", 1, 0, 0, 0)}
	cent := centralityFor(nodes, map[string]float64{"mid.js": 0.75})

	records := Compute(nodes, cent, nil)
	require.Len(t, records, 1)
	assert.Equal(t, 15, records[0].RiskScore)
	assert.Equal(t, []string{"refactoring bottleneck"}, records[0].RiskFactors)
}

func TestZeroScoreNodesExcluded(t *testing.T) {
	nodes := []*model.Node{
		node("clean.js", 1, 10, 0, 0),
		node("risky.js", 25, 10, 0, 0),
	}

	records := Compute(nodes, centralityFor(nodes, nil), nil)
	require.Len(t, records, 1)
	assert.Equal(t, "risky.js", records[0].NodeID)
}

func TestRecordsSortedByScoreDescending(t *testing.T) {
	nodes := []*model.Node{
		node("mild.js", 12, 0, 0, 0),   // 15
		node("severe.js", 25, 0, 6, 9), // 30 + 25 + 20 = 75
		node("medium.js", 21, 0, 0, 0), // 30
	}

	records := Compute(nodes, centralityFor(nodes, nil), nil)
	require.Len(t, records, 3)

	assert.Equal(t, "severe.js", records[0].NodeID)
	assert.Equal(t, 75, records[0].RiskScore)
	assert.Equal(t, model.RiskHigh, records[0].RiskLevel)
	assert.Equal(t, "medium.js", records[1].NodeID)
	assert.Equal(t, "mild.js", records[2].NodeID)
	assert.Equal(t, model.RiskLow, records[2].RiskLevel)
}
