package risk

import (
	"sort"

	"github.com/askeland/codegraph/pkg/model"
)

// ruleContext carries everything a scoring rule may look at for one node.
type ruleContext struct {
	node        *model.Node
	centrality  *model.CentralityRecord
	inCycleSet  bool
	totalDegree int
}

// rule is one declarative scoring check: when the predicate holds, the
// weight is added and the factor recorded. Overlapping thresholds are
// encoded as disjoint predicates so each concern fires at most once per
// node, at the higher tier.
type rule struct {
	applies func(ruleContext) bool
	weight  int
	factor  string
}

var rules = []rule{
	{func(c ruleContext) bool { return c.node.Complexity > 20 }, 30, "high complexity"},
	{func(c ruleContext) bool { return c.node.Complexity > 10 && c.node.Complexity <= 20 }, 15, "moderate complexity"},
	{func(c ruleContext) bool { return c.node.InDegree > 5 }, 25, "high coupling"},
	{func(c ruleContext) bool { return c.node.InDegree > 3 && c.node.InDegree <= 5 }, 10, "moderate coupling"},
	{func(c ruleContext) bool { return c.node.OutDegree > 8 }, 20, "too many dependencies"},
	{func(c ruleContext) bool { return c.node.OutDegree > 5 && c.node.OutDegree <= 8 }, 10, "many dependencies"},
	{func(c ruleContext) bool { return c.inCycleSet }, 35, "circular dependency"},
	{func(c ruleContext) bool { return c.node.LOC > 300 && c.totalDegree > 5 }, 25, "god module"},
	{func(c ruleContext) bool { return c.centrality != nil && c.centrality.Betweenness > 0.5 }, 15, "refactoring bottleneck"},
}

// Compute scores every node against the rule table and returns the
// flagged ones, sorted descending by score. Nodes scoring 0 are left
// out entirely: absence means no flagged risk.
func Compute(nodes []*model.Node, centrality *model.Centrality, cycles []*model.Cycle) []*model.RiskRecord {
	cycleNodes := make(map[string]bool)
	for _, c := range cycles {
		for _, id := range c.Nodes {
			cycleNodes[id] = true
		}
	}

	records := make([]*model.RiskRecord, 0)
	for _, n := range nodes {
		ctx := ruleContext{
			node:        n,
			inCycleSet:  cycleNodes[n.ID],
			totalDegree: n.InDegree + n.OutDegree,
		}
		if centrality != nil {
			ctx.centrality = centrality.ByNode[n.ID]
		}

		score := 0
		factors := make([]string, 0)
		for _, r := range rules {
			if r.applies(ctx) {
				score += r.weight
				factors = append(factors, r.factor)
			}
		}
		if score == 0 {
			continue
		}

		records = append(records, &model.RiskRecord{
			NodeID:      n.ID,
			RiskScore:   score,
			RiskLevel:   classifyLevel(score),
			RiskFactors: factors,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RiskScore > records[j].RiskScore
	})

	return records
}

// classifyLevel maps a score to its level: 50 and up is high, 25 and up
// is medium, everything below is low.
func classifyLevel(score int) model.RiskLevel {
	switch {
	case score >= 50:
		return model.RiskHigh
	case score >= 25:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
