package analysis

import (
	"github.com/askeland/codegraph/pkg/centrality"
	"github.com/askeland/codegraph/pkg/clusters"
	"github.com/askeland/codegraph/pkg/cycles"
	"github.com/askeland/codegraph/pkg/graph"
	"github.com/askeland/codegraph/pkg/model"
	"github.com/askeland/codegraph/pkg/risk"
)

// Analyze runs the full analytics pipeline over a built graph: cycle
// detection, centrality, clustering, risk scoring, and the summary.
// It is a pure synchronous computation with no shared state, so
// separate calls are safe to run concurrently on different graphs.
// The result is complete and internally consistent; every collection is
// present even when empty.
func Analyze(dg *graph.DependencyGraph) *model.Analytics {
	detected := cycles.DetectCycles(dg)
	cent := centrality.Compute(dg)
	clusterMap := clusters.Compute(dg.Nodes())
	risks := risk.Compute(dg.Nodes(), cent, detected)

	summary := model.Summary{
		TotalCycles:  len(detected),
		ClusterCount: clusters.Count(clusterMap),
	}
	for _, r := range risks {
		switch r.RiskLevel {
		case model.RiskHigh:
			summary.HighRiskCount++
		case model.RiskMedium:
			summary.MediumRiskCount++
		}
	}

	return &model.Analytics{
		Cycles:     detected,
		Centrality: cent,
		Clusters:   clusterMap,
		Risks:      risks,
		Summary:    summary,
	}
}

// AnalyzeRecords builds the graph from file records and analyzes it in
// one step.
func AnalyzeRecords(files []model.FileRecord) (*model.Graph, *model.Analytics, error) {
	dg, err := graph.Build(files)
	if err != nil {
		return nil, nil, err
	}
	return dg.Export(), Analyze(dg), nil
}
