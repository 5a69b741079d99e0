package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/askeland/codegraph/pkg/extractor"
	"github.com/askeland/codegraph/pkg/graph"
	"github.com/askeland/codegraph/pkg/logging"
	"github.com/askeland/codegraph/pkg/web"
)

// Runner orchestrates one workspace analysis at a time: extract file
// records, build the graph, run the analytics, publish the results to
// the web server. Concurrent triggers (watch events, manual refresh)
// serialize behind the mutex.
type Runner struct {
	workspace string
	server    *web.Server
	mu        sync.Mutex
}

// Options configures a single analysis run.
type Options struct {
	Reason string // e.g., "initial analysis", "source changed"
}

// NewRunner creates a new analysis runner for a workspace.
func NewRunner(workspace string, server *web.Server) *Runner {
	return &Runner{
		workspace: workspace,
		server:    server,
	}
}

// Run executes a full analysis pass and publishes progress and results.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logging.InfoContext(ctx, "starting analysis", "reason", opts.Reason, "workspace", r.workspace)

	r.server.PublishAnalysisStatus("extracting", "Scanning source files...", 1, 4)
	records, err := extractor.ScanWorkspace(r.workspace)
	if err != nil {
		r.server.PublishAnalysisStatus("error", fmt.Sprintf("Extraction failed: %v", err), 1, 4)
		return fmt.Errorf("scanning workspace: %w", err)
	}
	logging.InfoContext(ctx, "extraction complete", "files", len(records))

	r.server.PublishAnalysisStatus("building", "Building dependency graph...", 2, 4)
	dg, err := graph.Build(records)
	if err != nil {
		r.server.PublishAnalysisStatus("error", fmt.Sprintf("Graph build failed: %v", err), 2, 4)
		return fmt.Errorf("building graph: %w", err)
	}
	logging.InfoContext(ctx, "graph built", "nodes", dg.Len(), "edges", len(dg.Edges()))

	r.server.PublishAnalysisStatus("analyzing", "Running graph analytics...", 3, 4)
	analytics := Analyze(dg)
	logging.InfoContext(ctx, "analysis complete",
		"cycles", analytics.Summary.TotalCycles,
		"highRisk", analytics.Summary.HighRiskCount,
		"clusters", analytics.Summary.ClusterCount,
	)

	r.server.SetGraph(dg.Export())
	r.server.SetAnalytics(analytics)
	r.server.PublishGraphUpdate("complete", true)
	r.server.PublishAnalysisStatus("ready", "Analysis complete", 4, 4)

	return nil
}
