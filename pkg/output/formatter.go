package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/askeland/codegraph/pkg/model"
)

// PrintReport prints a colorized console report of one analysis run:
// graph size, circular dependencies, flagged risks, and the top files
// by PageRank.
func PrintReport(workspace string, g *model.Graph, a *model.Analytics) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Println("codegraph - Dependency Analysis Report")
	bold.Println("======================================")
	fmt.Printf("Workspace: %s\n", workspace)
	fmt.Printf("Files: %d, internal dependencies: %d, clusters: %d\n",
		len(g.Nodes), len(g.Edges), a.Summary.ClusterCount)
	fmt.Println()

	if a.Summary.TotalCycles == 0 {
		green.Println("No circular dependencies found")
	} else {
		red.Printf("CIRCULAR DEPENDENCIES: %d\n", a.Summary.TotalCycles)
		for _, c := range a.Cycles {
			severityColor(c.Severity).Printf("  [%s] ", strings.ToUpper(string(c.Severity)))
			fmt.Printf("%s (%d files)\n", strings.Join(c.NodeLabels, " -> "), c.Size)
		}
	}
	fmt.Println()

	if len(a.Risks) == 0 {
		green.Println("No risk factors flagged")
	} else {
		yellow.Printf("FLAGGED FILES: %d (high: %d, medium: %d)\n",
			len(a.Risks), a.Summary.HighRiskCount, a.Summary.MediumRiskCount)
		for _, r := range a.Risks {
			levelColor(r.RiskLevel).Printf("  [%-6s] ", strings.ToUpper(string(r.RiskLevel)))
			fmt.Printf("%s (score %d)\n", r.NodeID, r.RiskScore)
			cyan.Printf("           %s\n", strings.Join(r.RiskFactors, ", "))
		}
	}
	fmt.Println()

	if len(a.Centrality.TopByPageRank) > 0 {
		bold.Println("Most important files (PageRank):")
		for i, rank := range a.Centrality.TopByPageRank {
			fmt.Printf("  %2d. %s (%.4f)\n", i+1, rank.NodeID, rank.Score)
		}
	}
}

func severityColor(s model.Severity) *color.Color {
	switch s {
	case model.SeverityHigh:
		return color.New(color.FgRed)
	case model.SeverityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func levelColor(l model.RiskLevel) *color.Color {
	switch l {
	case model.RiskHigh:
		return color.New(color.FgRed)
	case model.RiskMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
