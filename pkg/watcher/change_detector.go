package watcher

// ChangeAnalysis describes what a change batch means for re-analysis.
type ChangeAnalysis struct {
	Reason       string
	ChangedFiles []string
}

// AnalyzeChanges turns a debounced change event into a re-analysis
// request. Every change re-runs the full extract-build-analyze pass;
// extraction is cheap next to the analytics, so there is no partial
// path. The classification survives as the run reason for logs and
// status events.
func AnalyzeChanges(event ChangeEvent) *ChangeAnalysis {
	analysis := &ChangeAnalysis{
		ChangedFiles: event.Paths,
	}

	switch event.Type {
	case ChangeTypeLayout:
		analysis.Reason = "directory layout changed"
	case ChangeTypeSource:
		analysis.Reason = "source files changed"
	default:
		analysis.Reason = "workspace changed"
	}

	return analysis
}
