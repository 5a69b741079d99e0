package model

// Severity classifies a circular dependency by its component size
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RiskLevel classifies a node's accumulated risk score
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Import represents a single import statement extracted from a source file
type Import struct {
	Module     string `json:"module"`     // Import specifier as written (e.g., "./util/math")
	IsRelative bool   `json:"isRelative"` // True for relative imports, false for external packages
}

// FileRecord is the per-file input to the graph builder.
// Produced by the extractor, or supplied directly by an external caller.
type FileRecord struct {
	Path       string   `json:"path"`       // Repo-relative path, unique across the record list
	Language   string   `json:"language"`   // Language name (e.g., "javascript", "python")
	LOC        int      `json:"loc"`        // Non-blank line count
	Complexity int      `json:"complexity"` // Complexity score, >= 1
	Imports    []Import `json:"imports"`    // Imports in source order
}
