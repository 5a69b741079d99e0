package model

// Cycle is a strongly connected component reported as a circular
// dependency. Nodes lists member ids in discovery order; NodeLabels
// carries the matching display labels.
type Cycle struct {
	ID         int      `json:"id"`
	Nodes      []string `json:"nodes"`
	NodeLabels []string `json:"nodeLabels"`
	Size       int      `json:"size"`
	Severity   Severity `json:"severity"`
}

// CentralityRecord holds the per-node importance measures.
// Betweenness is a normalized single-path approximation, not exact
// Brandes betweenness; PageRank values sum to 1 only on graphs without
// dangling nodes.
type CentralityRecord struct {
	InDegree    int     `json:"inDegree"`
	OutDegree   int     `json:"outDegree"`
	TotalDegree int     `json:"totalDegree"`
	Betweenness float64 `json:"betweenness"`
	PageRank    float64 `json:"pageRank"`
}

// NodeRank is one entry of a top-N centrality ranking.
type NodeRank struct {
	NodeID string  `json:"nodeId"`
	Score  float64 `json:"score"`
}

// Centrality is the full centrality report.
type Centrality struct {
	ByNode           map[string]*CentralityRecord `json:"byNode"`
	TopByDegree      []NodeRank                   `json:"topByDegree"`
	TopByPageRank    []NodeRank                   `json:"topByPageRank"`
	TopByBetweenness []NodeRank                   `json:"topByBetweenness"`
}

// ClusterMap groups node ids by language and by directory.
type ClusterMap struct {
	ByLanguage      map[string][]string `json:"byLanguage"`
	ByDirectory     map[string][]string `json:"byDirectory"`
	LanguageCounts  map[string]int      `json:"languageCounts"`
	DirectoryCounts map[string]int      `json:"directoryCounts"`
}

// RiskRecord is one flagged node with its accumulated score and the
// human-readable factors that fired. Nodes that score 0 are omitted
// from the risk report entirely.
type RiskRecord struct {
	NodeID      string    `json:"nodeId"`
	RiskScore   int       `json:"riskScore"`
	RiskLevel   RiskLevel `json:"riskLevel"`
	RiskFactors []string  `json:"riskFactors"`
}

// Summary aggregates the headline numbers of one analysis run.
type Summary struct {
	TotalCycles     int `json:"totalCycles"`
	HighRiskCount   int `json:"highRiskCount"`
	MediumRiskCount int `json:"mediumRiskCount"`
	ClusterCount    int `json:"clusterCount"`
}

// Analytics is the complete output of one analysis run. Every field is
// populated even when empty; nothing is null or absent.
type Analytics struct {
	Cycles     []*Cycle      `json:"cycles"`
	Centrality *Centrality   `json:"centrality"`
	Clusters   *ClusterMap   `json:"clusters"`
	Risks      []*RiskRecord `json:"risks"`
	Summary    Summary       `json:"summary"`
}
