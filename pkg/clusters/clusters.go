package clusters

import (
	"github.com/askeland/codegraph/pkg/model"
)

// Compute partitions nodes into two parallel groupings, by language and
// by directory, each with exact member counts. Partition keys carry no
// ordering guarantee; members within a partition keep node input order.
func Compute(nodes []*model.Node) *model.ClusterMap {
	cm := &model.ClusterMap{
		ByLanguage:      make(map[string][]string),
		ByDirectory:     make(map[string][]string),
		LanguageCounts:  make(map[string]int),
		DirectoryCounts: make(map[string]int),
	}

	for _, n := range nodes {
		cm.ByLanguage[n.Language] = append(cm.ByLanguage[n.Language], n.ID)
		cm.LanguageCounts[n.Language]++

		cm.ByDirectory[n.Directory] = append(cm.ByDirectory[n.Directory], n.ID)
		cm.DirectoryCounts[n.Directory]++
	}

	return cm
}

// Count returns the total number of clusters across both groupings.
func Count(cm *model.ClusterMap) int {
	return len(cm.ByLanguage) + len(cm.ByDirectory)
}
