package clusters

import (
	"testing"

	"github.com/askeland/codegraph/pkg/model"
)

func TestCompute_Partitions(t *testing.T) {
	nodes := []*model.Node{
		{ID: "src/a.js", Language: "javascript", Directory: "src"},
		{ID: "src/b.ts", Language: "typescript", Directory: "src"},
		{ID: "lib/c.js", Language: "javascript", Directory: "lib"},
	}

	cm := Compute(nodes)

	if cm.LanguageCounts["javascript"] != 2 {
		t.Errorf("Expected 2 javascript files, got %d", cm.LanguageCounts["javascript"])
	}
	if cm.LanguageCounts["typescript"] != 1 {
		t.Errorf("Expected 1 typescript file, got %d", cm.LanguageCounts["typescript"])
	}
	if cm.DirectoryCounts["src"] != 2 {
		t.Errorf("Expected 2 files in src, got %d", cm.DirectoryCounts["src"])
	}
	if cm.DirectoryCounts["lib"] != 1 {
		t.Errorf("Expected 1 file in lib, got %d", cm.DirectoryCounts["lib"])
	}

	if len(cm.ByLanguage["javascript"]) != 2 {
		t.Errorf("Member lists and counts disagree for javascript")
	}
	if cm.ByDirectory["src"][0] != "src/a.js" || cm.ByDirectory["src"][1] != "src/b.ts" {
		t.Errorf("Expected members in input order, got %v", cm.ByDirectory["src"])
	}

	if got := Count(cm); got != 4 {
		t.Errorf("Expected 4 clusters (2 languages + 2 directories), got %d", got)
	}
}

func TestCompute_Empty(t *testing.T) {
	cm := Compute(nil)

	if cm.ByLanguage == nil || cm.ByDirectory == nil || cm.LanguageCounts == nil || cm.DirectoryCounts == nil {
		t.Error("Maps must be present even for empty input")
	}
	if Count(cm) != 0 {
		t.Errorf("Expected 0 clusters, got %d", Count(cm))
	}
}
