package graph

import (
	"testing"

	"github.com/askeland/codegraph/pkg/model"
)

func record(path, language string, imports ...model.Import) model.FileRecord {
	return model.FileRecord{
		Path:       path,
		Language:   language,
		LOC:        10,
		Complexity: 1,
		Imports:    imports,
	}
}

func rel(module string) model.Import {
	return model.Import{Module: module, IsRelative: true}
}

func TestBuild_LinearChain(t *testing.T) {
	files := []model.FileRecord{
		record("a.js", "javascript", rel("./b")),
		record("b.js", "javascript", rel("./c")),
		record("c.js", "javascript"),
	}

	dg, err := Build(files)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if dg.Len() != 3 {
		t.Errorf("Expected 3 nodes, got %d", dg.Len())
	}
	if len(dg.Edges()) != 2 {
		t.Fatalf("Expected 2 edges, got %d", len(dg.Edges()))
	}

	a := dg.Node("a.js")
	if a.InDegree != 0 || a.OutDegree != 1 {
		t.Errorf("Expected a.js in=0 out=1, got in=%d out=%d", a.InDegree, a.OutDegree)
	}
	c := dg.Node("c.js")
	if c.InDegree != 1 || c.OutDegree != 0 {
		t.Errorf("Expected c.js in=1 out=0, got in=%d out=%d", c.InDegree, c.OutDegree)
	}
}

func TestBuild_EdgeDeduplication(t *testing.T) {
	// Two imports from a.js resolving to the same file must collapse
	// into one edge.
	files := []model.FileRecord{
		record("a.js", "javascript", rel("./b"), rel("./b.js")),
		record("b.js", "javascript"),
	}

	dg, err := Build(files)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(dg.Edges()) != 1 {
		t.Fatalf("Expected 1 deduplicated edge, got %d", len(dg.Edges()))
	}
	if dg.Node("b.js").InDegree != 1 {
		t.Errorf("Expected b.js inDegree 1, got %d", dg.Node("b.js").InDegree)
	}
}

func TestBuild_ExternalImportsNeverProduceEdges(t *testing.T) {
	// Even a name collision with a real node id must not create an edge
	// when the import is not relative.
	files := []model.FileRecord{
		record("a.js", "javascript",
			model.Import{Module: "b.js", IsRelative: false},
			model.Import{Module: "react", IsRelative: false},
		),
		record("b.js", "javascript"),
	}

	dg, err := Build(files)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(dg.Edges()) != 0 {
		t.Errorf("Expected no edges from external imports, got %d", len(dg.Edges()))
	}
}

func TestBuild_UnresolvableImportDroppedSilently(t *testing.T) {
	files := []model.FileRecord{
		record("a.js", "javascript", rel("./missing"), rel("../outside/tree")),
	}

	dg, err := Build(files)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(dg.Edges()) != 0 {
		t.Errorf("Expected unresolvable imports to be dropped, got %d edges", len(dg.Edges()))
	}
	if dg.Node("a.js").OutDegree != 0 {
		t.Errorf("Expected outDegree 0, got %d", dg.Node("a.js").OutDegree)
	}
}

func TestBuild_ResolutionProbingOrder(t *testing.T) {
	// The literal path wins over extension probing, and extension
	// probing wins over index resolution.
	files := []model.FileRecord{
		record("src/app.js", "javascript", rel("./util"), rel("./helpers")),
		record("src/util.js", "javascript"),
		record("src/util/index.js", "javascript"),
		record("src/helpers/index.ts", "typescript"),
	}

	dg, err := Build(files)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	edges := dg.Edges()
	if len(edges) != 2 {
		t.Fatalf("Expected 2 edges, got %d", len(edges))
	}
	if edges[0].Target != "src/util.js" {
		t.Errorf("Expected extension probe to win over index, resolved to %s", edges[0].Target)
	}
	if edges[1].Target != "src/helpers/index.ts" {
		t.Errorf("Expected index fallback, resolved to %s", edges[1].Target)
	}
}

func TestBuild_ParentDirectoryImport(t *testing.T) {
	files := []model.FileRecord{
		record("src/deep/widget.js", "javascript", rel("../shared")),
		record("src/shared.js", "javascript"),
	}

	dg, err := Build(files)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(dg.Edges()) != 1 || dg.Edges()[0].Target != "src/shared.js" {
		t.Fatalf("Expected edge to src/shared.js, got %+v", dg.Edges())
	}
}

func TestBuild_SelfLoopKept(t *testing.T) {
	files := []model.FileRecord{
		record("a.js", "javascript", rel("./a")),
	}

	dg, err := Build(files)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(dg.Edges()) != 1 {
		t.Fatalf("Expected self-loop edge to survive construction, got %d edges", len(dg.Edges()))
	}
	if !dg.HasEdge("a.js", "a.js") {
		t.Error("Expected HasEdge to report the self-loop")
	}
	a := dg.Node("a.js")
	if a.InDegree != 1 || a.OutDegree != 1 {
		t.Errorf("Expected self-loop to count both degrees, got in=%d out=%d", a.InDegree, a.OutDegree)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	files := []model.FileRecord{
		record("a.py", "python", rel("./b"), rel("./c")),
		record("b.py", "python", rel("./c")),
		record("c.py", "python", rel("./a")),
	}

	first, err := Build(files)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := Build(files)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i := range first.Nodes() {
		if first.Nodes()[i].ID != second.Nodes()[i].ID {
			t.Fatalf("Node order differs at %d: %s vs %s", i, first.Nodes()[i].ID, second.Nodes()[i].ID)
		}
	}
	if len(first.Edges()) != len(second.Edges()) {
		t.Fatalf("Edge counts differ: %d vs %d", len(first.Edges()), len(second.Edges()))
	}
	for i := range first.Edges() {
		if *first.Edges()[i] != *second.Edges()[i] {
			t.Fatalf("Edge order differs at %d", i)
		}
	}

	// Edge order is per source file, in import order.
	if first.Edges()[0].Target != "b.py" || first.Edges()[1].Target != "c.py" {
		t.Errorf("Expected a.py edges in import order, got %+v", first.Edges())
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	dg, err := Build(nil)
	if err != nil {
		t.Fatalf("Build failed on empty input: %v", err)
	}
	if dg.Len() != 0 || len(dg.Edges()) != 0 {
		t.Errorf("Expected empty graph, got %d nodes, %d edges", dg.Len(), len(dg.Edges()))
	}
}

func TestBuild_RejectsMalformedRecord(t *testing.T) {
	files := []model.FileRecord{
		{Path: "a.js", Language: "javascript", LOC: 5, Complexity: 0},
	}
	if _, err := Build(files); err == nil {
		t.Error("Expected error for complexity below baseline")
	}

	files = []model.FileRecord{
		{Path: "", Language: "javascript", LOC: 5, Complexity: 1},
	}
	if _, err := Build(files); err == nil {
		t.Error("Expected error for missing path")
	}
}

func TestBuild_DirectoryDerivation(t *testing.T) {
	files := []model.FileRecord{
		record("src/util/math.js", "javascript"),
		record("top.js", "javascript"),
	}

	dg, err := Build(files)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if dir := dg.Node("src/util/math.js").Directory; dir != "src/util" {
		t.Errorf("Expected directory src/util, got %s", dir)
	}
	if dir := dg.Node("top.js").Directory; dir != "." {
		t.Errorf("Expected top-level directory \".\", got %s", dir)
	}
}
