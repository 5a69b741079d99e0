package graph

import (
	"fmt"
	"path"
	"strings"

	"github.com/askeland/codegraph/pkg/model"
)

// sourceExtensions is the fixed probing order for extension-less import
// resolution. An import "./util/math" matches util/math.js before
// util/math.ts, and a directory import falls back to its index file.
var sourceExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".py", ".go"}

// Build constructs the dependency graph from an ordered list of file
// records: one node per record, one edge per resolved relative import.
// Imports that resolve to no known file are dropped silently; external
// packages and genuinely broken imports are indistinguishable without a
// resolution oracle. The whole call fails on a malformed record.
func Build(files []model.FileRecord) (*DependencyGraph, error) {
	dg := NewDependencyGraph()

	// Lookup from every path, and that path stripped of its extension,
	// to the node id. First record wins on a stripped-key collision.
	lookup := make(map[string]string, len(files)*2)

	for i, f := range files {
		if err := validateRecord(f); err != nil {
			return nil, fmt.Errorf("file record %d (%q): %w", i, f.Path, err)
		}

		dg.addNode(&model.Node{
			ID:         f.Path,
			Language:   f.Language,
			LOC:        f.LOC,
			Complexity: f.Complexity,
			Directory:  model.DirectoryOf(f.Path),
		})

		if _, exists := lookup[f.Path]; !exists {
			lookup[f.Path] = f.Path
		}
		if stripped := strings.TrimSuffix(f.Path, path.Ext(f.Path)); stripped != f.Path {
			if _, exists := lookup[stripped]; !exists {
				lookup[stripped] = f.Path
			}
		}
	}

	// Edges in input order: per source file, in import order.
	for _, f := range files {
		for _, imp := range f.Imports {
			if !imp.IsRelative {
				continue
			}
			target, ok := resolve(lookup, f.Path, imp.Module)
			if !ok {
				continue
			}
			dg.addEdge(f.Path, target)
		}
	}

	// Final pass: degrees from the deduplicated edge set.
	for _, e := range dg.edges {
		dg.byID[e.Source].OutDegree++
		dg.byID[e.Target].InDegree++
	}

	return dg, nil
}

// resolve maps a relative import specifier to a node id by probing, in
// fixed priority order: the specifier as given, the specifier with each
// source extension appended, then the specifier's index file under each
// extension. The first match wins.
func resolve(lookup map[string]string, importer, specifier string) (string, bool) {
	candidate := path.Clean(path.Join(path.Dir(importer), specifier))

	if id, ok := lookup[candidate]; ok {
		return id, true
	}
	for _, ext := range sourceExtensions {
		if id, ok := lookup[candidate+ext]; ok {
			return id, true
		}
	}
	for _, ext := range sourceExtensions {
		if id, ok := lookup[candidate+"/index"+ext]; ok {
			return id, true
		}
	}
	return "", false
}

func validateRecord(f model.FileRecord) error {
	if f.Path == "" {
		return fmt.Errorf("missing path")
	}
	if f.LOC < 0 {
		return fmt.Errorf("negative loc %d", f.LOC)
	}
	if f.Complexity < 1 {
		return fmt.Errorf("complexity %d below baseline", f.Complexity)
	}
	return nil
}
