package extractor

import (
	"regexp"
	"strings"

	"github.com/askeland/codegraph/pkg/model"
)

// Import statement patterns per language family. These are filename
// heuristics over source text, not semantic resolution; that tradeoff
// is deliberate and shared with the graph builder's silent-drop policy.
var (
	jsImportRe  = regexp.MustCompile(`import\s+(?:[\w{}\s,*$]+\s+from\s+)?['"]([^'"]+)['"]`)
	jsRequireRe = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
	jsExportRe  = regexp.MustCompile(`export\s+[\w{}\s,*]+\s+from\s+['"]([^'"]+)['"]`)

	pyImportRe = regexp.MustCompile(`(?m)^\s*import\s+([\w\.]+)`)
	pyFromRe   = regexp.MustCompile(`(?m)^\s*from\s+(\.*[\w\.]*)\s+import\s`)

	goImportRe = regexp.MustCompile(`(?m)^\s*(?:import\s+)?(?:\w+\s+|\.\s+|_\s+)?"([^"]+)"`)
	goBlockRe  = regexp.MustCompile(`(?s)import\s*\((.*?)\)`)
	goSingleRe = regexp.MustCompile(`import\s+(?:\w+\s+|\.\s+|_\s+)?"([^"]+)"`)
)

// extractImports pulls import specifiers out of source text,
// preserving source order within each pattern pass.
func extractImports(language, src string) []model.Import {
	switch language {
	case "javascript", "typescript":
		return jsImports(src)
	case "python":
		return pyImports(src)
	case "go":
		return goImports(src)
	default:
		return []model.Import{}
	}
}

func jsImports(src string) []model.Import {
	imports := make([]model.Import, 0)
	for _, re := range []*regexp.Regexp{jsImportRe, jsRequireRe, jsExportRe} {
		for _, m := range re.FindAllStringSubmatch(src, -1) {
			spec := m[1]
			imports = append(imports, model.Import{
				Module:     spec,
				IsRelative: strings.HasPrefix(spec, "."),
			})
		}
	}
	return imports
}

// pyImports handles both plain and from-imports. Relative from-imports
// (leading dots) are rewritten to path form so the builder's relative
// resolution applies: "from .util.math import f" becomes "./util/math".
func pyImports(src string) []model.Import {
	imports := make([]model.Import, 0)

	for _, m := range pyImportRe.FindAllStringSubmatch(src, -1) {
		imports = append(imports, model.Import{Module: m[1], IsRelative: false})
	}

	for _, m := range pyFromRe.FindAllStringSubmatch(src, -1) {
		spec := m[1]
		dots := 0
		for dots < len(spec) && spec[dots] == '.' {
			dots++
		}
		if dots == 0 {
			imports = append(imports, model.Import{Module: spec, IsRelative: false})
			continue
		}

		rest := strings.ReplaceAll(spec[dots:], ".", "/")
		prefix := "./"
		if dots > 1 {
			prefix = strings.Repeat("../", dots-1)
		}
		module := strings.TrimSuffix(prefix+rest, "/")
		imports = append(imports, model.Import{Module: module, IsRelative: true})
	}

	return imports
}

// goImports records package paths from single imports and import
// blocks. Go has no relative imports, so none produce graph edges, but
// the specifiers still feed external-dependency listings.
func goImports(src string) []model.Import {
	imports := make([]model.Import, 0)

	for _, block := range goBlockRe.FindAllStringSubmatch(src, -1) {
		for _, m := range goImportRe.FindAllStringSubmatch(block[1], -1) {
			imports = append(imports, model.Import{Module: m[1], IsRelative: false})
		}
	}
	for _, m := range goSingleRe.FindAllStringSubmatch(src, -1) {
		imports = append(imports, model.Import{Module: m[1], IsRelative: false})
	}

	return imports
}
