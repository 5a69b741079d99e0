package extractor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/askeland/codegraph/pkg/model"
)

// languageByExt maps supported source extensions to language names.
var languageByExt = map[string]string{
	".js":  "javascript",
	".jsx": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
	".py":  "python",
	".go":  "go",
}

// skipDirs are directory names never descended into during a scan.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
}

// ScanWorkspace walks the workspace and extracts a file record for
// every supported source file. Paths in the returned records are
// repo-relative with forward slashes, and the list follows the walk's
// lexical order, so repeated scans of an unchanged tree are identical.
func ScanWorkspace(root string) ([]model.FileRecord, error) {
	records := make([]model.FileRecord, 0)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		lang, ok := languageByExt[filepath.Ext(path)]
		if !ok {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		records = append(records, ExtractRecord(filepath.ToSlash(rel), lang, content))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking workspace %s: %w", root, err)
	}

	return records, nil
}

// ExtractRecord builds the file record for one source file: non-blank
// line count, a branch-density complexity score, and the extracted
// import list in source order.
func ExtractRecord(relPath, language string, content []byte) model.FileRecord {
	src := string(content)

	return model.FileRecord{
		Path:       relPath,
		Language:   language,
		LOC:        countLines(src),
		Complexity: estimateComplexity(src),
		Imports:    extractImports(language, src),
	}
}

// countLines counts non-blank lines.
func countLines(src string) int {
	count := 0
	for _, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
