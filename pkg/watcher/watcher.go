package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/askeland/codegraph/pkg/logging"
)

// ChangeType classifies a batch of file system changes.
type ChangeType int

const (
	// ChangeTypeSource is a content change to a tracked source file.
	ChangeTypeSource ChangeType = iota
	// ChangeTypeLayout is a directory appearing or disappearing, which
	// may bring new files into or out of the scan.
	ChangeTypeLayout
)

// ChangeEvent is a batch of related file system changes.
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// sourceExts are the extensions that trigger re-analysis.
var sourceExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".py": true, ".go": true,
}

// ignoredDirs mirrors the extractor's skip list; changes under these
// never trigger re-analysis.
var ignoredDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
}

// FileWatcher watches a workspace for source changes.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	workspace string
	events    chan ChangeEvent
}

// NewFileWatcher creates a watcher for the workspace.
func NewFileWatcher(workspace string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:   w,
		workspace: workspace,
		events:    make(chan ChangeEvent, 100),
	}, nil
}

// Start registers all workspace directories and begins emitting change
// events until the context is cancelled.
func (fw *FileWatcher) Start(ctx context.Context) error {
	count, err := fw.watchTree(fw.workspace)
	if err != nil {
		return fmt.Errorf("failed to watch workspace: %w", err)
	}
	logging.Info("started watching workspace", "path", fw.workspace, "directories", count)

	go fw.processEvents(ctx)
	return nil
}

// Events returns the channel of batched change events.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// watchTree adds root and every non-ignored subdirectory to the
// watcher, returning how many directories are monitored.
func (fw *FileWatcher) watchTree(root string) (int, error) {
	count := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip entries we cannot access
		}
		if !info.IsDir() {
			return nil
		}
		if ignoredDirs[info.Name()] {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			logging.Warn("failed to watch directory", "path", path, "error", err)
			return nil
		}
		count++
		return nil
	})
	return count, err
}

// processEvents filters raw fsnotify events and batches them by type
// with a short flush window, so one save does not emit a flood.
func (fw *FileWatcher) processEvents(ctx context.Context) {
	var sourceFiles []string
	var layoutPaths []string

	flushTimer := time.NewTimer(100 * time.Millisecond)
	flushTimer.Stop()

	flush := func() {
		if len(sourceFiles) > 0 {
			fw.events <- ChangeEvent{Type: ChangeTypeSource, Paths: sourceFiles, Timestamp: time.Now()}
			sourceFiles = nil
		}
		if len(layoutPaths) > 0 {
			fw.events <- ChangeEvent{Type: ChangeTypeLayout, Paths: layoutPaths, Timestamp: time.Now()}
			layoutPaths = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			fw.watcher.Close()
			close(fw.events)
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !ignoredDirs[filepath.Base(event.Name)] {
						// New directory: watch it and rescan.
						if err := fw.watcher.Add(event.Name); err != nil {
							logging.Warn("failed to watch new directory", "path", event.Name, "error", err)
						}
						layoutPaths = append(layoutPaths, event.Name)
						flushTimer.Reset(100 * time.Millisecond)
					}
					continue
				}
			}

			if sourceExts[filepath.Ext(event.Name)] {
				sourceFiles = append(sourceFiles, event.Name)
				flushTimer.Reset(100 * time.Millisecond)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", "error", err)

		case <-flushTimer.C:
			flush()
		}
	}
}
