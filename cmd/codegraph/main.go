package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/askeland/codegraph/pkg/analysis"
	"github.com/askeland/codegraph/pkg/config"
	"github.com/askeland/codegraph/pkg/extractor"
	"github.com/askeland/codegraph/pkg/graph"
	"github.com/askeland/codegraph/pkg/logging"
	"github.com/askeland/codegraph/pkg/model"
	"github.com/askeland/codegraph/pkg/output"
	"github.com/askeland/codegraph/pkg/watcher"
	"github.com/askeland/codegraph/pkg/web"
)

func main() {
	flags := pflag.NewFlagSet("codegraph", pflag.ExitOnError)
	flags.String("workspace", ".", "Path to the workspace root")
	flags.Bool("web", false, "Start web server instead of printing to console")
	flags.Int("port", 8080, "Port for web server (only used with --web)")
	flags.Bool("watch", false, "Re-run analysis on source changes (only used with --web)")
	flags.Bool("json", false, "Use JSON log output")
	flags.String("verbosity", "", "Log level: debug, info, warn, error")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	configureLogging(cfg)

	if cfg.WebMode {
		runWebMode(cfg)
		return
	}
	runConsoleMode(cfg)
}

func configureLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Verbosity {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.JSON {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}
}

func runConsoleMode(cfg *config.Config) {
	records, err := extractor.ScanWorkspace(cfg.Workspace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dg, err := graph.Build(records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output.PrintReport(cfg.Workspace, dg.Export(), analysis.Analyze(dg))
}

func runWebMode(cfg *config.Config) {
	server := web.NewServer(func(files []model.FileRecord) (*model.Graph, *model.Analytics, error) {
		return analysis.AnalyzeRecords(files)
	})
	runner := analysis.NewRunner(cfg.Workspace, server)

	ctx := context.Background()

	// Analysis runs in the background so the API is reachable while the
	// first pass is still in flight.
	go func() {
		if err := runner.Run(ctx, analysis.Options{Reason: "initial analysis"}); err != nil {
			logging.Error("initial analysis failed", "error", err)
		}
	}()

	if cfg.Watch {
		if err := startWatcher(ctx, cfg.Workspace, runner); err != nil {
			logging.Error("failed to start watcher", "error", err)
		}
	}

	if err := server.Start(cfg.Port); err != nil {
		logging.Fatal("web server failed", "error", err)
	}
}

func startWatcher(ctx context.Context, workspace string, runner *analysis.Runner) error {
	fw, err := watcher.NewFileWatcher(workspace)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(fw.Events(), 500*time.Millisecond, 5*time.Second)
	debouncer.Start(ctx)

	go func() {
		for event := range debouncer.Output() {
			change := watcher.AnalyzeChanges(event)
			logging.Info("change detected", "reason", change.Reason, "files", len(change.ChangedFiles))
			if err := runner.Run(ctx, analysis.Options{Reason: change.Reason}); err != nil {
				logging.Error("re-analysis failed", "error", err)
			}
		}
	}()

	return nil
}
