package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"idxcli/internal/config"
	"idxcli/internal/dataprocessing"
	"idxcli/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "", "config file path (defaults to config.yaml if present)")
	dataDir := flag.String("data-dir", "", "directory containing raw index files (overrides config)")
	outDir := flag.String("out-dir", "", "directory for normalized output (overrides config, defaults to <data-dir>/processed)")
	summaryFile := flag.String("summary", "", "also write a per-index summary CSV with this name under the output directory")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
		cfg.Paths.ProcessedDir = ""
	}
	if *outDir != "" {
		cfg.Paths.ProcessedDir = *outDir
	}

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	if cfg.Logging.FilePath == "" || cfg.Logging.FilePath == "logs/normalize.log" {
		cfg.Logging.FilePath = paths.GetLogPath("normalize.log")
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting index normalization",
		slog.String("data_dir", paths.DataDir),
		slog.String("output_dir", paths.ProcessedDir),
		slog.Int("indices", len(cfg.Indices)))

	processor := dataprocessing.NewProcessor(cfg, paths, logger)

	fmt.Printf("Normalizing %d indices\n", len(cfg.Indices))
	stats := processor.Run()
	for _, result := range stats.Results {
		switch {
		case result.Skipped():
			fmt.Printf("Skipped %s: source file not found\n", result.Name)
		case result.Err != nil:
			fmt.Printf("Failed %s: %v\n", result.Name, result.Err)
		default:
			fmt.Printf("Normalized %s: %d rows -> %s\n", result.Name, result.Stats.RowsOut, result.OutputPath)
		}
	}

	if *summaryFile != "" && stats.Processed > 0 {
		path, err := processor.WriteSummary(stats, *summaryFile)
		if err != nil {
			logger.Error("Failed to write summary report", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("Summary written to %s\n", path)
	}

	// Individual index failures are not fatal; the run reports them and
	// exits clean, matching the skip-and-continue policy.
	fmt.Printf("Normalization complete: %d of %d indices\n", stats.Processed, len(cfg.Indices))
}
