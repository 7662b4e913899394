package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the resolved application paths.
// This is the single source of truth for file locations in the normalizer.
type Paths struct {
	DataDir      string
	ProcessedDir string
	LogsDir      string
}

// NewPaths resolves the configured paths, applying defaults for anything
// unset. The processed directory defaults to a "processed" subdirectory of
// the data directory, matching the normalized-output layout the downstream
// backtests read.
func NewPaths(cfg PathsConfig) *Paths {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	processedDir := cfg.ProcessedDir
	if processedDir == "" {
		processedDir = filepath.Join(dataDir, "processed")
	}
	logsDir := cfg.LogsDir
	if logsDir == "" {
		logsDir = "logs"
	}
	return &Paths{
		DataDir:      dataDir,
		ProcessedDir: processedDir,
		LogsDir:      logsDir,
	}
}

// EnsureDirectories creates all required directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ProcessedDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetSourcePath resolves a raw source file name against the data directory.
func (p *Paths) GetSourcePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.DataDir, name)
}

// GetProcessedPath resolves a normalized output file name against the
// processed directory.
func (p *Paths) GetProcessedPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.ProcessedDir, name)
}

// GetLogPath resolves a log file name against the logs directory.
func (p *Paths) GetLogPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.LogsDir, name)
}
