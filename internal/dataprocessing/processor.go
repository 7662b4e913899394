package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"idxcli/internal/config"
	"idxcli/internal/errors"
	"idxcli/internal/exporter"
	"idxcli/internal/files"
	"idxcli/internal/infrastructure"
	"idxcli/pkg/contracts/domain"
)

// Processor runs the normalization batch over the configured index list,
// sequentially. A missing source file skips that index; any other
// per-index failure is logged and the run continues.
type Processor struct {
	cfg        *config.Config
	paths      *config.Paths
	discovery  *files.Discovery
	normalizer *Normalizer
	writer     *exporter.CSVWriter
	logger     *slog.Logger
}

// NewProcessor creates a batch processor over the configured indices.
func NewProcessor(cfg *config.Config, paths *config.Paths, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Processor{
		cfg:        cfg,
		paths:      paths,
		discovery:  files.NewDiscovery(paths.DataDir),
		normalizer: NewNormalizer(logger),
		writer:     exporter.NewCSVWriter(paths),
		logger:     logger,
	}
}

// IndexResult reports the outcome for one index.
type IndexResult struct {
	ID         string
	Name       string
	SourcePath string
	OutputPath string
	Stats      NormalizeStats
	Summary    domain.SeriesSummary
	Err        error
}

// Skipped reports whether the index was skipped for a missing source file.
func (r IndexResult) Skipped() bool {
	return errors.HasCode(r.Err, errors.CodeFileNotFound)
}

// RunStats aggregates a whole batch run.
type RunStats struct {
	Processed int
	Skipped   int
	Failed    int
	RowsIn    int
	RowsOut   int
	Results   []IndexResult
}

// Summaries returns the summaries of all successfully processed indices.
func (s RunStats) Summaries() []domain.SeriesSummary {
	var summaries []domain.SeriesSummary
	for _, r := range s.Results {
		if r.Err == nil {
			summaries = append(summaries, r.Summary)
		}
	}
	return summaries
}

// Run normalizes every configured index. Per-index failures never abort
// the batch; callers inspect RunStats for the outcome.
func (p *Processor) Run() RunStats {
	stats := RunStats{}

	for i, idx := range p.cfg.Indices {
		p.logger.Info("Processing index",
			slog.Int("current", i+1),
			slog.Int("total", len(p.cfg.Indices)),
			slog.String("index", idx.ID),
			slog.String("name", idx.DisplayName()))

		result := p.processIndex(idx)
		stats.Results = append(stats.Results, result)

		switch {
		case result.Skipped():
			stats.Skipped++
			p.logger.Warn("Skipping index, source file missing",
				slog.String("index", idx.ID),
				slog.String("file", idx.File))
		case result.Err != nil:
			stats.Failed++
			p.logger.Error("Failed to process index",
				slog.String("index", idx.ID),
				slog.String("error", result.Err.Error()))
		default:
			stats.Processed++
			stats.RowsIn += result.Stats.RowsIn
			stats.RowsOut += result.Stats.RowsOut
			p.logger.Info("Normalized index",
				slog.String("index", idx.ID),
				slog.String("dialect", result.Stats.Dialect),
				slog.Int("rows_in", result.Stats.RowsIn),
				slog.Int("rows_out", result.Stats.RowsOut),
				slog.Int("dropped_rows", result.Stats.DroppedRows),
				slog.Int("filled_opens", result.Stats.FilledOpens),
				slog.Int("duplicate_dates", result.Stats.DuplicateDates),
				slog.String("first_date", result.Summary.FirstDate.Format(domain.DateFormat)),
				slog.String("last_date", result.Summary.LastDate.Format(domain.DateFormat)),
				slog.String("output", result.OutputPath))
		}
	}

	if stats.Processed == 0 && stats.Skipped > 0 {
		// Nothing matched the configured names; list what the data
		// directory actually holds to point at renamed downloads.
		if found, err := p.discovery.FindSourceFiles(); err == nil && len(found) > 0 {
			names := make([]string, 0, len(found))
			for _, f := range found {
				names = append(names, f.Name)
			}
			p.logger.Warn("No configured source files found",
				slog.String("data_dir", p.paths.DataDir),
				slog.String("available", strings.Join(names, ", ")))
		}
	}

	p.logger.Info("Normalization run complete",
		slog.Int("processed", stats.Processed),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed),
		slog.Int("rows_out", stats.RowsOut))

	return stats
}

// processIndex normalizes a single index end to end.
func (p *Processor) processIndex(idx config.IndexSource) IndexResult {
	result := IndexResult{ID: idx.ID, Name: idx.DisplayName()}

	sourcePath, err := p.discovery.ResolveSource(idx.File)
	if err != nil {
		result.Err = err
		return result
	}
	result.SourcePath = sourcePath

	rows, err := ReadSource(sourcePath)
	if err != nil {
		result.Err = err
		return result
	}

	series, normStats, err := p.normalizer.Normalize(idx.ID, rows, idx.Format)
	if err != nil {
		result.Err = err
		return result
	}
	series.Name = idx.DisplayName()
	result.Stats = normStats

	if len(series.Points) == 0 {
		result.Err = errors.EmptySource(sourcePath)
		return result
	}

	outputPath := p.paths.GetProcessedPath(idx.OutputName())
	if err := p.writer.WriteSeries(outputPath, series); err != nil {
		result.Err = errors.ExportFailed(outputPath, err)
		return result
	}
	result.OutputPath = outputPath
	result.Summary = Summarize(series)

	return result
}

// WriteSummary writes the per-run summary report for all successfully
// processed indices.
func (p *Processor) WriteSummary(stats RunStats, fileName string) (string, error) {
	summaries := stats.Summaries()
	if len(summaries) == 0 {
		return "", fmt.Errorf("no processed indices to summarize")
	}
	path := p.paths.GetProcessedPath(fileName)
	if err := p.writer.WriteSummary(path, summaries); err != nil {
		return "", errors.ExportFailed(path, err)
	}
	return path, nil
}
