package dataprocessing

import (
	"log/slog"

	"pomet/internal/config"
	"pomet/internal/table"
)

// Pipeline runs the combine transform: load every source spreadsheet,
// concatenate, normalize the schema, reconcile dates, and report data
// quality. The caller owns export of the result.
type Pipeline struct {
	loader      *Loader
	onFileError string
	logger      *slog.Logger
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg config.PipelineConfig, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		loader:      NewLoader(cfg.Worksheet, logger),
		onFileError: cfg.OnFileError,
		logger:      logger,
	}
}

// Loader exposes the pipeline's loader for the past-due filter, which
// re-reads the latest file with identical read semantics.
func (p *Pipeline) Loader() *Loader { return p.loader }

// Combine executes the load → normalize → reconcile stages over
// sourceDir and returns the unified table.
func (p *Pipeline) Combine(sourceDir string) (*table.Table, error) {
	tables, err := p.loader.LoadDirectory(sourceDir, p.onFileError)
	if err != nil {
		return nil, err
	}

	combined := tables[0]
	total := tables[0].Len()
	for _, t := range tables[1:] {
		combined.Concat(t)
		total += t.Len()
	}
	p.logger.Info("source files combined",
		slog.Int("files", len(tables)),
		slog.Int("total_rows", total))

	Normalize(combined)

	if err := ReconcileDates(combined, p.logger); err != nil {
		return nil, err
	}

	ReportQuality(combined, p.logger)

	return combined, nil
}
