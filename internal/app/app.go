// Package app wires the pipeline stages into one runnable batch job.
package app

import (
	"log/slog"

	"pomet/internal/config"
	"pomet/internal/dataprocessing"
	pomerrors "pomet/internal/errors"
	"pomet/internal/exporter"
)

// App is the purchase-order metrics batch job.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates the application.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{cfg: cfg, logger: logger}
}

// Run executes one batch run: combine every source spreadsheet into the
// unified dataset, export it in all formats, then derive the past-due
// report from the latest source file. Nothing runs before Run is
// called, so the pipeline is callable and testable in isolation.
func (a *App) Run() error {
	if err := a.cfg.EnsureDirectories(); err != nil {
		return pomerrors.DirectorySetupError(a.cfg.Paths.OutputDir, err)
	}

	a.logger.Info("starting purchasing metrics run",
		slog.String("source_dir", a.cfg.Paths.SourceDir),
		slog.String("output_dir", a.cfg.Paths.OutputDir))

	pipeline := dataprocessing.NewPipeline(a.cfg.Pipeline, a.logger)

	combined, err := pipeline.Combine(a.cfg.Paths.SourceDir)
	if err != nil {
		a.logger.Error("combine pipeline failed", slog.String("error", err.Error()))
		return err
	}

	exp := exporter.New(a.cfg.Paths.OutputDir, a.logger)
	if err := exp.ExportAll(combined, "combined_data"); err != nil {
		a.logger.Error("combined export failed", slog.String("error", err.Error()))
		return err
	}

	pastDue, err := dataprocessing.NewPastDueFilter(pipeline.Loader(), a.logger).Run(a.cfg.Paths.SourceDir)
	if err != nil {
		a.logger.Error("past-due report failed", slog.String("error", err.Error()))
		return err
	}
	if err := exp.WriteCSV(pastDue, "past_due_orders.csv"); err != nil {
		return err
	}

	a.logger.Info("run complete",
		slog.Int("combined_rows", combined.Len()),
		slog.Int("past_due_rows", pastDue.Len()))

	return nil
}
