// Package exporter writes the unified table to its output formats.
package exporter

import (
	"errors"
	"log/slog"
	"path/filepath"

	pomerrors "pomet/internal/errors"
	"pomet/internal/table"
)

// Exporter writes tables into an output directory.
type Exporter struct {
	outputDir string
	logger    *slog.Logger
}

// New creates an exporter targeting outputDir.
func New(outputDir string, logger *slog.Logger) *Exporter {
	return &Exporter{outputDir: outputDir, logger: logger}
}

// ExportAll writes the table as <baseName>.xlsx, .parquet and .csv.
// Every format is attempted even when an earlier one fails, to maximize
// partial success; the individual failures are joined into one EXPORT
// error.
func (e *Exporter) ExportAll(t *table.Table, baseName string) error {
	var errs []error

	targets := []struct {
		ext   string
		write func(*table.Table, string) error
	}{
		{".xlsx", e.writeExcel},
		{".parquet", e.writeParquet},
		{".csv", e.writeCSV},
	}

	for _, target := range targets {
		path := filepath.Join(e.outputDir, baseName+target.ext)
		if err := target.write(t, path); err != nil {
			e.logger.Error("export failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
			errs = append(errs, err)
			continue
		}
		e.logger.Info("export written",
			slog.String("path", path),
			slog.Int("rows", t.Len()))
	}

	if len(errs) > 0 {
		return pomerrors.ExportError(errors.Join(errs...))
	}
	return nil
}

// WriteCSV writes the table as a single CSV file under the output
// directory. Used for the past-due report.
func (e *Exporter) WriteCSV(t *table.Table, filename string) error {
	path := filepath.Join(e.outputDir, filename)
	if err := e.writeCSV(t, path); err != nil {
		e.logger.Error("export failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return pomerrors.ExportError(err)
	}
	e.logger.Info("export written",
		slog.String("path", path),
		slog.Int("rows", t.Len()))
	return nil
}
