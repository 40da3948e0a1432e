package dataprocessing

import (
	"log/slog"

	"pomet/internal/table"
)

// ReportQuality logs the data quality summary for the unified table:
// total row count and per-column null counts, in schema order.
func ReportQuality(t *table.Table, logger *slog.Logger) {
	logger.Info("data quality report", slog.Int("total_rows", t.Len()))

	nulls := t.NullCounts()
	for _, col := range t.Columns() {
		if nulls[col] == 0 {
			continue
		}
		logger.Info("null values in column",
			slog.String("column", col),
			slog.Int("null_count", nulls[col]))
	}
}
