package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	pomerrors "pomet/internal/errors"
	"pomet/internal/files"
	"pomet/internal/table"
)

const (
	planningDateColumn = "planning_date"
	lineStatusColumn   = "po_line_low_sts"
	daysPastDueColumn  = "days_past_due"
)

// pastDueStatuses are the PO line status codes monitored for overdue
// delivery.
var pastDueStatuses = map[int]bool{20: true, 35: true, 40: true, 50: true}

// pastDueColumns is the projection retained in the past-due report,
// before the derived days_past_due column is appended.
var pastDueColumns = []string{
	"po_number",
	planningDateColumn,
	lineStatusColumn,
	"buyer",
	"item_number",
	sourceFileColumn,
}

// PastDueFilter derives the overdue-orders report from the most
// recently modified source file.
type PastDueFilter struct {
	loader *Loader
	logger *slog.Logger

	// now is the wall clock; replaced in tests for a fixed "today".
	now func() time.Time
}

// NewPastDueFilter creates the filter.
func NewPastDueFilter(loader *Loader, logger *slog.Logger) *PastDueFilter {
	return &PastDueFilter{loader: loader, logger: logger, now: time.Now}
}

// Run selects the latest spreadsheet in sourceDir by modification time,
// re-reads and re-normalizes it independently of the combined pipeline,
// and returns the past-due rows sorted most overdue first.
func (f *PastDueFilter) Run(sourceDir string) (*table.Table, error) {
	found, err := files.NewDiscovery("").FindSpreadsheets(sourceDir)
	if err != nil {
		return nil, pomerrors.DirectorySetupError(sourceDir, err)
	}

	latest, ok := files.LatestFile(found)
	if !ok {
		return nil, pomerrors.NoInputError(sourceDir)
	}
	f.logger.Info("processing latest source file",
		slog.String("file", latest.Name),
		slog.Time("modified", latest.ModTime))

	t, err := f.loader.ReadWorkbook(latest.Path, latest.Name)
	if err != nil {
		return nil, err
	}
	Normalize(t)

	for _, col := range []string{planningDateColumn, lineStatusColumn} {
		if !t.HasColumn(col) {
			return nil, pomerrors.DateProcessingError(
				fmt.Sprintf("column %s missing from latest file %s", col, latest.Name), nil)
		}
	}

	// Parse planning dates in place; unparseable cells become null and
	// can never compare as overdue.
	for i := 0; i < t.Len(); i++ {
		v := t.Get(i, planningDateColumn)
		if v.IsNull() {
			continue
		}
		if d, ok := ParseDate(v); ok {
			t.Set(i, planningDateColumn, table.Time(d))
		} else {
			t.Set(i, planningDateColumn, table.Null)
		}
	}

	today := midnight(f.now())

	overdue := t.Filter(func(row int) bool {
		pd := t.Get(row, planningDateColumn)
		if pd.IsNull() || !pd.Date().Before(today) {
			return false
		}
		sts, ok := t.Get(row, lineStatusColumn).AsNumber()
		if !ok || sts != math.Trunc(sts) {
			return false
		}
		return pastDueStatuses[int(sts)]
	})

	report, err := overdue.Select(pastDueColumns...)
	if err != nil {
		return nil, pomerrors.DateProcessingError("past-due projection failed", err)
	}

	report.AddColumn(daysPastDueColumn, table.Null)
	for i := 0; i < report.Len(); i++ {
		pd := report.Get(i, planningDateColumn).Date()
		days := int(today.Sub(midnight(pd)).Hours() / 24)
		report.Set(i, daysPastDueColumn, table.Number(float64(days)))
	}

	report.SortBy(func(i, j int) bool {
		return report.Get(i, daysPastDueColumn).Num() > report.Get(j, daysPastDueColumn).Num()
	})

	f.logger.Info("past due orders found",
		slog.Int("count", report.Len()),
		slog.String("source_file", latest.Name))

	return report, nil
}

// midnight truncates a time to its calendar date. The result is pinned
// to UTC so comparisons against parsed date cells, which carry no zone,
// are pure calendar-day arithmetic.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
