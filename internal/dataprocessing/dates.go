package dataprocessing

import (
	"log/slog"
	"strings"
	"time"

	"pomet/internal/table"

	pomerrors "pomet/internal/errors"
)

const (
	confDelyDateColumn  = "conf_dely_date"
	requestedDateColumn = "po_requested_delivery_date"

	// dateSentinel is the placeholder some exports write into
	// conf_dely_date instead of leaving the cell empty.
	dateSentinel = "--0"
)

// dateLayouts are tried in order when parsing a textual date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-Jan-06",
	time.RFC3339,
}

// excelEpoch is day zero of the 1900 date system, offset so that the
// historical Lotus leap-year bug cancels out.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// DateColumns scans the normalized schema and returns every column
// whose name contains "date". The set is discovered per run, not
// hardcoded, because the source schema varies across files.
func DateColumns(t *table.Table) []string {
	var cols []string
	for _, c := range t.Columns() {
		if strings.Contains(c, "date") {
			cols = append(cols, c)
		}
	}
	return cols
}

// ReconcileDates parses every discovered date column and back-fills
// conf_dely_date from po_requested_delivery_date where it is missing.
//
// Parsing is lenient: a cell that cannot be read as a date becomes
// null, never an error. The "--0" sentinel in conf_dely_date is treated
// as missing before parsing. Both conf_dely_date and
// po_requested_delivery_date must exist in the schema, since the
// back-fill invariant depends on them.
func ReconcileDates(t *table.Table, logger *slog.Logger) error {
	dateCols := DateColumns(t)
	logger.Info("date columns detected", slog.Any("columns", dateCols))

	for _, col := range []string{confDelyDateColumn, requestedDateColumn} {
		if !t.HasColumn(col) {
			return pomerrors.DateProcessingError("required column "+col+" missing from schema", nil)
		}
	}

	// Sentinel cleanup before any parsing.
	for i := 0; i < t.Len(); i++ {
		v := t.Get(i, confDelyDateColumn)
		if v.Kind() == table.KindString && strings.TrimSpace(v.Str()) == dateSentinel {
			t.Set(i, confDelyDateColumn, table.Null)
		}
	}

	for _, col := range dateCols {
		if !t.HasColumn(col) {
			continue
		}
		parsed := 0
		for i := 0; i < t.Len(); i++ {
			v := t.Get(i, col)
			if v.IsNull() {
				continue
			}
			if d, ok := ParseDate(v); ok {
				t.Set(i, col, table.Time(d))
				parsed++
			} else {
				t.Set(i, col, table.Null)
			}
		}
		logger.Debug("date column parsed",
			slog.String("column", col),
			slog.Int("parsed", parsed),
			slog.Int("rows", t.Len()))
	}

	filled := 0
	for i := 0; i < t.Len(); i++ {
		if !t.Get(i, confDelyDateColumn).IsNull() {
			continue
		}
		if req := t.Get(i, requestedDateColumn); !req.IsNull() {
			t.Set(i, confDelyDateColumn, req)
			filled++
		}
	}
	logger.Info("confirmed delivery dates back-filled from requested dates",
		slog.Int("filled", filled))

	return nil
}

// ParseDate attempts to read a cell as a calendar date. Textual cells
// are tried against the known layouts, numeric cells are interpreted as
// Excel serial day numbers, and time cells pass through. The boolean
// reports success; failure means the value should be treated as
// missing.
func ParseDate(v table.Value) (time.Time, bool) {
	switch v.Kind() {
	case table.KindTime:
		return v.Date(), true
	case table.KindNumber:
		serial := v.Num()
		if serial < 1 || serial > 300000 {
			return time.Time{}, false
		}
		return excelEpoch.AddDate(0, 0, int(serial)), true
	case table.KindString:
		s := strings.TrimSpace(v.Str())
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
