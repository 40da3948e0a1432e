package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pomet/internal/config"
	pomerrors "pomet/internal/errors"
	"pomet/internal/files"
	"pomet/internal/table"
)

// Filenames containing this marker come from the FAC400 export, whose
// supplier codes lose their leading zeros and must be re-padded.
const fac400Marker = "qry514-fac400"

const supplierCodeWidth = 5

// sourceFileColumn is the provenance column injected into every row.
const sourceFileColumn = "source_file"

// textTypedHeaders are the columns read as text regardless of how the
// cells look: identifier columns carry significant leading zeros
// ("007" must never collapse to 7). Matching is done on the normalized
// header form since source files vary in case and spacing.
var textTypedHeaders = map[string]bool{
	"supplier":      true,
	"supplier_name": true,
	"item_number":   true,
	"item_type":     true,
	"po_number":     true,
	"buyer":         true,
}

// Loader reads purchase-order worksheets into tables.
type Loader struct {
	worksheet string
	logger    *slog.Logger
}

// NewLoader creates a loader reading the given worksheet from every
// workbook.
func NewLoader(worksheet string, logger *slog.Logger) *Loader {
	return &Loader{worksheet: worksheet, logger: logger}
}

// ReadWorkbook reads one workbook into a table. The first row of the
// worksheet is the header; header names are canonicalized immediately
// so that files varying in case or spacing concatenate into one column
// instead of duplicates. Every row is tagged with the workbook's base
// name in the source_file column. A missing worksheet or unreadable
// file returns a FILE_READ error.
func (l *Loader) ReadWorkbook(path, name string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, pomerrors.FileReadError(name, err)
	}
	defer f.Close()

	rows, err := f.GetRows(l.worksheet)
	if err != nil {
		return nil, pomerrors.FileReadError(name, err)
	}
	if len(rows) == 0 {
		return nil, pomerrors.FileReadError(name, pomerrors.New(pomerrors.CodeFileRead, "worksheet is empty"))
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = normalizeName(h)
	}
	t := table.New(header...)

	padSupplier := strings.Contains(name, fac400Marker)
	supplierCol := -1

	textTyped := make([]bool, len(header))
	for i, h := range header {
		textTyped[i] = textTypedHeaders[h]
		if h == "supplier" {
			supplierCol = i
		}
	}

	for _, row := range rows[1:] {
		cells := make([]table.Value, len(header))
		for i := range header {
			var raw string
			if i < len(row) {
				raw = strings.TrimSpace(row[i])
			}
			cells[i] = parseCell(raw, textTyped[i])
		}
		if padSupplier && supplierCol >= 0 && !cells[supplierCol].IsNull() {
			cells[supplierCol] = table.String(zfill(cells[supplierCol].AsString(), supplierCodeWidth))
		}
		if err := t.AppendRow(cells); err != nil {
			return nil, pomerrors.FileReadError(name, err)
		}
	}

	if err := t.AddColumn(sourceFileColumn, table.String(name)); err != nil {
		return nil, pomerrors.FileReadError(name, err)
	}

	l.logger.Info("workbook loaded",
		slog.String("file", name),
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Columns())))

	return t, nil
}

// LoadDirectory reads every spreadsheet in dir and returns the per-file
// tables. The error policy decides whether a failed file is skipped
// (logged) or aborts the run. Zero loaded tables is always a NO_INPUT
// error, never an empty result.
func (l *Loader) LoadDirectory(dir, onFileError string) ([]*table.Table, error) {
	found, err := files.NewDiscovery("").FindSpreadsheets(dir)
	if err != nil {
		return nil, pomerrors.DirectorySetupError(dir, err)
	}

	var tables []*table.Table
	for _, fi := range found {
		t, err := l.ReadWorkbook(fi.Path, fi.Name)
		if err != nil {
			if onFileError == config.PolicyAbort {
				return nil, err
			}
			l.logger.Error("skipping unreadable file",
				slog.String("file", fi.Name),
				slog.String("error", err.Error()))
			continue
		}
		tables = append(tables, t)
	}

	if len(tables) == 0 {
		return nil, pomerrors.NoInputError(dir)
	}

	return tables, nil
}

// parseCell converts one raw worksheet cell. Empty cells are null,
// text-typed columns stay text, and anything that looks numeric
// elsewhere becomes a number the way a spreadsheet reader would infer
// it.
func parseCell(raw string, textTyped bool) table.Value {
	if raw == "" {
		return table.Null
	}
	if textTyped {
		return table.String(raw)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return table.Number(f)
	}
	return table.String(raw)
}

// zfill left-pads s with zeros to the given width.
func zfill(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
