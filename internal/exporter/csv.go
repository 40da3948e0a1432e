package exporter

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"pomet/internal/table"
)

// writeCSV writes the table as UTF-8 CSV with every field quoted,
// matching the downstream consumers that expect fully quoted exports.
// encoding/csv only quotes on demand, so quoting is done here.
func (e *Exporter) writeCSV(t *table.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if err := writeQuotedRecord(w, t.Columns()); err != nil {
		return err
	}

	record := make([]string, len(t.Columns()))
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Row(i) {
			record[j] = v.AsString()
		}
		if err := writeQuotedRecord(w, record); err != nil {
			return err
		}
	}

	return w.Flush()
}

func writeQuotedRecord(w *bufio.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quoteField(field)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
