package dataprocessing

import (
	"strings"

	"pomet/internal/table"
)

// textColumns are the logical columns coerced to text after the schema
// has been normalized. Columns absent from a given run's schema are
// skipped.
var textColumns = []string{
	"supplier",
	"supplier_name",
	"item_number",
	"item_type",
	"po_number",
	"buyer",
	"source_file",
}

// columnRenames fixes known source inconsistencies after the generic
// name normalization has run.
var columnRenames = map[string]string{
	"orderedquantity": "ordered_quantity",
}

// normalizeName canonicalizes one column name: lowercase, spaces
// replaced with underscores.
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// NormalizeColumns canonicalizes every column name in place and applies
// the known rename fix-ups. Running it on already-normalized input is a
// no-op.
func NormalizeColumns(t *table.Table) {
	for _, c := range t.Columns() {
		t.RenameColumn(c, normalizeName(c))
	}
	for from, to := range columnRenames {
		t.RenameColumn(from, to)
	}
}

// CoerceTextColumns converts every cell of the designated text columns
// to a text value. Numeric cells render without a trailing ".0" so
// numeric-looking identifiers survive as clean text. Idempotent.
func CoerceTextColumns(t *table.Table) {
	for _, col := range textColumns {
		if !t.HasColumn(col) {
			continue
		}
		for i := 0; i < t.Len(); i++ {
			v := t.Get(i, col)
			if v.IsNull() || v.Kind() == table.KindString {
				continue
			}
			t.Set(i, col, table.String(v.AsString()))
		}
	}
}

// Normalize applies the full normalization stage: schema canonicalization
// followed by text coercion.
func Normalize(t *table.Table) {
	NormalizeColumns(t)
	CoerceTextColumns(t)
}
