package exporter

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	pqfile "github.com/apache/arrow/go/v17/parquet/file"

	pomerrors "pomet/internal/errors"
	"pomet/internal/table"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New("supplier", "po_number", "ordered_quantity", "conf_dely_date", "source_file")
	require.NoError(t, tbl.AppendRow([]table.Value{
		table.String("00123"),
		table.String("PO-1"),
		table.Number(10),
		table.Time(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
		table.String("a.xlsx"),
	}))
	require.NoError(t, tbl.AppendRow([]table.Value{
		table.String("4567"),
		table.String(`PO "quoted" 2`),
		table.Null,
		table.Null,
		table.String("b.xlsx"),
	}))
	return tbl
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	exp := New(dir, discardLogger())

	require.NoError(t, exp.ExportAll(sampleTable(t), "combined_data"))

	for _, name := range []string{"combined_data.xlsx", "combined_data.parquet", "combined_data.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestExportAllAttemptsEveryFormat(t *testing.T) {
	dir := t.TempDir()
	// Pre-create the xlsx target as an unwritable directory so that
	// format fails while the others can still succeed.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "combined_data.xlsx"), 0o755))

	exp := New(dir, discardLogger())
	err := exp.ExportAll(sampleTable(t), "combined_data")
	require.Error(t, err)
	assert.ErrorIs(t, err, pomerrors.ErrExport)

	// The remaining formats were still written.
	for _, name := range []string{"combined_data.parquet", "combined_data.csv"} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, statErr, name)
	}
}

func TestCSVQuotesEveryField(t *testing.T) {
	dir := t.TempDir()
	exp := New(dir, discardLogger())
	require.NoError(t, exp.WriteCSV(sampleTable(t), "out.csv"))

	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, `"supplier","po_number","ordered_quantity","conf_dely_date","source_file"`, lines[0])
	assert.Equal(t, `"00123","PO-1","10","2024-01-05","a.xlsx"`, lines[1])
	assert.Equal(t, `"4567","PO ""quoted"" 2","","","b.xlsx"`, lines[2],
		"nulls render as empty quoted fields, inner quotes are doubled")
}

func TestExcelRoundTrip(t *testing.T) {
	dir := t.TempDir()
	exp := New(dir, discardLogger())
	require.NoError(t, exp.ExportAll(sampleTable(t), "combined_data"))

	f, err := excelize.OpenFile(filepath.Join(dir, "combined_data.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"supplier", "po_number", "ordered_quantity", "conf_dely_date", "source_file"}, rows[0])
	assert.Equal(t, "00123", rows[1][0], "supplier padding survives the xlsx round trip")
}

func TestParquetRowAndColumnCounts(t *testing.T) {
	dir := t.TempDir()
	exp := New(dir, discardLogger())

	tbl := sampleTable(t)
	require.NoError(t, exp.ExportAll(tbl, "combined_data"))

	rdr, err := pqfile.OpenParquetFile(filepath.Join(dir, "combined_data.parquet"), false)
	require.NoError(t, err)
	defer rdr.Close()

	assert.Equal(t, int64(tbl.Len()), rdr.NumRows())
	assert.Equal(t, len(tbl.Columns()), rdr.MetaData().Schema.NumColumns())
}

func TestInferType(t *testing.T) {
	tbl := table.New("text", "numeric", "dates", "mixed", "empty")
	require.NoError(t, tbl.AppendRow([]table.Value{
		table.String("a"), table.Number(1), table.Time(time.Now()), table.Number(1), table.Null,
	}))
	require.NoError(t, tbl.AppendRow([]table.Value{
		table.String("b"), table.Null, table.Null, table.String("x"), table.Null,
	}))

	assert.Equal(t, "utf8", inferType(tbl, "text").Name())
	assert.Equal(t, "float64", inferType(tbl, "numeric").Name())
	assert.Equal(t, "date32", inferType(tbl, "dates").Name())
	assert.Equal(t, "utf8", inferType(tbl, "mixed").Name())
	assert.Equal(t, "utf8", inferType(tbl, "empty").Name(), "all-null columns default to text")
}
