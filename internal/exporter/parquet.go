package exporter

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/compress"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"

	"pomet/internal/table"
)

const parquetChunkSize = 64 * 1024

// writeParquet writes the table as a snappy-compressed parquet file.
// The arrow schema is inferred per column: date32 where any cell is a
// date, float64 where every non-null cell is numeric, string otherwise.
func (e *Exporter) writeParquet(t *table.Table, path string) error {
	schema := inferSchema(t)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for j := range schema.Fields() {
			appendCell(builder.Field(j), row[j])
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()

	arrowTable := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer arrowTable.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	if err := pqarrow.WriteTable(arrowTable, f, parquetChunkSize, props, pqarrow.DefaultWriterProps()); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	return nil
}

func inferSchema(t *table.Table) *arrow.Schema {
	cols := t.Columns()
	fields := make([]arrow.Field, len(cols))
	for i, name := range cols {
		fields[i] = arrow.Field{Name: name, Type: inferType(t, name), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

func inferType(t *table.Table, col string) arrow.DataType {
	hasDate := false
	allNumeric := true
	nonNull := 0
	for i := 0; i < t.Len(); i++ {
		v := t.Get(i, col)
		switch v.Kind() {
		case table.KindNull:
			continue
		case table.KindTime:
			hasDate = true
		case table.KindNumber:
		default:
			allNumeric = false
		}
		nonNull++
	}
	switch {
	case hasDate:
		return arrow.FixedWidthTypes.Date32
	case allNumeric && nonNull > 0:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

func appendCell(b array.Builder, v table.Value) {
	if v.IsNull() {
		b.AppendNull()
		return
	}
	switch builder := b.(type) {
	case *array.Date32Builder:
		if v.Kind() == table.KindTime {
			builder.Append(arrow.Date32FromTime(v.Date()))
		} else {
			builder.AppendNull()
		}
	case *array.Float64Builder:
		if f, ok := v.AsNumber(); ok {
			builder.Append(f)
		} else {
			builder.AppendNull()
		}
	case *array.StringBuilder:
		builder.Append(v.AsString())
	default:
		b.AppendNull()
	}
}
