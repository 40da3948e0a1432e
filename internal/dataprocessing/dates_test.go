package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pomerrors "pomet/internal/errors"
	"pomet/internal/table"
)

func TestDateColumns(t *testing.T) {
	tbl := table.New("supplier", "conf_dely_date", "planning_date", "last_update_date", "buyer")
	assert.Equal(t,
		[]string{"conf_dely_date", "planning_date", "last_update_date"},
		DateColumns(tbl),
		"every column whose name contains date is discovered")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		v    table.Value
		want time.Time
		ok   bool
	}{
		{"iso", table.String("2024-01-05"), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"us slash", table.String("1/5/2024"), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"spreadsheet default", table.String("01-05-24"), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"excel serial", table.Number(45297), time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), true},
		{"garbage text", table.String("not a date"), time.Time{}, false},
		{"sentinel-like text", table.String("--0"), time.Time{}, false},
		{"null", table.Null, time.Time{}, false},
		{"quantity-sized number", table.Number(0.5), time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.v)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func newDateFixture(t *testing.T, conf, requested table.Value) *table.Table {
	t.Helper()
	tbl := table.New("conf_dely_date", "po_requested_delivery_date", "source_file")
	require.NoError(t, tbl.AppendRow([]table.Value{conf, requested, table.String("a.xlsx")}))
	return tbl
}

func TestReconcileDatesSentinelBecomesNull(t *testing.T) {
	tbl := newDateFixture(t, table.String("--0"), table.Null)
	require.NoError(t, ReconcileDates(tbl, discardLogger()))

	assert.True(t, tbl.Get(0, "conf_dely_date").IsNull(),
		"the --0 sentinel never survives as a parsed date")
}

func TestReconcileDatesBackfill(t *testing.T) {
	tests := []struct {
		name      string
		conf      table.Value
		requested table.Value
		wantNull  bool
		want      time.Time
	}{
		{
			name:      "sentinel filled from requested date",
			conf:      table.String("--0"),
			requested: table.String("2024-01-05"),
			want:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "unparseable filled from requested date",
			conf:      table.String("garbage"),
			requested: table.String("2024-02-10"),
			want:      time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "confirmed date wins when present",
			conf:      table.String("2024-03-01"),
			requested: table.String("2024-01-05"),
			want:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "null only when both null",
			conf:      table.Null,
			requested: table.Null,
			wantNull:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newDateFixture(t, tt.conf, tt.requested)
			require.NoError(t, ReconcileDates(tbl, discardLogger()))

			got := tbl.Get(0, "conf_dely_date")
			if tt.wantNull {
				assert.True(t, got.IsNull())
				return
			}
			require.Equal(t, table.KindTime, got.Kind())
			assert.Equal(t, tt.want, got.Date())
		})
	}
}

func TestReconcileDatesParsesEveryDateColumn(t *testing.T) {
	tbl := table.New("conf_dely_date", "po_requested_delivery_date", "planning_date")
	require.NoError(t, tbl.AppendRow([]table.Value{
		table.String("2024-01-10"), table.String("2024-01-05"), table.String("2024-01-08"),
	}))

	require.NoError(t, ReconcileDates(tbl, discardLogger()))

	for _, col := range []string{"conf_dely_date", "po_requested_delivery_date", "planning_date"} {
		assert.Equal(t, table.KindTime, tbl.Get(0, col).Kind(), col)
	}
}

func TestReconcileDatesMissingRequiredColumn(t *testing.T) {
	tbl := table.New("planning_date")
	require.NoError(t, tbl.AppendRow([]table.Value{table.String("2024-01-08")}))

	err := ReconcileDates(tbl, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, pomerrors.ErrDateProcessing)
}
