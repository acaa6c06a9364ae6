package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/ledger"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   interface{}
		want time.Time
		ok   bool
	}{
		{"01/03/24", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"1/3/2024", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"15/Mar/2024", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), true},
		{"15-Mar-2024", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-15", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), true},
		{"14-Oct-2024 10:00:00 EAT", time.Date(2024, time.October, 14, 0, 0, 0, 0, time.UTC), true},
		{float64(45352), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"32/13/2024", time.Time{}, false},
		{"not a date", time.Time{}, false},
		{"", time.Time{}, false},
		{nil, time.Time{}, false},
		{float64(12), time.Time{}, false},
	}

	for _, tc := range cases {
		got, ok := ledger.ParseDate(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if tc.ok {
			assert.True(t, tc.want.Equal(got), "input %v: got %v", tc.in, got)
		}
	}
}

func TestParseTimestampKeepsTimeOfDay(t *testing.T) {
	got, ok := ledger.ParseTimestamp("14-Oct-2024 10:30:15 EAT")
	require.True(t, ok)
	assert.Equal(t, 10, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, 15, got.Second())

	got, ok = ledger.ParseTimestamp("14/10/2024")
	require.True(t, ok)
	assert.Equal(t, 14, got.Day())
}

func TestParseNumber(t *testing.T) {
	cases := map[interface{}]string{
		"50,000":    "50000",
		"UGX 1,500": "1500",
		"40 KGS":    "40",
		"12.5kg":    "12.5",
		" 7 ":       "7",
		"abc":       "0",
		"":          "0",
		nil:         "0",
		float64(3):  "3",
		int(4):      "4",
	}
	for in, want := range cases {
		got := ledger.ParseNumber(in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), "input %v: got %s", in, got)
	}
}

func TestCoerceKeepsUndatedDepositRows(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"Date", "Amount", "Entered By"},
		{"32/13/2024", "abc", "Anna"},
		{"", "", ""},
	})

	out, err := ledger.DepositSchema.Run(raw)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, 1, out.Empty)

	d := out.Records[0]
	assert.True(t, d.Date.IsZero())
	assert.True(t, d.Amount.IsZero())

	filtered := ledger.Apply(out.Records, models.FilterYears, []string{"2024"})
	assert.Empty(t, filtered)
}

func TestCoerceRejectsUndatedCostRows(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"Date", "Category", "Amount"},
		{"32/13/2024", "Yaka", "abc"},
	})

	out, err := ledger.CostSchema.Run(raw)
	require.NoError(t, err)
	assert.Empty(t, out.Records)
	assert.Equal(t, 1, out.Rejected)
}

func TestCoerceIsIdempotent(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"Date", "Customer", "Size", "Quantity", "Unit Price", "Timestamp"},
		{"01/03/24", " Acme ", "Big", "10", "1,500", "01-Mar-2024 09:00:00 EAT"},
		{"02/03/24", "Beta", "small", "4 kg", "abc", ""},
	})

	table, err := ledger.Normalize(raw, ledger.SaleSchema.Layout)
	require.NoError(t, err)

	once := ledger.Coerce(table, ledger.SaleSchema.Layout)
	twice := ledger.Coerce(once, ledger.SaleSchema.Layout)

	require.Equal(t, once.Len(), twice.Len())
	for i := range once.Rows {
		for _, f := range ledger.SaleSchema.Fields {
			a, b := once.Rows[i][f.Name], twice.Rows[i][f.Name]
			switch x := a.(type) {
			case decimal.Decimal:
				assert.True(t, x.Equal(b.(decimal.Decimal)), "row %d field %s", i, f.Name)
			case time.Time:
				assert.True(t, x.Equal(b.(time.Time)), "row %d field %s", i, f.Name)
			default:
				assert.Equal(t, a, b, "row %d field %s", i, f.Name)
			}
		}
	}
	assert.Equal(t, "Acme", once.Rows[0].Text(ledger.FieldCustomer))
	assert.Equal(t, "big", once.Rows[0].Text(ledger.FieldSize))
}
