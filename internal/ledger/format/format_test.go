package format_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnold-CK/Anjo/internal/ledger/format"
)

func TestDateRoundTrip(t *testing.T) {
	d := time.Date(2023, time.October, 8, 0, 0, 0, 0, time.UTC)
	s := format.Date(d)
	assert.Equal(t, "08/Oct/2023", s)

	back, err := format.ParseDate(s)
	require.NoError(t, err)
	assert.True(t, d.Equal(back))

	assert.Equal(t, "", format.Date(time.Time{}))

	_, err = format.ParseDate("2023-10-08")
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "50,000", format.Money(decimal.NewFromInt(50000)))
	assert.Equal(t, "1,235", format.Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-3", format.Money(decimal.RequireFromString("-2.5")))
	assert.Equal(t, "0", format.Money(decimal.Zero))
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "1,234.5", format.Quantity(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "10.0", format.Quantity(decimal.NewFromInt(10)))
	assert.Equal(t, "2.5", format.Number(decimal.RequireFromString("2.50")))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 line items", format.Plural(0, "line item"))
	assert.Equal(t, "1 line item", format.Plural(1, "line item"))
	assert.Equal(t, "2 line items", format.Plural(2, "line item"))
}

func TestMillify(t *testing.T) {
	assert.Equal(t, "1.25M", format.Millify(decimal.NewFromInt(1250000), 2))
	assert.Equal(t, "1.5k", format.Millify(decimal.NewFromInt(1500), 2))
	assert.Equal(t, "3B", format.Millify(decimal.NewFromInt(3000000000), 2))
	assert.Equal(t, "950", format.Millify(decimal.NewFromInt(950), 2))
	assert.Equal(t, "0", format.Millify(decimal.Zero, 2))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "25%", format.Percent(decimal.NewFromInt(1), decimal.NewFromInt(4)))
	assert.Equal(t, "33.3%", format.Percent(decimal.NewFromInt(1), decimal.NewFromInt(3)))
	assert.Equal(t, "0%", format.Percent(decimal.NewFromInt(5), decimal.Zero))
}
