package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnold-CK/Anjo/internal/ledger"
)

func TestFromValuesNamesBlankAndDuplicateHeaders(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"Date", "", "Amount", "Amount"},
		{"01/03/24", "x", "5", "6", "extra"},
	})

	assert.Equal(t, []string{"Date", "Unnamed: 1", "Amount", "Amount.1", "Unnamed: 4"}, raw.Columns)
	assert.Equal(t, 1, raw.Len())
	assert.Equal(t, "extra", raw.Cell(0, 4))
}

func TestFromValuesEmpty(t *testing.T) {
	raw := ledger.FromValues(nil)
	assert.Empty(t, raw.Columns)
	assert.Equal(t, 0, raw.Len())
}

func TestCellReadsShortRowsAsNil(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"A", "B", "C"},
		{"1"},
	})
	assert.Nil(t, raw.Cell(0, 2))
	assert.Equal(t, -1, raw.Index("missing"))
}

func TestJoinMatchesOnKeys(t *testing.T) {
	repeat := ledger.FromValues([][]interface{}{
		{"KEY", "PARENT_KEY", "structure"},
		{"k1", "i1", "Structure A"},
		{"k2", "i1", "Structure B"},
		{"k3", "i9", "Structure C"},
	})
	parent := ledger.FromValues([][]interface{}{
		{"data-meta-instanceID", "client", "KEY"},
		{"i1", "Acme", "ignored"},
	})

	joined := ledger.Join(repeat, parent, "PARENT_KEY", "data-meta-instanceID")

	assert.Equal(t, []string{"KEY", "PARENT_KEY", "structure", "data-meta-instanceID", "client"}, joined.Columns)
	require.Equal(t, 2, joined.Len())
	assert.Equal(t, []interface{}{"k1", "i1", "Structure A", "i1", "Acme"}, joined.Rows[0])
	assert.Equal(t, []interface{}{"k2", "i1", "Structure B", "i1", "Acme"}, joined.Rows[1])
}

func TestJoinMissingKeyYieldsNoRows(t *testing.T) {
	left := ledger.FromValues([][]interface{}{{"A"}, {"1"}})
	right := ledger.FromValues([][]interface{}{{"B"}, {"1"}})

	joined := ledger.Join(left, right, "A", "missing")
	assert.Equal(t, []string{"A", "B"}, joined.Columns)
	assert.Equal(t, 0, joined.Len())
}

func TestNormalizeMapsAliasesAndSynthesizesMissingFields(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"data-bio_data-date", "data-bio_data-cost_category", "data-bio_data-total_cost", "Unrelated"},
		{"01/03/24", "rent_&_lease", "200000", "drop me"},
	})

	table, err := ledger.Normalize(raw, ledger.CostSchema.Layout)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	row := table.Rows[0]
	assert.Equal(t, "01/03/24", row[ledger.FieldDate])
	assert.Equal(t, "rent_&_lease", row[ledger.FieldCategory])
	assert.Equal(t, "200000", row[ledger.FieldAmount])
	assert.Contains(t, row, ledger.FieldItem)
	assert.Nil(t, row[ledger.FieldItem])
	assert.NotContains(t, row, "Unrelated")
}

func TestNormalizeFirstNonBlankColumnWins(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"KEY", "data-meta-instanceID", "Date", "Category", "Amount"},
		{"", "uuid:7", "01/03/24", "Yaka", "10"},
	})

	table, err := ledger.Normalize(raw, ledger.CostSchema.Layout)
	require.NoError(t, err)
	assert.Equal(t, "uuid:7", table.Rows[0][ledger.FieldID])
}

func TestNormalizeMissingRequiredColumn(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"Date", "Item"},
		{"01/03/24", "Nails"},
	})

	_, err := ledger.Normalize(raw, ledger.CostSchema.Layout)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrUnavailable))

	_, err = ledger.CostSchema.Run(raw)
	assert.ErrorIs(t, err, ledger.ErrUnavailable)
}
