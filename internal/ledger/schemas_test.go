package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostSchemaCanonicalizesCategories(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"data-bio_data-date", "data-bio_data-item", "data-bio_data-cost_category", "data-bio_data-total_cost", "KEY"},
		{"01/03/24", "Casual labour", "wages_&_salaries", "50,000", "uuid:1"},
		{"02/03/24", "Mystery", "unicorns", "100", "uuid:2"},
		{"03/03/24", "Free", "Yaka", "0", "uuid:3"},
	})

	out, err := ledger.CostSchema.Run(raw)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, 2, out.Rejected)

	c := out.Records[0]
	assert.Equal(t, "uuid:1", c.ID)
	assert.Equal(t, "Wages & Salaries", c.Category)
	assert.Equal(t, "Casual labour", c.Item)
	assert.True(t, dec("50000").Equal(c.Amount))
}

func TestCostSchemaFormRowsHaveNoKey(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"Timestamp", "Date", "Item", "Category", "Amount", "Entered By"},
		{"01-Mar-2024 09:00:00 EAT", "01-Mar-2024", "Nails", "Tools & Equipment", "12000", "Anna"},
	})

	out, err := ledger.CostSchema.Run(raw)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Empty(t, out.Records[0].RecordKey())
	require.NotNil(t, out.Records[0].Timestamp)
	assert.Equal(t, "Anna", out.Records[0].EnteredBy)
}

func TestSaleSchemaComputesTotalPrice(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"Date", "Customer", "Quantity", "Unit Price"},
		{"01/03/24", "Acme", "10", "1500"},
	})

	out, err := ledger.SaleSchema.Run(raw)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)

	s := out.Records[0]
	assert.True(t, dec("15000").Equal(s.TotalPrice))
	assert.Equal(t, "kg", s.Unit)
}

func TestSaleSchemaSelectsLegacySizeColumns(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{
			"data-bio_data-date", "data-bio_data-customer", "data-bio_data-size",
			"data-size_small-quantity_small", "data-size_small-unit_price_small", "data-size_small-total_price_small",
			"data-size_big-quantity_big", "data-size_big-unit_price_big", "data-size_big-total_price_big",
		},
		{"01/03/24", "Acme", "Big", "", "", "", "20", "2000", "40000"},
		{"02/03/24", "Beta", "small", "5", "1000", "5000", "", "", ""},
	})

	out, err := ledger.SaleSchema.Run(raw)
	require.NoError(t, err)
	require.Len(t, out.Records, 2)

	big := out.Records[0]
	assert.Equal(t, "big", big.Size)
	assert.True(t, dec("20").Equal(big.Quantity))
	assert.True(t, dec("2000").Equal(big.UnitPrice))
	assert.True(t, dec("40000").Equal(big.TotalPrice))

	small := out.Records[1]
	assert.Equal(t, "small", small.Size)
	assert.True(t, dec("5").Equal(small.Quantity))
	assert.True(t, dec("5000").Equal(small.TotalPrice))
}

func TestSaleSchemaRejectsRowsWithoutCustomer(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"Date", "Customer", "Quantity"},
		{"01/03/24", "", "3"},
	})
	out, err := ledger.SaleSchema.Run(raw)
	require.NoError(t, err)
	assert.Empty(t, out.Records)
	assert.Equal(t, 1, out.Rejected)
}

func finalHarvestHeader() []interface{} {
	return []interface{}{
		"Timestamp", "Date of harvest", "Quantity harvested in kgs",
		"", "", "", "", "", "", "", "", "",
		"Customer/Destination", "Greenhouse",
	}
}

func TestHarvestSchemaSumsLines(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		finalHarvestHeader(),
		{"14-Oct-2024 10:00:00 EAT", "14/10/24", "5", "0", "0", "3", "0", "0", "0", "0", "2", "", "Acme", "Structure A"},
	})

	out, err := ledger.HarvestSchema.Run(raw)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)

	h := out.Records[0]
	assert.True(t, dec("10").Equal(h.Quantity))
	assert.True(t, dec("5").Equal(h.Lines[0]))
	assert.True(t, dec("3").Equal(h.Lines[3]))
	assert.True(t, dec("2").Equal(h.Lines[8]))
	assert.Equal(t, models.HarvestSourceLines, h.Source)
	assert.Equal(t, "Structure A", h.Structure)
	assert.Equal(t, "Acme", h.Customer)
	assert.True(t, h.HasLines())
	assert.Empty(t, h.RecordKey())
}

func TestHarvestSchemaFallsBackToTotal(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		finalHarvestHeader(),
		{"", "14/10/24", "", "", "", "", "", "", "", "", "", "40 KGS", "Acme", "Structure B"},
	})

	out, err := ledger.HarvestSchema.Run(raw)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.True(t, dec("40").Equal(out.Records[0].Quantity))
	assert.False(t, out.Records[0].HasLines())
}

func TestHarvestSchemaReadsJoinedLegacyExport(t *testing.T) {
	repeat := ledger.FromValues([][]interface{}{
		{
			"KEY", "PARENT_KEY", "data-structures_repeat-structure_name",
			"data-structures_repeat-size_small-quantity_small_size",
			"data-structures_repeat-size_big-quantity_big_size",
		},
		{"k1", "uuid:1", "Structure A", "3", "4"},
		{"k2", "uuid:1", "Structure B", "", "6"},
	})
	parent := ledger.FromValues([][]interface{}{
		{"data-bio_data-date", "data-bio_data-client_name", "data-bio_data-entered_by", "data-meta-instanceID"},
		{"01/03/24", "Acme", "Anna", "uuid:1"},
	})

	joined := ledger.Join(repeat, parent, "PARENT_KEY", "data-meta-instanceID")
	out, err := ledger.HarvestSchema.Run(joined)
	require.NoError(t, err)
	require.Len(t, out.Records, 2)

	first := out.Records[0]
	assert.Equal(t, "legacy:k1", first.ID)
	assert.Equal(t, models.HarvestSourceLegacy, first.Source)
	assert.Equal(t, "Acme", first.Customer)
	assert.Equal(t, "Anna", first.EnteredBy)
	assert.True(t, dec("7").Equal(first.Quantity))

	assert.True(t, dec("6").Equal(out.Records[1].Quantity))
}

func TestHarvestSchemaRejectsRowsWithoutStructure(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		finalHarvestHeader(),
		{"", "14/10/24", "5", "", "", "", "", "", "", "", "", "", "Acme", ""},
	})
	out, err := ledger.HarvestSchema.Run(raw)
	require.NoError(t, err)
	assert.Empty(t, out.Records)
	assert.Equal(t, 1, out.Rejected)
}

func TestWithdrawalSchemaReadsFormRows(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"Timestamp", "Date", "Amount", "Reason", "Entered By"},
		{"01-Mar-2024 09:00:00 EAT", "01/Mar/2024", "20000", "Fuel", "Anna"},
	})
	out, err := ledger.WithdrawalSchema.Run(raw)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)

	w := out.Records[0]
	assert.Empty(t, w.RecordKey())
	assert.Equal(t, "Fuel", w.Reason)
	assert.True(t, dec("20000").Equal(w.Amount))
}

func TestCustomerSchemaAliases(t *testing.T) {
	raw := ledger.FromValues([][]interface{}{
		{"Name", "Location", "Contact Person", "Phone"},
		{"Acme", "Kampala", "Jane", "0700000000"},
		{"", "Nowhere", "", ""},
	})
	out, err := ledger.CustomerSchema.Run(raw)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "Jane", out.Records[0].ContactPerson)
	assert.Equal(t, "0700000000", out.Records[0].PhoneNumber)
	assert.Equal(t, 1, out.Rejected)
}
