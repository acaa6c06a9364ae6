package entry

import (
	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/ledger"
)

// Column orders used when a sheet has no header row yet.
var (
	costOrder = []string{
		ledger.FieldDate, ledger.FieldItem, ledger.FieldCategory, ledger.FieldAmount,
		ledger.FieldEnteredBy, ledger.FieldTimestamp,
	}
	saleOrder = []string{
		ledger.FieldDate, ledger.FieldCustomer, ledger.FieldSize, ledger.FieldUnit, ledger.FieldQuantity,
		ledger.FieldUnitPrice, ledger.FieldTotalPrice, ledger.FieldEnteredBy, ledger.FieldTimestamp,
	}
	harvestOrder    = harvestColumns()
	depositOrder    = []string{ledger.FieldTimestamp, ledger.FieldDate, ledger.FieldAmount, ledger.FieldEnteredBy}
	withdrawalOrder = []string{ledger.FieldTimestamp, ledger.FieldDate, ledger.FieldAmount, ledger.FieldReason, ledger.FieldEnteredBy}
	customerOrder   = []string{ledger.FieldName, ledger.FieldLocation, ledger.FieldContactPerson, ledger.FieldPhoneNumber, ledger.FieldEmail}
)

func harvestColumns() []string {
	cols := []string{ledger.FieldTimestamp, ledger.FieldDate}
	for n := 1; n <= models.LineCount; n++ {
		cols = append(cols, ledger.LineField(n))
	}
	return append(cols, ledger.FieldTotal, ledger.FieldCustomer, ledger.FieldStructure, ledger.FieldEnteredBy)
}

// ComposeRow lays values out under an existing sheet header: each header cell
// is resolved through the layout's aliases and unresolved cells stay blank.
// With no usable header the row follows order.
func ComposeRow(layout ledger.Layout, header []interface{}, values map[string]interface{}, order []string) []interface{} {
	columns := ledger.FromValues([][]interface{}{header}).Columns
	if len(header) == 0 {
		columns = nil
	}

	row := make([]interface{}, len(columns))
	matched := false
	for i, c := range columns {
		row[i] = ""
		if field, ok := layout.Target(c); ok {
			if v, ok := values[field]; ok {
				row[i] = v
				matched = true
			}
		}
	}
	if matched {
		return row
	}

	row = make([]interface{}, len(order))
	for i, field := range order {
		if v, ok := values[field]; ok {
			row[i] = v
		} else {
			row[i] = ""
		}
	}
	return row
}
