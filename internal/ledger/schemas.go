package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
)

// Target field names shared across domain layouts.
const (
	FieldID            = "ID"
	FieldInstanceID    = "InstanceID"
	FieldTimestamp     = "Timestamp"
	FieldDate          = "Date"
	FieldItem          = "Item"
	FieldCategory      = "Category"
	FieldAmount        = "Amount"
	FieldEnteredBy     = "EnteredBy"
	FieldCustomer      = "Customer"
	FieldSize          = "Size"
	FieldUnit          = "Unit"
	FieldQuantity      = "Quantity"
	FieldUnitPrice     = "UnitPrice"
	FieldTotalPrice    = "TotalPrice"
	FieldStructure     = "Structure"
	FieldTotal         = "Total"
	FieldQuantitySmall = "QuantitySmall"
	FieldQuantityBig   = "QuantityBig"
	FieldPriceSmall    = "UnitPriceSmall"
	FieldPriceBig      = "UnitPriceBig"
	FieldTotalSmall    = "TotalPriceSmall"
	FieldTotalBig      = "TotalPriceBig"
	FieldReason        = "Reason"
	FieldName          = "Name"
	FieldLocation      = "Location"
	FieldContactPerson = "ContactPerson"
	FieldPhoneNumber   = "PhoneNumber"
	FieldEmail         = "Email"
)

// LineField names the per-line quantity field n (1-based).
func LineField(n int) string { return fmt.Sprintf("Line_%d", n) }

var enteredByAliases = map[string]string{
	"Entered By":               FieldEnteredBy,
	"Entered_By":               FieldEnteredBy,
	"data-bio_data-entered_by": FieldEnteredBy,
}

func aliases(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// CostSchema reads both the legacy "Expenses" export and the "Costs" form
// sheet. A cost needs a date, a catalog category and a positive amount.
var CostSchema = Schema[models.Cost]{
	Layout: Layout{
		Name: "costs",
		Fields: []Field{
			{FieldID, KindText},
			{FieldDate, KindDate},
			{FieldItem, KindText},
			{FieldCategory, KindText},
			{FieldAmount, KindNumber},
			{FieldEnteredBy, KindText},
			{FieldTimestamp, KindTimestamp},
		},
		Required: []string{FieldDate, FieldCategory, FieldAmount},
		Aliases: aliases(enteredByAliases, map[string]string{
			"data-meta-instanceID":        FieldID,
			"KEY":                         FieldID,
			"data-bio_data-date":          FieldDate,
			"data-bio_data-item":          FieldItem,
			"data-bio_data-cost_category": FieldCategory,
			"data-bio_data-total_cost":    FieldAmount,
			"Cost Category":               FieldCategory,
			"Total Cost":                  FieldAmount,
		}),
		Derive: func(r Row) Row {
			if c, ok := models.CanonicalCategory(r.Text(FieldCategory)); ok {
				r[FieldCategory] = c
			}
			return r
		},
	},
	Decode: func(r Row) (models.Cost, bool) {
		date, ok := r.Date(FieldDate)
		if !ok {
			return models.Cost{}, false
		}
		category, known := models.CanonicalCategory(r.Text(FieldCategory))
		amount := r.Number(FieldAmount)
		if !known || !amount.IsPositive() {
			return models.Cost{}, false
		}
		return models.Cost{
			ID:        r.Text(FieldID),
			Date:      date,
			Item:      r.Text(FieldItem),
			Category:  category,
			Amount:    amount,
			EnteredBy: r.Text(FieldEnteredBy),
			Timestamp: timestampPtr(r),
		}, true
	},
}

// SaleSchema reads the sales sheet. Legacy rows carry separate big and small
// column sets and the row's size selects one. TotalPrice is always
// Quantity x UnitPrice when both are known.
var SaleSchema = Schema[models.Sale]{
	Layout: Layout{
		Name: "sales",
		Fields: []Field{
			{FieldID, KindText},
			{FieldDate, KindDate},
			{FieldCustomer, KindText},
			{FieldSize, KindText},
			{FieldUnit, KindText},
			{FieldQuantity, KindNumber},
			{FieldUnitPrice, KindNumber},
			{FieldTotalPrice, KindNumber},
			{FieldQuantitySmall, KindNumber},
			{FieldPriceSmall, KindNumber},
			{FieldTotalSmall, KindNumber},
			{FieldQuantityBig, KindNumber},
			{FieldPriceBig, KindNumber},
			{FieldTotalBig, KindNumber},
			{FieldEnteredBy, KindText},
			{FieldTimestamp, KindTimestamp},
		},
		Required: []string{FieldDate, FieldCustomer},
		Aliases: aliases(enteredByAliases, map[string]string{
			"data-meta-instanceID":              FieldID,
			"KEY":                               FieldID,
			"data-bio_data-date":                FieldDate,
			"data-bio_data-customer":            FieldCustomer,
			"data-bio_data-size":                FieldSize,
			"data-size_small-quantity_small":    FieldQuantitySmall,
			"data-size_small-unit_price_small":  FieldPriceSmall,
			"data-size_small-total_price_small": FieldTotalSmall,
			"data-size_big-quantity_big":        FieldQuantityBig,
			"data-size_big-unit_price_big":      FieldPriceBig,
			"data-size_big-total_price_big":     FieldTotalBig,
			"Unit Price":                        FieldUnitPrice,
			"Total Price":                       FieldTotalPrice,
		}),
		Derive: deriveSale,
	},
	Decode: func(r Row) (models.Sale, bool) {
		date, ok := r.Date(FieldDate)
		customer := r.Text(FieldCustomer)
		if !ok || customer == "" {
			return models.Sale{}, false
		}
		return models.Sale{
			ID:         r.Text(FieldID),
			Date:       date,
			Customer:   customer,
			Size:       r.Text(FieldSize),
			Unit:       r.Text(FieldUnit),
			Quantity:   r.Number(FieldQuantity),
			UnitPrice:  r.Number(FieldUnitPrice),
			TotalPrice: r.Number(FieldTotalPrice),
			EnteredBy:  r.Text(FieldEnteredBy),
		}, true
	},
}

func deriveSale(r Row) Row {
	size := strings.ToLower(r.Text(FieldSize))
	r[FieldSize] = size

	variant := map[string][3]string{
		"small": {FieldQuantitySmall, FieldPriceSmall, FieldTotalSmall},
		"big":   {FieldQuantityBig, FieldPriceBig, FieldTotalBig},
	}
	if cols, ok := variant[size]; ok {
		for i, target := range []string{FieldQuantity, FieldUnitPrice, FieldTotalPrice} {
			if r.Number(target).IsZero() {
				r[target] = r.Number(cols[i])
			}
		}
	}

	if r.Text(FieldUnit) == "" {
		r[FieldUnit] = "kg"
	}

	qty, price := r.Number(FieldQuantity), r.Number(FieldUnitPrice)
	if !qty.IsZero() && !price.IsZero() {
		r[FieldTotalPrice] = qty.Mul(price)
	}
	return r
}

// HarvestSchema reads both harvest layouts: the legacy form export (the
// "data-structures_repeat" sheet joined to "Sheet1" on the instance id) and
// the "Final Harvests" sheet with nine per-line quantities.
var HarvestSchema = Schema[models.Harvest]{
	Layout: Layout{
		Name:     "harvests",
		Fields:   harvestFields(),
		Required: []string{FieldDate},
		Aliases:  harvestAliases(),
		Derive:   deriveHarvest,
	},
	Decode: decodeHarvest,
}

func harvestFields() []Field {
	fields := []Field{
		{FieldID, KindText},
		{FieldInstanceID, KindText},
		{FieldTimestamp, KindTimestamp},
		{FieldDate, KindDate},
		{FieldCustomer, KindText},
		{FieldStructure, KindText},
		{FieldEnteredBy, KindText},
		{FieldQuantitySmall, KindNumber},
		{FieldQuantityBig, KindNumber},
		{FieldTotal, KindNumber},
		{FieldQuantity, KindNumber},
	}
	for n := 1; n <= models.LineCount; n++ {
		fields = append(fields, Field{LineField(n), KindNumber})
	}
	return fields
}

func harvestAliases() map[string]string {
	m := aliases(enteredByAliases, map[string]string{
		"KEY":                                                   FieldID,
		"PARENT_KEY":                                            FieldInstanceID,
		"data-meta-instanceID":                                  FieldInstanceID,
		"data-bio_data-date":                                    FieldDate,
		"data-bio_data-client_name":                             FieldCustomer,
		"data-structures_repeat-structure_name":                 FieldStructure,
		"data-structures_repeat-size_small-quantity_small_size": FieldQuantitySmall,
		"data-structures_repeat-size_big-quantity_big_size":     FieldQuantityBig,
		"Date of harvest":                                       FieldDate,
		"Customer/Destination":                                  FieldCustomer,
		"Greenhouse":                                            FieldStructure,
		"Quantity harvested in kgs":                             LineField(1),
		"Unnamed: 11":                                           FieldTotal,
	})
	// Lines 2..9 sit under blank headers (columns 3..10) or under "1".."8"
	// when the header row was written by the entry form.
	for n := 2; n <= models.LineCount; n++ {
		m[fmt.Sprintf("Unnamed: %d", n+1)] = LineField(n)
		m[fmt.Sprint(n-1)] = LineField(n)
	}
	for n := 1; n <= models.LineCount; n++ {
		m[fmt.Sprintf("Line %d", n)] = LineField(n)
	}
	return m
}

func deriveHarvest(r Row) Row {
	lines := decimal.Zero
	for n := 1; n <= models.LineCount; n++ {
		lines = lines.Add(r.Number(LineField(n)))
	}
	legacy := r.Number(FieldQuantitySmall).Add(r.Number(FieldQuantityBig))

	switch {
	case lines.IsPositive():
		r[FieldQuantity] = lines
	case r.Number(FieldTotal).IsPositive():
		r[FieldQuantity] = r.Number(FieldTotal)
	case legacy.IsPositive():
		r[FieldQuantity] = legacy
	}
	return r
}

func decodeHarvest(r Row) (models.Harvest, bool) {
	date, ok := r.Date(FieldDate)
	structure := r.Text(FieldStructure)
	if !ok || structure == "" {
		return models.Harvest{}, false
	}

	h := models.Harvest{
		Date:      date,
		Customer:  r.Text(FieldCustomer),
		Structure: structure,
		Quantity:  r.Number(FieldQuantity),
		EnteredBy: r.Text(FieldEnteredBy),
		Source:    models.HarvestSourceLines,
	}
	for n := 1; n <= models.LineCount; n++ {
		h.Lines[n-1] = r.Number(LineField(n))
	}

	// Only the legacy export issues row keys. Rows from the lines sheet stay
	// unkeyed so identical entries are all counted.
	if r.Text(FieldInstanceID) != "" {
		h.Source = models.HarvestSourceLegacy
		if key := r.Text(FieldID); key != "" {
			h.ID = "legacy:" + key
		}
	}
	return h, true
}

// DepositSchema reads the "Deposits" sheet. Undated deposits are kept.
var DepositSchema = Schema[models.Deposit]{
	Layout: Layout{
		Name: "deposits",
		Fields: []Field{
			{FieldTimestamp, KindTimestamp},
			{FieldDate, KindDate},
			{FieldAmount, KindNumber},
			{FieldEnteredBy, KindText},
		},
		Required: []string{FieldDate, FieldAmount},
		Aliases:  aliases(enteredByAliases),
	},
	Decode: func(r Row) (models.Deposit, bool) {
		d := models.Deposit{
			Timestamp: timestampPtr(r),
			Amount:    r.Number(FieldAmount),
			EnteredBy: r.Text(FieldEnteredBy),
		}
		d.Date, _ = r.Date(FieldDate)
		return d, true
	},
}

// WithdrawalSchema reads the "Withdraws" sheet. Undated withdrawals are kept.
var WithdrawalSchema = Schema[models.Withdrawal]{
	Layout: Layout{
		Name: "withdrawals",
		Fields: []Field{
			{FieldTimestamp, KindTimestamp},
			{FieldDate, KindDate},
			{FieldAmount, KindNumber},
			{FieldReason, KindText},
			{FieldEnteredBy, KindText},
		},
		Required: []string{FieldDate, FieldAmount},
		Aliases:  aliases(enteredByAliases),
	},
	Decode: func(r Row) (models.Withdrawal, bool) {
		w := models.Withdrawal{
			Timestamp: timestampPtr(r),
			Amount:    r.Number(FieldAmount),
			Reason:    r.Text(FieldReason),
			EnteredBy: r.Text(FieldEnteredBy),
		}
		w.Date, _ = r.Date(FieldDate)
		return w, true
	},
}

// CustomerSchema reads the customer directory.
var CustomerSchema = Schema[models.Customer]{
	Layout: Layout{
		Name: "customers",
		Fields: []Field{
			{FieldName, KindText},
			{FieldLocation, KindText},
			{FieldContactPerson, KindText},
			{FieldPhoneNumber, KindText},
			{FieldEmail, KindText},
		},
		Required: []string{FieldName},
		Aliases: map[string]string{
			"Contact Person": FieldContactPerson,
			"Phone Number":   FieldPhoneNumber,
			"Phone":          FieldPhoneNumber,
		},
	},
	Decode: func(r Row) (models.Customer, bool) {
		c := models.Customer{
			Name:          r.Text(FieldName),
			Location:      r.Text(FieldLocation),
			ContactPerson: r.Text(FieldContactPerson),
			PhoneNumber:   r.Text(FieldPhoneNumber),
			Email:         r.Text(FieldEmail),
		}
		return c, c.Name != ""
	},
}

func timestampPtr(r Row) *time.Time {
	if ts, ok := r.Date(FieldTimestamp); ok {
		return &ts
	}
	return nil
}
