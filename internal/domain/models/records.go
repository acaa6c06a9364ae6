package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Attribute names exposed by records to categorical filters and grouping.
const (
	AttrCategory  = "category"
	AttrCustomer  = "customer"
	AttrStructure = "structure"
	AttrSize      = "size"
	AttrReason    = "reason"
)

// LineCount is the number of planting lines tracked per greenhouse.
const LineCount = 9

// Cost is one expense line item.
type Cost struct {
	ID        string          `json:"id,omitempty"`
	Date      time.Time       `json:"date"`
	Item      string          `json:"item"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	EnteredBy string          `json:"entered_by,omitempty"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
}

// RecordKey, RecordDate, Measure, Value and Attribute make Cost a ledger
// record. RecordKey is the source-issued row key, or "" when the sheet has none.
func (c Cost) RecordKey() string             { return c.ID }
func (c Cost) RecordDate() (time.Time, bool) { return c.Date, !c.Date.IsZero() }
func (c Cost) Measure() decimal.Decimal      { return decimal.Zero }
func (c Cost) Value() decimal.Decimal        { return c.Amount }
func (c Cost) Attribute(name string) (string, bool) {
	if name == AttrCategory {
		return c.Category, true
	}
	return "", false
}

// Sale is one sale of produce to a customer.
type Sale struct {
	ID         string          `json:"id,omitempty"`
	Date       time.Time       `json:"date"`
	Customer   string          `json:"customer"`
	Size       string          `json:"size"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	EnteredBy  string          `json:"entered_by,omitempty"`
}

// RecordKey is the form instance id of the sale, or "".
func (s Sale) RecordKey() string             { return s.ID }
func (s Sale) RecordDate() (time.Time, bool) { return s.Date, !s.Date.IsZero() }
func (s Sale) Measure() decimal.Decimal      { return s.Quantity }
func (s Sale) Value() decimal.Decimal        { return s.TotalPrice }

func (s Sale) Attribute(name string) (string, bool) {
	switch name {
	case AttrCustomer:
		return s.Customer, true
	case AttrSize:
		return s.Size, true
	default:
		return "", false
	}
}

// HarvestSource marks which sheet layout a harvest row came from.
type HarvestSource string

const (
	HarvestSourceLegacy HarvestSource = "legacy"
	HarvestSourceLines  HarvestSource = "lines"
)

// Harvest is one pick from one greenhouse, destined for one customer.
type Harvest struct {
	ID        string                     `json:"id,omitempty"`
	Date      time.Time                  `json:"date"`
	Customer  string                     `json:"customer"`
	Structure string                     `json:"structure"`
	Lines     [LineCount]decimal.Decimal `json:"lines"`
	Quantity  decimal.Decimal            `json:"quantity"`
	EnteredBy string                     `json:"entered_by,omitempty"`
	Source    HarvestSource              `json:"source"`
}

// RecordKey is the legacy export row key. Harvests from the lines sheet have none.
func (h Harvest) RecordKey() string             { return h.ID }
func (h Harvest) RecordDate() (time.Time, bool) { return h.Date, !h.Date.IsZero() }
func (h Harvest) Measure() decimal.Decimal      { return h.Quantity }
func (h Harvest) Value() decimal.Decimal        { return decimal.Zero }

func (h Harvest) Attribute(name string) (string, bool) {
	switch name {
	case AttrCustomer:
		return h.Customer, true
	case AttrStructure:
		return h.Structure, true
	default:
		return "", false
	}
}

// HasLines reports whether any per-line quantity was recorded.
func (h Harvest) HasLines() bool {
	for _, v := range h.Lines {
		if v.IsPositive() {
			return true
		}
	}
	return false
}

// Deposit is money paid into the farm account.
type Deposit struct {
	Timestamp *time.Time      `json:"timestamp,omitempty"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	EnteredBy string          `json:"entered_by,omitempty"`
}

// RecordKey is always empty: the deposits sheet issues no row keys.
func (d Deposit) RecordKey() string               { return "" }
func (d Deposit) RecordDate() (time.Time, bool)   { return d.Date, !d.Date.IsZero() }
func (d Deposit) Measure() decimal.Decimal        { return decimal.Zero }
func (d Deposit) Value() decimal.Decimal          { return d.Amount }
func (d Deposit) Attribute(string) (string, bool) { return "", false }

// Withdrawal is money taken out of the farm account.
type Withdrawal struct {
	Timestamp *time.Time      `json:"timestamp,omitempty"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	EnteredBy string          `json:"entered_by,omitempty"`
}

// RecordKey is always empty: the withdrawals sheet issues no row keys.
func (w Withdrawal) RecordKey() string             { return "" }
func (w Withdrawal) RecordDate() (time.Time, bool) { return w.Date, !w.Date.IsZero() }
func (w Withdrawal) Measure() decimal.Decimal      { return decimal.Zero }
func (w Withdrawal) Value() decimal.Decimal        { return w.Amount }

func (w Withdrawal) Attribute(name string) (string, bool) {
	if name == AttrReason {
		return w.Reason, true
	}
	return "", false
}

// Customer is an entry of the customer directory.
type Customer struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	ContactPerson string `json:"contact_person"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email,omitempty"`
}

// DisplayName is the trimmed name used for listings and joins.
func (c Customer) DisplayName() string {
	return strings.TrimSpace(c.Name)
}
