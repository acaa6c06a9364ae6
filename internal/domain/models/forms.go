package models

import "github.com/shopspring/decimal"

// Dates on submissions use FilterDateLayout; an empty date means today.

// CostSubmission is the cost entry form.
type CostSubmission struct {
	Date      string          `json:"date"`
	Item      string          `json:"item"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	EnteredBy string          `json:"entered_by"`
}

// SaleSubmission is the sale entry form.
type SaleSubmission struct {
	Date      string          `json:"date"`
	Customer  string          `json:"customer"`
	Size      string          `json:"size"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	EnteredBy string          `json:"entered_by"`
}

// HarvestSubmission is the harvest entry form. Either Lines or Total is set.
type HarvestSubmission struct {
	Date       string            `json:"date"`
	Customer   string            `json:"customer"`
	Greenhouse string            `json:"greenhouse"`
	Lines      []decimal.Decimal `json:"lines,omitempty"`
	Total      decimal.Decimal   `json:"total"`
	EnteredBy  string            `json:"entered_by"`
}

// DepositSubmission is the deposit entry form.
type DepositSubmission struct {
	Date      string          `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	EnteredBy string          `json:"entered_by"`
}

// WithdrawalSubmission is the withdrawal entry form.
type WithdrawalSubmission struct {
	Date      string          `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	EnteredBy string          `json:"entered_by"`
}

// EntryReceipt acknowledges an appended row.
type EntryReceipt struct {
	Domain    string `json:"domain"`
	Sheet     string `json:"sheet"`
	Timestamp string `json:"timestamp"`
}
