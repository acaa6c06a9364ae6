package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyTotals is the exact roll-up of one Monday-to-Sunday week.
type WeeklyTotals struct {
	From          time.Time
	To            time.Time
	Costs         decimal.Decimal
	CostEntries   int
	SalesQuantity decimal.Decimal
	SalesRevenue  decimal.Decimal
	Harvested     decimal.Decimal
	HarvestEvents int
	Deposits      decimal.Decimal
	Withdrawals   decimal.Decimal
}

// NetCash is deposits minus withdrawals for the week.
func (t WeeklyTotals) NetCash() decimal.Decimal {
	return t.Deposits.Sub(t.Withdrawals)
}

// Snapshot converts the totals into the archived form.
func (t WeeklyTotals) Snapshot(createdAt time.Time) WeeklySnapshot {
	return WeeklySnapshot{
		From:             t.From,
		To:               t.To,
		CostsTotal:       t.Costs.InexactFloat64(),
		CostEntries:      t.CostEntries,
		SalesQuantityKg:  t.SalesQuantity.InexactFloat64(),
		SalesRevenue:     t.SalesRevenue.InexactFloat64(),
		HarvestedKg:      t.Harvested.InexactFloat64(),
		HarvestEvents:    t.HarvestEvents,
		DepositsTotal:    t.Deposits.InexactFloat64(),
		WithdrawalsTotal: t.Withdrawals.InexactFloat64(),
		CreatedAt:        createdAt,
	}
}

// WeeklySnapshot is the per-week roll-up archived in MongoDB.
type WeeklySnapshot struct {
	From             time.Time `bson:"from" json:"from"`
	To               time.Time `bson:"to" json:"to"`
	CostsTotal       float64   `bson:"costs_total" json:"costs_total"`
	CostEntries      int       `bson:"cost_entries" json:"cost_entries"`
	SalesQuantityKg  float64   `bson:"sales_quantity_kg" json:"sales_quantity_kg"`
	SalesRevenue     float64   `bson:"sales_revenue" json:"sales_revenue"`
	HarvestedKg      float64   `bson:"harvested_kg" json:"harvested_kg"`
	HarvestEvents    int       `bson:"harvest_events" json:"harvest_events"`
	DepositsTotal    float64   `bson:"deposits_total" json:"deposits_total"`
	WithdrawalsTotal float64   `bson:"withdrawals_total" json:"withdrawals_total"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

// NetCash is deposits minus withdrawals for the week.
func (s WeeklySnapshot) NetCash() float64 {
	return s.DepositsTotal - s.WithdrawalsTotal
}
