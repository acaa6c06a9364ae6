package dashboard

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/ledger"
	"github.com/Arnold-CK/Anjo/internal/ledger/format"
)

// Metric keys shared with clients.
const (
	MetricTotalCost        = "total_cost"
	MetricAvgMonthlyCost   = "avg_monthly_cost"
	MetricLineItems        = "line_items"
	MetricTotalQuantity    = "total_quantity"
	MetricTotalRevenue     = "total_revenue"
	MetricCustomersServed  = "customers_served"
	MetricAvgUnitPrice     = "avg_unit_price"
	MetricHarvestEvents    = "harvest_events"
	MetricHarvestVolume    = "harvest_volume"
	MetricAvgPerHarvest    = "avg_per_harvest"
	MetricActiveGreenhouse = "active_greenhouses"
	MetricTotalSold        = "total_sold"
	MetricStockBalance     = "stock_balance"
	MetricStockBalancePct  = "stock_balance_pct"
	MetricTotalDeposited   = "total_deposited"
	MetricTotalWithdrawn   = "total_withdrawn"
	MetricEntries          = "entries"
)

var (
	costColumns       = []string{"Date", "Item", "Category", "Amount", "Entered By"}
	saleColumns       = []string{"Date", "Customer", "Size", "Unit", "Quantity", "Unit Price", "Total Price", "Entered By"}
	harvestColumns    = []string{"Date", "Customer", "Structure", "Quantity", "Entered By"}
	depositColumns    = []string{"Date", "Amount", "Entered By"}
	withdrawalColumns = []string{"Date", "Amount", "Reason", "Entered By"}
)

// Columns returns the display columns of a domain's tables.
func Columns(domain models.Domain) []string {
	switch domain {
	case models.DomainCosts:
		return costColumns
	case models.DomainSales:
		return saleColumns
	case models.DomainHarvests:
		return harvestColumns
	case models.DomainDeposits:
		return depositColumns
	case models.DomainWithdrawals:
		return withdrawalColumns
	default:
		return nil
	}
}

// CostCells formats a cost for display.
func CostCells(c models.Cost) []string {
	return []string{format.Date(c.Date), c.Item, c.Category, format.Money(c.Amount), c.EnteredBy}
}

// SaleCells formats a sale for display.
func SaleCells(s models.Sale) []string {
	return []string{
		format.Date(s.Date), s.Customer, s.Size, s.Unit,
		format.Number(s.Quantity), format.Money(s.UnitPrice), format.Money(s.TotalPrice), s.EnteredBy,
	}
}

// HarvestCells formats a harvest for display.
func HarvestCells(h models.Harvest) []string {
	return []string{format.Date(h.Date), h.Customer, h.Structure, format.Quantity(h.Quantity), h.EnteredBy}
}

// DepositCells formats a deposit for display.
func DepositCells(d models.Deposit) []string {
	return []string{format.Date(d.Date), format.Money(d.Amount), d.EnteredBy}
}

// WithdrawalCells formats a withdrawal for display.
func WithdrawalCells(w models.Withdrawal) []string {
	return []string{format.Date(w.Date), format.Money(w.Amount), w.Reason, w.EnteredBy}
}

func groupViews[T ledger.Record](groups []ledger.Group[T], columns []string, title func(ledger.Group[T]) string, cells func(T) []string) []models.GroupView {
	out := make([]models.GroupView, 0, len(groups))
	for _, g := range groups {
		gv := models.GroupView{
			Key:      g.Key,
			Title:    title(g),
			Count:    g.Count,
			Quantity: g.Quantity,
			Money:    g.Money,
			Columns:  columns,
			Rows:     make([]models.TableRow, 0, len(g.Rows)),
		}
		for i, r := range g.Rows {
			gv.Rows = append(gv.Rows, models.TableRow{Index: i + 1, Cells: cells(r)})
		}
		out = append(out, gv)
	}
	return out
}

func groupSeries[T ledger.Record](key, title string, groups []ledger.Group[T], value func(ledger.Summary) decimal.Decimal) models.Series {
	s := models.Series{Key: key, Title: title, Points: make([]models.SeriesPoint, 0, len(groups))}
	for _, g := range groups {
		s.Points = append(s.Points, models.SeriesPoint{Label: label(g.Label), Value: value(g.Summary)})
	}
	return s
}

func label(l string) string {
	if l == "" {
		return "Unspecified"
	}
	return l
}

func money(s ledger.Summary) decimal.Decimal    { return s.Money }
func quantity(s ledger.Summary) decimal.Decimal { return s.Quantity }

func countMetric(key, lbl string, n int) models.Metric {
	return models.Metric{Key: key, Label: lbl, Value: strconv.Itoa(n), Raw: decimal.NewFromInt(int64(n))}
}

func costsView(rows []models.Cost) *models.View {
	total := ledger.Totals(rows)
	groups := ledger.GroupBy(rows, ledger.ByAttribute[models.Cost](models.AttrCategory))
	months := ledger.GroupBy(rows, ledger.ByMonth[models.Cost]())

	dated := 0
	for _, m := range months {
		if m.Key != "" {
			dated++
		}
	}
	avg := total.Money
	if dated > 0 {
		avg = total.Money.Div(decimal.NewFromInt(int64(dated)))
	}

	stacked := models.Series{Key: "by_month_category", Title: "Monthly costs by category"}
	for _, m := range months {
		for _, c := range ledger.GroupBy(m.Rows, ledger.ByAttribute[models.Cost](models.AttrCategory)) {
			stacked.Points = append(stacked.Points, models.SeriesPoint{Label: m.Label, Group: label(c.Label), Value: c.Money})
		}
	}

	return &models.View{
		Empty: len(rows) == 0,
		Metrics: []models.Metric{
			{Key: MetricTotalCost, Label: "Total Costs", Value: format.Millify(total.Money, 2), Raw: total.Money},
			{Key: MetricAvgMonthlyCost, Label: "Average Monthly Cost", Value: format.Millify(avg, 2), Raw: avg},
			countMetric(MetricLineItems, "Line Items", total.Count),
		},
		Groups: groupViews(groups, costColumns, func(g ledger.Group[models.Cost]) string {
			return fmt.Sprintf("%s - %s - %s ugx", label(g.Label), format.Plural(g.Count, "line item"), format.Money(g.Money))
		}, CostCells),
		Series: []models.Series{
			groupSeries("by_category", "Costs by category", groups, money),
			groupSeries("by_month", "Monthly costs", datedGroups(months), money),
			stacked,
		},
	}
}

func salesView(rows []models.Sale) *models.View {
	total := ledger.Totals(rows)
	groups := ledger.GroupBy(rows, ledger.ByAttribute[models.Sale](models.AttrCustomer))
	months := ledger.GroupBy(rows, ledger.ByMonth[models.Sale]())

	avgPrice := decimal.Zero
	if !total.Quantity.IsZero() {
		avgPrice = total.Money.Div(total.Quantity)
	}

	return &models.View{
		Empty: len(rows) == 0,
		Metrics: []models.Metric{
			{Key: MetricTotalQuantity, Label: "Total Quantity", Value: format.Quantity(total.Quantity) + " kg", Raw: total.Quantity},
			{Key: MetricTotalRevenue, Label: "Total Revenue", Value: format.Money(total.Money) + " ugx", Raw: total.Money},
			countMetric(MetricCustomersServed, "Customers Served", len(groups)),
			{Key: MetricAvgUnitPrice, Label: "Average Unit Price", Value: format.Money(avgPrice) + " ugx", Raw: avgPrice},
		},
		Groups: groupViews(groups, saleColumns, func(g ledger.Group[models.Sale]) string {
			return fmt.Sprintf("%s - %s kg - %s ugx", label(g.Label), format.Number(g.Quantity), format.Money(g.Money))
		}, SaleCells),
		Series: []models.Series{
			groupSeries("by_customer", "Quantity by customer", groups, quantity),
			groupSeries("by_month", "Monthly revenue", datedGroups(months), money),
		},
	}
}

func depositsView(rows []models.Deposit) *models.View {
	total := ledger.Totals(rows)
	months := ledger.GroupBy(rows, ledger.ByMonth[models.Deposit]())

	return &models.View{
		Empty: len(rows) == 0,
		Metrics: []models.Metric{
			{Key: MetricTotalDeposited, Label: "Total Deposited", Value: format.Money(total.Money) + " UGX", Raw: total.Money},
			countMetric(MetricEntries, "Entries", total.Count),
		},
		Groups: groupViews(months, depositColumns, func(g ledger.Group[models.Deposit]) string {
			return fmt.Sprintf("%s - Total Deposited: %s UGX", g.Label, format.Money(g.Money))
		}, DepositCells),
		Series: []models.Series{groupSeries("by_month", "Monthly deposits", datedGroups(months), money)},
	}
}

func withdrawalsView(rows []models.Withdrawal) *models.View {
	total := ledger.Totals(rows)
	months := ledger.GroupBy(rows, ledger.ByMonth[models.Withdrawal]())

	return &models.View{
		Empty: len(rows) == 0,
		Metrics: []models.Metric{
			{Key: MetricTotalWithdrawn, Label: "Total Withdrawn", Value: format.Money(total.Money) + " UGX", Raw: total.Money},
			countMetric(MetricEntries, "Entries", total.Count),
		},
		Groups: groupViews(months, withdrawalColumns, func(g ledger.Group[models.Withdrawal]) string {
			return fmt.Sprintf("%s - Total Withdrawn: %s UGX", g.Label, format.Money(g.Money))
		}, WithdrawalCells),
		Series: []models.Series{groupSeries("by_month", "Monthly withdrawals", datedGroups(months), money)},
	}
}

// datedGroups drops the undated group.
func datedGroups[T ledger.Record](groups []ledger.Group[T]) []ledger.Group[T] {
	out := make([]ledger.Group[T], 0, len(groups))
	for _, g := range groups {
		if g.Key != "" {
			out = append(out, g)
		}
	}
	return out
}
