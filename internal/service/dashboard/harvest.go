package dashboard

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/ledger"
	"github.com/Arnold-CK/Anjo/internal/ledger/format"
)

const topGreenhouses = 6

func harvestsView(rows []models.Harvest, sales []models.Sale) *models.View {
	total := ledger.Totals(rows)
	groups := ledger.GroupBy(rows, ledger.ByAttribute[models.Harvest](models.AttrCustomer))
	structures := ledger.GroupBy(rows, ledger.ByAttribute[models.Harvest](models.AttrStructure))

	avg := decimal.Zero
	if total.Count > 0 {
		avg = total.Quantity.Div(decimal.NewFromInt(int64(total.Count)))
	}

	sold := SoldInWindow(rows, sales)
	balance := total.Quantity.Sub(sold)

	return &models.View{
		Empty: len(rows) == 0,
		Metrics: []models.Metric{
			countMetric(MetricHarvestEvents, "Total Harvests", total.Count),
			kgMetric(MetricHarvestVolume, "Harvest Volume", total.Quantity),
			kgMetric(MetricAvgPerHarvest, "Avg per Harvest", avg),
			countMetric(MetricActiveGreenhouse, "Active Greenhouses", len(structures)),
			kgMetric(MetricTotalSold, "Total Sold", sold),
			kgMetric(MetricStockBalance, "Stock Balance", balance),
			{Key: MetricStockBalancePct, Label: "Stock Balance of Harvest", Value: format.Percent(balance, total.Quantity), Raw: percentRaw(balance, total.Quantity)},
		},
		Groups: groupViews(groups, harvestColumns, func(g ledger.Group[models.Harvest]) string {
			return fmt.Sprintf("%s - %s kg", label(g.Label), format.Quantity(g.Quantity))
		}, HarvestCells),
		Series: []models.Series{
			groupSeries("daily_trend", "Harvest trend", datedGroups(ledger.GroupBy(rows, ledger.ByDay[models.Harvest]())), quantity),
			topStructures(structures),
		},
		LinePerformance: LinePerformance(rows),
	}
}

func kgMetric(key, lbl string, v decimal.Decimal) models.Metric {
	return models.Metric{Key: key, Label: lbl, Value: format.Quantity(v) + " kg", Raw: v}
}

func percentRaw(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).Div(whole).Round(1)
}

// SoldInWindow sums the quantity of sales dated within the harvests' date range.
func SoldInWindow(harvests []models.Harvest, sales []models.Sale) decimal.Decimal {
	from, to, ok := ledger.DateRange(harvests)
	if !ok {
		return decimal.Zero
	}

	sold := decimal.Zero
	for _, s := range sales {
		d, dated := s.RecordDate()
		if dated && !d.Before(from) && !d.After(to) {
			sold = sold.Add(s.Quantity)
		}
	}
	return sold
}

func topStructures(structures []ledger.Group[models.Harvest]) models.Series {
	ranked := slices.Clone(structures)
	slices.SortStableFunc(ranked, func(a, b ledger.Group[models.Harvest]) int {
		return b.Quantity.Cmp(a.Quantity)
	})
	if len(ranked) > topGreenhouses {
		ranked = ranked[:topGreenhouses]
	}
	return groupSeries("top_greenhouses", "Top greenhouses", ranked, quantity)
}

// LinePerformance summarises each planting line of each greenhouse over
// harvests recorded line by line. Only non-zero line readings count. Results
// are ordered by structure, then average volume descending.
func LinePerformance(rows []models.Harvest) []models.LinePerformance {
	type acc struct {
		total decimal.Decimal
		count int
	}
	per := make(map[string]*[models.LineCount]acc)
	for _, h := range rows {
		if !h.HasLines() {
			continue
		}
		lines, ok := per[h.Structure]
		if !ok {
			lines = new([models.LineCount]acc)
			for i := range lines {
				lines[i].total = decimal.Zero
			}
			per[h.Structure] = lines
		}
		for i, v := range h.Lines {
			if v.IsPositive() {
				lines[i].total = lines[i].total.Add(v)
				lines[i].count++
			}
		}
	}

	var out []models.LinePerformance
	for structure, lines := range per {
		for i, a := range lines {
			if a.count == 0 {
				continue
			}
			out = append(out, models.LinePerformance{
				Structure:    structure,
				Line:         fmt.Sprintf("Line %d", i+1),
				AvgVolume:    a.total.Div(decimal.NewFromInt(int64(a.count))).Round(2),
				HarvestCount: a.count,
				TotalVolume:  a.total,
			})
		}
	}

	slices.SortFunc(out, func(a, b models.LinePerformance) int {
		if c := cmp.Compare(a.Structure, b.Structure); c != 0 {
			return c
		}
		if c := b.AvgVolume.Cmp(a.AvgVolume); c != 0 {
			return c
		}
		return cmp.Compare(a.Line, b.Line)
	})
	return out
}
