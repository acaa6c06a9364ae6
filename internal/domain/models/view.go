package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Domain is one append-only ledger of the farm.
type Domain string

const (
	DomainCosts       Domain = "costs"
	DomainSales       Domain = "sales"
	DomainHarvests    Domain = "harvests"
	DomainDeposits    Domain = "deposits"
	DomainWithdrawals Domain = "withdrawals"
)

// Domains lists every ledger in display order.
func Domains() []Domain {
	return []Domain{DomainCosts, DomainSales, DomainHarvests, DomainDeposits, DomainWithdrawals}
}

// ErrUnknownDomain is returned for a domain selector outside Domains.
var ErrUnknownDomain = errors.New("unknown domain")

// ParseDomain resolves a domain selector such as "costs" or "Withdrawals".
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Domains() {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
}

// Metric is one scalar dashboard card.
type Metric struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Value string          `json:"value"`
	Raw   decimal.Decimal `json:"raw"`
}

// SeriesPoint is one datum of a chart series. Group splits stacked series.
type SeriesPoint struct {
	Label string          `json:"label"`
	Group string          `json:"group,omitempty"`
	Value decimal.Decimal `json:"value"`
}

// Series is chart-ready data; rendering is left to the client.
type Series struct {
	Key    string        `json:"key"`
	Title  string        `json:"title"`
	Points []SeriesPoint `json:"points"`
}

// TableRow is one formatted record with its 1-based display index.
type TableRow struct {
	Index int      `json:"index"`
	Cells []string `json:"cells"`
}

// GroupView is one expander of the dashboard: a titled, sorted sub-table.
type GroupView struct {
	Key      string          `json:"key"`
	Title    string          `json:"title"`
	Count    int             `json:"count"`
	Quantity decimal.Decimal `json:"quantity"`
	Money    decimal.Decimal `json:"money"`
	Columns  []string        `json:"columns"`
	Rows     []TableRow      `json:"rows"`
}

// LinePerformance summarises one planting line of one greenhouse.
type LinePerformance struct {
	Structure    string          `json:"structure"`
	Line         string          `json:"line"`
	AvgVolume    decimal.Decimal `json:"avg_volume"`
	HarvestCount int             `json:"harvest_count"`
	TotalVolume  decimal.Decimal `json:"total_volume"`
}

// View is the full dashboard response for one domain and filter request.
type View struct {
	Domain          Domain            `json:"domain"`
	Filters         FilterRequest     `json:"filters"`
	Empty           bool              `json:"empty"`
	Metrics         []Metric          `json:"metrics"`
	Groups          []GroupView       `json:"groups"`
	Series          []Series          `json:"series,omitempty"`
	LinePerformance []LinePerformance `json:"line_performance,omitempty"`
}

// Metric looks up a metric by key.
func (v *View) Metric(key string) (Metric, bool) {
	for _, m := range v.Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}
