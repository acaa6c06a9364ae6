package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/ledger"
	"github.com/Arnold-CK/Anjo/internal/repository/sheets"
)

// Service builds dashboard views from the ledger workbooks.
type Service struct {
	books  sheets.Workbooks
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates a dashboard service. A nil location means UTC.
func NewService(books sheets.Workbooks, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		books:  books,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// View validates req, loads the domain, filters and groups it. Only request
// validation errors are returned; unavailable sources degrade to an empty view.
func (s *Service) View(ctx context.Context, domain models.Domain, req models.FilterRequest) (*models.View, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var view *models.View
	switch domain {
	case models.DomainCosts:
		view = costsView(ledger.ApplyAll(s.Costs(ctx), req))
	case models.DomainSales:
		view = salesView(ledger.ApplyAll(s.Sales(ctx), req))
	case models.DomainHarvests:
		view = harvestsView(ledger.ApplyAll(s.Harvests(ctx), req), s.Sales(ctx))
	case models.DomainDeposits:
		view = depositsView(ledger.ApplyAll(s.Deposits(ctx), req))
	case models.DomainWithdrawals:
		view = withdrawalsView(ledger.ApplyAll(s.Withdrawals(ctx), req))
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownDomain, domain)
	}

	view.Domain = domain
	view.Filters = req
	s.logger.Debug("view built",
		zap.String("domain", string(domain)),
		zap.Strings("filters", filterNames(req)),
		zap.Int("groups", len(view.Groups)))
	return view, nil
}

// Catalog returns the filter and form option lists.
func (s *Service) Catalog() models.Catalog {
	return models.NewCatalog(s.now().In(s.loc))
}

// Customers lists distinct trimmed customer names, ordered case-insensitively.
// Names differing only in case stay distinct.
func (s *Service) Customers(ctx context.Context) []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range s.CustomerRecords(ctx) {
		name := c.DisplayName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names
}

// CustomerRecords returns the full customer directory with names trimmed.
func (s *Service) CustomerRecords(ctx context.Context) []models.Customer {
	records := load(ctx, s, s.books.Main, sheets.SheetCustomers, ledger.CustomerSchema)
	for i := range records {
		records[i].Name = records[i].DisplayName()
	}
	return records
}

// WeeklyTotals rolls up the Monday-to-Sunday week containing at.
func (s *Service) WeeklyTotals(ctx context.Context, at time.Time) models.WeeklyTotals {
	from := mondayStart(at.In(s.loc))
	to := from.AddDate(0, 0, 6)

	req := models.FilterRequest{}.
		With(models.FilterStartDate, from.Format(models.FilterDateLayout)).
		With(models.FilterEndDate, to.Format(models.FilterDateLayout))

	costs := ledger.Totals(ledger.ApplyAll(s.Costs(ctx), req))
	sales := ledger.Totals(ledger.ApplyAll(s.Sales(ctx), req))
	harvests := ledger.Totals(ledger.ApplyAll(s.Harvests(ctx), req))
	deposits := ledger.Totals(ledger.ApplyAll(s.Deposits(ctx), req))
	withdrawals := ledger.Totals(ledger.ApplyAll(s.Withdrawals(ctx), req))

	return models.WeeklyTotals{
		From:          from,
		To:            to,
		Costs:         costs.Money,
		CostEntries:   costs.Count,
		SalesQuantity: sales.Quantity,
		SalesRevenue:  sales.Money,
		Harvested:     harvests.Quantity,
		HarvestEvents: harvests.Count,
		Deposits:      deposits.Money,
		Withdrawals:   withdrawals.Money,
	}
}

// mondayStart returns midnight UTC of the Monday on or before t's calendar day.
func mondayStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

func filterNames(req models.FilterRequest) []string {
	names := req.Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
