package entry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/ledger"
	"github.com/Arnold-CK/Anjo/internal/repository/sheets"
)

// TimestampLayout is how entry timestamps are written ("14-Oct-2026 18:04:05 EAT").
const TimestampLayout = "02-Jan-2006 15:04:05 MST"

// Date layouts each sheet has historically used.
const (
	costDateLayout       = "02-Jan-2006"
	saleDateLayout       = "02/01/06"
	harvestDateLayout    = "02/01/06"
	depositDateLayout    = "02/01/06"
	withdrawalDateLayout = "02/Jan/2006"
)

// Service validates form submissions and appends them as sheet rows.
type Service struct {
	books  sheets.Workbooks
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates an entry service. A nil location means UTC.
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

// SubmitCost appends one cost to the Costs sheet.
func (s *Service) SubmitCost(ctx context.Context, sub models.CostSubmission) (*models.EntryReceipt, error) {
	var p problems
	date := s.entryDate(&p, sub.Date)
	category, known := models.CanonicalCategory(sub.Category)
	p.when(strings.TrimSpace(sub.Item) == "", "item is required")
	p.when(!known, fmt.Sprintf("category %q is not in the catalog", sub.Category))
	p.when(!sub.Amount.IsPositive(), "amount must be greater than zero")
	if err := p.err(); err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	values := map[string]interface{}{
		ledger.FieldDate:      date.Format(costDateLayout),
		ledger.FieldItem:      strings.TrimSpace(sub.Item),
		ledger.FieldCategory:  category,
		ledger.FieldAmount:    sub.Amount.String(),
		ledger.FieldEnteredBy: strings.TrimSpace(sub.EnteredBy),
		ledger.FieldTimestamp: now.Format(TimestampLayout),
	}
	return s.append(ctx, models.DomainCosts, s.books.Main, sheets.SheetCosts, ledger.CostSchema.Layout, values, costOrder, now)
}

// SubmitSale appends one sale to the Sales sheet. TotalPrice is derived.
func (s *Service) SubmitSale(ctx context.Context, sub models.SaleSubmission) (*models.EntryReceipt, error) {
	var p problems
	date := s.entryDate(&p, sub.Date)
	size := strings.ToLower(strings.TrimSpace(sub.Size))
	unit := strings.ToLower(strings.TrimSpace(sub.Unit))
	if unit == "" {
		unit = "kg"
	}
	p.when(strings.TrimSpace(sub.Customer) == "", "customer is required")
	p.when(!models.IsSize(size), fmt.Sprintf("size %q is not in the catalog", sub.Size))
	p.when(!models.IsUnit(unit), fmt.Sprintf("unit %q is not in the catalog", sub.Unit))
	p.when(!sub.Quantity.IsPositive(), "quantity must be greater than zero")
	p.when(!sub.UnitPrice.IsPositive(), "unit price must be greater than zero")
	if err := p.err(); err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	total := sub.Quantity.Mul(sub.UnitPrice)
	values := map[string]interface{}{
		ledger.FieldDate:       date.Format(saleDateLayout),
		ledger.FieldCustomer:   strings.TrimSpace(sub.Customer),
		ledger.FieldSize:       size,
		ledger.FieldUnit:       unit,
		ledger.FieldQuantity:   sub.Quantity.String(),
		ledger.FieldUnitPrice:  sub.UnitPrice.String(),
		ledger.FieldTotalPrice: total.String(),
		ledger.FieldEnteredBy:  strings.TrimSpace(sub.EnteredBy),
		ledger.FieldTimestamp:  now.Format(TimestampLayout),
	}
	// Sheets still laid out as the legacy form export split columns by size.
	if size == "small" {
		values[ledger.FieldQuantitySmall] = sub.Quantity.String()
		values[ledger.FieldPriceSmall] = sub.UnitPrice.String()
		values[ledger.FieldTotalSmall] = total.String()
	} else {
		values[ledger.FieldQuantityBig] = sub.Quantity.String()
		values[ledger.FieldPriceBig] = sub.UnitPrice.String()
		values[ledger.FieldTotalBig] = total.String()
	}
	return s.append(ctx, models.DomainSales, s.books.Main, sheets.SheetSales, ledger.SaleSchema.Layout, values, saleOrder, now)
}

// SubmitHarvest appends one harvest to the Final Harvests sheet. When lines
// are given their sum is the total.
func (s *Service) SubmitHarvest(ctx context.Context, sub models.HarvestSubmission) (*models.EntryReceipt, error) {
	var p problems
	date := s.entryDate(&p, sub.Date)
	p.when(strings.TrimSpace(sub.Customer) == "", "customer is required")
	p.when(!models.IsGreenhouse(sub.Greenhouse), fmt.Sprintf("greenhouse %q is not in the catalog", sub.Greenhouse))
	p.when(len(sub.Lines) > models.LineCount, fmt.Sprintf("at most %d lines can be recorded", models.LineCount))

	var lines [models.LineCount]decimal.Decimal
	sum := decimal.Zero
	for i := range lines {
		lines[i] = decimal.Zero
		if i < len(sub.Lines) {
			p.when(sub.Lines[i].IsNegative(), fmt.Sprintf("line %d must not be negative", i+1))
			lines[i] = sub.Lines[i]
			sum = sum.Add(sub.Lines[i])
		}
	}
	total := sub.Total
	if sum.IsPositive() {
		total = sum
	}
	p.when(!total.IsPositive(), "total volume must be greater than zero")
	if err := p.err(); err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	values := map[string]interface{}{
		ledger.FieldTimestamp: now.Format(TimestampLayout),
		ledger.FieldDate:      date.Format(harvestDateLayout),
		ledger.FieldTotal:     total.String(),
		ledger.FieldCustomer:  strings.TrimSpace(sub.Customer),
		ledger.FieldStructure: strings.TrimSpace(sub.Greenhouse),
		ledger.FieldEnteredBy: strings.TrimSpace(sub.EnteredBy),
	}
	for i, v := range lines {
		values[ledger.LineField(i+1)] = v.String()
	}
	return s.append(ctx, models.DomainHarvests, s.books.Harvest, sheets.SheetFinalHarvests, ledger.HarvestSchema.Layout, values, harvestOrder, now)
}

// SubmitDeposit appends one deposit to the Deposits sheet.
func (s *Service) SubmitDeposit(ctx context.Context, sub models.DepositSubmission) (*models.EntryReceipt, error) {
	var p problems
	date := s.entryDate(&p, sub.Date)
	checkCash(&p, sub.Amount)
	if err := p.err(); err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	values := map[string]interface{}{
		ledger.FieldTimestamp: now.Format(TimestampLayout),
		ledger.FieldDate:      date.Format(depositDateLayout),
		ledger.FieldAmount:    sub.Amount.String(),
		ledger.FieldEnteredBy: strings.TrimSpace(sub.EnteredBy),
	}
	return s.append(ctx, models.DomainDeposits, s.books.Main, sheets.SheetDeposits, ledger.DepositSchema.Layout, values, depositOrder, now)
}

// SubmitWithdrawal appends one withdrawal to the Withdraws sheet.
func (s *Service) SubmitWithdrawal(ctx context.Context, sub models.WithdrawalSubmission) (*models.EntryReceipt, error) {
	var p problems
	date := s.entryDate(&p, sub.Date)
	checkCash(&p, sub.Amount)
	p.when(strings.TrimSpace(sub.Reason) == "", "reason is required")
	if err := p.err(); err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	values := map[string]interface{}{
		ledger.FieldTimestamp: now.Format(TimestampLayout),
		ledger.FieldDate:      date.Format(withdrawalDateLayout),
		ledger.FieldAmount:    sub.Amount.String(),
		ledger.FieldReason:    strings.TrimSpace(sub.Reason),
		ledger.FieldEnteredBy: strings.TrimSpace(sub.EnteredBy),
	}
	return s.append(ctx, models.DomainWithdrawals, s.books.Main, sheets.SheetWithdrawals, ledger.WithdrawalSchema.Layout, values, withdrawalOrder, now)
}

// AddCustomer appends one record to the customer directory.
func (s *Service) AddCustomer(ctx context.Context, c models.Customer) (*models.EntryReceipt, error) {
	var p problems
	p.when(strings.TrimSpace(c.Name) == "", "name is required")
	p.when(strings.TrimSpace(c.Location) == "", "location is required")
	p.when(strings.TrimSpace(c.ContactPerson) == "", "contact person is required")
	p.when(strings.TrimSpace(c.PhoneNumber) == "", "phone number is required")
	email := strings.TrimSpace(c.Email)
	p.when(email != "" && !strings.Contains(email, "@"), fmt.Sprintf("email %q is not valid", c.Email))
	if err := p.err(); err != nil {
		return nil, err
	}

	values := map[string]interface{}{
		ledger.FieldName:          strings.TrimSpace(c.Name),
		ledger.FieldLocation:      strings.TrimSpace(c.Location),
		ledger.FieldContactPerson: strings.TrimSpace(c.ContactPerson),
		ledger.FieldPhoneNumber:   strings.TrimSpace(c.PhoneNumber),
		ledger.FieldEmail:         email,
	}
	return s.append(ctx, "customers", s.books.Main, sheets.SheetCustomers, ledger.CustomerSchema.Layout, values, customerOrder, s.now().In(s.loc))
}

func checkCash(p *problems, amount decimal.Decimal) {
	p.when(!amount.IsPositive(), "amount must be greater than zero")
	p.when(amount.IsPositive() && !amount.IsInteger(), "amount must be a whole number of shillings")
}

// entryDate parses a YYYY-MM-DD form date; blank means today. Dates after
// today or before the first entry date are rejected.
func (s *Service) entryDate(p *problems, raw string) time.Time {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return today
	}

	d, err := time.Parse(models.FilterDateLayout, raw)
	if err != nil {
		p.when(true, fmt.Sprintf("date %q must be YYYY-MM-DD", raw))
		return today
	}
	p.when(d.After(today), "date must not be in the future")
	p.when(d.Before(models.FirstEntryDate), "date must not be before "+models.FirstEntryDate.Format(models.FilterDateLayout))
	return d
}

func (s *Service) append(ctx context.Context, domain models.Domain, repo sheets.Repository, sheet string, layout ledger.Layout, values map[string]interface{}, order []string, at time.Time) (*models.EntryReceipt, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: workbook for %s not configured", ErrWriteFailed, sheet)
	}

	header, err := repo.ReadRange(ctx, HeaderRange(sheet))
	if err != nil {
		s.logger.Error("failed to read sheet header", zap.String("sheet", sheet), zap.Error(err))
		return nil, fmt.Errorf("%w: read %s header: %v", ErrWriteFailed, sheet, err)
	}

	row := ComposeRow(layout, firstRow(header), values, order)
	if err := repo.WriteRow(ctx, sheets.Range(sheet), row); err != nil {
		s.logger.Error("failed to append entry", zap.String("sheet", sheet), zap.Error(err))
		return nil, fmt.Errorf("%w: append to %s: %v", ErrWriteFailed, sheet, err)
	}

	s.logger.Info("entry appended", zap.String("domain", string(domain)), zap.String("sheet", sheet))
	return &models.EntryReceipt{
		Domain:    string(domain),
		Sheet:     sheet,
		Timestamp: at.Format(TimestampLayout),
	}, nil
}

// HeaderRange addresses the header row of a sheet.
func HeaderRange(sheet string) string {
	return sheets.Range(sheet) + "!1:1"
}

func firstRow(values [][]interface{}) []interface{} {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}
