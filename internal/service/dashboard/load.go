package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/ledger"
	"github.com/Arnold-CK/Anjo/internal/repository/sheets"
)

// Costs merges the legacy expense export with the cost form sheet. Rows
// sharing a source-issued key are counted once.
func (s *Service) Costs(ctx context.Context) []models.Cost {
	rows := load(ctx, s, s.books.Expenses, sheets.SheetExpenses, ledger.CostSchema)
	rows = append(rows, load(ctx, s, s.books.Main, sheets.SheetCosts, ledger.CostSchema)...)
	return ledger.Dedupe(rows)
}

// Sales returns every sale.
func (s *Service) Sales(ctx context.Context) []models.Sale {
	return load(ctx, s, s.books.Main, sheets.SheetSales, ledger.SaleSchema)
}

// Harvests merges the legacy form export with the per-line harvest sheet.
func (s *Service) Harvests(ctx context.Context) []models.Harvest {
	var rows []models.Harvest

	repeat, okRepeat := s.read(ctx, s.books.Harvest, sheets.SheetHarvestRepeat)
	parent, okParent := s.read(ctx, s.books.Harvest, sheets.SheetHarvestParent)
	if okRepeat && okParent {
		joined := ledger.Join(repeat, parent, "PARENT_KEY", "data-meta-instanceID")
		rows = run(s.logger, ledger.HarvestSchema, joined, sheets.SheetHarvestRepeat+"+"+sheets.SheetHarvestParent)
	}

	rows = append(rows, load(ctx, s, s.books.Harvest, sheets.SheetFinalHarvests, ledger.HarvestSchema)...)
	return ledger.Dedupe(rows)
}

// Deposits returns every deposit, undated ones included.
func (s *Service) Deposits(ctx context.Context) []models.Deposit {
	return load(ctx, s, s.books.Main, sheets.SheetDeposits, ledger.DepositSchema)
}

// Withdrawals returns every withdrawal, undated ones included.
func (s *Service) Withdrawals(ctx context.Context) []models.Withdrawal {
	return load(ctx, s, s.books.Main, sheets.SheetWithdrawals, ledger.WithdrawalSchema)
}

// read pulls a whole sheet. Failures are logged and reported as not ok.
func (s *Service) read(ctx context.Context, repo sheets.Repository, sheet string) (*ledger.RawTable, bool) {
	if repo == nil {
		s.logger.Warn("workbook not configured", zap.String("sheet", sheet))
		return nil, false
	}

	values, err := repo.ReadRange(ctx, sheets.Range(sheet))
	if err != nil {
		s.logger.Warn("sheet unavailable, treating as empty", zap.String("sheet", sheet), zap.Error(err))
		return nil, false
	}
	return ledger.FromValues(values), true
}

func load[T any](ctx context.Context, s *Service, repo sheets.Repository, sheet string, schema ledger.Schema[T]) []T {
	raw, ok := s.read(ctx, repo, sheet)
	if !ok {
		return nil
	}
	return run(s.logger, schema, raw, sheet)
}

func run[T any](logger *zap.Logger, schema ledger.Schema[T], raw *ledger.RawTable, source string) []T {
	out, err := schema.Run(raw)
	if err != nil {
		logger.Warn("source unusable, treating as empty", zap.String("source", source), zap.Error(err))
		return nil
	}
	if out.Empty > 0 || out.Rejected > 0 {
		logger.Debug("rows discarded",
			zap.String("source", source),
			zap.Int("empty", out.Empty),
			zap.Int("rejected", out.Rejected))
	}
	return out.Records
}
