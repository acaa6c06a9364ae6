package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Arnold-CK/Anjo/internal/config"
)

// Sheet names as they appear in the workbooks.
const (
	SheetCosts         = "Costs"
	SheetExpenses      = "Expenses"
	SheetSales         = "Sales"
	SheetDeposits      = "Deposits"
	SheetWithdrawals   = "Withdraws"
	SheetCustomers     = "Customers"
	SheetHarvestRepeat = "data-structures_repeat"
	SheetHarvestParent = "Sheet1"
	SheetFinalHarvests = "Final Harvests"
)

// Range addresses a whole sheet in A1 notation.
func Range(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

// SheetOf returns the sheet name of an A1 range ("'Final Harvests'!A:L" -> "Final Harvests").
func SheetOf(sheetRange string) string {
	name := sheetRange
	if i := strings.LastIndex(name, "!"); i >= 0 {
		name = name[:i]
	}
	if len(name) >= 2 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

// Workbooks groups the three spreadsheets the ledger is spread across.
type Workbooks struct {
	// Main holds costs, sales, deposits, withdrawals and customers.
	Main Repository
	// Expenses holds the legacy cost export.
	Expenses Repository
	// Harvest holds the legacy harvest form export and the line sheet.
	Harvest Repository
}

// NewWorkbooks connects to every configured workbook, each behind a read cache.
func NewWorkbooks(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Workbooks, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := NewService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect workbooks: %w", err)
	}

	open := func(id, name string) Repository {
		named := logger.With(zap.String("workbook", name))
		return NewCachedRepository(NewGoogleSheetRepository(service, id, named), cfg.CacheTTL, named)
	}

	return &Workbooks{
		Main:     open(cfg.DatabaseID, "main"),
		Expenses: open(cfg.ExpensesID, "expenses"),
		Harvest:  open(cfg.HarvestID, "harvest"),
	}, nil
}
