package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finbooks/backend/internal/domain/ledger"
	"github.com/finbooks/backend/internal/domain/org"
	"github.com/finbooks/backend/internal/domain/report"
	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock repositories
// =============================================================================

// MockUnitRepository is a mock implementation of org.UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByCode(ctx context.Context, code string) (*org.Unit, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAll(ctx context.Context) ([]org.Unit, error) {
	args := m.Called(ctx)
	return args.Get(0).([]org.Unit), args.Error(1)
}

// MockFinanceReportRepository is a mock implementation of report.FinanceReportRepository
type MockFinanceReportRepository struct {
	mock.Mock
}

func (m *MockFinanceReportRepository) GetDailyTransactionTotals(filter report.TransactionTotalFilter) ([]report.DailyTotalRow, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.DailyTotalRow), args.Error(1)
}

func (m *MockFinanceReportRepository) GetMonthlyTransactionTotals(filter report.TransactionTotalFilter) ([]report.MonthlyTotalRow, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.MonthlyTotalRow), args.Error(1)
}

func (m *MockFinanceReportRepository) GetOutstandingInvoiceTotal(filter report.OutstandingInvoiceFilter) (decimal.Decimal, error) {
	args := m.Called(filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFinanceReportRepository) GetCategoryAmountTotal(filter report.CategoryTotalFilter) (decimal.Decimal, error) {
	args := m.Called(filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// =============================================================================
// Helpers
// =============================================================================

func newTestService(t *testing.T) (*FinanceReportService, *MockUnitRepository, *MockFinanceReportRepository) {
	t.Helper()
	unitRepo := new(MockUnitRepository)
	financeRepo := new(MockFinanceReportRepository)

	svc, err := NewFinanceReportService(unitRepo, financeRepo, "Asia/Bangkok", zap.NewNop())
	require.NoError(t, err)

	return svc, unitRepo, financeRepo
}

func bangkokDate(t *testing.T, year int, month time.Month, day int) time.Time {
	t.Helper()
	loc := mustLoadLocation(t, "Asia/Bangkok")
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func knownUnit(unitRepo *MockUnitRepository, unitID uuid.UUID) {
	unitRepo.On("FindByID", mock.Anything, unitID).
		Return(&org.Unit{ID: unitID, Code: "U1", Name: "Main Branch"}, nil)
}

// =============================================================================
// Tests
// =============================================================================

func TestNewFinanceReportService(t *testing.T) {
	t.Run("rejects invalid timezone", func(t *testing.T) {
		_, err := NewFinanceReportService(new(MockUnitRepository), new(MockFinanceReportRepository), "Not/AZone", zap.NewNop())
		assert.Error(t, err)
	})
}

func TestFinanceReportService_GetTransactionDaily(t *testing.T) {
	ctx := context.Background()
	unitID := uuid.New()
	start := bangkokDate(t, 2024, time.January, 5)
	end := bangkokDate(t, 2024, time.January, 7)

	t.Run("zero-fills days without transactions", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetDailyTransactionTotals", mock.Anything).Return([]report.DailyTotalRow{
			{Date: "2024-01-05", Total: decimal.NewFromInt(1000)},
			{Date: "2024-01-07", Total: decimal.NewFromInt(500)},
		}, nil)

		series, err := svc.GetTransactionDaily(ctx, unitID, KindSales, start, end)

		require.NoError(t, err)
		assert.Equal(t, []DailyTotalResponse{
			{Date: "2024-01-05", Total: 1000},
			{Date: "2024-01-06", Total: 0},
			{Date: "2024-01-07", Total: 500},
		}, series)
	})

	t.Run("passes the sale invoice type and timezone for sales", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetDailyTransactionTotals", mock.MatchedBy(func(f report.TransactionTotalFilter) bool {
			return f.Type == ledger.TypeSaleInvoice && f.Timezone == "Asia/Bangkok" && f.UnitID == unitID
		})).Return([]report.DailyTotalRow{}, nil)

		_, err := svc.GetTransactionDaily(ctx, unitID, KindSales, start, end)

		require.NoError(t, err)
		financeRepo.AssertExpectations(t)
	})

	t.Run("passes the purchase invoice type for purchases", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetDailyTransactionTotals", mock.MatchedBy(func(f report.TransactionTotalFilter) bool {
			return f.Type == ledger.TypePurchaseInvoice
		})).Return([]report.DailyTotalRow{}, nil)

		_, err := svc.GetTransactionDaily(ctx, unitID, KindPurchase, start, end)

		require.NoError(t, err)
		financeRepo.AssertExpectations(t)
	})

	t.Run("returns a complete zero series when no transactions exist", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetDailyTransactionTotals", mock.Anything).Return([]report.DailyTotalRow{}, nil)

		series, err := svc.GetTransactionDaily(ctx, unitID, KindSales, start, end)

		require.NoError(t, err)
		require.Len(t, series, 3)
		for _, point := range series {
			assert.Zero(t, point.Total)
		}
	})

	t.Run("fails with not found before querying aggregates", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		unitRepo.On("FindByID", mock.Anything, unitID).Return(nil, shared.ErrNotFound)

		_, err := svc.GetTransactionDaily(ctx, unitID, KindSales, start, end)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Contains(t, domainErr.Message, unitID.String())
		financeRepo.AssertNotCalled(t, "GetDailyTransactionTotals", mock.Anything)
	})

	t.Run("rejects an unsupported kind before any lookup", func(t *testing.T) {
		svc, unitRepo, _ := newTestService(t)

		_, err := svc.GetTransactionDaily(ctx, unitID, TransactionKind("rental"), start, end)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		unitRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects a reversed date range", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.GetTransactionDaily(ctx, unitID, KindSales, end, start)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("propagates store failures unchanged", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		storeErr := errors.New("connection refused")
		financeRepo.On("GetDailyTransactionTotals", mock.Anything).Return(nil, storeErr)

		_, err := svc.GetTransactionDaily(ctx, unitID, KindSales, start, end)

		assert.ErrorIs(t, err, storeErr)
	})
}

func TestFinanceReportService_GetTransactionMonthly(t *testing.T) {
	ctx := context.Background()
	unitID := uuid.New()
	start := bangkokDate(t, 2024, time.January, 1)
	end := bangkokDate(t, 2024, time.December, 31)

	t.Run("always returns twelve months in calendar order", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetMonthlyTransactionTotals", mock.Anything).Return([]report.MonthlyTotalRow{
			{Month: 3, Total: decimal.NewFromInt(750)},
			{Month: 11, Total: decimal.NewFromInt(1250)},
		}, nil)

		series, err := svc.GetTransactionMonthly(ctx, unitID, KindSales, start, end)

		require.NoError(t, err)
		require.Len(t, series, 12)
		assert.Equal(t, MonthlyTotalResponse{Month: "January", ShortMonth: "Jan", Total: 0}, series[0])
		assert.Equal(t, MonthlyTotalResponse{Month: "March", ShortMonth: "Mar", Total: 750}, series[2])
		assert.Equal(t, MonthlyTotalResponse{Month: "November", ShortMonth: "Nov", Total: 1250}, series[10])
		assert.Equal(t, MonthlyTotalResponse{Month: "December", ShortMonth: "Dec", Total: 0}, series[11])
	})

	t.Run("returns twelve zero months for an empty unit", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetMonthlyTransactionTotals", mock.Anything).Return([]report.MonthlyTotalRow{}, nil)

		series, err := svc.GetTransactionMonthly(ctx, unitID, KindPurchase, start, end)

		require.NoError(t, err)
		require.Len(t, series, 12)
		for _, point := range series {
			assert.Zero(t, point.Total)
		}
	})

	t.Run("fails with not found for an unknown unit", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		unitRepo.On("FindByID", mock.Anything, unitID).Return(nil, shared.ErrNotFound)

		_, err := svc.GetTransactionMonthly(ctx, unitID, KindSales, start, end)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		financeRepo.AssertNotCalled(t, "GetMonthlyTransactionTotals", mock.Anything)
	})
}

func TestFinanceReportService_GetDebtReceivableTotal(t *testing.T) {
	ctx := context.Background()
	unitID := uuid.New()
	start := bangkokDate(t, 2024, time.January, 1)
	end := bangkokDate(t, 2024, time.January, 31)

	t.Run("receive maps to sale invoices settled by receivable payments", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetOutstandingInvoiceTotal", mock.MatchedBy(func(f report.OutstandingInvoiceFilter) bool {
			return f.InvoiceType == ledger.TypeSaleInvoice && f.PaymentType == ledger.TypeReceivablePayment
		})).Return(decimal.NewFromInt(60), nil)

		total, err := svc.GetDebtReceivableTotal(ctx, unitID, KindReceive, start, end)

		require.NoError(t, err)
		assert.Equal(t, float64(60), total)
	})

	t.Run("debt maps to purchase invoices settled by debt payments", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetOutstandingInvoiceTotal", mock.MatchedBy(func(f report.OutstandingInvoiceFilter) bool {
			return f.InvoiceType == ledger.TypePurchaseInvoice && f.PaymentType == ledger.TypeDebtPayment
		})).Return(decimal.Zero, nil)

		total, err := svc.GetDebtReceivableTotal(ctx, unitID, KindDebt, start, end)

		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("over-payment nets below zero without error", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetOutstandingInvoiceTotal", mock.Anything).Return(decimal.NewFromInt(-40), nil)

		total, err := svc.GetDebtReceivableTotal(ctx, unitID, KindReceive, start, end)

		require.NoError(t, err)
		assert.Equal(t, float64(-40), total)
	})

	t.Run("rejects an unsupported kind", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.GetDebtReceivableTotal(ctx, unitID, BalanceKind("overdue"), start, end)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("fails with not found for an unknown unit", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		unitRepo.On("FindByID", mock.Anything, unitID).Return(nil, shared.ErrNotFound)

		_, err := svc.GetDebtReceivableTotal(ctx, unitID, KindDebt, start, end)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		financeRepo.AssertNotCalled(t, "GetOutstandingInvoiceTotal", mock.Anything)
	})
}

func TestFinanceReportService_LedgerScalars(t *testing.T) {
	ctx := context.Background()
	unitID := uuid.New()
	start := bangkokDate(t, 2024, time.January, 1)
	end := bangkokDate(t, 2024, time.January, 31)

	t.Run("income aggregates revenue categories only", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetCategoryAmountTotal", mock.MatchedBy(func(f report.CategoryTotalFilter) bool {
			return assert.ObjectsAreEqual(ledger.IncomeCategories, f.Categories)
		})).Return(decimal.NewFromInt(1500), nil)

		total, err := svc.GetIncome(ctx, unitID, start, end)

		require.NoError(t, err)
		assert.Equal(t, float64(1500), total)
	})

	t.Run("expense is reported non-negative", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetCategoryAmountTotal", mock.MatchedBy(func(f report.CategoryTotalFilter) bool {
			return assert.ObjectsAreEqual(ledger.ExpenseCategories, f.Categories)
		})).Return(decimal.NewFromInt(-800), nil)

		total, err := svc.GetExpense(ctx, unitID, start, end)

		require.NoError(t, err)
		assert.Equal(t, float64(800), total)
	})

	t.Run("expense is zero when no expense entries exist", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetCategoryAmountTotal", mock.Anything).Return(decimal.Zero, nil)

		total, err := svc.GetExpense(ctx, unitID, start, end)

		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("profit loss keeps its sign and uses the combined categories", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)
		financeRepo.On("GetCategoryAmountTotal", mock.MatchedBy(func(f report.CategoryTotalFilter) bool {
			return assert.ObjectsAreEqual(ledger.ProfitLossCategories, f.Categories)
		})).Return(decimal.NewFromInt(-300), nil)

		total, err := svc.GetProfitLoss(ctx, unitID, start, end)

		require.NoError(t, err)
		assert.Equal(t, float64(-300), total)
	})

	t.Run("profit loss agrees with income minus expense over shared ledger data", func(t *testing.T) {
		svc, unitRepo, financeRepo := newTestService(t)
		knownUnit(unitRepo, unitID)

		// One consistent data set: the repository answers each category set
		// with the signed sum of the entries falling in it.
		byCategory := map[ledger.CategoryClass]decimal.Decimal{
			ledger.CategoryRevenue:      decimal.NewFromFloat(2000.25),
			ledger.CategoryOtherRevenue: decimal.NewFromFloat(150.10),
			ledger.CategoryCOGS:         decimal.NewFromFloat(-700.40),
			ledger.CategoryExpense:      decimal.NewFromFloat(-450.05),
			ledger.CategoryTax:          decimal.NewFromFloat(-100.00),
		}
		sumFor := func(categories []ledger.CategoryClass) decimal.Decimal {
			total := decimal.Zero
			for _, c := range categories {
				total = total.Add(byCategory[c])
			}
			return total
		}
		matchCategories := func(want []ledger.CategoryClass) interface{} {
			return mock.MatchedBy(func(f report.CategoryTotalFilter) bool {
				return assert.ObjectsAreEqual(want, f.Categories)
			})
		}
		financeRepo.On("GetCategoryAmountTotal", matchCategories(ledger.IncomeCategories)).
			Return(sumFor(ledger.IncomeCategories), nil)
		financeRepo.On("GetCategoryAmountTotal", matchCategories(ledger.ExpenseCategories)).
			Return(sumFor(ledger.ExpenseCategories), nil)
		financeRepo.On("GetCategoryAmountTotal", matchCategories(ledger.ProfitLossCategories)).
			Return(sumFor(ledger.ProfitLossCategories), nil)

		income, err := svc.GetIncome(ctx, unitID, start, end)
		require.NoError(t, err)
		expense, err := svc.GetExpense(ctx, unitID, start, end)
		require.NoError(t, err)
		profitLoss, err := svc.GetProfitLoss(ctx, unitID, start, end)
		require.NoError(t, err)

		assert.InDelta(t, income-expense, profitLoss, 1e-9)
	})
}
