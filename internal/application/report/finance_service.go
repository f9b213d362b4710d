package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks/backend/internal/domain/ledger"
	"github.com/finbooks/backend/internal/domain/org"
	"github.com/finbooks/backend/internal/domain/report"
	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionKind selects which invoice type a transaction report covers
type TransactionKind string

const (
	KindSales    TransactionKind = "sales"
	KindPurchase TransactionKind = "purchase"
)

// BalanceKind selects which side an outstanding-balance report covers
type BalanceKind string

const (
	KindDebt    BalanceKind = "debt"
	KindReceive BalanceKind = "receive"
)

// DailyTotalResponse is one day in a daily transaction series
type DailyTotalResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// MonthlyTotalResponse is one month in a monthly transaction series
type MonthlyTotalResponse struct {
	Month      string  `json:"month"`
	ShortMonth string  `json:"short_month"`
	Total      float64 `json:"total"`
}

// FinanceReportService computes time-bucketed financial reports over the
// posted ledger, scoped to one unit and normalized to a fixed time zone.
// Every call is an independent read; nothing is cached between calls.
type FinanceReportService struct {
	unitRepo    org.UnitRepository
	financeRepo report.FinanceReportRepository
	timezone    string
	location    *time.Location
	logger      *zap.Logger
}

// NewFinanceReportService creates a new FinanceReportService. The timezone
// must be a valid IANA zone name; all date filtering and bucketing happens in
// that zone regardless of server-local time.
func NewFinanceReportService(
	unitRepo org.UnitRepository,
	financeRepo report.FinanceReportRepository,
	timezone string,
	logger *zap.Logger,
) (*FinanceReportService, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid report timezone %q: %w", timezone, err)
	}

	return &FinanceReportService{
		unitRepo:    unitRepo,
		financeRepo: financeRepo,
		timezone:    timezone,
		location:    loc,
		logger:      logger,
	}, nil
}

// GetTransactionDaily returns per-day invoice totals for the unit over the
// inclusive date range, zero-filled so the series covers every calendar day.
func (s *FinanceReportService) GetTransactionDaily(ctx context.Context, unitID uuid.UUID, kind TransactionKind, start, end time.Time) ([]DailyTotalResponse, error) {
	txType, err := invoiceTypeFor(kind)
	if err != nil {
		return nil, err
	}
	if err := s.validateRange(start, end); err != nil {
		return nil, err
	}
	if err := s.requireUnit(ctx, unitID); err != nil {
		return nil, err
	}

	rows, err := s.financeRepo.GetDailyTransactionTotals(report.TransactionTotalFilter{
		UnitID:    unitID,
		Type:      txType,
		StartDate: start,
		EndDate:   end,
		Timezone:  s.timezone,
	})
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Date] = row.Total
	}

	keys := DailyKeys(start, end, s.location)
	series := make([]DailyTotalResponse, len(keys))
	for i, key := range keys {
		series[i] = DailyTotalResponse{
			Date:  key,
			Total: toFloat64(totals[key]),
		}
	}

	s.logger.Debug("Daily transaction report computed",
		zap.String("unit_id", unitID.String()),
		zap.String("kind", string(kind)),
		zap.Int("days", len(series)),
	)

	return series, nil
}

// GetTransactionMonthly returns invoice totals bucketed into the twelve
// calendar months. The store filters by entry-date year only, so a range
// spanning years merges same-numbered months; existing report consumers
// rely on this, so it is not tightened to the full date range.
func (s *FinanceReportService) GetTransactionMonthly(ctx context.Context, unitID uuid.UUID, kind TransactionKind, start, end time.Time) ([]MonthlyTotalResponse, error) {
	txType, err := invoiceTypeFor(kind)
	if err != nil {
		return nil, err
	}
	if err := s.validateRange(start, end); err != nil {
		return nil, err
	}
	if err := s.requireUnit(ctx, unitID); err != nil {
		return nil, err
	}

	rows, err := s.financeRepo.GetMonthlyTransactionTotals(report.TransactionTotalFilter{
		UnitID:    unitID,
		Type:      txType,
		StartDate: start,
		EndDate:   end,
		Timezone:  s.timezone,
	})
	if err != nil {
		return nil, err
	}

	totals := make(map[int]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Month] = row.Total
	}

	buckets := MonthBuckets()
	series := make([]MonthlyTotalResponse, len(buckets))
	for i, bucket := range buckets {
		series[i] = MonthlyTotalResponse{
			Month:      bucket.Name,
			ShortMonth: bucket.Abbrev,
			Total:      toFloat64(totals[bucket.Number]),
		}
	}

	return series, nil
}

// GetDebtReceivableTotal returns the outstanding balance for the unit over
// the date range: per invoice, underPayment minus linked payments, summed.
// Over-paid invoices net below zero without error.
func (s *FinanceReportService) GetDebtReceivableTotal(ctx context.Context, unitID uuid.UUID, kind BalanceKind, start, end time.Time) (float64, error) {
	var invoiceType, paymentType ledger.TransactionType
	switch kind {
	case KindReceive:
		invoiceType = ledger.TypeSaleInvoice
		paymentType = ledger.TypeReceivablePayment
	case KindDebt:
		invoiceType = ledger.TypePurchaseInvoice
		paymentType = ledger.TypeDebtPayment
	default:
		return 0, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unsupported balance kind %q", kind))
	}
	if err := s.validateRange(start, end); err != nil {
		return 0, err
	}
	if err := s.requireUnit(ctx, unitID); err != nil {
		return 0, err
	}

	total, err := s.financeRepo.GetOutstandingInvoiceTotal(report.OutstandingInvoiceFilter{
		UnitID:      unitID,
		InvoiceType: invoiceType,
		PaymentType: paymentType,
		StartDate:   start,
		EndDate:     end,
		Timezone:    s.timezone,
	})
	if err != nil {
		return 0, err
	}

	return toFloat64(total), nil
}

// GetIncome returns total income for the unit over the date range, derived
// from revenue-category ledger details with the vector sign formula applied.
func (s *FinanceReportService) GetIncome(ctx context.Context, unitID uuid.UUID, start, end time.Time) (float64, error) {
	total, err := s.categoryTotal(ctx, unitID, ledger.IncomeCategories, start, end)
	if err != nil {
		return 0, err
	}
	return toFloat64(total), nil
}

// GetExpense returns total expense for the unit over the date range.
// Expenses are reported non-negative regardless of underlying ledger sign.
func (s *FinanceReportService) GetExpense(ctx context.Context, unitID uuid.UUID, start, end time.Time) (float64, error) {
	total, err := s.categoryTotal(ctx, unitID, ledger.ExpenseCategories, start, end)
	if err != nil {
		return 0, err
	}
	return toFloat64(total.Abs()), nil
}

// GetProfitLoss returns net profit or loss for the unit over the date range,
// aggregated in one pass over all income-statement categories.
func (s *FinanceReportService) GetProfitLoss(ctx context.Context, unitID uuid.UUID, start, end time.Time) (float64, error) {
	total, err := s.categoryTotal(ctx, unitID, ledger.ProfitLossCategories, start, end)
	if err != nil {
		return 0, err
	}
	return toFloat64(total), nil
}

// categoryTotal runs the shared precondition checks and the signed category
// aggregate for the three ledger-derived scalar reports
func (s *FinanceReportService) categoryTotal(ctx context.Context, unitID uuid.UUID, categories []ledger.CategoryClass, start, end time.Time) (decimal.Decimal, error) {
	if err := s.validateRange(start, end); err != nil {
		return decimal.Zero, err
	}
	if err := s.requireUnit(ctx, unitID); err != nil {
		return decimal.Zero, err
	}

	return s.financeRepo.GetCategoryAmountTotal(report.CategoryTotalFilter{
		UnitID:     unitID,
		Categories: categories,
		StartDate:  start,
		EndDate:    end,
		Timezone:   s.timezone,
	})
}

// requireUnit resolves the unit before any aggregate query is dispatched.
// A missing unit is a precondition failure, not a zero result.
func (s *FinanceReportService) requireUnit(ctx context.Context, unitID uuid.UUID) error {
	if _, err := s.unitRepo.FindByID(ctx, unitID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("unit %s not found", unitID))
		}
		return err
	}
	return nil
}

// validateRange rejects malformed date ranges before any query is issued.
// Comparison is date-only in the report time zone; time of day is discarded.
func (s *FinanceReportService) validateRange(start, end time.Time) error {
	if dateOnly(start.In(s.location)).After(dateOnly(end.In(s.location))) {
		return shared.NewDomainError("INVALID_INPUT", "start date must not be after end date")
	}
	return nil
}

// invoiceTypeFor maps a transaction report kind to its invoice type
func invoiceTypeFor(kind TransactionKind) (ledger.TransactionType, error) {
	switch kind {
	case KindSales:
		return ledger.TypeSaleInvoice, nil
	case KindPurchase:
		return ledger.TypePurchaseInvoice, nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unsupported transaction kind %q", kind))
	}
}

// toFloat64 converts a decimal to float64 for API responses
func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
