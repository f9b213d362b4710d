package report

import (
	"time"

	"github.com/finbooks/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyTotalRow is one day's transaction total as returned by the store.
// Date is a calendar-day key ("2006-01-02") in the report time zone; days
// with no transactions are absent and zero-filled by the caller.
type DailyTotalRow struct {
	Date  string
	Total decimal.Decimal
}

// MonthlyTotalRow is one calendar month's transaction total. Month is the
// month number 1..12; months with no transactions are absent.
type MonthlyTotalRow struct {
	Month int
	Total decimal.Decimal
}

// TransactionTotalFilter parameterizes the daily and monthly total queries.
// Timezone is the IANA zone every stored timestamp is normalized into before
// date comparison and bucketing.
type TransactionTotalFilter struct {
	UnitID    uuid.UUID
	Type      ledger.TransactionType
	StartDate time.Time
	EndDate   time.Time
	Timezone  string
}

// OutstandingInvoiceFilter parameterizes the debt/receivable netting query.
// InvoiceType selects the base invoices, PaymentType the settling payments;
// payments are matched to invoices only within the same unit.
type OutstandingInvoiceFilter struct {
	UnitID      uuid.UUID
	InvoiceType ledger.TransactionType
	PaymentType ledger.TransactionType
	StartDate   time.Time
	EndDate     time.Time
	Timezone    string
}

// CategoryTotalFilter parameterizes the signed category aggregate used by the
// income, expense and profit/loss reports.
type CategoryTotalFilter struct {
	UnitID     uuid.UUID
	Categories []ledger.CategoryClass
	StartDate  time.Time
	EndDate    time.Time
	Timezone   string
}

// FinanceReportRepository defines the read-only aggregate queries the
// financial reports are computed from. Implementations run each call as a
// single independent read; no state is shared between calls.
type FinanceReportRepository interface {
	// GetDailyTransactionTotals returns per-day totals of transactions of the
	// given type within [StartDate, EndDate], dates compared in the filter's
	// time zone. Days without transactions are not returned.
	GetDailyTransactionTotals(filter TransactionTotalFilter) ([]DailyTotalRow, error)

	// GetMonthlyTransactionTotals returns per-month totals grouped by month
	// number regardless of year. Filtering is by entry-date YEAR between the
	// years of StartDate and EndDate, not the full date range; a multi-year
	// range therefore merges months across years. Kept for compatibility
	// with existing report consumers.
	GetMonthlyTransactionTotals(filter TransactionTotalFilter) ([]MonthlyTotalRow, error)

	// GetOutstandingInvoiceTotal returns the sum over matching invoices of
	// underPayment minus linked payment amounts. Invoices with no payments
	// contribute their full underPayment; over-paid invoices net below zero.
	// Returns zero when no invoices match.
	GetOutstandingInvoiceTotal(filter OutstandingInvoiceFilter) (decimal.Decimal, error)

	// GetCategoryAmountTotal returns the signed total of ledger detail
	// amounts for accounts whose class falls in the filter's categories,
	// applying (amount * -1) * (vector = POSITIVE ? 1 : -1) per detail.
	// Returns zero when no details match.
	GetCategoryAmountTotal(filter CategoryTotalFilter) (decimal.Decimal, error)
}
