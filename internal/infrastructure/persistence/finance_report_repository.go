package persistence

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finbooks/backend/internal/domain/ledger"
	"github.com/finbooks/backend/internal/domain/report"
)

// GormFinanceReportRepository implements FinanceReportRepository using GORM
type GormFinanceReportRepository struct {
	db *gorm.DB
}

// NewGormFinanceReportRepository creates a new GormFinanceReportRepository
func NewGormFinanceReportRepository(db *gorm.DB) *GormFinanceReportRepository {
	return &GormFinanceReportRepository{db: db}
}

// GetDailyTransactionTotals returns per-day transaction totals within the
// filter's date range, day boundaries taken in the filter's time zone.
func (r *GormFinanceReportRepository) GetDailyTransactionTotals(filter report.TransactionTotalFilter) ([]report.DailyTotalRow, error) {
	type dailyResult struct {
		Date  string
		Total decimal.Decimal
	}

	var results []dailyResult
	err := r.db.Table("transactions t").
		Select(`
			TO_CHAR(t.entry_date AT TIME ZONE ?, 'YYYY-MM-DD') as date,
			COALESCE(SUM(t.total), 0) as total
		`, filter.Timezone).
		Where("t.unit_id = ?", filter.UnitID).
		Where("t.transaction_type = ?", filter.Type).
		Where("(t.entry_date AT TIME ZONE ?)::date BETWEEN (? AT TIME ZONE ?)::date AND (? AT TIME ZONE ?)::date",
			filter.Timezone, filter.StartDate, filter.Timezone, filter.EndDate, filter.Timezone).
		Group("date").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	rows := make([]report.DailyTotalRow, len(results))
	for i, res := range results {
		rows[i] = report.DailyTotalRow{Date: res.Date, Total: res.Total}
	}
	return rows, nil
}

// GetMonthlyTransactionTotals returns transaction totals grouped by month
// number. Rows are filtered by entry-date year only, so a range spanning
// several years merges the same month across those years.
func (r *GormFinanceReportRepository) GetMonthlyTransactionTotals(filter report.TransactionTotalFilter) ([]report.MonthlyTotalRow, error) {
	type monthlyResult struct {
		Month int
		Total decimal.Decimal
	}

	var results []monthlyResult
	err := r.db.Table("transactions t").
		Select(`
			EXTRACT(MONTH FROM (t.entry_date AT TIME ZONE ?))::int as month,
			COALESCE(SUM(t.total), 0) as total
		`, filter.Timezone).
		Where("t.unit_id = ?", filter.UnitID).
		Where("t.transaction_type = ?", filter.Type).
		Where("EXTRACT(YEAR FROM (t.entry_date AT TIME ZONE ?)) BETWEEN EXTRACT(YEAR FROM (? AT TIME ZONE ?)) AND EXTRACT(YEAR FROM (? AT TIME ZONE ?))",
			filter.Timezone, filter.StartDate, filter.Timezone, filter.EndDate, filter.Timezone).
		Group("month").
		Order("month ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	rows := make([]report.MonthlyTotalRow, len(results))
	for i, res := range results {
		rows[i] = report.MonthlyTotalRow{Month: res.Month, Total: res.Total}
	}
	return rows, nil
}

// GetOutstandingInvoiceTotal nets each matching invoice's under payment
// against the payment lines referencing it and sums the remainder. Unpaid
// invoices contribute their full under payment; over-paid ones net negative.
func (r *GormFinanceReportRepository) GetOutstandingInvoiceTotal(filter report.OutstandingInvoiceFilter) (decimal.Decimal, error) {
	type totalResult struct {
		Total decimal.Decimal
	}

	payments := r.db.Table("transaction_details td").
		Select("td.reference_id as reference_id, SUM(td.price_input) as paid").
		Joins("JOIN transactions pt ON pt.id = td.transaction_id").
		Where("pt.transaction_type = ?", filter.PaymentType).
		Where("pt.unit_id = ?", filter.UnitID).
		Group("td.reference_id")

	var result totalResult
	err := r.db.Table("transactions t").
		Select("COALESCE(SUM(t.under_payment - COALESCE(p.paid, 0)), 0) as total").
		Joins("LEFT JOIN (?) p ON p.reference_id = t.id", payments).
		Where("t.unit_id = ?", filter.UnitID).
		Where("t.transaction_type = ?", filter.InvoiceType).
		Where("(t.entry_date AT TIME ZONE ?)::date BETWEEN (? AT TIME ZONE ?)::date AND (? AT TIME ZONE ?)::date",
			filter.Timezone, filter.StartDate, filter.Timezone, filter.EndDate, filter.Timezone).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// GetCategoryAmountTotal sums signed posting amounts for ledger details whose
// account class falls in the filter's category set. Each detail contributes
// (amount * -1), negated again for negative-vector postings.
func (r *GormFinanceReportRepository) GetCategoryAmountTotal(filter report.CategoryTotalFilter) (decimal.Decimal, error) {
	type totalResult struct {
		Total decimal.Decimal
	}

	var result totalResult
	err := r.db.Table("general_ledger_details gld").
		Select(`
			COALESCE(SUM((gld.amount * -1) * CASE WHEN gld.vector = ? THEN 1 ELSE -1 END), 0) as total
		`, ledger.VectorPositive).
		Joins("JOIN general_ledgers gl ON gl.id = gld.general_ledger_id").
		Joins("JOIN chart_of_accounts coa ON coa.id = gld.chart_of_account_id").
		Joins("JOIN account_sub_classes sc ON sc.id = coa.account_sub_class_id").
		Joins("JOIN account_classes ac ON ac.id = sc.account_class_id").
		Where("gl.unit_id = ?", filter.UnitID).
		Where("ac.category_class IN ?", filter.Categories).
		Where("(gl.entry_date AT TIME ZONE ?)::date BETWEEN (? AT TIME ZONE ?)::date AND (? AT TIME ZONE ?)::date",
			filter.Timezone, filter.StartDate, filter.Timezone, filter.EndDate, filter.Timezone).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}
