package ledger

import "github.com/google/uuid"

// CategoryClass classifies an account class into a report bucket.
// Income-statement buckets feed the income/expense/profit-loss reports;
// balance-sheet buckets exist in the chart but are not aggregated here.
type CategoryClass string

const (
	CategoryRevenue      CategoryClass = "REVENUE"
	CategoryOtherRevenue CategoryClass = "OTHER_REVENUE"
	CategoryCOGS         CategoryClass = "COGS"
	CategoryCOGM         CategoryClass = "COGM"
	CategoryExpense      CategoryClass = "EXPENSE"
	CategoryOtherExpense CategoryClass = "OTHER_EXPENSE"
	CategoryTax          CategoryClass = "TAX"

	// Balance-sheet categories, present in the classification tree only.
	CategoryCurrentAsset     CategoryClass = "CURRENT_ASSET"
	CategoryFixedAsset       CategoryClass = "FIXED_ASSET"
	CategoryCurrentLiability CategoryClass = "CURRENT_LIABILITY"
	CategoryLongTermDebt     CategoryClass = "LONG_TERM_DEBT"
	CategoryEquity           CategoryClass = "EQUITY"
)

// Named category sets used by the aggregation reports. Each report's
// classification rule lives here, not inline in queries.
var (
	// IncomeCategories feed the income report.
	IncomeCategories = []CategoryClass{
		CategoryRevenue,
		CategoryOtherRevenue,
	}

	// ExpenseCategories feed the expense report.
	ExpenseCategories = []CategoryClass{
		CategoryCOGS,
		CategoryCOGM,
		CategoryExpense,
		CategoryOtherExpense,
		CategoryTax,
	}

	// ProfitLossCategories is the union of income and expense categories.
	// Profit/loss is aggregated over this set in a single pass, not derived
	// from the two partial results.
	ProfitLossCategories = []CategoryClass{
		CategoryRevenue,
		CategoryOtherRevenue,
		CategoryCOGS,
		CategoryCOGM,
		CategoryExpense,
		CategoryOtherExpense,
		CategoryTax,
	}
)

// Polarity describes whether increases to accounts of a class are recorded
// as debits or credits.
type Polarity string

const (
	PolarityDebit  Polarity = "DEBIT"
	PolarityCredit Polarity = "CREDIT"
)

// AccountClass is the root of the classification tree
type AccountClass struct {
	ID            uuid.UUID
	Code          string
	Name          string
	CategoryClass CategoryClass
	Polarity      Polarity
}

// AccountSubClass is the middle level of the classification tree
type AccountSubClass struct {
	ID             uuid.UUID
	AccountClassID uuid.UUID
	Code           string
	Name           string
}

// ChartOfAccount is a leaf account that ledger details post against.
// Its class hierarchy must always be fully resolvable.
type ChartOfAccount struct {
	ID                uuid.UUID
	AccountSubClassID uuid.UUID
	Code              string
	Name              string
}
