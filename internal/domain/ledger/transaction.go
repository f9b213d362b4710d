package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType identifies the business event a transaction records
type TransactionType string

const (
	TypeSaleInvoice       TransactionType = "SALE_INVOICE"
	TypePurchaseInvoice   TransactionType = "PURCHASE_INVOICE"
	TypeDebtPayment       TransactionType = "DEBT_PAYMENT"
	TypeReceivablePayment TransactionType = "RECEIVABLE_PAYMENT"
	TypeJournalEntry      TransactionType = "JOURNAL_ENTRY"
)

// Vector is the stored debit/credit direction of a ledger amount.
// Business-facing sign is derived per report category, never read directly
// from the vector.
type Vector string

const (
	VectorPositive Vector = "POSITIVE"
	VectorNegative Vector = "NEGATIVE"
)

// Transaction is a posted business event. Owned by the posting subsystem;
// this module only reads committed state.
type Transaction struct {
	ID              uuid.UUID
	UnitID          uuid.UUID
	TransactionType TransactionType
	EntryDate       time.Time
	Total           decimal.Decimal
	UnderPayment    decimal.Decimal
}

// TransactionDetail links a payment transaction to the invoice transaction it
// settles, carrying the amount applied. ReferenceID points at the invoice.
type TransactionDetail struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	ReferenceID   uuid.UUID
	PriceInput    decimal.Decimal
}

// GeneralLedger groups the ledger details produced by posting one transaction
type GeneralLedger struct {
	ID            uuid.UUID
	UnitID        uuid.UUID
	TransactionID uuid.UUID
}

// GeneralLedgerDetail is one signed monetary movement against one account
type GeneralLedgerDetail struct {
	ID               uuid.UUID
	GeneralLedgerID  uuid.UUID
	ChartOfAccountID uuid.UUID
	Amount           decimal.Decimal
	Vector           Vector
}
