package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/backend/internal/domain/ledger"
	"github.com/finbooks/backend/internal/domain/org"
)

// UnitModel is the persistence model for a business unit.
type UnitModel struct {
	BaseModel
	Code    string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit entity.
func (m *UnitModel) ToDomain() *org.Unit {
	return &org.Unit{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Unit entity.
func (m *UnitModel) FromDomain(u *org.Unit) {
	m.ID = u.ID
	m.Code = u.Code
	m.Name = u.Name
	m.Address = u.Address
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}

// TransactionModel is the persistence model for a source transaction.
type TransactionModel struct {
	BaseModel
	UnitID          uuid.UUID              `gorm:"type:uuid;not null;index"`
	TransactionType ledger.TransactionType `gorm:"type:varchar(30);not null;index"`
	EntryDate       time.Time              `gorm:"not null;index"`
	Total           decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	UnderPayment    decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		ID:              m.ID,
		UnitID:          m.UnitID,
		TransactionType: m.TransactionType,
		EntryDate:       m.EntryDate,
		Total:           m.Total,
		UnderPayment:    m.UnderPayment,
	}
}

// TransactionDetailModel is the persistence model for a transaction line.
// ReferenceID points at the invoice transaction a payment line settles.
type TransactionDetailModel struct {
	BaseModel
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReferenceID   uuid.UUID       `gorm:"type:uuid;index"`
	PriceInput    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (TransactionDetailModel) TableName() string {
	return "transaction_details"
}

// ToDomain converts the persistence model to a domain TransactionDetail entity.
func (m *TransactionDetailModel) ToDomain() *ledger.TransactionDetail {
	return &ledger.TransactionDetail{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ReferenceID:   m.ReferenceID,
		PriceInput:    m.PriceInput,
	}
}

// GeneralLedgerModel is the persistence model for a journal header.
type GeneralLedgerModel struct {
	BaseModel
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index"`
	UnitID        uuid.UUID `gorm:"type:uuid;not null;index"`
	EntryDate     time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (GeneralLedgerModel) TableName() string {
	return "general_ledgers"
}

// GeneralLedgerDetailModel is the persistence model for a journal posting line.
type GeneralLedgerDetailModel struct {
	BaseModel
	GeneralLedgerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChartOfAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Vector           ledger.Vector   `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (GeneralLedgerDetailModel) TableName() string {
	return "general_ledger_details"
}

// ChartOfAccountModel is the persistence model for a chart of accounts entry.
type ChartOfAccountModel struct {
	BaseModel
	AccountSubClassID uuid.UUID `gorm:"type:uuid;not null;index"`
	Code              string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string    `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (ChartOfAccountModel) TableName() string {
	return "chart_of_accounts"
}

// AccountSubClassModel is the persistence model for the middle tier of the
// account classification tree.
type AccountSubClassModel struct {
	BaseModel
	AccountClassID uuid.UUID `gorm:"type:uuid;not null;index"`
	Code           string    `gorm:"type:varchar(50);not null"`
	Name           string    `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (AccountSubClassModel) TableName() string {
	return "account_sub_classes"
}

// AccountClassModel is the persistence model for the top tier of the account
// classification tree. CategoryClass drives report category filtering.
type AccountClassModel struct {
	BaseModel
	Code          string               `gorm:"type:varchar(50);not null"`
	Name          string               `gorm:"type:varchar(200);not null"`
	CategoryClass ledger.CategoryClass `gorm:"type:varchar(30);not null;index"`
}

// TableName returns the table name for GORM
func (AccountClassModel) TableName() string {
	return "account_classes"
}
