package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind mirrors CategoryKind; a transaction's kind must agree with
// the kind of its category, a cross-entity rule checked at create time.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// Valid reports whether the kind is one of the known values.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindIncome || k == TransactionKindExpense
}

// Transaction is a single monetary movement, tied to exactly one event and
// one category. Transactions are immutable once created; they can only be
// deleted, individually or through the owning event's cascade.
type Transaction struct {
	Base
	EventID     string          `gorm:"type:uuid;not null;index" json:"event_id"`
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Kind        TransactionKind `gorm:"size:10;not null" json:"kind"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string          `gorm:"size:200;not null" json:"description"`
	Date        time.Time       `gorm:"not null" json:"date"`

	// Relationships
	Event    Event    `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
}
