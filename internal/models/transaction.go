package models

import (
	"strings"
	"time"
)

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ParseTransactionType normalizes a client-sent type string to the stored
// lower-case enum tag. The second return value reports whether the input
// named a known type.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(strings.ToLower(s)) {
	case TransactionTypeIncome:
		return TransactionTypeIncome, true
	case TransactionTypeExpense:
		return TransactionTypeExpense, true
	}
	return "", false
}

// Transaction represents a single income or expense entry. Amount is the
// non-negative magnitude in cents; the sign is derived from Type. Date is
// the calendar date of the transaction, distinct from CreatedAt.
type Transaction struct {
	Base
	Description string          `gorm:"not null" json:"description"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Date        time.Time       `gorm:"not null" json:"date"`
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"categoryId"`
	UserID      string          `gorm:"type:uuid;not null;index" json:"userId"`
}
