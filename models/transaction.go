package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies money flowing in or out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// TransactionTypes lists every accepted type.
var TransactionTypes = []TransactionType{TransactionIncome, TransactionExpense}

// ParseTransactionType matches s case-insensitively against TransactionTypes.
func ParseTransactionType(s string) (TransactionType, bool) {
	up := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range TransactionTypes {
		if t == up {
			return t, true
		}
	}
	return "", false
}

// TransactionSource records how a transaction entered the system.
type TransactionSource string

const (
	SourceManual    TransactionSource = "MANUAL"
	SourceCSVUpload TransactionSource = "CSV_UPLOAD"
)

// DateLayout is the wire and CSV format for transaction dates.
const DateLayout = "2006-01-02"

// Transaction is a single financial record owned by a user.
type Transaction struct {
	ID              uint `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UserID          uint              `gorm:"index;not null"`
	CategoryID      *uint             `gorm:"index"`
	Category        *Category         `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Amount          decimal.Decimal   `gorm:"type:decimal(12,2);not null"` // always > 0
	Description     string            `gorm:"type:text"`
	TransactionDate time.Time         `gorm:"type:date;not null;index"`
	Type            TransactionType   `gorm:"column:transaction_type;size:10;not null"`
	Source          TransactionSource `gorm:"size:20;not null"`
}
