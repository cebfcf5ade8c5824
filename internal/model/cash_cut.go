package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CutTypeShift = "shift"
	CutTypeDay   = "day"
)

// CashCut closes out a period of sales with an expected-vs-counted cash
// reconciliation. Append-only ledger: rows are NEVER updated or deleted.
//
// StartTime of cut N equals EndTime of cut N-1 (or local midnight when no
// prior cut exists), so consecutive cuts partition time without gaps or
// overlaps.
//
// CutType: "shift" | "day" — two granularities of the same operation,
// differing only in the label.
type CashCut struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StaffName  string          `gorm:"not null"`
	StaffRole  string          `gorm:"type:varchar(20);not null"`
	CutType    string          `gorm:"type:varchar(10);not null"`
	StartTime  time.Time       `gorm:"not null"`
	EndTime    time.Time       `gorm:"not null"`
	SalesCount int             `gorm:"not null"`
	SalesTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// ExpectedCash mirrors SalesTotal; kept as its own column to match the
	// historical ledger layout.
	ExpectedCash decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// ActualCash is the physically counted amount; null when the operator
	// skipped the count. Difference = ActualCash - ExpectedCash, null when
	// ActualCash is null.
	ActualCash *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Difference *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Notes      *string
	CreatedAt  time.Time `gorm:"index"`
}

func (CashCut) TableName() string { return "cash_cuts" }
