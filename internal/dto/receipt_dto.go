package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the print-ready projection of a cash cut and its sales —
// header (store, cut type, staff), per-sale body with running subtotal,
// footer with expected vs counted vs difference.
type Receipt struct {
	StoreName string
	CutType   string // "shift" | "day"
	StaffName string
	StaffRole string

	PeriodStart time.Time
	PeriodEnd   time.Time

	Sales      []ReceiptSale
	SalesCount int

	ExpectedCash decimal.Decimal
	ActualCash   *decimal.Decimal
	Difference   *decimal.Decimal
	// Balanced means the counted cash matched expected exactly. Presentation
	// only — persistence does not treat a zero difference specially.
	Balanced bool
	Notes    *string
}

type ReceiptSale struct {
	Time  time.Time
	Lines []ReceiptLine
	Total decimal.Decimal
	// RunningSubtotal accumulates sale totals top to bottom of the ticket.
	RunningSubtotal decimal.Decimal
}

type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
