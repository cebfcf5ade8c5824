package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ClosePeriodRequest closes the open sales period with a counted-cash
// declaration. PeriodStart must be the value returned by the most recent
// summary call; SalesCount/SalesTotal echo what the operator confirmed on
// screen — the service recomputes both inside the closing transaction.
type ClosePeriodRequest struct {
	CutType     string           `json:"cut_type"     validate:"required,oneof=shift day"`
	PeriodStart time.Time        `json:"period_start" validate:"required"`
	SalesCount  int              `json:"sales_count"  validate:"min=0"`
	SalesTotal  decimal.Decimal  `json:"sales_total"  validate:"min=0"`
	ActualCash  *decimal.Decimal `json:"actual_cash"  validate:"omitempty,min=0"`
	Notes       *string          `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// OpenPeriodSummary describes every sale not yet covered by a cash cut.
type OpenPeriodSummary struct {
	PeriodStart time.Time       `json:"period_start"`
	SalesCount  int             `json:"sales_count"`
	SalesTotal  decimal.Decimal `json:"sales_total"`
	Sales       []SaleResponse  `json:"sales"`
}

type CashCutResponse struct {
	ID           string           `json:"id"`
	StaffName    string           `json:"staff_name"`
	StaffRole    string           `json:"staff_role"`
	CutType      string           `json:"cut_type"`
	StartTime    string           `json:"start_time"`
	EndTime      string           `json:"end_time"`
	SalesCount   int              `json:"sales_count"`
	SalesTotal   decimal.Decimal  `json:"sales_total"`
	ExpectedCash decimal.Decimal  `json:"expected_cash"`
	ActualCash   *decimal.Decimal `json:"actual_cash"`
	Difference   *decimal.Decimal `json:"difference"`
	Notes        *string          `json:"notes"`
	CreatedAt    string           `json:"created_at"`
}
