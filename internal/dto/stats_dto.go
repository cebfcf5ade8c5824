package dto

import "github.com/shopspring/decimal"

// ─── Filter ─────────────────────────────────────────────────────────────────

// StatsRangeFilter bounds an analytics query to [From, To] calendar days.
type StatsRangeFilter struct {
	From string `form:"from" validate:"required,datetime=2006-01-02"`
	To   string `form:"to"   validate:"required,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StatsSummaryResponse struct {
	SalesCount int             `json:"sales_count"`
	SalesTotal decimal.Decimal `json:"sales_total"`
	Average    decimal.Decimal `json:"average"`
}

// DailyTotal is one time bucket in the range rollup.
type DailyTotal struct {
	Day        string          `json:"day"` // YYYY-MM-DD
	SalesCount int             `json:"sales_count"`
	SalesTotal decimal.Decimal `json:"sales_total"`
}

type StatsRangeResponse struct {
	From    string               `json:"from"`
	To      string               `json:"to"`
	Summary StatsSummaryResponse `json:"summary"`
	Daily   []DailyTotal         `json:"daily"`
}

// TopProduct aggregates sale_items on the product name snapshot.
type TopProduct struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}
