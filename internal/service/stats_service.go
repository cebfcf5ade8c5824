package service

import (
	"context"
	"fmt"
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/repository"

	"github.com/shopspring/decimal"
)

// StatsService aggregates sales into time-bucketed and per-product rollups.
// Read-only sibling of the reconciliation engine: same query surface, no
// writes.
type StatsService interface {
	TodaySummary(ctx context.Context) (*dto.StatsSummaryResponse, error)
	RangeStats(ctx context.Context, filter dto.StatsRangeFilter) (*dto.StatsRangeResponse, error)
	TopProducts(ctx context.Context, filter dto.StatsRangeFilter, limit int) ([]dto.TopProduct, error)
}

type statsService struct {
	sales repository.SaleRepository
}

func NewStatsService(sales repository.SaleRepository) StatsService {
	return &statsService{sales: sales}
}

func (s *statsService) TodaySummary(ctx context.Context) (*dto.StatsSummaryResponse, error) {
	sales, err := s.sales.ListSince(ctx, startOfDay(time.Now()))
	if err != nil {
		return nil, err
	}
	return buildSummary(len(sales), sumSales(sales)), nil
}

func (s *statsService) RangeStats(ctx context.Context, filter dto.StatsRangeFilter) (*dto.StatsRangeResponse, error) {
	from, to, err := parseRange(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.sales.DailyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	daily := make([]dto.DailyTotal, 0, len(rows))
	count := 0
	total := decimal.Zero
	for _, row := range rows {
		dayTotal, err := decimal.NewFromString(row.Total)
		if err != nil {
			return nil, fmt.Errorf("total inválido en rollup diario: %w", err)
		}
		daily = append(daily, dto.DailyTotal{
			Day:        row.Day.Format("2006-01-02"),
			SalesCount: row.Count,
			SalesTotal: dayTotal,
		})
		count += row.Count
		total = total.Add(dayTotal)
	}

	return &dto.StatsRangeResponse{
		From:    filter.From,
		To:      filter.To,
		Summary: *buildSummary(count, total),
		Daily:   daily,
	}, nil
}

func (s *statsService) TopProducts(ctx context.Context, filter dto.StatsRangeFilter, limit int) ([]dto.TopProduct, error) {
	from, to, err := parseRange(filter)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	rows, err := s.sales.TopProducts(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	top := make([]dto.TopProduct, 0, len(rows))
	for _, row := range rows {
		total, err := decimal.NewFromString(row.Total)
		if err != nil {
			return nil, fmt.Errorf("total inválido en top de productos: %w", err)
		}
		top = append(top, dto.TopProduct{
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Total:       total,
		})
	}
	return top, nil
}

// parseRange interprets From/To as local calendar days; To is inclusive, so
// the query bound is midnight after it.
func parseRange(filter dto.StatsRangeFilter) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01-02", filter.From, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha 'from' inválida: %w", err)
	}
	to, err := time.ParseInLocation("2006-01-02", filter.To, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha 'to' inválida: %w", err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("el rango de fechas está invertido")
	}
	return from, to.AddDate(0, 0, 1), nil
}

func buildSummary(count int, total decimal.Decimal) *dto.StatsSummaryResponse {
	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(int64(count))).Round(2)
	}
	return &dto.StatsSummaryResponse{
		SalesCount: count,
		SalesTotal: total,
		Average:    avg,
	}
}
