package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashCutService interface {
	GetOpenPeriodSummary(ctx context.Context) (*dto.OpenPeriodSummary, error)
	ClosePeriod(ctx context.Context, session StaffSession, req dto.ClosePeriodRequest) (*dto.CashCutResponse, error)
	History(ctx context.Context, limit int) ([]dto.CashCutResponse, error)
	// FindWithSales returns a cut plus the sales its interval covers, for
	// receipt rendering.
	FindWithSales(ctx context.Context, id string) (*model.CashCut, []model.Sale, error)
}

type cashCutService struct {
	cuts  repository.CashCutRepository
	sales repository.SaleRepository
}

func NewCashCutService(cuts repository.CashCutRepository, sales repository.SaleRepository) CashCutService {
	return &cashCutService{cuts: cuts, sales: sales}
}

// ── GetOpenPeriodSummary ─────────────────────────────────────────────────────
// Read-only. The open period starts where the last cut ended, or at local
// midnight when the ledger is empty. Absence of a prior cut is not an error.

func (s *cashCutService) GetOpenPeriodSummary(ctx context.Context) (*dto.OpenPeriodSummary, error) {
	start, err := s.openPeriodStart(ctx)
	if err != nil {
		return nil, err
	}

	sales, err := s.sales.ListSince(ctx, start)
	if err != nil {
		return nil, err
	}

	summary := &dto.OpenPeriodSummary{
		PeriodStart: start,
		SalesCount:  len(sales),
		SalesTotal:  sumSales(sales),
		Sales:       make([]dto.SaleResponse, 0, len(sales)),
	}
	for i := range sales {
		summary.Sales = append(summary.Sales, *saleToResponse(&sales[i]))
	}
	return summary, nil
}

func (s *cashCutService) openPeriodStart(ctx context.Context) (time.Time, error) {
	last, err := s.cuts.FindLast(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return startOfDay(time.Now()), nil
		}
		return time.Time{}, err
	}
	return last.EndTime, nil
}

// ── ClosePeriod ──────────────────────────────────────────────────────────────
// Persists one immutable CashCut summarizing [periodStart, now). The whole
// read-summary + write-checkpoint runs as a serializable transaction: the
// last cut is re-read and the window recomputed inside it, so two terminals
// racing on the same window cannot both commit an overlapping cut — the
// loser gets ErrPeriodConflict.

func (s *cashCutService) ClosePeriod(ctx context.Context, session StaffSession, req dto.ClosePeriodRequest) (*dto.CashCutResponse, error) {
	if session.Name == "" {
		return nil, &InvalidRequestError{Msg: "se requiere el nombre del empleado"}
	}

	var cut model.CashCut
	txErr := runTx(ctx, s.cuts.DB(), func(tx *gorm.DB) error {
		start := startOfDay(time.Now())
		if last, err := s.cuts.FindLastTx(tx); err == nil {
			start = last.EndTime
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if !req.PeriodStart.Equal(start) {
			return ErrPeriodConflict
		}

		sales, err := s.sales.ListSinceTx(tx, start)
		if err != nil {
			return err
		}
		total := sumSales(sales)

		cut = model.CashCut{
			StaffName:    session.Name,
			StaffRole:    session.Role,
			CutType:      req.CutType,
			StartTime:    start,
			EndTime:      time.Now(),
			SalesCount:   len(sales),
			SalesTotal:   total,
			ExpectedCash: total,
			ActualCash:   req.ActualCash,
			Notes:        req.Notes,
		}
		if req.ActualCash != nil {
			diff := req.ActualCash.Sub(total)
			cut.Difference = &diff
		}

		return s.cuts.CreateTx(tx, &cut)
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if txErr != nil {
		return nil, txErr
	}

	return cashCutToResponse(&cut), nil
}

// ── History ──────────────────────────────────────────────────────────────────

func (s *cashCutService) History(ctx context.Context, limit int) ([]dto.CashCutResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 30
	}
	cuts, err := s.cuts.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CashCutResponse, 0, len(cuts))
	for i := range cuts {
		resp = append(resp, *cashCutToResponse(&cuts[i]))
	}
	return resp, nil
}

func (s *cashCutService) FindWithSales(ctx context.Context, id string) (*model.CashCut, []model.Sale, error) {
	cutID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, &InvalidRequestError{Msg: "ID de corte inválido"}
	}
	cut, err := s.cuts.FindByID(ctx, cutID)
	if err != nil {
		return nil, nil, err
	}
	sales, err := s.salesInWindow(ctx, cut)
	if err != nil {
		return nil, nil, err
	}
	return cut, sales, nil
}

func (s *cashCutService) salesInWindow(ctx context.Context, cut *model.CashCut) ([]model.Sale, error) {
	all, err := s.sales.ListSince(ctx, cut.StartTime)
	if err != nil {
		return nil, err
	}
	sales := make([]model.Sale, 0, len(all))
	for _, sale := range all {
		if sale.CreatedAt.Before(cut.EndTime) {
			sales = append(sales, sale)
		}
	}
	return sales, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// sumSales accumulates decimals directly — no float drift, no per-addition
// rounding. Rounding to cents happens only at presentation.
func sumSales(sales []model.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Total)
	}
	return total
}

// startOfDay truncates t to local midnight (00:00:00.000).
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func cashCutToResponse(c *model.CashCut) *dto.CashCutResponse {
	return &dto.CashCutResponse{
		ID:           c.ID.String(),
		StaffName:    c.StaffName,
		StaffRole:    c.StaffRole,
		CutType:      c.CutType,
		StartTime:    c.StartTime.Format(time.RFC3339),
		EndTime:      c.EndTime.Format(time.RFC3339),
		SalesCount:   c.SalesCount,
		SalesTotal:   c.SalesTotal,
		ExpectedCash: c.ExpectedCash,
		ActualCash:   c.ActualCash,
		Difference:   c.Difference,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}
