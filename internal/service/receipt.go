package service

import (
	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"

	"github.com/shopspring/decimal"
)

// BuildReceipt projects a cash cut plus its covered sales into a printable
// document. Pure and deterministic: no side effects, and the same inputs
// always produce the same output. Sales are expected oldest-first, as the
// summary and window queries return them.
func BuildReceipt(storeName string, cut *model.CashCut, sales []model.Sale) *dto.Receipt {
	r := &dto.Receipt{
		StoreName:    storeName,
		CutType:      cut.CutType,
		StaffName:    cut.StaffName,
		StaffRole:    cut.StaffRole,
		PeriodStart:  cut.StartTime,
		PeriodEnd:    cut.EndTime,
		Sales:        make([]dto.ReceiptSale, 0, len(sales)),
		SalesCount:   cut.SalesCount,
		ExpectedCash: cut.ExpectedCash,
		ActualCash:   cut.ActualCash,
		Difference:   cut.Difference,
		Notes:        cut.Notes,
	}
	if cut.Difference != nil && cut.Difference.IsZero() {
		r.Balanced = true
	}

	running := decimal.Zero
	for _, sale := range sales {
		running = running.Add(sale.Total)
		rs := dto.ReceiptSale{
			Time:            sale.CreatedAt,
			Total:           sale.Total,
			RunningSubtotal: running,
			Lines:           make([]dto.ReceiptLine, 0, len(sale.Items)),
		}
		for _, item := range sale.Items {
			rs.Lines = append(rs.Lines, dto.ReceiptLine{
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				LineTotal:   item.LineTotal,
			})
		}
		r.Sales = append(r.Sales, rs)
	}
	return r
}
