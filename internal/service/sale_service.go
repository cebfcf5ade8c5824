package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/repository"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	RecordSale(ctx context.Context, session StaffSession, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSalesSince(ctx context.Context, since time.Time) ([]model.Sale, error)
}

type saleService struct {
	repo       repository.SaleRepository
	products   repository.ProductRepository
	dispatcher *worker.Dispatcher
}

func NewSaleService(repo repository.SaleRepository, products repository.ProductRepository, dispatcher *worker.Dispatcher) SaleService {
	return &saleService{repo: repo, products: products, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn, opts...)
}

// ── RecordSale ───────────────────────────────────────────────────────────────
// One logical unit:
//   1. Resolve each product, snapshot name/price, compute line totals
//   2. BEGIN TX: create sale + items, decrement stock per item with an
//      atomic conditional update (stock >= qty in the WHERE clause)
//   3. COMMIT — any insufficient stock rolls the whole sale back
//   4. (async) enqueue a low-stock check per sold product
//
// The pre-flight stock read is advisory only; the conditional update inside
// the transaction is what prevents concurrent sales from driving stock
// negative.

func (s *saleService) RecordSale(ctx context.Context, session StaffSession, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		price     decimal.Decimal
		quantity  int
		stock     int
		lineTotal decimal.Decimal
	}

	var resolved []resolvedItem
	total := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, invalidRequestf("product_id inválido: %s", item.ProductID)
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalidRequestf("producto %s no encontrado", item.ProductID)
			}
			return nil, err
		}
		if !p.Active {
			return nil, invalidRequestf("producto %s está inactivo y no puede venderse", p.Name)
		}
		if p.Stock < item.Quantity {
			return nil, &InsufficientStockError{Product: p.Name, Requested: item.Quantity, Available: p.Stock}
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			price:     p.Price,
			quantity:  item.Quantity,
			stock:     p.Stock,
			lineTotal: lineTotal,
		})
	}

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		sale = model.Sale{
			StaffName: session.Name,
			StaffRole: session.Role,
			Total:     total,
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductName: r.name,
				UnitPrice:   r.price,
				Quantity:    r.quantity,
				LineTotal:   r.lineTotal,
			})
		}

		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		for _, r := range resolved {
			ok, err := s.products.DecrementStock(tx, r.productID, r.quantity)
			if err != nil {
				return fmt.Errorf("error descontando stock de %s: %w", r.name, err)
			}
			if !ok {
				// A concurrent sale took the units between the pre-flight
				// read and now; abort the whole sale.
				return &InsufficientStockError{Product: r.name, Requested: r.quantity, Available: r.stock}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Low-stock alerts — best-effort, fire & forget
	if s.dispatcher != nil {
		for _, r := range resolved {
			_ = s.dispatcher.EnqueueStockAlert(ctx, r.productID)
		}
	}

	return saleToResponse(&sale), nil
}

// ListSales returns a paginated list of sales; default filter is today.
func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSalesSince(ctx context.Context, since time.Time) ([]model.Sale, error) {
	return s.repo.ListSince(ctx, since)
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, dto.SaleItemResponse{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}
	return &dto.SaleResponse{
		ID:        sale.ID.String(),
		StaffName: sale.StaffName,
		StaffRole: sale.StaffRole,
		Items:     items,
		Total:     sale.Total,
		CreatedAt: sale.CreatedAt.Format(time.RFC3339),
	}
}
