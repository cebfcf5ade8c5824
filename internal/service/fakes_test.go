package service_test

// In-memory repository fakes. DB() returns nil so services run their
// transactional closures directly (runTx fn(nil) path).

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── CashCutRepository fake ───────────────────────────────────────────────────

type fakeCutRepo struct {
	cuts []model.CashCut
}

func newFakeCutRepo() *fakeCutRepo { return &fakeCutRepo{} }

func (r *fakeCutRepo) FindLast(_ context.Context) (*model.CashCut, error) {
	return r.last()
}

func (r *fakeCutRepo) FindLastTx(_ *gorm.DB) (*model.CashCut, error) {
	return r.last()
}

func (r *fakeCutRepo) last() (*model.CashCut, error) {
	if len(r.cuts) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	c := r.cuts[len(r.cuts)-1]
	return &c, nil
}

func (r *fakeCutRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashCut, error) {
	for i := range r.cuts {
		if r.cuts[i].ID == id {
			c := r.cuts[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCutRepo) CreateTx(_ *gorm.DB, c *model.CashCut) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.cuts = append(r.cuts, *c)
	return nil
}

func (r *fakeCutRepo) List(_ context.Context, limit int) ([]model.CashCut, error) {
	out := make([]model.CashCut, len(r.cuts))
	copy(out, r.cuts)
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCutRepo) DB() *gorm.DB { return nil }

// ── SaleRepository fake ──────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales []model.Sale
}

func newFakeSaleRepo() *fakeSaleRepo { return &fakeSaleRepo{} }

func (r *fakeSaleRepo) add(staff string, total decimal.Decimal, createdAt time.Time) model.Sale {
	s := model.Sale{
		ID:        uuid.New(),
		StaffName: staff,
		StaffRole: model.RoleCashier,
		Total:     total,
		CreatedAt: createdAt,
	}
	r.sales = append(r.sales, s)
	return s
}

func (r *fakeSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			s := r.sales[i]
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSaleRepo) ListSince(_ context.Context, since time.Time) ([]model.Sale, error) {
	return r.listSince(since), nil
}

func (r *fakeSaleRepo) ListSinceTx(_ *gorm.DB, since time.Time) ([]model.Sale, error) {
	return r.listSince(since), nil
}

func (r *fakeSaleRepo) listSince(since time.Time) []model.Sale {
	var out []model.Sale
	for _, s := range r.sales {
		if !s.CreatedAt.Before(since) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *fakeSaleRepo) ListBetween(_ context.Context, from, to time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.listSince(from) {
		if s.CreatedAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, len(r.sales))
	copy(out, r.sales)
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) DailyTotals(_ context.Context, from, to time.Time) ([]repository.DailyTotalRow, error) {
	buckets := make(map[string]*repository.DailyTotalRow)
	totals := make(map[string]decimal.Decimal)
	for _, s := range r.sales {
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		y, m, d := s.CreatedAt.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, s.CreatedAt.Location())
		key := day.Format("2006-01-02")
		if buckets[key] == nil {
			buckets[key] = &repository.DailyTotalRow{Day: day}
			totals[key] = decimal.Zero
		}
		buckets[key].Count++
		totals[key] = totals[key].Add(s.Total)
	}
	var rows []repository.DailyTotalRow
	for key, row := range buckets {
		row.Total = totals[key].String()
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day.Before(rows[j].Day) })
	return rows, nil
}

func (r *fakeSaleRepo) TopProducts(_ context.Context, from, to time.Time, limit int) ([]repository.TopProductRow, error) {
	qty := make(map[string]int)
	totals := make(map[string]decimal.Decimal)
	for _, s := range r.sales {
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		for _, item := range s.Items {
			qty[item.ProductName] += item.Quantity
			totals[item.ProductName] = totals[item.ProductName].Add(item.LineTotal)
		}
	}
	var rows []repository.TopProductRow
	for name, q := range qty {
		rows = append(rows, repository.TopProductRow{ProductName: name, Quantity: q, Total: totals[name].String()})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Quantity > rows[j].Quantity })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *fakeSaleRepo) DB() *gorm.DB { return nil }

// ── ProductRepository fake ───────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *fakeProductRepo) seed(name string, price decimal.Decimal, stock int, active bool) uuid.UUID {
	id := uuid.New()
	r.products[id] = &model.Product{ID: id, Name: name, Price: price, Stock: stock, MinStock: 10, Active: active}
	return id
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode && p.Active {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context, threshold int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active && p.Stock <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return errors.New("not found")
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *fakeProductRepo) DB() *gorm.DB { return nil }
