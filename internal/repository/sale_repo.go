package repository

import (
	"context"
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyTotalRow is one GROUP BY day bucket scanned from the rollup query.
type DailyTotalRow struct {
	Day   time.Time
	Count int
	Total string // decimal column scanned as text, parsed by the service
}

// TopProductRow aggregates sale_items on the name snapshot.
type TopProductRow struct {
	ProductName string
	Quantity    int
	Total       string
}

type SaleRepository interface {
	// Create persists a sale with its items inside tx — callers own the
	// transaction so the stock decrement commits or rolls back with it.
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)

	// ListSince returns sales with createdAt >= since, items preloaded,
	// oldest first so receipts render deterministically.
	ListSince(ctx context.Context, since time.Time) ([]model.Sale, error)
	// ListSinceTx is the same query bound to a live transaction; used by the
	// close-period path to read its window under the tx isolation level.
	ListSinceTx(tx *gorm.DB, since time.Time) ([]model.Sale, error)

	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)

	// ListBetween returns sales in [from, to), items preloaded, oldest first.
	// Backs the spreadsheet export.
	ListBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error)

	// Analytics rollups — aggregation happens in SQL, not in Go.
	DailyTotals(ctx context.Context, from, to time.Time) ([]DailyTotalRow, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductRow, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) ListSince(ctx context.Context, since time.Time) ([]model.Sale, error) {
	return listSince(r.db.WithContext(ctx), since)
}

func (r *saleRepo) ListSinceTx(tx *gorm.DB, since time.Time) ([]model.Sale, error) {
	return listSince(tx, since)
}

func listSince(db *gorm.DB, since time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := db.Preload("Items").
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepo) DailyTotals(ctx context.Context, from, to time.Time) ([]DailyTotalRow, error) {
	var rows []DailyTotalRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT DATE(created_at) AS day,
		       COUNT(*)         AS count,
		       COALESCE(SUM(total), 0) AS total
		FROM sales
		WHERE created_at >= ? AND created_at < ?
		GROUP BY DATE(created_at)
		ORDER BY day ASC
	`, from, to).Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductRow, error) {
	var rows []TopProductRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT si.product_name             AS product_name,
		       SUM(si.quantity)            AS quantity,
		       COALESCE(SUM(si.line_total), 0) AS total
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.created_at >= ? AND s.created_at < ?
		GROUP BY si.product_name
		ORDER BY quantity DESC
		LIMIT ?
	`, from, to, limit).Scan(&rows).Error
	return rows, err
}
