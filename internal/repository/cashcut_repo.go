package repository

import (
	"context"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CashCutRepository interface {
	// FindLast returns the most recently created cut, or
	// gorm.ErrRecordNotFound when the ledger is empty.
	FindLast(ctx context.Context) (*model.CashCut, error)
	FindLastTx(tx *gorm.DB) (*model.CashCut, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashCut, error)
	CreateTx(tx *gorm.DB, c *model.CashCut) error
	List(ctx context.Context, limit int) ([]model.CashCut, error)
	DB() *gorm.DB
}

type cashCutRepo struct{ db *gorm.DB }

func NewCashCutRepository(db *gorm.DB) CashCutRepository { return &cashCutRepo{db: db} }

func (r *cashCutRepo) DB() *gorm.DB { return r.db }

func (r *cashCutRepo) FindLast(ctx context.Context) (*model.CashCut, error) {
	return findLast(r.db.WithContext(ctx))
}

func (r *cashCutRepo) FindLastTx(tx *gorm.DB) (*model.CashCut, error) {
	return findLast(tx)
}

func findLast(db *gorm.DB) (*model.CashCut, error) {
	var c model.CashCut
	err := db.Order("created_at DESC").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cashCutRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashCut, error) {
	var c model.CashCut
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cashCutRepo) CreateTx(tx *gorm.DB, c *model.CashCut) error {
	// Insert only — cuts are an append-only ledger with no update path.
	return tx.Create(c).Error
}

func (r *cashCutRepo) List(ctx context.Context, limit int) ([]model.CashCut, error) {
	var cuts []model.CashCut
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&cuts).Error
	return cuts, err
}
