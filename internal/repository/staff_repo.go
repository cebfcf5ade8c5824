package repository

import (
	"context"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(ctx context.Context, s *model.Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	// ListActive is what PIN login iterates — PINs are hashed, so there is
	// no "find by pin" query.
	ListActive(ctx context.Context) ([]model.Staff, error)
	ListAll(ctx context.Context) ([]model.Staff, error)
	Update(ctx context.Context, s *model.Staff) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type staffRepo struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) StaffRepository { return &staffRepo{db: db} }

func (r *staffRepo) Create(ctx context.Context, s *model.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *staffRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var s model.Staff
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *staffRepo) ListActive(ctx context.Context) ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&staff).Error
	return staff, err
}

func (r *staffRepo) ListAll(ctx context.Context) ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.WithContext(ctx).Order("name ASC").Find(&staff).Error
	return staff, err
}

func (r *staffRepo) Update(ctx context.Context, s *model.Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *staffRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Staff{}).Where("id = ?", id).Update("active", false).Error
}

func (r *staffRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Staff{}).Where("id = ?", id).Update("active", true).Error
}
