package worker_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubProductRepo struct {
	product *model.Product
}

func (r *stubProductRepo) Create(context.Context, *model.Product) error { return nil }

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if r.product == nil || r.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.product, nil
}

func (r *stubProductRepo) FindByBarcode(context.Context, string) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(context.Context, dto.ProductFilter) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (r *stubProductRepo) ListLowStock(context.Context, int) ([]model.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) Update(context.Context, *model.Product) error { return nil }
func (r *stubProductRepo) Delete(context.Context, uuid.UUID) error      { return nil }

func (r *stubProductRepo) DecrementStock(*gorm.DB, uuid.UUID, int) (bool, error) {
	return false, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func stockJob(t *testing.T, productID string) worker.Job {
	t.Helper()
	payload, err := json.Marshal(worker.StockAlertPayload{ProductID: productID})
	require.NoError(t, err)
	return worker.Job{Type: "stock_alert", Payload: payload}
}

func TestStockAlert_UnknownJobType(t *testing.T) {
	w := worker.NewStockAlertWorker(&stubProductRepo{}, nil, "")
	err := w.Handle(context.Background(), worker.Job{Type: "mystery"})
	require.Error(t, err)
}

func TestStockAlert_DeletedProductIsNotAnError(t *testing.T) {
	w := worker.NewStockAlertWorker(&stubProductRepo{}, nil, "owner@tienda.mx")
	err := w.Handle(context.Background(), stockJob(t, uuid.NewString()))
	assert.NoError(t, err)
}

func TestStockAlert_SkipsWhenStockAboveMinimum(t *testing.T) {
	p := &model.Product{ID: uuid.New(), Name: "Refresco", Stock: 50, MinStock: 10}
	w := worker.NewStockAlertWorker(&stubProductRepo{product: p}, nil, "owner@tienda.mx")
	err := w.Handle(context.Background(), stockJob(t, p.ID.String()))
	assert.NoError(t, err)
}

func TestStockAlert_NoRecipientConfigured(t *testing.T) {
	p := &model.Product{ID: uuid.New(), Name: "Refresco", Stock: 3, MinStock: 10}
	// Low stock but no ALERT_EMAIL: logs a warning, skips the mail.
	w := worker.NewStockAlertWorker(&stubProductRepo{product: p}, nil, "")
	err := w.Handle(context.Background(), stockJob(t, p.ID.String()))
	assert.NoError(t, err)
}
