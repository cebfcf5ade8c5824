package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/handler"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/middleware"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubSaleService struct {
	recordResp *dto.SaleResponse
	recordErr  error
}

func (s *stubSaleService) RecordSale(context.Context, service.StaffSession, dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	return s.recordResp, s.recordErr
}

func (s *stubSaleService) ListSales(context.Context, dto.SaleFilter) (*dto.SaleListResponse, error) {
	return &dto.SaleListResponse{}, nil
}

func (s *stubSaleService) GetSale(context.Context, uuid.UUID) (*dto.SaleResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSaleService) ListSalesSince(context.Context, time.Time) ([]model.Sale, error) {
	return nil, nil
}

func newSalesRouter(svc service.SaleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{
			StaffID: uuid.NewString(),
			Name:    "Pedro",
			Role:    model.RoleCashier,
		})
	})
	h := handler.NewSalesHandler(svc)
	r.POST("/v1/sales", h.Record)
	return r
}

func postSale(r *gin.Engine) *httptest.ResponseRecorder {
	body := fmt.Sprintf(`{"items":[{"product_id":%q,"quantity":2}]}`, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/v1/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecordSale_InsufficientStockAnswers409(t *testing.T) {
	r := newSalesRouter(&stubSaleService{
		recordErr: &service.InsufficientStockError{Product: "Coca Cola 600ml", Requested: 5, Available: 2},
	})

	w := postSale(r)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Coca Cola 600ml")
}

func TestRecordSale_UnknownProductAnswers400(t *testing.T) {
	r := newSalesRouter(&stubSaleService{
		recordErr: &service.InvalidRequestError{Msg: "producto abc no encontrado"},
	})

	w := postSale(r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no encontrado")
}

func TestRecordSale_StorageErrorNeverReachesClient(t *testing.T) {
	r := newSalesRouter(&stubSaleService{
		recordErr: errors.New(`pq: duplicate key value violates unique constraint "sales_pkey"`),
	})

	w := postSale(r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
	assert.NotContains(t, w.Body.String(), "sales_pkey")
	assert.Contains(t, w.Body.String(), "Error interno del servidor")
}
