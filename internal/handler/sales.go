package handler

import (
	"errors"
	"net/http"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/apierror"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/middleware"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// Record godoc
// @Summary      Registrar una venta
// @Description  Crea una venta ACID: congela precios en los renglones y descuenta stock atomicamente.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordSaleRequest true "Renglones de la venta"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) Record(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	session := sessionFromClaims(middleware.GetClaims(c))

	resp, err := h.svc.RecordSale(c.Request.Context(), session, req)
	if err != nil {
		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			c.JSON(http.StatusConflict, apierror.New(stockErr.Error()))
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns a paginated list of sales filtered by calendar date.
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Venta no encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// sessionFromClaims turns JWT claims into the explicit session object the
// service layer expects.
func sessionFromClaims(claims *middleware.JWTClaims) service.StaffSession {
	id, _ := uuid.Parse(claims.StaffID)
	return service.StaffSession{ID: id, Name: claims.Name, Role: claims.Role}
}
