package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/apierror"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/infra"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/middleware"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CashCutHandler struct {
	svc       service.CashCutService
	storeName string
}

func NewCashCutHandler(svc service.CashCutService, storeName string) *CashCutHandler {
	return &CashCutHandler{svc: svc, storeName: storeName}
}

// Summary godoc
// @Summary Resumen del periodo abierto
// @Description Ventas acumuladas desde el ultimo corte (o medianoche si no hay cortes).
// @Tags cuts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OpenPeriodSummary
// @Router /v1/cuts/summary [get]
func (h *CashCutHandler) Summary(c *gin.Context) {
	resp, err := h.svc.GetOpenPeriodSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular el resumen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Close godoc
// @Summary Cierra el periodo abierto con un corte de caja
// @Description Recalcula el periodo dentro de una transaccion serializable; 409 si otro corte ya cerro la ventana.
// @Tags cuts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ClosePeriodRequest true "Declaracion del corte"
// @Success 201 {object} dto.CashCutResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cuts [post]
func (h *CashCutHandler) Close(c *gin.Context) {
	var req dto.ClosePeriodRequest
	if !bindAndValidate(c, &req) {
		return
	}
	session := sessionFromClaims(middleware.GetClaims(c))

	resp, err := h.svc.ClosePeriod(c.Request.Context(), session, req)
	if err != nil {
		if errors.Is(err, service.ErrPeriodConflict) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// History returns the most recent cuts, newest first.
func (h *CashCutHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	resp, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar el historial"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Ticket godoc
// @Summary Descarga el ticket PDF de un corte
// @Tags cuts
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID del corte"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/cuts/{id}/ticket [get]
func (h *CashCutHandler) Ticket(c *gin.Context) {
	cut, sales, err := h.svc.FindWithSales(c.Request.Context(), c.Param("id"))
	if err != nil {
		var reqErr *service.InvalidRequestError
		if errors.As(err, &reqErr) || errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Corte no encontrado"))
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}

	receipt := service.BuildReceipt(h.storeName, cut, sales)
	pdf, err := infra.RenderCutTicket(receipt)
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}

	filename := fmt.Sprintf("corte-%s.pdf", cut.EndTime.Format("20060102-1504"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
