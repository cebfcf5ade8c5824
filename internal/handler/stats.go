package handler

import (
	"net/http"
	"strconv"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/apierror"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct{ svc service.StatsService }

func NewStatsHandler(svc service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

// Today returns count, total and average ticket for the current calendar day.
func (h *StatsHandler) Today(c *gin.Context) {
	resp, err := h.svc.TodaySummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadisticas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Range returns per-day rollups for an inclusive [from, to] date range.
func (h *StatsHandler) Range(c *gin.Context) {
	var filter dto.StatsRangeFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.RangeStats(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopProducts ranks products by units sold within a date range.
func (h *StatsHandler) TopProducts(c *gin.Context) {
	var filter dto.StatsRangeFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	resp, err := h.svc.TopProducts(c.Request.Context(), filter, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
