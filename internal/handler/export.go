package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/apierror"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/infra"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/repository"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves .xlsx downloads of sales and cut history. It reads
// straight from the repositories — the export is a dump, not a projection.
type ExportHandler struct {
	sales repository.SaleRepository
	cuts  repository.CashCutRepository
}

func NewExportHandler(sales repository.SaleRepository, cuts repository.CashCutRepository) *ExportHandler {
	return &ExportHandler{sales: sales, cuts: cuts}
}

// Sales godoc
// @Summary Exporta ventas a Excel
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD (inclusivo)"
// @Success 200 {file} binary
// @Router /v1/export/sales [get]
func (h *ExportHandler) Sales(c *gin.Context) {
	var filter dto.StatsRangeFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	from, to, err := parseDayRange(filter.From, filter.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	sales, err := h.sales.ListBetween(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar ventas"))
		return
	}

	book, err := infra.BuildSalesWorkbook(sales)
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}

	filename := fmt.Sprintf("ventas-%s-%s.xlsx", filter.From, filter.To)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, book)
}

// Cuts exports the most recent cash cuts.
func (h *ExportHandler) Cuts(c *gin.Context) {
	cuts, err := h.cuts.List(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar cortes"))
		return
	}

	book, err := infra.BuildCashCutsWorkbook(cuts)
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}

	filename := fmt.Sprintf("cortes-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, book)
}

// parseDayRange interprets From/To as local calendar days, To inclusive.
func parseDayRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha 'from' invalida")
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha 'to' invalida")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("'to' debe ser posterior a 'from'")
	}
	return from, to.AddDate(0, 0, 1), nil
}
