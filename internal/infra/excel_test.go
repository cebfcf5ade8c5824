package infra_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/infra"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildSalesWorkbook_OneRowPerLineItem(t *testing.T) {
	sales := []model.Sale{
		{
			StaffName: "Maria",
			Total:     decimal.RequireFromString("72.50"),
			CreatedAt: time.Date(2026, 8, 10, 14, 30, 0, 0, time.Local),
			Items: []model.SaleItem{
				{ProductName: "Coca Cola 600ml", Quantity: 3, UnitPrice: decimal.RequireFromString("18.50"), LineTotal: decimal.RequireFromString("55.50")},
				{ProductName: "Sabritas 45g", Quantity: 1, UnitPrice: decimal.RequireFromString("17.00"), LineTotal: decimal.RequireFromString("17.00")},
			},
		},
	}

	book, err := infra.BuildSalesWorkbook(sales)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(book))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header + one row per line item")
	assert.Equal(t, "Producto", rows[0][3])
	assert.Equal(t, "Coca Cola 600ml", rows[1][3])
	assert.Equal(t, "Sabritas 45g", rows[2][3])
}

func TestBuildCashCutsWorkbook_HandlesNullCountedCash(t *testing.T) {
	cuts := []model.CashCut{
		{
			StaffName:    "Pedro",
			CutType:      model.CutTypeDay,
			StartTime:    time.Date(2026, 8, 10, 0, 0, 0, 0, time.Local),
			EndTime:      time.Date(2026, 8, 10, 22, 0, 0, 0, time.Local),
			SalesCount:   12,
			SalesTotal:   decimal.RequireFromString("1540.00"),
			ExpectedCash: decimal.RequireFromString("1540.00"),
			CreatedAt:    time.Date(2026, 8, 10, 22, 0, 0, 0, time.Local),
		},
	}

	book, err := infra.BuildCashCutsWorkbook(cuts)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(book))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Cortes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Día", rows[1][1])
	assert.Equal(t, "Pedro", rows[1][2])
}
