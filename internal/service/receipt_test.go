package service_test

import (
	"testing"
	"time"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReceipt_RunningSubtotalAccumulates(t *testing.T) {
	start := time.Date(2026, 8, 10, 8, 0, 0, 0, time.Local)
	actual := dec("95.00")
	diff := dec("-5.00")
	cut := &model.CashCut{
		StaffName:    "Maria",
		StaffRole:    "cashier",
		CutType:      "shift",
		StartTime:    start,
		EndTime:      start.Add(8 * time.Hour),
		SalesCount:   2,
		SalesTotal:   dec("100.00"),
		ExpectedCash: dec("100.00"),
		ActualCash:   &actual,
		Difference:   &diff,
	}
	salesList := []model.Sale{
		{
			Total:     dec("60.00"),
			CreatedAt: start.Add(time.Hour),
			Items:     []model.SaleItem{{ProductName: "Leche 1L", Quantity: 2, UnitPrice: dec("30.00"), LineTotal: dec("60.00")}},
		},
		{
			Total:     dec("40.00"),
			CreatedAt: start.Add(2 * time.Hour),
			Items:     []model.SaleItem{{ProductName: "Pan Bimbo", Quantity: 1, UnitPrice: dec("40.00"), LineTotal: dec("40.00")}},
		},
	}

	r := service.BuildReceipt("Mi Tienda", cut, salesList)

	assert.Equal(t, "Mi Tienda", r.StoreName)
	require.Len(t, r.Sales, 2)
	assert.True(t, r.Sales[0].RunningSubtotal.Equal(dec("60.00")))
	assert.True(t, r.Sales[1].RunningSubtotal.Equal(dec("100.00")))
	assert.False(t, r.Balanced, "a -5.00 difference is not balanced")
	require.NotNil(t, r.Difference)
	assert.True(t, r.Difference.Equal(dec("-5.00")))
}

func TestBuildReceipt_BalancedWhenDifferenceIsZero(t *testing.T) {
	actual := dec("50.00")
	zero := dec("0.00")
	cut := &model.CashCut{
		StaffName:    "Maria",
		CutType:      "day",
		SalesTotal:   dec("50.00"),
		ExpectedCash: dec("50.00"),
		ActualCash:   &actual,
		Difference:   &zero,
	}

	r := service.BuildReceipt("Mi Tienda", cut, nil)
	assert.True(t, r.Balanced)
	assert.Empty(t, r.Sales)
}

func TestBuildReceipt_IsDeterministic(t *testing.T) {
	cut := &model.CashCut{
		StaffName:    "Maria",
		CutType:      "shift",
		SalesTotal:   dec("10.00"),
		ExpectedCash: dec("10.00"),
	}
	salesList := []model.Sale{{Total: dec("10.00"), CreatedAt: time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)}}

	first := service.BuildReceipt("Mi Tienda", cut, salesList)
	second := service.BuildReceipt("Mi Tienda", cut, salesList)
	assert.Equal(t, first, second)
}
