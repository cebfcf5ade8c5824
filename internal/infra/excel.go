package infra

// excel.go — spreadsheet export with excelize. One sheet per report,
// bold dark header row, numeric cells as float64 so Excel can sum them.

import (
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// BuildSalesWorkbook renders the given sales (one row per line item) as a
// .xlsx workbook and returns its bytes.
func BuildSalesWorkbook(sales []model.Sale) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Ventas"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Fecha", "Hora", "Empleado", "Producto", "Cantidad", "Precio Unitario", "Importe", "Total Venta"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 2
	for _, sale := range sales {
		for _, item := range sale.Items {
			values := []any{
				sale.CreatedAt.Format("2006-01-02"),
				sale.CreatedAt.Format("15:04"),
				sale.StaffName,
				item.ProductName,
				item.Quantity,
				item.UnitPrice.InexactFloat64(),
				item.LineTotal.InexactFloat64(),
				sale.Total.InexactFloat64(),
			}
			for c, v := range values {
				cell, _ := excelize.CoordinatesToCellName(c+1, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 8)
	_ = f.SetColWidth(sheet, "C", "C", 20)
	_ = f.SetColWidth(sheet, "D", "D", 30)
	_ = f.SetColWidth(sheet, "E", "E", 10)
	_ = f.SetColWidth(sheet, "F", "H", 14)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "H1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildCashCutsWorkbook renders cash-cut history as a .xlsx workbook.
func BuildCashCutsWorkbook(cuts []model.CashCut) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Cortes"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Fecha", "Tipo", "Empleado", "Inicio", "Fin", "Ventas", "Total Ventas", "Efectivo Contado", "Diferencia", "Notas"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for r, cut := range cuts {
		row := r + 2
		cutType := "Turno"
		if cut.CutType == model.CutTypeDay {
			cutType = "Día"
		}
		values := []any{
			cut.CreatedAt.Format("2006-01-02"),
			cutType,
			cut.StaffName,
			cut.StartTime.Format("15:04"),
			cut.EndTime.Format("15:04"),
			cut.SalesCount,
			cut.SalesTotal.InexactFloat64(),
			derefMoney(cut.ActualCash),
			derefMoney(cut.Difference),
			derefText(cut.Notes),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 8)
	_ = f.SetColWidth(sheet, "C", "C", 20)
	_ = f.SetColWidth(sheet, "D", "E", 8)
	_ = f.SetColWidth(sheet, "F", "I", 14)
	_ = f.SetColWidth(sheet, "J", "J", 30)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "J1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func derefMoney(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}

func derefText(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
