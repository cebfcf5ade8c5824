package infra

// ticket_pdf.go — thermal-style ticket rendering with go-pdf/fpdf.
// A7-ish page (74mm × variable) close to receipt paper: store header,
// per-sale lines with running subtotal, expected vs counted footer.

import (
	"bytes"
	"fmt"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// RenderCutTicket renders a cash-cut receipt document to PDF bytes.
func RenderCutTicket(r *dto.Receipt) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 200},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, r.StoreName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	title := "Corte de Turno"
	if r.CutType == "day" {
		title = "Corte del Día"
	}
	pdf.CellFormat(contentW, 5, title, "", 1, "C", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Empleado: %s (%s)", r.StaffName, r.StaffRole), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Desde: "+r.PeriodStart.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Hasta: "+r.PeriodEnd.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Sales ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // line total

	for _, sale := range r.Sales {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(col1+col2, 4, sale.Time.Format("15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+sale.Total.StringFixed(2), "", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 7)
		for _, line := range sale.Lines {
			pdf.CellFormat(col1, 4, truncateRunes(line.ProductName, 22), "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 4, fmt.Sprintf("x%d", line.Quantity), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 4, "$"+line.LineTotal.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Helvetica", "I", 6)
		pdf.CellFormat(col1+col2, 4, "Subtotal acumulado:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+sale.RunningSubtotal.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.Ln(1)
	}

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(col1+col2, 5, fmt.Sprintf("Ventas: %d", r.SalesCount), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1+col2, 5, "Esperado:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "$"+r.ExpectedCash.StringFixed(2), "", 1, "R", false, 0, "")

	if r.ActualCash != nil {
		pdf.CellFormat(col1+col2, 5, "Contado:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+r.ActualCash.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if r.Difference != nil {
		label := "Diferencia:"
		if r.Balanced {
			label = "Diferencia (cuadrada):"
		}
		pdf.CellFormat(col1+col2, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, formatSigned(*r.Difference), "", 1, "R", false, 0, "")
	}

	if r.Notes != nil && *r.Notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.MultiCell(contentW, 4, "Notas: "+*r.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render ticket: %w", err)
	}
	return buf.Bytes(), nil
}

// truncateRunes shortens s to max runes with an ellipsis. Slicing runes, not
// bytes: accented product names must not be cut mid-character.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func formatSigned(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
