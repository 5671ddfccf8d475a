package report

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

// RenderPDF writes the report as an A4 PDF at path, with the template's
// logo, title, and header above the table and the footer below it.
func RenderPDF(path string, rep *Report, tpl RenderedTemplate) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	if tpl.LogoPath != "" {
		if _, err := os.Stat(tpl.LogoPath); err == nil {
			pdf.ImageOptions(tpl.LogoPath, 10, 10, 30, 0, false,
				fpdf.ImageOptions{AllowNegativePosition: false}, 0, "")
			pdf.Ln(25)
		}
	}

	if tpl.Title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, tpl.Title, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	if tpl.Header != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tpl.Header, "", "L", false)
		pdf.Ln(4)
	}

	headers := headerRow(rep)
	widths := columnWidths(len(headers))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, cells := range dataRows(rep) {
		for i, value := range cells {
			pdf.CellFormat(widths[i], 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total: %s h", formatHours(rep.TotalHours())), "", 1, "L", false, 0, "")

	if tpl.Footer != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tpl.Footer, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// columnWidths spreads the printable A4 width (190mm) across n columns,
// giving the first column a little extra room for labels.
func columnWidths(n int) []float64 {
	const printable = 190.0
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []float64{printable}
	}
	widths := make([]float64, n)
	first := printable / float64(n) * 1.4
	rest := (printable - first) / float64(n-1)
	widths[0] = first
	for i := 1; i < n; i++ {
		widths[i] = rest
	}
	return widths
}
