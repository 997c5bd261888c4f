package report

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
	"github.com/sodeng/branchops-backend-go/internal/domain/report"
)

var pdfColumnWidths = []float64{36, 30, 30, 30, 30, 46, 46}

// RenderPDF lays the report out on landscape A4 pages. Saturdays print in blue.
func RenderPDF(monthly report.MonthlyReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Monthly Financial Report")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Branch: "+monthly.Branch)
	pdf.Ln(10)

	pdfHeader(pdf, summaryHeaders)
	pdfRow(pdf, summaryCells(monthly.Summary), false)
	pdf.Ln(6)

	pdfHeader(pdf, dailyHeaders)
	for _, line := range monthly.Lines {
		pdfRow(pdf, lineCells(line), line.IsSaturday)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfHeader(pdf *gofpdf.Fpdf, titles []string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	for i, title := range titles {
		pdf.CellFormat(pdfColumnWidths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
}

func pdfRow(pdf *gofpdf.Fpdf, values []string, highlight bool) {
	for i, v := range values {
		if i == 0 && highlight {
			pdf.SetTextColor(0, 0, 255)
		}
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(pdfColumnWidths[i], 6, v, "1", 0, align, false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(-1)
}
