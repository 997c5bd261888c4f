package report

import (
	"fmt"

	"github.com/sodeng/branchops-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Financial Report"


// RenderXLSX writes the report as a single-sheet workbook: the monthly
// summary on top, then one row per working day.
func RenderXLSX(monthly report.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	saturdayStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0000FF"},
	})
	if err != nil {
		return nil, fmt.Errorf("saturday style: %w", err)
	}

	writeRow(f, 1, summaryHeaders)
	if err := f.SetCellStyle(sheetName, cellName(1, 1), cellName(len(summaryHeaders), 1), headerStyle); err != nil {
		return nil, err
	}
	writeRow(f, 2, summaryCells(monthly.Summary))

	const firstDailyRow = 4
	writeRow(f, firstDailyRow, dailyHeaders)
	if err := f.SetCellStyle(sheetName, cellName(1, firstDailyRow), cellName(len(dailyHeaders), firstDailyRow), headerStyle); err != nil {
		return nil, err
	}

	for i, line := range monthly.Lines {
		row := firstDailyRow + 1 + i
		writeRow(f, row, lineCells(line))
		if line.IsSaturday {
			if err := f.SetCellStyle(sheetName, cellName(1, row), cellName(1, row), saturdayStyle); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "G", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) {
	for i, v := range values {
		f.SetCellValue(sheetName, cellName(i+1, row), v)
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
