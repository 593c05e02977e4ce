package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"edahub/app"
	"edahub/domain/dataset"
	"edahub/internal/errors"
)

// WriteWorkbook renders the summary report and the filtered data as an XLSX
// workbook with one sheet per report section.
func WriteWorkbook(report *app.SummaryReport, view dataset.View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, report); err != nil {
		return nil, err
	}
	if err := writeKPISheet(f, report); err != nil {
		return nil, err
	}
	if err := writeDataSheet(f, view); err != nil {
		return nil, err
	}

	// The default sheet is replaced by the report sheets.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Data Summary"); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to assemble workbook")
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, report *app.SummaryReport) error {
	const sheet = "Data Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, "failed to create summary sheet")
	}

	f.SetCellValue(sheet, "A1", report.Title)
	f.SetCellValue(sheet, "A2",
		fmt.Sprintf("Generated on: %s", report.GeneratedAt.Format("2006-01-02 15:04:05")))

	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	// Header row: blank corner cell then one column per numeric column.
	row := 4
	for i, s := range report.Summary {
		cell, _ := excelize.CoordinatesToCellName(i+2, row)
		f.SetCellValue(sheet, cell, s.Column)
		f.SetCellStyle(sheet, cell, cell, header)
	}
	for r, stat := range summaryStatRows {
		labelCell, _ := excelize.CoordinatesToCellName(1, row+1+r)
		f.SetCellValue(sheet, labelCell, stat.label)
		for c, s := range report.Summary {
			cell, _ := excelize.CoordinatesToCellName(c+2, row+1+r)
			f.SetCellValue(sheet, cell, stat.value(s))
		}
	}
	return nil
}

func writeKPISheet(f *excelize.File, report *app.SummaryReport) error {
	const sheet = "KPIs"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, "failed to create KPI sheet")
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	f.SetCellValue(sheet, "A1", "KPI")
	f.SetCellValue(sheet, "B1", "Value")
	f.SetCellStyle(sheet, "A1", "B1", header)

	for i, row := range report.KPIs {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.Label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.Value)
	}
	f.SetColWidth(sheet, "A", "B", 24)
	return nil
}

func writeDataSheet(f *excelize.File, view dataset.View) error {
	const sheet = "Data"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, "failed to create data sheet")
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	cols := view.Frame().Columns()
	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, header)
	}
	for r, row := range dataset.Rows(view) {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F46E5"}},
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to create header style")
	}
	return style, nil
}
