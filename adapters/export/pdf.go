package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"edahub/app"
	"edahub/domain/metrics"
	"edahub/internal/errors"
)

// WritePDF renders the summary report as a paginated letter-size document:
// title, generation timestamp, the descriptive-statistics table, and the KPI
// table. An empty statistics table (no numeric columns) renders as a note
// instead of failing.
func WritePDF(report *app.SummaryReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, report.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Generated on: %s", report.GeneratedAt.Format("2006-01-02 15:04:05")),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, "Data Summary:", "", 1, "L", false, 0, "")
	writeSummaryTable(pdf, report.Summary)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, "Key Performance Indicators:", "", 1, "L", false, 0, "")
	writeKPITable(pdf, report.KPIs)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to assemble PDF document")
	}
	return buf.Bytes(), nil
}

// summaryStatRows lists the statistic labels in table row order, mirroring a
// describe()-style layout: one row per statistic, one column per numeric
// dataset column.
var summaryStatRows = []struct {
	label string
	value func(s metrics.ColumnSummary) string
}{
	{"count", func(s metrics.ColumnSummary) string { return fmt.Sprintf("%d", s.Count) }},
	{"mean", func(s metrics.ColumnSummary) string { return format2(s.Mean) }},
	{"std", func(s metrics.ColumnSummary) string { return format2(s.Std) }},
	{"min", func(s metrics.ColumnSummary) string { return format2(s.Min) }},
	{"25%", func(s metrics.ColumnSummary) string { return format2(s.Q25) }},
	{"50%", func(s metrics.ColumnSummary) string { return format2(s.Median) }},
	{"75%", func(s metrics.ColumnSummary) string { return format2(s.Q75) }},
	{"max", func(s metrics.ColumnSummary) string { return format2(s.Max) }},
}

func writeSummaryTable(pdf *fpdf.Fpdf, summary []metrics.ColumnSummary) {
	if len(summary) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 8, "No numeric columns in the filtered data.", "", 1, "L", false, 0, "")
		return
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(summary)+1)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colWidth, 7, "", "1", 0, "C", true, 0, "")
	for _, s := range summary {
		pdf.CellFormat(colWidth, 7, s.Column, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, stat := range summaryStatRows {
		pdf.CellFormat(colWidth, 7, stat.label, "1", 0, "C", true, 0, "")
		for _, s := range summary {
			pdf.CellFormat(colWidth, 7, stat.value(s), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func writeKPITable(pdf *fpdf.Fpdf, kpis []app.KPIRow) {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / 2

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(0, 0, 139)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colWidth, 8, "KPI", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidth, 8, "Value", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(173, 216, 230)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range kpis {
		pdf.CellFormat(colWidth, 8, row.Label, "1", 0, "C", true, 0, "")
		pdf.CellFormat(colWidth, 8, row.Value, "1", 1, "C", true, 0, "")
	}
}

func format2(v float64) string {
	return fmt.Sprintf("%.2f", metrics.Round2(v))
}
