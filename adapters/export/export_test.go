package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"edahub/app"
	"edahub/domain/dataset"
	"edahub/domain/metrics"
)

func exportView() dataset.View {
	f := dataset.NewFrame(
		[]string{"Region", "Revenue"},
		[][]string{
			{"East", "100"},
			{"West", "200"},
			{"East", "300"},
		},
	)
	return dataset.NewView(f)
}

func sampleReport() *app.SummaryReport {
	return &app.SummaryReport{
		Title:       "Data Summary Report",
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Summary: []metrics.ColumnSummary{
			{Column: "Revenue", Count: 3, Mean: 200, Std: 100,
				Min: 100, Q25: 150, Median: 200, Q75: 250, Max: 300},
		},
		KPIs: []app.KPIRow{
			{Label: "Total Revenue", Value: "600.00"},
			{Label: "Total Transactions", Value: "3"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportView()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Region", "Revenue"}, records[0])
	assert.Equal(t, []string{"West", "200"}, records[2])
}

func TestWriteCSVEmptyView(t *testing.T) {
	var buf bytes.Buffer
	empty := dataset.SubView(exportView(), nil)
	require.NoError(t, WriteCSV(&buf, empty))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "Region,Revenue", lines[0])
}

func TestWriteMarkdown(t *testing.T) {
	md := string(WriteMarkdown(sampleReport()))

	assert.Contains(t, md, "# Data Summary Report")
	assert.Contains(t, md, "Generated on: 2024-06-01 12:00:00")
	assert.Contains(t, md, "## Data Summary")
	assert.Contains(t, md, "| Total Revenue | 600.00 |")
	assert.Contains(t, md, "| mean |")
	assert.Contains(t, md, "200.00")
}

func TestWriteMarkdownNoNumericColumns(t *testing.T) {
	report := sampleReport()
	report.Summary = nil

	md := string(WriteMarkdown(report))
	assert.Contains(t, md, "_No numeric columns in the filtered data._")
	assert.Contains(t, md, "## Key Performance Indicators")
}

func TestRenderHTMLTables(t *testing.T) {
	html := string(RenderHTML(WriteMarkdown(sampleReport())))

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "Total Revenue")
}

func TestWritePDF(t *testing.T) {
	out, err := WritePDF(sampleReport())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestWritePDFEmptySummary(t *testing.T) {
	report := sampleReport()
	report.Summary = nil

	out, err := WritePDF(report)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestWriteWorkbook(t *testing.T) {
	out, err := WriteWorkbook(sampleReport(), exportView())
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer wb.Close()

	assert.ElementsMatch(t, []string{"Data Summary", "KPIs", "Data"}, wb.GetSheetList())

	cell, err := wb.GetCellValue("Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Region", cell)

	kpi, err := wb.GetCellValue("KPIs", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total Revenue", kpi)
}
