package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edahub/domain/dataset"
	"edahub/domain/filter"
)

func mustDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func reportServices(t *testing.T) (*DashboardService, *ReportService) {
	t.Helper()
	dashboard := NewDashboardService(testLogger())
	return dashboard, NewReportService(dashboard, testLogger())
}

func TestSummaryReport(t *testing.T) {
	dashboard, svc := reportServices(t)
	state := salesState()

	_, err := dashboard.SelectRoles(state, dataset.RoleSelection{
		Date: "Date", Category: "Region", Measure: "Revenue",
	})
	require.NoError(t, err)

	report, err := svc.Summary(state)
	require.NoError(t, err)

	assert.Equal(t, "Data Summary Report", report.Title)
	assert.False(t, report.GeneratedAt.IsZero())

	require.Len(t, report.Summary, 1)
	assert.Equal(t, "Revenue", report.Summary[0].Column)
	assert.Equal(t, 10, report.Summary[0].Count)

	require.Len(t, report.KPIs, 4)
	assert.Equal(t, KPIRow{Label: "Total Revenue", Value: "5500.00"}, report.KPIs[0])
	assert.Equal(t, KPIRow{Label: "Total Transactions", Value: "10"}, report.KPIs[1])
	assert.Equal(t, KPIRow{Label: "Unique Categories", Value: "2"}, report.KPIs[2])
	assert.Equal(t, KPIRow{Label: "Date Range", Value: "2024-01-01 - 2024-01-10"}, report.KPIs[3])
}

func TestSummaryReportDateRangeNA(t *testing.T) {
	dashboard, svc := reportServices(t)
	state := salesState()

	_, err := dashboard.SelectRoles(state, dataset.RoleSelection{Date: "Date"})
	require.NoError(t, err)

	// A filter window outside the data leaves no dated rows.
	start := mustDay("2030-01-01")
	end := mustDay("2030-12-31")
	require.NoError(t, dashboard.SetFilters(state, filter.FilterSet{Start: &start, End: &end}))

	report, err := svc.Summary(state)
	require.NoError(t, err)

	var dateRow *KPIRow
	for i := range report.KPIs {
		if report.KPIs[i].Label == "Date Range" {
			dateRow = &report.KPIs[i]
		}
	}
	require.NotNil(t, dateRow)
	assert.Equal(t, "N/A", dateRow.Value)
}

func TestSummaryReportRendersFromFilteredView(t *testing.T) {
	dashboard, svc := reportServices(t)
	state := salesState()

	_, err := dashboard.SelectRoles(state, dataset.RoleSelection{Measure: "Revenue"})
	require.NoError(t, err)
	require.NoError(t, dashboard.SetFilters(state, filter.FilterSet{
		Categories: map[string][]string{"Region": {"East"}},
	}))

	report, err := svc.Summary(state)
	require.NoError(t, err)
	require.Len(t, report.Summary, 1)
	assert.Equal(t, 5, report.Summary[0].Count)

	view, err := svc.DataView(state)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Len())
}
