package app

import (
	"fmt"
	"time"

	"edahub/domain/dataset"
	"edahub/domain/metrics"
	"edahub/internal"
	"edahub/internal/session"
)

// SummaryReport is the serialization-agnostic report model: every exporter
// (PDF, XLSX, Markdown) renders from this, with no shared intermediate state
// between renditions.
type SummaryReport struct {
	Title       string                  `json:"title"`
	GeneratedAt time.Time               `json:"generated_at"`
	Summary     []metrics.ColumnSummary `json:"summary"`
	KPIs        []KPIRow                `json:"kpis"`
}

// KPIRow is one labeled line of the KPI table.
type KPIRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ReportService assembles the report model and the raw CSV view of the data.
type ReportService struct {
	dashboard *DashboardService
	log       *internal.Logger
}

// NewReportService creates the service.
func NewReportService(dashboard *DashboardService, log *internal.Logger) *ReportService {
	return &ReportService{dashboard: dashboard, log: log}
}

// Summary builds the report model from the session's current filtered view.
// A dataset with no numeric columns yields an empty statistics table, which
// every exporter must render without failing.
func (s *ReportService) Summary(state *session.State) (*SummaryReport, error) {
	view, err := s.dashboard.FilteredView(state)
	if err != nil {
		return nil, err
	}

	report := &SummaryReport{
		Title:       "Data Summary Report",
		GeneratedAt: time.Now(),
		Summary:     metrics.Describe(view),
		KPIs:        kpiRows(metrics.Compute(view, state.Roles), state.Roles),
	}
	s.log.Debug("summary report built: %d numeric columns, %d KPI rows",
		len(report.Summary), len(report.KPIs))
	return report, nil
}

// DataView returns the session's filtered view for the flat CSV export.
func (s *ReportService) DataView(state *session.State) (dataset.View, error) {
	return s.dashboard.FilteredView(state)
}

func kpiRows(kpi metrics.KPISet, roles dataset.RoleSelection) []KPIRow {
	var rows []KPIRow
	if kpi.TotalMeasure != nil {
		rows = append(rows, KPIRow{
			Label: fmt.Sprintf("Total %s", roles.Measure),
			Value: fmt.Sprintf("%.2f", *kpi.TotalMeasure),
		})
	}
	rows = append(rows, KPIRow{
		Label: "Total Transactions",
		Value: fmt.Sprintf("%d", kpi.TransactionCount),
	})
	if kpi.UniqueCategories != nil {
		rows = append(rows, KPIRow{
			Label: "Unique Categories",
			Value: fmt.Sprintf("%d", *kpi.UniqueCategories),
		})
	}
	if roles.Date != "" {
		value := "N/A"
		if kpi.DateRange != nil {
			value = kpi.DateRange.String()
		}
		rows = append(rows, KPIRow{Label: "Date Range", Value: value})
	}
	return rows
}
