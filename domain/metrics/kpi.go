// Package metrics computes the dashboard's key performance indicators and the
// descriptive-statistics summary over a filtered view. Results are computed
// fresh from the view on every call and never cached across views.
package metrics

import (
	"edahub/domain/dataset"
)

// KPISet holds the headline indicators. Each field is computed independently:
// an unset role omits its KPI instead of failing the whole computation.
type KPISet struct {
	TotalMeasure     *float64           `json:"total_measure,omitempty"`
	TransactionCount int                `json:"transaction_count"`
	UniqueCategories *int               `json:"unique_categories,omitempty"`
	DateRange        *dataset.DateRange `json:"date_range,omitempty"`
}

// Compute derives the KPISet for a view under the given role selection.
// The measure total coerces missing and non-numeric cells to 0, so an empty
// view yields a total of 0 rather than an absent value.
func Compute(view dataset.View, roles dataset.RoleSelection) KPISet {
	kpi := KPISet{TransactionCount: view.Len()}

	if roles.Measure != "" {
		total := 0.0
		for _, n := range dataset.MeasureValues(view, roles.Measure) {
			total += n
		}
		kpi.TotalMeasure = &total
	}

	if roles.Category != "" {
		unique := len(dataset.DistinctValues(view, roles.Category))
		kpi.UniqueCategories = &unique
	}

	if roles.Date != "" {
		kpi.DateRange = dataset.DateBounds(view, roles.Date)
	}

	return kpi
}
