package metrics

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"edahub/domain/dataset"
)

// ColumnSummary holds the descriptive statistics of one numeric column.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe computes count/mean/std/min/quartiles/max for every numeric column
// of the view. A dataset with no numeric columns yields an empty slice, which
// downstream table rendering must tolerate.
func Describe(view dataset.View) []ColumnSummary {
	numeric := view.Frame().NumericColumns()
	out := make([]ColumnSummary, 0, len(numeric))
	for _, col := range numeric {
		out = append(out, summarize(col, dataset.NumericValues(view, col)))
	}
	return out
}

func summarize(col string, values []float64) ColumnSummary {
	s := ColumnSummary{Column: col, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}

	// montanaflynn sorts a copy internally; the view's order is untouched.
	s.Min, _ = stats.Min(values)
	s.Max, _ = stats.Max(values)
	s.Median, _ = stats.Median(values)
	s.Q25, _ = stats.Percentile(values, 25)
	s.Q75, _ = stats.Percentile(values, 75)
	return s
}

// Round2 rounds to two decimal places, the precision used in reports.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
