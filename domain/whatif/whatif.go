// Package whatif recomputes the KPI set after a hypothetical percentage change
// to one numeric column. The transformed view is an independent read-through
// wrapper: the baseline view and its KPIs are never touched, and nothing is
// persisted beyond one invocation.
package whatif

import (
	"strconv"
	"time"

	"edahub/domain/dataset"
	"edahub/domain/metrics"
	"edahub/internal/errors"
)

// Comparison presents baseline and adjusted KPIs side by side, with small
// row samples of both renditions of the data.
type Comparison struct {
	Column         string         `json:"column"`
	PercentChange  float64        `json:"percent_change"`
	Baseline       metrics.KPISet `json:"baseline"`
	Adjusted       metrics.KPISet `json:"adjusted"`
	BaselineSample [][]string     `json:"baseline_sample,omitempty"`
	AdjustedSample [][]string     `json:"adjusted_sample,omitempty"`
}

const sampleRows = 5

// Simulate scales every value of col by 1+percent/100 and recomputes the KPI
// set against the transformed view. A dataset without numeric columns, or a
// non-numeric target column, refuses to run.
func Simulate(view dataset.View, roles dataset.RoleSelection, col string, percent float64) (*Comparison, error) {
	if len(view.Frame().NumericColumns()) == 0 {
		return nil, errors.New(errors.CodeEmptySelection,
			"no numerical columns available for what-if analysis")
	}
	if view.Frame().Role(col) != dataset.RoleNumeric {
		return nil, errors.Newf(errors.CodeEmptySelection,
			"column %q is not numeric", col)
	}

	factor := 1 + percent/100
	adjusted := &scaledView{parent: view, column: col, factor: factor}

	cmp := &Comparison{
		Column:         col,
		PercentChange:  percent,
		Baseline:       metrics.Compute(view, roles),
		Adjusted:       metrics.Compute(adjusted, roles),
		BaselineSample: head(view, sampleRows),
		AdjustedSample: head(adjusted, sampleRows),
	}
	return cmp, nil
}

// scaledView multiplies one column on read; every other read passes through.
type scaledView struct {
	parent dataset.View
	column string
	factor float64
}

func (v *scaledView) Len() int { return v.parent.Len() }

func (v *scaledView) Cell(i int, col string) string {
	if col == v.column {
		if n, ok := v.parent.Number(i, col); ok {
			return strconv.FormatFloat(n*v.factor, 'f', -1, 64)
		}
	}
	return v.parent.Cell(i, col)
}

func (v *scaledView) Number(i int, col string) (float64, bool) {
	n, ok := v.parent.Number(i, col)
	if ok && col == v.column {
		return n * v.factor, true
	}
	return n, ok
}

func (v *scaledView) Date(i int, col string) *time.Time { return v.parent.Date(i, col) }

func (v *scaledView) Frame() *dataset.Frame { return v.parent.Frame() }

func head(view dataset.View, n int) [][]string {
	rows := dataset.Rows(view)
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
