package dataset

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// View provides indexed read access to a dataset. The engine recomputes views
// from the frame on every parameter change and never mutates one in place;
// filtering produces index-based subviews with no data copy.
type View interface {
	Len() int
	Cell(i int, col string) string
	Number(i int, col string) (float64, bool)
	Date(i int, col string) *time.Time
	Frame() *Frame
}

// NewView returns a view over every row of the frame.
func NewView(f *Frame) View {
	return &frameView{frame: f}
}

type frameView struct {
	frame *Frame
}

func (v *frameView) Len() int { return v.frame.RowCount() }

func (v *frameView) Cell(i int, col string) string { return v.frame.cell(i, col) }

func (v *frameView) Number(i int, col string) (float64, bool) {
	return parseNumber(v.frame.cell(i, col))
}

func (v *frameView) Date(i int, col string) *time.Time { return v.frame.DateAt(i, col) }

func (v *frameView) Frame() *Frame { return v.frame }

// SubView returns a view restricted to the given row indices of the parent.
func SubView(parent View, indices []int) View {
	return &subView{parent: parent, indices: indices}
}

type subView struct {
	parent  View
	indices []int
}

func (v *subView) Len() int { return len(v.indices) }

func (v *subView) Cell(i int, col string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Cell(v.indices[i], col)
}

func (v *subView) Number(i int, col string) (float64, bool) {
	if i < 0 || i >= len(v.indices) {
		return 0, false
	}
	return v.parent.Number(v.indices[i], col)
}

func (v *subView) Date(i int, col string) *time.Time {
	if i < 0 || i >= len(v.indices) {
		return nil
	}
	return v.parent.Date(v.indices[i], col)
}

func (v *subView) Frame() *Frame { return v.parent.Frame() }

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NumericValues collects the parseable numeric values of a column, skipping
// missing and malformed cells.
func NumericValues(v View, col string) []float64 {
	out := make([]float64, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if n, ok := v.Number(i, col); ok {
			out = append(out, n)
		}
	}
	return out
}

// MeasureValues reads a column with measure semantics: one value per row,
// missing and non-numeric cells coerced to 0.
func MeasureValues(v View, col string) []float64 {
	out := make([]float64, v.Len())
	for i := 0; i < v.Len(); i++ {
		n, _ := v.Number(i, col)
		out[i] = n
	}
	return out
}

// DistinctValues returns the distinct non-empty values of a column in
// first-seen row order.
func DistinctValues(v View, col string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < v.Len(); i++ {
		val := v.Cell(i, col)
		if val == "" || seen[val] {
			continue
		}
		seen[val] = true
		out = append(out, val)
	}
	return out
}

// ValueCount pairs a categorical value with its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts tallies the non-empty values of a column, most frequent first.
// Ties break on first-seen row order so results are deterministic.
func ValueCounts(v View, col string) []ValueCount {
	counts := make(map[string]int)
	order := make(map[string]int)
	var values []string
	for i := 0; i < v.Len(); i++ {
		val := v.Cell(i, col)
		if val == "" {
			continue
		}
		if _, ok := counts[val]; !ok {
			order[val] = len(values)
			values = append(values, val)
		}
		counts[val]++
	}

	out := make([]ValueCount, 0, len(values))
	for _, val := range values {
		out = append(out, ValueCount{Value: val, Count: counts[val]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return order[out[i].Value] < order[out[j].Value]
	})
	return out
}

// DateBounds returns the min and max of a temporal column over the view,
// or nil when the column has no non-missing values.
func DateBounds(v View, col string) *DateRange {
	var bounds *DateRange
	for i := 0; i < v.Len(); i++ {
		t := v.Date(i, col)
		if t == nil {
			continue
		}
		if bounds == nil {
			bounds = &DateRange{Min: *t, Max: *t}
			continue
		}
		if t.Before(bounds.Min) {
			bounds.Min = *t
		}
		if t.After(bounds.Max) {
			bounds.Max = *t
		}
	}
	return bounds
}

// Rows materializes the view's rows in frame column order, for export.
func Rows(v View) [][]string {
	cols := v.Frame().Columns()
	out := make([][]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = v.Cell(i, c)
		}
		out[i] = row
	}
	return out
}
