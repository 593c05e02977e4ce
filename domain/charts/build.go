package charts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"edahub/domain/dataset"
	"edahub/internal/errors"
)

// Materializers read the view through the dataset accessors and fail with a
// CHART_MATERIALIZATION error on degenerate inputs (no plottable rows). The
// selector treats any such failure as a skipped slot.

// BuildScatter plots yCol against xCol for every row where both parse.
func BuildScatter(view dataset.View, xCol, yCol string) (*ChartSpec, error) {
	points := make([]Point, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		x, okX := view.Number(i, xCol)
		y, okY := view.Number(i, yCol)
		if okX && okY {
			points = append(points, Point{X: x, Y: y})
		}
	}
	if len(points) == 0 {
		return nil, errors.Newf(errors.CodeChart, "no numeric point pairs in (%s, %s)", xCol, yCol)
	}
	return &ChartSpec{
		Kind:   KindScatter,
		Title:  fmt.Sprintf("%s vs %s", yCol, xCol),
		XAxis:  xCol,
		YAxis:  yCol,
		Series: []Series{{Name: yCol, Points: points}},
		Colors: assignColors(1),
	}, nil
}

// BuildColoredScatter is BuildScatter with one series per category value.
func BuildColoredScatter(view dataset.View, xCol, yCol, colorCol string) (*ChartSpec, error) {
	byCategory := make(map[string][]Point)
	var order []string
	for i := 0; i < view.Len(); i++ {
		x, okX := view.Number(i, xCol)
		y, okY := view.Number(i, yCol)
		if !okX || !okY {
			continue
		}
		cat := view.Cell(i, colorCol)
		if cat == "" {
			continue
		}
		if _, seen := byCategory[cat]; !seen {
			order = append(order, cat)
		}
		byCategory[cat] = append(byCategory[cat], Point{X: x, Y: y})
	}
	if len(order) == 0 {
		return nil, errors.Newf(errors.CodeChart,
			"no numeric point pairs in (%s, %s) grouped by %s", xCol, yCol, colorCol)
	}

	series := make([]Series, 0, len(order))
	for i, cat := range order {
		series = append(series, Series{
			Name:   cat,
			Color:  defaultColors[i%len(defaultColors)],
			Points: byCategory[cat],
		})
	}
	return &ChartSpec{
		Kind:       KindColoredScatter,
		Title:      fmt.Sprintf("%s vs %s by %s", yCol, xCol, colorCol),
		XAxis:      xCol,
		YAxis:      yCol,
		Series:     series,
		ShowLegend: true,
	}, nil
}

// BuildPie charts the value distribution of a categorical column.
func BuildPie(view dataset.View, catCol string) (*ChartSpec, error) {
	counts := dataset.ValueCounts(view, catCol)
	if len(counts) == 0 {
		return nil, errors.Newf(errors.CodeChart, "column %q has no values to chart", catCol)
	}
	points := make([]Point, 0, len(counts))
	for _, vc := range counts {
		points = append(points, Point{Label: vc.Value, Y: float64(vc.Count)})
	}
	return &ChartSpec{
		Kind:       KindPie,
		Title:      fmt.Sprintf("Distribution of %s", catCol),
		Series:     []Series{{Name: catCol, Points: points}},
		Colors:     assignColors(len(points)),
		ShowLegend: true,
	}, nil
}

// BuildMeanBar charts the mean of the measure column per category value.
// Measure cells read with coercion semantics (missing and non-numeric as 0).
func BuildMeanBar(view dataset.View, catCol, measureCol string) (*ChartSpec, error) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for i := 0; i < view.Len(); i++ {
		cat := view.Cell(i, catCol)
		if cat == "" {
			continue
		}
		if _, seen := counts[cat]; !seen {
			order = append(order, cat)
		}
		n, _ := view.Number(i, measureCol)
		sums[cat] += n
		counts[cat]++
	}
	if len(order) == 0 {
		return nil, errors.Newf(errors.CodeChart, "column %q has no categories to group by", catCol)
	}

	points := make([]Point, 0, len(order))
	for _, cat := range order {
		points = append(points, Point{Label: cat, Y: round2(sums[cat] / float64(counts[cat]))})
	}
	return &ChartSpec{
		Kind:     KindBar,
		Title:    fmt.Sprintf("Avg %s by %s", measureCol, catCol),
		XAxis:    catCol,
		YAxis:    measureCol,
		Series:   []Series{{Name: measureCol, Points: points}},
		Colors:   assignColors(len(points)),
		ShowGrid: true,
	}, nil
}

// BuildHistogram bins the parseable values of a numeric column. Bin count
// follows Sturges' rule; a constant column collapses into a single bin.
func BuildHistogram(view dataset.View, numCol string) (*ChartSpec, error) {
	values := dataset.NumericValues(view, numCol)
	if len(values) == 0 {
		return nil, errors.Newf(errors.CodeChart, "column %q has no numeric values", numCol)
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	bins := int(math.Ceil(math.Log2(float64(len(values))))) + 1
	if bins < 1 || lo == hi {
		bins = 1
	}
	width := (hi - lo) / float64(bins)

	counts := make([]int, bins)
	for _, v := range values {
		idx := bins - 1
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= bins {
				idx = bins - 1
			}
		}
		counts[idx]++
	}

	points := make([]Point, bins)
	for i, c := range counts {
		points[i] = Point{
			Label: fmt.Sprintf("%.2f - %.2f", lo+float64(i)*width, lo+float64(i+1)*width),
			Y:     float64(c),
		}
	}
	return &ChartSpec{
		Kind:     KindHistogram,
		Title:    fmt.Sprintf("Distribution of %s", numCol),
		XAxis:    numCol,
		YAxis:    "count",
		Series:   []Series{{Name: numCol, Points: points}},
		ShowGrid: true,
	}, nil
}

// BuildBox summarizes a numeric column per category value as box plots.
func BuildBox(view dataset.View, catCol, numCol string) (*ChartSpec, error) {
	grouped := make(map[string][]float64)
	var order []string
	for i := 0; i < view.Len(); i++ {
		cat := view.Cell(i, catCol)
		if cat == "" {
			continue
		}
		n, ok := view.Number(i, numCol)
		if !ok {
			continue
		}
		if _, seen := grouped[cat]; !seen {
			order = append(order, cat)
		}
		grouped[cat] = append(grouped[cat], n)
	}
	if len(order) == 0 {
		return nil, errors.Newf(errors.CodeChart,
			"no numeric values of %q grouped by %q", numCol, catCol)
	}

	boxes := make([]BoxStats, 0, len(order))
	for _, cat := range order {
		values := grouped[cat]
		q, err := stats.Quartile(values)
		if err != nil {
			// Too few points for quartiles; degrade to the raw extremes.
			med, _ := stats.Median(values)
			q = stats.Quartiles{Q1: med, Q2: med, Q3: med}
		}
		min, _ := stats.Min(values)
		max, _ := stats.Max(values)
		boxes = append(boxes, BoxStats{
			Category: cat,
			Min:      min,
			Q1:       q.Q1,
			Median:   q.Q2,
			Q3:       q.Q3,
			Max:      max,
			Count:    len(values),
		})
	}
	return &ChartSpec{
		Kind:       KindBox,
		Title:      fmt.Sprintf("%s distribution by %s", numCol, catCol),
		XAxis:      catCol,
		YAxis:      numCol,
		Boxes:      boxes,
		Colors:     assignColors(len(boxes)),
		ShowLegend: true,
	}, nil
}

// BuildLine charts the measure over the date column, sorted ascending.
// Rows with a missing date are dropped.
func BuildLine(view dataset.View, dateCol, measureCol string) (*ChartSpec, error) {
	type datedValue struct {
		when  time.Time
		value float64
	}
	points := make([]datedValue, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		t := view.Date(i, dateCol)
		if t == nil {
			continue
		}
		n, _ := view.Number(i, measureCol)
		points = append(points, datedValue{when: *t, value: n})
	}
	if len(points) == 0 {
		return nil, errors.Newf(errors.CodeChart, "column %q has no dated rows", dateCol)
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].when.Before(points[j].when) })

	series := make([]Point, len(points))
	for i, p := range points {
		series[i] = Point{Label: p.when.Format("2006-01-02"), Y: p.value}
	}
	return &ChartSpec{
		Kind:     KindLine,
		Title:    fmt.Sprintf("%s Over Time", measureCol),
		XAxis:    dateCol,
		YAxis:    measureCol,
		Series:   []Series{{Name: measureCol, Points: series}},
		ShowGrid: true,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
