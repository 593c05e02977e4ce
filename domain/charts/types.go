// Package charts turns a classified dataset view into a bounded, deterministic
// sequence of render-ready chart specifications. Chart selection walks slot
// indices through a fixed template table; column inputs cycle through the
// role-classified column lists so pairings repeat predictably as the index
// grows past a list's length.
package charts

// Kind identifies a chart template.
type Kind string

const (
	KindScatter        Kind = "scatter"
	KindPie            Kind = "pie"
	KindBar            Kind = "bar"
	KindHistogram      Kind = "histogram"
	KindBox            Kind = "box"
	KindLine           Kind = "line"
	KindColoredScatter Kind = "colored_scatter"
)

// SlotStatus is the terminal state of a chart slot.
type SlotStatus string

const (
	SlotProduced SlotStatus = "produced"
	SlotSkipped  SlotStatus = "skipped"
)

// Slot is one position in the bounded chart sequence. It is resolved once by
// the selector and never mutated afterwards.
type Slot struct {
	Index  int        `json:"index"`
	Kind   Kind       `json:"kind"`
	Inputs []string   `json:"inputs,omitempty"`
	Status SlotStatus `json:"status"`
	Reason string     `json:"reason,omitempty"`
	Chart  *ChartSpec `json:"chart,omitempty"`
}

// ChartSpec is a render-ready chart description. The display layer treats it
// as an opaque payload.
type ChartSpec struct {
	Kind       Kind       `json:"kind"`
	Title      string     `json:"title"`
	XAxis      string     `json:"x_axis,omitempty"`
	YAxis      string     `json:"y_axis,omitempty"`
	Series     []Series   `json:"series,omitempty"`
	Boxes      []BoxStats `json:"boxes,omitempty"`
	Colors     []string   `json:"colors,omitempty"`
	ShowLegend bool       `json:"show_legend"`
	ShowGrid   bool       `json:"show_grid"`
}

// Series is a named sequence of points.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Points []Point `json:"points"`
}

// Point is a single datum. Scatter points use X/Y; labeled charts (pie, bar,
// histogram, line) use Label/Y.
type Point struct {
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y"`
}

// BoxStats is the five-number summary of one box in a box plot.
type BoxStats struct {
	Category string  `json:"category"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	Count    int     `json:"count"`
}

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := range colors {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
