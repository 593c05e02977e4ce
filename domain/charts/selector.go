package charts

import (
	"edahub/domain/dataset"
)

// MaxSlots bounds the chart sequence regardless of column count.
const MaxSlots = 9

// buildContext carries everything a template needs to decide eligibility and
// materialize a chart for one slot.
type buildContext struct {
	view        dataset.View
	roles       dataset.RoleSelection
	numeric     []string
	categorical []string
}

// template pairs a precondition with a builder. The table below is the
// explicit form of the slot dispatch: slot i attempts the template at
// i mod len(table), and nothing else; a failed precondition leaves the slot
// empty rather than falling through to another template.
type template struct {
	kind     Kind
	requires func(ctx *buildContext) bool
	build    func(ctx *buildContext, i int) (*ChartSpec, []string, error)
}

func templateTable() []template {
	return []template{
		{
			kind:     KindScatter,
			requires: func(ctx *buildContext) bool { return len(ctx.numeric) >= 2 },
			build: func(ctx *buildContext, i int) (*ChartSpec, []string, error) {
				x := ctx.numeric[i%len(ctx.numeric)]
				y := ctx.numeric[(i+1)%len(ctx.numeric)]
				spec, err := BuildScatter(ctx.view, x, y)
				return spec, []string{x, y}, err
			},
		},
		{
			kind:     KindPie,
			requires: func(ctx *buildContext) bool { return len(ctx.categorical) >= 1 },
			build: func(ctx *buildContext, i int) (*ChartSpec, []string, error) {
				cat := ctx.categorical[i%len(ctx.categorical)]
				spec, err := BuildPie(ctx.view, cat)
				return spec, []string{cat}, err
			},
		},
		{
			kind: KindBar,
			requires: func(ctx *buildContext) bool {
				return len(ctx.categorical) >= 1 && ctx.roles.Measure != ""
			},
			build: func(ctx *buildContext, i int) (*ChartSpec, []string, error) {
				cat := ctx.categorical[i%len(ctx.categorical)]
				spec, err := BuildMeanBar(ctx.view, cat, ctx.roles.Measure)
				return spec, []string{cat, ctx.roles.Measure}, err
			},
		},
		{
			kind:     KindHistogram,
			requires: func(ctx *buildContext) bool { return len(ctx.numeric) >= 1 },
			build: func(ctx *buildContext, i int) (*ChartSpec, []string, error) {
				num := ctx.numeric[i%len(ctx.numeric)]
				spec, err := BuildHistogram(ctx.view, num)
				return spec, []string{num}, err
			},
		},
		{
			kind: KindBox,
			requires: func(ctx *buildContext) bool {
				return len(ctx.categorical) >= 1 && len(ctx.numeric) >= 1
			},
			build: func(ctx *buildContext, i int) (*ChartSpec, []string, error) {
				cat := ctx.categorical[i%len(ctx.categorical)]
				num := ctx.numeric[i%len(ctx.numeric)]
				spec, err := BuildBox(ctx.view, cat, num)
				return spec, []string{cat, num}, err
			},
		},
		{
			kind: KindLine,
			requires: func(ctx *buildContext) bool {
				return ctx.roles.Date != "" && ctx.roles.Measure != ""
			},
			build: func(ctx *buildContext, i int) (*ChartSpec, []string, error) {
				spec, err := BuildLine(ctx.view, ctx.roles.Date, ctx.roles.Measure)
				return spec, []string{ctx.roles.Date, ctx.roles.Measure}, err
			},
		},
		{
			kind: KindColoredScatter,
			requires: func(ctx *buildContext) bool {
				return len(ctx.numeric) >= 2 && len(ctx.categorical) >= 1
			},
			build: func(ctx *buildContext, i int) (*ChartSpec, []string, error) {
				x := ctx.numeric[i%len(ctx.numeric)]
				y := ctx.numeric[(i+1)%len(ctx.numeric)]
				cat := ctx.categorical[i%len(ctx.categorical)]
				spec, err := BuildColoredScatter(ctx.view, x, y, cat)
				return spec, []string{x, y, cat}, err
			},
		},
	}
}

// Selection is the resolved chart sequence for one view. Notice is set only
// when not a single slot produced a chart.
type Selection struct {
	Slots  []Slot `json:"slots"`
	Notice string `json:"notice,omitempty"`
}

// NoSuitableChartNotice is emitted when every slot comes up empty.
const NoSuitableChartNotice = "No suitable data found to generate a dynamic chart."

// Select walks slot indices 0..min(MaxSlots, numeric+categorical)-1 and
// attempts one template per slot. A builder failure marks its slot skipped
// with the error as diagnostic and never aborts the remaining slots.
func Select(view dataset.View, roles dataset.RoleSelection) Selection {
	ctx := &buildContext{
		view:        view,
		roles:       roles,
		numeric:     view.Frame().NumericColumns(),
		categorical: view.Frame().CategoricalColumns(),
	}
	table := templateTable()

	bound := len(ctx.numeric) + len(ctx.categorical)
	if bound > MaxSlots {
		bound = MaxSlots
	}

	var sel Selection
	produced := 0
	for i := 0; i < bound; i++ {
		tpl := table[i%len(table)]
		slot := Slot{Index: i, Kind: tpl.kind}

		if !tpl.requires(ctx) {
			slot.Status = SlotSkipped
			slot.Reason = "columns required by this template are not available"
			sel.Slots = append(sel.Slots, slot)
			continue
		}

		spec, inputs, err := tpl.build(ctx, i)
		slot.Inputs = inputs
		if err != nil {
			slot.Status = SlotSkipped
			slot.Reason = err.Error()
		} else {
			slot.Status = SlotProduced
			slot.Chart = spec
			produced++
		}
		sel.Slots = append(sel.Slots, slot)
	}

	if produced == 0 {
		sel.Notice = NoSuitableChartNotice
	}
	return sel
}
