// Package story builds the guided walkthrough: an ordered list of
// question-plus-chart steps gated on which column roles are set, addressed by
// a monotonically advancing cursor.
package story

import (
	"fmt"

	"edahub/domain/charts"
	"edahub/domain/dataset"
)

// Step is one question+visualization pair. Render evaluates the step's chart
// template against the view passed at call time, so a step rendered mid-story
// reflects the latest filters rather than the filters at build time.
type Step struct {
	Question string      `json:"question"`
	Kind     charts.Kind `json:"kind"`
	Inputs   []string    `json:"inputs"`

	render func(view dataset.View) (*charts.ChartSpec, error)
}

// Render materializes the step's chart against the given view.
func (s Step) Render(view dataset.View) (*charts.ChartSpec, error) {
	return s.render(view)
}

// Build assembles the steps available under the given role selection, in
// fixed priority order. Steps whose gating roles are unset are omitted
// entirely; the list shrinks rather than being padded.
func Build(roles dataset.RoleSelection) []Step {
	var steps []Step

	if roles.Measure != "" {
		measure := roles.Measure
		steps = append(steps, Step{
			Question: fmt.Sprintf("What is the distribution of %s?", measure),
			Kind:     charts.KindHistogram,
			Inputs:   []string{measure},
			render: func(view dataset.View) (*charts.ChartSpec, error) {
				return charts.BuildHistogram(view, measure)
			},
		})
	}

	if roles.Category != "" && roles.Measure != "" {
		category, measure := roles.Category, roles.Measure
		steps = append(steps, Step{
			Question: fmt.Sprintf("What is the average %s by %s?", measure, category),
			Kind:     charts.KindBar,
			Inputs:   []string{category, measure},
			render: func(view dataset.View) (*charts.ChartSpec, error) {
				return charts.BuildMeanBar(view, category, measure)
			},
		})
	}

	if roles.Date != "" && roles.Measure != "" {
		date, measure := roles.Date, roles.Measure
		steps = append(steps, Step{
			Question: fmt.Sprintf("How has %s trended over time?", measure),
			Kind:     charts.KindLine,
			Inputs:   []string{date, measure},
			render: func(view dataset.View) (*charts.ChartSpec, error) {
				return charts.BuildLine(view, date, measure)
			},
		})
	}

	if roles.Category != "" {
		category := roles.Category
		steps = append(steps, Step{
			Question: fmt.Sprintf("What is the distribution of %s?", category),
			Kind:     charts.KindPie,
			Inputs:   []string{category},
			render: func(view dataset.View) (*charts.ChartSpec, error) {
				return charts.BuildPie(view, category)
			},
		})
	}

	return steps
}

// Cursor tracks the current step. Advancing saturates at the step count, the
// terminal "story complete" state; Restart returns to the first step.
type Cursor struct {
	Position int `json:"position"`
}

// Done reports whether the cursor is past the last step.
func (c Cursor) Done(steps []Step) bool {
	return c.Position >= len(steps)
}

// Advance moves to the next step, saturating at len(steps).
func (c *Cursor) Advance(steps []Step) {
	if c.Position < len(steps) {
		c.Position++
	}
}

// Restart resets the cursor to the first step.
func (c *Cursor) Restart() {
	c.Position = 0
}

// Current returns the step under the cursor, or false in the terminal state.
func (c Cursor) Current(steps []Step) (Step, bool) {
	if c.Done(steps) {
		return Step{}, false
	}
	return steps[c.Position], true
}
