package app

import (
	"edahub/domain/charts"
	"edahub/domain/story"
	"edahub/internal"
	"edahub/internal/session"
)

// StoryService drives the guided walkthrough. Steps are rebuilt from the
// role selection on every call, and the current step's chart is evaluated
// against the live filtered view, so a story in progress tracks filter
// changes.
type StoryService struct {
	dashboard *DashboardService
	log       *internal.Logger
}

// NewStoryService creates the service.
func NewStoryService(dashboard *DashboardService, log *internal.Logger) *StoryService {
	return &StoryService{dashboard: dashboard, log: log}
}

// StoryView is the render-ready state of the walkthrough.
type StoryView struct {
	StepCount  int               `json:"step_count"`
	Position   int               `json:"position"`
	Done       bool              `json:"done"`
	Question   string            `json:"question,omitempty"`
	Chart      *charts.ChartSpec `json:"chart,omitempty"`
	ChartError string            `json:"chart_error,omitempty"`
	Empty      bool              `json:"empty"`
}

// Current renders the step under the session's cursor. A chart failure is
// reported inline without advancing or resetting the cursor.
func (s *StoryService) Current(state *session.State) (*StoryView, error) {
	view, err := s.dashboard.FilteredView(state)
	if err != nil {
		return nil, err
	}

	steps := story.Build(state.Roles)
	sv := &StoryView{
		StepCount: len(steps),
		Position:  state.StoryCursor.Position,
		Done:      state.StoryCursor.Done(steps),
		Empty:     len(steps) == 0,
	}
	if sv.Empty || sv.Done {
		return sv, nil
	}

	step, _ := state.StoryCursor.Current(steps)
	sv.Question = step.Question
	chart, chartErr := step.Render(view)
	if chartErr != nil {
		s.log.Warn("story step %d chart failed: %v", sv.Position, chartErr)
		sv.ChartError = chartErr.Error()
	} else {
		sv.Chart = chart
	}
	return sv, nil
}

// Advance moves the cursor one step forward, saturating at the terminal
// "story complete" state, and renders the new position.
func (s *StoryService) Advance(state *session.State) (*StoryView, error) {
	steps := story.Build(state.Roles)
	state.StoryCursor.Advance(steps)
	return s.Current(state)
}

// Restart resets the cursor to the first step.
func (s *StoryService) Restart(state *session.State) (*StoryView, error) {
	state.ResetStory()
	return s.Current(state)
}
