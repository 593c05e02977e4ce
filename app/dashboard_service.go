package app

import (
	"edahub/domain/charts"
	"edahub/domain/dataset"
	"edahub/domain/filter"
	"edahub/domain/metrics"
	"edahub/internal"
	"edahub/internal/errors"
	"edahub/internal/session"
)

// DashboardService runs the full recomputation pass behind every dashboard
// interaction: dataset → filtered view → KPIs and charts. Nothing is cached
// between calls; stale results under changing filters are impossible by
// construction.
type DashboardService struct {
	log *internal.Logger
}

// NewDashboardService creates the service.
func NewDashboardService(log *internal.Logger) *DashboardService {
	return &DashboardService{log: log}
}

// Overview is the render-ready dashboard summary for one session.
type Overview struct {
	Columns          []string                `json:"columns"`
	Roles            map[string]dataset.Role `json:"roles"`
	Selection        dataset.RoleSelection   `json:"selection"`
	RowCount         int                     `json:"row_count"`
	FilteredRowCount int                     `json:"filtered_row_count"`
	KPIs             metrics.KPISet          `json:"kpis"`
	FilterOptions    map[string][]string     `json:"filter_options"`
	DateBounds       *dataset.DateRange      `json:"date_bounds,omitempty"`
}

// FilteredView recomputes the session's filtered view from its dataset,
// role selection, and filter set.
func (s *DashboardService) FilteredView(state *session.State) (dataset.View, error) {
	if state.Frame == nil {
		return nil, errors.New(errors.CodeDatasetNotLoaded, "no dataset uploaded yet")
	}
	view := dataset.NewView(state.Frame)
	return filter.Apply(view, state.Roles, state.Filters), nil
}

// Overview computes the dashboard summary: KPIs over the filtered view, the
// per-column filter options (distinct values of every categorical column,
// taken from the unfiltered dataset), and the date-picker bounds.
func (s *DashboardService) Overview(state *session.State) (*Overview, error) {
	filtered, err := s.FilteredView(state)
	if err != nil {
		return nil, err
	}
	frame := state.Frame
	full := dataset.NewView(frame)

	roles := make(map[string]dataset.Role, len(frame.Columns()))
	options := make(map[string][]string)
	for _, col := range frame.Columns() {
		roles[col] = frame.Role(col)
		if frame.Role(col) == dataset.RoleCategorical {
			options[col] = dataset.DistinctValues(full, col)
		}
	}

	ov := &Overview{
		Columns:          frame.Columns(),
		Roles:            roles,
		Selection:        state.Roles,
		RowCount:         frame.RowCount(),
		FilteredRowCount: filtered.Len(),
		KPIs:             metrics.Compute(filtered, state.Roles),
		FilterOptions:    options,
	}
	if state.Roles.Date != "" {
		ov.DateBounds = dataset.DateBounds(full, state.Roles.Date)
	}

	s.log.Debug("overview computed: %d/%d rows after filters", filtered.Len(), frame.RowCount())
	return ov, nil
}

// Charts runs the chart selector against the session's filtered view.
func (s *DashboardService) Charts(state *session.State) (*charts.Selection, error) {
	view, err := s.FilteredView(state)
	if err != nil {
		return nil, err
	}
	sel := charts.Select(view, state.Roles)

	produced := 0
	for _, slot := range sel.Slots {
		if slot.Status == charts.SlotProduced {
			produced++
		}
	}
	s.log.Debug("chart selection: %d slots, %d produced", len(sel.Slots), produced)
	return &sel, nil
}

// SelectRoles validates and applies a role selection, promoting the chosen
// date column to temporal when it is still categorical. A failed promotion
// leaves the column categorical, drops the date role, and reports the parse
// problem as a warning for the UI to show inline.
func (s *DashboardService) SelectRoles(state *session.State, roles dataset.RoleSelection) (warning string, err error) {
	if state.Frame == nil {
		return "", errors.New(errors.CodeDatasetNotLoaded, "no dataset uploaded yet")
	}

	if roles.Date != "" && state.Frame.Role(roles.Date) != dataset.RoleTemporal {
		if promoteErr := state.Frame.PromoteTemporal(roles.Date); promoteErr != nil {
			s.log.Warn("date promotion failed for %q: %v", roles.Date, promoteErr)
			warning = promoteErr.Error()
			roles.Date = ""
		}
	}

	if err := roles.Validate(state.Frame); err != nil {
		return warning, err
	}

	state.Roles = roles
	// A new selection invalidates the story position and the open question.
	state.ResetStory()
	state.CurrentQuestion = nil
	return warning, nil
}

// SetFilters replaces the session's filter set after checking the columns
// exist. The date range is kept only when a date role is active.
func (s *DashboardService) SetFilters(state *session.State, fs filter.FilterSet) error {
	if state.Frame == nil {
		return errors.New(errors.CodeDatasetNotLoaded, "no dataset uploaded yet")
	}
	for col := range fs.Categories {
		if !state.Frame.HasColumn(col) {
			return errors.Newf(errors.CodeValidation, "filter column %q does not exist", col)
		}
	}
	if fs.Start != nil && fs.End != nil && fs.Start.After(*fs.End) {
		return errors.New(errors.CodeValidation, "filter start date is after end date")
	}
	state.Filters = fs
	return nil
}
