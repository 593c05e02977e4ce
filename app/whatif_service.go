package app

import (
	"edahub/domain/whatif"
	"edahub/internal"
	"edahub/internal/session"
)

// WhatIfService applies a hypothetical percentage change to one numeric
// column and reports baseline and adjusted KPIs side by side. The transformed
// view exists only for the duration of the call.
type WhatIfService struct {
	dashboard *DashboardService
	log       *internal.Logger
}

// NewWhatIfService creates the service.
func NewWhatIfService(dashboard *DashboardService, log *internal.Logger) *WhatIfService {
	return &WhatIfService{dashboard: dashboard, log: log}
}

// Run simulates the change against the session's current filtered view.
func (s *WhatIfService) Run(state *session.State, column string, percent float64) (*whatif.Comparison, error) {
	view, err := s.dashboard.FilteredView(state)
	if err != nil {
		return nil, err
	}
	cmp, err := whatif.Simulate(view, state.Roles, column, percent)
	if err != nil {
		return nil, err
	}
	s.log.Debug("what-if on %q: %+.1f%%", column, percent)
	return cmp, nil
}
