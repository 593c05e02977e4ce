// Package filter reduces a dataset view to the rows matching a date range and
// a set of per-column categorical predicates. Filters are a pure conjunction:
// applying them in any order, or all at once, yields the same view.
package filter

import (
	"time"

	"edahub/domain/dataset"
)

// FilterSet holds the active predicates. The date range applies only when the
// role selection names a date column; a categorical entry with no values
// leaves that column unconstrained.
type FilterSet struct {
	Start      *time.Time          `json:"start,omitempty"`
	End        *time.Time          `json:"end,omitempty"`
	Categories map[string][]string `json:"categories,omitempty"`
}

// IsEmpty reports whether no predicate is active.
func (fs FilterSet) IsEmpty() bool {
	if fs.Start != nil || fs.End != nil {
		return false
	}
	for _, vals := range fs.Categories {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Apply returns the subview of rows passing every active predicate. Rows with
// a missing date are excluded whenever the date range applies. Start > End is
// a caller contract violation and simply matches nothing.
func Apply(view dataset.View, roles dataset.RoleSelection, fs FilterSet) dataset.View {
	if fs.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for col, allowed := range fs.Categories {
		if len(allowed) > 0 {
			sets[col] = toSet(allowed)
		}
	}
	dateActive := roles.Date != "" && (fs.Start != nil || fs.End != nil)

	indices := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if dateActive && !passesDateRange(view.Date(i, roles.Date), fs.Start, fs.End) {
			continue
		}
		if !passesCategories(view, i, sets) {
			continue
		}
		indices = append(indices, i)
	}
	return dataset.SubView(view, indices)
}

// ApplyDateRange keeps only rows whose date value lies in [start, end],
// comparing calendar dates and dropping time-of-day.
func ApplyDateRange(view dataset.View, dateCol string, start, end time.Time) dataset.View {
	indices := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if passesDateRange(view.Date(i, dateCol), &start, &end) {
			indices = append(indices, i)
		}
	}
	return dataset.SubView(view, indices)
}

// ApplyCategories keeps only rows whose value in each constrained column is
// among that column's allowed values.
func ApplyCategories(view dataset.View, categories map[string][]string) dataset.View {
	sets := make(map[string]map[string]bool)
	for col, allowed := range categories {
		if len(allowed) > 0 {
			sets[col] = toSet(allowed)
		}
	}
	if len(sets) == 0 {
		return view
	}
	indices := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if passesCategories(view, i, sets) {
			indices = append(indices, i)
		}
	}
	return dataset.SubView(view, indices)
}

func passesDateRange(t *time.Time, start, end *time.Time) bool {
	if t == nil {
		return false
	}
	day := calendarDay(*t)
	if start != nil && day.Before(calendarDay(*start)) {
		return false
	}
	if end != nil && day.After(calendarDay(*end)) {
		return false
	}
	return true
}

func passesCategories(view dataset.View, i int, sets map[string]map[string]bool) bool {
	for col, set := range sets {
		if !set[view.Cell(i, col)] {
			return false
		}
	}
	return true
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
