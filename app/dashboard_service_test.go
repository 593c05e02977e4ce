package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edahub/domain/dataset"
	"edahub/domain/filter"
	"edahub/internal"
	"edahub/internal/errors"
	"edahub/internal/session"
)

func testLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func salesState() *session.State {
	return &session.State{
		Frame: dataset.NewFrame(
			[]string{"Date", "Region", "Revenue"},
			[][]string{
				{"2024-01-01", "East", "100"},
				{"2024-01-02", "West", "200"},
				{"2024-01-03", "East", "300"},
				{"2024-01-04", "West", "400"},
				{"2024-01-05", "East", "500"},
				{"2024-01-06", "West", "600"},
				{"2024-01-07", "East", "700"},
				{"2024-01-08", "West", "800"},
				{"2024-01-09", "East", "900"},
				{"2024-01-10", "West", "1000"},
			},
		),
	}
}

func TestOverviewRequiresDataset(t *testing.T) {
	svc := NewDashboardService(testLogger())

	_, err := svc.Overview(&session.State{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeDatasetNotLoaded))
}

func TestSelectRolesPromotesDateColumn(t *testing.T) {
	svc := NewDashboardService(testLogger())
	state := salesState()

	warning, err := svc.SelectRoles(state, dataset.RoleSelection{
		Date: "Date", Category: "Region", Measure: "Revenue",
	})
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, dataset.RoleTemporal, state.Frame.Role("Date"))
	assert.Equal(t, "Date", state.Roles.Date)
}

func TestSelectRolesWarnsOnUnparseableDateColumn(t *testing.T) {
	svc := NewDashboardService(testLogger())
	state := salesState()

	warning, err := svc.SelectRoles(state, dataset.RoleSelection{
		Date: "Region", Measure: "Revenue",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, warning)
	// The failed column stays categorical and the date role is dropped.
	assert.Equal(t, dataset.RoleCategorical, state.Frame.Role("Region"))
	assert.Empty(t, state.Roles.Date)
	assert.Equal(t, "Revenue", state.Roles.Measure)
}

func TestSelectRolesResetsStoryAndQuestion(t *testing.T) {
	svc := NewDashboardService(testLogger())
	state := salesState()
	state.StoryCursor.Position = 2

	_, err := svc.SelectRoles(state, dataset.RoleSelection{Measure: "Revenue"})
	require.NoError(t, err)
	assert.Equal(t, 0, state.StoryCursor.Position)
	assert.Nil(t, state.CurrentQuestion)
}

func TestSetFiltersValidation(t *testing.T) {
	svc := NewDashboardService(testLogger())
	state := salesState()

	err := svc.SetFilters(state, filter.FilterSet{
		Categories: map[string][]string{"Nope": {"x"}},
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeValidation))

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	err = svc.SetFilters(state, filter.FilterSet{Start: &start, End: &end})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeValidation))
}

func TestOverviewRegionFilterScenario(t *testing.T) {
	svc := NewDashboardService(testLogger())
	state := salesState()

	_, err := svc.SelectRoles(state, dataset.RoleSelection{
		Date: "Date", Category: "Region", Measure: "Revenue",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetFilters(state, filter.FilterSet{
		Categories: map[string][]string{"Region": {"East"}},
	}))

	ov, err := svc.Overview(state)
	require.NoError(t, err)

	assert.Equal(t, 10, ov.RowCount)
	assert.Equal(t, 5, ov.FilteredRowCount)
	assert.Equal(t, 5, ov.KPIs.TransactionCount)
	require.NotNil(t, ov.KPIs.UniqueCategories)
	assert.Equal(t, 1, *ov.KPIs.UniqueCategories)
	require.NotNil(t, ov.KPIs.TotalMeasure)
	assert.Equal(t, 2500.0, *ov.KPIs.TotalMeasure)

	// Filter options come from the unfiltered dataset.
	assert.Equal(t, []string{"East", "West"}, ov.FilterOptions["Region"])
	require.NotNil(t, ov.DateBounds)
	assert.Equal(t, "2024-01-01 - 2024-01-10", ov.DateBounds.String())
}

func TestChartsOverFilteredView(t *testing.T) {
	svc := NewDashboardService(testLogger())
	state := salesState()

	_, err := svc.SelectRoles(state, dataset.RoleSelection{
		Date: "Date", Category: "Region", Measure: "Revenue",
	})
	require.NoError(t, err)

	sel, err := svc.Charts(state)
	require.NoError(t, err)
	// One numeric and one categorical column bound two slots.
	assert.Len(t, sel.Slots, 2)
	assert.Empty(t, sel.Notice)
}
