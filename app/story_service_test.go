package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edahub/domain/dataset"
)

func storyServices(t *testing.T) (*DashboardService, *StoryService) {
	t.Helper()
	dashboard := NewDashboardService(testLogger())
	return dashboard, NewStoryService(dashboard, testLogger())
}

func TestStoryWithoutRolesIsEmpty(t *testing.T) {
	_, svc := storyServices(t)
	state := salesState()

	sv, err := svc.Current(state)
	require.NoError(t, err)
	assert.True(t, sv.Empty)
	assert.Equal(t, 0, sv.StepCount)
}

func TestStoryWalkthrough(t *testing.T) {
	dashboard, svc := storyServices(t)
	state := salesState()

	_, err := dashboard.SelectRoles(state, dataset.RoleSelection{
		Date: "Date", Category: "Region", Measure: "Revenue",
	})
	require.NoError(t, err)

	sv, err := svc.Current(state)
	require.NoError(t, err)
	assert.Equal(t, 4, sv.StepCount)
	assert.Equal(t, 0, sv.Position)
	assert.Equal(t, "What is the distribution of Revenue?", sv.Question)
	require.NotNil(t, sv.Chart)

	// Advance to the end; the cursor saturates in the done state.
	for i := 0; i < 4; i++ {
		sv, err = svc.Advance(state)
		require.NoError(t, err)
	}
	assert.True(t, sv.Done)
	assert.Equal(t, 4, sv.Position)
	assert.Nil(t, sv.Chart)

	sv, err = svc.Advance(state)
	require.NoError(t, err)
	assert.Equal(t, 4, sv.Position)

	sv, err = svc.Restart(state)
	require.NoError(t, err)
	assert.Equal(t, 0, sv.Position)
	assert.False(t, sv.Done)
}

func TestStoryMeasureOnlySingleStep(t *testing.T) {
	dashboard, svc := storyServices(t)
	state := salesState()

	_, err := dashboard.SelectRoles(state, dataset.RoleSelection{Measure: "Revenue"})
	require.NoError(t, err)

	sv, err := svc.Current(state)
	require.NoError(t, err)
	assert.Equal(t, 1, sv.StepCount)
	assert.Equal(t, "What is the distribution of Revenue?", sv.Question)

	sv, err = svc.Advance(state)
	require.NoError(t, err)
	assert.True(t, sv.Done)
}
