package whatif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edahub/domain/dataset"
	"edahub/internal/errors"
)

func revenueView() dataset.View {
	f := dataset.NewFrame(
		[]string{"Region", "Revenue"},
		[][]string{
			{"East", "100"},
			{"West", "250"},
			{"East", "150"},
		},
	)
	return dataset.NewView(f)
}

func TestSimulateZeroPercentIsIdentity(t *testing.T) {
	roles := dataset.RoleSelection{Category: "Region", Measure: "Revenue"}

	cmp, err := Simulate(revenueView(), roles, "Revenue", 0)
	require.NoError(t, err)

	require.NotNil(t, cmp.Baseline.TotalMeasure)
	require.NotNil(t, cmp.Adjusted.TotalMeasure)
	assert.Equal(t, *cmp.Baseline.TotalMeasure, *cmp.Adjusted.TotalMeasure)
	assert.Equal(t, cmp.Baseline.TransactionCount, cmp.Adjusted.TransactionCount)
}

func TestSimulateScalesTotal(t *testing.T) {
	roles := dataset.RoleSelection{Measure: "Revenue"}

	cmp, err := Simulate(revenueView(), roles, "Revenue", 10)
	require.NoError(t, err)

	assert.Equal(t, 500.0, *cmp.Baseline.TotalMeasure)
	assert.InDelta(t, 550.0, *cmp.Adjusted.TotalMeasure, 1e-9)
}

func TestSimulateMinusHundredZeroesTotal(t *testing.T) {
	roles := dataset.RoleSelection{Measure: "Revenue"}

	cmp, err := Simulate(revenueView(), roles, "Revenue", -100)
	require.NoError(t, err)

	assert.Equal(t, 0.0, *cmp.Adjusted.TotalMeasure)
	// The baseline is untouched by the simulation.
	assert.Equal(t, 500.0, *cmp.Baseline.TotalMeasure)
}

func TestSimulateSamplesShowScaledCells(t *testing.T) {
	roles := dataset.RoleSelection{Measure: "Revenue"}

	cmp, err := Simulate(revenueView(), roles, "Revenue", 50)
	require.NoError(t, err)

	require.NotEmpty(t, cmp.BaselineSample)
	require.NotEmpty(t, cmp.AdjustedSample)
	assert.Equal(t, "100", cmp.BaselineSample[0][1])
	assert.Equal(t, "150", cmp.AdjustedSample[0][1])
	// Non-target columns pass through unchanged.
	assert.Equal(t, "East", cmp.AdjustedSample[0][0])
}

func TestSimulateSampleCapped(t *testing.T) {
	rows := make([][]string, 12)
	for i := range rows {
		rows[i] = []string{"1"}
	}
	v := dataset.NewView(dataset.NewFrame([]string{"V"}, rows))

	cmp, err := Simulate(v, dataset.RoleSelection{}, "V", 5)
	require.NoError(t, err)
	assert.Len(t, cmp.BaselineSample, sampleRows)
	assert.Len(t, cmp.AdjustedSample, sampleRows)
}

func TestSimulateRejectsNonNumericColumn(t *testing.T) {
	_, err := Simulate(revenueView(), dataset.RoleSelection{}, "Region", 10)

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeEmptySelection))
}

func TestSimulateRejectsViewWithoutNumericColumns(t *testing.T) {
	f := dataset.NewFrame([]string{"Name"}, [][]string{{"a"}})

	_, err := Simulate(dataset.NewView(f), dataset.RoleSelection{}, "Name", 10)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeEmptySelection))
}
