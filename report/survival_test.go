package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurvivalFromHazardZeroHazardIsCertainSurvival(t *testing.T) {
	hazard := [][]float64{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	survival := SurvivalFromHazard(hazard)
	require.Len(t, survival, len(hazard))
	for i, row := range survival {
		require.Len(t, row, len(hazard[i]))
		for _, s := range row {
			assert.Equal(t, 1.0, s)
		}
	}
}

func TestSurvivalFromHazardIsNonIncreasing(t *testing.T) {
	hazard := [][]float64{
		{0.1, 0, 0.25, 0.5, 0},
		{0, 0.01, 0.01, 0.01, 2},
		{1.5, 0.3, 0, 0, 0.7},
	}
	survival := SurvivalFromHazard(hazard)
	for i, row := range survival {
		for k := 1; k < len(row); k++ {
			assert.LessOrEqual(t, row[k], row[k-1], "subject %d at timepoint %d", i, k)
		}
		assert.LessOrEqual(t, row[0], 1.0)
		assert.GreaterOrEqual(t, row[len(row)-1], 0.0)
	}
}

func TestSurvivalFromHazardMatchesCumulativeHazard(t *testing.T) {
	survival := SurvivalFromHazard([][]float64{{0.5, 0.25, 1}})
	require.Len(t, survival, 1)
	assert.InDelta(t, math.Exp(-0.5), survival[0][0], 1e-12)
	assert.InDelta(t, math.Exp(-0.75), survival[0][1], 1e-12)
	assert.InDelta(t, math.Exp(-1.75), survival[0][2], 1e-12)
}

func TestSurvivalFromHazardPropagatesNonFiniteInputs(t *testing.T) {
	survival := SurvivalFromHazard([][]float64{{0.1, math.NaN(), 0.1}})
	assert.False(t, math.IsNaN(survival[0][0]))
	assert.True(t, math.IsNaN(survival[0][1]))
	assert.True(t, math.IsNaN(survival[0][2]))
}

func TestLongPreservesSubjectIdentityAndOrder(t *testing.T) {
	timepoints := []float64{1, 2}
	survival := [][]float64{
		{1, 0.9},
		{0.8, 0.7},
		{0.6, 0.5},
	}
	points := Long([]int{2, 0}, timepoints, survival)
	require.Len(t, points, 4)
	assert.Equal(t, CurvePoint{Subject: 2, Time: 1, Probability: 0.6}, points[0])
	assert.Equal(t, CurvePoint{Subject: 2, Time: 2, Probability: 0.5}, points[1])
	assert.Equal(t, CurvePoint{Subject: 0, Time: 1, Probability: 1}, points[2])
	assert.Equal(t, CurvePoint{Subject: 0, Time: 2, Probability: 0.9}, points[3])
}
