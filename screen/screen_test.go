package screen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teazrq/springer-surv/dataset"
)

func TestScoreRejectsEmptyColumns(t *testing.T) {
	_, err := Score(nil, nil, nil)
	assert.Equal(t, ErrEmptyFeature, err)
}

func TestRankSurfacesEmptyObservationSets(t *testing.T) {
	obs, err := dataset.New([]string{"g1"}, nil, nil, nil)
	require.NoError(t, err)
	_, err = Rank(context.Background(), obs)
	assert.Equal(t, ErrEmptyFeature, err)
}

func TestScoreRejectsDegenerateFeature(t *testing.T) {
	xs := []float64{2.5, 2.5, 2.5, 2.5}
	times := []float64{1, 2, 3, 4}
	events := []int{1, 1, 0, 1}
	_, err := Score(xs, times, events)
	assert.Equal(t, ErrDegenerateFeature, err)
}

func TestScoreSeparatesAssociatedFromNoiseFeatures(t *testing.T) {
	// Subjects with higher values fail strictly earlier, so the
	// associated feature should score far below the noise one.
	times := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	events := []int{1, 1, 1, 1, 1, 1, 1, 1}
	associated := []float64{8, 7, 6, 5, 4, 3, 2, 1}
	noise := []float64{1, -1, 1, -1, 1, -1, 1, -1}

	strong, err := Score(associated, times, events)
	require.NoError(t, err)
	weak, err := Score(noise, times, events)
	require.NoError(t, err)

	assert.Greater(t, weak, strong)
	assert.Less(t, strong, 0.05)
	assert.LessOrEqual(t, weak, 1.0)
	assert.GreaterOrEqual(t, strong, 0.0)
}

func TestScoreWithoutEventsIsUninformative(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	times := []float64{1, 2, 3, 4}
	events := []int{0, 0, 0, 0}
	score, err := Score(xs, times, events)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestRankScoresEveryFeatureInColumnOrder(t *testing.T) {
	obs := testObservations(t)
	scores, err := Rank(context.Background(), obs)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, []string{"g1", "g2", "g3"}, []string{scores[0].Name, scores[1].Name, scores[2].Name})
	// g1 tracks the outcome, g2 and g3 are noise.
	assert.Less(t, scores[0].Score, scores[1].Score)
	assert.Less(t, scores[0].Score, scores[2].Score)
}

func TestRankSurfacesDegenerateColumns(t *testing.T) {
	matrix := [][]float64{{1, 5}, {2, 5}, {3, 5}, {4, 5}}
	obs, err := dataset.New([]string{"g1", "flat"}, matrix, []float64{1, 2, 3, 4}, []int{1, 1, 1, 1})
	require.NoError(t, err)
	_, err = Rank(context.Background(), obs)
	assert.Equal(t, ErrDegenerateFeature, err)
}

func TestTopKIsStableOnTies(t *testing.T) {
	scores := []FeatureScore{
		{Name: "a", Score: 0.5},
		{Name: "b", Score: 0.1},
		{Name: "c", Score: 0.1},
		{Name: "d", Score: 0.9},
	}
	assert.Equal(t, []string{"b", "c"}, TopK(scores, 2))
	assert.Equal(t, []string{"b", "c", "a", "d"}, TopK(scores, 10))
}

func TestUnionProperties(t *testing.T) {
	topRanked := []string{"g1", "g2", "g3"}
	reference := []string{"g2", "r1", "r2", "r1"}
	selected := Union(topRanked, reference)

	assert.Equal(t, []string{"g1", "g2", "g3", "r1", "r2"}, selected)
	assert.LessOrEqual(t, len(selected), len(topRanked)+len(reference))
	seen := map[string]bool{}
	allowed := map[string]bool{}
	for _, name := range append(append([]string(nil), topRanked...), reference...) {
		allowed[name] = true
	}
	for _, name := range selected {
		assert.False(t, seen[name], "duplicate %s", name)
		assert.True(t, allowed[name], "unexpected %s", name)
		seen[name] = true
	}
}

func testObservations(t *testing.T) *dataset.Observations {
	t.Helper()
	times := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	events := []int{1, 1, 1, 1, 1, 1, 1, 1}
	matrix := make([][]float64, len(times))
	g2 := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	g3 := []float64{0.3, 0.1, 0.4, 0.1, 0.5, 0.9, 0.2, 0.6}
	for i := range matrix {
		matrix[i] = []float64{float64(len(times) - i), g2[i], g3[i]}
	}
	obs, err := dataset.New([]string{"g1", "g2", "g3"}, matrix, times, events)
	require.NoError(t, err)
	return obs
}
