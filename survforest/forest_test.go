package survforest

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teazrq/springer-surv/dataset"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{SampleWidth: 2, MinLeaf: 3, SplitPolicy: SplitPolicyBest, Trees: 10}
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*Config){
		"zero sample width":                 func(c *Config) { c.SampleWidth = 0 },
		"zero min leaf":                     func(c *Config) { c.MinLeaf = 0 },
		"unknown split policy":              func(c *Config) { c.SplitPolicy = "sometimes" },
		"random policy without split count": func(c *Config) { c.SplitPolicy = SplitPolicyRandom },
		"zero trees":                        func(c *Config) { c.Trees = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			config := valid
			mutate(&config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestFitLearnsAMonotoneSignal(t *testing.T) {
	obs := signalObservations(t, 40)
	fit, err := New(nil).Fit(context.Background(), obs, Config{
		SampleWidth: 2,
		MinLeaf:     3,
		SplitPolicy: SplitPolicyBest,
		Trees:       50,
		Workers:     2,
		Importance:  true,
		Seed:        7,
	})
	require.NoError(t, err)

	assert.Greater(t, fit.OOBScore(), 0.6)
	assert.LessOrEqual(t, fit.OOBScore(), 1.0)

	timepoints := fit.TimePoints()
	assert.True(t, sort.Float64sAreSorted(timepoints))
	hazard := fit.OOBHazard()
	require.Len(t, hazard, obs.Len())
	for _, row := range hazard {
		assert.Len(t, row, len(timepoints))
	}

	importance := fit.Importance()
	require.NotNil(t, importance)
	assert.Greater(t, importance["signal"], importance["noise"])
}

func TestFitIsDeterministicForAFixedSeed(t *testing.T) {
	obs := signalObservations(t, 25)
	config := Config{SampleWidth: 1, MinLeaf: 2, SplitPolicy: SplitPolicyRandom, SplitCount: 5, Trees: 20, Seed: 3}

	first, err := New(nil).Fit(context.Background(), obs, config)
	require.NoError(t, err)
	config.Workers = 4
	second, err := New(nil).Fit(context.Background(), obs, config)
	require.NoError(t, err)

	assert.Equal(t, first.OOBScore(), second.OOBScore())
	assert.Equal(t, first.TimePoints(), second.TimePoints())
	assert.Equal(t, first.OOBHazard(), second.OOBHazard())
}

func TestFitSkipsImportanceUnlessRequested(t *testing.T) {
	obs := signalObservations(t, 20)
	fit, err := New(nil).Fit(context.Background(), obs, Config{
		SampleWidth: 1, MinLeaf: 2, SplitPolicy: SplitPolicyBest, Trees: 5, Seed: 1,
	})
	require.NoError(t, err)
	assert.Nil(t, fit.Importance())
}

func TestFitPersistsTreesOnTheStore(t *testing.T) {
	obs := signalObservations(t, 20)
	store := NewMemoryTreeStore()
	_, err := New(store).Fit(context.Background(), obs, Config{
		SampleWidth: 1, MinLeaf: 2, SplitPolicy: SplitPolicyBest, Trees: 7, Seed: 1,
	})
	require.NoError(t, err)
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	tree, err := store.Get(context.Background(), 6)
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.NotNil(t, tree.Root)
}

func TestFitRejectsInvalidInputs(t *testing.T) {
	config := Config{SampleWidth: 1, MinLeaf: 2, SplitPolicy: SplitPolicyBest, Trees: 3}

	_, err := New(nil).Fit(context.Background(), nil, Config{})
	assert.Error(t, err)

	empty, err := dataset.New(nil, nil, nil, nil)
	require.NoError(t, err)
	_, err = New(nil).Fit(context.Background(), empty, config)
	assert.Error(t, err)

	censored, err := dataset.New([]string{"g1"}, [][]float64{{1}, {2}}, []float64{1, 2}, []int{0, 0})
	require.NoError(t, err)
	_, err = New(nil).Fit(context.Background(), censored, config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no observed events")
}

func TestTreeLeafRoutesBySplits(t *testing.T) {
	tree := &Tree{Root: &Node{
		Feature: 0,
		Cut:     1.5,
		Left:    &Node{Feature: -1, Hazard: []float64{0.1}},
		Right: &Node{
			Feature: 1,
			Cut:     0.5,
			Left:    &Node{Feature: -1, Hazard: []float64{0.2}},
			Right:   &Node{Feature: -1, Hazard: []float64{0.3}},
		},
	}}
	assert.Equal(t, []float64{0.1}, tree.Leaf([]float64{1.0, 9}).Hazard)
	assert.Equal(t, []float64{0.2}, tree.Leaf([]float64{2.0, 0.5}).Hazard)
	assert.Equal(t, []float64{0.3}, tree.Leaf([]float64{2.0, 0.6}).Hazard)
}

func TestBootstrapPartitionsSubjects(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	rows, oob := bootstrap(rng, 50)
	assert.Len(t, rows, 50)
	drawn := map[int]bool{}
	for _, r := range rows {
		require.GreaterOrEqual(t, r, 0)
		require.Less(t, r, 50)
		drawn[r] = true
	}
	for _, i := range oob {
		assert.False(t, drawn[i], "oob subject %d was drawn", i)
	}
	assert.NotEmpty(t, oob)
}

func TestEventTimepointsAreSortedAndDistinct(t *testing.T) {
	times := []float64{5, 3, 5, 1, 2, 4}
	events := []int{1, 1, 1, 0, 1, 0}
	timepoints := eventTimepoints(times, events)
	assert.Equal(t, []float64{2, 3, 5}, timepoints)
}

func TestConcordanceKnownValues(t *testing.T) {
	times := []float64{1, 2, 3}
	events := []int{1, 1, 1}
	assert.Equal(t, 1.0, concordance(times, events, []float64{3, 2, 1}))
	assert.Equal(t, 0.0, concordance(times, events, []float64{1, 2, 3}))
	assert.Equal(t, 0.5, concordance(times, events, []float64{2, 2, 2}))
	assert.Equal(t, 0.0, concordance(times, events, []float64{math.NaN(), math.NaN(), math.NaN()}))
}

func signalObservations(t *testing.T, n int) *dataset.Observations {
	t.Helper()
	rng := rand.New(rand.NewSource(99))
	names := []string{"signal", "noise"}
	matrix := make([][]float64, n)
	times := make([]float64, n)
	events := make([]int, n)
	for i := 0; i < n; i++ {
		matrix[i] = []float64{float64(i), rng.Float64()}
		times[i] = float64(n - i)
		events[i] = 1
	}
	obs, err := dataset.New(names, matrix, times, events)
	require.NoError(t, err)
	return obs
}
