package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSpec = `
sampleWidths: [5, 10]
minLeaves: [2, 15]
splitPolicies: ["best", "random"]
randomSplits: 10
trees: 200
workers: 4
seed: 42
`

func TestReadSweepParsesAFullSpecification(t *testing.T) {
	sweep, err := ReadSweep([]byte(validSpec))
	require.NoError(t, err)
	assert.Len(t, sweep.Points, 8)
	assert.Equal(t, 200, sweep.Trees)
	assert.Equal(t, 4, sweep.Workers)
	assert.Equal(t, int64(42), sweep.Seed)
	assert.Equal(t, 10, sweep.Points[1].SplitCount)
	assert.Equal(t, 0, sweep.Points[0].SplitCount)
}

func TestReadSweepRejectsIncompleteSpecifications(t *testing.T) {
	for name, spec := range map[string]string{
		"no widths":              "minLeaves: [1]\nsplitPolicies: [\"best\"]\ntrees: 10",
		"no leaves":              "sampleWidths: [1]\nsplitPolicies: [\"best\"]\ntrees: 10",
		"no policies":            "sampleWidths: [1]\nminLeaves: [1]\ntrees: 10",
		"unknown policy":         "sampleWidths: [1]\nminLeaves: [1]\nsplitPolicies: [\"exhaustive\"]\ntrees: 10",
		"random without splits":  "sampleWidths: [1]\nminLeaves: [1]\nsplitPolicies: [\"random\"]\ntrees: 10",
		"no trees":               "sampleWidths: [1]\nminLeaves: [1]\nsplitPolicies: [\"best\"]",
		"not yaml":               "{{{",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSweep([]byte(spec))
			assert.Error(t, err)
		})
	}
}
