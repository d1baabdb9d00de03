package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teazrq/springer-surv/feature"
)

func TestReadCSVParsesObservations(t *testing.T) {
	in := strings.NewReader("g1,g2,time,event\n1.5,2,10,1\n-0.5,3,20,0\n")
	obs, err := ReadCSV(in, feature.NewOutcome("time", "event"))
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2"}, obs.FeatureNames())
	assert.Equal(t, []float64{10, 20}, obs.Times())
	assert.Equal(t, []int{1, 0}, obs.Events())
	column, err := obs.Column("g1")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -0.5}, column)
}

func TestReadCSVRequiresOutcomeColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("g1,event\n1,1\n"), feature.NewOutcome("time", "event"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no time column")
	_, err = ReadCSV(strings.NewReader("g1,time\n1,1\n"), feature.NewOutcome("time", "event"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no event column")
}

func TestReadCSVRejectsMalformedValues(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("g1,time,event\nnope,1,1\n"), feature.NewOutcome("time", "event"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestWriteCSVRoundTrips(t *testing.T) {
	obs, err := New([]string{"g1", "g2"}, [][]float64{{1.25, 2}, {3, 4}}, []float64{5, 6}, []int{0, 1})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, obs, feature.NewOutcome("time", "event")))
	back, err := ReadCSV(&buf, feature.NewOutcome("time", "event"))
	require.NoError(t, err)
	assert.Equal(t, obs.FeatureNames(), back.FeatureNames())
	assert.Equal(t, obs.Times(), back.Times())
	assert.Equal(t, obs.Events(), back.Events())
	row, err := back.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.25, 2}, row)
}

func TestReadGeneListSkipsHeaderAndDeduplicates(t *testing.T) {
	in := strings.NewReader("gene\nBRCA1\nTP53\n\nBRCA1\nESR1\n")
	genes, err := ReadGeneList(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"BRCA1", "TP53", "ESR1"}, genes)
}
