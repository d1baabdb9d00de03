package json

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teazrq/springer-surv/survforest"
)

func TestWriteAndReadJSONForest(t *testing.T) {
	ctx := context.Background()
	store := survforest.NewMemoryTreeStore()
	trees := []*survforest.Tree{
		{Root: &survforest.Node{
			Feature: 0,
			Cut:     0.5,
			Left:    &survforest.Node{Feature: -1, Hazard: []float64{0.1, 0.2}},
			Right:   &survforest.Node{Feature: -1, Hazard: []float64{0.3, 0.4}},
		}},
		{Root: &survforest.Node{Feature: -1, Hazard: []float64{0, 0}}},
	}
	for i, tree := range trees {
		require.NoError(t, store.Store(ctx, i, tree))
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSONForest(ctx, store, &buf))

	reloaded := survforest.NewMemoryTreeStore()
	require.NoError(t, ReadJSONForest(ctx, reloaded, &buf))
	count, err := reloaded.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, len(trees), count)
	for i, tree := range trees {
		got, err := reloaded.Get(ctx, i)
		require.NoError(t, err)
		assert.Equal(t, tree, got)
	}
}

func TestWriteJSONForestRequiresAContiguousStore(t *testing.T) {
	ctx := context.Background()
	store := survforest.NewMemoryTreeStore()
	require.NoError(t, store.Store(ctx, 1, &survforest.Tree{}))
	var buf bytes.Buffer
	err := WriteJSONForest(ctx, store, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing from store")
}
