package vector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndSearch(t *testing.T) {
	ctx := context.Background()

	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.9, 0.1, 0},
	}

	idx, err := Build(ctx, embeddings, 3)
	require.NoError(t, err)
	defer idx.Close()

	assert.Equal(t, 4, idx.Len())

	matches, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Nearest first, and data maps back to the corpus position.
	assert.Equal(t, 0, matches[0].Position)
	assert.Equal(t, 3, matches[1].Position)
	assert.LessOrEqual(t, matches[0].Distance, matches[1].Distance)
}

func TestBuildEmpty(t *testing.T) {
	ctx := context.Background()

	idx, err := Build(ctx, nil, 0)
	require.NoError(t, err)
	defer idx.Close()

	assert.Equal(t, 0, idx.Len())

	matches, err := idx.Search(ctx, []float32{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestBuildWithPoolSize(t *testing.T) {
	ctx := context.Background()

	embeddings := make([][]float32, 50)
	for i := range embeddings {
		embeddings[i] = []float32{float32(i), float32(i % 7), float32(i % 3)}
	}

	idx, err := Build(ctx, embeddings, 3, WithPoolSize(4))
	require.NoError(t, err)
	defer idx.Close()

	assert.Equal(t, 50, idx.Len())

	matches, err := idx.Search(ctx, []float32{25, 4, 1}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestSearchKBounds(t *testing.T) {
	ctx := context.Background()

	idx, err := Build(ctx, [][]float32{{1, 0}, {0, 1}}, 2)
	require.NoError(t, err)
	defer idx.Close()

	matches, err := idx.Search(ctx, []float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
