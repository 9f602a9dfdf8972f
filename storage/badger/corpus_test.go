package badger

import (
	"context"
	"testing"

	"github.com/electoralqa/candidex/core"
	"github.com/electoralqa/candidex/lexical"
	"github.com/electoralqa/candidex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(sourceID, candidate string) *core.Document {
	return &core.Document{
		SourceID:      sourceID,
		Type:          core.DocTypePlan,
		OriginalText:  "invest in rural healthcare",
		ContextText:   "the plan will invest in rural healthcare over four years",
		Slate:         "3",
		Party:         "ADN",
		CandidateName: candidate,
	}
}

func testLexVec() lexical.SparseVector {
	return lexical.SparseVector{Indices: []uint32{1, 4}, Weights: []float32{0.6, 0.8}}
}

func TestAppendDocument(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	t.Run("positions are sequential", func(t *testing.T) {
		pos, err := repo.AppendDocument(ctx, testDoc("1_1_1", "Daniel Noboa"), []float32{1, 0, 0}, testLexVec())
		require.NoError(t, err)
		assert.Equal(t, 0, pos)

		pos, err = repo.AppendDocument(ctx, testDoc("1_1_2", "Daniel Noboa"), []float32{0, 1, 0}, testLexVec())
		require.NoError(t, err)
		assert.Equal(t, 1, pos)
	})

	t.Run("duplicate source id rejected", func(t *testing.T) {
		_, err := repo.AppendDocument(ctx, testDoc("1_1_1", "Daniel Noboa"), []float32{0, 0, 1}, testLexVec())
		assert.ErrorIs(t, err, storage.ErrDuplicateSourceID)
	})

	t.Run("dimension mismatch rejected", func(t *testing.T) {
		_, err := repo.AppendDocument(ctx, testDoc("1_1_3", "Daniel Noboa"), []float32{1, 0}, testLexVec())
		assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
	})

	t.Run("invalid document rejected", func(t *testing.T) {
		_, err := repo.AppendDocument(ctx, &core.Document{SourceID: "1_1_4"}, []float32{1, 0, 0}, testLexVec())
		assert.ErrorIs(t, err, core.ErrInvalidDocument)
	})
}

func TestLoadSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("empty artifact", func(t *testing.T) {
		repo, backend, err := NewMemoryRepository()
		require.NoError(t, err)
		defer backend.Close()

		_, err = repo.LoadSnapshot(ctx)
		assert.ErrorIs(t, err, storage.ErrArtifactMissing)
	})

	t.Run("round trip", func(t *testing.T) {
		repo, backend, err := NewMemoryRepository()
		require.NoError(t, err)
		defer backend.Close()

		docs := []*core.Document{
			testDoc("1_1_1", "Daniel Noboa"),
			testDoc("1_2_1", "Luisa Gonzalez"),
			testDoc("2_1_1", "Jan Topic"),
		}
		embeddings := [][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
		for i, doc := range docs {
			_, err := repo.AppendDocument(ctx, doc, embeddings[i], testLexVec())
			require.NoError(t, err)
		}

		vz := lexical.Vectorizer{
			Vocabulary: map[string]uint32{"healthcare": 0, "rural": 1},
			IDF:        []float32{1.2, 2.4},
		}
		require.NoError(t, repo.SetVectorizer(ctx, vz))

		snap, err := repo.LoadSnapshot(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, snap.Len())
		assert.Equal(t, 3, snap.Dimension)
		assert.Equal(t, *docs[1], snap.Documents[1])
		assert.Equal(t, embeddings, snap.Embeddings)
		assert.Equal(t, vz.Vocabulary, snap.Vectorizer.Vocabulary)
		assert.Equal(t, vz.IDF, snap.Vectorizer.IDF)
		require.Len(t, snap.Lexical, 3)
		assert.Equal(t, testLexVec(), snap.Lexical[0])
	})

	t.Run("vectorizer missing", func(t *testing.T) {
		repo, backend, err := NewMemoryRepository()
		require.NoError(t, err)
		defer backend.Close()

		_, err = repo.AppendDocument(ctx, testDoc("1_1_1", "Daniel Noboa"), []float32{1, 0, 0}, testLexVec())
		require.NoError(t, err)

		_, err = repo.LoadSnapshot(ctx)
		assert.ErrorIs(t, err, storage.ErrVectorizerMissing)
	})
}

func TestSnapshotValidate(t *testing.T) {
	snap := &storage.Snapshot{
		Documents:  make([]core.Document, 2),
		Embeddings: [][]float32{{1, 0}},
		Lexical:    make([]lexical.SparseVector, 2),
		Dimension:  2,
	}

	err := snap.Validate()
	assert.ErrorIs(t, err, core.ErrCorpusMisaligned)
}
