package retrieval

import (
	"context"
	"testing"

	"github.com/electoralqa/candidex/ai/mock"
	"github.com/electoralqa/candidex/core"
	"github.com/electoralqa/candidex/lexical"
	"github.com/electoralqa/candidex/storage"
	"github.com/electoralqa/candidex/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSnapshot() *storage.Snapshot {
	docs := []core.Document{
		{
			SourceID:      "1_4_2",
			Type:          core.DocTypePlan,
			OriginalText:  "invest in security and employment programs",
			ContextText:   "the plan will invest in security and employment programs nationwide",
			Slate:         "7",
			Party:         "ADN",
			CandidateName: "Daniel Noboa",
		},
		{
			SourceID:      "noboa_1_1",
			Type:          core.DocTypeBiography,
			OriginalText:  "daniel noboa was born in guayaquil in 1987",
			ContextText:   "daniel noboa was born in guayaquil in 1987 and studied business",
			Slate:         "7",
			Party:         "ADN",
			CandidateName: "Daniel Noboa",
		},
		{
			SourceID:      "3_9_1",
			Type:          core.DocTypePlan,
			OriginalText:  "improve public healthcare and education funding",
			ContextText:   "the plan will improve public healthcare and education funding",
			Slate:         "3",
			Party:         "Revolucion Ciudadana",
			CandidateName: "Luisa Gonzalez",
		},
	}

	vz := lexical.Vectorizer{
		Vocabulary: map[string]uint32{
			"proposals":  0,
			"security":   1,
			"healthcare": 2,
			"daniel":     3,
			"noboa":      4,
		},
		IDF: []float32{1, 1, 1, 1, 1},
	}

	lex := make([]lexical.SparseVector, len(docs))
	for i := range docs {
		lex[i] = vz.Transform(docs[i].OriginalText)
	}

	return &storage.Snapshot{
		Documents:  docs,
		Embeddings: [][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Lexical:    lex,
		Vectorizer: vz,
		Dimension:  3,
	}
}

func fixtureRetriever(t *testing.T) (*Retriever, *mock.MockEmbedder) {
	t.Helper()
	ctx := context.Background()

	snap := fixtureSnapshot()
	idx, err := vector.Build(ctx, snap.Embeddings, snap.Dimension)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{0.1, 0.9, 0.2}, nil
	}

	retriever, err := NewRetriever(snap, idx, embedder)
	require.NoError(t, err)
	return retriever, embedder
}

func TestNewRetriever(t *testing.T) {
	snap := fixtureSnapshot()
	idx, err := vector.Build(context.Background(), snap.Embeddings, snap.Dimension)
	require.NoError(t, err)
	defer idx.Close()
	embedder := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		r, err := NewRetriever(snap, idx, embedder)
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		_, err := NewRetriever(nil, idx, embedder)
		assert.Equal(t, ErrSnapshotRequired, err)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewRetriever(snap, nil, embedder)
		assert.Equal(t, ErrIndexRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewRetriever(snap, idx, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestRetrieveEmptyQuery(t *testing.T) {
	retriever, _ := fixtureRetriever(t)

	_, err := retriever.Retrieve(context.Background(), "   ", 5)
	assert.ErrorIs(t, err, core.ErrEmptyQuery)
}

func TestRetrieveExactMatchPrecedence(t *testing.T) {
	retriever, embedder := fixtureRetriever(t)

	results, err := retriever.Retrieve(context.Background(), "who is Daniel Noboa?", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Biography ranks first for a biography query, and the semantic pass
	// never runs when exact candidate-name matches exist.
	assert.Equal(t, core.DocTypeBiography, results[0].Type)
	assert.Equal(t, "Daniel Noboa", results[0].CandidateName)
	assert.Zero(t, results[0].RawDistance)
	assert.Zero(t, results[0].AdjustedDistance)
	assert.Equal(t, 0, embedder.CallCount())
}

func TestRetrieveSemanticPass(t *testing.T) {
	retriever, embedder := fixtureRetriever(t)

	results, err := retriever.Retrieve(context.Background(), "proposals security healthcare", 5)
	require.NoError(t, err)

	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 3)
	assert.Equal(t, 1, embedder.CallCount())
	for _, doc := range results {
		assert.Greater(t, doc.Relevance, 0.0)
	}
}

func TestRetrieveKLargerThanCorpus(t *testing.T) {
	retriever, _ := fixtureRetriever(t)

	results, err := retriever.Retrieve(context.Background(), "proposals security healthcare", 50)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 3)
}

func TestRetrieveLexicalGateBlocks(t *testing.T) {
	retriever, embedder := fixtureRetriever(t)

	results, err := retriever.Retrieve(context.Background(), "completely unrelated gibberish", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
	// Without lexical signal the semantic pass is never attempted.
	assert.Equal(t, 0, embedder.CallCount())
}

// Similarity exactly at the threshold must not pass the gate.
func TestLexicalGateStrict(t *testing.T) {
	assert.False(t, 0.3 > similarityThreshold)
}

func TestRetrievePartyFilter(t *testing.T) {
	retriever, _ := fixtureRetriever(t)

	results, err := retriever.Retrieve(context.Background(), "which party does noboa belong to", 5)
	require.NoError(t, err)

	require.NotEmpty(t, results)
	for _, doc := range results {
		assert.Equal(t, "Daniel Noboa", doc.CandidateName)
	}
}

func TestRetrieveEmptyCorpus(t *testing.T) {
	ctx := context.Background()

	snap := &storage.Snapshot{
		Vectorizer: lexical.Vectorizer{Vocabulary: map[string]uint32{}, IDF: nil},
	}
	idx, err := vector.Build(ctx, nil, 0)
	require.NoError(t, err)
	defer idx.Close()

	retriever, err := NewRetriever(snap, idx, mock.NewMockEmbedder())
	require.NoError(t, err)

	results, err := retriever.Retrieve(ctx, "who is Daniel Noboa", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieveMonitorCallbacks(t *testing.T) {
	retriever, _ := fixtureRetriever(t)

	monitor := &recordingMonitor{}
	results, err := retriever.RetrieveWithMonitor(context.Background(), "who is Daniel Noboa", 5, monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.Equal(t, core.IntentBiography, monitor.intent)
	assert.Equal(t, "daniel noboa", monitor.targetName)
	assert.Len(t, monitor.exact, 2)
	assert.Equal(t, len(results), len(monitor.final))
}

type recordingMonitor struct {
	started    bool
	intent     core.Intent
	targetName string
	exact      []core.ScoredDocument
	final      []core.ScoredDocument
}

func (m *recordingMonitor) Start(_ string) { m.started = true }
func (m *recordingMonitor) AfterClassification(intent core.Intent, targetName string) {
	m.intent = intent
	m.targetName = targetName
}
func (m *recordingMonitor) AfterExactMatch(results []core.ScoredDocument)     { m.exact = results }
func (m *recordingMonitor) AfterLexicalGate(_ int)                            {}
func (m *recordingMonitor) AfterSemanticSearch(_ []core.ScoredDocument)       {}
func (m *recordingMonitor) Finish(results []core.ScoredDocument)              { m.final = results }
