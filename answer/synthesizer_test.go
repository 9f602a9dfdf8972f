package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/electoralqa/candidex/ai/mock"
	"github.com/electoralqa/candidex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bioDoc() core.ScoredDocument {
	return core.ScoredDocument{
		Document: core.Document{
			SourceID:      "noboa_1_1",
			Type:          core.DocTypeBiography,
			OriginalText:  "daniel noboa was born in guayaquil in 1987",
			ContextText:   "Daniel Noboa was born in Guayaquil in 1987 and studied business administration.",
			Party:         "ADN",
			CandidateName: "Daniel Noboa",
		},
		Relevance: 2.1,
	}
}

func planDoc() core.ScoredDocument {
	return core.ScoredDocument{
		Document: core.Document{
			SourceID:      "7_12_3",
			Type:          core.DocTypePlan,
			OriginalText:  "invest in rural healthcare",
			ContextText:   "The plan will invest in rural healthcare over four years.",
			Slate:         "7",
			Party:         "ADN",
			CandidateName: "Daniel Noboa",
		},
		Relevance: 0.8,
	}
}

func interviewDoc() core.ScoredDocument {
	return core.ScoredDocument{
		Document: core.Document{
			SourceID:        "2_2_9",
			Type:            core.DocTypeInterview,
			OriginalText:    "we will reform the security forces",
			ContextText:     "Asked about crime, the candidate said the security forces need reform.",
			Party:           "ADN",
			CandidateName:   "Daniel Noboa",
			InterviewNumber: 2,
			Description:     "television interview on security",
			Topic:           "security",
		},
		Relevance: 1.1,
	}
}

func TestNewSynthesizer(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSynthesizer(mock.NewMockGenerator())
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("nil generator", func(t *testing.T) {
		_, err := NewSynthesizer(nil)
		assert.Equal(t, ErrGeneratorRequired, err)
	})
}

func TestSynthesizeEmptyDocuments(t *testing.T) {
	gen := mock.NewMockGenerator()
	s, err := NewSynthesizer(gen)
	require.NoError(t, err)

	result := s.Synthesize(context.Background(), "who is Daniel Noboa", nil)

	assert.Equal(t, NoRelevantDocumentsMessage, result.Text)
	assert.Empty(t, result.Sources)
	// The generation service is never touched.
	assert.Equal(t, 0, gen.CallCount())
}

func TestSynthesizeSuccess(t *testing.T) {
	gen := mock.NewMockGenerator()
	gen.GenerateFunc = func(_ context.Context, prompt string) (string, error) {
		// The prompt carries the question and the numbered documents.
		assert.Contains(t, prompt, "Question: who is Daniel Noboa")
		assert.Contains(t, prompt, "[Document 1]")
		assert.Contains(t, prompt, "CANDIDATE: Daniel Noboa")
		return "Daniel Noboa is the candidate of ADN.", nil
	}

	s, err := NewSynthesizer(gen)
	require.NoError(t, err)

	result := s.Synthesize(context.Background(), "who is Daniel Noboa", []core.ScoredDocument{bioDoc()})

	assert.Equal(t, "Daniel Noboa is the candidate of ADN.", result.Text)
	assert.Equal(t, 1, gen.CallCount())
	assert.Equal(t, []string{biographyCitation}, result.Sources)
}

func TestSynthesizeRetriesThenFallback(t *testing.T) {
	gen := mock.NewMockGenerator()
	gen.GenerateFunc = func(_ context.Context, _ string) (string, error) {
		return "", errors.New("connection refused")
	}

	s, err := NewSynthesizer(gen)
	require.NoError(t, err)

	docs := []core.ScoredDocument{bioDoc(), planDoc()}
	result := s.Synthesize(context.Background(), "who is Daniel Noboa", docs)

	assert.Equal(t, 3, gen.CallCount())
	// The fallback carries the biography context verbatim.
	assert.Contains(t, result.Text, "Daniel Noboa was born in Guayaquil in 1987 and studied business administration.")
	assert.Contains(t, result.Text, "Biography of Daniel Noboa:")
	assert.NotEmpty(t, result.Sources)
}

func TestSynthesizeRecoversMidBudget(t *testing.T) {
	gen := mock.NewMockGenerator()
	calls := 0
	gen.GenerateFunc = func(_ context.Context, _ string) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("timeout")
		}
		return "generated on third attempt", nil
	}

	s, err := NewSynthesizer(gen)
	require.NoError(t, err)

	result := s.Synthesize(context.Background(), "who is Daniel Noboa", []core.ScoredDocument{bioDoc()})
	assert.Equal(t, "generated on third attempt", result.Text)
}

func TestFallbackAnswer(t *testing.T) {
	t.Run("proposals list every document", func(t *testing.T) {
		text := fallbackAnswer(core.IntentProposalsOfCandidate, []core.ScoredDocument{planDoc(), interviewDoc()})
		assert.Contains(t, text, "Proposals found:")
		assert.Contains(t, text, "Candidate: Daniel Noboa (ADN)")
		assert.Contains(t, text, "The plan will invest in rural healthcare over four years.")
	})

	t.Run("interview lists topic and content", func(t *testing.T) {
		text := fallbackAnswer(core.IntentInterview, []core.ScoredDocument{planDoc(), interviewDoc()})
		assert.Contains(t, text, "Interview with Daniel Noboa:")
		assert.Contains(t, text, "Topics covered: security")
		assert.NotContains(t, text, "The plan will invest")
	})

	t.Run("party lists candidate and party", func(t *testing.T) {
		text := fallbackAnswer(core.IntentPartyOfCandidate, []core.ScoredDocument{planDoc()})
		assert.Contains(t, text, "Party information:")
		assert.Contains(t, text, "Party: ADN")
	})

	t.Run("biography without biography document", func(t *testing.T) {
		text := fallbackAnswer(core.IntentBiography, []core.ScoredDocument{planDoc()})
		assert.Empty(t, text)
	})
}

func TestBuildPromptInterviewTopic(t *testing.T) {
	prompt := buildPrompt(core.IntentInterview, "topics of the interview with daniel noboa", []core.ScoredDocument{interviewDoc()})
	assert.Contains(t, prompt, "TYPE: INTERVIEW")
	assert.Contains(t, prompt, "TOPIC: security")
	assert.Contains(t, prompt, "IMPORTANT RULES:")
}

func TestSources(t *testing.T) {
	t.Run("plan cites work plan page", func(t *testing.T) {
		sources := Sources([]core.ScoredDocument{planDoc()})
		assert.Equal(t, []string{"Work plan of Daniel Noboa, page 12"}, sources)
	})

	t.Run("interview cites outlet", func(t *testing.T) {
		sources := Sources([]core.ScoredDocument{interviewDoc()})
		assert.Equal(t, []string{"Interview on Teleamazonas with Daniel Noboa"}, sources)
	})

	t.Run("unknown outlet", func(t *testing.T) {
		doc := interviewDoc()
		doc.SourceID = "9_9_1"
		sources := Sources([]core.ScoredDocument{doc})
		require.Len(t, sources, 1)
		assert.True(t, strings.Contains(sources[0], "unknown outlet"))
	})

	t.Run("duplicates removed", func(t *testing.T) {
		sources := Sources([]core.ScoredDocument{bioDoc(), bioDoc(), planDoc()})
		assert.Len(t, sources, 2)
	})

	t.Run("biography cites fixed profile source", func(t *testing.T) {
		sources := Sources([]core.ScoredDocument{bioDoc()})
		assert.Equal(t, []string{biographyCitation}, sources)
	})
}
