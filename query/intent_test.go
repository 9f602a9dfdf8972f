package query

import (
	"testing"

	"github.com/electoralqa/candidex/core"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantType  core.Intent
		wantParam string
	}{
		{"who is", "who is Rafael Correa?", core.IntentBiography, "rafael correa"},
		{"biography of", "Biography of Luisa Gonzalez", core.IntentBiography, "luisa gonzalez"},
		{"which candidates propose", "which candidates propose tax reform", core.IntentProposalsByVerb, "tax reform"},
		{"who proposes", "who proposes free education?", core.IntentProposalsByVerb, "free education"},
		{"interview topics", "what topics are covered in the interview with Daniel Noboa", core.IntentInterview, "daniel noboa"},
		{"topics of interview", "topics of the interview with Jan Topic", core.IntentInterview, "jan topic"},
		{"which party does", "which party does Daniel Noboa belong to", core.IntentPartyOfCandidate, "daniel noboa"},
		{"belongs to which party", "Otto Sonnenholzner belongs to which party", core.IntentPartyOfCandidate, "otto sonnenholzner"},
		{"bare party form", "Daniel Noboa party", core.IntentPartyOfCandidate, "daniel noboa"},
		{"candidates of party", "which candidates belong to party ADN", core.IntentCandidatesOfParty, "adn"},
		{"proposals of", "proposals of the candidate Luisa Gonzalez", core.IntentProposalsOfCandidate, "luisa gonzalez"},
		{"what does propose", "what does Jan Topic propose", core.IntentProposalsOfCandidate, "jan topic"},
		{"general fallback", "tell me about the election", core.IntentGeneral, "tell me about the election"},
		{"general uppercased", "  SOMETHING Unmatched  ", core.IntentGeneral, "something unmatched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, param := Classify(tt.query)
			assert.Equal(t, tt.wantType, intent)
			assert.Equal(t, tt.wantParam, param)
		})
	}
}

// The bare "X party" pattern is a catch-all; it must not shadow the explicit
// party phrasings or sibling intents.
func TestClassifyOrdering(t *testing.T) {
	t.Run("explicit party phrasing wins over bare form", func(t *testing.T) {
		intent, param := Classify("which party does Daniel Noboa belong to")
		assert.Equal(t, core.IntentPartyOfCandidate, intent)
		assert.Equal(t, "daniel noboa", param)
	})

	t.Run("candidates of party unaffected by bare party form", func(t *testing.T) {
		intent, param := Classify("which candidates belong to party Revolucion Ciudadana")
		assert.Equal(t, core.IntentCandidatesOfParty, intent)
		assert.Equal(t, "revolucion ciudadana", param)
	})

	t.Run("biography wins over everything", func(t *testing.T) {
		intent, _ := Classify("who is the candidate of the ADN party")
		assert.Equal(t, core.IntentBiography, intent)
	})
}
