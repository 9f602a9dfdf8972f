package rank

import (
	"strings"
	"testing"

	"github.com/electoralqa/candidex/core"
	"github.com/stretchr/testify/assert"
)

func planDoc(text string) *core.Document {
	return &core.Document{
		SourceID:      "1_4_12",
		Type:          core.DocTypePlan,
		OriginalText:  text,
		CandidateName: "Daniel Noboa",
		Party:         "ADN",
	}
}

func TestNameMatch(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      bool
	}{
		{"partial name substring", "Correa", "Rafael Correa Delgado", true},
		{"full name substring", "rafael correa delgado explained", "Rafael Correa Delgado", true},
		{"two shared tokens", "rafael delgado healthcare", "Rafael Correa Delgado", true},
		{"diacritics ignored", "correa", "Rafael Corréa", true},
		{"different people", "Juan Perez", "Maria Lopez", false},
		{"one shared token only", "juan lopez", "Maria Lopez Smith", false},
		{"empty query", "", "Rafael Correa", false},
		{"empty candidate", "correa", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NameMatch(tt.query, tt.candidate))
		})
	}
}

func TestScoreKeywordCoverage(t *testing.T) {
	doc := planDoc("the plan improves health and education funding")

	t.Run("all tokens present scores higher", func(t *testing.T) {
		full := Score("health education", doc)
		partial := Score("health housing", doc)
		assert.Greater(t, full, partial)
	})

	t.Run("no tokens present", func(t *testing.T) {
		none := Score("unrelated topic", doc)
		some := Score("health", doc)
		assert.Greater(t, some, none)
	})
}

func TestScoreExactMatchMonotonic(t *testing.T) {
	// Same keyword coverage, one document contains the full query verbatim.
	exactDoc := planDoc("health education funding for everyone")
	spreadDoc := planDoc("education goals and health funding")

	exact := Score("health education", exactDoc)
	spread := Score("health education", spreadDoc)
	assert.Greater(t, exact, spread)
}

func TestScoreBiographyNameBoost(t *testing.T) {
	bio := &core.Document{
		SourceID:      "bio_1",
		Type:          core.DocTypeBiography,
		OriginalText:  "born in guayaquil, he studied economics",
		CandidateName: "Rafael Correa Delgado",
	}

	boosted := Score("correa", bio)

	other := &core.Document{
		SourceID:      "bio_2",
		Type:          core.DocTypeBiography,
		OriginalText:  "born in guayaquil, he studied economics",
		CandidateName: "Maria Lopez",
	}
	plain := Score("correa", other)

	assert.Greater(t, boosted, plain)
}

func TestScorePositionBonus(t *testing.T) {
	early := planDoc("health is the first priority of this plan among many other initiatives")
	late := planDoc("among many other initiatives the last priority of this plan is health")

	assert.Greater(t, Score("health", early), Score("health", late))
}

func TestScoreLengthFactor(t *testing.T) {
	// 12 words, inside the preferred band.
	preferred := planDoc("one two three four five six seven eight nine ten eleven health")
	// 60 words, outside the band.
	long := planDoc(strings.Repeat("word ", 59) + "health")

	// Both contain the keyword; only the length factor and position differ,
	// and the preferred-length document must not score lower on length.
	assert.Greater(t, Score("health", preferred), Score("health", long))
}

func TestScoreEmptyQuery(t *testing.T) {
	doc := planDoc("any text at all")
	score := Score("", doc)
	// Type, position, and length factors still contribute.
	assert.Greater(t, score, 0.0)
}

func TestScoreBounds(t *testing.T) {
	doc := planDoc("health education funding plan for the next four years in ecuador")
	score := Score("health education funding", doc)
	assert.Greater(t, score, 0.0)
	// Non-biography scores stay under the weight sum with type weight 1.3.
	assert.Less(t, score, 1.1)
}
