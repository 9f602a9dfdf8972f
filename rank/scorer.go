// Package rank implements the composite relevance model used to order
// retrieved documents.
package rank

import (
	"strings"

	"github.com/electoralqa/candidex/core"
	"github.com/electoralqa/candidex/query"
)

// Factor weights of the composite score. Hand-tuned against the candidate
// corpus; treat as part of the ranking contract.
const (
	weightKeywords = 0.35
	weightExact    = 0.25
	weightDocType  = 0.20
	weightPosition = 0.15
	weightLength   = 0.05
)

// Type weights. Plans rank above interviews, interviews above biographies.
var docTypeWeights = map[core.DocType]float64{
	core.DocTypePlan:      1.3,
	core.DocTypeInterview: 1.2,
	core.DocTypeBiography: 1.0,
}

// nameMatchBoost multiplies the type weight of a biography whose candidate
// the query names.
const nameMatchBoost = 2.5

// NameMatch reports whether the query names the given candidate. Both sides
// are normalized; a match is substring containment in either direction, or at
// least two shared tokens. Deliberately permissive so partial-name queries
// ("Correa") match full names ("Rafael Correa Delgado").
func NameMatch(queryText, candidateName string) bool {
	queryNorm := query.Normalize(queryText)
	nameNorm := query.Normalize(candidateName)
	if queryNorm == "" || nameNorm == "" {
		return false
	}

	if strings.Contains(nameNorm, queryNorm) || strings.Contains(queryNorm, nameNorm) {
		return true
	}

	nameTokens := query.TokenSet(candidateName)
	shared := 0
	for tok := range query.TokenSet(queryText) {
		if nameTokens[tok] {
			shared++
		}
	}
	return shared >= 2
}

// Score computes the composite relevance of a document for a query.
//
// Five factors combine: keyword coverage, exact-substring match, document
// type weight, first-keyword position, and a preferred-length factor. All
// factors stay in [0,1] except the type weight, which can exceed 1 when a
// biography matches the queried candidate name.
func Score(queryText string, doc *core.Document) float64 {
	textNorm := query.Normalize(doc.OriginalText)
	queryTokens := query.TokenSet(queryText)

	var keywords float64
	if len(queryTokens) > 0 {
		found := 0
		for tok := range queryTokens {
			if strings.Contains(textNorm, tok) {
				found++
			}
		}
		keywords = float64(found) / float64(len(queryTokens))
	}

	var exact float64
	queryNorm := query.Normalize(queryText)
	if queryNorm != "" && strings.Contains(textNorm, queryNorm) {
		exact = 1.0
	}

	typeWeight, ok := docTypeWeights[doc.Type]
	if !ok {
		typeWeight = 1.0
	}
	if doc.Type == core.DocTypeBiography && NameMatch(queryText, doc.CandidateName) {
		typeWeight *= nameMatchBoost
		exact = 1.0
	}

	position := positionBonus(queryTokens, textNorm)

	length := 0.8
	if wc := doc.WordCount(); wc >= 10 && wc <= 50 {
		length = 1.0
	}

	return weightKeywords*keywords +
		weightExact*exact +
		weightDocType*typeWeight +
		weightPosition*position +
		weightLength*length
}

// positionBonus rewards documents whose first matching keyword appears early.
// A document where no query token occurs scores as if the first occurrence
// were at the end of the text. Empty normalized text counts as occurrence
// index 0 and a full bonus, avoiding an undefined division.
func positionBonus(queryTokens map[string]bool, textNorm string) float64 {
	if len(textNorm) == 0 {
		return 1.0
	}

	first := len(textNorm)
	for tok := range queryTokens {
		if idx := strings.Index(textNorm, tok); idx >= 0 && idx < first {
			first = idx
		}
	}

	return 1.0 - float64(first)/float64(len(textNorm))
}
