package query

import (
	"strings"

	"github.com/electoralqa/candidex/core"
)

// Rewrite converts a classified query into a canonical, retrieval-oriented
// search string. It is a pure function of its inputs.
func Rewrite(rawQuery string, intent core.Intent, param string) string {
	switch intent {
	case core.IntentBiography:
		return param
	case core.IntentProposalsByVerb:
		return "proposals " + param
	case core.IntentInterview:
		return "interview " + param
	case core.IntentPartyOfCandidate:
		return param + " party"
	case core.IntentCandidatesOfParty:
		return "party " + param
	case core.IntentProposalsOfCandidate:
		return "proposals " + param
	}

	return strings.TrimSpace(strings.ToLower(rawQuery))
}
