package query

import (
	"regexp"
	"strings"

	"github.com/electoralqa/candidex/core"
)

// intentPatterns is the ordered classification table. Intents are tried in
// listed order, patterns within an intent in listed order, and the first
// pattern that matches anywhere in the query wins. Ordering is deliberate:
// broad catch-alls (the bare "X party" form) sit after the explicit phrasings
// so they cannot shadow them. The ordering is covered by tests.
var intentPatterns = []struct {
	intent   core.Intent
	patterns []*regexp.Regexp
}{
	{core.IntentBiography, []*regexp.Regexp{
		regexp.MustCompile(`^who is (.+)`),
		regexp.MustCompile(`^biography of (.+)`),
	}},
	{core.IntentProposalsByVerb, []*regexp.Regexp{
		regexp.MustCompile(`(?:which|what) candidates? proposes? (.+)`),
		regexp.MustCompile(`who proposes? (.+)`),
	}},
	{core.IntentInterview, []*regexp.Regexp{
		regexp.MustCompile(`(?:which|what) topics (?:are|were) covered in (?:the )?interview with (.+)`),
		regexp.MustCompile(`topics? of (?:the )?interview with (.+)`),
	}},
	{core.IntentPartyOfCandidate, []*regexp.Regexp{
		regexp.MustCompile(`(?:which|what) party does (?:the )?(?:candidate )?(.+?) belong to`),
		regexp.MustCompile(`(?:which|what) party is (.+?) (?:from|in|with)`),
		regexp.MustCompile(`(.+?) belongs to (?:which|what) party`),
		regexp.MustCompile(`(.+?) party$`),
	}},
	{core.IntentCandidatesOfParty, []*regexp.Regexp{
		regexp.MustCompile(`(?:which|what) candidates? belongs? to (?:the )?party (.+)`),
	}},
	{core.IntentProposalsOfCandidate, []*regexp.Regexp{
		regexp.MustCompile(`proposals (?:of |from )?(?:the candidate )?(.+)`),
		regexp.MustCompile(`what does (.+?) propose`),
	}},
}

// Classify maps a raw query to an intent and an extracted parameter.
// The query is lowercased and trimmed before matching; the winning pattern's
// first capture group is normalized to become the parameter. Queries that
// match nothing classify as IntentGeneral with the lowercased, trimmed query
// as parameter.
func Classify(rawQuery string) (core.Intent, string) {
	q := strings.TrimSpace(strings.ToLower(rawQuery))

	for _, entry := range intentPatterns {
		for _, pattern := range entry.patterns {
			if m := pattern.FindStringSubmatch(q); m != nil {
				return entry.intent, Normalize(m[1])
			}
		}
	}

	return core.IntentGeneral, q
}
