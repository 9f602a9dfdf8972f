package answer

import (
	"fmt"
	"strings"

	"github.com/electoralqa/candidex/core"
)

// Instruction blocks selected by query intent. Each steers the generation
// model toward the expected answer shape for that kind of question.
var intentInstructions = map[core.Intent]string{
	core.IntentBiography: `
INSTRUCTIONS:
1. Present the biographical information in a fluid, narrative style
2. Include personal background, career history, and political affiliation
3. Describe current proposals and political activities
4. Keep a professional, objective tone
5. Do NOT use phrases like "it is mentioned" or "according to the documents"
6. Do NOT reference the sources or documents`,

	core.IntentProposalsByVerb: `
INSTRUCTIONS:
1. List every proposal found, organized by candidate, in a fluid narrative style
2. For each proposal detail:
   - Candidate name and party
   - Specific details
   - Implementation information
3. Do NOT reference documents or sources`,

	core.IntentInterview: `
INSTRUCTIONS:
1. Present the main topics in a fluid, narrative style
2. Within each topic, use bullet points for the key details
3. Do NOT reference documents or explicit sources
4. Do not mention that you are following instructions`,

	core.IntentPartyOfCandidate: `
INSTRUCTIONS:
1. Present the party and political affiliation in a fluid, narrative style
2. Describe the party's history and political trajectory
3. Do NOT reference documents or sources and do not mention the instructions`,

	core.IntentCandidatesOfParty: `
INSTRUCTIONS:
1. List every candidate of the party
2. For each one include:
   - Full name
   - Current position
   - Relevant career history
3. Do NOT mention information sources`,

	core.IntentProposalsOfCandidate: `
INSTRUCTIONS:
1. Enumerate the main proposals
2. Organize them by topic or area
3. Include implementation details
4. Do NOT reference documents`,
}

const generalInstructions = `
INSTRUCTIONS:
1. Summarize the information clearly and directly
2. Organize the content logically
3. Do NOT reference sources or documents`

const importantRules = `

IMPORTANT RULES:
1. Write fluidly and naturally
2. Avoid any reference to documents or sources
3. Do NOT use phrases like "it is mentioned" or "according to the documents"
4. Present the information directly and objectively
5. Keep a clear, professional tone`

// buildPrompt assembles the single generation prompt: the question, a
// numbered listing of the retrieved documents, intent-specific instructions,
// and the shared rules block.
func buildPrompt(intent core.Intent, originalQuery string, docs []core.ScoredDocument) string {
	var b strings.Builder

	b.WriteString("Act as a specialized political assistant.\n")
	b.WriteString("Generate a complete and direct answer based on the following information.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\n", originalQuery)
	b.WriteString("Available documents:")

	for i, doc := range docs {
		fmt.Fprintf(&b, "\n\n[Document %d]\n", i+1)
		fmt.Fprintf(&b, "TYPE: %s\n", strings.ToUpper(string(doc.Type)))
		fmt.Fprintf(&b, "CANDIDATE: %s\n", doc.CandidateName)
		fmt.Fprintf(&b, "PARTY: %s\n\n", doc.Party)
		fmt.Fprintf(&b, "CONTENT:\n%s", doc.ContextText)
		if doc.Type == core.DocTypeInterview {
			fmt.Fprintf(&b, "\nTOPIC: %s", orUnspecified(doc.Topic))
		}
	}

	instructions, ok := intentInstructions[intent]
	if !ok {
		instructions = generalInstructions
	}
	b.WriteString(instructions)
	b.WriteString(importantRules)

	return b.String()
}

func orUnspecified(s string) string {
	if s == "" {
		return "not specified"
	}
	return s
}
