package answer

import (
	"fmt"
	"strings"

	"github.com/electoralqa/candidex/core"
)

// interviewOutlets maps the interview number embedded in a document's source
// ID to the media outlet that conducted it.
var interviewOutlets = map[string]string{
	"1": "Ecuavisa",
	"2": "Teleamazonas",
	"3": "Revista Vistazo",
}

const biographyCitation = "CNN and Primicias EC - 2025 presidential candidate profiles"

// Sources derives a deduplicated citation list from the documents that
// ground an answer. Plan and interview citations are parsed out of the
// source ID, which encodes the slate and the page or interview number
// ("slate_page_sentence").
func Sources(docs []core.ScoredDocument) []string {
	seen := make(map[string]bool)
	var sources []string

	add := func(source string) {
		if !seen[source] {
			seen[source] = true
			sources = append(sources, source)
		}
	}

	for _, doc := range docs {
		switch doc.Type {
		case core.DocTypePlan:
			add(fmt.Sprintf("Work plan of %s, page %s", doc.CandidateName, idSegment(doc.SourceID)))
		case core.DocTypeInterview:
			outlet, ok := interviewOutlets[idSegment(doc.SourceID)]
			if !ok {
				outlet = "unknown outlet"
			}
			add(fmt.Sprintf("Interview on %s with %s", outlet, doc.CandidateName))
		case core.DocTypeBiography:
			add(biographyCitation)
		}
	}

	return sources
}

// idSegment extracts the page or interview number from a source ID.
func idSegment(sourceID string) string {
	parts := strings.Split(sourceID, "_")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
