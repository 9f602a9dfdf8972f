package server

import "github.com/electoralqa/candidex/core"

// searchRequest is the body of both endpoints.
type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
}

// documentResult is the JSON shape of a scored document. Interview-specific
// fields are omitted for other document types.
type documentResult struct {
	SourceID        string  `json:"source_id"`
	Type            string  `json:"type"`
	OriginalText    string  `json:"original_text"`
	ContextText     string  `json:"context_text"`
	Slate           string  `json:"slate"`
	Party           string  `json:"party"`
	CandidateName   string  `json:"candidate_name"`
	InterviewNumber int     `json:"interview_number,omitempty"`
	Description     string  `json:"description,omitempty"`
	Topic           string  `json:"topic,omitempty"`
	Relevance       float64 `json:"relevance"`
	RawDistance     float64 `json:"raw_distance"`
	AdjustedDist    float64 `json:"adjusted_distance"`
}

// answerResponse is the body of a successful answer request.
type answerResponse struct {
	QueryOriginal string           `json:"query_original"`
	QueryAdjusted string           `json:"query_adjusted"`
	QueryIntent   string           `json:"query_intent"`
	Documents     []documentResult `json:"documents"`
	Answer        string           `json:"answer"`
	Sources       []string         `json:"sources"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toDocumentResults(docs []core.ScoredDocument) []documentResult {
	results := make([]documentResult, 0, len(docs))
	for _, doc := range docs {
		result := documentResult{
			SourceID:      doc.SourceID,
			Type:          string(doc.Type),
			OriginalText:  doc.OriginalText,
			ContextText:   doc.ContextText,
			Slate:         doc.Slate,
			Party:         doc.Party,
			CandidateName: doc.CandidateName,
			Relevance:     doc.Relevance,
			RawDistance:   doc.RawDistance,
			AdjustedDist:  doc.AdjustedDistance,
		}
		if doc.Type == core.DocTypeInterview {
			result.InterviewNumber = doc.InterviewNumber
			result.Description = doc.Description
			result.Topic = doc.Topic
		}
		results = append(results, result)
	}
	return results
}
