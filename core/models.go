package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored corpus entries.
// It is generated from document content using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocType identifies the kind of source a corpus document was extracted from.
type DocType string

const (
	// DocTypePlan is a passage from a candidate's published work plan.
	DocTypePlan DocType = "plan"
	// DocTypeInterview is a passage from a broadcast or print interview.
	DocTypeInterview DocType = "interview"
	// DocTypeBiography is a passage from a candidate profile.
	DocTypeBiography DocType = "biography"
)

// Intent is the classified purpose of a user query.
type Intent string

const (
	IntentBiography            Intent = "biography"
	IntentProposalsByVerb      Intent = "proposals_by_verb"
	IntentInterview            Intent = "interview"
	IntentPartyOfCandidate     Intent = "party_of_candidate"
	IntentCandidatesOfParty    Intent = "candidates_of_party"
	IntentProposalsOfCandidate Intent = "proposals_of_candidate"
	IntentGeneral              Intent = "general"
)

// Document is a single immutable corpus passage.
// SourceID encodes the slate and page (plans) or interview number, e.g. "3_12_5".
// Interview-specific fields are populated only when Type is DocTypeInterview.
type Document struct {
	SourceID      string
	Type          DocType
	OriginalText  string
	ContextText   string
	Slate         string
	Party         string
	CandidateName string

	InterviewNumber int
	Description     string
	Topic           string
}

// Key returns the storage key for the document, derived from its source ID.
func (d *Document) Key() ID {
	return IDFromContent(d.SourceID)
}

// WordCount returns the number of whitespace-separated words in the raw text.
func (d *Document) WordCount() int {
	return len(strings.Fields(d.OriginalText))
}

// ScoredDocument is a Document together with its ranking signals.
// RawDistance is zero for documents found by the exact-match pass.
type ScoredDocument struct {
	Document
	Relevance        float64
	RawDistance      float64
	AdjustedDistance float64
}

// Answer is a synthesized response with its cited sources.
type Answer struct {
	Text    string
	Sources []string
}
