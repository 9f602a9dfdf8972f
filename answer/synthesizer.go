// Copyright 2025 Electoral QA Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package answer synthesizes a narrative answer from ranked documents.
//
// The Synthesizer builds an intent-specific prompt, calls the external
// generation service with a bounded retry budget, and degrades to a
// deterministic templated answer when the service is unavailable. Generation
// failures never surface to the caller.
package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/electoralqa/candidex/ai"
	"github.com/electoralqa/candidex/core"
	"github.com/electoralqa/candidex/query"
)

// NoRelevantDocumentsMessage is the fixed answer for an empty document list.
const NoRelevantDocumentsMessage = "No relevant documents were found."

// maxAttempts bounds the sequential calls to the generation service before
// falling back to the templated answer.
const maxAttempts = 3

// Synthesizer produces the final answer for a query from its ranked
// documents.
type Synthesizer struct {
	generator ai.Generator
	logger    *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSynthesizer creates a new answer synthesizer.
func NewSynthesizer(generator ai.Generator, opts ...Option) (*Synthesizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Synthesizer{
		generator: generator,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Synthesize answers the original query from its ranked documents. The intent
// is classified from the original query, not the rewritten one, so the answer
// shape follows what the user actually asked. An empty document list yields
// the fixed no-results message without touching the generation service.
func (s *Synthesizer) Synthesize(ctx context.Context, originalQuery string, docs []core.ScoredDocument) core.Answer {
	if len(docs) == 0 {
		return core.Answer{
			Text:    NoRelevantDocumentsMessage,
			Sources: nil,
		}
	}

	intent, _ := query.Classify(originalQuery)
	prompt := buildPrompt(intent, originalQuery, docs)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("generation unavailable, using fallback answer", "intent", intent, "err", err)
		text = fallbackAnswer(intent, docs)
	}

	return core.Answer{
		Text:    text,
		Sources: Sources(docs),
	}
}

// generate calls the generation service up to maxAttempts times.
func (s *Synthesizer) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := s.generator.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		s.logger.Warn("generation attempt failed", "attempt", attempt, "err", err)
	}
	return "", lastErr
}

// fallbackAnswer deterministically renders the documents when the generation
// service is unavailable.
func fallbackAnswer(intent core.Intent, docs []core.ScoredDocument) string {
	var lines []string

	switch intent {
	case core.IntentBiography:
		for _, doc := range docs {
			if doc.Type != core.DocTypeBiography {
				continue
			}
			lines = append(lines,
				fmt.Sprintf("Biography of %s:", doc.CandidateName),
				fmt.Sprintf("Party: %s", doc.Party),
				"\nBiographical information:",
				doc.ContextText,
			)
			break
		}

	case core.IntentProposalsByVerb, core.IntentProposalsOfCandidate:
		lines = append(lines, "Proposals found:")
		for _, doc := range docs {
			lines = append(lines,
				fmt.Sprintf("\n- Candidate: %s (%s)", doc.CandidateName, doc.Party),
				fmt.Sprintf("  %s", doc.ContextText),
			)
		}

	case core.IntentInterview:
		for _, doc := range docs {
			if doc.Type != core.DocTypeInterview {
				continue
			}
			lines = append(lines,
				fmt.Sprintf("\nInterview with %s:", doc.CandidateName),
				fmt.Sprintf("Topics covered: %s", orUnspecified(doc.Topic)),
				fmt.Sprintf("Content: %s", doc.ContextText),
			)
		}

	case core.IntentPartyOfCandidate, core.IntentCandidatesOfParty:
		lines = append(lines, "Party information:")
		for _, doc := range docs {
			lines = append(lines,
				fmt.Sprintf("\n- %s", doc.CandidateName),
				fmt.Sprintf("  Party: %s", doc.Party),
				fmt.Sprintf("  %s", doc.ContextText),
			)
		}
	}

	return strings.Join(lines, "\n")
}
