package retrieval

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/electoralqa/candidex/ai"
	"github.com/electoralqa/candidex/core"
	"github.com/electoralqa/candidex/lexical"
	"github.com/electoralqa/candidex/query"
	"github.com/electoralqa/candidex/rank"
	"github.com/electoralqa/candidex/storage"
	"github.com/electoralqa/candidex/vector"
)

// similarityThreshold is the lexical cosine gate. A semantic pass only runs
// when at least one document scores strictly above it.
const similarityThreshold = 0.3

// Intent boosts applied on top of the base relevance score.
const (
	biographyBoost = 3.0
	candidateBoost = 2.0
)

// Retriever runs the hybrid retrieval pipeline: an exact candidate-name pass,
// a lexical cosine gate, and a semantic nearest-neighbor pass, ranked by the
// composite relevance model.
type Retriever struct {
	snapshot *storage.Snapshot
	index    *vector.Index
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever over an immutable corpus snapshot and
// its vector index.
func NewRetriever(
	snapshot *storage.Snapshot,
	index *vector.Index,
	embedder ai.Embedder,
	opts ...Option,
) (*Retriever, error) {
	if snapshot == nil {
		return nil, ErrSnapshotRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		snapshot: snapshot,
		index:    index,
		embedder: embedder,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns the k most relevant documents for the query.
// Returns an empty slice when nothing matches; callers decide whether that is
// an error.
func (r *Retriever) Retrieve(ctx context.Context, rawQuery string, k int) ([]core.ScoredDocument, error) {
	return r.RetrieveWithMonitor(ctx, rawQuery, k, nil)
}

// RetrieveWithMonitor runs retrieval with monitoring. The monitor receives
// callbacks at each stage of the pipeline.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, rawQuery string, k int, monitor RetrievalMonitor) ([]core.ScoredDocument, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(rawQuery) == "" {
		return nil, core.ErrEmptyQuery
	}
	if k <= 0 {
		k = 5
	}

	monitor.Start(rawQuery)

	// 1. Classify the query and work out which candidate name it targets.
	intent, param := query.Classify(rawQuery)
	queryNorm := query.Normalize(rawQuery)
	targetName := queryNorm
	isBiographyQuery := false

	switch {
	case intent == core.IntentBiography ||
		strings.Contains(queryNorm, "biography of") ||
		strings.Contains(queryNorm, "who is"):
		isBiographyQuery = true
		switch {
		case strings.Contains(queryNorm, "biography of"):
			targetName = strings.TrimSpace(strings.ReplaceAll(queryNorm, "biography of", ""))
		case strings.Contains(queryNorm, "who is"):
			targetName = strings.TrimSpace(strings.ReplaceAll(queryNorm, "who is", ""))
		default:
			targetName = param
		}
	case intent == core.IntentPartyOfCandidate:
		targetName = param
	}

	monitor.AfterClassification(intent, targetName)
	r.logger.Debug("query classified", "intent", intent, "target", targetName)

	sortRanked := func(results []core.ScoredDocument) {
		sort.SliceStable(results, func(i, j int) bool {
			wi := intentWeight(isBiographyQuery, &results[i].Document) * results[i].Relevance
			wj := intentWeight(isBiographyQuery, &results[j].Document) * results[j].Relevance
			if wi != wj {
				return wi > wj
			}
			return results[i].AdjustedDistance < results[j].AdjustedDistance
		})
	}

	// 2. Exact candidate-name pass. When any document's normalized candidate
	// name equals the target, these matches take precedence and the semantic
	// pass never runs.
	var exact []core.ScoredDocument
	for i := range r.snapshot.Documents {
		doc := &r.snapshot.Documents[i]
		if query.Normalize(doc.CandidateName) != targetName {
			continue
		}

		relevance := rank.Score(rawQuery, doc)
		if isBiographyQuery && doc.Type == core.DocTypeBiography {
			relevance *= biographyBoost
		} else if intent == core.IntentPartyOfCandidate {
			relevance *= candidateBoost
		}

		exact = append(exact, core.ScoredDocument{
			Document:  *doc,
			Relevance: relevance,
		})
	}
	monitor.AfterExactMatch(exact)

	if len(exact) > 0 {
		sortRanked(exact)
		results := truncate(exact, k)
		r.logger.Debug("exact match pass succeeded", "matches", len(exact), "returned", len(results))
		r.logPreview("exact match results", results)
		monitor.Finish(results)
		return results, nil
	}

	// 3. Lexical gate over the canonical query. Without lexical signal above
	// the threshold the semantic pass is not attempted.
	canonical := query.Rewrite(rawQuery, intent, param)
	queryVec := r.snapshot.Vectorizer.Transform(canonical)

	passed := 0
	for i := range r.snapshot.Lexical {
		if lexical.Cosine(queryVec, r.snapshot.Lexical[i]) > similarityThreshold {
			passed++
		}
	}
	monitor.AfterLexicalGate(passed)

	if passed == 0 {
		r.logger.Debug("no documents above lexical similarity threshold", "threshold", similarityThreshold)
		monitor.Finish(nil)
		return nil, nil
	}

	// 4. Semantic pass over the canonical query.
	embedding, err := r.embedder.EmbedText(ctx, canonical)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", canonical, "err", err)
		return nil, err
	}

	matches, err := r.index.Search(ctx, embedding, 2*k)
	if err != nil {
		r.logger.Error("error querying vector index", "err", err)
		return nil, err
	}

	candidates := make([]core.ScoredDocument, 0, len(matches))
	for _, match := range matches {
		if match.Position < 0 || match.Position >= len(r.snapshot.Documents) {
			continue
		}
		doc := &r.snapshot.Documents[match.Position]

		relevance := rank.Score(rawQuery, doc)
		if isBiographyQuery && doc.Type == core.DocTypeBiography {
			relevance *= biographyBoost
		} else if intent == core.IntentPartyOfCandidate && nameOverlap(doc.CandidateName, targetName) {
			relevance *= candidateBoost
		}

		candidates = append(candidates, core.ScoredDocument{
			Document:         *doc,
			Relevance:        relevance,
			RawDistance:      float64(match.Distance),
			AdjustedDistance: float64(match.Distance) / (relevance + 0.1),
		})
	}
	monitor.AfterSemanticSearch(candidates)

	// Party queries only make sense for the named candidate's documents.
	if intent == core.IntentPartyOfCandidate {
		filtered := candidates[:0]
		for _, cand := range candidates {
			if nameOverlap(cand.CandidateName, targetName) {
				filtered = append(filtered, cand)
			}
		}
		candidates = filtered
	}

	sortRanked(candidates)
	results := truncate(candidates, k)
	r.logger.Debug("semantic pass complete", "candidates", len(candidates), "returned", len(results))
	r.logPreview("semantic results", results)
	monitor.Finish(results)
	return results, nil
}

// intentWeight is the primary sort multiplier: biography documents rank
// triple for biography queries, everything else is neutral.
func intentWeight(isBiographyQuery bool, doc *core.Document) float64 {
	if isBiographyQuery && doc.Type == core.DocTypeBiography {
		return biographyBoost
	}
	return 1.0
}

// nameOverlap reports substring containment between normalized candidate
// name and target name, in either direction.
func nameOverlap(candidateName, targetName string) bool {
	nameNorm := query.Normalize(candidateName)
	if nameNorm == "" || targetName == "" {
		return false
	}
	return strings.Contains(nameNorm, targetName) || strings.Contains(targetName, nameNorm)
}

func truncate(results []core.ScoredDocument, k int) []core.ScoredDocument {
	if len(results) > k {
		return results[:k]
	}
	return results
}

// logPreview logs the top ranked documents at debug level.
func (r *Retriever) logPreview(stage string, results []core.ScoredDocument) {
	for i, doc := range results {
		if i >= 5 {
			break
		}
		r.logger.Debug(stage,
			"rank", i+1,
			"candidate", doc.CandidateName,
			"type", doc.Type,
			"party", doc.Party,
			"relevance", doc.Relevance,
		)
	}
}
