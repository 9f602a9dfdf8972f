package retrieval

import "github.com/electoralqa/candidex/core"

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during retrieval.
type RetrievalMonitor interface {
	Start(query string)
	AfterClassification(intent core.Intent, targetName string)
	AfterExactMatch(results []core.ScoredDocument)
	AfterLexicalGate(passed int)
	AfterSemanticSearch(candidates []core.ScoredDocument)
	Finish(results []core.ScoredDocument)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                  {}
func (n *noopMonitor) AfterClassification(_ core.Intent, _ string)     {}
func (n *noopMonitor) AfterExactMatch(_ []core.ScoredDocument)         {}
func (n *noopMonitor) AfterLexicalGate(_ int)                          {}
func (n *noopMonitor) AfterSemanticSearch(_ []core.ScoredDocument)     {}
func (n *noopMonitor) Finish(_ []core.ScoredDocument)                  {}
