// Package vector wraps the approximate nearest-neighbor index over the corpus
// embeddings. The index is rebuilt in memory from the stored embedding rows at
// every snapshot load and is read-only afterwards.
package vector

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/hupe1980/vecgo"
	"github.com/panjf2000/ants/v2"
)

// Match is a nearest-neighbor hit. Position is the corpus row of the matched
// document; Distance is the squared L2 distance to the query embedding.
type Match struct {
	Position int
	Distance float32
}

// Index is an in-memory HNSW index over the corpus embeddings.
type Index struct {
	db     *vecgo.Vecgo[int]
	count  int
	logger *slog.Logger
}

type buildConfig struct {
	poolSize int
	logger   *slog.Logger
}

// BuildOption configures index construction.
type BuildOption func(*buildConfig)

// WithPoolSize sets the worker pool size for concurrent inserts.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) BuildOption {
	return func(c *buildConfig) {
		if size < 1 {
			size = 1
		}
		c.poolSize = size
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// Build constructs the index from the aligned embedding rows. Each inserted
// vector carries its corpus position so search hits map back to documents.
// Insert failures are fatal: a partially built index would silently break the
// corpus alignment invariant.
func Build(ctx context.Context, embeddings [][]float32, dimension int, opts ...BuildOption) (*Index, error) {
	cfg := buildConfig{
		poolSize: max(runtime.NumCPU()/2, 1),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if dimension < 1 {
		dimension = 1
	}

	db := vecgo.NewHNSW[int]()

	pool, err := ants.NewPool(cfg.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for pos, emb := range embeddings {
		pos, emb := pos, emb
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if _, err := db.Insert(vecgo.VectorWithData[int]{Vector: emb, Data: pos}); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("inserting embedding row %d: %w", pos, err)
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	cfg.logger.Debug("vector index built", "vectors", len(embeddings), "dimension", dimension, "workers", cfg.poolSize)

	return &Index{
		db:     db,
		count:  len(embeddings),
		logger: cfg.logger,
	}, nil
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	return idx.count
}

// Search returns up to k nearest neighbors of the query embedding, nearest
// first. An empty index yields no matches.
func (idx *Index) Search(ctx context.Context, embedding []float32, k int) ([]Match, error) {
	if idx.count == 0 || k <= 0 {
		return nil, nil
	}

	results, err := idx.db.KNNSearch(embedding, k, func(o *vecgo.KNNSearchOptions) {
		if o.EF < k {
			o.EF = k
		}
	})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, res := range results {
		matches = append(matches, Match{
			Position: res.Data,
			Distance: res.Distance,
		})
	}
	return matches, nil
}

// Close releases the index.
func (idx *Index) Close() error {
	return nil
}
