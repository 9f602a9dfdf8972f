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

// Package candidex answers natural-language questions about political
// candidates over a prebuilt document corpus.
package candidex

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/electoralqa/candidex/ai"
	"github.com/electoralqa/candidex/ai/ollama"
	"github.com/electoralqa/candidex/answer"
	"github.com/electoralqa/candidex/retrieval"
	"github.com/electoralqa/candidex/storage"
	"github.com/electoralqa/candidex/storage/badger"
	"github.com/electoralqa/candidex/vector"
)

// System is the loaded question-answering pipeline: the immutable corpus
// snapshot, its vector index, and the AI provider. Open it once at process
// start; it is safe for concurrent queries.
type System struct {
	backend  *badger.Backend
	snapshot *storage.Snapshot
	index    *vector.Index
	provider ai.Provider
	logger   *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	logger   *slog.Logger
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(cfg *ai.Config) SystemOption {
	return func(o *systemOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithProvider sets a custom AI provider, bypassing the default Ollama one.
func WithProvider(provider ai.Provider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) SystemOption {
	return func(o *systemOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open loads the corpus artifact at filePath, rebuilds the vector index, and
// wires the AI provider. A load failure closes everything and returns the
// error; callers decide whether to serve a failing system or exit.
func Open(ctx context.Context, filePath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, fmt.Errorf("opening corpus artifact: %w", err)
	}

	repo, err := badger.NewCorpusRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	snapshot, err := repo.LoadSnapshot(ctx)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("loading corpus snapshot: %w", err)
	}

	index, err := vector.Build(ctx, snapshot.Embeddings, snapshot.Dimension,
		vector.WithLogger(options.logger))
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("building vector index: %w", err)
	}

	provider := options.provider
	if provider == nil {
		provider, err = ollama.NewProvider(options.aiConfig)
		if err != nil {
			index.Close()
			backend.Close()
			return nil, err
		}
	}

	options.logger.Info("corpus loaded",
		"documents", snapshot.Len(),
		"dimension", snapshot.Dimension,
	)

	return &System{
		backend:  backend,
		snapshot: snapshot,
		index:    index,
		provider: provider,
		logger:   options.logger,
	}, nil
}

// Snapshot returns the loaded corpus snapshot.
func (s *System) Snapshot() *storage.Snapshot {
	return s.snapshot
}

// NewRetriever creates a retriever over the loaded corpus.
func (s *System) NewRetriever(opts ...retrieval.Option) (*retrieval.Retriever, error) {
	return retrieval.NewRetriever(s.snapshot, s.index, s.provider.Embedder(), opts...)
}

// NewSynthesizer creates an answer synthesizer backed by the system's
// generation service.
func (s *System) NewSynthesizer(opts ...answer.Option) (*answer.Synthesizer, error) {
	return answer.NewSynthesizer(s.provider.Generator(), opts...)
}

// Close releases the vector index, the AI provider, and the storage backend.
func (s *System) Close() error {
	if err := s.index.Close(); err != nil {
		s.logger.Error("error closing vector index", "err", err)
	}
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
