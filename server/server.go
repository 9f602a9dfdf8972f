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

// Package server exposes the retrieval and answer pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/electoralqa/candidex/answer"
	"github.com/electoralqa/candidex/core"
	"github.com/electoralqa/candidex/query"
	"github.com/electoralqa/candidex/retrieval"
)

const defaultK = 5

// Server handles the JSON question-answering endpoints. A server built over
// a failed corpus load stays up but fails every request fast with the load
// error.
type Server struct {
	retriever   *retrieval.Retriever
	synthesizer *answer.Synthesizer
	loadErr     error
	mux         *http.ServeMux
	httpServer  *http.Server
	logger      *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// New creates a server over a loaded pipeline.
func New(retriever *retrieval.Retriever, synthesizer *answer.Synthesizer, opts ...Option) *Server {
	s := &Server{
		retriever:   retriever,
		synthesizer: synthesizer,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// NewUnavailable creates a server whose every request fails with the given
// load error. Used when the corpus artifact could not be loaded.
func NewUnavailable(loadErr error, opts ...Option) *Server {
	s := &Server{
		loadErr: fmt.Errorf("%w: %w", core.ErrNotLoaded, loadErr),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/search", s.handleSearch)
	s.mux.HandleFunc("/answer", s.handleAnswer)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves until the context is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     s.mux,
		ReadTimeout: 30 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	s.logger.Info("server listening", "addr", addr)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// handleSearch runs retrieval over the raw query and returns the ranked
// documents.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	docs, err := s.retrieveDocs(r.Context(), req)
	if err != nil {
		s.writeRetrieveError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toDocumentResults(docs))
}

// handleAnswer runs the full pipeline: classify, retrieve, synthesize.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	intent, param := query.Classify(req.Query)
	adjusted := query.Rewrite(req.Query, intent, param)

	docs, err := s.retrieveDocs(r.Context(), req)
	if err != nil {
		s.writeRetrieveError(w, err)
		return
	}

	result := s.synthesizer.Synthesize(r.Context(), req.Query, docs)

	s.writeJSON(w, http.StatusOK, answerResponse{
		QueryOriginal: req.Query,
		QueryAdjusted: adjusted,
		QueryIntent:   string(intent),
		Documents:     toDocumentResults(docs),
		Answer:        result.Text,
		Sources:       result.Sources,
	})
}

// retrieveDocs runs retrieval and turns an empty result set into
// core.ErrNoResults so both endpoints share one error path.
func (s *Server) retrieveDocs(ctx context.Context, req searchRequest) ([]core.ScoredDocument, error) {
	docs, err := s.retriever.Retrieve(ctx, req.Query, req.K)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, core.ErrNoResults
	}
	return docs, nil
}

// decodeRequest validates the method, availability, and request body shared
// by both endpoints.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (searchRequest, bool) {
	var req searchRequest

	if r.Method != http.MethodPost {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return req, false
	}
	if s.loadErr != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: s.loadErr.Error()})
		return req, false
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return req, false
	}
	if strings.TrimSpace(req.Query) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "search query is empty"})
		return req, false
	}
	if req.K <= 0 {
		req.K = defaultK
	}

	return req, true
}

func (s *Server) writeRetrieveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrEmptyQuery):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "search query is empty"})
	case errors.Is(err, core.ErrNoResults):
		s.writeJSON(w, http.StatusNotFound, messageResponse{Message: answer.NoRelevantDocumentsMessage})
	case errors.Is(err, core.ErrNotLoaded):
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("retrieval failed", "err", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "retrieval failed"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}
