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

// Package retrieval provides hybrid retrieval over the candidate corpus.
//
// The Retriever type implements a multi-stage pipeline that combines:
//   - An exact candidate-name pass, which takes precedence when it matches
//   - A lexical cosine-similarity gate over the rewritten query
//   - Semantic nearest-neighbor search using vector embeddings
//
// Results are scored with the composite relevance model and ranked by
// intent-weighted relevance, with distance adjusted by relevance as the
// tie-breaker.
package retrieval
