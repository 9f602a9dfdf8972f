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


// Package ai provides abstractions for the AI services used by Candidex.
//
// It defines interfaces for text embeddings and answer generation, letting
// the retrieval and synthesis logic depend on abstractions rather than on a
// concrete model server.
//
// The package includes two implementation sub-packages:
//
//   - ai/ollama: Production implementation against an Ollama server
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (ollama.NewProvider, ollama.NewEmbedder, ...) return
// interface types to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder, mock.NewMockGenerator) return concrete types so
// tests can inject behavior and assert on call counts.
//
//	provider, err := ollama.NewProvider(ai.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "proposals rafael correa")
//	text, err := provider.Generator().Generate(ctx, prompt)
package ai
