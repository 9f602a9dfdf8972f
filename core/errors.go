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


package core

import "errors"

// Domain errors
var (
	// ErrEmptyQuery indicates the caller submitted an empty or blank query.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrNoResults indicates retrieval completed but matched no documents.
	// It is a "not found" signal, not a failure.
	ErrNoResults = errors.New("no relevant documents found")

	// ErrNotLoaded indicates the corpus artifact was never loaded, leaving
	// the system in a non-serving state.
	ErrNotLoaded = errors.New("corpus not loaded")

	// ErrCorpusMisaligned indicates the document, lexical, and vector rows of
	// the corpus artifact disagree in length. Fatal at load time.
	ErrCorpusMisaligned = errors.New("corpus and index rows are misaligned")

	// ErrGenerationFailed indicates the external generation service failed
	// after the full retry budget. Recovered internally via fallback synthesis.
	ErrGenerationFailed = errors.New("generation service failed")

	// ErrEmptySourceID indicates a document has no source ID.
	ErrEmptySourceID = errors.New("document source ID cannot be empty")

	// ErrEmptyOriginalText indicates a document has no text.
	ErrEmptyOriginalText = errors.New("document text cannot be empty")

	// ErrUnknownDocType indicates an unrecognized document type value.
	ErrUnknownDocType = errors.New("unknown document type")
)
