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


package storage

import "errors"

var (
	// ErrArtifactMissing is returned when the corpus artifact has no manifest,
	// meaning no corpus was ever written at the given path.
	ErrArtifactMissing = errors.New("corpus artifact missing")

	// ErrDuplicateSourceID is returned when appending a document whose source
	// ID already exists in the corpus.
	ErrDuplicateSourceID = errors.New("duplicate document source ID")

	// ErrDimensionMismatch is returned when appending an embedding whose
	// length differs from the corpus dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrVectorizerMissing is returned when loading an artifact that has rows
	// but no stored vectorizer state.
	ErrVectorizerMissing = errors.New("lexical vectorizer state missing")
)
