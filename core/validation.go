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

import "fmt"

// ErrInvalidDocument indicates a Document failed validation.
var ErrInvalidDocument = fmt.Errorf("invalid document")

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - SourceID must not be empty
//   - OriginalText must not be empty
//   - Type must be one of plan, interview, biography
//
// NOT validated:
//   - Interview fields (present only on interview documents)
//   - CandidateName/Party/Slate (some biography passages predate party data)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.SourceID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptySourceID)
	}

	if doc.OriginalText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyOriginalText)
	}

	if err := ValidateDocType(doc.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ValidateDocType validates that a DocType has a recognized value.
func ValidateDocType(t DocType) error {
	switch t {
	case DocTypePlan, DocTypeInterview, DocTypeBiography:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownDocType, t)
}
