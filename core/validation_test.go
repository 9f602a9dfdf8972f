package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid plan",
			doc: &Document{
				SourceID:      "3_12_5",
				Type:          DocTypePlan,
				OriginalText:  "invest in rural healthcare",
				CandidateName: "Luisa Gonzalez",
			},
			wantErr: nil,
		},
		{
			name: "valid biography without party data",
			doc: &Document{
				SourceID:     "bio_1",
				Type:         DocTypeBiography,
				OriginalText: "born in 1987",
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "empty source id",
			doc: &Document{
				Type:         DocTypePlan,
				OriginalText: "text",
			},
			wantErr: ErrEmptySourceID,
		},
		{
			name: "empty original text",
			doc: &Document{
				SourceID: "3_12_5",
				Type:     DocTypePlan,
			},
			wantErr: ErrEmptyOriginalText,
		},
		{
			name: "unknown type",
			doc: &Document{
				SourceID:     "3_12_5",
				Type:         DocType("pamphlet"),
				OriginalText: "text",
			},
			wantErr: ErrUnknownDocType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateDocType(t *testing.T) {
	for _, valid := range []DocType{DocTypePlan, DocTypeInterview, DocTypeBiography} {
		if err := ValidateDocType(valid); err != nil {
			t.Errorf("ValidateDocType(%q) = %v, want nil", valid, err)
		}
	}

	if err := ValidateDocType(DocType("")); !errors.Is(err, ErrUnknownDocType) {
		t.Errorf("expected ErrUnknownDocType, got %v", err)
	}
}
