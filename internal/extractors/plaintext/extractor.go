// Package plaintext extracts text from plain text and JSON documents.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents. JSON is ingested verbatim; its
// structure is worth more to retrieval than a lossy flattening.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Formats returns the formats this extractor handles.
func (e *Extractor) Formats() []domain.Format {
	return []domain.Format{domain.FormatText, domain.FormatJSON}
}

// Extract converts raw bytes to text.
func (e *Extractor) Extract(_ context.Context, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", domain.ErrExtraction
	}
	// Strip a UTF-8 byte order mark if present.
	return strings.TrimPrefix(string(raw), "\uFEFF"), nil
}
