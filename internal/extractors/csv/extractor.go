// Package csv extracts text from comma-separated tabular documents.
package csv

import (
	"bytes"
	"context"
	encsv "encoding/csv"
	"fmt"
	"strings"

	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles CSV documents. Each row becomes one line with the
// header repeated as "column: value" pairs, which reads better to both
// the embedder and the language model than a bare comma dump.
type Extractor struct{}

// New creates a new CSV extractor.
func New() *Extractor {
	return &Extractor{}
}

// Formats returns the formats this extractor handles.
func (e *Extractor) Formats() []domain.Format {
	return []domain.Format{domain.FormatCSV}
}

// Extract converts CSV rows into labelled text lines.
func (e *Extractor) Extract(_ context.Context, raw []byte) (string, error) {
	reader := encsv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrExtraction, err)
	}
	if len(records) == 0 {
		return "", nil
	}

	header := records[0]
	var b strings.Builder

	for _, record := range records[1:] {
		pairs := make([]string, 0, len(record))
		for i, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if i < len(header) && strings.TrimSpace(header[i]) != "" {
				pairs = append(pairs, strings.TrimSpace(header[i])+": "+field)
			} else {
				pairs = append(pairs, field)
			}
		}
		if len(pairs) > 0 {
			b.WriteString(strings.Join(pairs, ", "))
			b.WriteString("\n")
		}
	}

	// A header-only file still carries the column names.
	if b.Len() == 0 {
		return strings.Join(header, ", "), nil
	}

	return strings.TrimSpace(b.String()), nil
}
