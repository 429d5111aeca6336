package driven

import (
	"context"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

// Extractor converts a raw document of a specific format into plain text.
// Each extractor handles one or more declared formats; dispatch is by
// format, not by sniffing.
type Extractor interface {
	// Formats returns the formats this extractor handles.
	Formats() []domain.Format

	// Extract converts raw bytes to text. A parse failure is reported
	// as an error wrapping domain.ErrExtraction; extractors never
	// return partial text alongside an error.
	Extract(ctx context.Context, raw []byte) (string, error)
}
