package driving

import (
	"context"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

// IngestService manages the document collection.
type IngestService interface {
	// Ingest extracts, chunks, embeds, and indexes one document.
	// Re-ingesting an existing sourceID replaces its previous chunks.
	// Returns the number of chunks created. On any failure nothing is
	// written to the index.
	Ingest(ctx context.Context, sourceID string, raw []byte, format domain.Format) (int, error)

	// Remove deletes all chunks for the source and returns how many
	// were removed. Removing an absent source returns 0, not an error,
	// so callers can safely retry after an ambiguous response.
	Remove(ctx context.Context, sourceID string) (int, error)

	// ListSources returns the distinct source IDs in the collection.
	ListSources(ctx context.Context) ([]string, error)

	// Stats summarises the collection.
	Stats(ctx context.Context) (domain.Stats, error)
}
