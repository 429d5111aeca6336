package driven

import (
	"context"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

// VectorIndex is the persistent store of embedded chunks supporting
// similarity search. A returned nil error from a write implies the data
// is durable under normal process termination.
//
// Reads may proceed concurrently; writes touching one source are
// serialised against each other by the ingestion service, so the index
// itself only needs each operation to be individually atomic.
type VectorIndex interface {
	// Insert appends chunks as one batch. All-or-nothing: on error,
	// none of the chunks are stored.
	Insert(ctx context.Context, chunks []domain.Chunk) error

	// Search returns up to topK entries ranked by cosine similarity in
	// descending order. Ties break by insertion order, earlier first.
	// topK <= 0 is a contract violation and returns an error.
	Search(ctx context.Context, query []float32, topK int) ([]VectorHit, error)

	// DeleteBySource removes all entries for the source and returns how
	// many were removed. Deleting an absent source returns 0, not an error.
	DeleteBySource(ctx context.Context, sourceID string) (int, error)

	// ReplaceSource atomically deletes the source's existing entries and
	// inserts the given chunks. No read interleaved with the call can
	// observe the source half-replaced. Returns the removed count.
	ReplaceSource(ctx context.Context, sourceID string, chunks []domain.Chunk) (int, error)

	// Count returns the total number of stored entries.
	Count(ctx context.Context) (int, error)

	// ListSources returns the distinct source IDs present in the index.
	ListSources(ctx context.Context) ([]string, error)

	// Close releases resources.
	Close() error
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// Chunk is the stored entry. Its Embedding field is not populated
	// on search results.
	Chunk domain.Chunk

	// Similarity is the cosine similarity score (-1 to 1).
	Similarity float64
}
