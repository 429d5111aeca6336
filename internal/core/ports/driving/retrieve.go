package driving

import (
	"context"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

// RetrievalService answers documents-only queries.
type RetrievalService interface {
	// Retrieve embeds the query and returns up to topK passages ranked
	// by similarity. topK <= 0 selects the configured default. An empty
	// index yields an empty slice, never an error.
	Retrieve(ctx context.Context, query string, topK int) ([]domain.Passage, error)
}
