package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
	"github.com/nimbleworks/dochat/internal/core/ports/driving"
	"github.com/nimbleworks/dochat/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService answers documents-only queries against the index.
type RetrievalService struct {
	index       driven.VectorIndex
	embedder    driven.EmbeddingService
	defaultTopK int
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(index driven.VectorIndex, embedder driven.EmbeddingService, defaultTopK int) *RetrievalService {
	if defaultTopK <= 0 {
		defaultTopK = domain.DefaultTopK
	}
	return &RetrievalService{
		index:       index,
		embedder:    embedder,
		defaultTopK: defaultTopK,
	}
}

// Retrieve embeds the query and returns up to topK passages ranked by
// similarity. An empty index yields an empty slice, never an error.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, topK int) ([]domain.Passage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = s.defaultTopK
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := s.index.Search(ctx, vector, topK)
	if err != nil {
		return nil, err
	}
	logger.Debug("retrieve: %d hits for top_k=%d", len(hits), topK)

	passages := make([]domain.Passage, len(hits))
	for i, hit := range hits {
		passages[i] = domain.Passage{
			Content:    hit.Chunk.Content,
			SourceID:   hit.Chunk.SourceID,
			ChunkIndex: hit.Chunk.Index,
			Similarity: hit.Similarity,
		}
	}
	return passages, nil
}
