package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nimbleworks/dochat/internal/chunker"
	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
	"github.com/nimbleworks/dochat/internal/core/ports/driving"
	"github.com/nimbleworks/dochat/internal/extractors"
	"github.com/nimbleworks/dochat/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService turns raw documents into indexed, embedded chunks.
//
// Operations on the same source are serialised: concurrent re-ingestion
// of one document cannot interleave, while different sources proceed in
// parallel.
type IngestService struct {
	index      driven.VectorIndex
	embedder   driven.EmbeddingService
	extractors *extractors.Registry
	chunker    *chunker.Chunker
	maxBytes   int

	mu          sync.Mutex
	sourceLocks map[string]*sync.Mutex
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
	registry *extractors.Registry,
	ch *chunker.Chunker,
	maxBytes int,
) *IngestService {
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxDocumentBytes
	}
	return &IngestService{
		index:       index,
		embedder:    embedder,
		extractors:  registry,
		chunker:     ch,
		maxBytes:    maxBytes,
		sourceLocks: make(map[string]*sync.Mutex),
	}
}

// lockSource returns the mutex serialising writes for one source.
// Locks are kept for the process lifetime; the source set is small.
func (s *IngestService) lockSource(sourceID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.sourceLocks[sourceID]
	if !ok {
		l = &sync.Mutex{}
		s.sourceLocks[sourceID] = l
	}
	return l
}

// Ingest extracts, chunks, embeds, and indexes one document. Re-ingesting
// an existing source replaces its previous chunks atomically. On any
// failure nothing is written to the index.
func (s *IngestService) Ingest(ctx context.Context, sourceID string, raw []byte, format domain.Format) (int, error) {
	if strings.TrimSpace(sourceID) == "" {
		return 0, fmt.Errorf("%w: source id is empty", domain.ErrInvalidInput)
	}
	if len(raw) > s.maxBytes {
		return 0, fmt.Errorf("%w: %d bytes exceeds limit of %d",
			domain.ErrDocumentTooLarge, len(raw), s.maxBytes)
	}

	extractor, err := s.extractors.Get(format)
	if err != nil {
		return 0, err
	}

	text, err := extractor.Extract(ctx, raw)
	if err != nil {
		return 0, err
	}

	pieces := s.chunker.Split(text)
	if len(pieces) == 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, sourceID)
	}
	logger.Debug("ingest: %s split into %d chunks", sourceID, len(pieces))

	vectors, err := s.embedder.EmbedBatch(ctx, pieces)
	if err != nil {
		return 0, err
	}

	chunks := make([]domain.Chunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = domain.Chunk{
			ID:        uuid.NewString(),
			SourceID:  sourceID,
			Index:     i,
			Content:   content,
			Embedding: vectors[i],
			Metadata: map[string]any{
				"format": string(format),
			},
		}
	}

	lock := s.lockSource(sourceID)
	lock.Lock()
	defer lock.Unlock()

	removed, err := s.index.ReplaceSource(ctx, sourceID, chunks)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.Debug("ingest: %s replaced %d previous chunks", sourceID, removed)
	}

	return len(chunks), nil
}

// Remove deletes all chunks for the source. Removing an absent source
// returns 0, not an error.
func (s *IngestService) Remove(ctx context.Context, sourceID string) (int, error) {
	if strings.TrimSpace(sourceID) == "" {
		return 0, fmt.Errorf("%w: source id is empty", domain.ErrInvalidInput)
	}

	lock := s.lockSource(sourceID)
	lock.Lock()
	defer lock.Unlock()

	return s.index.DeleteBySource(ctx, sourceID)
}

// ListSources returns the distinct source IDs in the collection.
func (s *IngestService) ListSources(ctx context.Context) ([]string, error) {
	return s.index.ListSources(ctx)
}

// Stats summarises the collection.
func (s *IngestService) Stats(ctx context.Context) (domain.Stats, error) {
	total, err := s.index.Count(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	sources, err := s.index.ListSources(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{
		TotalChunks:    total,
		TotalDocuments: len(sources),
		Documents:      sources,
	}, nil
}
