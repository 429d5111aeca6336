// Package memory provides an in-memory VectorIndex for tests and
// ephemeral use. It mirrors the semantics of the SQLite adapter but
// nothing survives the process.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
	"github.com/nimbleworks/dochat/internal/vectormath"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is one stored chunk with its insertion sequence number.
type entry struct {
	chunk domain.Chunk
	seq   int64
}

// Index is an in-memory vector index. Safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	entries []entry
	nextSeq int64
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{}
}

// Insert appends chunks as one batch.
func (idx *Index) Insert(_ context.Context, chunks []domain.Chunk) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.insertLocked(chunks)
	return nil
}

func (idx *Index) insertLocked(chunks []domain.Chunk) {
	for _, chunk := range chunks {
		idx.entries = append(idx.entries, entry{chunk: chunk, seq: idx.nextSeq})
		idx.nextSeq++
	}
}

// Search returns up to topK entries by cosine similarity, ties broken
// by insertion order.
func (idx *Index) Search(_ context.Context, query []float32, topK int) ([]driven.VectorHit, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrInvalidInput, topK)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	type scored struct {
		hit driven.VectorHit
		seq int64
	}

	hits := make([]scored, 0, len(idx.entries))
	for _, e := range idx.entries {
		sim := vectormath.Cosine(query, e.chunk.Embedding)
		chunk := e.chunk
		chunk.Embedding = nil
		hits = append(hits, scored{
			hit: driven.VectorHit{Chunk: chunk, Similarity: sim},
			seq: e.seq,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].hit.Similarity != hits[j].hit.Similarity {
			return hits[i].hit.Similarity > hits[j].hit.Similarity
		}
		return hits[i].seq < hits[j].seq
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}

	result := make([]driven.VectorHit, len(hits))
	for i, h := range hits {
		result[i] = h.hit
	}
	return result, nil
}

// DeleteBySource removes all entries for the source.
func (idx *Index) DeleteBySource(_ context.Context, sourceID string) (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.deleteLocked(sourceID), nil
}

func (idx *Index) deleteLocked(sourceID string) int {
	kept := idx.entries[:0]
	removed := 0
	for _, e := range idx.entries {
		if e.chunk.SourceID == sourceID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	idx.entries = kept
	return removed
}

// ReplaceSource atomically swaps a source's entries for the given chunks.
func (idx *Index) ReplaceSource(_ context.Context, sourceID string, chunks []domain.Chunk) (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	removed := idx.deleteLocked(sourceID)
	idx.insertLocked(chunks)
	return removed, nil
}

// Count returns the number of stored entries.
func (idx *Index) Count(_ context.Context) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries), nil
}

// ListSources returns the distinct source IDs in sorted order.
func (idx *Index) ListSources(_ context.Context) ([]string, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	seen := make(map[string]struct{})
	var sources []string
	for _, e := range idx.entries {
		if _, ok := seen[e.chunk.SourceID]; ok {
			continue
		}
		seen[e.chunk.SourceID] = struct{}{}
		sources = append(sources, e.chunk.SourceID)
	}
	sort.Strings(sources)
	return sources, nil
}

// Close releases resources (none for the in-memory index).
func (idx *Index) Close() error {
	return nil
}
