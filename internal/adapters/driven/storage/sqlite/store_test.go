package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testChunk(id, sourceID string, index int, embedding []float32) domain.Chunk {
	return domain.Chunk{
		ID:        id,
		SourceID:  sourceID,
		Index:     index,
		Content:   "content of " + id,
		Embedding: embedding,
		Metadata:  map[string]any{"format": "txt"},
	}
}

func TestNewIndex_MigratesIdempotently(t *testing.T) {
	dir := t.TempDir()

	idx, err := NewIndex(dir)
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	// Reopening must not re-apply migrations.
	idx, err = NewIndex(dir)
	require.NoError(t, err)
	require.NoError(t, idx.Close())
}

func TestIndex_InsertAndSearch(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("c1", "a.txt", 0, []float32{0, 1}),
		testChunk("c2", "a.txt", 1, []float32{1, 0}),
		testChunk("c3", "a.txt", 2, []float32{0.7, 0.7}),
	}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)

	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "c2", hits[0].Chunk.ID)
	assert.Equal(t, "c3", hits[1].Chunk.ID)
	assert.Equal(t, "c1", hits[2].Chunk.ID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)

	// Stored fields round-trip.
	assert.Equal(t, "a.txt", hits[0].Chunk.SourceID)
	assert.Equal(t, 1, hits[0].Chunk.Index)
	assert.Equal(t, "content of c2", hits[0].Chunk.Content)
	assert.Equal(t, "txt", hits[0].Chunk.Metadata["format"])
}

func TestIndex_Search_TieBreaksByInsertionOrder(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("first", "a", 0, []float32{1, 0}),
		testChunk("second", "b", 0, []float32{1, 0}),
	}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 2)

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "first", hits[0].Chunk.ID)
	assert.Equal(t, "second", hits[1].Chunk.ID)
}

func TestIndex_Search_InvalidTopK(t *testing.T) {
	idx := newTestIndex(t)

	_, err := idx.Search(context.Background(), []float32{1, 0}, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndex_Search_OmitsEmbeddings(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("c1", "a", 0, []float32{1, 0}),
	}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Nil(t, hits[0].Chunk.Embedding)
}

func TestIndex_DeleteBySource(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("c1", "keep.txt", 0, []float32{1, 0}),
		testChunk("c2", "drop.txt", 0, []float32{1, 0}),
		testChunk("c3", "drop.txt", 1, []float32{1, 0}),
	}))

	removed, err := idx.DeleteBySource(ctx, "drop.txt")

	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIndex_DeleteBySource_Absent(t *testing.T) {
	idx := newTestIndex(t)

	removed, err := idx.DeleteBySource(context.Background(), "ghost.txt")

	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestIndex_ReplaceSource(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("old1", "doc.txt", 0, []float32{1, 0}),
		testChunk("old2", "doc.txt", 1, []float32{1, 0}),
		testChunk("other", "other.txt", 0, []float32{1, 0}),
	}))

	removed, err := idx.ReplaceSource(ctx, "doc.txt", []domain.Chunk{
		testChunk("new1", "doc.txt", 0, []float32{0, 1}),
		testChunk("new2", "doc.txt", 1, []float32{0, 1}),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	hits, err := idx.Search(ctx, []float32{0, 1}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "new1", hits[0].Chunk.ID)
	assert.Equal(t, "new2", hits[1].Chunk.ID)
}

func TestIndex_ReplaceSource_NewSource(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	removed, err := idx.ReplaceSource(ctx, "fresh.txt", []domain.Chunk{
		testChunk("c1", "fresh.txt", 0, []float32{1, 0}),
	})

	require.NoError(t, err)
	assert.Zero(t, removed)

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIndex_ListSources(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("c1", "zeta.txt", 0, []float32{1}),
		testChunk("c2", "alpha.txt", 0, []float32{1}),
		testChunk("c3", "zeta.txt", 1, []float32{1}),
	}))

	sources, err := idx.ListSources(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.txt", "zeta.txt"}, sources)
}

func TestIndex_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	idx, err := NewIndex(dir)
	require.NoError(t, err)
	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("c1", "doc.txt", 0, []float32{0.5, 0.5}),
	}))
	require.NoError(t, idx.Close())

	idx, err = NewIndex(dir)
	require.NoError(t, err)
	defer idx.Close()

	hits, err := idx.Search(ctx, []float32{0.5, 0.5}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c1", hits[0].Chunk.ID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
}

func TestFloat32SliceRoundTrip(t *testing.T) {
	original := []float32{0.1, -2.5, 3.75, 0}

	restored := bytesToFloat32Slice(float32SliceToBytes(original))

	assert.Equal(t, original, restored)
}
