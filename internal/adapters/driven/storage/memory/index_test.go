package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbleworks/dochat/internal/core/domain"
)

func testChunk(id, sourceID string, index int, embedding []float32) domain.Chunk {
	return domain.Chunk{
		ID:        id,
		SourceID:  sourceID,
		Index:     index,
		Content:   "content of " + id,
		Embedding: embedding,
	}
}

func TestIndex_Search_RanksBySimilarity(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()
	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("c1", "a", 0, []float32{0, 1}),
		testChunk("c2", "a", 1, []float32{1, 0}),
		testChunk("c3", "a", 2, []float32{0.7, 0.7}),
	}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)

	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "c2", hits[0].Chunk.ID)
	assert.Equal(t, "c3", hits[1].Chunk.ID)
	assert.Equal(t, "c1", hits[2].Chunk.ID)
}

func TestIndex_Search_TieBreaksByInsertionOrder(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()
	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("first", "a", 0, []float32{1, 0}),
		testChunk("second", "b", 0, []float32{1, 0}),
		testChunk("third", "c", 0, []float32{1, 0}),
	}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)

	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "first", hits[0].Chunk.ID)
	assert.Equal(t, "second", hits[1].Chunk.ID)
	assert.Equal(t, "third", hits[2].Chunk.ID)
}

func TestIndex_Search_TruncatesToTopK(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()
	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("c1", "a", 0, []float32{1, 0}),
		testChunk("c2", "a", 1, []float32{1, 0}),
		testChunk("c3", "a", 2, []float32{1, 0}),
	}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 2)

	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestIndex_Search_InvalidTopK(t *testing.T) {
	idx := NewIndex()

	_, err := idx.Search(context.Background(), []float32{1, 0}, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndex_Search_OmitsEmbeddings(t *testing.T) {
	idx := NewIndex()
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
	idx := NewIndex()
	ctx := context.Background()
	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("c1", "keep", 0, []float32{1, 0}),
		testChunk("c2", "drop", 0, []float32{1, 0}),
		testChunk("c3", "drop", 1, []float32{1, 0}),
	}))

	removed, err := idx.DeleteBySource(ctx, "drop")

	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIndex_DeleteBySource_Absent(t *testing.T) {
	idx := NewIndex()

	removed, err := idx.DeleteBySource(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestIndex_ReplaceSource(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()
	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("old1", "doc", 0, []float32{1, 0}),
		testChunk("old2", "doc", 1, []float32{1, 0}),
		testChunk("other", "other", 0, []float32{1, 0}),
	}))

	removed, err := idx.ReplaceSource(ctx, "doc", []domain.Chunk{
		testChunk("new1", "doc", 0, []float32{0, 1}),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	sources, err := idx.ListSources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc", "other"}, sources)

	hits, err := idx.Search(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "new1", hits[0].Chunk.ID)
}

func TestIndex_ListSources_SortedAndDistinct(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()
	require.NoError(t, idx.Insert(ctx, []domain.Chunk{
		testChunk("c1", "zeta", 0, []float32{1}),
		testChunk("c2", "alpha", 0, []float32{1}),
		testChunk("c3", "zeta", 1, []float32{1}),
	}))

	sources, err := idx.ListSources(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, sources)
}
