package vectorindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertAndSearch(t *testing.T) {
	ix := New(nil)
	ctx := context.Background()

	require.NoError(t, ix.Upsert(ctx, 1, 10, []float32{1, 0, 0}, "화이트 기본 티셔츠"))
	require.NoError(t, ix.Upsert(ctx, 1, 11, []float32{0, 1, 0}, "블랙 조거 팬츠"))
	require.NoError(t, ix.Upsert(ctx, 2, 20, []float32{1, 0, 0}, "다른 사용자 옷"))

	hits, err := ix.Search(ctx, 1, []float32{1, 0, 0}, 15)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// Owner partitioning: owner 2's item never appears.
	for _, h := range hits {
		assert.NotEqual(t, int64(20), h.ItemID)
	}
	assert.Equal(t, int64(10), hits[0].ItemID)
	assert.Equal(t, "화이트 기본 티셔츠", hits[0].Description)
}

func TestUpsertReplaces(t *testing.T) {
	ix := New(nil)
	ctx := context.Background()

	require.NoError(t, ix.Upsert(ctx, 1, 10, []float32{1, 0, 0}, "old description"))
	require.NoError(t, ix.Upsert(ctx, 1, 10, []float32{0, 0, 1}, "new description"))

	hits, err := ix.Search(ctx, 1, []float32{0, 0, 1}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "new description", hits[0].Description)
}

func TestSearchEdgeCases(t *testing.T) {
	ix := New(nil)
	ctx := context.Background()

	t.Run("empty vector skips search", func(t *testing.T) {
		hits, err := ix.Search(ctx, 1, nil, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("unknown owner yields empty result", func(t *testing.T) {
		hits, err := ix.Search(ctx, 99, []float32{1, 0, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("k larger than collection is clamped", func(t *testing.T) {
		require.NoError(t, ix.Upsert(ctx, 3, 30, []float32{1, 0, 0}, "only item"))
		hits, err := ix.Search(ctx, 3, []float32{1, 0, 0}, 100)
		require.NoError(t, err)
		assert.Len(t, hits, 1)
	})

	t.Run("empty vector upsert is rejected", func(t *testing.T) {
		assert.Error(t, ix.Upsert(ctx, 1, 40, nil, "desc"))
	})
}
