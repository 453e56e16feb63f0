package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihyunk/stylemate/src/storage"
	"github.com/jihyunk/stylemate/src/vectorindex"
)

type stubEmbedder struct {
	vector []float32
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) []float32 {
	return s.vector
}

type stubIndex struct {
	hits []vectorindex.Hit
	err  error
}

func (s *stubIndex) Search(ctx context.Context, ownerID int64, vector []float32, k int) ([]vectorindex.Hit, error) {
	return s.hits, s.err
}

type stubStore struct {
	items    map[int64]storage.WardrobeItem
	keyword  []storage.WardrobeItem
	err      error
	gotIDs   []int64
	gotQuery string
}

func (s *stubStore) ItemsByIDs(ctx context.Context, ownerID int64, ids []int64) ([]storage.WardrobeItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotIDs = ids
	var out []storage.WardrobeItem
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubStore) SearchItemsByKeyword(ctx context.Context, ownerID int64, keyword string) ([]storage.WardrobeItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotQuery = keyword
	return s.keyword, nil
}

func item(id int64, name, season string) storage.WardrobeItem {
	return storage.WardrobeItem{ID: id, Name: name, Category: "상의", Season: season}
}

func TestSearchMergesAndDeduplicates(t *testing.T) {
	store := &stubStore{
		items: map[int64]storage.WardrobeItem{
			1: item(1, "화이트 셔츠", ""),
			2: item(2, "블랙 니트", ""),
		},
		keyword: []storage.WardrobeItem{
			item(2, "블랙 니트", ""), // overlaps vector hit
			item(3, "자라 자켓", ""),
		},
	}
	engine := NewEngine(
		&stubEmbedder{vector: []float32{0.1, 0.2}},
		&stubIndex{hits: []vectorindex.Hit{{ItemID: 1}, {ItemID: 2}}},
		store, nil,
	)

	got, err := engine.Search(context.Background(), 7, "셔츠", "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Vector hits lead, keyword-only matches follow.
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(3), got[2].ID)
	assert.Equal(t, []int64{1, 2}, store.gotIDs)
	assert.Equal(t, "셔츠", store.gotQuery)
}

func TestSearchVectorLegDegradesGracefully(t *testing.T) {
	keywordOnly := []storage.WardrobeItem{item(3, "자라 자켓", "")}

	t.Run("embedding unavailable", func(t *testing.T) {
		store := &stubStore{keyword: keywordOnly}
		engine := NewEngine(&stubEmbedder{vector: nil}, &stubIndex{}, store, nil)

		got, err := engine.Search(context.Background(), 7, "자켓", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Nil(t, store.gotIDs)
	})

	t.Run("vector search error", func(t *testing.T) {
		store := &stubStore{keyword: keywordOnly}
		engine := NewEngine(
			&stubEmbedder{vector: []float32{0.1}},
			&stubIndex{err: errors.New("index down")},
			store, nil,
		)

		got, err := engine.Search(context.Background(), 7, "자켓", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
	})
}

func TestSearchStorageErrorsPropagate(t *testing.T) {
	store := &stubStore{err: errors.New("db down")}
	engine := NewEngine(&stubEmbedder{vector: nil}, &stubIndex{}, store, nil)

	_, err := engine.Search(context.Background(), 7, "자켓", "")
	assert.ErrorContains(t, err, "db down")
}

func TestSearchSeasonFilter(t *testing.T) {
	store := &stubStore{
		keyword: []storage.WardrobeItem{
			item(1, "린넨 셔츠", "여름"),
			item(2, "울 코트", "겨울"),
			item(3, "데님 팬츠", "사계절"),
			item(4, "가디건", "봄,가을"),
		},
	}
	engine := NewEngine(&stubEmbedder{}, &stubIndex{}, store, nil)

	t.Run("keeps matching and all-season items", func(t *testing.T) {
		got, err := engine.Search(context.Background(), 7, "옷", "봄,가을")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(3), got[0].ID)
		assert.Equal(t, int64(4), got[1].ID)
	})

	t.Run("drops filter when it empties results", func(t *testing.T) {
		winterOnly := &stubStore{keyword: []storage.WardrobeItem{item(2, "울 코트", "겨울")}}
		e := NewEngine(&stubEmbedder{}, &stubIndex{}, winterOnly, nil)

		got, err := e.Search(context.Background(), 7, "코트", "여름")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})
}

func TestSeasonMatches(t *testing.T) {
	tests := []struct {
		itemSeason    string
		currentSeason string
		expected      bool
	}{
		{"", "겨울", true},
		{"사계절", "여름", true},
		{"여름", "여름", true},
		{"겨울", "여름", false},
		{"가을", "봄,가을", true},
		{"봄,가을", "가을", true},
		{"여름", "봄,가을,겨울", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SeasonMatches(tt.itemSeason, tt.currentSeason),
			"item %q current %q", tt.itemSeason, tt.currentSeason)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		item     storage.WardrobeItem
		expected string
	}{
		{
			name:     "real name kept",
			item:     storage.WardrobeItem{Name: "레드 체크 남방", Category: "상의", Color: "레드"},
			expected: "레드 체크 남방",
		},
		{
			name:     "missing name synthesized",
			item:     storage.WardrobeItem{Category: "상의", Color: "화이트"},
			expected: "화이트 상의",
		},
		{
			name:     "unknown name synthesized",
			item:     storage.WardrobeItem{Name: "Unknown", Category: "하의", Color: "블랙"},
			expected: "블랙 하의",
		},
		{
			name:     "lazy name equal to category synthesized",
			item:     storage.WardrobeItem{Name: "상의", Category: "상의", Color: "네이비"},
			expected: "네이비 상의",
		},
		{
			name:     "no color falls back to category",
			item:     storage.WardrobeItem{Category: "아우터"},
			expected: "아우터",
		},
		{
			name:     "everything missing",
			item:     storage.WardrobeItem{},
			expected: "의류",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayName(tt.item))
		})
	}
}

func TestDisplayBrand(t *testing.T) {
	assert.Equal(t, "Nike", DisplayBrand("Nike"))
	assert.Equal(t, "", DisplayBrand("Generic"))
	assert.Equal(t, "", DisplayBrand("brand"))
	assert.Equal(t, "", DisplayBrand(""))
}
