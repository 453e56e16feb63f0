// Package retrieval implements hybrid wardrobe search: semantic matches from
// the vector index merged with direct keyword matches from storage, then
// filtered by the current season.
package retrieval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jihyunk/stylemate/src/storage"
	"github.com/jihyunk/stylemate/src/vectorindex"
)

// searchK is the vector-side candidate count per query.
const searchK = 15

// Embedder turns free text into a query vector. A nil or empty vector means
// embedding is unavailable and the vector leg is skipped.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

// Index answers nearest-neighbor queries over one owner's items.
type Index interface {
	Search(ctx context.Context, ownerID int64, vector []float32, k int) ([]vectorindex.Hit, error)
}

// ItemStore is the storage slice the engine reads from.
type ItemStore interface {
	ItemsByIDs(ctx context.Context, ownerID int64, ids []int64) ([]storage.WardrobeItem, error)
	SearchItemsByKeyword(ctx context.Context, ownerID int64, keyword string) ([]storage.WardrobeItem, error)
}

// Engine runs the hybrid search pipeline.
type Engine struct {
	embedder Embedder
	index    Index
	store    ItemStore
	logger   *slog.Logger
}

func NewEngine(embedder Embedder, index Index, store ItemStore, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		embedder: embedder,
		index:    index,
		store:    store,
		logger:   logger.With("component", "retrieval"),
	}
}

// Search merges vector and keyword results for one owner, vector hits first,
// deduplicated by item id. The season filter keeps items wearable in
// currentSeason; when it would empty a non-empty merge the filter is dropped
// rather than returning nothing. Embedding or vector-index failures degrade
// to keyword-only search; storage errors are returned.
func (e *Engine) Search(ctx context.Context, ownerID int64, keyword, currentSeason string) ([]storage.WardrobeItem, error) {
	var merged []storage.WardrobeItem

	if ids := e.vectorCandidates(ctx, ownerID, keyword); len(ids) > 0 {
		items, err := e.store.ItemsByIDs(ctx, ownerID, ids)
		if err != nil {
			return nil, err
		}
		merged = items
	}

	dbMatches, err := e.store.SearchItemsByKeyword(ctx, ownerID, keyword)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool, len(merged))
	for _, item := range merged {
		seen[item.ID] = true
	}
	for _, item := range dbMatches {
		if !seen[item.ID] {
			merged = append(merged, item)
			seen[item.ID] = true
		}
	}

	if currentSeason != "" {
		filtered := make([]storage.WardrobeItem, 0, len(merged))
		for _, item := range merged {
			if SeasonMatches(item.Season, currentSeason) {
				filtered = append(filtered, item)
			}
		}
		if len(filtered) > 0 {
			merged = filtered
		} else if len(merged) > 0 {
			e.logger.Debug("season filter emptied results, keeping unfiltered merge", "season", currentSeason)
		}
	}

	return merged, nil
}

func (e *Engine) vectorCandidates(ctx context.Context, ownerID int64, keyword string) []int64 {
	vector := e.embedder.Embed(ctx, keyword)
	if len(vector) == 0 {
		return nil
	}
	hits, err := e.index.Search(ctx, ownerID, vector, searchK)
	if err != nil {
		e.logger.Warn("vector search failed", "error", err)
		return nil
	}
	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ItemID)
	}
	return ids
}

// SeasonMatches reports whether an item's season tag fits the current
// season. Empty or 사계절 tags always fit; otherwise both sides are split on
// commas and any shared label counts.
func SeasonMatches(itemSeason, currentSeason string) bool {
	itemSeason = strings.TrimSpace(itemSeason)
	if itemSeason == "" || itemSeason == "사계절" {
		return true
	}
	current := make(map[string]bool)
	for _, s := range strings.Split(currentSeason, ",") {
		current[strings.TrimSpace(s)] = true
	}
	for _, s := range strings.Split(itemSeason, ",") {
		if current[strings.TrimSpace(s)] {
			return true
		}
	}
	return false
}
