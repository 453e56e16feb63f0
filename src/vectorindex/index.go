// Package vectorindex stores per-item embedding vectors partitioned by owner
// and answers top-K similarity queries.
package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"

	chromem "github.com/philippgille/chromem-go"
)

// Hit is a single similarity-search result.
type Hit struct {
	ItemID      int64
	Description string
	Score       float32
}

// Index wraps chromem-go with one collection per owner. Vectors are computed
// by the caller; the collection's embedding function is never invoked.
type Index struct {
	mu     sync.RWMutex
	db     *chromem.DB
	logger *slog.Logger
}

// externalEmbedding satisfies chromem's embedding-function requirement.
// Every document and query carries a pre-computed vector, so a call here
// means a caller forgot one.
func externalEmbedding(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("vectorindex: embeddings are computed externally")
}

// New creates an in-memory index.
func New(logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{db: chromem.NewDB(), logger: logger.With("component", "vectorindex")}
}

// NewPersistent creates (or reopens) an index persisted under dir.
func NewPersistent(dir string, logger *slog.Logger) (*Index, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create vectorindex dir: %w", err)
	}
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("open vectorindex: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{db: db, logger: logger.With("component", "vectorindex")}, nil
}

func collectionName(ownerID int64) string {
	return fmt.Sprintf("owner_%d_items", ownerID)
}

func (ix *Index) collection(ownerID int64) *chromem.Collection {
	name := collectionName(ownerID)
	col := ix.db.GetCollection(name, externalEmbedding)
	if col == nil {
		var err error
		col, err = ix.db.CreateCollection(name, nil, externalEmbedding)
		if err != nil {
			ix.logger.Error("failed to create collection", "owner", ownerID, "error", err)
			return nil
		}
	}
	return col
}

// Upsert indexes (or re-indexes) one item. An existing record with the same
// item id is replaced; there is no versioning.
func (ix *Index) Upsert(ctx context.Context, ownerID, itemID int64, vector []float32, description string) error {
	if len(vector) == 0 {
		return errors.New("vectorindex: empty vector")
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	col := ix.collection(ownerID)
	if col == nil {
		return fmt.Errorf("vectorindex: nil collection for owner %d", ownerID)
	}
	return col.AddDocument(ctx, chromem.Document{
		ID:        strconv.FormatInt(itemID, 10),
		Content:   description,
		Embedding: vector,
		Metadata:  map[string]string{"owner": strconv.FormatInt(ownerID, 10)},
	})
}

// Search returns up to k items owned by ownerID, most similar first. An
// owner with no indexed items yields an empty result, not an error.
func (ix *Index) Search(ctx context.Context, ownerID int64, vector []float32, k int) ([]Hit, error) {
	if len(vector) == 0 {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	col := ix.collection(ownerID)
	if col == nil {
		return nil, nil
	}

	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	// chromem occasionally rejects k == count right after concurrent writes;
	// step down rather than fail the whole search.
	var results []chromem.Result
	var err error
	for attempt := k; attempt > 0; attempt-- {
		results, err = col.QueryEmbedding(ctx, vector, attempt, nil, nil)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		id, convErr := strconv.ParseInt(r.ID, 10, 64)
		if convErr != nil {
			continue
		}
		hits = append(hits, Hit{ItemID: id, Description: r.Content, Score: r.Similarity})
	}
	return hits, nil
}
