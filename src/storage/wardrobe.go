package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

const wardrobeColumns = "id, owner_id, name, category, brand, color, season, status, for_sale, created_at"

// ListOwnedItems retrieves every catalog item owned by a user, newest first.
func ListOwnedItems(ctx context.Context, db sqlscan.Querier, ownerID int64) ([]WardrobeItem, error) {
	query := `SELECT ` + wardrobeColumns + ` FROM wardrobe_items WHERE owner_id = ? ORDER BY created_at DESC, id DESC`
	var items []WardrobeItem
	if err := sqlscan.Select(ctx, db, &items, query, ownerID); err != nil {
		return nil, err
	}
	return items, nil
}

// ItemByID retrieves one item scoped to its owner. Returns nil when missing.
func ItemByID(ctx context.Context, db sqlscan.Querier, ownerID, itemID int64) (*WardrobeItem, error) {
	query := `SELECT ` + wardrobeColumns + ` FROM wardrobe_items WHERE owner_id = ? AND id = ?`
	var item WardrobeItem
	err := sqlscan.Get(ctx, db, &item, query, ownerID, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ItemsByIDs retrieves the owner's items matching ids, preserving the input
// order. Unknown ids are skipped.
func ItemsByIDs(ctx context.Context, db sqlscan.Querier, ownerID int64, ids []int64) ([]WardrobeItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, ownerID)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`SELECT `+wardrobeColumns+` FROM wardrobe_items WHERE owner_id = ? AND id IN (%s)`,
		strings.Join(placeholders, ", "))

	var items []WardrobeItem
	if err := sqlscan.Select(ctx, db, &items, query, args...); err != nil {
		return nil, err
	}

	byID := make(map[int64]WardrobeItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	ordered := make([]WardrobeItem, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}

// SearchItemsByKeyword performs an exact substring search over name,
// category, brand and color for one owner.
func SearchItemsByKeyword(ctx context.Context, db sqlscan.Querier, ownerID int64, keyword string) ([]WardrobeItem, error) {
	pattern := "%" + keyword + "%"
	query := `SELECT ` + wardrobeColumns + ` FROM wardrobe_items
		WHERE owner_id = ? AND (name LIKE ? OR category LIKE ? OR brand LIKE ? OR color LIKE ?)
		ORDER BY created_at DESC, id DESC`
	var items []WardrobeItem
	if err := sqlscan.Select(ctx, db, &items, query, ownerID, pattern, pattern, pattern, pattern); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem inserts a catalog item and fills in its generated id.
func CreateItem(ctx context.Context, db Execer, item *WardrobeItem) error {
	if item.Status == "" {
		item.Status = ItemStatusInCloset
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	query := `INSERT INTO wardrobe_items (owner_id, name, category, brand, color, season, status, for_sale, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, query,
		item.OwnerID, item.Name, item.Category, item.Brand, item.Color, item.Season, item.Status, item.ForSale, item.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = id
	return nil
}
