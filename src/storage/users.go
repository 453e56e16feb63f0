package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// GetUser retrieves a user profile by id. Returns nil when missing.
func GetUser(ctx context.Context, db sqlscan.Querier, userID int64) (*User, error) {
	query := `SELECT id, nickname, address, eco_points, carbon_saved_kg FROM users WHERE id = ?`
	var u User
	err := sqlscan.Get(ctx, db, &u, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user profile.
func CreateUser(ctx context.Context, db Execer, user *User) error {
	query := `INSERT INTO users (id, nickname, address, eco_points, carbon_saved_kg) VALUES (?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, user.ID, user.Nickname, user.Address, user.EcoPoints, user.CarbonSavedKg)
	return err
}
