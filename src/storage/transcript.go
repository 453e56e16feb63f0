package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// FindOrCreateThread returns the user's 1:1 assistant thread, creating it
// lazily on first use.
func FindOrCreateThread(ctx context.Context, db ExecQuerier, ownerID int64) (*Thread, error) {
	query := `SELECT id, owner_id, created_at FROM threads WHERE owner_id = ?`
	var th Thread
	err := sqlscan.Get(ctx, db, &th, query, ownerID)
	if err == nil {
		return &th, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	th = Thread{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
	insert := `INSERT INTO threads (id, owner_id, created_at) VALUES (?, ?, ?)`
	if _, err := db.ExecContext(ctx, insert, th.ID, th.OwnerID, th.CreatedAt); err != nil {
		return nil, err
	}
	return &th, nil
}

// AppendMessage persists one message. Messages are append-only; there is no
// update or delete path.
func AppendMessage(ctx context.Context, db Execer, msg *Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Type == "" {
		msg.Type = MessageTypeText
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	query := `INSERT INTO messages (id, thread_id, sender_id, type, body, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, msg.ID, msg.ThreadID, msg.SenderID, msg.Type, msg.Body, msg.ImageURL, msg.CreatedAt)
	return err
}

// RecentMessages retrieves the last limit messages of a thread in
// chronological order.
func RecentMessages(ctx context.Context, db sqlscan.Querier, threadID string, limit int) ([]Message, error) {
	query := `SELECT id, thread_id, sender_id, type, body, image_url, created_at FROM (
			SELECT id, thread_id, sender_id, type, body, image_url, created_at
			FROM messages WHERE thread_id = ?
			ORDER BY created_at DESC, id DESC LIMIT ?
		) ORDER BY created_at ASC, id ASC`
	var msgs []Message
	if err := sqlscan.Select(ctx, db, &msgs, query, threadID, limit); err != nil {
		return nil, err
	}
	return msgs, nil
}
