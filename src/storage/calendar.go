package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// FindEventOnDate retrieves the owner's calendar event for an exact
// YYYY-MM-DD date. Returns nil when no event is planned.
func FindEventOnDate(ctx context.Context, db sqlscan.Querier, ownerID int64, date string) (*CalendarEvent, error) {
	query := `SELECT id, owner_id, event_date, title, has_image FROM calendar_events
		WHERE owner_id = ? AND event_date = ? LIMIT 1`
	var ev CalendarEvent
	err := sqlscan.Get(ctx, db, &ev, query, ownerID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ev, nil
}

// CreateEvent inserts a calendar event and fills in its generated id.
func CreateEvent(ctx context.Context, db Execer, ev *CalendarEvent) error {
	query := `INSERT INTO calendar_events (owner_id, event_date, title, has_image) VALUES (?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, query, ev.OwnerID, ev.EventDate, ev.Title, ev.HasImage)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = id
	return nil
}
