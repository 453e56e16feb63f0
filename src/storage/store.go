package storage

import "context"

// Store bundles the package-level queries behind one handle so callers can
// depend on a small interface of the methods they use.
type Store struct {
	db *DB
}

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListOwnedItems(ctx context.Context, ownerID int64) ([]WardrobeItem, error) {
	return ListOwnedItems(ctx, s.db.DB(), ownerID)
}

func (s *Store) ItemByID(ctx context.Context, ownerID, itemID int64) (*WardrobeItem, error) {
	return ItemByID(ctx, s.db.DB(), ownerID, itemID)
}

func (s *Store) ItemsByIDs(ctx context.Context, ownerID int64, ids []int64) ([]WardrobeItem, error) {
	return ItemsByIDs(ctx, s.db.DB(), ownerID, ids)
}

func (s *Store) SearchItemsByKeyword(ctx context.Context, ownerID int64, keyword string) ([]WardrobeItem, error) {
	return SearchItemsByKeyword(ctx, s.db.DB(), ownerID, keyword)
}

func (s *Store) CreateItem(ctx context.Context, item *WardrobeItem) error {
	return CreateItem(ctx, s.db.DB(), item)
}

func (s *Store) GetUser(ctx context.Context, userID int64) (*User, error) {
	return GetUser(ctx, s.db.DB(), userID)
}

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	return CreateUser(ctx, s.db.DB(), user)
}

func (s *Store) FindEventOnDate(ctx context.Context, ownerID int64, date string) (*CalendarEvent, error) {
	return FindEventOnDate(ctx, s.db.DB(), ownerID, date)
}

func (s *Store) CreateEvent(ctx context.Context, ev *CalendarEvent) error {
	return CreateEvent(ctx, s.db.DB(), ev)
}

func (s *Store) FindOrCreateThread(ctx context.Context, ownerID int64) (*Thread, error) {
	return FindOrCreateThread(ctx, s.db.DB(), ownerID)
}

func (s *Store) AppendMessage(ctx context.Context, msg *Message) error {
	return AppendMessage(ctx, s.db.DB(), msg)
}

func (s *Store) RecentMessages(ctx context.Context, threadID string, limit int) ([]Message, error) {
	return RecentMessages(ctx, s.db.DB(), threadID, limit)
}
