package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not re-apply applied versions.
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.DB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUsers(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	missing, err := GetUser(ctx, db.DB(), 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	user := &User{ID: 42, Nickname: "지현", Address: "대전 서구 둔산동", EcoPoints: 120}
	require.NoError(t, CreateUser(ctx, db.DB(), user))

	got, err := GetUser(ctx, db.DB(), 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "지현", got.Nickname)
	assert.Equal(t, int64(120), got.EcoPoints)
}

func TestWardrobeQueries(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []*WardrobeItem{
		{OwnerID: 1, Name: "베이직 셔츠", Category: "상의", Brand: "무신사", Color: "화이트", Season: "봄,가을", CreatedAt: base},
		{OwnerID: 1, Name: "린넨 팬츠", Category: "하의", Brand: "자라", Color: "베이지", Season: "여름", ForSale: true, CreatedAt: base.Add(time.Hour)},
		{OwnerID: 2, Name: "패딩", Category: "아우터", Brand: "노스페이스", Color: "블랙", Season: "겨울", CreatedAt: base},
	}
	for _, it := range items {
		require.NoError(t, CreateItem(ctx, db.DB(), it))
		assert.NotZero(t, it.ID)
	}

	t.Run("list is owner scoped and newest first", func(t *testing.T) {
		owned, err := ListOwnedItems(ctx, db.DB(), 1)
		require.NoError(t, err)
		require.Len(t, owned, 2)
		assert.Equal(t, "린넨 팬츠", owned[0].Name)
		assert.Equal(t, "베이직 셔츠", owned[1].Name)
	})

	t.Run("item by id enforces ownership", func(t *testing.T) {
		got, err := ItemByID(ctx, db.DB(), 1, items[0].ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "베이직 셔츠", got.Name)

		other, err := ItemByID(ctx, db.DB(), 2, items[0].ID)
		require.NoError(t, err)
		assert.Nil(t, other)
	})

	t.Run("items by ids preserves input order", func(t *testing.T) {
		got, err := ItemsByIDs(ctx, db.DB(), 1, []int64{items[1].ID, items[0].ID, 9999})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "린넨 팬츠", got[0].Name)
		assert.Equal(t, "베이직 셔츠", got[1].Name)
	})

	t.Run("keyword search matches name category brand color", func(t *testing.T) {
		byBrand, err := SearchItemsByKeyword(ctx, db.DB(), 1, "자라")
		require.NoError(t, err)
		require.Len(t, byBrand, 1)
		assert.Equal(t, "린넨 팬츠", byBrand[0].Name)

		byColor, err := SearchItemsByKeyword(ctx, db.DB(), 1, "화이트")
		require.NoError(t, err)
		require.Len(t, byColor, 1)

		none, err := SearchItemsByKeyword(ctx, db.DB(), 1, "패딩")
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestCalendar(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	none, err := FindEventOnDate(ctx, db.DB(), 1, "2026-03-14")
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, CreateEvent(ctx, db.DB(), &CalendarEvent{
		OwnerID:   1,
		EventDate: "2026-03-14",
		Title:     "데이트",
		HasImage:  true,
	}))

	got, err := FindEventOnDate(ctx, db.DB(), 1, "2026-03-14")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "데이트", got.Title)
	assert.True(t, got.HasImage)

	other, err := FindEventOnDate(ctx, db.DB(), 2, "2026-03-14")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestTranscript(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	th, err := FindOrCreateThread(ctx, db.DB(), 7)
	require.NoError(t, err)
	require.NotEmpty(t, th.ID)

	again, err := FindOrCreateThread(ctx, db.DB(), 7)
	require.NoError(t, err)
	assert.Equal(t, th.ID, again.ID)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	bodies := []string{"안녕", "안녕하세요! 무엇을 도와드릴까요?", "오늘 뭐 입지?"}
	for i, body := range bodies {
		sender := "7"
		if i == 1 {
			sender = AssistantSenderID
		}
		require.NoError(t, AppendMessage(ctx, db.DB(), &Message{
			ThreadID:  th.ID,
			SenderID:  sender,
			Body:      body,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	t.Run("recent returns chronological tail", func(t *testing.T) {
		msgs, err := RecentMessages(ctx, db.DB(), th.ID, 2)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "안녕하세요! 무엇을 도와드릴까요?", msgs[0].Body)
		assert.Equal(t, "오늘 뭐 입지?", msgs[1].Body)
	})

	t.Run("defaults filled on append", func(t *testing.T) {
		msg := &Message{ThreadID: th.ID, SenderID: AssistantSenderID, Body: "ok"}
		require.NoError(t, AppendMessage(ctx, db.DB(), msg))
		assert.NotEmpty(t, msg.ID)
		assert.Equal(t, MessageTypeText, msg.Type)
		assert.False(t, msg.CreatedAt.IsZero())
	})
}

func TestSeedDemoData(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	require.NoError(t, SeedDemoData(ctx, store, 1))

	user, err := store.GetUser(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "지현", user.Nickname)

	items, err := store.ListOwnedItems(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	// Running again must not duplicate anything.
	require.NoError(t, SeedDemoData(ctx, store, 1))
	again, err := store.ListOwnedItems(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, again, len(items))
}
