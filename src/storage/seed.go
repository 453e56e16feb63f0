package storage

import (
	"context"
	"fmt"
	"time"
)

// SeedDemoData populates a fresh database with one demo user, a small
// wardrobe, and a planned outfit, so the assistant has something to talk
// about locally. Idempotent: a database that already has the demo user is
// left alone.
func SeedDemoData(ctx context.Context, s *Store, ownerID int64) error {
	existing, err := s.GetUser(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to check demo user: %w", err)
	}
	if existing != nil {
		return nil
	}

	user := &User{
		ID:            ownerID,
		Nickname:      "지현",
		Address:       "서울특별시 강남구",
		EcoPoints:     340,
		CarbonSavedKg: 4.2,
	}
	if err := s.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	items := []WardrobeItem{
		{Name: "화이트 린넨 셔츠", Category: "상의", Brand: "유니클로", Color: "화이트", Season: "봄,여름"},
		{Name: "데님 팬츠", Category: "하의", Brand: "리바이스", Color: "블루", Season: "사계절"},
		{Name: "트렌치 코트", Category: "아우터", Brand: "버버리", Color: "베이지", Season: "봄,가을"},
		{Name: "플로럴 원피스", Category: "원피스", Brand: "자라", Color: "핑크", Season: "봄,여름"},
		{Name: "니트 스웨터", Category: "상의", Brand: "", Color: "그레이", Season: "가을,겨울"},
		{Name: "화이트 스니커즈", Category: "신발", Brand: "나이키", Color: "화이트", Season: "사계절"},
		{Name: "빈티지 청자켓", Category: "아우터", Brand: "", Color: "블루", Season: "봄,가을", ForSale: true},
	}
	for i := range items {
		items[i].OwnerID = ownerID
		if err := s.CreateItem(ctx, &items[i]); err != nil {
			return fmt.Errorf("failed to create demo item %q: %w", items[i].Name, err)
		}
	}

	event := &CalendarEvent{
		OwnerID:   ownerID,
		EventDate: time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		Title:     "친구 결혼식 하객룩",
		HasImage:  false,
	}
	if err := s.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to create demo event: %w", err)
	}

	return nil
}
