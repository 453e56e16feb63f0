// Package assistant hosts the conversation orchestrator: the state machine
// that turns one inbound user message into one persisted answer.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jihyunk/stylemate/src/storage"
	"github.com/jihyunk/stylemate/src/weather"
)

// contextItemLimit caps how many wardrobe items go into the prompt.
const contextItemLimit = 20

// Weather is the forecast slice the assistant needs. Satisfied by
// *weather.Service.
type Weather interface {
	Forecast(ctx context.Context, address string) weather.Snapshot
	Season(ctx context.Context, address string) string
	ForecastAtHour(ctx context.Context, address string, targetHour int) string
}

// ContextAssembler builds the per-user prompt context block: time, location,
// weather, season, a capped inventory summary and profile facts.
type ContextAssembler struct {
	store   Store
	weather Weather
	logger  *slog.Logger
	now     func() time.Time
}

func NewContextAssembler(store Store, w Weather, logger *slog.Logger, now func() time.Time) *ContextAssembler {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &ContextAssembler{
		store:   store,
		weather: w,
		logger:  logger.With("component", "context"),
		now:     now,
	}
}

// Build renders the context block. It never fails: missing users and
// provider errors degrade to defaults so the model always has something to
// work with.
func (a *ContextAssembler) Build(ctx context.Context, ownerID int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "currentTime: %s\n", a.now().Format("2006-01-02T15:04:05"))

	address := ""
	nickname := "User"
	ecoPoints := int64(0)
	carbonSaved := 0.0
	user, err := a.store.GetUser(ctx, ownerID)
	if err != nil {
		a.logger.Warn("failed to fetch user for context", "owner_id", ownerID, "error", err)
	} else if user != nil {
		address = user.Address
		if user.Nickname != "" {
			nickname = user.Nickname
		}
		ecoPoints = user.EcoPoints
		carbonSaved = user.CarbonSavedKg
	}

	location := address
	if location == "" {
		location = "서울"
	}
	fmt.Fprintf(&b, "location: %s\n", location)

	snap := a.weather.Forecast(ctx, address)
	fmt.Fprintf(&b, "weather: %s\n", snap.Description)
	fmt.Fprintf(&b, "temperature: %.0f°C\n", snap.Temperature)
	fmt.Fprintf(&b, "sky: %s\n", snap.Sky)
	fmt.Fprintf(&b, "precipitation: %s\n", snap.Precipitation)
	fmt.Fprintf(&b, "currentSeason: %s\n", a.weather.Season(ctx, address))

	items, err := a.store.ListOwnedItems(ctx, ownerID)
	if err != nil {
		a.logger.Warn("failed to fetch wardrobe for context", "owner_id", ownerID, "error", err)
	}
	available := make([]storage.WardrobeItem, 0, len(items))
	for _, item := range items {
		if item.Status == storage.ItemStatusInCloset {
			available = append(available, item)
		}
	}
	fmt.Fprintf(&b, "totalClothes: %d\n", len(available))

	summary := available
	if len(summary) > contextItemLimit {
		summary = summary[:contextItemLimit]
	}
	lines := make([]string, 0, len(summary))
	for _, item := range summary {
		lines = append(lines, summarizeItem(item))
	}
	fmt.Fprintf(&b, "recentClothes: [%s]\n", strings.Join(lines, ", "))

	fmt.Fprintf(&b, "ecoPoints: %d\n", ecoPoints)
	fmt.Fprintf(&b, "nickname: %s\n", nickname)
	fmt.Fprintf(&b, "carbonSaved: %.1fkg\n", carbonSaved)
	return b.String()
}

func summarizeItem(item storage.WardrobeItem) string {
	category := item.Category
	if category == "" {
		category = "의류"
	}
	name := item.Name
	if name == "" {
		name = "이름없음"
	}
	season := item.Season
	if season == "" {
		season = "사계절"
	}
	return fmt.Sprintf("%s/%s/%s(%s)", category, item.Brand, name, season)
}
