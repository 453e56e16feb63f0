package tools

import (
	"context"
	"fmt"
	"log/slog"

	jsonschema "github.com/swaggest/jsonschema-go"

	"github.com/jihyunk/stylemate/src/retrieval"
	"github.com/jihyunk/stylemate/src/storage"
)

// Store is the storage slice the catalog reads from.
type Store interface {
	ListOwnedItems(ctx context.Context, ownerID int64) ([]storage.WardrobeItem, error)
	GetUser(ctx context.Context, userID int64) (*storage.User, error)
	FindEventOnDate(ctx context.Context, ownerID int64, date string) (*storage.CalendarEvent, error)
}

// StyleSearcher is satisfied by *retrieval.Engine.
type StyleSearcher interface {
	Search(ctx context.Context, ownerID int64, keyword, currentSeason string) ([]storage.WardrobeItem, error)
}

// WeatherReporter is satisfied by *weather.Service.
type WeatherReporter interface {
	Season(ctx context.Context, address string) string
	ForecastAtHour(ctx context.Context, address string, targetHour int) string
}

// Deps wires the catalog's collaborators.
type Deps struct {
	Store     Store
	Searcher  StyleSearcher
	Weather   WeatherReporter
	Outfit    OutfitStrategy
	Upcycling UpcyclingStrategy
	Logger    *slog.Logger
}

// NewCatalog builds the full operation registry.
func NewCatalog(deps Deps) *Registry {
	if deps.Outfit == nil {
		deps.Outfit = StaticOutfitStrategy{}
	}
	if deps.Upcycling == nil {
		deps.Upcycling = RandomUpcyclingStrategy{}
	}
	c := &catalog{deps: deps}

	r := NewRegistry(deps.Logger)
	userIDParam := integerSchema("Owner id, injected by the orchestrator")

	r.Register(&Tool{
		Name:        "getWardrobeSummary",
		Description: "Count of items in the user's wardrobe",
		Parameters:  objectSchema(map[string]*jsonschema.Schema{"userId": userIDParam}, []string{"userId"}),
		Handler:     c.getWardrobeSummary,
	})
	r.Register(&Tool{
		Name:        "recommendOutfit",
		Description: "Recommend an outfit for the current weather",
		Parameters:  objectSchema(map[string]*jsonschema.Schema{"userId": userIDParam}, []string{"userId"}),
		Handler:     c.recommendOutfit,
	})
	r.Register(&Tool{
		Name:        "getEcoPoints",
		Description: "The user's current eco point balance",
		Parameters:  objectSchema(map[string]*jsonschema.Schema{"userId": userIDParam}, []string{"userId"}),
		Handler:     c.getEcoPoints,
	})
	r.Register(&Tool{
		Name:        "searchStyle",
		Description: "Hybrid semantic + keyword search over the user's wardrobe",
		Parameters: objectSchema(map[string]*jsonschema.Schema{
			"userId":  userIDParam,
			"keyword": stringSchema("Style or mood to search for, e.g. 데이트룩"),
		}, []string{"userId", "keyword"}),
		Handler: c.searchStyle,
	})
	r.Register(&Tool{
		Name:        "recommendUpcycling",
		Description: "Upcycling ideas for items the user no longer wears",
		Parameters:  objectSchema(map[string]*jsonschema.Schema{"userId": userIDParam}, []string{"userId"}),
		Handler:     c.recommendUpcycling,
	})
	r.Register(&Tool{
		Name:        "getRecentOutfits",
		Description: "The user's most recently registered items",
		Parameters: objectSchema(map[string]*jsonschema.Schema{
			"userId": userIDParam,
			"limit":  integerSchema("How many items to return, default 5"),
		}, []string{"userId"}),
		Handler: c.getRecentOutfits,
	})
	r.Register(&Tool{
		Name:        "getWeatherByTime",
		Description: "Forecast for a specific hour at the user's address",
		Parameters: objectSchema(map[string]*jsonschema.Schema{
			"userId": userIDParam,
			"hour":   integerSchema("Target hour 0-23, default 12"),
		}, []string{"userId"}),
		Handler: c.getWeatherByTime,
	})
	r.Register(&Tool{
		Name:        "getItemsForSale",
		Description: "Items the user listed for sale",
		Parameters:  objectSchema(map[string]*jsonschema.Schema{"userId": userIDParam}, []string{"userId"}),
		Handler:     c.getItemsForSale,
	})
	r.Register(&Tool{
		Name:        "getOotdSchedule",
		Description: "Planned outfit entry for an exact date",
		Parameters: objectSchema(map[string]*jsonschema.Schema{
			"userId": userIDParam,
			"date":   stringSchema("Date in YYYY-MM-DD form"),
		}, []string{"userId", "date"}),
		Handler: c.getOotdSchedule,
	})
	return r
}

type catalog struct {
	deps Deps
}

func (c *catalog) ownerID(args Args) (int64, error) {
	id, ok := args.Int64("userId")
	if !ok {
		return 0, fmt.Errorf("userId is required")
	}
	return id, nil
}

func (c *catalog) getWardrobeSummary(ctx context.Context, args Args) (string, error) {
	ownerID, err := c.ownerID(args)
	if err != nil {
		return "", err
	}
	items, err := c.deps.Store.ListOwnedItems(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return marshalResult(map[string]int{"totalItems": len(items)})
}

func (c *catalog) recommendOutfit(ctx context.Context, args Args) (string, error) {
	ownerID, err := c.ownerID(args)
	if err != nil {
		return "", err
	}
	items, err := c.deps.Store.ListOwnedItems(ctx, ownerID)
	if err != nil {
		return "", err
	}
	season := c.deps.Weather.Season(ctx, c.userAddress(ctx, ownerID))
	return marshalResult(c.deps.Outfit.Recommend(items, season))
}

func (c *catalog) getEcoPoints(ctx context.Context, args Args) (string, error) {
	ownerID, err := c.ownerID(args)
	if err != nil {
		return "", err
	}
	user, err := c.deps.Store.GetUser(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return marshalResult(map[string]any{"currentPoints": 0, "error": "User not found"})
	}
	return marshalResult(map[string]int64{"currentPoints": user.EcoPoints})
}

type styleResult struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Color    string `json:"color"`
	Season   string `json:"season"`
}

func (c *catalog) searchStyle(ctx context.Context, args Args) (string, error) {
	ownerID, err := c.ownerID(args)
	if err != nil {
		return "", err
	}
	keyword, ok := args.String("keyword")
	if !ok || keyword == "" {
		return "", fmt.Errorf("keyword is required")
	}

	season := c.deps.Weather.Season(ctx, c.userAddress(ctx, ownerID))
	items, err := c.deps.Searcher.Search(ctx, ownerID, keyword, season)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return marshalResult(map[string]any{"results": []styleResult{}, "message": "No similar items found."})
	}

	results := make([]styleResult, 0, len(items))
	for _, item := range items {
		results = append(results, styleResult{
			ID:       item.ID,
			Name:     retrieval.DisplayName(item),
			Category: item.Category,
			Brand:    retrieval.DisplayBrand(item.Brand),
			Color:    item.Color,
			Season:   item.Season,
		})
	}
	return marshalResult(map[string]any{"results": results})
}

func (c *catalog) recommendUpcycling(ctx context.Context, args Args) (string, error) {
	ownerID, err := c.ownerID(args)
	if err != nil {
		return "", err
	}
	items, err := c.deps.Store.ListOwnedItems(ctx, ownerID)
	if err != nil {
		return "", err
	}
	suggestions := c.deps.Upcycling.Suggest(items)
	if suggestions == nil {
		suggestions = []UpcyclingSuggestion{}
	}
	return marshalResult(map[string]any{"suggestions": suggestions})
}

func (c *catalog) getRecentOutfits(ctx context.Context, args Args) (string, error) {
	ownerID, err := c.ownerID(args)
	if err != nil {
		return "", err
	}
	limit, ok := args.Int64("limit")
	if !ok || limit <= 0 {
		limit = 5
	}

	items, err := c.deps.Store.ListOwnedItems(ctx, ownerID)
	if err != nil {
		return "", err
	}
	recent := items
	if int64(len(recent)) > limit {
		recent = recent[:limit]
	}

	type recentItem struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Brand    string `json:"brand"`
	}
	out := make([]recentItem, 0, len(recent))
	for _, item := range recent {
		out = append(out, recentItem{Name: item.Name, Category: item.Category, Brand: item.Brand})
	}
	return marshalResult(map[string]any{"recentItems": out, "total": len(items)})
}

func (c *catalog) getWeatherByTime(ctx context.Context, args Args) (string, error) {
	ownerID, err := c.ownerID(args)
	if err != nil {
		return "", err
	}
	hour, ok := args.Int64("hour")
	if !ok {
		hour = 12
	}

	address := c.userAddress(ctx, ownerID)
	forecast := c.deps.Weather.ForecastAtHour(ctx, address, int(hour))
	if address == "" {
		address = "서울"
	}
	return marshalResult(map[string]any{
		"forecast":   forecast,
		"targetHour": hour,
		"address":    address,
	})
}

func (c *catalog) getItemsForSale(ctx context.Context, args Args) (string, error) {
	ownerID, err := c.ownerID(args)
	if err != nil {
		return "", err
	}
	items, err := c.deps.Store.ListOwnedItems(ctx, ownerID)
	if err != nil {
		return "", err
	}

	type saleItem struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Brand    string `json:"brand"`
	}
	var forSale []saleItem
	for _, item := range items {
		if !item.ForSale {
			continue
		}
		name := item.Name
		if name == "" {
			name = item.Category
		}
		forSale = append(forSale, saleItem{
			ID:       item.ID,
			Name:     name,
			Category: item.Category,
			Brand:    retrieval.DisplayBrand(item.Brand),
		})
	}
	if len(forSale) == 0 {
		return marshalResult(map[string]any{
			"results": []saleItem{},
			"message": "현재 판매중인 옷이 없습니다.",
			"count":   0,
		})
	}
	return marshalResult(map[string]any{"results": forSale, "count": len(forSale)})
}

func (c *catalog) getOotdSchedule(ctx context.Context, args Args) (string, error) {
	ownerID, err := c.ownerID(args)
	if err != nil {
		return "", err
	}
	date, ok := args.String("date")
	if !ok || date == "" {
		return "", fmt.Errorf("date is required")
	}

	event, err := c.deps.Store.FindEventOnDate(ctx, ownerID, date)
	if err != nil {
		return "", err
	}
	if event == nil {
		return marshalResult(map[string]any{
			"found":   false,
			"date":    date,
			"message": "해당 날짜에 저장된 OOTD가 없습니다.",
		})
	}
	memo := event.Title
	if memo == "" {
		memo = "메모 없음"
	}
	return marshalResult(map[string]any{
		"found":    true,
		"date":     date,
		"memo":     memo,
		"hasImage": event.HasImage,
	})
}

func (c *catalog) userAddress(ctx context.Context, ownerID int64) string {
	user, err := c.deps.Store.GetUser(ctx, ownerID)
	if err != nil || user == nil {
		return ""
	}
	return user.Address
}
