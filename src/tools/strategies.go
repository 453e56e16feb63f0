package tools

import (
	"math/rand"
	"strings"

	"github.com/jihyunk/stylemate/src/storage"
)

// OutfitSuggestion is the recommendOutfit result shape.
type OutfitSuggestion struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
	Reason string `json:"reason"`
}

// OutfitStrategy produces an outfit suggestion from the owner's items and
// the current season.
type OutfitStrategy interface {
	Recommend(items []storage.WardrobeItem, season string) OutfitSuggestion
}

// StaticOutfitStrategy always suggests the same neutral outfit. Placeholder
// until a real recommender lands.
type StaticOutfitStrategy struct{}

func (StaticOutfitStrategy) Recommend([]storage.WardrobeItem, string) OutfitSuggestion {
	return OutfitSuggestion{
		Top:    "White Linen Shirt",
		Bottom: "Beige Chinos",
		Reason: "Good for sunny weather",
	}
}

// UpcyclingSuggestion is one recommendUpcycling entry.
type UpcyclingSuggestion struct {
	Item        string `json:"item"`
	Category    string `json:"category"`
	Idea        string `json:"idea"`
	CarbonSaved string `json:"carbonSaved"`
}

// UpcyclingStrategy picks candidate items and matches them to rework ideas.
type UpcyclingStrategy interface {
	Suggest(items []storage.WardrobeItem) []UpcyclingSuggestion
}

// RandomUpcyclingStrategy samples two owned items and looks up an idea by
// category.
type RandomUpcyclingStrategy struct {
	// Rand is overridable for tests; defaults to the global source.
	Rand *rand.Rand
}

func (s RandomUpcyclingStrategy) Suggest(items []storage.WardrobeItem) []UpcyclingSuggestion {
	shuffled := make([]storage.WardrobeItem, len(items))
	copy(shuffled, items)
	if s.Rand != nil {
		s.Rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	} else {
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	}
	if len(shuffled) > 2 {
		shuffled = shuffled[:2]
	}

	out := make([]UpcyclingSuggestion, 0, len(shuffled))
	for _, item := range shuffled {
		name := item.Name
		if name == "" {
			name = item.Category
		}
		out = append(out, UpcyclingSuggestion{
			Item:        name,
			Category:    item.Category,
			Idea:        upcyclingIdea(item.Category),
			CarbonSaved: "0.3kg",
		})
	}
	return out
}

func upcyclingIdea(category string) string {
	switch strings.ToUpper(category) {
	case "TOP", "상의":
		return "에코백이나 쿠션커버로 리폼하기"
	case "BOTTOM", "하의":
		return "파우치나 작은 가방으로 리폼하기"
	case "OUTER", "아우터":
		return "담요나 러그로 업사이클링하기"
	case "DRESS", "원피스":
		return "스카프나 헤어밴드로 변신시키기"
	case "SHOES", "신발":
		return "화분 커버나 소품함으로 활용하기"
	case "ACCESSORY", "액세서리":
		return "키링이나 장식품으로 재탄생시키기"
	default:
		return "천연 염색 후 새로운 패션 아이템으로 활용하기"
	}
}
