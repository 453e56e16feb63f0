package retrieval

import (
	"strings"

	"github.com/jihyunk/stylemate/src/storage"
)

// Placeholder brands the analysis pipeline writes when it cannot identify
// one. They are suppressed rather than shown to the user.
var genericBrands = map[string]bool{
	"generic": true,
	"brand":   true,
}

// DisplayName resolves a presentable item name. Missing names, the literal
// "Unknown" and lazy names equal to the category are replaced with
// "<color> <category>".
func DisplayName(item storage.WardrobeItem) string {
	name := strings.TrimSpace(item.Name)
	category := strings.TrimSpace(item.Category)

	lazy := name != "" && category != "" && strings.EqualFold(name, category)
	if name != "" && !strings.EqualFold(name, "Unknown") && !lazy {
		return name
	}

	if category == "" {
		category = "의류"
	}
	synthesized := strings.TrimSpace(item.Color + " " + category)
	if synthesized == "" {
		return category
	}
	return strings.Join(strings.Fields(synthesized), " ")
}

// DisplayBrand suppresses generic placeholder brands.
func DisplayBrand(brand string) string {
	if genericBrands[strings.ToLower(strings.TrimSpace(brand))] {
		return ""
	}
	return brand
}
