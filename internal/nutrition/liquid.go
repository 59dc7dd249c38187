package nutrition

import "strings"

// liquidKeywords flag food categories and descriptions that describe liquid
// foods, so callers can preselect volume units.
var liquidKeywords = []string{
	"beverages", "drinks", "juices", "soups", "broths", "water",
	"alcoholic", "alcohol", "beer", "wine", "spirits", "cocktail",
	"coffee", "tea", "soda", "soft drink", "carbonated",
}

// IsLikelyLiquid reports whether the food category or description suggests a
// liquid food.
func IsLikelyLiquid(category, description string) bool {
	category = strings.ToLower(category)
	description = strings.ToLower(description)
	for _, keyword := range liquidKeywords {
		if strings.Contains(category, keyword) || strings.Contains(description, keyword) {
			return true
		}
	}
	return false
}
