package services

import "strings"

// OtherCategory is the fallback bucket for items no category keyword matches.
const OtherCategory = "Other"

// FoodCategory pairs a category name with its lowercase substring keywords.
type FoodCategory struct {
	Name     string
	Keywords []string
}

// foodCategories is matched in declaration order with first-match-wins
// semantics: an item whose name contains keywords from two categories lands
// in the one declared earlier. A slice, not a map, so the tie-break order
// stays deterministic.
var foodCategories = []FoodCategory{
	{Name: "Produce", Keywords: []string{
		"apple", "banana", "lettuce", "tomato", "onion", "garlic",
		"carrot", "potato", "cucumber", "pepper", "spinach", "kale",
		"broccoli", "cabbage", "celery", "mushroom", "fruit", "vegetable",
	}},
	{Name: "Meat & Seafood", Keywords: []string{
		"beef", "chicken", "pork", "lamb", "turkey", "fish", "salmon",
		"tuna", "shrimp", "seafood", "meat", "steak", "bacon", "sausage",
	}},
	{Name: "Dairy & Eggs", Keywords: []string{
		"milk", "cheese", "yogurt", "butter", "cream", "egg", "dairy",
	}},
	{Name: "Bakery", Keywords: []string{
		"bread", "roll", "bun", "bagel", "tortilla", "pita", "pastry", "cake",
	}},
	{Name: "Grains & Pasta", Keywords: []string{
		"rice", "pasta", "noodle", "cereal", "oat", "grain", "quinoa", "barley",
	}},
	{Name: "Canned Goods", Keywords: []string{
		"can", "soup", "bean", "tomato sauce", "corn", "tuna",
	}},
	{Name: "Condiments & Spices", Keywords: []string{
		"salt", "pepper", "spice", "herb", "sauce", "oil", "vinegar",
		"ketchup", "mustard", "mayonnaise", "dressing",
	}},
	{Name: "Snacks", Keywords: []string{
		"chip", "crisp", "cracker", "nut", "snack", "cookie", "chocolate",
	}},
	{Name: "Beverages", Keywords: []string{
		"water", "juice", "soda", "coffee", "tea", "wine", "beer", "drink",
	}},
}

// CategoryFor returns the food-group category for an item name, or
// OtherCategory when no keyword matches.
func CategoryFor(itemName string) string {
	name := strings.ToLower(itemName)
	for _, cat := range foodCategories {
		for _, keyword := range cat.Keywords {
			if strings.Contains(name, keyword) {
				return cat.Name
			}
		}
	}
	return OtherCategory
}
