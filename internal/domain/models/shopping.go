package models

import "time"

// ShoppingItem is one consolidated line of a shopping list. Items merge on
// (lowercase name, lowercase unit); Name and Unit keep the surface casing of
// the first contributing ingredient. Recipes lists the names of every recipe
// that contributed to the amount, deduplicated.
type ShoppingItem struct {
	Name    string   `json:"name"`
	Amount  float64  `json:"amount"`
	Unit    string   `json:"unit"`
	Recipes []string `json:"recipes"`
}

// ShoppingList is the consolidated list for a meal-plan date range, sorted by
// item name ascending.
type ShoppingList struct {
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Items     []ShoppingItem `json:"items"`
}

// ShoppingListByCategory groups the consolidated items into food-group
// categories. Only categories that received at least one item are present.
type ShoppingListByCategory struct {
	StartDate  time.Time                 `json:"start_date"`
	EndDate    time.Time                 `json:"end_date"`
	Categories map[string][]ShoppingItem `json:"categories"`
}
