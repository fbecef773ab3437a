package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealSlot identifies the meal a plan entry belongs to. Breakfast, lunch and
// dinner are singular per date (assigning again replaces the existing entry);
// a date may hold any number of snacks.
type MealSlot string

const (
	MealSlotBreakfast MealSlot = "breakfast"
	MealSlotLunch     MealSlot = "lunch"
	MealSlotDinner    MealSlot = "dinner"
	MealSlotSnack     MealSlot = "snack"
)

// Valid reports whether the slot is one of the four known meal slots.
func (s MealSlot) Valid() bool {
	switch s {
	case MealSlotBreakfast, MealSlotLunch, MealSlotDinner, MealSlotSnack:
		return true
	}
	return false
}

// Singular reports whether only one entry per date is allowed for the slot.
func (s MealSlot) Singular() bool {
	return s == MealSlotBreakfast || s == MealSlotLunch || s == MealSlotDinner
}

// MealPlanEntry assigns a recipe to a meal slot on a date. Date carries
// day precision; the time component is always midnight UTC.
type MealPlanEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date     time.Time          `bson:"date" json:"date"`
	Slot     MealSlot           `bson:"slot" json:"slot"`
	RecipeID primitive.ObjectID `bson:"recipe_id" json:"recipe_id"`
}

// PlannedMeal is a meal-plan entry with its recipe resolved for display
type PlannedMeal struct {
	EntryID    primitive.ObjectID `json:"entry_id"`
	RecipeID   primitive.ObjectID `json:"recipe_id"`
	RecipeName string             `json:"recipe_name"`
}

// DailyMealPlan groups one day's planned meals by slot
type DailyMealPlan struct {
	Date      time.Time     `json:"date"`
	Breakfast *PlannedMeal  `json:"breakfast"`
	Lunch     *PlannedMeal  `json:"lunch"`
	Dinner    *PlannedMeal  `json:"dinner"`
	Snacks    []PlannedMeal `json:"snacks"`
}

// WeeklyMealPlan is seven consecutive DailyMealPlans
type WeeklyMealPlan struct {
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Days      []DailyMealPlan `json:"days"`
}
