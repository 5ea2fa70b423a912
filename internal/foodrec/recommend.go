// Package foodrec filters the food catalog down to items suitable for a meal
// that still fit the remaining calorie budget.
package foodrec

import (
	"strings"

	"lg/fitness-coach-api/internal/nutrition"
)

// MaxResults caps the recommendation list.
const MaxResults = 10

// mealCategories lists the catalog categories suitable for each meal type.
var mealCategories = map[nutrition.MealType][]string{
	nutrition.Breakfast: {"breakfast", "grain", "dairy", "fruit"},
	nutrition.Lunch:     {"protein", "vegetable", "grain"},
	nutrition.Dinner:    {"protein", "vegetable", "grain"},
	nutrition.Snack:     {"snack", "fruit", "nut"},
}

// SuitableFor reports whether a catalog category fits the meal type. Meal
// types with no table entry accept every category.
func SuitableFor(category string, meal nutrition.MealType) bool {
	allowed, ok := mealCategories[meal]
	if !ok {
		return true
	}
	category = strings.ToLower(strings.TrimSpace(category))
	for _, c := range allowed {
		if category == c {
			return true
		}
	}
	return false
}

// Recommend returns up to MaxResults catalog items, in catalog order, that
// were not eaten recently, fit the meal type, and whose single serving fits
// within remainingCalories. A non-positive or NaN budget, or an empty catalog,
// yields an empty list. Recent names match case-insensitively.
func Recommend(recentFoodNames []string, meal nutrition.MealType, remainingCalories float64, catalog []PredefinedFoodItem) []PredefinedFoodItem {
	out := []PredefinedFoodItem{}
	if !(remainingCalories > 0) {
		return out
	}

	recent := make(map[string]struct{}, len(recentFoodNames))
	for _, n := range recentFoodNames {
		recent[normalizeName(n)] = struct{}{}
	}

	for _, item := range catalog {
		if _, eaten := recent[normalizeName(item.Name)]; eaten {
			continue
		}
		if item.ServingCalories() > remainingCalories {
			continue
		}
		if !SuitableFor(item.Category, meal) {
			continue
		}
		out = append(out, item)
		if len(out) == MaxResults {
			break
		}
	}
	return out
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
