package service

import (
	"math"
	"strings"
)

// IngredientMatch is the result of comparing a recipe's ingredient list
// against a user's fridge contents.
type IngredientMatch struct {
	Matching        []string `json:"matching_ingredients"`
	Missing         []string `json:"missing_ingredients"`
	MatchPercentage int      `json:"match_percentage"`
}

// MatchIngredients partitions recipe ingredients into matching and missing
// against the fridge names. An ingredient counts as available when it
// contains, or is contained by, some fridge name (case-insensitive), so
// "tomato" matches "tomatoes" and "cherry tomato" matches "tomato". The
// score ignores units and quantities entirely.
func MatchIngredients(fridgeNames, recipeIngredients []string) IngredientMatch {
	available := make([]string, len(fridgeNames))
	for i, name := range fridgeNames {
		available[i] = strings.ToLower(name)
	}

	match := IngredientMatch{
		Matching: []string{},
		Missing:  []string{},
	}

	for _, ingredient := range recipeIngredients {
		lowered := strings.ToLower(ingredient)
		if isAvailable(lowered, available) {
			match.Matching = append(match.Matching, lowered)
		} else {
			match.Missing = append(match.Missing, lowered)
		}
	}

	if len(recipeIngredients) > 0 {
		match.MatchPercentage = int(math.Round(float64(len(match.Matching)) / float64(len(recipeIngredients)) * 100))
	}

	return match
}

func isAvailable(ingredient string, available []string) bool {
	for _, have := range available {
		if strings.Contains(have, ingredient) || strings.Contains(ingredient, have) {
			return true
		}
	}
	return false
}
