// Package match scores recipes against the set of items on hand and ranks
// the catalog into an ordered suggestion list. All functions are pure:
// identical inputs produce identical outputs and nothing is cached.
package match

import (
	"sort"
	"strings"

	"github.com/mkarpov/pantrypal/pkg/models"
)

// DefaultMinMatchPercent is the default retention threshold: recipes below
// this match percentage are dropped from the ranked suggestion list.
const DefaultMinMatchPercent = 50

// Normalize lowercases and trims whitespace from an item or ingredient name.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeAll normalizes a list of on-hand names, dropping entries that
// normalize to the empty string. An empty name would otherwise satisfy every
// ingredient through the containment rule.
func NormalizeAll(names []string) []string {
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		if n := Normalize(name); n != "" {
			normalized = append(normalized, n)
		}
	}
	return normalized
}

// satisfies reports whether any on-hand name satisfies the ingredient under
// the containment rule: one normalized string is a substring of the other,
// in either direction. The rule is intentionally permissive so that
// "tomato" satisfies "diced tomatoes"; it also accepts false positives like
// "pea" satisfying "peanut". Callers rely on this exact behavior.
func satisfies(onHand []string, ingredient string) bool {
	ingredient = Normalize(ingredient)
	if ingredient == "" {
		// Malformed ingredient entries are never satisfied
		return false
	}
	for _, name := range onHand {
		if strings.Contains(name, ingredient) || strings.Contains(ingredient, name) {
			return true
		}
	}
	return false
}

// Match computes how well the on-hand names cover one recipe. Optional
// ingredients count toward the percentage and the missing list exactly like
// required ones. A recipe with no ingredients scores 0, never NaN.
// onHand is expected to be normalized (see NormalizeAll).
func Match(onHand []string, recipe models.Recipe) models.MatchResult {
	total := len(recipe.Ingredients)

	matched := 0
	missing := make([]models.RecipeIngredient, 0)
	for _, ingredient := range recipe.Ingredients {
		if satisfies(onHand, ingredient.Name) {
			matched++
		} else {
			missing = append(missing, ingredient)
		}
	}

	percent := 0.0
	if total > 0 {
		percent = float64(matched) / float64(total) * 100
	}

	return models.MatchResult{
		Recipe:       recipe,
		MatchPercent: percent,
		Missing:      missing,
	}
}

// Rank matches every recipe in the catalog against the on-hand names,
// keeps those at or above minPercent, and orders them by match percentage
// descending. Ties keep the catalog's relative order.
func Rank(onHand []string, recipes []models.Recipe, minPercent float64) []models.MatchResult {
	normalized := NormalizeAll(onHand)

	results := make([]models.MatchResult, 0, len(recipes))
	for _, recipe := range recipes {
		result := Match(normalized, recipe)
		if result.MatchPercent >= minPercent {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercent > results[j].MatchPercent
	})

	return results
}
