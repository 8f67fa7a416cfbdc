package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/pantry"
)

// The Format* helpers are deterministic and never touch the LLM client,
// so a nil client is fine here.
func newTestService() *Service {
	return New(nil)
}

func TestFormatSuggestions(t *testing.T) {
	s := newTestService()

	text := s.FormatSuggestions([]models.MatchResult{
		{
			Recipe:       models.Recipe{Name: "Salsa"},
			MatchPercent: 66.67,
			Missing:      []models.RecipeIngredient{{Name: "salt"}},
		},
		{
			Recipe:       models.Recipe{Name: "Omelette"},
			MatchPercent: 100,
		},
	})

	assert.Contains(t, text, "1. Salsa — 67% of ingredients on hand")
	assert.Contains(t, text, "Missing: salt")
	assert.Contains(t, text, "2. Omelette — 100% of ingredients on hand")
}

func TestFormatSuggestionsEmpty(t *testing.T) {
	s := newTestService()

	text := s.FormatSuggestions(nil)
	assert.Contains(t, text, "Nothing in the catalog matches")
}

func TestFormatExpirationDigest(t *testing.T) {
	s := newTestService()

	days := func(d int) *int { return &d }
	text := s.FormatExpirationDigest([]pantry.ItemReport{
		{
			Item:   models.InventoryItem{Name: "old yogurt"},
			Report: models.ExpirationReport{Status: models.StatusExpired, DaysUntil: days(-2), Description: "Expired 2 days ago"},
		},
		{
			Item:   models.InventoryItem{Name: "chicken"},
			Report: models.ExpirationReport{Status: models.StatusExpiringSoon, DaysUntil: days(1), Description: "Expires tomorrow"},
		},
	})

	assert.Contains(t, text, "Already expired:")
	assert.Contains(t, text, "old yogurt — Expired 2 days ago")
	assert.Contains(t, text, "Use these soon:")
	assert.Contains(t, text, "chicken — Expires tomorrow")
}

func TestFormatExpirationDigestEmpty(t *testing.T) {
	s := newTestService()
	assert.Empty(t, s.FormatExpirationDigest(nil))
}

func TestFormatPantryIncludesFreshness(t *testing.T) {
	s := newTestService()

	days := func(d int) *int { return &d }
	text := s.FormatPantry([]pantry.ItemReport{
		{
			Item:   models.InventoryItem{Name: "milk", Quantity: 2, Unit: "l"},
			Report: models.ExpirationReport{Status: models.StatusExpiringSoon, DaysUntil: days(0), Description: "Expires today"},
		},
		{
			Item:   models.InventoryItem{Name: "salt"},
			Report: models.ExpirationReport{Status: models.StatusUnknown, Description: "No expiration date"},
		},
	})

	assert.Contains(t, text, "milk (2 l) — Expires today")
	// Unknown status items are listed without a freshness note
	assert.Contains(t, text, "• salt\n")
	assert.NotContains(t, text, "No expiration date")
}

func TestFormatShoppingList(t *testing.T) {
	s := newTestService()

	text := s.FormatShoppingList([]models.InventoryItem{
		{Name: "salt", Quantity: 1, Unit: "tsp"},
		{Name: "lime"},
	})

	assert.Contains(t, text, "salt (1 tsp)")
	assert.Contains(t, text, "lime")
}

func TestFormatStatistics(t *testing.T) {
	s := newTestService()

	text := s.FormatStatistics(&models.Statistics{
		ItemsAdded:    10,
		ItemsExpired:  2,
		RecipesCooked: 3,
		ListsCleared:  1,
	})

	assert.Contains(t, text, "Items added: 10")
	assert.Contains(t, text, "Items expired: 2")
	assert.Contains(t, text, "Recipes cooked: 3")
}
