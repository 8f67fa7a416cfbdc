package models

import (
	"time"
)

// InventoryItem represents a single item on hand in a pantry
type InventoryItem struct {
	Name           string     `json:"name"`
	Quantity       float64    `json:"quantity,omitempty"`
	Unit           string     `json:"unit,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	AddedAt        time.Time  `json:"added_at"`
}

// Pantry represents the items available in a chat's pantry
type Pantry struct {
	ID          string                   `json:"id"`
	ChatID      int64                    `json:"chat_id"`
	Items       map[string]InventoryItem `json:"items"`
	LastUpdated time.Time                `json:"last_updated"`
}

// RecipeIngredient represents one ingredient a recipe calls for
type RecipeIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Optional bool    `json:"optional,omitempty"`
}

// Recipe represents a recipe in the catalog
type Recipe struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Cuisine      string             `json:"cuisine,omitempty"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions,omitempty"`
	AddedBy      string             `json:"added_by,omitempty"` // UserID of whoever added it
	AddedAt      time.Time          `json:"added_at,omitempty"`
}

// MatchResult is the outcome of matching one recipe against the pantry
type MatchResult struct {
	Recipe       Recipe             `json:"recipe"`
	MatchPercent float64            `json:"match_percent"`
	Missing      []RecipeIngredient `json:"missing"`
}

// ExpirationStatus classifies how close an item is to its expiration date
type ExpirationStatus string

const (
	// StatusExpired means the expiration date is in the past
	StatusExpired ExpirationStatus = "expired"
	// StatusExpiringSoon means the item expires within the soon-window
	StatusExpiringSoon ExpirationStatus = "expiring_soon"
	// StatusFresh means the item expires beyond the soon-window
	StatusFresh ExpirationStatus = "fresh"
	// StatusUnknown means no usable expiration date was supplied
	StatusUnknown ExpirationStatus = "unknown"
)

// ExpirationReport describes the freshness of a single item.
// DaysUntil is nil exactly when Status is StatusUnknown.
type ExpirationReport struct {
	Status      ExpirationStatus `json:"status"`
	DaysUntil   *int             `json:"days_until,omitempty"`
	Description string           `json:"description"`
}

// ShoppingList represents the shopping list for a chat
type ShoppingList struct {
	ID          string                   `json:"id"`
	ChatID      int64                    `json:"chat_id"`
	Items       map[string]InventoryItem `json:"items"`
	LastUpdated time.Time                `json:"last_updated"`
}

// Statistics represents pantry usage statistics for a chat
type Statistics struct {
	ChatID        int64 `json:"chat_id"`
	ItemsAdded    int   `json:"items_added"`
	ItemsExpired  int   `json:"items_expired"`
	RecipesCooked int   `json:"recipes_cooked"`
	ListsCleared  int   `json:"lists_cleared"`
}
