package messages

import (
	"fmt"
	"strings"

	"github.com/mkarpov/pantrypal/pkg/logger"
	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/openai"
	"github.com/mkarpov/pantrypal/pkg/pantry"
)

// Service provides message generation functionality. Every generator tries
// the LLM first and falls back to deterministic formatting on failure.
type Service struct {
	openaiClient *openai.Client
	logger       *logger.Logger
}

// New creates a new message service
func New(openaiClient *openai.Client) *Service {
	return &Service{
		openaiClient: openaiClient,
		logger:       logger.New(""),
	}
}

// GenerateWelcomeMessage generates a welcome message
func (s *Service) GenerateWelcomeMessage() string {
	msg, err := s.openaiClient.GenerateChatMessage("welcome", map[string]interface{}{
		"purpose": "Track pantry items, warn about expiring food and suggest recipes",
	})
	if err != nil {
		s.logger.Error("Failed to generate welcome message: %v", err)
		return "👋 Welcome to PantryPal! I track what's in your pantry, warn you before food expires and suggest recipes you can cook right now."
	}
	return msg
}

// GenerateErrorMessage generates an error message
func (s *Service) GenerateErrorMessage(context string) string {
	msg, err := s.openaiClient.GenerateChatMessage("error", map[string]interface{}{
		"context": context,
	})
	if err != nil {
		s.logger.Error("Failed to generate error message: %v", err)
		return "😢 Sorry, something went wrong. Please try again later."
	}
	return msg
}

// GenerateEmptyPantryMessage generates a message for an empty pantry
func (s *Service) GenerateEmptyPantryMessage() string {
	msg, err := s.openaiClient.GenerateChatMessage("empty_pantry", map[string]interface{}{})
	if err != nil {
		s.logger.Error("Failed to generate empty pantry message: %v", err)
		return "Your pantry is empty! Add items with /add or just send me a list of what you bought."
	}
	return msg
}

// FormatPantry formats the pantry contents with per-item freshness
func (s *Service) FormatPantry(reports []pantry.ItemReport) string {
	var b strings.Builder
	b.WriteString("🧊 Here's what's in your pantry:\n\n")
	for _, r := range reports {
		b.WriteString("• ")
		b.WriteString(formatItem(r.Item))
		if r.Report.Status != models.StatusUnknown {
			b.WriteString(" — ")
			b.WriteString(r.Report.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSuggestions formats the ranked suggestion list. The percentage is
// rounded for display only; ranking happens on the exact values.
func (s *Service) FormatSuggestions(results []models.MatchResult) string {
	if len(results) == 0 {
		return "😢 Nothing in the catalog matches your pantry well enough right now. Add more items or lower the bar with MIN_MATCH_PERCENT."
	}

	var b strings.Builder
	b.WriteString("🍲 Here's what you could cook tonight:\n\n")
	for i, result := range results {
		b.WriteString(fmt.Sprintf("%d. %s — %.0f%% of ingredients on hand\n", i+1, result.Recipe.Name, result.MatchPercent))
		if len(result.Missing) > 0 {
			names := make([]string, len(result.Missing))
			for j, m := range result.Missing {
				names[j] = m.Name
			}
			b.WriteString(fmt.Sprintf("   Missing: %s\n", strings.Join(names, ", ")))
		}
	}
	return b.String()
}

// FormatExpirationDigest formats the daily expired / expiring-soon digest
func (s *Service) FormatExpirationDigest(reports []pantry.ItemReport) string {
	if len(reports) == 0 {
		return ""
	}

	var expired, soon []pantry.ItemReport
	for _, r := range reports {
		switch r.Report.Status {
		case models.StatusExpired:
			expired = append(expired, r)
		case models.StatusExpiringSoon:
			soon = append(soon, r)
		}
	}

	var b strings.Builder
	b.WriteString("⏰ Pantry check!\n")
	if len(expired) > 0 {
		b.WriteString("\n🗑 Already expired:\n")
		for _, r := range expired {
			b.WriteString(fmt.Sprintf("• %s — %s\n", r.Item.Name, r.Report.Description))
		}
	}
	if len(soon) > 0 {
		b.WriteString("\n⚠️ Use these soon:\n")
		for _, r := range soon {
			b.WriteString(fmt.Sprintf("• %s — %s\n", r.Item.Name, r.Report.Description))
		}
	}
	return b.String()
}

// FormatShoppingList formats the shopping list contents
func (s *Service) FormatShoppingList(items []models.InventoryItem) string {
	if len(items) == 0 {
		return "🛒 Your shopping list is empty."
	}

	var b strings.Builder
	b.WriteString("🛒 Your shopping list:\n\n")
	for _, item := range items {
		b.WriteString("• ")
		b.WriteString(formatItem(item))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatStatistics formats the usage statistics for a chat
func (s *Service) FormatStatistics(stats *models.Statistics) string {
	return fmt.Sprintf(
		"📊 Pantry statistics:\n\n• Items added: %d\n• Items expired: %d\n• Recipes cooked: %d\n• Shopping lists cleared: %d",
		stats.ItemsAdded, stats.ItemsExpired, stats.RecipesCooked, stats.ListsCleared,
	)
}

// formatItem renders one item with its quantity and unit when present
func formatItem(item models.InventoryItem) string {
	if item.Quantity > 0 {
		unit := item.Unit
		if unit != "" {
			return fmt.Sprintf("%s (%g %s)", item.Name, item.Quantity, unit)
		}
		return fmt.Sprintf("%s (%g)", item.Name, item.Quantity)
	}
	return item.Name
}
