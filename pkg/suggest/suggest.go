// Package suggest recomputes the ranked suggestion list on demand from the
// current pantry snapshot and recipe catalog. There is no watch-and-recompute
// machinery here: callers invoke Suggestions whenever the pantry or catalog
// changes and they want fresh results.
package suggest

import (
	"fmt"

	"github.com/mkarpov/pantrypal/pkg/logger"
	"github.com/mkarpov/pantrypal/pkg/match"
	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/pantry"
	"github.com/mkarpov/pantrypal/pkg/recipes"
)

// Service produces ranked recipe suggestions for a chat
type Service struct {
	pantryService *pantry.Service
	recipeService *recipes.Service
	minPercent    float64
	logger        *logger.Logger
}

// New creates a new suggestion service with the given retention threshold
func New(pantryService *pantry.Service, recipeService *recipes.Service, minPercent float64) *Service {
	return &Service{
		pantryService: pantryService,
		recipeService: recipeService,
		minPercent:    minPercent,
		logger:        logger.New(""),
	}
}

// Suggestions ranks the whole catalog against the chat's current pantry
func (s *Service) Suggestions(chatID int64) ([]models.MatchResult, error) {
	names, err := s.pantryService.ItemNames(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to read pantry: %w", err)
	}

	catalog, err := s.recipeService.ListRecipes()
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe catalog: %w", err)
	}

	results := match.Rank(names, catalog, s.minPercent)
	s.logger.Info("Ranked %d of %d recipes for chat %d (threshold %.0f%%)",
		len(results), len(catalog), chatID, s.minPercent)

	return results, nil
}
