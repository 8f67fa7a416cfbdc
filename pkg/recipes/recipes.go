package recipes

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mkarpov/pantrypal/pkg/logger"
	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/openai"
	"github.com/mkarpov/pantrypal/pkg/storage"
)

// Service provides recipe catalog functionality
type Service struct {
	store        *storage.Store
	openaiClient *openai.Client
	logger       *logger.Logger
}

// New creates a new recipe catalog service
func New(store *storage.Store, openaiClient *openai.Client) *Service {
	return &Service{
		store:        store,
		openaiClient: openaiClient,
		logger:       logger.New(""),
	}
}

// Key returns the storage key for a recipe
func Key(recipeID string) string {
	return fmt.Sprintf("recipe:%s", recipeID)
}

// AddRecipe stores a recipe in the catalog, assigning it an ID if it has none
func (s *Service) AddRecipe(recipe models.Recipe) (*models.Recipe, error) {
	if recipe.Name == "" {
		return nil, fmt.Errorf("recipe name must not be empty")
	}
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if recipe.AddedAt.IsZero() {
		recipe.AddedAt = time.Now()
	}

	if err := s.store.Set(Key(recipe.ID), recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	s.logger.Info("Added recipe %s (%s)", recipe.Name, recipe.ID)
	return &recipe, nil
}

// GetRecipe retrieves a single recipe by ID
func (s *Service) GetRecipe(recipeID string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.store.Get(Key(recipeID), &recipe); err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe from the catalog
func (s *Service) DeleteRecipe(recipeID string) error {
	return s.store.Delete(Key(recipeID))
}

// ListRecipes returns the whole catalog, ordered by when recipes were added
// so that suggestion ranking sees a stable catalog order.
func (s *Service) ListRecipes() ([]models.Recipe, error) {
	keys, err := s.store.List("recipe:")
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]models.Recipe, 0, len(keys))
	for _, key := range keys {
		var recipe models.Recipe
		if err := s.store.Get(key, &recipe); err != nil {
			s.logger.Error("Failed to get recipe %s: %v", key, err)
			continue
		}
		recipes = append(recipes, recipe)
	}

	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].AddedAt.Before(recipes[j].AddedAt)
	})

	return recipes, nil
}

// ImportRecipe fetches a recipe's details (ingredients, instructions) from
// the LLM and stores it in the catalog.
func (s *Service) ImportRecipe(name, cuisine, addedBy string) (*models.Recipe, error) {
	fetched, err := s.openaiClient.FetchRecipe(name, cuisine)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe details: %w", err)
	}

	fetched.AddedBy = addedBy
	return s.AddRecipe(*fetched)
}
