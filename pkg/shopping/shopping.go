package shopping

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mkarpov/pantrypal/pkg/logger"
	"github.com/mkarpov/pantrypal/pkg/match"
	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/storage"
)

// Service provides shopping list functionality
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new shopping list service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New(""),
	}
}

// Key returns the storage key for a chat's shopping list
func Key(chatID int64) string {
	return fmt.Sprintf("shopping:%d", chatID)
}

// GetList retrieves the shopping list for a chat, creating an empty one if
// none exists
func (s *Service) GetList(chatID int64) (*models.ShoppingList, error) {
	key := Key(chatID)

	var list models.ShoppingList
	err := s.store.Get(key, &list)
	if err != nil {
		// Only a missing key means a fresh list: an unreadable stored
		// value must surface, not be overwritten with an empty one
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to read shopping list: %w", err)
		}
		list = models.ShoppingList{
			ID:          key,
			ChatID:      chatID,
			Items:       make(map[string]models.InventoryItem),
			LastUpdated: time.Now(),
		}

		if err := s.store.Set(key, list); err != nil {
			return nil, fmt.Errorf("failed to create shopping list: %w", err)
		}
	}

	if list.Items == nil {
		list.Items = make(map[string]models.InventoryItem)
	}

	return &list, nil
}

// AddItem adds an item to the shopping list
func (s *Service) AddItem(chatID int64, item models.InventoryItem) error {
	key := match.Normalize(item.Name)
	if key == "" {
		return fmt.Errorf("item name must not be empty")
	}

	list, err := s.GetList(chatID)
	if err != nil {
		return err
	}

	item.AddedAt = time.Now()
	list.Items[key] = item
	list.LastUpdated = time.Now()

	return s.store.Set(list.ID, list)
}

// AddMissing adds a suggestion's missing ingredients to the shopping list,
// so a chat can shop for whatever keeps a recipe from being makeable.
func (s *Service) AddMissing(chatID int64, result models.MatchResult) (int, error) {
	list, err := s.GetList(chatID)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, ingredient := range result.Missing {
		key := match.Normalize(ingredient.Name)
		if key == "" {
			continue
		}
		list.Items[key] = models.InventoryItem{
			Name:     ingredient.Name,
			Quantity: ingredient.Quantity,
			Unit:     ingredient.Unit,
			AddedAt:  time.Now(),
		}
		added++
	}

	list.LastUpdated = time.Now()

	if err := s.store.Set(list.ID, list); err != nil {
		return 0, err
	}

	s.logger.Info("Added %d missing ingredients of %s to shopping list for chat %d",
		added, result.Recipe.Name, chatID)
	return added, nil
}

// RemoveItem removes an item from the shopping list by name
func (s *Service) RemoveItem(chatID int64, name string) error {
	list, err := s.GetList(chatID)
	if err != nil {
		return err
	}

	delete(list.Items, match.Normalize(name))
	list.LastUpdated = time.Now()

	return s.store.Set(list.ID, list)
}

// ListItems returns all items on the shopping list
func (s *Service) ListItems(chatID int64) ([]models.InventoryItem, error) {
	list, err := s.GetList(chatID)
	if err != nil {
		return nil, err
	}

	items := make([]models.InventoryItem, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, item)
	}

	// Stable display order for /shopping output
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	return items, nil
}

// ClearList replaces the shopping list for a chat with an empty one
func (s *Service) ClearList(chatID int64) error {
	key := Key(chatID)

	list := models.ShoppingList{
		ID:          key,
		ChatID:      chatID,
		Items:       make(map[string]models.InventoryItem),
		LastUpdated: time.Now(),
	}

	return s.store.Set(key, list)
}
