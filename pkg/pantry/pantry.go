package pantry

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mkarpov/pantrypal/pkg/freshness"
	"github.com/mkarpov/pantrypal/pkg/logger"
	"github.com/mkarpov/pantrypal/pkg/match"
	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/storage"
)

// Service provides pantry management functionality
type Service struct {
	store      *storage.Store
	classifier *freshness.Classifier
	logger     *logger.Logger
}

// New creates a new pantry service
func New(store *storage.Store, classifier *freshness.Classifier) *Service {
	return &Service{
		store:      store,
		classifier: classifier,
		logger:     logger.New(""),
	}
}

// Key returns the storage key for a chat's pantry
func Key(chatID int64) string {
	return fmt.Sprintf("pantry:%d", chatID)
}

// GetPantry retrieves the pantry for a chat, creating an empty one if none exists
func (s *Service) GetPantry(chatID int64) (*models.Pantry, error) {
	key := Key(chatID)

	var pantry models.Pantry
	err := s.store.Get(key, &pantry)
	if err != nil {
		// Only a missing key means a fresh pantry: an unreadable stored
		// value must surface, not be overwritten with an empty one
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to read pantry: %w", err)
		}
		pantry = models.Pantry{
			ID:          key,
			ChatID:      chatID,
			Items:       make(map[string]models.InventoryItem),
			LastUpdated: time.Now(),
		}

		if err := s.store.Set(key, pantry); err != nil {
			return nil, fmt.Errorf("failed to create pantry: %w", err)
		}
	}

	if pantry.Items == nil {
		pantry.Items = make(map[string]models.InventoryItem)
	}

	return &pantry, nil
}

// AddItem adds an item to the pantry. Items are keyed by normalized name, so
// adding "Milk" twice replaces the earlier entry instead of duplicating it.
func (s *Service) AddItem(chatID int64, item models.InventoryItem) error {
	key := match.Normalize(item.Name)
	if key == "" {
		return fmt.Errorf("item name must not be empty")
	}

	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return err
	}

	item.AddedAt = time.Now()
	pantry.Items[key] = item
	pantry.LastUpdated = time.Now()

	return s.store.Set(pantry.ID, pantry)
}

// AddItems adds multiple items at once
func (s *Service) AddItems(chatID int64, items []models.InventoryItem) error {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return err
	}

	for _, item := range items {
		key := match.Normalize(item.Name)
		if key == "" {
			s.logger.Warn("Skipping item with empty name in chat %d", chatID)
			continue
		}
		item.AddedAt = time.Now()
		pantry.Items[key] = item
	}

	pantry.LastUpdated = time.Now()

	return s.store.Set(pantry.ID, pantry)
}

// RemoveItem removes an item from the pantry by name
func (s *Service) RemoveItem(chatID int64, name string) error {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return err
	}

	delete(pantry.Items, match.Normalize(name))
	pantry.LastUpdated = time.Now()

	return s.store.Set(pantry.ID, pantry)
}

// ListItems returns all items in the pantry
func (s *Service) ListItems(chatID int64) ([]models.InventoryItem, error) {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return nil, err
	}

	items := make([]models.InventoryItem, 0, len(pantry.Items))
	for _, item := range pantry.Items {
		items = append(items, item)
	}

	// Stable display order: map iteration would reshuffle /pantry output
	// on every call
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	return items, nil
}

// ItemNames returns the names of all items in the pantry, for matching
func (s *Service) ItemNames(chatID int64) ([]string, error) {
	items, err := s.ListItems(chatID)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	return names, nil
}

// ItemReport pairs an item with its freshness report
type ItemReport struct {
	Item   models.InventoryItem
	Report models.ExpirationReport
}

// Reports classifies every pantry item against now
func (s *Service) Reports(chatID int64, now time.Time) ([]ItemReport, error) {
	items, err := s.ListItems(chatID)
	if err != nil {
		return nil, err
	}

	reports := make([]ItemReport, len(items))
	for i, item := range items {
		reports[i] = ItemReport{
			Item:   item,
			Report: s.classifier.Classify(item.ExpirationDate, now),
		}
	}

	return reports, nil
}

// ExpiringItems returns items that are expired or expiring soon
func (s *Service) ExpiringItems(chatID int64, now time.Time) ([]ItemReport, error) {
	reports, err := s.Reports(chatID, now)
	if err != nil {
		return nil, err
	}

	expiring := make([]ItemReport, 0)
	for _, r := range reports {
		if r.Report.Status == models.StatusExpired || r.Report.Status == models.StatusExpiringSoon {
			expiring = append(expiring, r)
		}
	}

	return expiring, nil
}

// ResetPantry replaces the pantry for a chat with an empty one
func (s *Service) ResetPantry(chatID int64) error {
	key := Key(chatID)

	pantry := models.Pantry{
		ID:          key,
		ChatID:      chatID,
		Items:       make(map[string]models.InventoryItem),
		LastUpdated: time.Now(),
	}

	return s.store.Set(key, pantry)
}
