package stats

import (
	"errors"
	"fmt"

	"github.com/mkarpov/pantrypal/pkg/logger"
	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/storage"
)

// Service provides pantry usage statistics
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new statistics service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New(""),
	}
}

// Key returns the storage key for a chat's statistics
func Key(chatID int64) string {
	return fmt.Sprintf("stats:%d", chatID)
}

// GetStatistics retrieves the statistics for a chat, creating zeroed
// counters if none exist
func (s *Service) GetStatistics(chatID int64) (*models.Statistics, error) {
	var stats models.Statistics
	err := s.store.Get(Key(chatID), &stats)
	if err != nil {
		// Only a missing key means fresh counters: an unreadable stored
		// value must surface, not be overwritten with zeroes
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to read statistics: %w", err)
		}
		stats = models.Statistics{ChatID: chatID}

		if err := s.store.Set(Key(chatID), stats); err != nil {
			return nil, fmt.Errorf("failed to create statistics: %w", err)
		}
	}

	return &stats, nil
}

// RecordItemsAdded increments the added-items counter
func (s *Service) RecordItemsAdded(chatID int64, count int) error {
	stats, err := s.GetStatistics(chatID)
	if err != nil {
		return err
	}

	stats.ItemsAdded += count

	return s.store.Set(Key(chatID), stats)
}

// RecordItemsExpired increments the expired-items (waste) counter
func (s *Service) RecordItemsExpired(chatID int64, count int) error {
	stats, err := s.GetStatistics(chatID)
	if err != nil {
		return err
	}

	stats.ItemsExpired += count

	return s.store.Set(Key(chatID), stats)
}

// RecordRecipeCooked increments the cooked-recipes counter
func (s *Service) RecordRecipeCooked(chatID int64) error {
	stats, err := s.GetStatistics(chatID)
	if err != nil {
		return err
	}

	stats.RecipesCooked++

	return s.store.Set(Key(chatID), stats)
}

// RecordListCleared increments the cleared-shopping-lists counter
func (s *Service) RecordListCleared(chatID int64) error {
	stats, err := s.GetStatistics(chatID)
	if err != nil {
		return err
	}

	stats.ListsCleared++

	return s.store.Set(Key(chatID), stats)
}
