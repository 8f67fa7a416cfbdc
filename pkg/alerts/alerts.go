package alerts

import (
	"strconv"
	"strings"
	"time"

	"github.com/mkarpov/pantrypal/pkg/freshness"
	"github.com/mkarpov/pantrypal/pkg/logger"
	"github.com/mkarpov/pantrypal/pkg/messages"
	"github.com/mkarpov/pantrypal/pkg/models"
	"github.com/mkarpov/pantrypal/pkg/pantry"
	"github.com/mkarpov/pantrypal/pkg/stats"
	"github.com/mkarpov/pantrypal/pkg/storage"
	"github.com/mkarpov/pantrypal/pkg/telegram"
)

// Service runs the daily expiration sweep
type Service struct {
	store          *storage.Store
	bot            *telegram.Bot
	pantryService  *pantry.Service
	statsService   *stats.Service
	messageService *messages.Service
	alertHour      int
	logger         *logger.Logger
	stopChan       chan struct{}

	// lastSweep guards against sending more than one digest per chat per day
	lastSweep map[int64]freshness.Date
}

// New creates a new alert service. alertHour is the local hour (0-23) at
// which the daily digest is sent.
func New(
	store *storage.Store,
	bot *telegram.Bot,
	pantryService *pantry.Service,
	statsService *stats.Service,
	messageService *messages.Service,
	alertHour int,
) *Service {
	return &Service{
		store:          store,
		bot:            bot,
		pantryService:  pantryService,
		statsService:   statsService,
		messageService: messageService,
		alertHour:      alertHour,
		logger:         logger.New("alerts"),
		stopChan:       make(chan struct{}),
		lastSweep:      make(map[int64]freshness.Date),
	}
}

// Start starts the alert service
func (s *Service) Start() {
	s.logger.Info("Starting expiration alert scheduler (alert hour %d)", s.alertHour)
	go s.run()
}

// Stop stops the alert service
func (s *Service) Stop() {
	s.logger.Info("Stopping expiration alert scheduler")
	close(s.stopChan)
}

// run ticks every minute and triggers the sweep within the alert hour
func (s *Service) run() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			if now.Hour() == s.alertHour {
				s.Sweep(now)
			}
		case <-s.stopChan:
			return
		}
	}
}

// Sweep classifies every known pantry and sends digests for chats with
// expired or expiring-soon items. Chats already swept today are skipped.
func (s *Service) Sweep(now time.Time) {
	keys, err := s.store.List("pantry:")
	if err != nil {
		s.logger.Error("Failed to list pantries: %v", err)
		return
	}

	today := freshness.DateOf(now)
	for _, key := range keys {
		chatID, ok := chatIDFromKey(key)
		if !ok {
			s.logger.Warn("Skipping malformed pantry key %s", key)
			continue
		}

		if s.lastSweep[chatID] == today {
			continue
		}

		s.sweepChat(chatID, now)
		s.lastSweep[chatID] = today
	}
}

// sweepChat sends the digest for one chat if anything needs attention
func (s *Service) sweepChat(chatID int64, now time.Time) {
	expiring, err := s.pantryService.ExpiringItems(chatID, now)
	if err != nil {
		s.logger.Error("Failed to classify pantry for chat %d: %v", chatID, err)
		return
	}

	if len(expiring) == 0 {
		return
	}

	expiredCount := 0
	for _, r := range expiring {
		if r.Report.Status == models.StatusExpired {
			expiredCount++
		}
	}
	if expiredCount > 0 {
		if err := s.statsService.RecordItemsExpired(chatID, expiredCount); err != nil {
			s.logger.Error("Failed to record expired items for chat %d: %v", chatID, err)
		}
	}

	digest := s.messageService.FormatExpirationDigest(expiring)
	if digest == "" {
		return
	}

	s.logger.Info("Sending expiration digest to chat %d (%d items)", chatID, len(expiring))
	if _, err := s.bot.SendMessage(chatID, digest); err != nil {
		s.logger.Error("Failed to send digest to chat %d: %v", chatID, err)
	}
}

// chatIDFromKey extracts the chat ID from a "pantry:<id>" storage key
func chatIDFromKey(key string) (int64, bool) {
	raw, ok := strings.CutPrefix(key, "pantry:")
	if !ok {
		return 0, false
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return chatID, true
}
