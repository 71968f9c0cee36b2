package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"site_cms/internal/cache"
	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"

	"github.com/google/uuid"
)

const (
	historyKey       = "history"
	DefaultRetention = 24 * time.Hour
)

// NotifyService keeps admin notifications for the retention window.
// When a history cache is set the list survives restarts and is shared between instances.
type NotifyService struct {
	log       *slog.Logger
	history   *cache.Typed[[]models.Notification]
	retention time.Duration
	now       func() time.Time

	mu    sync.Mutex
	items []models.Notification
}

func NewNotifyService(log *slog.Logger, history *cache.Typed[[]models.Notification], retention time.Duration) *NotifyService {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &NotifyService{
		log:       log,
		history:   history,
		retention: retention,
		now:       time.Now,
	}
}

// Restore loads the persisted history, dropping expired entries.
func (s *NotifyService) Restore(ctx context.Context) error {
	const op = "notify_service.Restore"

	if s.history == nil {
		return nil
	}

	items, ok, err := s.history.Get(ctx, historyKey)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.items = items
	s.pruneLocked()
	s.mu.Unlock()

	return nil
}

func (s *NotifyService) Notify(ctx context.Context, typ models.NotificationType, title, message string) models.Notification {
	const op = "notify_service.Notify"

	n := models.Notification{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Message:   message,
		Timestamp: s.now().UTC(),
	}

	s.mu.Lock()
	s.items = append(s.items, n)
	s.pruneLocked()
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.persist(ctx, op, snapshot)

	return n
}

// List returns live notifications, newest first.
func (s *NotifyService) List(ctx context.Context) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()

	out := make([]models.Notification, len(s.items))
	for i, n := range s.items {
		out[len(s.items)-1-i] = n
	}

	return out
}

func (s *NotifyService) Clear(ctx context.Context) error {
	const op = "notify_service.Clear"

	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	if s.history == nil {
		return nil
	}

	if err := s.history.Invalidate(ctx, historyKey); err != nil {
		s.log.Error("failed to clear notification history", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *NotifyService) pruneLocked() {
	cutoff := s.now().Add(-s.retention)

	kept := s.items[:0]
	for _, n := range s.items {
		if n.Timestamp.After(cutoff) {
			kept = append(kept, n)
		}
	}
	s.items = kept
}

func (s *NotifyService) copyLocked() []models.Notification {
	out := make([]models.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *NotifyService) persist(ctx context.Context, op string, items []models.Notification) {
	if s.history == nil {
		return
	}
	if err := s.history.Set(ctx, historyKey, items); err != nil {
		s.log.Warn("failed to persist notification history", slog.String("op", op), sl.Err(err))
	}
}
