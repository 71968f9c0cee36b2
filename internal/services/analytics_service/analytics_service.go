package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

var ErrInvalidWebhookStatus = errors.New("webhook status must be success or error")

type AnalyticsRepository interface {
	SaveWebhookLog(ctx context.Context, log models.WebhookLog) (uuid.UUID, error)
	ListWebhookLogs(ctx context.Context, automationID uuid.UUID, since time.Time) ([]models.WebhookLog, error)
	SaveFormSubmission(ctx context.Context, sub models.FormSubmission) (uuid.UUID, error)
	ListFormSubmissions(ctx context.Context, automationID uuid.UUID, since time.Time) ([]models.FormSubmission, error)
}

type AnalyticsService struct {
	log         *slog.Logger
	repo        AnalyticsRepository
	defaultDays int
	now         func() time.Time
}

func NewAnalyticsService(log *slog.Logger, repo AnalyticsRepository, defaultDays int) *AnalyticsService {
	if defaultDays < 1 {
		defaultDays = 30
	}
	return &AnalyticsService{
		log:         log,
		repo:        repo,
		defaultDays: defaultDays,
		now:         time.Now,
	}
}

func (s *AnalyticsService) RecordWebhook(ctx context.Context, entry models.WebhookLog) (uuid.UUID, error) {
	const op = "services.analytics_service.RecordWebhook"

	if entry.Status != models.WebhookStatusSuccess && entry.Status != models.WebhookStatusError {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidWebhookStatus)
	}

	id, err := s.repo.SaveWebhookLog(ctx, entry)
	if err != nil {
		s.log.Error("failed to record webhook call",
			slog.String("op", op),
			slog.String("automation_id", entry.ClientAutomationID.String()),
			sl.Err(err),
		)
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *AnalyticsService) RecordForm(ctx context.Context, sub models.FormSubmission) (uuid.UUID, error) {
	const op = "services.analytics_service.RecordForm"

	if sub.FormData == nil {
		sub.FormData = map[string]any{}
	}

	id, err := s.repo.SaveFormSubmission(ctx, sub)
	if err != nil {
		s.log.Error("failed to record form submission",
			slog.String("op", op),
			slog.String("automation_id", sub.ClientAutomationID.String()),
			sl.Err(err),
		)
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// WebhookStats summarizes webhook calls of the last days (UTC calendar days, today included).
func (s *AnalyticsService) WebhookStats(ctx context.Context, automationID uuid.UUID, days int) (models.WebhookStats, error) {
	const op = "services.analytics_service.WebhookStats"

	since, days := s.window(days)

	logs, err := s.repo.ListWebhookLogs(ctx, automationID, since)
	if err != nil {
		return models.WebhookStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return summarizeWebhooks(logs, since, days), nil
}

func (s *AnalyticsService) FormStats(ctx context.Context, automationID uuid.UUID, days int) (models.FormStats, error) {
	const op = "services.analytics_service.FormStats"

	since, days := s.window(days)

	subs, err := s.repo.ListFormSubmissions(ctx, automationID, since)
	if err != nil {
		return models.FormStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return summarizeForms(subs, since, days), nil
}

// Overview loads webhook and form stats concurrently.
func (s *AnalyticsService) Overview(ctx context.Context, automationID uuid.UUID, days int) (models.AnalyticsOverview, error) {
	const op = "services.analytics_service.Overview"

	var overview models.AnalyticsOverview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.WebhookStats(gctx, automationID, days)
		overview.Webhooks = stats
		return err
	})
	g.Go(func() error {
		stats, err := s.FormStats(gctx, automationID, days)
		overview.Forms = stats
		return err
	})

	if err := g.Wait(); err != nil {
		return models.AnalyticsOverview{}, fmt.Errorf("%s: %w", op, err)
	}

	return overview, nil
}

func (s *AnalyticsService) window(days int) (time.Time, int) {
	if days < 1 {
		days = s.defaultDays
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -(days - 1)), days
}

func emptySeries(since time.Time, days int) ([]models.DailyCount, map[string]int) {
	series := make([]models.DailyCount, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := since.AddDate(0, 0, i).Format(dateLayout)
		series[i] = models.DailyCount{Date: date}
		index[date] = i
	}
	return series, index
}

func summarizeWebhooks(logs []models.WebhookLog, since time.Time, days int) models.WebhookStats {
	series, index := emptySeries(since, days)
	stats := models.WebhookStats{}

	var totalResponse int
	for _, l := range logs {
		stats.TotalCalls++
		totalResponse += l.ResponseTimeMs

		success := l.Status == models.WebhookStatusSuccess
		if success {
			stats.SuccessfulCalls++
		} else {
			stats.FailedCalls++
		}

		i, ok := index[l.CreatedAt.UTC().Format(dateLayout)]
		if !ok {
			continue
		}
		series[i].Total++
		if success {
			series[i].Successful++
		} else {
			series[i].Failed++
		}
	}

	if stats.TotalCalls > 0 {
		stats.SuccessRate = round2(float64(stats.SuccessfulCalls) / float64(stats.TotalCalls) * 100)
		stats.AvgResponseTimeMs = round2(float64(totalResponse) / float64(stats.TotalCalls))
	}
	stats.Daily = series

	return stats
}

func summarizeForms(subs []models.FormSubmission, since time.Time, days int) models.FormStats {
	series, index := emptySeries(since, days)
	stats := models.FormStats{}

	for _, sub := range subs {
		stats.TotalSubmissions++
		if i, ok := index[sub.CreatedAt.UTC().Format(dateLayout)]; ok {
			series[i].Total++
		}
	}
	stats.Daily = series

	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
