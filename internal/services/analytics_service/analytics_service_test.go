package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/handlers/slogdiscard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) SaveWebhookLog(ctx context.Context, log models.WebhookLog) (uuid.UUID, error) {
	args := m.Called(ctx, log)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAnalyticsRepository) ListWebhookLogs(ctx context.Context, automationID uuid.UUID, since time.Time) ([]models.WebhookLog, error) {
	args := m.Called(ctx, automationID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WebhookLog), args.Error(1)
}

func (m *MockAnalyticsRepository) SaveFormSubmission(ctx context.Context, sub models.FormSubmission) (uuid.UUID, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAnalyticsRepository) ListFormSubmissions(ctx context.Context, automationID uuid.UUID, since time.Time) ([]models.FormSubmission, error) {
	args := m.Called(ctx, automationID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormSubmission), args.Error(1)
}

var fixedNow = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestService(repo AnalyticsRepository) *AnalyticsService {
	svc := NewAnalyticsService(slogdiscard.NewDiscardLogger(), repo, 30)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAnalyticsService_WebhookStats(t *testing.T) {
	ctx := context.Background()
	automationID := uuid.New()
	since := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	t.Run("totals rate and daily series", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		logs := []models.WebhookLog{
			{Status: models.WebhookStatusSuccess, ResponseTimeMs: 100, CreatedAt: since.Add(2 * time.Hour)},
			{Status: models.WebhookStatusError, ResponseTimeMs: 300, CreatedAt: since.Add(26 * time.Hour)},
			{Status: models.WebhookStatusSuccess, ResponseTimeMs: 200, CreatedAt: since.Add(27 * time.Hour)},
		}
		repo.On("ListWebhookLogs", ctx, automationID, since).Return(logs, nil)

		stats, err := newTestService(repo).WebhookStats(ctx, automationID, 3)
		require.NoError(t, err)

		assert.Equal(t, 3, stats.TotalCalls)
		assert.Equal(t, 2, stats.SuccessfulCalls)
		assert.Equal(t, 1, stats.FailedCalls)
		assert.Equal(t, 66.67, stats.SuccessRate)
		assert.Equal(t, 200.0, stats.AvgResponseTimeMs)

		require.Len(t, stats.Daily, 3)
		assert.Equal(t, "2024-03-08", stats.Daily[0].Date)
		assert.Equal(t, "2024-03-10", stats.Daily[2].Date)
		assert.Equal(t, 1, stats.Daily[0].Total)
		assert.Equal(t, 2, stats.Daily[1].Total)
		assert.Equal(t, 1, stats.Daily[1].Failed)
		assert.Equal(t, 0, stats.Daily[2].Total)
		repo.AssertExpectations(t)
	})

	t.Run("no calls yields zero rate", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		repo.On("ListWebhookLogs", ctx, automationID, since).Return([]models.WebhookLog{}, nil)

		stats, err := newTestService(repo).WebhookStats(ctx, automationID, 3)
		require.NoError(t, err)
		assert.Equal(t, 0.0, stats.SuccessRate)
		assert.Equal(t, 0.0, stats.AvgResponseTimeMs)
		assert.Len(t, stats.Daily, 3)
	})

	t.Run("default window", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		defaultSince := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
		repo.On("ListWebhookLogs", ctx, automationID, defaultSince).Return([]models.WebhookLog{}, nil)

		stats, err := newTestService(repo).WebhookStats(ctx, automationID, 0)
		require.NoError(t, err)
		assert.Len(t, stats.Daily, 30)
		repo.AssertExpectations(t)
	})
}

func TestAnalyticsService_RecordWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid status", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		_, err := newTestService(repo).RecordWebhook(ctx, models.WebhookLog{Status: "pending"})
		assert.True(t, errors.Is(err, ErrInvalidWebhookStatus))
		repo.AssertNotCalled(t, "SaveWebhookLog", mock.Anything, mock.Anything)
	})

	t.Run("stored", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		entry := models.WebhookLog{ClientAutomationID: uuid.New(), Status: models.WebhookStatusSuccess, StatusCode: 200}
		id := uuid.New()
		repo.On("SaveWebhookLog", ctx, entry).Return(id, nil)

		got, err := newTestService(repo).RecordWebhook(ctx, entry)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})
}

func TestAnalyticsService_RecordForm(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnalyticsRepository)
	sub := models.FormSubmission{ClientAutomationID: uuid.New()}
	repo.On("SaveFormSubmission", ctx, mock.MatchedBy(func(s models.FormSubmission) bool {
		return s.FormData != nil
	})).Return(uuid.New(), nil)

	_, err := newTestService(repo).RecordForm(ctx, sub)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAnalyticsService_Overview(t *testing.T) {
	ctx := context.Background()
	automationID := uuid.New()

	t.Run("combines both", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		repo.On("ListWebhookLogs", mock.Anything, automationID, mock.Anything).
			Return([]models.WebhookLog{{Status: models.WebhookStatusSuccess, CreatedAt: fixedNow}}, nil)
		repo.On("ListFormSubmissions", mock.Anything, automationID, mock.Anything).
			Return([]models.FormSubmission{{CreatedAt: fixedNow}, {CreatedAt: fixedNow}}, nil)

		overview, err := newTestService(repo).Overview(ctx, automationID, 7)
		require.NoError(t, err)
		assert.Equal(t, 1, overview.Webhooks.TotalCalls)
		assert.Equal(t, 100.0, overview.Webhooks.SuccessRate)
		assert.Equal(t, 2, overview.Forms.TotalSubmissions)
		assert.Equal(t, 2, overview.Forms.Daily[6].Total)
	})

	t.Run("error from either side", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		repo.On("ListWebhookLogs", mock.Anything, automationID, mock.Anything).
			Return([]models.WebhookLog{}, nil)
		repo.On("ListFormSubmissions", mock.Anything, automationID, mock.Anything).
			Return(nil, errors.New("db down"))

		_, err := newTestService(repo).Overview(ctx, automationID, 7)
		require.Error(t, err)
	})
}
