package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"site_cms/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type AnalyticsRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AnalyticsRepo) SaveWebhookLog(ctx context.Context, log models.WebhookLog) (uuid.UUID, error) {
	const op = "repository.analytics_repository.SaveWebhookLog"

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert("webhook_logs").
		Columns("client_automation_id", "status", "status_code", "response_time_ms", "error_message", "created_at").
		Values(log.ClientAutomationID, log.Status, log.StatusCode, log.ResponseTimeMs, log.ErrorMessage, log.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *AnalyticsRepo) ListWebhookLogs(ctx context.Context, automationID uuid.UUID, since time.Time) ([]models.WebhookLog, error) {
	const op = "repository.analytics_repository.ListWebhookLogs"

	query, args, err := r.sb.Select("id", "client_automation_id", "status", "status_code", "response_time_ms", "error_message", "created_at").
		From("webhook_logs").
		Where(sq.Eq{"client_automation_id": automationID}).
		Where(sq.GtOrEq{"created_at": since}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	logs := make([]models.WebhookLog, 0)
	for rows.Next() {
		var l models.WebhookLog
		if err := rows.Scan(&l.ID, &l.ClientAutomationID, &l.Status, &l.StatusCode, &l.ResponseTimeMs, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return logs, nil
}

func (r *AnalyticsRepo) SaveFormSubmission(ctx context.Context, submission models.FormSubmission) (uuid.UUID, error) {
	const op = "repository.analytics_repository.SaveFormSubmission"

	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	if submission.FormData == nil {
		submission.FormData = map[string]any{}
	}

	formData, err := json.Marshal(submission.FormData)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: marshal form data: %w", op, err)
	}

	query, args, err := r.sb.Insert("form_submissions").
		Columns("client_automation_id", "form_data", "source_url", "created_at").
		Values(submission.ClientAutomationID, formData, submission.SourceURL, submission.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *AnalyticsRepo) ListFormSubmissions(ctx context.Context, automationID uuid.UUID, since time.Time) ([]models.FormSubmission, error) {
	const op = "repository.analytics_repository.ListFormSubmissions"

	query, args, err := r.sb.Select("id", "client_automation_id", "form_data", "source_url", "created_at").
		From("form_submissions").
		Where(sq.Eq{"client_automation_id": automationID}).
		Where(sq.GtOrEq{"created_at": since}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	submissions := make([]models.FormSubmission, 0)
	for rows.Next() {
		var (
			s       models.FormSubmission
			rawData []byte
		)
		if err := rows.Scan(&s.ID, &s.ClientAutomationID, &rawData, &s.SourceURL, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(rawData) > 0 {
			if err := json.Unmarshal(rawData, &s.FormData); err != nil {
				return nil, fmt.Errorf("%s: unmarshal form data: %w", op, err)
			}
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return submissions, nil
}
