package repository

import (
	"context"
	"fmt"
	"time"

	"site_cms/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

type MediaRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMediaRepository(db *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *MediaRepo) CreateMedia(ctx context.Context, media *models.Media) error {
	const op = "repository.media_repository.CreateMedia"

	if media.CreatedAt.IsZero() {
		media.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert("media").
		Columns(
			"id",
			"uploader_id",
			"page",
			"section_name",
			"original_filename",
			"storage_path",
			"url",
			"file_size",
			"mime_type",
			"created_at",
		).
		Values(
			media.ID,
			media.UploaderID,
			media.Page,
			media.Section,
			media.OriginalFilename,
			media.StoragePath,
			media.URL,
			media.FileSize,
			media.MimeType,
			media.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *MediaRepo) ListPageMedia(ctx context.Context, page string) ([]models.Media, error) {
	const op = "repository.media_repository.ListPageMedia"

	query, args, err := r.sb.Select(
		"id", "uploader_id", "page", "section_name", "original_filename",
		"storage_path", "url", "file_size", "mime_type", "created_at",
	).
		From("media").
		Where(sq.Eq{"page": page}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	media := make([]models.Media, 0)
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(
			&m.ID, &m.UploaderID, &m.Page, &m.Section, &m.OriginalFilename,
			&m.StoragePath, &m.URL, &m.FileSize, &m.MimeType, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		media = append(media, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return media, nil
}
