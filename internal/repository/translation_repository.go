package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"site_cms/internal/domain/models"
	"site_cms/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const translationTable = "blog_translations"

type TranslationRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewTranslationRepository(db *pgxpool.Pool) *TranslationRepo {
	return &TranslationRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// UpsertTranslation inserts or replaces the (post, language) row in a single statement,
// so concurrent writers never produce a duplicate.
func (r *TranslationRepo) UpsertTranslation(ctx context.Context, t models.BlogTranslation) error {
	const op = "repository.translation_repository.UpsertTranslation"

	now := time.Now().UTC()

	query, args, err := r.sb.Insert(translationTable).
		Columns("blog_post_id", "language", "title", "excerpt", "content", "created_at", "updated_at").
		Values(t.BlogPostID, t.Language, t.Title, t.Excerpt, t.Content, now, now).
		Suffix(`ON CONFLICT (blog_post_id, language) DO UPDATE SET
			title = EXCLUDED.title,
			excerpt = EXCLUDED.excerpt,
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *TranslationRepo) GetTranslation(ctx context.Context, postID uuid.UUID, language string) (*models.BlogTranslation, error) {
	const op = "repository.translation_repository.GetTranslation"

	query, args, err := r.sb.Select("id", "blog_post_id", "language", "title", "excerpt", "content", "created_at", "updated_at").
		From(translationTable).
		Where(sq.Eq{"blog_post_id": postID, "language": language}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var t models.BlogTranslation
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.BlogPostID, &t.Language, &t.Title, &t.Excerpt, &t.Content, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrTranslationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &t, nil
}

func (r *TranslationRepo) ListTranslations(ctx context.Context, postID uuid.UUID) ([]models.BlogTranslation, error) {
	const op = "repository.translation_repository.ListTranslations"

	query, args, err := r.sb.Select("id", "blog_post_id", "language", "title", "excerpt", "content", "created_at", "updated_at").
		From(translationTable).
		Where(sq.Eq{"blog_post_id": postID}).
		OrderBy("language").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	translations := make([]models.BlogTranslation, 0)
	for rows.Next() {
		var t models.BlogTranslation
		if err := rows.Scan(&t.ID, &t.BlogPostID, &t.Language, &t.Title, &t.Excerpt, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		translations = append(translations, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return translations, nil
}
