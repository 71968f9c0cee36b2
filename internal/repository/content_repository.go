package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"site_cms/internal/domain/models"
	"site_cms/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const contentTable = "page_content"

type ContentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ContentRepo) GetContent(ctx context.Context, key models.ContentKey) (models.ContentBlock, error) {
	const op = "repository.content_repository.GetContent"

	query, args, err := r.sb.Select("page", "section_name", "language", "content", "updated_at").
		From(contentTable).
		Where(sq.Eq{
			"page":         key.Page,
			"section_name": key.Section,
			"language":     key.Language,
		}).
		ToSql()
	if err != nil {
		return models.ContentBlock{}, fmt.Errorf("%s: %w", op, err)
	}

	var block models.ContentBlock
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&block.Page,
		&block.Section,
		&block.Language,
		&block.Content,
		&block.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ContentBlock{}, fmt.Errorf("%s: %w", op, storage.ErrContentNotFound)
		}
		return models.ContentBlock{}, fmt.Errorf("%s: %w", op, err)
	}

	return block, nil
}

// UpsertContent writes the block in one statement keyed by (page, section_name, language).
func (r *ContentRepo) UpsertContent(ctx context.Context, block models.ContentBlock) error {
	const op = "repository.content_repository.UpsertContent"

	if block.UpdatedAt.IsZero() {
		block.UpdatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert(contentTable).
		Columns("page", "section_name", "language", "content", "updated_at").
		Values(block.Page, block.Section, block.Language, block.Content, block.UpdatedAt).
		Suffix("ON CONFLICT (page, section_name, language) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *ContentRepo) ListPageContent(ctx context.Context, page, language string) ([]models.ContentBlock, error) {
	const op = "repository.content_repository.ListPageContent"

	query, args, err := r.sb.Select("page", "section_name", "language", "content", "updated_at").
		From(contentTable).
		Where(sq.Eq{"page": page, "language": language}).
		OrderBy("section_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	blocks := make([]models.ContentBlock, 0)
	for rows.Next() {
		var block models.ContentBlock
		if err := rows.Scan(&block.Page, &block.Section, &block.Language, &block.Content, &block.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return blocks, nil
}
