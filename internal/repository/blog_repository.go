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
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	blogTable           = "blog_posts"
	uniqueViolationCode = "23505"
)

var blogColumns = []string{
	"id", "title", "slug", "excerpt", "content", "category", "tags",
	"date", "read_time", "author", "image", "featured", "status",
	"created_at", "updated_at",
}

type BlogRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewBlogRepository(db *pgxpool.Pool) *BlogRepo {
	return &BlogRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (b *BlogRepo) SaveBlogPost(ctx context.Context, blogPost models.BlogPost) (uuid.UUID, error) {
	const op = "repository.blog_repository.SaveBlogPost"

	if blogPost.Tags == nil {
		blogPost.Tags = []string{}
	}
	if blogPost.Date.IsZero() {
		blogPost.Date = time.Now().UTC()
	}

	query, args, err := b.sb.Insert(blogTable).
		Columns(
			"title",
			"slug",
			"excerpt",
			"content",
			"category",
			"tags",
			"date",
			"read_time",
			"author",
			"image",
			"featured",
			"status",
		).
		Values(
			blogPost.Title,
			blogPost.Slug,
			blogPost.Excerpt,
			blogPost.Content,
			blogPost.Category,
			blogPost.Tags,
			blogPost.Date,
			blogPost.ReadTime,
			blogPost.Author,
			blogPost.Image,
			blogPost.Featured,
			blogPost.Status,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = b.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrPostExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (b *BlogRepo) UpdateBlogPostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.blog_repository.UpdateBlogPostFields"

	allowedFields := map[string]bool{
		"title":     true,
		"slug":      true,
		"excerpt":   true,
		"content":   true,
		"category":  true,
		"tags":      true,
		"date":      true,
		"read_time": true,
		"author":    true,
		"image":     true,
		"featured":  true,
		"status":    true,
	}

	if len(updates) == 0 {
		return fmt.Errorf("%s: no fields to update", op)
	}

	updateBuilder := b.sb.Update(blogTable).
		Set("updated_at", time.Now().UTC())

	for field, value := range updates {
		if !allowedFields[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		updateBuilder = updateBuilder.Set(field, value)
	}

	query, args, err := updateBuilder.Where(sq.Eq{"id": postID}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := b.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrPostExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

// DeleteBlogPost removes the post; its translations go with it through the foreign key.
func (b *BlogRepo) DeleteBlogPost(ctx context.Context, postID uuid.UUID) error {
	const op = "repository.blog_repository.DeleteBlogPost"

	query, args, err := b.sb.Delete(blogTable).
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := b.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

func (b *BlogRepo) GetBlogPostByID(ctx context.Context, postID uuid.UUID) (*models.BlogPost, error) {
	const op = "repository.blog_repository.GetBlogPostByID"

	return b.getOne(ctx, op, sq.Eq{"id": postID})
}

func (b *BlogRepo) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	const op = "repository.blog_repository.GetBlogPostBySlug"

	return b.getOne(ctx, op, sq.Eq{"slug": slug})
}

func (b *BlogRepo) getOne(ctx context.Context, op string, where sq.Eq) (*models.BlogPost, error) {
	query, args, err := b.sb.Select(blogColumns...).
		From(blogTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post, err := scanPost(b.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &post, nil
}

// GetBlogPosts lists posts newest first. statusFilter is "all", "draft" or "published".
// A perPage below one returns every matching post.
func (b *BlogRepo) GetBlogPosts(
	ctx context.Context,
	statusFilter string,
	page int,
	perPage int,
) ([]models.BlogPost, int, error) {
	const op = "repository.blog_repository.GetBlogPosts"

	queryBuilder := b.sb.Select(blogColumns...).From(blogTable)
	countBuilder := b.sb.Select("COUNT(*)").From(blogTable)

	switch statusFilter {
	case models.PostStatusDraft, models.PostStatusPublished:
		queryBuilder = queryBuilder.Where(sq.Eq{"status": statusFilter})
		countBuilder = countBuilder.Where(sq.Eq{"status": statusFilter})
	case "all", "":
	default:
		return nil, 0, fmt.Errorf("%s: invalid status filter '%s'", op, statusFilter)
	}

	totalCount, err := b.count(ctx, countBuilder)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	queryBuilder = queryBuilder.OrderBy("date DESC", "created_at DESC")
	if perPage > 0 {
		if page < 1 {
			page = 1
		}
		if perPage > 100 {
			perPage = 100
		}
		queryBuilder = queryBuilder.
			Limit(uint64(perPage)).
			Offset(uint64((page - 1) * perPage))
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := b.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	posts := make([]models.BlogPost, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, totalCount, nil
}

func (b *BlogRepo) count(ctx context.Context, builder sq.SelectBuilder) (int, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error build query: %w", err)
	}

	var count int
	if err := b.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error execute query: %w (SQL: %s)", err, query)
	}

	return count, nil
}

func scanPost(row pgx.Row) (models.BlogPost, error) {
	var post models.BlogPost
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.Category,
		&post.Tags,
		&post.Date,
		&post.ReadTime,
		&post.Author,
		&post.Image,
		&post.Featured,
		&post.Status,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if post.Tags == nil {
		post.Tags = []string{}
	}

	return post, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
