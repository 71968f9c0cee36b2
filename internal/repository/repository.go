package repository

import (
	"context"

	"site_cms/internal/storage/postgresql"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	db          *pgxpool.Pool
	Content     ContentRepository
	Blog        BlogRepository
	Translation TranslationRepository
	Role        RoleRepository
	Message     MessageRepository
	Analytics   AnalyticsRepository
	Media       MediaRepository
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	db, err := postgresql.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	return NewFromPool(db), nil
}

func NewFromPool(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:          db,
		Content:     NewContentRepository(db),
		Blog:        NewBlogRepository(db),
		Translation: NewTranslationRepository(db),
		Role:        NewRoleRepository(db),
		Message:     NewMessageRepository(db),
		Analytics:   NewAnalyticsRepository(db),
		Media:       NewMediaRepository(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}
