package repository

import (
	"context"
	"time"

	"site_cms/internal/domain/models"

	"github.com/google/uuid"
)

type ContentRepository interface {
	GetContent(ctx context.Context, key models.ContentKey) (models.ContentBlock, error)
	UpsertContent(ctx context.Context, block models.ContentBlock) error
	ListPageContent(ctx context.Context, page, language string) ([]models.ContentBlock, error)
}

type BlogRepository interface {
	SaveBlogPost(ctx context.Context, blogPost models.BlogPost) (uuid.UUID, error)
	UpdateBlogPostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error
	DeleteBlogPost(ctx context.Context, postID uuid.UUID) error
	GetBlogPosts(ctx context.Context, statusFilter string, page int, perPage int) ([]models.BlogPost, int, error)
	GetBlogPostByID(ctx context.Context, postID uuid.UUID) (*models.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
}

type TranslationRepository interface {
	UpsertTranslation(ctx context.Context, translation models.BlogTranslation) error
	GetTranslation(ctx context.Context, postID uuid.UUID, language string) (*models.BlogTranslation, error)
	ListTranslations(ctx context.Context, postID uuid.UUID) ([]models.BlogTranslation, error)
}

type RoleRepository interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type MessageRepository interface {
	SaveMessage(ctx context.Context, msg models.ContactMessage) (uuid.UUID, error)
}

type AnalyticsRepository interface {
	SaveWebhookLog(ctx context.Context, log models.WebhookLog) (uuid.UUID, error)
	ListWebhookLogs(ctx context.Context, automationID uuid.UUID, since time.Time) ([]models.WebhookLog, error)
	SaveFormSubmission(ctx context.Context, submission models.FormSubmission) (uuid.UUID, error)
	ListFormSubmissions(ctx context.Context, automationID uuid.UUID, since time.Time) ([]models.FormSubmission, error)
}

type MediaRepository interface {
	CreateMedia(ctx context.Context, media *models.Media) error
	ListPageMedia(ctx context.Context, page string) ([]models.Media, error)
}
