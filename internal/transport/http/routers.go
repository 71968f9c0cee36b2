package http

import (
	"context"
	"log/slog"

	"site_cms/internal/domain/models"
	contactsvc "site_cms/internal/services/contact_service"
	mediasvc "site_cms/internal/services/media_service"
	"site_cms/internal/services/postcache"
	translationsvc "site_cms/internal/services/translation_service"
	"site_cms/internal/transport/http/dto"

	"github.com/google/uuid"
)

type ContentService interface {
	Get(ctx context.Context, page, section, language string) string
	GetPage(ctx context.Context, page, language string) map[string]string
	SourceLanguage() string
}

type ContentEditor interface {
	Commit(ctx context.Context, page, section, language, text string) (string, error)
}

type BlogService interface {
	CreatePost(ctx context.Context, req dto.CreateBlogPostRequest) (*dto.BlogPostResponse, error)
	UpdatePost(ctx context.Context, postID uuid.UUID, req dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error)
	GetPostByID(ctx context.Context, id uuid.UUID) (*dto.BlogPostResponse, error)
	GetPostBySlug(ctx context.Context, slug, language string, includeDrafts bool) (*dto.BlogPostResponse, error)
	ListPosts(ctx context.Context, statusFilter string, page, perPage int) (*dto.BlogPostListResponse, error)
}

type PostCache interface {
	Load(ctx context.Context) ([]models.BlogPost, <-chan postcache.Revalidation, error)
	Refresh(ctx context.Context) (bool, error)
	Delete(ctx context.Context, postID uuid.UUID) error
	ToggleStatus(ctx context.Context, postID uuid.UUID) (models.BlogPost, error)
	Invalidate(ctx context.Context) error
}

type BlogTranslationService interface {
	UpsertTranslation(ctx context.Context, postID uuid.UUID, language string, fields models.TranslationFields) error
	GetTranslations(ctx context.Context, postID uuid.UUID) (models.TranslationSet, error)
	AutoTranslate(ctx context.Context, postID uuid.UUID) (*translationsvc.Report, error)
	TargetLanguages() []string
}

type TranslationService interface {
	TranslateAll(ctx context.Context, fields models.TranslationFields, languages []string) translationsvc.Report
}

type TextTranslator interface {
	TranslateText(ctx context.Context, text, targetLang string) (string, error)
}

type NotifyService interface {
	List(ctx context.Context) []models.Notification
	Clear(ctx context.Context) error
}

type ContactService interface {
	Submit(ctx context.Context, msg models.ContactMessage) (*contactsvc.SubmitResult, error)
}

type AnalyticsService interface {
	RecordWebhook(ctx context.Context, entry models.WebhookLog) (uuid.UUID, error)
	RecordForm(ctx context.Context, sub models.FormSubmission) (uuid.UUID, error)
	WebhookStats(ctx context.Context, automationID uuid.UUID, days int) (models.WebhookStats, error)
	FormStats(ctx context.Context, automationID uuid.UUID, days int) (models.FormStats, error)
	Overview(ctx context.Context, automationID uuid.UUID, days int) (models.AnalyticsOverview, error)
}

type MediaService interface {
	UploadImage(ctx context.Context, input mediasvc.UploadImageInput) (*models.Media, error)
	ListPageMedia(ctx context.Context, page string) ([]models.Media, error)
}

type Services struct {
	Content          ContentService
	Editor           ContentEditor
	Blog             BlogService
	Posts            PostCache
	BlogTranslations BlogTranslationService
	Translation      TranslationService
	Translator       TextTranslator
	Notifications    NotifyService
	Contact          ContactService
	Analytics        AnalyticsService
	Media            MediaService
}

type Routers struct {
	log              *slog.Logger
	ContentService   ContentService
	ContentEditor    ContentEditor
	BlogService      BlogService
	PostCache        PostCache
	BlogTranslations BlogTranslationService
	Translation      TranslationService
	Translator       TextTranslator
	Notifications    NotifyService
	ContactService   ContactService
	AnalyticsService AnalyticsService
	MediaService     MediaService
}

func NewRouter(log *slog.Logger, s Services) *Routers {
	return &Routers{
		log:              log,
		ContentService:   s.Content,
		ContentEditor:    s.Editor,
		BlogService:      s.Blog,
		PostCache:        s.Posts,
		BlogTranslations: s.BlogTranslations,
		Translation:      s.Translation,
		Translator:       s.Translator,
		Notifications:    s.Notifications,
		ContactService:   s.Contact,
		AnalyticsService: s.Analytics,
		MediaService:     s.Media,
	}
}
