package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"
	"site_cms/internal/repository"
	translationsvc "site_cms/internal/services/translation_service"

	"github.com/google/uuid"
)

var ErrInvalidLanguage = errors.New("invalid translation language")

type PostGetter interface {
	GetBlogPostByID(ctx context.Context, postID uuid.UUID) (*models.BlogPost, error)
}

type Translator interface {
	TranslateAll(ctx context.Context, fields models.TranslationFields, languages []string) translationsvc.Report
}

type BlogTranslationService struct {
	log             *slog.Logger
	posts           PostGetter
	repo            repository.TranslationRepository
	translator      Translator
	sourceLanguage  string
	targetLanguages []string
}

func NewBlogTranslationService(
	log *slog.Logger,
	posts PostGetter,
	repo repository.TranslationRepository,
	translator Translator,
	sourceLanguage string,
	targetLanguages []string,
) *BlogTranslationService {
	return &BlogTranslationService{
		log:             log,
		posts:           posts,
		repo:            repo,
		translator:      translator,
		sourceLanguage:  sourceLanguage,
		targetLanguages: targetLanguages,
	}
}

func (s *BlogTranslationService) TargetLanguages() []string {
	return s.targetLanguages
}

// UpsertTranslation stores fields for (postID, language); repeated calls leave a single row.
func (s *BlogTranslationService) UpsertTranslation(ctx context.Context, postID uuid.UUID, language string, fields models.TranslationFields) error {
	const op = "blog_translation_service.UpsertTranslation"

	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
		slog.String("language", language),
	)

	if language == "" || language == s.sourceLanguage {
		return fmt.Errorf("%s: %w: %q", op, ErrInvalidLanguage, language)
	}

	if err := s.repo.UpsertTranslation(ctx, models.BlogTranslation{
		BlogPostID: postID,
		Language:   language,
		Title:      fields.Title,
		Excerpt:    fields.Excerpt,
		Content:    fields.Content,
	}); err != nil {
		log.Error("failed to save translation", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("translation saved")

	return nil
}

// GetTranslations returns an entry for every target language, with empty fields where none is stored.
func (s *BlogTranslationService) GetTranslations(ctx context.Context, postID uuid.UUID) (models.TranslationSet, error) {
	const op = "blog_translation_service.GetTranslations"

	set := make(models.TranslationSet, len(s.targetLanguages))
	for _, lang := range s.targetLanguages {
		set[lang] = models.TranslationFields{}
	}

	translations, err := s.repo.ListTranslations(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, t := range translations {
		set[t.Language] = t.Fields()
	}

	return set, nil
}

// AutoTranslate translates the post into every target language in turn. Fields that
// fail keep their previously stored value; the report says which ones.
func (s *BlogTranslationService) AutoTranslate(ctx context.Context, postID uuid.UUID) (*translationsvc.Report, error) {
	const op = "blog_translation_service.AutoTranslate"

	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	post, err := s.posts.GetBlogPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.GetTranslations(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	report := s.translator.TranslateAll(ctx, models.TranslationFields{
		Title:   post.Title,
		Excerpt: post.Excerpt,
		Content: post.Content,
	}, s.targetLanguages)

	for _, res := range report.Results {
		previous := existing[res.Language]
		merged := res.Merge(previous)
		if merged == previous {
			continue
		}

		if err := s.UpsertTranslation(ctx, postID, res.Language, merged); err != nil {
			return &report, fmt.Errorf("%s: %w", op, err)
		}
	}

	if report.PartialFailure() {
		log.Warn("auto-translation finished with failures", slog.Int("failed_fields", len(report.Failures())))
	} else {
		log.Info("auto-translation finished")
	}

	return &report, nil
}
