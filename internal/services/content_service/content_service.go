package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"site_cms/internal/cache"
	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"
	"site_cms/internal/metrics"
	"site_cms/internal/repository"
	"site_cms/internal/storage"
)

// ErrStoredLocally means the remote write failed and only the local cache holds the new content.
var ErrStoredLocally = errors.New("content stored in local cache only")

type ContentService struct {
	log            *slog.Logger
	repo           repository.ContentRepository
	local          *cache.Typed[string]
	defaults       Defaults
	sourceLanguage string
}

func NewContentService(
	log *slog.Logger,
	repo repository.ContentRepository,
	local *cache.Typed[string],
	defaults Defaults,
	sourceLanguage string,
) *ContentService {
	if sourceLanguage == "" {
		sourceLanguage = "en"
	}
	return &ContentService{
		log:            log,
		repo:           repo,
		local:          local,
		defaults:       defaults,
		sourceLanguage: sourceLanguage,
	}
}

func (s *ContentService) SourceLanguage() string {
	return s.sourceLanguage
}

// Get always returns some text: the stored block, the locally cached copy, or the default.
// A block missing remotely is seeded from the local copy when there is one, else from its default.
func (s *ContentService) Get(ctx context.Context, page, section, language string) string {
	const op = "content_service.Get"

	key := s.key(page, section, language)
	log := s.log.With(
		slog.String("op", op),
		slog.String("key", key.String()),
	)

	block, err := s.repo.GetContent(ctx, key)
	if err == nil {
		s.cacheLocally(ctx, log, key, block.Content)
		return block.Content
	}

	def := s.defaults.Lookup(key.Page, key.Section, key.Language, s.sourceLanguage)

	if errors.Is(err, storage.ErrContentNotFound) {
		// A local copy may hold an edit the remote store never received.
		seed, tier := def, "seed"
		if cached, ok, cerr := s.local.Get(ctx, key.String()); cerr != nil {
			log.Warn("failed to read local content cache", sl.Err(cerr))
		} else if ok {
			seed, tier = cached, "cache"
		}

		log.Info("content missing remotely, seeding", slog.String("from", tier))
		metrics.ContentFallbacks.WithLabelValues(tier).Inc()

		if err := s.repo.UpsertContent(ctx, models.ContentBlock{
			Page:      key.Page,
			Section:   key.Section,
			Language:  key.Language,
			Content:   seed,
			UpdatedAt: time.Now().UTC(),
		}); err != nil {
			log.Error("failed to seed content", sl.Err(err))
		}

		if tier == "seed" {
			s.cacheLocally(ctx, log, key, seed)
		}
		return seed
	}

	log.Error("failed to read content, falling back", sl.Err(err))

	cached, ok, cerr := s.local.Get(ctx, key.String())
	if cerr != nil {
		log.Warn("failed to read local content cache", sl.Err(cerr))
	}
	if ok {
		metrics.ContentFallbacks.WithLabelValues("cache").Inc()
		return cached
	}

	metrics.ContentFallbacks.WithLabelValues("default").Inc()
	return def
}

// Set upserts the block. When the remote write fails the local cache still
// receives the content and ErrStoredLocally is returned.
func (s *ContentService) Set(ctx context.Context, page, section, content, language string) error {
	const op = "content_service.Set"

	key := s.key(page, section, language)
	log := s.log.With(
		slog.String("op", op),
		slog.String("key", key.String()),
	)

	log.Info("saving content", slog.Int("length", len(content)))

	remoteErr := s.repo.UpsertContent(ctx, models.ContentBlock{
		Page:      key.Page,
		Section:   key.Section,
		Language:  key.Language,
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	})

	localErr := s.local.Set(ctx, key.String(), content)

	switch {
	case remoteErr == nil:
		if localErr != nil {
			log.Warn("failed to update local content cache", sl.Err(localErr))
		}
		return nil
	case localErr == nil:
		log.Error("remote write failed, content kept in local cache only", sl.Err(remoteErr))
		return fmt.Errorf("%s: %w: %v", op, ErrStoredLocally, remoteErr)
	default:
		log.Error("failed to save content", sl.Err(remoteErr), slog.String("cache_error", localErr.Error()))
		return fmt.Errorf("%s: %w", op, remoteErr)
	}
}

// GetPage returns every known section of a page: stored blocks over defaults.
// When the remote list fails the local cache is consulted per default section.
func (s *ContentService) GetPage(ctx context.Context, page, language string) map[string]string {
	const op = "content_service.GetPage"

	if language == "" {
		language = s.sourceLanguage
	}
	log := s.log.With(
		slog.String("op", op),
		slog.String("page", page),
		slog.String("language", language),
	)

	sections := make(map[string]string)
	for section := range s.defaults[s.sourceLanguage][page] {
		sections[section] = s.defaults.Lookup(page, section, language, s.sourceLanguage)
	}

	blocks, err := s.repo.ListPageContent(ctx, page, language)
	if err != nil {
		log.Error("failed to list page content, falling back", sl.Err(err))
		metrics.ContentFallbacks.WithLabelValues("cache").Inc()

		for section := range sections {
			key := s.key(page, section, language)
			if cached, ok, _ := s.local.Get(ctx, key.String()); ok {
				sections[section] = cached
			}
		}
		return sections
	}

	for _, b := range blocks {
		sections[b.Section] = b.Content
		s.cacheLocally(ctx, log, s.key(page, b.Section, language), b.Content)
	}

	return sections
}

func (s *ContentService) key(page, section, language string) models.ContentKey {
	if language == "" {
		language = s.sourceLanguage
	}
	return models.ContentKey{Page: page, Section: section, Language: language}
}

func (s *ContentService) cacheLocally(ctx context.Context, log *slog.Logger, key models.ContentKey, content string) {
	if err := s.local.Set(ctx, key.String(), content); err != nil {
		log.Warn("failed to update local content cache", sl.Err(err))
	}
}
