package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"time"

	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"
	"site_cms/internal/repository"
	contentsvc "site_cms/internal/services/content_service"
	"site_cms/internal/storage/filestorage"

	"github.com/google/uuid"
)

type ContentSetter interface {
	Set(ctx context.Context, page, section, content, language string) error
}

type UploadImageInput struct {
	UploaderID uuid.UUID
	Page       string
	Section    string
	Language   string
	File       *multipart.FileHeader
}

type MediaService struct {
	log         *slog.Logger
	repo        repository.MediaRepository
	fileStorage filestorage.FileStorage
	content     ContentSetter
	maxSize     int64
}

func NewMediaService(
	log *slog.Logger,
	repo repository.MediaRepository,
	fileStorage filestorage.FileStorage,
	content ContentSetter,
	maxSize int64,
) *MediaService {
	return &MediaService{
		log:         log,
		repo:        repo,
		fileStorage: fileStorage,
		content:     content,
		maxSize:     maxSize,
	}
}

// UploadImage stores the file, records it and points the content block at its URL.
func (s *MediaService) UploadImage(ctx context.Context, input UploadImageInput) (*models.Media, error) {
	const op = "services.media_service.UploadImage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("page", input.Page),
		slog.String("section", input.Section),
	)

	if input.File == nil {
		return nil, fmt.Errorf("%s: %w", op, &models.MediaValidationError{Errors: []string{"file is required"}})
	}

	saved, err := s.fileStorage.Save(ctx, input.File, path.Join("pages", input.Page))
	if err != nil {
		log.Error("failed to save file", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	media := &models.Media{
		ID:               uuid.New(),
		UploaderID:       input.UploaderID,
		Page:             input.Page,
		Section:          input.Section,
		OriginalFilename: input.File.Filename,
		StoragePath:      saved.Path,
		URL:              s.fileStorage.URL(saved.Path),
		FileSize:         saved.Size,
		MimeType:         saved.MimeType,
		CreatedAt:        time.Now().UTC(),
	}

	if err := media.Validate(s.maxSize); err != nil {
		_ = s.fileStorage.Delete(ctx, saved.Path)
		log.Warn("media validation failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.CreateMedia(ctx, media); err != nil {
		_ = s.fileStorage.Delete(ctx, saved.Path)
		log.Error("failed to save media to database", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.content.Set(ctx, input.Page, input.Section, media.URL, input.Language); err != nil {
		if !errors.Is(err, contentsvc.ErrStoredLocally) {
			log.Error("failed to update content block", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Warn("image URL stored in local cache only", sl.Err(err))
	}

	log.Info("image uploaded", slog.String("url", media.URL))

	return media, nil
}

func (s *MediaService) ListPageMedia(ctx context.Context, page string) ([]models.Media, error) {
	const op = "services.media_service.ListPageMedia"

	media, err := s.repo.ListPageMedia(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return media, nil
}
