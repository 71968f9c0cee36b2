package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// Media is an uploaded image bound to a page section.
type Media struct {
	ID               uuid.UUID `json:"id" db:"id"`
	UploaderID       uuid.UUID `json:"uploader_id" db:"uploader_id"`
	Page             string    `json:"page" db:"page"`
	Section          string    `json:"section" db:"section_name"`
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	StoragePath      string    `json:"storage_path" db:"storage_path"`
	URL              string    `json:"url" db:"url"`
	FileSize         int64     `json:"file_size" db:"file_size"`
	MimeType         string    `json:"mime_type" db:"mime_type"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Validate checks the media record before it is stored.
func (m *Media) Validate(maxSize int64) error {
	var validationErrors []string

	if m.UploaderID == uuid.Nil {
		validationErrors = append(validationErrors, "uploader ID is required")
	}
	if m.Page == "" || m.Section == "" {
		validationErrors = append(validationErrors, "page and section are required")
	}
	if m.OriginalFilename == "" {
		validationErrors = append(validationErrors, "original filename is required")
	}
	if len(m.OriginalFilename) > 255 {
		validationErrors = append(validationErrors, "original filename must be 255 characters or less")
	}
	if m.StoragePath == "" {
		validationErrors = append(validationErrors, "storage path is required")
	}
	if m.FileSize <= 0 {
		validationErrors = append(validationErrors, "file size must be positive")
	}
	if maxSize > 0 && m.FileSize > maxSize {
		validationErrors = append(validationErrors, fmt.Sprintf("file size exceeds %d bytes", maxSize))
	}
	if !allowedImageTypes[m.MimeType] {
		validationErrors = append(validationErrors, fmt.Sprintf("unsupported image type '%s'", m.MimeType))
	}

	if len(validationErrors) > 0 {
		return &MediaValidationError{
			Errors: validationErrors,
		}
	}

	return nil
}

type MediaValidationError struct {
	Errors []string
}

func (e *MediaValidationError) Error() string {
	return fmt.Sprintf("media validation failed: %s", strings.Join(e.Errors, "; "))
}

func IsMediaValidationError(err error) bool {
	_, ok := err.(*MediaValidationError)
	return ok
}
