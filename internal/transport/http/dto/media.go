package dto

import (
	"time"

	"site_cms/internal/domain/models"

	"github.com/google/uuid"
)

type MediaResponse struct {
	ID               uuid.UUID `json:"id"`
	Page             string    `json:"page"`
	Section          string    `json:"section"`
	URL              string    `json:"url"`
	OriginalFilename string    `json:"original_filename"`
	MimeType         string    `json:"mime_type"`
	FileSize         int64     `json:"file_size"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewMediaResponse(m models.Media) MediaResponse {
	return MediaResponse{
		ID:               m.ID,
		Page:             m.Page,
		Section:          m.Section,
		URL:              m.URL,
		OriginalFilename: m.OriginalFilename,
		MimeType:         m.MimeType,
		FileSize:         m.FileSize,
		CreatedAt:        m.CreatedAt,
	}
}
