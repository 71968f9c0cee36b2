package dto

import (
	"site_cms/internal/domain/models"

	"github.com/google/uuid"
)

type TranslationFieldsRequest struct {
	Title   string `json:"title" validate:"max=255"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
}

func (r TranslationFieldsRequest) Fields() models.TranslationFields {
	return models.TranslationFields{Title: r.Title, Excerpt: r.Excerpt, Content: r.Content}
}

type TranslationsResponse struct {
	PostID       uuid.UUID             `json:"post_id"`
	Translations models.TranslationSet `json:"translations"`
}

// TranslateRequest drives the admin translation tools.
type TranslateRequest struct {
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Languages []string `json:"languages,omitempty" validate:"omitempty,dive,min=2,max=10"`
}

// TranslateTextRequest is the translate function contract.
type TranslateTextRequest struct {
	Text       string `json:"text" validate:"required"`
	TargetLang string `json:"targetLang" validate:"required,min=2,max=10"`
}

type TranslateTextResponse struct {
	TranslatedText string `json:"translatedText,omitempty"`
	Error          string `json:"error,omitempty"`
}
