package dto

import (
	"site_cms/internal/domain/models"

	"github.com/google/uuid"
)

type WebhookLogRequest struct {
	Status         string `json:"status" validate:"required,oneof=success error"`
	StatusCode     int    `json:"status_code" validate:"omitempty,min=100,max=599"`
	ResponseTimeMs int    `json:"response_time_ms" validate:"min=0"`
	ErrorMessage   string `json:"error_message,omitempty" validate:"omitempty,max=2000"`
}

func (r WebhookLogRequest) ToModel(automationID uuid.UUID) models.WebhookLog {
	return models.WebhookLog{
		ClientAutomationID: automationID,
		Status:             r.Status,
		StatusCode:         r.StatusCode,
		ResponseTimeMs:     r.ResponseTimeMs,
		ErrorMessage:       r.ErrorMessage,
	}
}

type FormSubmissionRequest struct {
	FormData  map[string]any `json:"form_data" validate:"required"`
	SourceURL string         `json:"source_url,omitempty" validate:"omitempty,url"`
}

func (r FormSubmissionRequest) ToModel(automationID uuid.UUID) models.FormSubmission {
	return models.FormSubmission{
		ClientAutomationID: automationID,
		FormData:           r.FormData,
		SourceURL:          r.SourceURL,
	}
}

type RecordedResponse struct {
	ID uuid.UUID `json:"id"`
}
