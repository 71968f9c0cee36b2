package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	WebhookStatusSuccess = "success"
	WebhookStatusError   = "error"
)

type WebhookLog struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	ClientAutomationID uuid.UUID `db:"client_automation_id" json:"client_automation_id"`
	Status             string    `db:"status" json:"status"`
	StatusCode         int       `db:"status_code" json:"status_code"`
	ResponseTimeMs     int       `db:"response_time_ms" json:"response_time_ms"`
	ErrorMessage       string    `db:"error_message" json:"error_message,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

type FormSubmission struct {
	ID                 uuid.UUID      `db:"id" json:"id"`
	ClientAutomationID uuid.UUID      `db:"client_automation_id" json:"client_automation_id"`
	FormData           map[string]any `db:"form_data" json:"form_data"`
	SourceURL          string         `db:"source_url" json:"source_url,omitempty"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
}

type DailyCount struct {
	Date       string `json:"date"`
	Total      int    `json:"total"`
	Successful int    `json:"successful,omitempty"`
	Failed     int    `json:"failed,omitempty"`
}

type WebhookStats struct {
	TotalCalls        int          `json:"total_calls"`
	SuccessfulCalls   int          `json:"successful_calls"`
	FailedCalls       int          `json:"failed_calls"`
	SuccessRate       float64      `json:"success_rate"`
	AvgResponseTimeMs float64      `json:"avg_response_time_ms"`
	Daily             []DailyCount `json:"daily"`
}

type FormStats struct {
	TotalSubmissions int          `json:"total_submissions"`
	Daily            []DailyCount `json:"daily"`
}

type AnalyticsOverview struct {
	Webhooks WebhookStats `json:"webhooks"`
	Forms    FormStats    `json:"forms"`
}
