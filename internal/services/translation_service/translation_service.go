package services

import (
	"context"
	"log/slog"
	"strings"

	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"
	"site_cms/internal/metrics"
)

const (
	FieldTitle   = "title"
	FieldExcerpt = "excerpt"
	FieldContent = "content"
)

type TextTranslator interface {
	TranslateText(ctx context.Context, text, targetLang string) (string, error)
}

// FieldResult is the outcome of translating one field.
type FieldResult struct {
	OK     bool   `json:"ok"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type Result struct {
	Language string      `json:"language"`
	Title    FieldResult `json:"title"`
	Excerpt  FieldResult `json:"excerpt"`
	Content  FieldResult `json:"content"`
}

func (r Result) fields() []struct {
	name   string
	result FieldResult
} {
	return []struct {
		name   string
		result FieldResult
	}{
		{FieldTitle, r.Title},
		{FieldExcerpt, r.Excerpt},
		{FieldContent, r.Content},
	}
}

func (r Result) OK() bool {
	return r.Title.OK && r.Excerpt.OK && r.Content.OK
}

// Merge returns the translated values, keeping previous values for fields that failed.
func (r Result) Merge(previous models.TranslationFields) models.TranslationFields {
	out := previous
	if r.Title.OK {
		out.Title = r.Title.Value
	}
	if r.Excerpt.OK {
		out.Excerpt = r.Excerpt.Value
	}
	if r.Content.OK {
		out.Content = r.Content.Value
	}
	return out
}

type Failure struct {
	Language string `json:"language"`
	Field    string `json:"field"`
	Reason   string `json:"reason"`
}

// Report aggregates results across languages.
type Report struct {
	Results []Result `json:"results"`
}

func (r Report) Failures() []Failure {
	var failures []Failure
	for _, res := range r.Results {
		for _, f := range res.fields() {
			if !f.result.OK {
				failures = append(failures, Failure{Language: res.Language, Field: f.name, Reason: f.result.Reason})
			}
		}
	}
	return failures
}

// PartialFailure reports whether any field of any language failed.
func (r Report) PartialFailure() bool {
	return len(r.Failures()) > 0
}

func (r Report) Result(language string) (Result, bool) {
	for _, res := range r.Results {
		if res.Language == language {
			return res, true
		}
	}
	return Result{}, false
}

type TranslationService struct {
	log        *slog.Logger
	translator TextTranslator
}

func NewTranslationService(log *slog.Logger, translator TextTranslator) *TranslationService {
	return &TranslationService{log: log, translator: translator}
}

// Translate translates each field independently; one failed field never affects the others.
func (s *TranslationService) Translate(ctx context.Context, content, title, excerpt, language string) Result {
	return Result{
		Language: language,
		Title:    s.translateField(ctx, FieldTitle, title, language),
		Excerpt:  s.translateField(ctx, FieldExcerpt, excerpt, language),
		Content:  s.translateField(ctx, FieldContent, content, language),
	}
}

// TranslateAll runs Translate for each language in order.
func (s *TranslationService) TranslateAll(ctx context.Context, fields models.TranslationFields, languages []string) Report {
	const op = "translation_service.TranslateAll"

	report := Report{Results: make([]Result, 0, len(languages))}
	for _, lang := range languages {
		report.Results = append(report.Results, s.Translate(ctx, fields.Content, fields.Title, fields.Excerpt, lang))
	}

	if report.PartialFailure() {
		s.log.Warn("translation finished with failures",
			slog.String("op", op),
			slog.Int("failed_fields", len(report.Failures())),
		)
	}

	return report
}

func (s *TranslationService) translateField(ctx context.Context, field, text, language string) FieldResult {
	const op = "translation_service.translateField"

	if strings.TrimSpace(text) == "" {
		return FieldResult{OK: true, Value: text}
	}

	translated, err := s.translator.TranslateText(ctx, text, language)
	if err != nil {
		s.log.Error("field translation failed",
			slog.String("op", op),
			slog.String("field", field),
			slog.String("language", language),
			sl.Err(err),
		)
		metrics.TranslationFields.WithLabelValues(language, field, "error").Inc()

		return FieldResult{OK: false, Reason: err.Error()}
	}

	metrics.TranslationFields.WithLabelValues(language, field, "ok").Inc()

	return FieldResult{OK: true, Value: translated}
}
