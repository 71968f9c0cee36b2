package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"site_cms/internal/events"
	"site_cms/internal/lib/logger/sl"
)

type TextTranslator interface {
	TranslateText(ctx context.Context, text, targetLang string) (string, error)
}

type ContentWriter interface {
	Set(ctx context.Context, page, section, content, language string) error
}

// AutoTranslator fills target-language blocks after a source-language edit.
// Work runs in the background so the publishing request is not held up.
type AutoTranslator struct {
	log             *slog.Logger
	translator      TextTranslator
	content         ContentWriter
	sourceLanguage  string
	targetLanguages []string
	timeout         time.Duration
	wg              sync.WaitGroup
}

func NewAutoTranslator(
	log *slog.Logger,
	translator TextTranslator,
	content ContentWriter,
	sourceLanguage string,
	targetLanguages []string,
	timeout time.Duration,
) *AutoTranslator {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &AutoTranslator{
		log:             log,
		translator:      translator,
		content:         content,
		sourceLanguage:  sourceLanguage,
		targetLanguages: targetLanguages,
		timeout:         timeout,
	}
}

// Attach subscribes to bus and returns the unsubscribe func.
func (a *AutoTranslator) Attach(bus *events.Bus) func() {
	return bus.Subscribe(a.Handle)
}

func (a *AutoTranslator) Handle(e events.ContentChanged) {
	if e.Language != a.sourceLanguage || strings.TrimSpace(e.Content) == "" {
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		a.translate(ctx, e)
	}()
}

// Wait blocks until all in-flight translations finish.
func (a *AutoTranslator) Wait() {
	a.wg.Wait()
}

func (a *AutoTranslator) translate(ctx context.Context, e events.ContentChanged) {
	const op = "content_service.AutoTranslator.translate"

	log := a.log.With(
		slog.String("op", op),
		slog.String("page", e.Page),
		slog.String("section", e.Section),
	)

	for _, lang := range a.targetLanguages {
		if lang == a.sourceLanguage {
			continue
		}

		translated, err := a.translator.TranslateText(ctx, e.Content, lang)
		if err != nil {
			log.Error("failed to translate content", slog.String("language", lang), sl.Err(err))
			continue
		}

		if err := a.content.Set(ctx, e.Page, e.Section, translated, lang); err != nil {
			log.Error("failed to store translated content", slog.String("language", lang), sl.Err(err))
			continue
		}

		log.Info("content translated", slog.String("language", lang))
	}
}
