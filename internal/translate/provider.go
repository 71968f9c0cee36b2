// Package translate talks to machine translation backends.
package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Provider translates a single piece of text into the target language.
type Provider interface {
	TranslateText(ctx context.Context, text, targetLang string) (string, error)
	Name() string
}

type Config struct {
	Provider    string // function, deepl, openai, anthropic
	FunctionURL string
	APIKey      string
	BaseURL     string
	Model       string
	RateLimit   int
	Timeout     time.Duration
}

const (
	ProviderFunction  = "function"
	ProviderDeepL     = "deepl"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var (
	ErrInvalidProvider = errors.New("invalid translation provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingURL      = errors.New("function URL is required")
	ErrMissingModel    = errors.New("model is required")
	ErrEmptyResponse   = errors.New("empty translation response")
)

// NewProvider builds the configured backend wrapped in a rate limiter.
func NewProvider(cfg Config) (Provider, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	var (
		p   Provider
		err error
	)

	switch cfg.Provider {
	case ProviderFunction, "":
		if cfg.FunctionURL == "" {
			return nil, ErrMissingURL
		}
		p = NewFunctionClient(cfg.FunctionURL, cfg.APIKey, httpClient)
	case ProviderDeepL:
		if cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		p = NewDeepLProvider(cfg.APIKey, cfg.BaseURL, httpClient)
	case ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case ProviderAnthropic:
		p, err = NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithRateLimit(p, NewRateLimiter(cfg.RateLimit)), nil
}

var languageNames = map[string]string{
	"en": "English",
	"fr": "French",
	"es": "Spanish",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"ru": "Russian",
	"ja": "Japanese",
	"zh": "Chinese",
}

// LanguageName returns the English name of a language code, or the code itself.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
