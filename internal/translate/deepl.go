package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const deeplFreeURL = "https://api-free.deepl.com"

// DeepLProvider calls the DeepL v2 translate API.
type DeepLProvider struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewDeepLProvider(apiKey, baseURL string, httpClient *http.Client) *DeepLProvider {
	if baseURL == "" {
		baseURL = deeplFreeURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DeepLProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (p *DeepLProvider) Name() string {
	return ProviderDeepL
}

type deeplRequest struct {
	Text        []string `json:"text"`
	TargetLang  string   `json:"target_lang"`
	TagHandling string   `json:"tag_handling,omitempty"`
}

type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
	Message string `json:"message,omitempty"`
}

func (p *DeepLProvider) TranslateText(ctx context.Context, text, targetLang string) (string, error) {
	const op = "translate.DeepLProvider.TranslateText"

	body, err := json.Marshal(deeplRequest{
		Text:        []string{text},
		TargetLang:  strings.ToUpper(targetLang),
		TagHandling: "html",
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v2/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%s: read body: %w", op, err)
	}

	var out deeplResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode == http.StatusOK {
			return "", fmt.Errorf("%s: decode body: %w", op, err)
		}
	}

	if resp.StatusCode != http.StatusOK {
		if out.Message != "" {
			return "", fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, out.Message)
		}
		return "", fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	if len(out.Translations) == 0 || out.Translations[0].Text == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}

	return out.Translations[0].Text, nil
}
