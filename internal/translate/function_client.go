package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// FunctionRequest and FunctionResponse are the wire format of the translate function.
type FunctionRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
}

type FunctionResponse struct {
	TranslatedText string `json:"translatedText,omitempty"`
	Error          string `json:"error,omitempty"`
}

// FunctionClient calls a hosted translate function over HTTP.
type FunctionClient struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewFunctionClient(url, apiKey string, httpClient *http.Client) *FunctionClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FunctionClient{url: url, apiKey: apiKey, http: httpClient}
}

func (c *FunctionClient) Name() string {
	return ProviderFunction
}

func (c *FunctionClient) TranslateText(ctx context.Context, text, targetLang string) (string, error) {
	const op = "translate.FunctionClient.TranslateText"

	body, err := json.Marshal(FunctionRequest{Text: text, TargetLang: targetLang})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%s: read body: %w", op, err)
	}

	var out FunctionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%s: status %d: decode body: %w", op, resp.StatusCode, err)
	}

	if out.Error != "" {
		return "", fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, out.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}
	if out.TranslatedText == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}

	return out.TranslatedText, nil
}
