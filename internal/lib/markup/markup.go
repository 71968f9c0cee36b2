package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const wordsPerMinute = 200

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Render converts markdown post bodies to HTML and strips anything unsafe.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markup.Render: %w", err)
	}

	return policy.Sanitize(buf.String()), nil
}

// Sanitize strips unsafe markup from an HTML fragment.
func Sanitize(fragment string) string {
	return policy.Sanitize(fragment)
}

// ReadTime estimates reading time at 200 words per minute, minimum one minute.
func ReadTime(content string) string {
	words := len(strings.Fields(strict.Sanitize(content)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf("%d min read", minutes)
}
