package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\nSome **bold** text.\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, `<a href="https://example.com" rel="nofollow">x</a>`,
		Sanitize(`<a href="https://example.com" onclick="evil()">x</a>`))
}

func TestReadTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  string
	}{
		{name: "empty", words: 0, want: "1 min read"},
		{name: "short", words: 50, want: "1 min read"},
		{name: "exact", words: 200, want: "1 min read"},
		{name: "rounds up", words: 201, want: "2 min read"},
		{name: "long", words: 1000, want: "5 min read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.TrimSpace(strings.Repeat("word ", tt.words))
			assert.Equal(t, tt.want, ReadTime(content))
		})
	}
}
