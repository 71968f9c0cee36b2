package models

import (
	"time"

	"github.com/google/uuid"
)

// TranslationFields mirrors the translatable fields of a blog post.
type TranslationFields struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
}

func (f TranslationFields) IsEmpty() bool {
	return f.Title == "" && f.Excerpt == "" && f.Content == ""
}

type BlogTranslation struct {
	ID         uuid.UUID `db:"id" json:"id"`
	BlogPostID uuid.UUID `db:"blog_post_id" json:"blog_post_id"`
	Language   string    `db:"language" json:"language"`
	Title      string    `db:"title" json:"title"`
	Excerpt    string    `db:"excerpt" json:"excerpt"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

func (t BlogTranslation) Fields() TranslationFields {
	return TranslationFields{Title: t.Title, Excerpt: t.Excerpt, Content: t.Content}
}

// TranslationSet holds fields per language code.
type TranslationSet map[string]TranslationFields
