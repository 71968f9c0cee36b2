package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

type BlogPost struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Slug      string    `db:"slug" json:"slug"`
	Excerpt   string    `db:"excerpt" json:"excerpt"`
	Content   string    `db:"content" json:"content"`
	Category  string    `db:"category" json:"category"`
	Tags      []string  `db:"tags" json:"tags"`
	Date      time.Time `db:"date" json:"date"`
	ReadTime  string    `db:"read_time" json:"read_time"`
	Author    string    `db:"author" json:"author"`
	Image     string    `db:"image" json:"image,omitempty"`
	Featured  bool      `db:"featured" json:"featured"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ToggledStatus returns the status a toggle moves the post to.
func (p BlogPost) ToggledStatus() string {
	if p.Status == PostStatusPublished {
		return PostStatusDraft
	}
	return PostStatusPublished
}

func ValidPostStatus(status string) bool {
	return status == PostStatusDraft || status == PostStatusPublished
}
