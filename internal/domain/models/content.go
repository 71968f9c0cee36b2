package models

import (
	"fmt"
	"time"
)

// ContentKey identifies a content block. At most one block exists per key.
type ContentKey struct {
	Page     string `json:"page"`
	Section  string `json:"section"`
	Language string `json:"language"`
}

func (k ContentKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Page, k.Section, k.Language)
}

// ContentBlock is a unit of editable page text or markup.
type ContentBlock struct {
	Page      string    `db:"page" json:"page"`
	Section   string    `db:"section_name" json:"section"`
	Language  string    `db:"language" json:"language"`
	Content   string    `db:"content" json:"content"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (b ContentBlock) Key() ContentKey {
	return ContentKey{Page: b.Page, Section: b.Section, Language: b.Language}
}
