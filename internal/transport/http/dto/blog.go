package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBlogPostRequest struct {
	Title    string     `json:"title" validate:"required,min=3,max=255"`
	Slug     string     `json:"slug,omitempty" validate:"omitempty,slug"`
	Excerpt  string     `json:"excerpt,omitempty"`
	Content  string     `json:"content" validate:"required"`
	Category string     `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags     []string   `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	Date     *time.Time `json:"date,omitempty"`
	ReadTime string     `json:"read_time,omitempty" validate:"omitempty,max=50"`
	Author   string     `json:"author,omitempty" validate:"omitempty,max=255"`
	Image    string     `json:"image,omitempty" validate:"omitempty,url"`
	Featured bool       `json:"featured,omitempty"`
	Status   string     `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
}

type UpdateBlogPostRequest struct {
	Title    *string    `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Slug     *string    `json:"slug,omitempty" validate:"omitempty,slug"`
	Excerpt  *string    `json:"excerpt,omitempty"`
	Content  *string    `json:"content,omitempty"`
	Category *string    `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags     []string   `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	Date     *time.Time `json:"date,omitempty"`
	ReadTime *string    `json:"read_time,omitempty" validate:"omitempty,max=50"`
	Author   *string    `json:"author,omitempty" validate:"omitempty,max=255"`
	Image    *string    `json:"image,omitempty" validate:"omitempty,url"`
	Featured *bool      `json:"featured,omitempty"`
	Status   *string    `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
}

type BlogPostResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags"`
	Date        time.Time `json:"date"`
	ReadTime    string    `json:"read_time"`
	Author      string    `json:"author,omitempty"`
	Image       string    `json:"image,omitempty"`
	Featured    bool      `json:"featured"`
	Status      string    `json:"status"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BlogPostListResponse struct {
	Posts      []BlogPostResponse `json:"posts"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
}

type ChangePostStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published"`
}
