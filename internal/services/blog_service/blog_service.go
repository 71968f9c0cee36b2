package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"
	"site_cms/internal/lib/markup"
	"site_cms/internal/repository"
	"site_cms/internal/storage"
	"site_cms/internal/transport/http/dto"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid post status")

type TranslationGetter interface {
	GetTranslation(ctx context.Context, postID uuid.UUID, language string) (*models.BlogTranslation, error)
}

type BlogService struct {
	log            *slog.Logger
	repo           repository.BlogRepository
	translations   TranslationGetter
	sourceLanguage string
}

func NewBlogService(log *slog.Logger, repo repository.BlogRepository, translations TranslationGetter, sourceLanguage string) *BlogService {
	if sourceLanguage == "" {
		sourceLanguage = "en"
	}
	return &BlogService{log: log, repo: repo, translations: translations, sourceLanguage: sourceLanguage}
}

// CreatePost validates the request, fills slug and read time, and stores the post.
func (s *BlogService) CreatePost(ctx context.Context, req dto.CreateBlogPostRequest) (*dto.BlogPostResponse, error) {
	const op = "blog_service.CreatePost"
	log := s.log.With(slog.String("op", op))

	log.Info("creating new blog post", slog.String("title", req.Title))

	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%s: post title is required", op)
	}

	post := models.BlogPost{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		ReadTime: req.ReadTime,
		Author:   req.Author,
		Image:    req.Image,
		Featured: req.Featured,
		Status:   req.Status,
	}

	if req.Date != nil {
		post.Date = req.Date.UTC()
	} else {
		post.Date = time.Now().UTC()
	}

	generated := false
	if post.Slug == "" {
		post.Slug = generateSlug(post.Title)
		generated = true
		log.Debug("generated slug", slog.String("slug", post.Slug))
	}

	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if !models.ValidPostStatus(post.Status) {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrInvalidStatus, post.Status)
	}

	if post.ReadTime == "" {
		post.ReadTime = markup.ReadTime(post.Content)
	}

	id, err := s.repo.SaveBlogPost(ctx, post)
	if errors.Is(err, storage.ErrPostExists) && generated {
		post.Slug = generateUniqueSlug(post.Slug)
		log.Debug("slug taken, retrying", slog.String("slug", post.Slug))
		id, err = s.repo.SaveBlogPost(ctx, post)
	}
	if err != nil {
		log.Error("failed to save post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post created", slog.String("post_id", id.String()))

	return s.toPostResponse(ctx, id)
}

// UpdatePost applies the non-nil fields of req.
func (s *BlogService) UpdatePost(ctx context.Context, postID uuid.UUID, req dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error) {
	const op = "blog_service.UpdatePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	log.Info("updating blog post")

	existingPost, err := s.repo.GetBlogPostByID(ctx, postID)
	if err != nil {
		log.Error("failed to get post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Slug != nil {
		slug := *req.Slug
		if slug == "" {
			title := existingPost.Title
			if req.Title != nil {
				title = *req.Title
			}
			slug = generateSlug(title)
			log.Debug("generated new slug", slog.String("slug", slug))
		}
		if slug != existingPost.Slug {
			updates["slug"] = slug
		}
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		updates["content"] = *req.Content
		if req.ReadTime == nil {
			updates["read_time"] = markup.ReadTime(*req.Content)
		}
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.Date != nil {
		updates["date"] = req.Date.UTC()
	}
	if req.ReadTime != nil {
		updates["read_time"] = *req.ReadTime
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Status != nil {
		if !models.ValidPostStatus(*req.Status) {
			return nil, fmt.Errorf("%s: %w: %q", op, ErrInvalidStatus, *req.Status)
		}
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return s.mapToPostResponse(existingPost, s.sourceLanguage), nil
	}

	if err := s.repo.UpdateBlogPostFields(ctx, postID, updates); err != nil {
		log.Error("failed to update post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post updated successfully")
	return s.toPostResponse(ctx, postID)
}

func (s *BlogService) GetPostByID(ctx context.Context, id uuid.UUID) (*dto.BlogPostResponse, error) {
	const op = "blog_service.GetPostByID"

	post, err := s.repo.GetBlogPostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.mapToPostResponse(post, s.sourceLanguage), nil
}

// GetPostBySlug returns the post with a stored translation overlaid when language
// is not the source language. Drafts are hidden unless includeDrafts is set.
func (s *BlogService) GetPostBySlug(ctx context.Context, slug, language string, includeDrafts bool) (*dto.BlogPostResponse, error) {
	const op = "blog_service.GetPostBySlug"
	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
		slog.String("language", language),
	)

	post, err := s.repo.GetBlogPostBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !includeDrafts && post.Status != models.PostStatusPublished {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	if language == "" || language == s.sourceLanguage || s.translations == nil {
		return s.mapToPostResponse(post, s.sourceLanguage), nil
	}

	t, err := s.translations.GetTranslation(ctx, post.ID, language)
	if err != nil {
		if !errors.Is(err, storage.ErrTranslationNotFound) {
			log.Warn("failed to load translation, serving source", sl.Err(err))
		}
		return s.mapToPostResponse(post, s.sourceLanguage), nil
	}

	translated := *post
	if t.Title != "" {
		translated.Title = t.Title
	}
	if t.Excerpt != "" {
		translated.Excerpt = t.Excerpt
	}
	if t.Content != "" {
		translated.Content = t.Content
		translated.ReadTime = markup.ReadTime(t.Content)
	}

	return s.mapToPostResponse(&translated, language), nil
}

// ListPosts returns a page of posts; statusFilter is all, draft or published.
func (s *BlogService) ListPosts(ctx context.Context, statusFilter string, page, perPage int) (*dto.BlogPostListResponse, error) {
	const op = "blog_service.ListPosts"
	log := s.log.With(
		slog.String("op", op),
		slog.String("status_filter", statusFilter),
	)

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	posts, total, err := s.repo.GetBlogPosts(ctx, statusFilter, page, perPage)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	response := &dto.BlogPostListResponse{
		Posts:      make([]dto.BlogPostResponse, 0, len(posts)),
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}

	for i := range posts {
		response.Posts = append(response.Posts, *s.mapToPostResponse(&posts[i], s.sourceLanguage))
	}

	return response, nil
}

// FetchPosts returns every post regardless of status.
func (s *BlogService) FetchPosts(ctx context.Context) ([]models.BlogPost, error) {
	const op = "blog_service.FetchPosts"

	posts, _, err := s.repo.GetBlogPosts(ctx, "all", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}

func (s *BlogService) SetPostStatus(ctx context.Context, postID uuid.UUID, status string) error {
	const op = "blog_service.SetPostStatus"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
		slog.String("status", status),
	)

	if !models.ValidPostStatus(status) {
		return fmt.Errorf("%s: %w: %q", op, ErrInvalidStatus, status)
	}

	if err := s.repo.UpdateBlogPostFields(ctx, postID, map[string]interface{}{"status": status}); err != nil {
		log.Error("failed to change post status", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post status changed")
	return nil
}

// DeletePost removes the post; stored translations are removed with it.
func (s *BlogService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	const op = "blog_service.DeletePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	if err := s.repo.DeleteBlogPost(ctx, postID); err != nil {
		log.Error("failed to delete post", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post deleted")
	return nil
}

func generateSlug(title string) string {
	var b strings.Builder
	dash := false

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '\'' || r == '"':
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "post"
	}

	return slug
}

func generateUniqueSlug(base string) string {
	return fmt.Sprintf("%s-%d", base, time.Now().UnixNano())
}

func (s *BlogService) toPostResponse(ctx context.Context, postID uuid.UUID) (*dto.BlogPostResponse, error) {
	post, err := s.repo.GetBlogPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.mapToPostResponse(post, s.sourceLanguage), nil
}

func (s *BlogService) mapToPostResponse(post *models.BlogPost, language string) *dto.BlogPostResponse {
	html, err := markup.Render(post.Content)
	if err != nil {
		s.log.Warn("failed to render post content", slog.String("post_id", post.ID.String()), sl.Err(err))
	}

	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	return &dto.BlogPostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Slug:        post.Slug,
		Excerpt:     post.Excerpt,
		Content:     post.Content,
		ContentHTML: html,
		Category:    post.Category,
		Tags:        tags,
		Date:        post.Date,
		ReadTime:    post.ReadTime,
		Author:      post.Author,
		Image:       post.Image,
		Featured:    post.Featured,
		Status:      post.Status,
		Language:    language,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}
