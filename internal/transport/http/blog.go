package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"
	blogsvc "site_cms/internal/services/blog_service"
	"site_cms/internal/storage"
	"site_cms/internal/transport/http/dto"
	"site_cms/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func parsePostID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

func queryInt(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return fallback
	}
	return v
}

func (r *Routers) postError(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, storage.ErrPostNotFound):
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	case errors.Is(err, storage.ErrPostExists):
		return c.JSON(http.StatusConflict, response.ErrPostExists)
	case errors.Is(err, blogsvc.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_status", err.Error()))
	}
	log.Error("blog request failed", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// refreshPosts brings the admin post list in line after a write.
func (r *Routers) refreshPosts(ctx context.Context, log *slog.Logger) {
	if _, err := r.PostCache.Refresh(ctx); err != nil {
		log.Warn("failed to refresh post cache", sl.Err(err))
	}
}

func (r *Routers) ListPublishedPosts(c echo.Context) error {
	const op = "http.routers.ListPublishedPosts"

	list, err := r.BlogService.ListPosts(
		c.Request().Context(),
		models.PostStatusPublished,
		queryInt(c, "page", 1),
		queryInt(c, "per_page", 10),
	)
	if err != nil {
		return r.postError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(list))
}

func (r *Routers) GetPublishedPost(c echo.Context) error {
	const op = "http.routers.GetPublishedPost"

	post, err := r.BlogService.GetPostBySlug(c.Request().Context(), c.Param("slug"), c.QueryParam("lang"), false)
	if err != nil {
		return r.postError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// ListAdminPosts serves the cached list; a stale list is refreshed in the background.
func (r *Routers) ListAdminPosts(c echo.Context) error {
	const op = "http.routers.ListAdminPosts"

	posts, _, err := r.PostCache.Load(c.Request().Context())
	if err != nil {
		r.log.Error("failed to load posts", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusServiceUnavailable, response.ErrorResponseWithDetails("posts_unavailable", err.Error()))
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(posts))
}

func (r *Routers) CreatePost(c echo.Context) error {
	const op = "http.routers.CreatePost"

	log := r.log.With(slog.String("op", op))

	var req dto.CreateBlogPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	post, err := r.BlogService.CreatePost(c.Request().Context(), req)
	if err != nil {
		return r.postError(c, log, err)
	}

	r.refreshPosts(c.Request().Context(), log)

	return c.JSON(http.StatusCreated, response.SuccessResponse(post))
}

func (r *Routers) GetPost(c echo.Context) error {
	const op = "http.routers.GetPost"

	postID, ok := parsePostID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidPostID)
	}

	post, err := r.BlogService.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return r.postError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

func (r *Routers) UpdatePost(c echo.Context) error {
	const op = "http.routers.UpdatePost"

	log := r.log.With(slog.String("op", op))

	postID, ok := parsePostID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidPostID)
	}

	var req dto.UpdateBlogPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	post, err := r.BlogService.UpdatePost(c.Request().Context(), postID, req)
	if err != nil {
		return r.postError(c, log, err)
	}

	r.refreshPosts(c.Request().Context(), log)

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

func (r *Routers) DeletePost(c echo.Context) error {
	const op = "http.routers.DeletePost"

	postID, ok := parsePostID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidPostID)
	}

	if err := r.PostCache.Delete(c.Request().Context(), postID); err != nil {
		return r.postError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (r *Routers) TogglePostStatus(c echo.Context) error {
	const op = "http.routers.TogglePostStatus"

	postID, ok := parsePostID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidPostID)
	}

	post, err := r.PostCache.ToggleStatus(c.Request().Context(), postID)
	if err != nil {
		return r.postError(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// InvalidatePostCache drops the cached admin list so the next read goes to the database.
func (r *Routers) InvalidatePostCache(c echo.Context) error {
	const op = "http.routers.InvalidatePostCache"

	if err := r.PostCache.Invalidate(c.Request().Context()); err != nil {
		r.log.Error("failed to invalidate post cache", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}
