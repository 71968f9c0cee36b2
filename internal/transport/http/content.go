package http

import (
	"errors"
	"log/slog"
	"net/http"

	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"
	"site_cms/internal/middleware"
	contentsvc "site_cms/internal/services/content_service"
	mediasvc "site_cms/internal/services/media_service"
	"site_cms/internal/storage"
	"site_cms/internal/transport/http/dto"
	"site_cms/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

func (r *Routers) language(c echo.Context) string {
	if lang := c.QueryParam("lang"); lang != "" {
		return lang
	}
	return r.ContentService.SourceLanguage()
}

// GetContent never fails: the accessor falls back to cached or default text.
func (r *Routers) GetContent(c echo.Context) error {
	page, section := c.Param("page"), c.Param("section")
	lang := r.language(c)

	content := r.ContentService.Get(c.Request().Context(), page, section, lang)

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.ContentResponse{
		Page:     page,
		Section:  section,
		Language: lang,
		Content:  content,
	}))
}

func (r *Routers) GetPageContent(c echo.Context) error {
	page := c.Param("page")
	lang := r.language(c)

	sections := r.ContentService.GetPage(c.Request().Context(), page, lang)

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.PageContentResponse{
		Page:     page,
		Language: lang,
		Sections: sections,
	}))
}

func (r *Routers) UpdateContent(c echo.Context) error {
	const op = "http.routers.UpdateContent"

	page, section := c.Param("page"), c.Param("section")
	log := r.log.With(
		slog.String("op", op),
		slog.String("page", page),
		slog.String("section", section),
	)

	var req dto.UpdateContentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	lang := req.Language
	if lang == "" {
		lang = r.language(c)
	}

	text, err := r.ContentEditor.Commit(c.Request().Context(), page, section, lang, req.Content)
	if err != nil {
		if errors.Is(err, contentsvc.ErrStoredLocally) {
			log.Warn("content kept in local cache only", sl.Err(err))
			return c.JSON(http.StatusAccepted, response.SuccessResponse(dto.UpdateContentResponse{
				ContentResponse: dto.ContentResponse{Page: page, Section: section, Language: lang, Content: req.Content},
				Warning:         "saved locally only; remote store unavailable",
			}))
		}
		log.Error("failed to save content", sl.Err(err))
		return c.JSON(http.StatusBadGateway, response.ErrorResponseWithDetails("content_not_saved", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.UpdateContentResponse{
		ContentResponse: dto.ContentResponse{Page: page, Section: section, Language: lang, Content: text},
	}))
}

func (r *Routers) UploadContentImage(c echo.Context) error {
	const op = "http.routers.UploadContentImage"

	page, section := c.Param("page"), c.Param("section")
	log := r.log.With(
		slog.String("op", op),
		slog.String("page", page),
		slog.String("section", section),
	)

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "file is required"))
	}

	uploaderID, _ := middleware.UserID(c)
	lang := c.FormValue("lang")
	if lang == "" {
		lang = r.language(c)
	}

	media, err := r.MediaService.UploadImage(c.Request().Context(), mediasvc.UploadImageInput{
		UploaderID: uploaderID,
		Page:       page,
		Section:    section,
		Language:   lang,
		File:       file,
	})
	if err != nil {
		var validationErr *models.MediaValidationError
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails("file_too_large", err.Error()))
		case errors.Is(err, storage.ErrInvalidFileType):
			return c.JSON(http.StatusUnsupportedMediaType, response.ErrorResponseWithDetails("invalid_file_type", err.Error()))
		case errors.As(err, &validationErr):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_media", validationErr.Error()))
		}
		log.Error("failed to upload image", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.NewMediaResponse(*media)))
}

func (r *Routers) ListPageMedia(c echo.Context) error {
	const op = "http.routers.ListPageMedia"

	media, err := r.MediaService.ListPageMedia(c.Request().Context(), c.Param("page"))
	if err != nil {
		r.log.Error("failed to list media", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	out := make([]dto.MediaResponse, 0, len(media))
	for _, m := range media {
		out = append(out, dto.NewMediaResponse(m))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(out))
}
