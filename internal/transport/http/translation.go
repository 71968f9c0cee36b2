package http

import (
	"errors"
	"log/slog"
	"net/http"

	"site_cms/internal/lib/logger/sl"
	blogtranslationsvc "site_cms/internal/services/blog_translation_service"
	"site_cms/internal/transport/http/dto"
	"site_cms/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

func (r *Routers) GetPostTranslations(c echo.Context) error {
	const op = "http.routers.GetPostTranslations"

	postID, ok := parsePostID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidPostID)
	}

	set, err := r.BlogTranslations.GetTranslations(c.Request().Context(), postID)
	if err != nil {
		r.log.Error("failed to load translations", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.TranslationsResponse{
		PostID:       postID,
		Translations: set,
	}))
}

func (r *Routers) UpsertPostTranslation(c echo.Context) error {
	const op = "http.routers.UpsertPostTranslation"

	log := r.log.With(slog.String("op", op), slog.String("language", c.Param("lang")))

	postID, ok := parsePostID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidPostID)
	}

	var req dto.TranslationFieldsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.BlogTranslations.UpsertTranslation(c.Request().Context(), postID, c.Param("lang"), req.Fields()); err != nil {
		if errors.Is(err, blogtranslationsvc.ErrInvalidLanguage) {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_language", err.Error()))
		}
		return r.postError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("translation saved"))
}

// AutoTranslatePost translates the post into every target language. Per-field failures
// are reported with a 207 so the editor can show which fields kept their old values.
func (r *Routers) AutoTranslatePost(c echo.Context) error {
	const op = "http.routers.AutoTranslatePost"

	postID, ok := parsePostID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidPostID)
	}

	report, err := r.BlogTranslations.AutoTranslate(c.Request().Context(), postID)
	if err != nil {
		return r.postError(c, r.log.With(slog.String("op", op)), err)
	}

	if report.PartialFailure() {
		return c.JSON(http.StatusMultiStatus, response.PartialResponse(
			map[string]any{"results": report.Results, "failures": report.Failures()},
			"some fields could not be translated",
		))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(report))
}

// TranslateFields backs the admin translation tools.
func (r *Routers) TranslateFields(c echo.Context) error {
	var req dto.TranslateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	languages := req.Languages
	if len(languages) == 0 {
		languages = r.BlogTranslations.TargetLanguages()
	}

	report := r.Translation.TranslateAll(c.Request().Context(), dto.TranslationFieldsRequest{
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Content: req.Content,
	}.Fields(), languages)

	data := map[string]any{"results": report.Results, "failures": report.Failures()}
	if report.PartialFailure() {
		return c.JSON(http.StatusOK, response.PartialResponse(data, "some fields could not be translated"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(data))
}

// TranslateText implements the translate function contract: {text, targetLang} in,
// {translatedText} or {error} out.
func (r *Routers) TranslateText(c echo.Context) error {
	const op = "http.routers.TranslateText"

	var req dto.TranslateTextRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.TranslateTextResponse{Error: "invalid request"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.TranslateTextResponse{Error: err.Error()})
	}

	text, err := r.Translator.TranslateText(c.Request().Context(), req.Text, req.TargetLang)
	if err != nil {
		r.log.Warn("translation failed",
			slog.String("op", op),
			slog.String("target_lang", req.TargetLang),
			sl.Err(err),
		)
		return c.JSON(http.StatusBadGateway, dto.TranslateTextResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, dto.TranslateTextResponse{TranslatedText: text})
}

func (r *Routers) ListNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(r.Notifications.List(c.Request().Context())))
}

func (r *Routers) ClearNotifications(c echo.Context) error {
	const op = "http.routers.ClearNotifications"

	if err := r.Notifications.Clear(c.Request().Context()); err != nil {
		r.log.Warn("failed to clear stored notifications", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}
