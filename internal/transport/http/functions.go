package http

import (
	"errors"
	"log/slog"
	"net/http"

	"site_cms/internal/lib/logger/sl"
	analyticssvc "site_cms/internal/services/analytics_service"
	"site_cms/internal/transport/http/dto"
	"site_cms/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (r *Routers) SubmitContact(c echo.Context) error {
	const op = "http.routers.SubmitContact"

	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	result, err := r.ContactService.Submit(c.Request().Context(), req.ToModel())
	if err != nil {
		r.log.Error("contact submission lost", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("contact_failed", "Message could not be delivered"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(result))
}

func parseAutomationID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("automation_id"))
	return id, err == nil
}

func (r *Routers) RecordWebhook(c echo.Context) error {
	const op = "http.routers.RecordWebhook"

	automationID, ok := parseAutomationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidAutomationID)
	}

	var req dto.WebhookLogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	id, err := r.AnalyticsService.RecordWebhook(c.Request().Context(), req.ToModel(automationID))
	if err != nil {
		if errors.Is(err, analyticssvc.ErrInvalidWebhookStatus) {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
		}
		r.log.Error("failed to record webhook", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.RecordedResponse{ID: id}))
}

func (r *Routers) WebhookStats(c echo.Context) error {
	const op = "http.routers.WebhookStats"

	automationID, ok := parseAutomationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidAutomationID)
	}

	stats, err := r.AnalyticsService.WebhookStats(c.Request().Context(), automationID, queryInt(c, "days", 0))
	if err != nil {
		r.log.Error("failed to compute webhook stats", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(stats))
}

func (r *Routers) RecordForm(c echo.Context) error {
	const op = "http.routers.RecordForm"

	automationID, ok := parseAutomationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidAutomationID)
	}

	var req dto.FormSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	id, err := r.AnalyticsService.RecordForm(c.Request().Context(), req.ToModel(automationID))
	if err != nil {
		r.log.Error("failed to record form submission", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.RecordedResponse{ID: id}))
}

func (r *Routers) FormStats(c echo.Context) error {
	const op = "http.routers.FormStats"

	automationID, ok := parseAutomationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidAutomationID)
	}

	stats, err := r.AnalyticsService.FormStats(c.Request().Context(), automationID, queryInt(c, "days", 0))
	if err != nil {
		r.log.Error("failed to compute form stats", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(stats))
}

func (r *Routers) AnalyticsOverview(c echo.Context) error {
	const op = "http.routers.AnalyticsOverview"

	automationID, ok := parseAutomationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidAutomationID)
	}

	overview, err := r.AnalyticsService.Overview(c.Request().Context(), automationID, queryInt(c, "days", 0))
	if err != nil {
		r.log.Error("failed to compute analytics overview", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(overview))
}
