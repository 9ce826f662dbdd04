package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Stats handles GET /v1/admin/stats. It aggregates the dashboard numbers in
// one round trip: content counts per entity, inquiries grouped by status and
// the most recent audit entries.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	properties, err := h.Properties.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	experiences, err := h.Experiences.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	articles, err := h.Articles.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	inquiries, err := h.Inquiries.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	activityByEntity, err := h.Activity.CountByEntity(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	recent, err := h.Activity.Recent(ctx, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"content": echo.Map{
			"properties":  properties,
			"experiences": experiences,
			"articles":    articles,
		},
		"inquiries":          inquiries,
		"activity_by_entity": activityByEntity,
		"recent_activity":    recent,
	})
}

// ListActivity handles GET /v1/admin/activity, a paged view over the audit
// log, newest first.
func (h *AdminHandler) ListActivity(c echo.Context) error {
	page := 1
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	pageSize := 50
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 && v <= 200 {
		pageSize = v
	}

	items, total, err := h.Activity.ListPage(c.Request().Context(), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
