package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/model"
	"github.com/rivieraprestige/concierge-api/internal/repository"
)

// ListInquiries handles GET /v1/admin/inquiries. The optional ?status=new
// or ?status=handled query parameter filters server-side.
func (h *AdminHandler) ListInquiries(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && status != model.InquiryStatusNew && status != model.InquiryStatusHandled {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	items, err := h.Inquiries.List(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// SetInquiryStatus handles POST /v1/admin/inquiries/:id/status with body
// {"status": "new"|"handled"}.
func (h *AdminHandler) SetInquiryStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Status != model.InquiryStatusNew && body.Status != model.InquiryStatusHandled {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx := c.Request().Context()
	if err := h.Inquiries.SetStatus(ctx, id, body.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inquiry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	h.recordActivity(c, "inquiry."+body.Status, "inquiry", id, nil)
	return c.NoContent(http.StatusNoContent)
}

// DeleteInquiry handles DELETE /v1/admin/inquiries/:id.
func (h *AdminHandler) DeleteInquiry(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	details := map[string]string{}
	if q, err := h.Inquiries.GetByID(ctx, id); err == nil {
		details["reference"] = q.Reference
	}
	if err := h.Inquiries.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inquiry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	h.recordActivity(c, "inquiry.delete", "inquiry", id, details)
	return c.NoContent(http.StatusNoContent)
}
