package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/repository"
)

// SearchProperties handles GET /v1/search/properties. Query parameters:
// q (substring over title/description), city, type, min_price, max_price
// (whole currency units, converted to cents), bedrooms (minimum),
// page and page_size. Only published listings are searched.
func (h *PublicHandler) SearchProperties(c echo.Context) error {
	q := repository.PropertySearchQuery{
		Text: strings.TrimSpace(c.QueryParam("q")),
		City: strings.ToLower(strings.TrimSpace(c.QueryParam("city"))),
		Type: strings.ToLower(strings.TrimSpace(c.QueryParam("type"))),
	}
	if v := c.QueryParam("min_price"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			q.MinPrice = n * 100
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			q.MaxPrice = n * 100
		}
	}
	if v := c.QueryParam("bedrooms"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			q.Bedrooms = uint32(n)
		}
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	items, total, err := h.Properties.SearchPublished(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicProperty, 0, len(items))
	for _, p := range items {
		out = append(out, toPublicProperty(p))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": out,
		"total": total,
	})
}
