// This file holds the small presentation-support endpoints: UI translations,
// form reference data and the outbound messaging deep link.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/i18n"
	"github.com/rivieraprestige/concierge-api/internal/refdata"
	"github.com/rivieraprestige/concierge-api/internal/utils"
)

// SiteHandler serves static site content that needs no database.
type SiteHandler struct {
	ContactPhone string // default target for the messaging link
}

// GetTranslations handles GET /v1/i18n/:lang and returns the full UI string
// tree for one language. Unknown languages are a 404; the client falls back
// to the default language itself.
func (h *SiteHandler) GetTranslations(c echo.Context) error {
	t, ok := i18n.Lookup(c.Param("lang"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error":     "unsupported language",
			"supported": i18n.Languages(),
		})
	}
	return c.JSON(http.StatusOK, t)
}

// GetRefData handles GET /v1/refdata and returns the static reference tables
// backing the search filters and form selects.
func (h *SiteHandler) GetRefData(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"countries":      refdata.Countries,
		"cities":         refdata.Cities,
		"property_types": refdata.PropertyTypes,
	})
}

// GetMessagingLink handles GET /v1/messaging-link. Optional query parameters:
// message (user-authored text) and phone (overrides the configured concierge
// number). The link itself is a navigation side effect performed by the
// client; this endpoint only assembles it.
func (h *SiteHandler) GetMessagingLink(c echo.Context) error {
	phone := c.QueryParam("phone")
	if phone == "" {
		phone = h.ContactPhone
	}
	link := utils.BuildMessagingLink(phone, c.QueryParam("message"))
	if link == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no contact number configured"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": link})
}
