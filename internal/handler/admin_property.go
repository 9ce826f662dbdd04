package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/model"
	"github.com/rivieraprestige/concierge-api/internal/refdata"
	"github.com/rivieraprestige/concierge-api/internal/repository"
	"github.com/rivieraprestige/concierge-api/internal/utils"
)

// propertyForm is the create/update payload for a listing. Zero-valued
// optional fields (bedrooms, bathrooms, area, cover image) are persisted as
// absent, never as zero/empty.
type propertyForm struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"` // derived from the title when empty
	Country       string `json:"country"`
	City          string `json:"city"`
	Type          string `json:"type"`
	PriceCents    uint64 `json:"price_cents"`
	Bedrooms      uint32 `json:"bedrooms"`
	Bathrooms     uint32 `json:"bathrooms"`
	AreaSqm       uint32 `json:"area_sqm"`
	DescriptionEN string `json:"description_en"`
	DescriptionFR string `json:"description_fr"`
	CoverImageURL string `json:"cover_image_url"`
}

// validateProperty normalizes the form in place and returns field problems.
func validateProperty(f *propertyForm) map[string]string {
	problems := map[string]string{}
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Country = strings.ToLower(strings.TrimSpace(f.Country))
	f.City = strings.ToLower(strings.TrimSpace(f.City))
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	f.CoverImageURL = strings.TrimSpace(f.CoverImageURL)

	if f.Title == "" {
		problems["title"] = "is required"
	}
	if f.Slug == "" {
		f.Slug = utils.Slugify(f.Title)
	}
	if !refdata.ValidCountry(f.Country) {
		problems["country"] = "unknown country"
	}
	if !refdata.ValidCity(f.City) {
		problems["city"] = "unknown city"
	}
	if !refdata.ValidPropertyType(f.Type) {
		problems["type"] = "unknown property type"
	}
	if f.PriceCents == 0 {
		problems["price_cents"] = "is required"
	}
	return problems
}

func (f *propertyForm) apply(p *model.Property) {
	p.Title = f.Title
	p.Slug = f.Slug
	p.Country = f.Country
	p.City = f.City
	p.Type = f.Type
	p.PriceCents = f.PriceCents
	p.Bedrooms = optionalU32(f.Bedrooms)
	p.Bathrooms = optionalU32(f.Bathrooms)
	p.AreaSqm = optionalU32(f.AreaSqm)
	p.DescriptionEN = f.DescriptionEN
	p.DescriptionFR = f.DescriptionFR
	p.CoverImageURL = optionalStr(f.CoverImageURL)
}

// ListProperties handles GET /v1/admin/properties: every listing, drafts
// included, ordered by last update.
func (h *AdminHandler) ListProperties(c echo.Context) error {
	items, err := h.Properties.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateProperty handles POST /v1/admin/properties.
func (h *AdminHandler) CreateProperty(c echo.Context) error {
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var form propertyForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateProperty(&form); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}

	p := &model.Property{CreatedBy: actorID}
	form.apply(p)
	if err := h.Properties.Create(c.Request().Context(), p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create property"})
	}

	h.recordActivity(c, "property.create", "property", p.ID, map[string]string{"title": p.Title})
	return c.JSON(http.StatusCreated, p)
}

// UpdateProperty handles PUT /v1/admin/properties/:id.
func (h *AdminHandler) UpdateProperty(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var form propertyForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateProperty(&form); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}

	ctx := c.Request().Context()
	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	form.apply(&p)
	if err := h.Properties.Update(ctx, &p); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	h.recordActivity(c, "property.update", "property", p.ID, map[string]string{"title": p.Title})
	updated, _ := h.Properties.GetByID(ctx, id)
	return c.JSON(http.StatusOK, updated)
}

// PublishProperty handles POST /v1/admin/properties/:id/publish with body
// {"published": bool}.
func (h *AdminHandler) PublishProperty(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Published bool `json:"published"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	if err := h.Properties.SetPublished(ctx, id, body.Published); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	action := "property.publish"
	if !body.Published {
		action = "property.unpublish"
	}
	details := map[string]string{}
	if p, err := h.Properties.GetByID(ctx, id); err == nil {
		details["title"] = p.Title
	}
	h.recordActivity(c, action, "property", id, details)
	return c.NoContent(http.StatusNoContent)
}

// DeleteProperty handles DELETE /v1/admin/properties/:id. The interactive
// confirmation lives in the client; the API deletes on first request.
func (h *AdminHandler) DeleteProperty(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	details := map[string]string{}
	if p, err := h.Properties.GetByID(ctx, id); err == nil {
		details["title"] = p.Title
	}
	if err := h.Properties.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	h.recordActivity(c, "property.delete", "property", id, details)
	return c.NoContent(http.StatusNoContent)
}
