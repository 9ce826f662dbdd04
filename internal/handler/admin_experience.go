package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/model"
	"github.com/rivieraprestige/concierge-api/internal/repository"
	"github.com/rivieraprestige/concierge-api/internal/utils"
)

// experienceForm is the create/update payload for a concierge experience.
// A zero price means "on request" and is stored as absent.
type experienceForm struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Category      string `json:"category"`
	PriceCents    uint64 `json:"price_cents"`
	DescriptionEN string `json:"description_en"`
	DescriptionFR string `json:"description_fr"`
}

func validateExperience(f *experienceForm) map[string]string {
	problems := map[string]string{}
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))

	if f.Title == "" {
		problems["title"] = "is required"
	}
	if f.Slug == "" {
		f.Slug = utils.Slugify(f.Title)
	}
	if f.Category == "" {
		problems["category"] = "is required"
	}
	return problems
}

func (f *experienceForm) apply(e *model.Experience) {
	e.Title = f.Title
	e.Slug = f.Slug
	e.Category = f.Category
	e.PriceCents = optionalU64(f.PriceCents)
	e.DescriptionEN = f.DescriptionEN
	e.DescriptionFR = f.DescriptionFR
}

// ListExperiences handles GET /v1/admin/experiences.
func (h *AdminHandler) ListExperiences(c echo.Context) error {
	items, err := h.Experiences.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateExperience handles POST /v1/admin/experiences.
func (h *AdminHandler) CreateExperience(c echo.Context) error {
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var form experienceForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateExperience(&form); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}

	e := &model.Experience{CreatedBy: actorID}
	form.apply(e)
	if err := h.Experiences.Create(c.Request().Context(), e); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create experience"})
	}

	h.recordActivity(c, "experience.create", "experience", e.ID, map[string]string{"title": e.Title})
	return c.JSON(http.StatusCreated, e)
}

// UpdateExperience handles PUT /v1/admin/experiences/:id.
func (h *AdminHandler) UpdateExperience(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var form experienceForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateExperience(&form); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}

	ctx := c.Request().Context()
	e, err := h.Experiences.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	form.apply(&e)
	if err := h.Experiences.Update(ctx, &e); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	h.recordActivity(c, "experience.update", "experience", e.ID, map[string]string{"title": e.Title})
	updated, _ := h.Experiences.GetByID(ctx, id)
	return c.JSON(http.StatusOK, updated)
}

// PublishExperience handles POST /v1/admin/experiences/:id/publish.
func (h *AdminHandler) PublishExperience(c echo.Context) error {
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
	if err := h.Experiences.SetPublished(ctx, id, body.Published); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	action := "experience.publish"
	if !body.Published {
		action = "experience.unpublish"
	}
	details := map[string]string{}
	if e, err := h.Experiences.GetByID(ctx, id); err == nil {
		details["title"] = e.Title
	}
	h.recordActivity(c, action, "experience", id, details)
	return c.NoContent(http.StatusNoContent)
}

// DeleteExperience handles DELETE /v1/admin/experiences/:id.
func (h *AdminHandler) DeleteExperience(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	details := map[string]string{}
	if e, err := h.Experiences.GetByID(ctx, id); err == nil {
		details["title"] = e.Title
	}
	if err := h.Experiences.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	h.recordActivity(c, "experience.delete", "experience", id, details)
	return c.NoContent(http.StatusNoContent)
}
