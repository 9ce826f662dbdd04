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

// articleForm is the create/update payload for a news article. Both language
// versions are edited together so the public reader never sees a half-
// translated article.
type articleForm struct {
	Slug    string `json:"slug"`
	TitleEN string `json:"title_en"`
	TitleFR string `json:"title_fr"`
	BodyEN  string `json:"body_en"`
	BodyFR  string `json:"body_fr"`
}

func validateArticle(f *articleForm) map[string]string {
	problems := map[string]string{}
	f.Slug = strings.TrimSpace(f.Slug)
	f.TitleEN = strings.TrimSpace(f.TitleEN)
	f.TitleFR = strings.TrimSpace(f.TitleFR)

	if f.TitleEN == "" {
		problems["title_en"] = "is required"
	}
	if f.TitleFR == "" {
		problems["title_fr"] = "is required"
	}
	if f.BodyEN == "" {
		problems["body_en"] = "is required"
	}
	if f.BodyFR == "" {
		problems["body_fr"] = "is required"
	}
	if f.Slug == "" {
		f.Slug = utils.Slugify(f.TitleEN)
	}
	return problems
}

func (f *articleForm) apply(a *model.Article) {
	a.Slug = f.Slug
	a.TitleEN = f.TitleEN
	a.TitleFR = f.TitleFR
	a.BodyEN = f.BodyEN
	a.BodyFR = f.BodyFR
}

// ListArticles handles GET /v1/admin/articles.
func (h *AdminHandler) ListArticles(c echo.Context) error {
	items, err := h.Articles.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateArticle handles POST /v1/admin/articles.
func (h *AdminHandler) CreateArticle(c echo.Context) error {
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var form articleForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateArticle(&form); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}

	a := &model.Article{CreatedBy: actorID}
	form.apply(a)
	if err := h.Articles.Create(c.Request().Context(), a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create article"})
	}

	h.recordActivity(c, "article.create", "article", a.ID, map[string]string{"title": a.TitleEN})
	return c.JSON(http.StatusCreated, a)
}

// UpdateArticle handles PUT /v1/admin/articles/:id.
func (h *AdminHandler) UpdateArticle(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var form articleForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateArticle(&form); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}

	ctx := c.Request().Context()
	a, err := h.Articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	form.apply(&a)
	if err := h.Articles.Update(ctx, &a); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	h.recordActivity(c, "article.update", "article", a.ID, map[string]string{"title": a.TitleEN})
	updated, _ := h.Articles.GetByID(ctx, id)
	return c.JSON(http.StatusOK, updated)
}

// PublishArticle handles POST /v1/admin/articles/:id/publish.
func (h *AdminHandler) PublishArticle(c echo.Context) error {
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
	if err := h.Articles.SetPublished(ctx, id, body.Published); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	action := "article.publish"
	if !body.Published {
		action = "article.unpublish"
	}
	details := map[string]string{}
	if a, err := h.Articles.GetByID(ctx, id); err == nil {
		details["title"] = a.TitleEN
	}
	h.recordActivity(c, action, "article", id, details)
	return c.NoContent(http.StatusNoContent)
}

// DeleteArticle handles DELETE /v1/admin/articles/:id.
func (h *AdminHandler) DeleteArticle(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	details := map[string]string{}
	if a, err := h.Articles.GetByID(ctx, id); err == nil {
		details["title"] = a.TitleEN
	}
	if err := h.Articles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	h.recordActivity(c, "article.delete", "article", id, details)
	return c.NoContent(http.StatusNoContent)
}
