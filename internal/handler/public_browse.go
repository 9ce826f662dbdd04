// This file defines handlers for the public browsing API: property listings,
// concierge experiences and news articles. Only published rows are served and
// staff-only fields (creator, timestamps other than publication) are filtered
// from responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/model"
	"github.com/rivieraprestige/concierge-api/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
	Properties  *repository.PropertyRepo
	Experiences *repository.ExperienceRepo
	Articles    *repository.ArticleRepo
}

// PublicProperty is a listing as exposed to visitors.
type PublicProperty struct {
	ID            uint64     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Country       string     `json:"country"`
	City          string     `json:"city"`
	Type          string     `json:"type"`
	PriceCents    uint64     `json:"price_cents"`
	Bedrooms      *uint32    `json:"bedrooms,omitempty"`
	Bathrooms     *uint32    `json:"bathrooms,omitempty"`
	AreaSqm       *uint32    `json:"area_sqm,omitempty"`
	DescriptionEN string     `json:"description_en"`
	DescriptionFR string     `json:"description_fr"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

func toPublicProperty(p model.Property) PublicProperty {
	return PublicProperty{
		ID: p.ID, Title: p.Title, Slug: p.Slug, Country: p.Country, City: p.City,
		Type: p.Type, PriceCents: p.PriceCents, Bedrooms: p.Bedrooms, Bathrooms: p.Bathrooms,
		AreaSqm: p.AreaSqm, DescriptionEN: p.DescriptionEN, DescriptionFR: p.DescriptionFR,
		CoverImageURL: p.CoverImageURL, PublishedAt: p.PublishedAt,
	}
}

// PublicExperience is a concierge offering as exposed to visitors.
type PublicExperience struct {
	ID            uint64  `json:"id"`
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Category      string  `json:"category"`
	PriceCents    *uint64 `json:"price_cents,omitempty"` // absent means "on request"
	DescriptionEN string  `json:"description_en"`
	DescriptionFR string  `json:"description_fr"`
}

func toPublicExperience(e model.Experience) PublicExperience {
	return PublicExperience{
		ID: e.ID, Title: e.Title, Slug: e.Slug, Category: e.Category,
		PriceCents: e.PriceCents, DescriptionEN: e.DescriptionEN, DescriptionFR: e.DescriptionFR,
	}
}

// PublicArticle is a news entry as exposed to visitors.
type PublicArticle struct {
	ID          uint64     `json:"id"`
	Slug        string     `json:"slug"`
	TitleEN     string     `json:"title_en"`
	TitleFR     string     `json:"title_fr"`
	BodyEN      string     `json:"body_en"`
	BodyFR      string     `json:"body_fr"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func toPublicArticle(a model.Article) PublicArticle {
	return PublicArticle{
		ID: a.ID, Slug: a.Slug, TitleEN: a.TitleEN, TitleFR: a.TitleFR,
		BodyEN: a.BodyEN, BodyFR: a.BodyFR, PublishedAt: a.PublishedAt,
	}
}

// GetPublicProperties returns all published listings, newest first.
func (h *PublicHandler) GetPublicProperties(c echo.Context) error {
	items, err := h.Properties.ListPublished(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicProperty, 0, len(items))
	for _, p := range items {
		out = append(out, toPublicProperty(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicProperty returns one published listing by id. Unpublished listings
// are indistinguishable from missing ones.
func (h *PublicHandler) GetPublicProperty(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Properties.GetPublishedByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toPublicProperty(p))
}

// GetPublicExperiences returns all published concierge experiences.
func (h *PublicHandler) GetPublicExperiences(c echo.Context) error {
	items, err := h.Experiences.ListPublished(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicExperience, 0, len(items))
	for _, e := range items {
		out = append(out, toPublicExperience(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicExperience returns one published experience by id.
func (h *PublicHandler) GetPublicExperience(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	e, err := h.Experiences.GetPublishedByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toPublicExperience(e))
}

// GetPublicArticles returns all published news articles, newest first.
func (h *PublicHandler) GetPublicArticles(c echo.Context) error {
	items, err := h.Articles.ListPublished(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicArticle, 0, len(items))
	for _, a := range items {
		out = append(out, toPublicArticle(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicArticle returns one published article by id.
func (h *PublicHandler) GetPublicArticle(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Articles.GetPublishedByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toPublicArticle(a))
}
