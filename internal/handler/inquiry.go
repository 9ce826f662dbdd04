package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rivieraprestige/concierge-api/internal/model"
	"github.com/rivieraprestige/concierge-api/internal/repository"
	"github.com/rivieraprestige/concierge-api/internal/validate"
)

// InquiryStore is the slice of the inquiry repository this handler needs.
type InquiryStore interface {
	Create(ctx context.Context, q *model.Inquiry) error
}

// PropertyLookup confirms a property inquiry targets a real, published listing.
type PropertyLookup interface {
	GetPublishedByID(ctx context.Context, id uint64) (model.Property, error)
}

// InquiryHandler accepts the public contact and property-inquiry forms.
type InquiryHandler struct {
	Inquiries  InquiryStore
	Properties PropertyLookup
}

func NewInquiryHandler(inquiries InquiryStore, properties PropertyLookup) *InquiryHandler {
	return &InquiryHandler{Inquiries: inquiries, Properties: properties}
}

// SubmitContact handles POST /v1/inquiries: the general contact form.
func (h *InquiryHandler) SubmitContact(c echo.Context) error {
	return h.submit(c, nil)
}

// SubmitPropertyInquiry handles POST /v1/properties/:id/inquiries. The target
// property must exist and be published.
func (h *InquiryHandler) SubmitPropertyInquiry(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Properties.GetPublishedByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return h.submit(c, &id)
}

// submit validates the form and persists the inquiry. Validation problems
// come back as a field-keyed map so the form renders them inline; nothing
// invalid reaches the database. The empty optional phone is stored as NULL,
// not as an empty string.
func (h *InquiryHandler) submit(c echo.Context, propertyID *uint64) error {
	var form validate.InquiryForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.Phone = strings.TrimSpace(form.Phone)
	form.Message = strings.TrimSpace(form.Message)

	if problems := validate.Inquiry(form); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}

	var phone *string
	if form.Phone != "" {
		phone = &form.Phone
	}
	q := &model.Inquiry{
		Reference:  uuid.NewString(),
		PropertyID: propertyID,
		Name:       form.Name,
		Email:      form.Email,
		Phone:      phone,
		Message:    form.Message,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Inquiries.Create(ctx, q); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not submit inquiry"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"reference": q.Reference})
}
