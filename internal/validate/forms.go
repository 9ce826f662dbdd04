// Package validate performs client-facing request validation. Failures are
// reported as field-keyed message maps so handlers can return inline,
// per-field feedback; nothing invalid ever reaches the database.
package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// InquiryForm is the payload of the public contact and property-inquiry
// forms. Phone is free text and optional; the other bounds come straight
// from the site's form contract.
type InquiryForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// Inquiry validates an inquiry form. On failure it returns a map of field
// name to human-readable message; an empty map means the form is valid.
func Inquiry(f InquiryForm) map[string]string {
	err := v.Struct(f)
	if err == nil {
		return map[string]string{}
	}
	problems := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		problems["form"] = "invalid form"
		return problems
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			problems[field] = "is required"
		case "min":
			problems[field] = "must be at least " + fe.Param() + " characters"
		case "max":
			problems[field] = "must be at most " + fe.Param() + " characters"
		case "email":
			problems[field] = "must be a valid email address"
		default:
			problems[field] = "is invalid"
		}
	}
	return problems
}
