package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validForm() InquiryForm {
	return InquiryForm{
		Name:    "Jean Dupont",
		Email:   "jean@example.com",
		Phone:   "+33 6 12 34 56 78",
		Message: "Interested in a summer rental on the Cap Ferrat peninsula.",
	}
}

func TestInquiryValid(t *testing.T) {
	require.Empty(t, Inquiry(validForm()))
}

func TestInquiryPhoneOptional(t *testing.T) {
	f := validForm()
	f.Phone = ""
	require.Empty(t, Inquiry(f))
}

func TestInquiryMessageBounds(t *testing.T) {
	f := validForm()

	f.Message = strings.Repeat("a", 9)
	problems := Inquiry(f)
	require.Contains(t, problems, "message")

	f.Message = strings.Repeat("a", 10)
	require.Empty(t, Inquiry(f))

	f.Message = strings.Repeat("a", 1000)
	require.Empty(t, Inquiry(f))

	f.Message = strings.Repeat("a", 1001)
	problems = Inquiry(f)
	require.Equal(t, "must be at most 1000 characters", problems["message"])
}

func TestInquiryNameBounds(t *testing.T) {
	f := validForm()

	f.Name = "J"
	require.Contains(t, Inquiry(f), "name")

	f.Name = "Jo"
	require.Empty(t, Inquiry(f))

	f.Name = strings.Repeat("n", 100)
	require.Empty(t, Inquiry(f))

	f.Name = strings.Repeat("n", 101)
	require.Contains(t, Inquiry(f), "name")
}

func TestInquiryEmail(t *testing.T) {
	f := validForm()

	f.Email = ""
	require.Equal(t, "is required", Inquiry(f)["email"])

	f.Email = "not-an-email"
	require.Equal(t, "must be a valid email address", Inquiry(f)["email"])
}

// longEmail builds a syntactically valid address of exactly n characters,
// padding with dot-separated domain labels of at most 63 characters.
func longEmail(n int) string {
	var b strings.Builder
	b.WriteString("a@")
	remaining := n - b.Len()
	for remaining > 0 {
		label := remaining
		if label > 63 {
			label = 63
		}
		b.WriteString(strings.Repeat("b", label))
		remaining -= label
		if remaining > 0 {
			b.WriteString(".")
			remaining--
		}
	}
	return b.String()
}

func TestInquiryEmailLengthBounds(t *testing.T) {
	f := validForm()

	f.Email = longEmail(255)
	require.Len(t, f.Email, 255)
	require.Empty(t, Inquiry(f))

	f.Email = longEmail(256)
	require.Len(t, f.Email, 256)
	require.Equal(t, "must be at most 255 characters", Inquiry(f)["email"])
}

func TestInquiryMissingEverything(t *testing.T) {
	problems := Inquiry(InquiryForm{})
	require.Len(t, problems, 3) // phone is optional
	require.Contains(t, problems, "name")
	require.Contains(t, problems, "email")
	require.Contains(t, problems, "message")
}
