package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/rivieraprestige/concierge-api/internal/model"
	"github.com/rivieraprestige/concierge-api/internal/repository"
)

// ---- fakes ----

type fakeInquiryStore struct {
	created []*model.Inquiry
	err     error
}

func (f *fakeInquiryStore) Create(_ context.Context, q *model.Inquiry) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, q)
	return nil
}

type fakePropertyLookup struct {
	published map[uint64]model.Property
}

func (f *fakePropertyLookup) GetPublishedByID(_ context.Context, id uint64) (model.Property, error) {
	p, ok := f.published[id]
	if !ok {
		return model.Property{}, repository.ErrNotFound
	}
	return p, nil
}

func postJSON(t *testing.T, e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validBody = `{
	"name": "Jean Dupont",
	"email": "Jean@Example.com",
	"phone": "",
	"message": "Interested in a summer rental on the coast."
}`

// ---- tests ----

func TestSubmitContactCreatesInquiry(t *testing.T) {
	store := &fakeInquiryStore{}
	h := NewInquiryHandler(store, &fakePropertyLookup{})
	e := echo.New()

	c, rec := postJSON(t, e, "/v1/inquiries", validBody)
	require.NoError(t, h.SubmitContact(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["reference"])

	require.Len(t, store.created, 1)
	q := store.created[0]
	require.Equal(t, resp["reference"], q.Reference)
	require.Equal(t, "jean@example.com", q.Email) // normalized
	require.Nil(t, q.PropertyID)
	require.Nil(t, q.Phone) // empty phone stored as NULL
}

func TestSubmitContactValidationFailure(t *testing.T) {
	store := &fakeInquiryStore{}
	h := NewInquiryHandler(store, &fakePropertyLookup{})
	e := echo.New()

	c, rec := postJSON(t, e, "/v1/inquiries", `{"name":"J","email":"bad","message":"short"}`)
	require.NoError(t, h.SubmitContact(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Fields, "name")
	require.Contains(t, resp.Fields, "email")
	require.Contains(t, resp.Fields, "message")
	require.Empty(t, store.created)
}

func TestSubmitPropertyInquiry(t *testing.T) {
	store := &fakeInquiryStore{}
	lookup := &fakePropertyLookup{published: map[uint64]model.Property{
		42: {ID: 42, Published: true},
	}}
	h := NewInquiryHandler(store, lookup)
	e := echo.New()

	c, rec := postJSON(t, e, "/v1/properties/42/inquiries", validBody)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.SubmitPropertyInquiry(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, store.created, 1)
	require.NotNil(t, store.created[0].PropertyID)
	require.Equal(t, uint64(42), *store.created[0].PropertyID)
}

func TestSubmitPropertyInquiryUnpublished(t *testing.T) {
	store := &fakeInquiryStore{}
	h := NewInquiryHandler(store, &fakePropertyLookup{})
	e := echo.New()

	c, rec := postJSON(t, e, "/v1/properties/42/inquiries", validBody)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.SubmitPropertyInquiry(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, store.created)
}

func TestSubmitPropertyInquiryBadID(t *testing.T) {
	h := NewInquiryHandler(&fakeInquiryStore{}, &fakePropertyLookup{})
	e := echo.New()

	c, rec := postJSON(t, e, "/v1/properties/abc/inquiries", validBody)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.SubmitPropertyInquiry(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
