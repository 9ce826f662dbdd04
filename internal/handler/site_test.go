package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func getReq(t *testing.T, e *echo.Echo, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetTranslations(t *testing.T) {
	h := &SiteHandler{}
	e := echo.New()

	c, rec := getReq(t, e, "/v1/i18n/fr")
	c.SetParamNames("lang")
	c.SetParamValues("fr")
	require.NoError(t, h.GetTranslations(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = getReq(t, e, "/v1/i18n/de")
	c.SetParamNames("lang")
	c.SetParamValues("de")
	require.NoError(t, h.GetTranslations(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Supported []string `json:"supported"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Supported, "en")
	require.Contains(t, resp.Supported, "fr")
}

func TestGetRefData(t *testing.T) {
	h := &SiteHandler{}
	e := echo.New()

	c, rec := getReq(t, e, "/v1/refdata")
	require.NoError(t, h.GetRefData(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string][]struct {
		Code  string `json:"code"`
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["cities"])
	require.NotEmpty(t, resp["property_types"])
}

func TestGetMessagingLink(t *testing.T) {
	h := &SiteHandler{ContactPhone: "+33 6 12 34 56 78"}
	e := echo.New()

	c, rec := getReq(t, e, "/v1/messaging-link")
	require.NoError(t, h.GetMessagingLink(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp["url"], "https://wa.me/33612345678?text=")
}

func TestGetMessagingLinkNoPhoneConfigured(t *testing.T) {
	h := &SiteHandler{}
	e := echo.New()

	c, rec := getReq(t, e, "/v1/messaging-link")
	require.NoError(t, h.GetMessagingLink(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
