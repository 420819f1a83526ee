package onboarding

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growthai/portal/pkg/security"
)

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newAPIClient(t *testing.T) (*apiClient, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t)
	issuer, err := security.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(SessionMiddleware(svc, issuer, CookieOptions{}, zap.NewNop()))
	NewHandler(svc, zap.NewNop()).RegisterRoutes(api)

	return &apiClient{t: t, router: router}, svc
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader([]byte(toJSON(c.t, body)))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == SessionCookie {
			c.cookie = ck
		}
	}
	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func flag(b bool) *bool { return &b }

func TestSessionCookieIssuedOnce(t *testing.T) {
	client, _ := newAPIClient(t)

	w := client.do(http.MethodGet, "/api/v1/onboarding/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, client.cookie)
	assert.True(t, client.cookie.HttpOnly)
	first := client.cookie.Value

	w = client.do(http.MethodGet, "/api/v1/onboarding/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies(), "valid cookie is reused")
	assert.Equal(t, first, client.cookie.Value)
}

func TestInvalidCookieStartsFreshSession(t *testing.T) {
	client, _ := newAPIClient(t)
	client.cookie = &http.Cookie{Name: SessionCookie, Value: "garbage"}

	w := client.do(http.MethodGet, "/api/v1/onboarding/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "garbage", client.cookie.Value)
	assert.Equal(t, "landing", decodeState(t, w)["mode"])
}

func TestPostEventsFlow(t *testing.T) {
	client, _ := newAPIClient(t)

	w := client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "open"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "onboarding", decodeState(t, w)["mode"])

	w = client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "next"})
	require.Equal(t, http.StatusOK, w.Code)
	state := decodeState(t, w)
	assert.Equal(t, float64(1), state["step"])
	assert.Equal(t, []any{MsgBusinessNameRequired}, state["errors"])

	w = client.do(http.MethodPost, "/api/v1/onboarding/events/batch", EventBatchRequest{Events: []EventRequest{
		{Type: "set_field", Field: "business_name", Value: "Acme"},
		{Type: "next"},
	}})
	require.Equal(t, http.StatusOK, w.Code)
	state = decodeState(t, w)
	assert.Equal(t, float64(2), state["step"])
	assert.Equal(t, []any{}, state["errors"])

	active := state["active_step"].(map[string]any)
	assert.Equal(t, "businessCategory", active["id"])
}

func TestPostEventErrors(t *testing.T) {
	client, _ := newAPIClient(t)

	w := client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "next"})
	assert.Equal(t, http.StatusConflict, w.Code, "next is not allowed on the landing page")

	w = client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "teleport"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "progress_tick"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = client.do(http.MethodPost, "/api/v1/onboarding/events", map[string]any{"field": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "open"})
	w = client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "set_has_website"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "flag is required")

	w = client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "set_has_website", Flag: flag(true)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeState(t, w)["record"].(map[string]any)["has_website"])
}

func TestGetStepsFollowsWebsiteAnswer(t *testing.T) {
	client, _ := newAPIClient(t)
	client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "open"})

	w := client.do(http.MethodGet, "/api/v1/onboarding/steps", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeState(t, w)["steps"], 13)

	client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "set_has_website", Flag: flag(true)})
	w = client.do(http.MethodGet, "/api/v1/onboarding/steps", nil)
	assert.Len(t, decodeState(t, w)["steps"], 14)
}

func TestSummaryAndReset(t *testing.T) {
	client, _ := newAPIClient(t)
	client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "open"})

	w := client.do(http.MethodGet, "/api/v1/onboarding/summary", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	client.do(http.MethodPost, "/api/v1/onboarding/events", EventRequest{Type: "go_to", Index: 99})
	w = client.do(http.MethodGet, "/api/v1/onboarding/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), NotProvided)

	w = client.do(http.MethodPost, "/api/v1/onboarding/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "landing", decodeState(t, w)["mode"])
}

func TestHandlerWithoutSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)
	router := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router.Group("/api/v1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/onboarding/state", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(ErrSessionNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(ErrAnalysisInProgress))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrUnknownField))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(assert.AnError))
}
