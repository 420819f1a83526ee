package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growthai/portal/internal/config"
	"growthai/portal/internal/onboarding"
)

func setupRouter(t *testing.T) (*gin.Engine, *OnboardingAPI) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Session.Secret = "test-secret"

	api, err := SetupOnboardingAPI(cfg, zap.NewNop())
	require.NoError(t, err)

	router := gin.New()
	RegisterOnboardingRoutes(router, api)
	return router, api
}

func TestSetupOnboardingAPIRequiresSecret(t *testing.T) {
	cfg := config.Default()

	_, err := SetupOnboardingAPI(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestHealthReportsSessions(t *testing.T) {
	router, _ := setupRouter(t)

	// The landing page opens a session.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status      string `json:"status"`
		Sessions    int    `json:"sessions"`
		Connections int    `json:"connections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, 1, body.Sessions)
	assert.Zero(t, body.Connections)
}

func TestPagesAndAPIShareSession(t *testing.T) {
	router, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/onboarding/start", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == onboarding.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/onboarding/state", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"onboarding"`)
}
