package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growthai/portal/internal/components"
	"growthai/portal/internal/onboarding"
	"growthai/portal/internal/simulation"
	"growthai/portal/internal/workspace"
	"growthai/portal/pkg/security"
)

type browser struct {
	t       *testing.T
	router  *gin.Engine
	cookie  *http.Cookie
	service *onboarding.Service
	manager *workspace.Manager
}

func newBrowser(t *testing.T) *browser {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := onboarding.NewService(onboarding.NewMemoryRepository(), onboarding.ServiceConfig{
		SessionTTL: time.Minute,
		Progress: simulation.ProgressConfig{
			Increment:       10,
			Interval:        time.Millisecond,
			CompletionDelay: time.Millisecond,
		},
	}, zap.NewNop())
	issuer, err := security.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	manager := workspace.NewManager(time.Millisecond, zap.NewNop())
	svc.OnDiscard(manager.DisconnectSession)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = manager.Close(ctx)
	})

	router := gin.New()
	site := router.Group("/")
	site.Use(onboarding.SessionMiddleware(svc, issuer, onboarding.CookieOptions{}, zap.NewNop()))
	NewHandler(svc, manager, zap.NewNop()).RegisterRoutes(site)

	return &browser{t: t, router: router, service: svc, manager: manager}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == onboarding.SessionCookie {
			b.cookie = ck
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// answer posts one wizard step and expects to land back on the wizard
func (b *browser) answer(form url.Values) {
	b.t.Helper()
	w := b.post(components.OnboardingPath, form)
	require.Equal(b.t, http.StatusSeeOther, w.Code, w.Body.String())
}

// state reads the visitor's wizard state straight from the service
func (b *browser) state() onboarding.State {
	b.t.Helper()
	state, err := b.service.GetState(context.Background(), b.sessionID())
	require.NoError(b.t, err)
	return state
}

func (b *browser) sessionID() uuid.UUID {
	b.t.Helper()
	issuer, err := security.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(b.t, err)
	id, err := issuer.Parse(b.cookie.Value)
	require.NoError(b.t, err)
	return id
}

func form(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Add(pairs[i], pairs[i+1])
	}
	return v
}

// walkToReview answers every step with valid values
func (b *browser) walkToReview() {
	b.t.Helper()
	require.Equal(b.t, http.StatusSeeOther, b.post(components.StartPath, nil).Code)

	b.answer(form("business_name", "Joe's Coffee Shop"))
	b.answer(form("business_category", "restaurant"))
	b.answer(form("business_size", "small"))
	b.answer(form("business_location", "New York, NY"))
	b.answer(form("business_description", "Neighborhood coffee and fresh pastries."))
	b.answer(form("goals", "customers", "goals", "seo"))
	b.answer(form("competition_level", "medium", "monthly_budget", "2500"))
	b.answer(form("has_website", "yes"))
	b.answer(form("website_url", "https://joes.example"))
	b.answer(form("cms_type", "wordpress"))
	b.answer(form("hosting_type", "shared"))
	b.answer(form("hosting_provider", "Bluehost", "hosting_username", "joe", "hosting_password", "s3cret"))
	b.answer(form("integrations", "gmb", components.CredentialKey("gmb", "email"), "joe@joes.example"))
}

func TestLandingRendersAndSetsCookie(t *testing.T) {
	b := newBrowser(t)

	w := b.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "AUTONOMOUS")
	require.NotNil(t, b.cookie)
	assert.True(t, b.cookie.HttpOnly)
}

func TestLandingFAQQuery(t *testing.T) {
	b := newBrowser(t)

	assert.Contains(t, b.get("/?faq=1").Body.String(), `href="/#velocity"`)
	assert.NotContains(t, b.get("/?faq=9").Body.String(), `href="/#velocity"`)
	assert.NotContains(t, b.get("/?faq=abc").Body.String(), `href="/#velocity"`)
}

func TestWizardRedirectsFromLanding(t *testing.T) {
	b := newBrowser(t)

	w := b.get(components.OnboardingPath)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestStartOpensWizard(t *testing.T) {
	b := newBrowser(t)

	w := b.post(components.StartPath, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, components.OnboardingPath, w.Header().Get("Location"))

	w = b.get(components.OnboardingPath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Step 1 of 13")
}

func TestSubmitShowsValidationErrors(t *testing.T) {
	b := newBrowser(t)
	b.post(components.StartPath, nil)

	b.answer(form("business_name", "   "))
	body := b.get(components.OnboardingPath).Body.String()
	assert.Contains(t, body, "Please fix these issues")
	assert.Contains(t, body, onboarding.MsgBusinessNameRequired)
	assert.Contains(t, body, "Step 1 of 13")
}

func TestSubmitBackAndExit(t *testing.T) {
	b := newBrowser(t)
	b.post(components.StartPath, nil)
	b.answer(form("business_name", "Acme"))
	assert.Equal(t, 2, b.state().Step)

	b.answer(form("action", "back", "business_category", "retail"))
	state := b.state()
	assert.Equal(t, 1, state.Step)
	assert.Equal(t, "retail", state.Record.BusinessCategory)

	w := b.post(components.OnboardingPath, form("action", "exit"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	state = b.state()
	assert.Equal(t, onboarding.ModeLanding, state.Mode)
	assert.Empty(t, state.Record.BusinessName)
}

func TestSubmitInvalidBudget(t *testing.T) {
	b := newBrowser(t)
	b.post(components.StartPath, nil)

	w := b.post(components.OnboardingPath, form("business_name", "Acme"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	s := b.state()
	id := b.sessionID()
	_, err := b.service.Dispatch(context.Background(), id, onboarding.GoTo{Index: onboarding.StepPosition(s.Record, onboarding.StepCompetitionLevel)})
	require.NoError(t, err)

	w = b.post(components.OnboardingPath, form("competition_level", "high", "monthly_budget", "lots"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), MsgBudgetInvalid)
	// The level the visitor picked is still shown but not stored.
	assert.Contains(t, w.Body.String(), `value="high" checked`)
	assert.Empty(t, b.state().Record.CompetitionLevel)
}

func TestIntegrationSecretKeptOnBlankSubmit(t *testing.T) {
	b := newBrowser(t)
	b.walkToReview()

	toIntegrations := func() {
		s := b.state()
		_, err := b.service.Dispatch(context.Background(), b.sessionID(),
			onboarding.GoTo{Index: onboarding.StepPosition(s.Record, onboarding.StepIntegrations)})
		require.NoError(t, err)
	}
	passwordKey := components.CredentialKey("gmb", "password")

	toIntegrations()
	b.answer(form("action", "back", "integrations", "gmb", passwordKey, "hunter2-secret"))
	assert.Equal(t, "hunter2-secret", b.state().Record.Integrations["gmb"].Credentials["password"])

	toIntegrations()
	page := b.get(components.OnboardingPath).Body.String()
	assert.Contains(t, page, passwordKey)
	assert.NotContains(t, page, "hunter2-secret")

	b.answer(form("action", "back", "integrations", "gmb", passwordKey, ""))
	assert.Equal(t, "hunter2-secret", b.state().Record.Integrations["gmb"].Credentials["password"])
}

func TestFullFlowToWorkspace(t *testing.T) {
	b := newBrowser(t)
	b.walkToReview()

	state := b.state()
	require.Equal(t, onboarding.StepReview, state.ActiveStep().ID)
	assert.Equal(t, 2500, state.Record.MonthlyBudget)
	assert.Equal(t, "s3cret", state.Record.HostingPassword)
	assert.Equal(t, "joe@joes.example", state.Record.Integrations["gmb"].Credentials["email"])
	assert.Equal(t, []string{"customers", "seo"}, state.Record.SelectedGoals)

	// Review requires the checkbox.
	b.answer(form())
	assert.Contains(t, b.get(components.OnboardingPath).Body.String(), onboarding.MsgTermsRequired)

	w := b.post(components.OnboardingPath, form("terms", "on"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, components.AnalysisPath, w.Header().Get("Location"))

	w = b.get(components.AnalysisPath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0% Complete")

	w = b.get(components.AnalysisStreamPath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	body := w.Body.String()
	assert.Equal(t, 10, strings.Count(body, "event:progress"))
	assert.Contains(t, body, "event:complete")
	assert.Contains(t, body, `"mode":"workspace"`)

	w = b.get(components.AnalysisPath)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, components.WorkspacePath, w.Header().Get("Location"))

	w = b.get(components.WorkspacePath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `src="https://joes.example"`)

	// Starting again from the landing page clears the record.
	w = b.post(components.StartPath, nil)
	assert.Equal(t, components.OnboardingPath, w.Header().Get("Location"))
	assert.Empty(t, b.state().Record.BusinessName)
}

func TestAnalysisStreamOutsideAnalysis(t *testing.T) {
	b := newBrowser(t)
	b.post(components.StartPath, nil)

	body := b.get(components.AnalysisStreamPath).Body.String()
	assert.Contains(t, body, "event:failure")
	assert.NotContains(t, body, "event:progress")
}

func TestWorkspaceRedirectsBeforeAnalysis(t *testing.T) {
	b := newBrowser(t)
	b.post(components.StartPath, nil)

	w := b.get(components.WorkspacePath)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, components.OnboardingPath, w.Header().Get("Location"))

	w = b.get(components.WorkspaceWSPath)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSummaryDownload(t *testing.T) {
	b := newBrowser(t)
	b.post(components.StartPath, nil)

	w := b.get(components.SummaryPath + "/pdf")
	assert.Equal(t, http.StatusConflict, w.Code)

	b.walkToReview()

	w = b.get(components.SummaryPath + "/csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "Joe's Coffee Shop")
	assert.NotContains(t, w.Body.String(), "s3cret")

	w = b.get(components.SummaryPath + "/pdf")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))

	w = b.get(components.SummaryPath + "/docx")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkspaceSocketStreamsScript(t *testing.T) {
	b := newBrowser(t)
	b.walkToReview()
	b.post(components.OnboardingPath, form("terms", "on"))
	b.get(components.AnalysisStreamPath)

	srv := httptest.NewServer(b.router)
	defer srv.Close()

	header := http.Header{}
	header.Add("Cookie", (&http.Cookie{Name: b.cookie.Name, Value: b.cookie.Value}).String())
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+components.WorkspaceWSPath, header)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg workspace.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, workspace.MessageTypeSnapshot, msg.Type)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, workspace.MessageTypeFrame, msg.Type)
}

func TestStartFromWorkspaceStopsPlayback(t *testing.T) {
	b := newBrowser(t)
	b.walkToReview()
	b.post(components.OnboardingPath, form("terms", "on"))
	b.get(components.AnalysisStreamPath)

	srv := httptest.NewServer(b.router)
	defer srv.Close()

	header := http.Header{}
	header.Add("Cookie", (&http.Cookie{Name: b.cookie.Name, Value: b.cookie.Value}).String())
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+components.WorkspaceWSPath, header)
	require.NoError(t, err)
	defer conn.Close()

	var msg workspace.Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, 1, b.manager.GetConnectionCount())

	w := b.post(components.StartPath, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, components.OnboardingPath, w.Header().Get("Location"))

	assert.Eventually(t, func() bool {
		return b.manager.GetConnectionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, "/", PathFor(onboarding.ModeLanding))
	assert.Equal(t, components.OnboardingPath, PathFor(onboarding.ModeOnboarding))
	assert.Equal(t, components.AnalysisPath, PathFor(onboarding.ModeAnalysis))
	assert.Equal(t, components.WorkspacePath, PathFor(onboarding.ModeWorkspace))
}
