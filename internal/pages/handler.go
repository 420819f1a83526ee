package pages

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"

	"growthai/portal/internal/catalog"
	"growthai/portal/internal/components"
	"growthai/portal/internal/export"
	"growthai/portal/internal/onboarding"
	"growthai/portal/internal/workspace"
)

// MsgBudgetInvalid is shown when the budget field is not a whole number
const MsgBudgetInvalid = "Monthly budget must be a whole number."

// Handler serves the server-rendered visitor flow: landing page, wizard,
// analysis modal and agent workspace.
type Handler struct {
	service   *onboarding.Service
	workspace *workspace.Manager
	logger    *zap.Logger
}

// NewHandler creates a new pages handler
func NewHandler(service *onboarding.Service, manager *workspace.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		service:   service,
		workspace: manager,
		logger:    logger,
	}
}

// RegisterRoutes registers the page routes. The group must run
// onboarding.SessionMiddleware.
func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", h.landing)
	router.POST(components.StartPath, h.start)
	router.GET(components.OnboardingPath, h.wizard)
	router.POST(components.OnboardingPath, h.submit)
	router.GET(components.AnalysisPath, h.analysis)
	router.GET(components.AnalysisStreamPath, h.analysisStream)
	router.GET(components.SummaryPath+"/:format", h.summary)
	router.GET(components.WorkspacePath, h.workspacePage)
	router.GET(components.WorkspaceWSPath, h.workspaceSocket)
}

// landing handles GET /
func (h *Handler) landing(c *gin.Context) {
	openFAQ := -1
	if raw := c.Query("faq"); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil && i >= 0 && i < len(catalog.FAQs) {
			openFAQ = i
		}
	}
	h.render(c, http.StatusOK, components.Landing(openFAQ))
}

// start handles POST /onboarding/start. A visitor already in the workspace
// starts over with a fresh record.
func (h *Handler) start(c *gin.Context) {
	id, state, ok := h.state(c)
	if !ok {
		return
	}

	var events []onboarding.Event
	switch state.Mode {
	case onboarding.ModeLanding:
		events = []onboarding.Event{onboarding.Open{}}
	case onboarding.ModeWorkspace:
		events = []onboarding.Event{onboarding.Restart{}, onboarding.Open{}}
	}

	if len(events) > 0 {
		next, err := h.service.Dispatch(c.Request.Context(), id, events...)
		if err != nil {
			h.fail(c, err)
			return
		}
		state = next
	}
	h.redirectFor(c, state)
}

// wizard handles GET /onboarding
func (h *Handler) wizard(c *gin.Context) {
	_, state, ok := h.state(c)
	if !ok {
		return
	}
	if state.Mode != onboarding.ModeOnboarding {
		h.redirectFor(c, state)
		return
	}
	h.render(c, http.StatusOK, components.Onboarding(state))
}

// submit handles POST /onboarding. The answers on the active step are
// applied together with the navigation action in one atomic dispatch.
func (h *Handler) submit(c *gin.Context) {
	id, state, ok := h.state(c)
	if !ok {
		return
	}
	if state.Mode != onboarding.ModeOnboarding {
		h.redirectFor(c, state)
		return
	}

	answers := FormEvents(c, state.ActiveStep())
	var events []onboarding.Event
	switch c.PostForm(components.FormActionKey) {
	case components.ActionExit:
		events = []onboarding.Event{onboarding.Exit{}}
	case components.ActionBack:
		events = append(answers, onboarding.Previous{})
	default:
		events = append(answers, onboarding.Next{})
	}

	next, err := h.service.Dispatch(c.Request.Context(), id, events...)
	if errors.Is(err, onboarding.ErrInvalidValue) {
		// Nothing was stored. The page shows the other answers as posted.
		shown, rerr := onboarding.ReduceAll(state, withoutBudget(answers)...)
		if rerr != nil {
			shown = state
		}
		shown.Errors = []string{MsgBudgetInvalid}
		h.render(c, http.StatusUnprocessableEntity, components.Onboarding(shown))
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.redirectFor(c, next)
}

// analysis handles GET /onboarding/analysis
func (h *Handler) analysis(c *gin.Context) {
	_, state, ok := h.state(c)
	if !ok {
		return
	}
	if state.Mode != onboarding.ModeAnalysis {
		h.redirectFor(c, state)
		return
	}
	h.render(c, http.StatusOK, components.Analysis(state.AnalysisProgress))
}

// analysisStream handles GET /onboarding/analysis/stream. It drives the
// analysis and streams every tick as a "progress" event, then "complete"
// once the session reaches the workspace.
func (h *Handler) analysisStream(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	state, err := h.service.RunAnalysis(c.Request.Context(), id, func(s onboarding.State) {
		c.SSEvent("progress", progressEvent(s))
		c.Writer.Flush()
	})

	switch {
	case err == nil:
		c.SSEvent("complete", progressEvent(state))
	case errors.Is(err, onboarding.ErrAnalysisInProgress):
		// Another stream is driving this session; the client retries.
		c.SSEvent("progress", progressEvent(state))
	case c.Request.Context().Err() != nil:
		return
	default:
		if onboarding.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("Analysis stream failed", zap.String("session_id", id.String()), zap.Error(err))
		}
		c.SSEvent("failure", gin.H{"error": err.Error(), "mode": state.Mode})
	}
	c.Writer.Flush()
}

func progressEvent(s onboarding.State) gin.H {
	return gin.H{
		"mode":              s.Mode,
		"analysis_progress": s.AnalysisProgress,
		"phase":             catalog.CurrentAnalysisPhase(s.AnalysisProgress),
	}
}

// summary handles GET /onboarding/summary/:format
func (h *Handler) summary(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	exporter, err := export.ByFormat(c.Param("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), id)
	if err != nil {
		c.JSON(onboarding.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, summary); err != nil {
		h.logger.Error("Failed to export summary", zap.String("format", string(exporter.Format())), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export summary"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(summary, exporter.Format())))
	c.Data(http.StatusOK, exporter.ContentType(), buf.Bytes())
}

// workspacePage handles GET /workspace
func (h *Handler) workspacePage(c *gin.Context) {
	id, state, ok := h.state(c)
	if !ok {
		return
	}
	script, err := h.service.WorkspaceScript(c.Request.Context(), id)
	if err != nil {
		h.redirectFor(c, state)
		return
	}
	h.render(c, http.StatusOK, components.Workspace(script))
}

// workspaceSocket handles GET /workspace/ws
func (h *Handler) workspaceSocket(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	script, err := h.service.WorkspaceScript(c.Request.Context(), id)
	if err != nil {
		c.JSON(onboarding.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	if err := h.workspace.Serve(c.Request.Context(), c.Writer, c.Request, id, script); err != nil {
		h.logger.Warn("Workspace socket failed", zap.String("session_id", id.String()), zap.Error(err))
	}
}

// redirectFor sends the visitor to the page for their current mode
func (h *Handler) redirectFor(c *gin.Context, state onboarding.State) {
	c.Redirect(http.StatusSeeOther, PathFor(state.Mode))
}

// PathFor is the page that renders a mode
func PathFor(mode onboarding.Mode) string {
	switch mode {
	case onboarding.ModeOnboarding:
		return components.OnboardingPath
	case onboarding.ModeAnalysis:
		return components.AnalysisPath
	case onboarding.ModeWorkspace:
		return components.WorkspacePath
	}
	return "/"
}

func (h *Handler) render(c *gin.Context, status int, page g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := page.Render(c.Writer); err != nil {
		h.logger.Error("Failed to render page", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
}

func (h *Handler) state(c *gin.Context) (uuid.UUID, onboarding.State, bool) {
	id, ok := h.sessionID(c)
	if !ok {
		return uuid.Nil, onboarding.State{}, false
	}
	state, err := h.service.GetState(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return uuid.Nil, onboarding.State{}, false
	}
	return id, state, true
}

func (h *Handler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := onboarding.SessionID(c)
	if !ok {
		c.String(http.StatusUnauthorized, "session required")
		return uuid.Nil, false
	}
	return id, true
}

// fail answers a page request that could not be served. Sessions that
// vanished mid-request go back to the landing page.
func (h *Handler) fail(c *gin.Context, err error) {
	status := onboarding.StatusFor(err)
	switch status {
	case http.StatusNotFound:
		c.Redirect(http.StatusSeeOther, "/")
	case http.StatusInternalServerError:
		h.logger.Error("Page request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.String(status, "internal error")
	default:
		c.String(status, err.Error())
	}
}
