package onboarding

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the onboarding API
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new onboarding handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers onboarding routes. The group must run
// SessionMiddleware.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	onboarding := router.Group("/onboarding")
	{
		onboarding.GET("/steps", h.getSteps)
		onboarding.GET("/state", h.getState)
		onboarding.GET("/summary", h.getSummary)
		onboarding.POST("/events", h.postEvent)
		onboarding.POST("/events/batch", h.postEventBatch)
		onboarding.POST("/reset", h.reset)
	}
}

// getSteps handles GET /api/v1/onboarding/steps
func (h *Handler) getSteps(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	state, err := h.service.GetState(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"steps":    state.VisibleSteps(),
		"progress": state.Progress(),
	})
}

// getState handles GET /api/v1/onboarding/state
func (h *Handler) getState(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	state, err := h.service.GetState(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStateResponse(state))
}

// getSummary handles GET /api/v1/onboarding/summary
func (h *Handler) getSummary(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// postEvent handles POST /api/v1/onboarding/events
func (h *Handler) postEvent(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := req.ToEvent()
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.dispatch(c, id, event)
}

// postEventBatch handles POST /api/v1/onboarding/events/batch
func (h *Handler) postEventBatch(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req EventBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events := make([]Event, 0, len(req.Events))
	for _, r := range req.Events {
		event, err := r.ToEvent()
		if err != nil {
			h.respondError(c, err)
			return
		}
		events = append(events, event)
	}

	h.dispatch(c, id, events...)
}

// reset handles POST /api/v1/onboarding/reset
func (h *Handler) reset(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	state, err := h.service.Reset(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStateResponse(state))
}

func (h *Handler) dispatch(c *gin.Context, id uuid.UUID, events ...Event) {
	state, err := h.service.Dispatch(c.Request.Context(), id, events...)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStateResponse(state))
}

// =====================================================
// Helper Methods
// =====================================================

func (h *Handler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Onboarding request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// StatusFor maps onboarding errors to HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrAnalysisIncomplete),
		errors.Is(err, ErrAnalysisInProgress),
		errors.Is(err, ErrSummaryUnavailable):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownEvent),
		errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrUnknownGoal),
		errors.Is(err, ErrUnknownIntegration),
		errors.Is(err, ErrUnknownCredential),
		errors.Is(err, ErrInvalidValue):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
