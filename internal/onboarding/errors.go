package onboarding

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidTransition  = errors.New("event not allowed in current mode")
	ErrAnalysisIncomplete = errors.New("analysis has not reached 100%")
	ErrAnalysisInProgress = errors.New("analysis already running for this session")
	ErrUnknownEvent       = errors.New("unknown event type")
	ErrUnknownField       = errors.New("unknown field")
	ErrUnknownGoal        = errors.New("unknown goal")
	ErrUnknownIntegration = errors.New("unknown integration")
	ErrUnknownCredential  = errors.New("unknown credential field")
	ErrInvalidValue       = errors.New("invalid field value")
	ErrSummaryUnavailable = errors.New("summary is not available before the review step")
)
