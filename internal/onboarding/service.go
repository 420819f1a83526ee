package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"growthai/portal/internal/simulation"
)

// DefaultSessionTTL is how long an idle session is kept
const DefaultSessionTTL = 30 * time.Minute

// ServiceConfig configures the onboarding service
type ServiceConfig struct {
	SessionTTL time.Duration
	Progress   simulation.ProgressConfig
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		SessionTTL: DefaultSessionTTL,
		Progress:   simulation.DefaultProgressConfig(),
	}
}

// Service provides business logic for onboarding sessions
type Service struct {
	repo   Repository
	config ServiceConfig
	logger *zap.Logger
	now    func() time.Time

	onDiscard []func(uuid.UUID)
}

// NewService creates a new onboarding service
func NewService(repo Repository, config ServiceConfig, logger *zap.Logger) *Service {
	if config.SessionTTL <= 0 {
		config.SessionTTL = DefaultSessionTTL
	}
	return &Service{
		repo:   repo,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// OnDiscard registers fn to be called with the session id whenever a
// session leaves the workspace or is reset. Register before serving.
func (s *Service) OnDiscard(fn func(id uuid.UUID)) {
	s.onDiscard = append(s.onDiscard, fn)
}

func (s *Service) discarded(id uuid.UUID) {
	for _, fn := range s.onDiscard {
		fn(id)
	}
}

// =====================================================
// Session Operations
// =====================================================

// CreateSession starts a new visitor session on the landing page
func (s *Service) CreateSession(ctx context.Context) (*Session, error) {
	session := newSession(s.now())
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Session created", zap.String("session_id", session.ID.String()))
	return session, nil
}

// GetSession returns a live session and refreshes its idle timer
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if session.expired(now, s.config.SessionTTL) {
		if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			s.logger.Warn("Failed to delete expired session", zap.String("session_id", id.String()), zap.Error(err))
		}
		return nil, ErrSessionNotFound
	}

	session.touch(now)
	return session, nil
}

// GetState returns a copy of the session state
func (s *Service) GetState(ctx context.Context, id uuid.UUID) (State, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return State{}, err
	}
	return session.State(), nil
}

// Dispatch applies the events to the session in order. Either all of them
// are applied or, if one is rejected, none are and the current state is
// returned with the error.
func (s *Service) Dispatch(ctx context.Context, id uuid.UUID, events ...Event) (State, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return State{}, err
	}

	prev, state, err := s.apply(session, events...)
	if err != nil {
		s.logger.Debug("Event rejected",
			zap.String("session_id", id.String()),
			zap.Strings("events", eventTypes(events)),
			zap.Error(err),
		)
		return state, err
	}

	s.logger.Debug("Events applied",
		zap.String("session_id", id.String()),
		zap.Strings("events", eventTypes(events)),
		zap.String("mode", string(state.Mode)),
		zap.Int("step", state.Step),
		zap.Int("errors", len(state.Errors)),
	)
	if prev == ModeWorkspace && state.Mode != ModeWorkspace {
		s.discarded(id)
	}
	return state, nil
}

// Reset discards the record and returns the session to the landing page
func (s *Service) Reset(ctx context.Context, id uuid.UUID) (State, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return State{}, err
	}

	session.mu.Lock()
	session.state = NewState()
	state := session.state.Clone()
	session.mu.Unlock()

	s.logger.Info("Session reset", zap.String("session_id", id.String()))
	s.discarded(id)
	return state, nil
}

// =====================================================
// Simulation Operations
// =====================================================

// RunAnalysis drives the simulated analysis of a session that has finished
// the form. onProgress is called with the state after every tick. The call
// blocks until the session reaches the workspace, ctx is cancelled, or the
// session leaves analysis mode. Progress made before a cancellation is kept
// so a later call resumes from it.
func (s *Service) RunAnalysis(ctx context.Context, id uuid.UUID, onProgress func(State)) (State, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return State{}, err
	}

	session.mu.Lock()
	switch {
	case session.state.Mode == ModeWorkspace:
		state := session.state.Clone()
		session.mu.Unlock()
		return state, nil
	case session.state.Mode != ModeAnalysis:
		state := session.state.Clone()
		session.mu.Unlock()
		return state, fmt.Errorf("analysis in %s: %w", state.Mode, ErrInvalidTransition)
	case session.analyzing:
		state := session.state.Clone()
		session.mu.Unlock()
		return state, ErrAnalysisInProgress
	}
	session.analyzing = true
	start := session.state.AnalysisProgress
	session.mu.Unlock()

	defer func() {
		session.mu.Lock()
		session.analyzing = false
		session.lastSeen = s.now()
		session.mu.Unlock()
	}()

	s.logger.Info("Analysis started", zap.String("session_id", id.String()), zap.Int("progress", start))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		applyErr error
		final    State
		previous = start
	)

	timer := simulation.NewProgressTimer(s.config.Progress, start)
	runErr := timer.Run(runCtx, func(progress int) {
		_, state, err := s.apply(session, ProgressTick{Increment: progress - previous})
		if err != nil {
			applyErr = err
			cancel()
			return
		}
		previous = progress
		if onProgress != nil {
			onProgress(state)
		}
	}, func() {
		_, state, err := s.apply(session, AnalysisDone{})
		if err != nil {
			applyErr = err
			return
		}
		final = state
	})

	if applyErr != nil {
		s.logger.Info("Analysis abandoned", zap.String("session_id", id.String()), zap.Error(applyErr))
		return session.State(), applyErr
	}
	if runErr != nil {
		s.logger.Info("Analysis interrupted", zap.String("session_id", id.String()), zap.Error(runErr))
		return session.State(), runErr
	}

	s.logger.Info("Analysis completed", zap.String("session_id", id.String()))
	return final, nil
}

// WorkspaceScript returns the agent script for a session in the workspace
func (s *Service) WorkspaceScript(ctx context.Context, id uuid.UUID) (simulation.Script, error) {
	state, err := s.GetState(ctx, id)
	if err != nil {
		return simulation.Script{}, err
	}
	if state.Mode != ModeWorkspace {
		return simulation.Script{}, fmt.Errorf("workspace in %s: %w", state.Mode, ErrInvalidTransition)
	}
	return simulation.NewWorkspaceScript(state.Record.WebsiteURL), nil
}

// Summary builds the exportable overview of the session record
func (s *Service) Summary(ctx context.Context, id uuid.UUID) (*Summary, error) {
	state, err := s.GetState(ctx, id)
	if err != nil {
		return nil, err
	}
	if !SummaryAvailable(state) {
		return nil, ErrSummaryUnavailable
	}
	return &Summary{
		SessionID:   id,
		GeneratedAt: s.now(),
		Lines:       SummaryLines(state.Record),
	}, nil
}

// SweepExpired removes idle sessions
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteExpired(ctx, s.now(), s.config.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	if removed > 0 {
		s.logger.Info("Expired sessions removed", zap.Int("count", removed))
	}
	return removed, nil
}

// apply reduces the events under the session lock and returns the mode the
// session was in beforehand.
func (s *Service) apply(session *Session, events ...Event) (Mode, State, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	prev := session.state.Mode
	next, err := ReduceAll(session.state, events...)
	session.lastSeen = s.now()
	if err != nil {
		return prev, session.state.Clone(), err
	}
	session.state = next
	return prev, next.Clone(), nil
}

func eventTypes(events []Event) []string {
	types := make([]string, len(events))
	for i, e := range events {
		if e == nil {
			types[i] = "nil"
			continue
		}
		types[i] = e.Type()
	}
	return types
}
