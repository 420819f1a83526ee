package onboarding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"growthai/portal/internal/simulation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, session *Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteExpired(ctx context.Context, now time.Time, ttl time.Duration) (int, error) {
	args := m.Called(ctx, now, ttl)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func fastConfig() ServiceConfig {
	return ServiceConfig{
		SessionTTL: time.Minute,
		Progress: simulation.ProgressConfig{
			Increment:       2,
			Interval:        time.Millisecond,
			CompletionDelay: time.Millisecond,
		},
	}
}

func newTestService(t *testing.T) (*Service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	return NewService(repo, fastConfig(), zap.NewNop()), repo
}

// readyForAnalysis creates a session that has just submitted the review step
func readyForAnalysis(t *testing.T, svc *Service) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	state := answered(t, true)
	state = mustReduce(t, state, SetTerms{Accepted: true}, Next{})
	require.Equal(t, ModeAnalysis, state.Mode)

	session.mu.Lock()
	session.state = state
	session.mu.Unlock()
	return session.ID
}

func TestCreateSession(t *testing.T) {
	svc, repo := newTestService(t)

	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, ModeLanding, session.State().Mode)

	count, _ := repo.Count(context.Background())
	assert.Equal(t, 1, count)
}

func TestCreateSessionRepositoryError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*onboarding.Session")).Return(errors.New("store full"))
	svc := NewService(repo, fastConfig(), zap.NewNop())

	session, err := svc.CreateSession(context.Background())
	assert.Nil(t, session)
	assert.ErrorContains(t, err, "store full")
	repo.AssertExpectations(t)
}

func TestGetSessionMissing(t *testing.T) {
	repo := new(MockRepository)
	id := uuid.New()
	repo.On("Get", mock.Anything, id).Return(nil, ErrSessionNotFound)
	svc := NewService(repo, fastConfig(), zap.NewNop())

	_, err := svc.GetState(context.Background(), id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	repo.AssertExpectations(t)
}

func TestGetSessionExpired(t *testing.T) {
	svc, repo := newTestService(t)
	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = svc.GetSession(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	count, _ := repo.Count(context.Background())
	assert.Zero(t, count)
}

func TestDispatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	state, err := svc.Dispatch(ctx, session.ID, Open{}, SetField{Field: FieldBusinessName, Value: "Acme"}, Next{})
	require.NoError(t, err)
	assert.Equal(t, 2, state.Step)
	assert.Equal(t, "Acme", session.State().Record.BusinessName)

	state, err = svc.Dispatch(ctx, session.ID, SetField{Field: FieldBusinessCategory, Value: "retail"}, ToggleGoal{GoalID: "??"})
	assert.ErrorIs(t, err, ErrUnknownGoal)
	assert.Empty(t, state.Record.BusinessCategory, "rejected batch leaves the state untouched")
	assert.Empty(t, session.State().Record.BusinessCategory)
}

func TestDispatchConcurrentEventsAreSerialized(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, session.ID, Open{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Dispatch(ctx, session.ID, ToggleGoal{GoalID: "seo"})
		}()
	}
	wg.Wait()

	assert.Empty(t, session.State().Record.SelectedGoals, "an even number of toggles cancels out")
}

func TestReset(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, session.ID, Open{}, SetField{Field: FieldBusinessName, Value: "Acme"})
	require.NoError(t, err)

	state, err := svc.Reset(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, NewState(), state)
}

func TestDiscardCallbacks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var discarded []uuid.UUID
	svc.OnDiscard(func(id uuid.UUID) { discarded = append(discarded, id) })

	id := readyForAnalysis(t, svc)
	_, err := svc.RunAnalysis(ctx, id, nil)
	require.NoError(t, err)
	assert.Empty(t, discarded)

	// Staying in the workspace keeps the playback.
	_, err = svc.Dispatch(ctx, id, Open{})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, discarded)

	state, err := svc.Dispatch(ctx, id, Restart{}, Open{})
	require.NoError(t, err)
	assert.Equal(t, ModeOnboarding, state.Mode)
	assert.Equal(t, []uuid.UUID{id}, discarded)

	_, err = svc.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id, id}, discarded)
}

func TestRunAnalysisCompletes(t *testing.T) {
	svc, _ := newTestService(t)
	id := readyForAnalysis(t, svc)

	var mu sync.Mutex
	var seen []int
	state, err := svc.RunAnalysis(context.Background(), id, func(s State) {
		mu.Lock()
		seen = append(seen, s.AnalysisProgress)
		mu.Unlock()
	})

	require.NoError(t, err)
	assert.Equal(t, ModeWorkspace, state.Mode)
	assert.Equal(t, 100, state.AnalysisProgress)
	require.Len(t, seen, 50)
	assert.Equal(t, 2, seen[0])
	assert.Equal(t, 100, seen[49])
}

func TestRunAnalysisResumesAfterCancel(t *testing.T) {
	svc, _ := newTestService(t)
	id := readyForAnalysis(t, svc)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := svc.RunAnalysis(ctx, id, func(s State) {
		if s.AnalysisProgress >= 20 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)

	state, _ := svc.GetState(context.Background(), id)
	assert.Equal(t, ModeAnalysis, state.Mode)
	resumed := state.AnalysisProgress
	assert.GreaterOrEqual(t, resumed, 20)

	var first int
	state, err = svc.RunAnalysis(context.Background(), id, func(s State) {
		if first == 0 {
			first = s.AnalysisProgress
		}
	})
	require.NoError(t, err)
	assert.Equal(t, resumed+2, first)
	assert.Equal(t, ModeWorkspace, state.Mode)
}

func TestRunAnalysisRejectsSecondStream(t *testing.T) {
	svc, _ := newTestService(t)
	id := readyForAnalysis(t, svc)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	done := make(chan error, 1)

	go func() {
		_, err := svc.RunAnalysis(context.Background(), id, func(State) {
			once.Do(func() {
				close(started)
				<-release
			})
		})
		done <- err
	}()

	<-started
	_, err := svc.RunAnalysis(context.Background(), id, nil)
	assert.ErrorIs(t, err, ErrAnalysisInProgress)

	close(release)
	assert.NoError(t, <-done)
}

func TestRunAnalysisStopsWhenSessionExits(t *testing.T) {
	svc, _ := newTestService(t)
	id := readyForAnalysis(t, svc)

	var once sync.Once
	state, err := svc.RunAnalysis(context.Background(), id, func(State) {
		once.Do(func() {
			go func() { _, _ = svc.Dispatch(context.Background(), id, Exit{}) }()
		})
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, ModeLanding, state.Mode)
}

func TestRunAnalysisWrongMode(t *testing.T) {
	svc, _ := newTestService(t)
	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	_, err = svc.RunAnalysis(context.Background(), session.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestWorkspaceScriptUsesWebsite(t *testing.T) {
	svc, _ := newTestService(t)
	id := readyForAnalysis(t, svc)

	_, err := svc.WorkspaceScript(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.RunAnalysis(context.Background(), id, nil)
	require.NoError(t, err)

	script, err := svc.WorkspaceScript(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "https://joes.example", script.TargetURL)
}

func TestSummaryAvailability(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.Summary(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSummaryUnavailable)

	id := readyForAnalysis(t, svc)
	summary, err := svc.Summary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, summary.SessionID)
	assert.NotEmpty(t, summary.Lines)
}

func TestSweepExpired(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.CreateSession(ctx)
	require.NoError(t, err)

	removed, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	removed, err = svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	count, _ := repo.Count(ctx)
	assert.Zero(t, count)
}

func TestSweepExpiredError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("DeleteExpired", mock.Anything, mock.Anything, time.Minute).Return(0, errors.New("boom"))
	svc := NewService(repo, fastConfig(), zap.NewNop())

	_, err := svc.SweepExpired(context.Background())
	assert.ErrorContains(t, err, "boom")
	repo.AssertExpectations(t)
}

func TestSweeperLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	sweeper := NewSweeper(svc, "@every 1h", zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))
	assert.Error(t, sweeper.Start(context.Background()))
	sweeper.Stop()
	sweeper.Stop()
}

func TestSweeperRejectsBadSchedule(t *testing.T) {
	svc, _ := newTestService(t)
	sweeper := NewSweeper(svc, "every now and then", zap.NewNop())
	assert.Error(t, sweeper.Start(context.Background()))
}
