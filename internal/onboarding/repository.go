package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one visitor's wizard. All reads and writes of its state go
// through the session lock, so events for a visitor are applied one at a
// time in arrival order.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu        sync.Mutex
	state     State
	lastSeen  time.Time
	analyzing bool
}

func newSession(now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		state:     NewState(),
		lastSeen:  now,
	}
}

// State returns a copy of the session state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyzing {
		return false
	}
	return now.Sub(s.lastSeen) > ttl
}

// Repository defines the interface for session storage
type Repository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time, ttl time.Duration) (int, error)
	Count(ctx context.Context) (int, error)
}

// MemoryRepository keeps sessions in process memory. Nothing survives a
// restart.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewMemoryRepository creates an empty session store
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create stores a new session
func (r *MemoryRepository) Create(ctx context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	return nil
}

// Get retrieves a session by id
func (r *MemoryRepository) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session
func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// DeleteExpired removes sessions idle for longer than ttl. Sessions with an
// analysis stream attached are kept.
func (r *MemoryRepository) DeleteExpired(ctx context.Context, now time.Time, ttl time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.expired(now, ttl) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of stored sessions
func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions), nil
}
