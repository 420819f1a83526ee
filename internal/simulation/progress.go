package simulation

import (
	"context"
	"sync"
	"time"

	"growthai/portal/pkg/scheduling"
)

// MaxProgress is the value at which the analysis counts as finished
const MaxProgress = 100

// ProgressConfig controls the analysis animation
type ProgressConfig struct {
	Increment       int           `json:"increment"`
	Interval        time.Duration `json:"interval"`
	CompletionDelay time.Duration `json:"completion_delay"`
}

// DefaultProgressConfig returns +2 every 100ms with a 500ms hold at 100
func DefaultProgressConfig() ProgressConfig {
	return ProgressConfig{
		Increment:       2,
		Interval:        100 * time.Millisecond,
		CompletionDelay: 500 * time.Millisecond,
	}
}

// Step returns the progress value after one tick. Once MaxProgress is
// reached the value no longer changes.
func Step(progress, increment int) int {
	if progress >= MaxProgress {
		return MaxProgress
	}
	next := progress + increment
	if next > MaxProgress {
		return MaxProgress
	}
	if next < 0 {
		return 0
	}
	return next
}

// ProgressTimer advances a progress value on a fixed interval
type ProgressTimer struct {
	config   ProgressConfig
	mu       sync.Mutex
	progress int
}

// NewProgressTimer creates a timer starting at the given progress
func NewProgressTimer(config ProgressConfig, start int) *ProgressTimer {
	if config.Increment <= 0 {
		config.Increment = DefaultProgressConfig().Increment
	}
	if config.Interval <= 0 {
		config.Interval = DefaultProgressConfig().Interval
	}
	if start < 0 {
		start = 0
	}
	if start > MaxProgress {
		start = MaxProgress
	}
	return &ProgressTimer{config: config, progress: start}
}

// Progress returns the current value
func (t *ProgressTimer) Progress() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

func (t *ProgressTimer) advance() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = Step(t.progress, t.config.Increment)
	return t.progress
}

// Run ticks until MaxProgress, waits CompletionDelay, then calls onComplete.
// It blocks until completion or until ctx is cancelled; in the latter case
// neither the ticker nor the pending completion fires afterwards and
// ctx.Err() is returned.
func (t *ProgressTimer) Run(ctx context.Context, onTick func(progress int), onComplete func()) error {
	scope := scheduling.NewScope(ctx)
	defer scope.Close()

	finished := make(chan struct{})
	complete := func() {
		if onComplete != nil {
			onComplete()
		}
		close(finished)
	}

	if t.Progress() >= MaxProgress {
		scope.After(t.config.CompletionDelay, complete)
	} else {
		scope.Every(t.config.Interval, func() bool {
			p := t.advance()
			if onTick != nil {
				onTick(p)
			}
			if p >= MaxProgress {
				scope.After(t.config.CompletionDelay, complete)
				return false
			}
			return true
		})
	}

	select {
	case <-finished:
		return nil
	case <-scope.Done():
		return scope.Err()
	}
}
