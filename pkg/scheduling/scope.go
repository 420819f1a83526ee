package scheduling

import (
	"context"
	"sync"
	"time"
)

// Scope owns a group of scheduled tasks. Closing the scope cancels every task
// it owns and waits for any callback that is still running to return, so no
// callback can fire once Close has returned.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// Task is a handle to a single scheduled callback
type Task struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScope creates a scope bound to the parent context. Cancelling the parent
// has the same effect on the tasks as calling Close, except that Close also
// waits for them.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Every runs fn once per interval until fn returns false, the task is
// cancelled, or the scope is closed.
func (s *Scope) Every(interval time.Duration, fn func() bool) *Task {
	task, ok := s.newTask()
	if !ok {
		return task
	}

	go func() {
		defer s.wg.Done()
		defer close(task.done)
		defer task.cancel()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-task.ctx.Done():
				return
			case <-ticker.C:
				// A tick and a cancellation can be ready together.
				if task.ctx.Err() != nil {
					return
				}
				if !fn() {
					return
				}
			}
		}
	}()

	return task
}

// After runs fn once after delay unless the task is cancelled first.
func (s *Scope) After(delay time.Duration, fn func()) *Task {
	task, ok := s.newTask()
	if !ok {
		return task
	}

	go func() {
		defer s.wg.Done()
		defer close(task.done)
		defer task.cancel()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-task.ctx.Done():
			return
		case <-timer.C:
			if task.ctx.Err() != nil {
				return
			}
			fn()
		}
	}()

	return task
}

// Close cancels all tasks and blocks until their goroutines exit.
// It must not be called from inside a task callback.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// Done is closed when the scope is closed or its parent context is cancelled
func (s *Scope) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Err reports why the scope stopped, or nil while it is live
func (s *Scope) Err() error {
	return s.ctx.Err()
}

func (s *Scope) newTask() (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(s.ctx)
	task := &Task{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	if s.closed || s.ctx.Err() != nil {
		cancel()
		close(task.done)
		return task, false
	}

	s.wg.Add(1)
	return task, true
}

// Cancel stops the task without waiting for a running callback.
// It is safe to call from inside the task's own callback.
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed once the task goroutine has exited
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task goroutine has exited
func (t *Task) Wait() {
	<-t.done
}
