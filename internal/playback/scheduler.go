// Package playback runs the background work that feeds the dispatch queue:
// the repeating auto-advance task and one-shot scheduled operations.
package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"sreader/internal/action"
	"sreader/internal/dispatch"
)

// DefaultRate is the delay between automatic advances.
const DefaultRate = 250 * time.Millisecond

// handle owns one running playback task.
type handle struct {
	id     string
	mu     sync.Mutex // held while emitting, so cancel cannot race a push
	cancel context.CancelFunc
	done   chan struct{}
}

// stop cancels the task and waits for it to exit. Nothing is emitted by the
// task once stop returns.
func (h *handle) stop() {
	h.mu.Lock()
	h.cancel()
	h.mu.Unlock()
	<-h.done
}

func (h *handle) exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Scheduler owns at most one playback task at a time.
type Scheduler struct {
	sink   dispatch.Sink
	atEnd  func() bool
	logger *slog.Logger
	rate   atomic.Int64

	mu      sync.Mutex
	current *handle
}

// NewScheduler creates a stopped scheduler. atEnd reports whether the word
// store has reached its last position or is empty; the task stops when it
// returns true.
func NewScheduler(sink dispatch.Sink, atEnd func() bool, rate time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if rate <= 0 {
		rate = DefaultRate
	}
	s := &Scheduler{
		sink:   sink,
		atEnd:  atEnd,
		logger: logger,
	}
	s.rate.Store(int64(rate))
	return s
}

// Toggle starts playback when stopped and stops it when running. A task that
// already ended on its own counts as stopped even before its PlaybackStopped
// is dispatched. It returns whether playback is active afterwards.
func (s *Scheduler) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !s.current.exited() {
		s.stopLocked()
		return false
	}
	if s.current != nil {
		s.logger.Debug("playback already ended", "id", s.current.id)
		s.current = nil
	}
	s.startLocked()
	return true
}

// Start replaces any running task with a new one and returns its id.
func (s *Scheduler) Start() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	return s.startLocked()
}

// Stop cancels the running task, if any, and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Finished clears the slot after a task ended on its own. It reports false
// when id no longer names the current task, which happens when the task was
// replaced or stopped before its PlaybackStopped was dispatched.
func (s *Scheduler) Finished(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.id != id {
		return false
	}
	<-s.current.done
	s.current = nil
	return true
}

// Active reports whether a task currently owns the slot.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// ID returns the id of the current task, or "" when stopped.
func (s *Scheduler) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.id
}

// Rate returns the delay between advances.
func (s *Scheduler) Rate() time.Duration {
	return time.Duration(s.rate.Load())
}

// SetRate changes the delay between advances. A running task uses the new
// rate from its next step.
func (s *Scheduler) SetRate(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("playback rate must be positive, got %s", d)
	}
	s.rate.Store(int64(d))
	return nil
}

func (s *Scheduler) stopLocked() {
	if s.current == nil {
		return
	}
	s.current.stop()
	s.logger.Debug("playback stopped", "id", s.current.id)
	s.current = nil
}

func (s *Scheduler) startLocked() string {
	ctx, cancel := context.WithCancel(context.Background())
	h := &handle{
		id:     uuid.New().String(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.current = h
	go s.run(ctx, h)
	s.logger.Debug("playback started", "id", h.id, "rate", s.Rate())
	return h.id
}

func (s *Scheduler) run(ctx context.Context, h *handle) {
	defer close(h.done)

	timer := time.NewTimer(s.Rate())
	defer timer.Stop()

	for step := 1; ; step++ {
		if s.atEnd() {
			s.emit(ctx, h, action.PlaybackStopped{ID: h.id})
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		op := fmt.Sprintf("%s#%d", h.id, step)
		if !s.emit(ctx, h,
			action.EnterProcessing{Op: op},
			action.Advance{Amount: 1},
			action.ExitProcessing{Op: op},
		) {
			return
		}
		timer.Reset(s.Rate())
	}
}

// emit pushes actions unless the task has been cancelled. It reports whether
// the task should keep running.
func (s *Scheduler) emit(ctx context.Context, h *handle, actions ...action.Action) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	if err := s.sink.Push(actions...); err != nil {
		if !errors.Is(err, dispatch.ErrQueueClosed) {
			s.logger.Warn("playback push failed", "id", h.id, "error", err)
		}
		return false
	}
	return true
}
