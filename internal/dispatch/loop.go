package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"sreader/internal/action"
)

// ErrStopped is returned by a Handler that can no longer accept actions.
// The loop ends quietly when it sees it.
var ErrStopped = errors.New("dispatch: handler stopped")

// Handler applies one action to state and returns the follow-up actions it
// derived, in the order they should be queued.
type Handler interface {
	Handle(a action.Action) ([]action.Action, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(a action.Action) ([]action.Action, error)

func (f HandlerFunc) Handle(a action.Action) ([]action.Action, error) {
	return f(a)
}

// Loop is the single consumer of a Queue.
type Loop struct {
	queue   *Queue
	handler Handler
	logger  *slog.Logger
	handled atomic.Uint64
}

// NewLoop creates a loop draining queue into handler.
func NewLoop(queue *Queue, handler Handler, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		queue:   queue,
		handler: handler,
		logger:  logger,
	}
}

// Run pops actions one at a time in FIFO order until Quit has been handled,
// the handler stops or ctx ends. Derived actions are pushed to the back of
// the same queue rather than handled recursively. The queue is closed when
// Run returns, discarding anything still pending.
func (l *Loop) Run(ctx context.Context) error {
	defer l.queue.Close()

	for {
		a, err := l.queue.Pop(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		// Skip logging for high-frequency actions
		switch a.(type) {
		case action.Tick, action.Render:
		default:
			l.logger.Debug("dispatch", "action", a.String())
		}

		derived, err := l.handler.Handle(a)
		l.handled.Add(1)
		if err != nil {
			if errors.Is(err, ErrStopped) {
				l.logger.Info("dispatch handler stopped", "action", a.String())
				return nil
			}
			l.logger.Warn("dispatch action failed", "action", a.String(), "error", err)
		}

		if _, quit := a.(action.Quit); quit {
			l.logger.Info("dispatch loop quitting", "pending", l.queue.Len())
			return nil
		}

		if err := l.queue.Push(derived...); err != nil {
			return nil
		}
	}
}

// Handled returns how many actions have been handled so far.
func (l *Loop) Handled() uint64 {
	return l.handled.Load()
}
