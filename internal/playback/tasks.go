package playback

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"

	"sreader/internal/action"
	"sreader/internal/dispatch"
)

// Source reads the raw text of a corpus.
type Source interface {
	Read(ctx context.Context, path string) (string, error)
}

// Tasks runs one-shot background operations. Each operation pushes its own
// EnterProcessing and ExitProcessing pair, tagged with a fresh operation id.
type Tasks struct {
	sink   dispatch.Sink
	source Source
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup
}

// NewTasks creates a runner. Shutdown must be called to release it.
func NewTasks(sink dispatch.Sink, source Source, logger *slog.Logger) *Tasks {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Tasks{
		sink:   sink,
		source: source,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// ScheduleAdvance emits a bracketed Advance(delta) from the background and
// returns the operation id.
func (t *Tasks) ScheduleAdvance(delta int) string {
	op := newOp("advance")
	t.wg.Go(func() {
		if t.ctx.Err() != nil {
			return
		}
		t.push(op,
			action.EnterProcessing{Op: op},
			action.Advance{Amount: delta},
			action.ExitProcessing{Op: op},
		)
	})
	return op
}

// Load reads path through the source and emits CorpusLoaded, or Error when
// the read fails, inside a processing bracket. It returns the operation id.
func (t *Tasks) Load(path string) string {
	op := newOp("load")
	t.wg.Go(func() {
		if t.ctx.Err() != nil {
			return
		}
		if !t.push(op, action.EnterProcessing{Op: op}) {
			return
		}

		var result action.Action
		text, err := t.source.Read(t.ctx, path)
		if err != nil {
			t.logger.Warn("corpus load failed", "op", op, "path", path, "error", err)
			result = action.Error{Message: err.Error()}
		} else {
			t.logger.Info("corpus read", "op", op, "path", path, "bytes", len(text))
			result = action.CorpusLoaded{Path: path, Text: text}
		}
		// The exit is pushed even after cancellation so the bracket closes
		// whenever the queue is still open.
		t.push(op, result, action.ExitProcessing{Op: op})
	})
	return op
}

// Shutdown cancels running operations and waits for them to return.
func (t *Tasks) Shutdown() {
	t.cancel()
	t.wg.Wait()
}

func (t *Tasks) push(op string, actions ...action.Action) bool {
	if err := t.sink.Push(actions...); err != nil {
		if !errors.Is(err, dispatch.ErrQueueClosed) {
			t.logger.Warn("task push failed", "op", op, "error", err)
		}
		return false
	}
	return true
}

func newOp(kind string) string {
	return kind + "-" + uuid.New().String()
}
