package dispatch

import (
	"context"
	"errors"
	"time"

	"sreader/internal/action"
)

// Sink accepts actions from a producer. *Queue implements it.
type Sink interface {
	Push(actions ...action.Action) error
}

// Ticker produces Tick at TickRate and Render at FrameRate, both in Hz. A
// non-positive rate, or one too fast for a timer interval, disables that stream.
type Ticker struct {
	TickRate  float64
	FrameRate float64
}

// Run emits until ctx ends or the sink is closed.
func (t Ticker) Run(ctx context.Context, sink Sink) error {
	tick := newTicker(t.TickRate)
	defer tick.stop()
	frame := newTicker(t.FrameRate)
	defer frame.stop()

	for {
		var a action.Action
		select {
		case <-ctx.Done():
			return nil
		case <-tick.c:
			a = action.Tick{}
		case <-frame.c:
			a = action.Render{}
		}
		if err := sink.Push(a); err != nil {
			if errors.Is(err, ErrQueueClosed) {
				return nil
			}
			return err
		}
	}
}

type rateTicker struct {
	t *time.Ticker
	c <-chan time.Time
}

func newTicker(hz float64) rateTicker {
	if !(hz > 0) {
		return rateTicker{} // nil channel never fires
	}
	interval := time.Duration(float64(time.Second) / hz)
	if interval <= 0 {
		return rateTicker{}
	}
	t := time.NewTicker(interval)
	return rateTicker{t: t, c: t.C}
}

func (r rateTicker) stop() {
	if r.t != nil {
		r.t.Stop()
	}
}
