// Package reader applies dispatched actions to the speed-reader state.
package reader

import (
	"fmt"
	"log/slog"
	"time"

	"sreader/internal/action"
	"sreader/internal/mode"
	"sreader/internal/words"
)

// Player controls the repeating playback task.
type Player interface {
	Toggle() bool
	Stop()
	Finished(id string) bool
	Active() bool
	Rate() time.Duration
	SetRate(d time.Duration) error
}

// Runner starts one-shot background operations.
type Runner interface {
	ScheduleAdvance(delta int) string
	Load(path string) string
	Shutdown()
}

// Reader is the state the dispatch loop mutates. It is not safe for
// concurrent use: Handle and the accessors belong to one goroutine. The word
// store may be read from anywhere.
type Reader struct {
	store  *words.Store
	modes  *mode.Machine
	player Player
	tasks  Runner
	logger *slog.Logger

	corpus  string
	running bool
	ticks   uint64
	renders uint64
	inputs  []string
	status  string
}

// New creates a running reader for the corpus at path.
func New(store *words.Store, player Player, tasks Runner, corpus string, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		store:   store,
		modes:   mode.NewMachine(),
		player:  player,
		tasks:   tasks,
		logger:  logger,
		corpus:  corpus,
		running: true,
	}
}

// Handle applies a to the state and returns the derived actions.
func (r *Reader) Handle(a action.Action) ([]action.Action, error) {
	switch a := a.(type) {
	case action.Tick:
		r.ticks++
	case action.Render:
		r.renders++

	// Presentation concerns, handled by the UI.
	case action.Resize, action.Suspend, action.Resume, action.Refresh,
		action.Help, action.ToggleShowHelp, action.ShowLog, action.Update:

	case action.Quit:
		r.running = false
		r.player.Stop()
		r.tasks.Shutdown()

	case action.Error:
		r.status = a.Message

	case action.ScheduleAdvance:
		if r.busy(a) {
			return nil, nil
		}
		r.tasks.ScheduleAdvance(a.Delta())

	case action.Advance:
		r.store.Advance(a.Amount)

	case action.TogglePlayback:
		if r.store.Len() == 0 {
			r.status = "no corpus loaded"
			return nil, nil
		}
		if r.player.Toggle() {
			r.status = fmt.Sprintf("playing every %s", r.player.Rate())
		} else {
			r.status = "paused"
		}

	case action.PlaybackStopped:
		if r.player.Finished(a.ID) {
			r.status = "end of corpus"
		}

	case action.SetRate:
		if err := r.player.SetRate(a.Rate); err != nil {
			return []action.Action{action.Error{Message: err.Error()}}, nil
		}
		r.status = fmt.Sprintf("rate %s", a.Rate)

	case action.LoadText:
		if r.busy(a) {
			return nil, nil
		}
		r.tasks.Load(r.corpus)

	case action.CorpusLoaded:
		if err := r.store.Load(a.Path, a.Text); err != nil {
			r.logger.Warn("corpus rejected", "path", a.Path, "error", err)
			r.status = err.Error()
			return nil, nil
		}
		r.status = fmt.Sprintf("loaded %d words", r.store.Len())

	case action.CompleteInput:
		if r.modes.Effective() != mode.Insert {
			r.logger.Debug("input outside insert mode dropped", "text", a.Text)
			return nil, nil
		}
		r.inputs = append(r.inputs, a.Text)
		r.logger.Info("input completed", "text", a.Text)
		return []action.Action{action.EnterNormal{}}, nil

	case action.EnterNormal, action.EnterInsert, action.EnterProcessing:
		r.modes.Apply(a)

	case action.ExitProcessing:
		if !r.modes.Apply(a) {
			r.logger.Warn("exit without matching enter", "op", a.Op)
		}

	default:
		return nil, fmt.Errorf("unhandled action %s", a)
	}
	return nil, nil
}

func (r *Reader) busy(a action.Action) bool {
	if r.modes.Current() != mode.Processing {
		return false
	}
	r.logger.Debug("ignored while processing", "action", a.String())
	return true
}

// Mode returns the current input mode.
func (r *Reader) Mode() mode.Mode { return r.modes.Current() }

// Word returns the current word.
func (r *Reader) Word() string { return r.store.Word() }

// Position returns the current index and the number of words.
func (r *Reader) Position() (int, int) { return r.store.Position() }

func (r *Reader) Running() bool { return r.running }
func (r *Reader) Playing() bool { return r.player.Active() }
func (r *Reader) Rate() time.Duration { return r.player.Rate() }
func (r *Reader) Ticks() uint64 { return r.ticks }
func (r *Reader) Renders() uint64 { return r.renders }
func (r *Reader) Status() string { return r.status }
func (r *Reader) Corpus() string { return r.corpus }

// Inputs returns the completed inputs in the order they were entered.
func (r *Reader) Inputs() []string {
	return append([]string(nil), r.inputs...)
}
