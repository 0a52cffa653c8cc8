package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"sreader/internal/action"
	"sreader/internal/dispatch"
)

// DefaultDebounce collapses the burst of events an editor produces on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher pushes LoadText whenever the corpus file changes on disk.
type Watcher struct {
	path     string
	sink     dispatch.Sink
	logger   *slog.Logger
	Debounce time.Duration
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, sink dispatch.Sink, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     path,
		sink:     sink,
		logger:   logger,
		Debounce: DefaultDebounce,
	}
}

// Run watches until ctx ends or the sink closes. The parent directory is
// watched rather than the file so that editors that replace the file on save
// are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve corpus path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.logger.Info("watching corpus", "path", abs)

	var fire <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("corpus watcher error", "error", err)

		case <-fire:
			fire = nil
			w.logger.Debug("corpus changed", "path", abs)
			if err := w.sink.Push(action.LoadText{}); err != nil {
				if errors.Is(err, dispatch.ErrQueueClosed) {
					return nil
				}
				return err
			}
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
