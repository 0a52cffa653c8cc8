// Package logging builds the application logger: a text log file plus an
// in-memory recorder that backs the session log viewer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	slogmulti "github.com/samber/slog-multi"
)

// DefaultHistory is the number of records a Recorder keeps.
const DefaultHistory = 500

// Options configures Setup.
type Options struct {
	File    string // empty disables the file sink
	Level   slog.Leveler
	History int
}

// Logger is the fanned-out logger with handles to its sinks.
type Logger struct {
	*slog.Logger
	Recorder *Recorder
	file     *os.File
}

// Setup opens the log file and fans records out to it and to a Recorder.
func Setup(opts Options) (*Logger, error) {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if opts.History <= 0 {
		opts.History = DefaultHistory
	}

	rec := NewRecorder(opts.History, opts.Level)
	handlers := []slog.Handler{rec}

	var file *os.File
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	}

	return &Logger{
		Logger:   slog.New(slogmulti.Fanout(handlers...)),
		Recorder: rec,
		file:     file,
	}, nil
}

// Close closes the log file, if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Recorder is a slog.Handler that keeps the most recent formatted records.
type Recorder struct {
	slog.Handler
	lines *ring
}

// NewRecorder keeps up to limit records at or above level.
func NewRecorder(limit int, level slog.Leveler) *Recorder {
	r := &ring{limit: limit}
	return &Recorder{
		Handler: slog.NewTextHandler(r, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("15:04:05.000"))
				}
				return a
			},
		}),
		lines: r,
	}
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Recorder{Handler: r.Handler.WithAttrs(attrs), lines: r.lines}
}

func (r *Recorder) WithGroup(name string) slog.Handler {
	return &Recorder{Handler: r.Handler.WithGroup(name), lines: r.lines}
}

// Lines returns the kept records, oldest first.
func (r *Recorder) Lines() []string {
	return r.lines.snapshot()
}

// Reader returns the kept records as text, one per line.
func (r *Recorder) Reader() io.Reader {
	lines := r.Lines()
	if len(lines) == 0 {
		return strings.NewReader("")
	}
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// ring receives one Write per record from the text handler.
type ring struct {
	mu    sync.Mutex
	limit int
	buf   []string
}

func (r *ring) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = append(r.buf, line)
	if len(r.buf) > r.limit {
		r.buf = r.buf[len(r.buf)-r.limit:]
	}
	return len(p), nil
}

func (r *ring) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.buf...)
}
