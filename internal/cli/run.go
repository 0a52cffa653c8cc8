package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sreader/internal/action"
	"sreader/internal/config"
	"sreader/internal/corpus"
	"sreader/internal/dispatch"
	"sreader/internal/logging"
	"sreader/internal/playback"
	"sreader/internal/reader"
	"sreader/internal/ui"
	"sreader/internal/words"
)

func runReader(cmd *cobra.Command, opts *RootOptions, readOpts *ReadOptions, args []string) error {
	cfg, err := resolveConfig(cmd, opts, readOpts, args)
	if err != nil {
		return err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}

	// Set up logging
	logger, err := logging.Setup(logging.Options{File: cfg.LogFile, Level: level})
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "corpus", cfg.Corpus, "rate", time.Duration(cfg.Rate), "watch", cfg.Watch)
	err = run(ctx, cfg, bindings, logger)
	if err != nil {
		logger.Error("exited with error", "error", err)
	} else {
		logger.Info("exited normally")
	}
	return err
}

// resolveConfig loads the config file and applies the command line on top.
func resolveConfig(cmd *cobra.Command, opts *RootOptions, readOpts *ReadOptions, args []string) (*config.Config, error) {
	cfg, err := opts.configService().Load()
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Corpus = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("rate") {
		cfg.Rate = config.Duration(readOpts.Rate)
	}
	if flags.Changed("watch") {
		cfg.Watch = readOpts.Watch
	}
	if flags.Changed("log-file") {
		cfg.LogFile = readOpts.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run wires the queue, the dispatch loop and its producers to the program and
// blocks until the program exits.
func run(ctx context.Context, cfg *config.Config, bindings map[string]action.Action, logger *logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := dispatch.NewQueue()
	store := words.NewStore()
	player := playback.NewScheduler(queue, store.AtEnd, time.Duration(cfg.Rate), logger.With("component", "playback"))
	tasks := playback.NewTasks(queue, corpus.NewSource(nil), logger.With("component", "tasks"))
	r := reader.New(store, player, tasks, cfg.Corpus, logger.With("component", "reader"))

	model := ui.NewModel(r, queue, bindings, logger.Recorder, logger.Logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	done := make(chan struct{})
	loop := dispatch.NewLoop(queue, ui.NewBridge(p.Send, done), logger.With("component", "dispatch"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := loop.Run(gctx); err != nil {
			p.Quit()
			return fmt.Errorf("dispatch: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return dispatch.Ticker{TickRate: cfg.TickRate, FrameRate: cfg.FrameRate}.Run(gctx, queue)
	})
	if cfg.Watch && cfg.Corpus != "" {
		watcher := corpus.NewWatcher(cfg.Corpus, queue, logger.With("component", "watch"))
		g.Go(func() error {
			if err := watcher.Run(gctx); err != nil {
				// The reader stays usable without reloads.
				logger.Warn("corpus watcher stopped", "error", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		// Signals and loop failures end the program too.
		<-gctx.Done()
		p.Quit()
		return nil
	})

	if cfg.Corpus != "" {
		if err := queue.Push(action.LoadText{}); err != nil {
			return err
		}
	}

	_, runErr := p.Run()
	close(done)

	player.Stop()
	tasks.Shutdown()
	queue.Close()
	cancel()

	waitErr := g.Wait()
	switch {
	case runErr == nil:
	case errors.Is(runErr, tea.ErrProgramKilled), errors.Is(runErr, tea.ErrInterrupted):
		runErr = nil
	default:
		runErr = fmt.Errorf("ui: %w", runErr)
	}
	return errors.Join(runErr, waitErr)
}
