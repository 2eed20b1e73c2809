package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/romdo/go-debounce/v2"
)

// changeDebouncer is the part of *debounce.Debouncer the watch loop uses.
type changeDebouncer interface {
	Invoke(paths ...string) (int, error)
	Flush() (int, error)
	Cancel()
}

func watch(logger zerolog.Logger, s *settings, command []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range s.paths {
		if err := addRecursive(watcher, root); err != nil {
			return err
		}
	}

	r := &runner{command: command, log: logger}
	opts := append([]debounce.Option{debounce.WithLogger(logger)}, s.opts...)
	d, err := debounce.NewDebouncer(s.wait, r.run, opts...)
	if err != nil {
		return err
	}

	logger.Info().
		Strs("paths", s.paths).
		Dur("wait", s.wait).
		Msg("watching for changes")

	return watchLoop(ctx, logger, watcher.Events, watcher.Errors, s.exts, d)
}

// watchLoop feeds relevant file events into d until ctx is done, then runs
// any pending invocation before returning.
func watchLoop(
	ctx context.Context,
	logger zerolog.Logger,
	events <-chan fsnotify.Event,
	errs <-chan error,
	exts []string,
	d changeDebouncer,
) error {
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			_, err := d.Flush()

			return err

		case event, ok := <-events:
			if !ok {
				d.Cancel()

				return nil
			}
			if !relevant(event, exts) {
				continue
			}

			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).
				Msg("change")

			if _, err := d.Invoke(event.Name); err != nil {
				logger.Error().Err(err).Msg("command failed")
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil

				continue
			}
			logger.Error().Err(err).Msg("watch error")
		}
	}
}

func relevant(event fsnotify.Event, exts []string) bool {
	if !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) &&
		!event.Has(fsnotify.Rename) {
		return false
	}

	if len(exts) == 0 {
		return true
	}

	ext := filepath.Ext(event.Name)
	for _, want := range exts {
		if ext == "."+strings.TrimPrefix(want, ".") {
			return true
		}
	}

	return false
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		// Skip hidden directories and vendor
		name := info.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "vendor") {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
}

// runner executes the command, exposing the most recently changed path in
// the environment. Its result is the number of runs so far.
type runner struct {
	command []string
	runs    int
	log     zerolog.Logger
}

func (r *runner) run(_ any, paths ...string) (int, error) {
	r.runs++

	var changed string
	if len(paths) > 0 {
		changed = paths[len(paths)-1]
	}

	r.log.Info().Int("run", r.runs).Str("changed", changed).
		Strs("command", r.command).Msg("running")

	cmd := exec.Command(r.command[0], r.command[1:]...)
	cmd.Env = append(os.Environ(), "DEBOUNCEWATCH_PATH="+changed)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return r.runs, fmt.Errorf("%s: %w", r.command[0], err)
	}

	return r.runs, nil
}
