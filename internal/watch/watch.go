// Package watch re-runs a function whenever a single file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrInvalidDebounce is returned for a negative debounce delay.
var ErrInvalidDebounce = errors.New("debounce must not be negative")

// Watch calls fn each time the file at path is written or re-created, once per
// burst of events no closer together than debounce. The file's directory is
// watched rather than the file so that editors replacing the file on save are
// still seen. Errors from fn are logged and watching continues. Watch returns
// nil when ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger, fn func() error) error {
	if debounce < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDebounce, debounce)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	defer func() { _ = fsw.Close() }()

	err = fsw.Add(filepath.Dir(target))
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	logger.Debug("watching", "path", target, "debounce", debounce)

	timer := time.NewTimer(debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if accept(ev, target) {
				timer.Reset(debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}

			logger.Error("fsnotify error", "err", err)

		case <-timer.C:
			logger.Debug("file changed", "path", target)

			if err := fn(); err != nil {
				logger.Error("re-run failed", "path", target, "err", err)
			}
		}
	}
}

func accept(ev fsnotify.Event, target string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}

	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}

	return name == target
}
