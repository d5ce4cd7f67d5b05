// Package watch re-runs a callback when a single file changes.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temporary file and renaming it over the
// original are still observed. Bursts of events are coalesced: the callback
// runs once the file has been quiet for the debounce interval.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Options configures Run.
type Options struct {
	// Debounce is how long the file must be quiet before the callback runs.
	Debounce time.Duration
	// Logger receives watcher errors. Nil disables logging.
	Logger *zap.Logger
}

// Run calls onChange each time path is written or re-created, until ctx is
// done. onChange runs on the calling goroutine, so invocations never overlap.
func Run(ctx context.Context, path string, opts Options, onChange func()) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(target)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	logger.Debug("watching", zap.String("path", target))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !relevant(ev, target) {
				continue
			}

			logger.Debug("change detected", zap.String("op", ev.Op.String()))

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			logger.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			onChange()
		}
	}
}

// relevant reports whether ev writes or re-creates target.
func relevant(ev fsnotify.Event, target string) bool {
	if filepath.Clean(ev.Name) != target {
		return false
	}

	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
