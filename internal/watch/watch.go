// Package watch notices edits to a local project file.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is how long the watcher waits for a burst of events on the file
// to settle before reporting it.
const Debounce = 200 * time.Millisecond

// ChangeFunc is called with the watched file's base name after it changed.
type ChangeFunc func(name string)

// File watches path until ctx is cancelled and calls cb once per burst of
// writes, creates, renames or removals of that file.
//
// The parent directory is watched rather than the file itself: editors that
// save by writing a temp file and renaming it over the original would
// otherwise detach the watch.
func File(ctx context.Context, path string, logger *slog.Logger, cb ChangeFunc) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(target)
	name := filepath.Base(target)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.Info("watcher: started", slog.String("file", target))

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-fire:
			timer, fire = nil, nil
			logger.Debug("watcher: changed", slog.String("file", name))
			if cb != nil {
				cb(name)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(Debounce)
				fire = timer.C
			} else {
				timer.Reset(Debounce)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
