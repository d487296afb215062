package scenario

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mark3labs/listwiz/internal/logger"
)

const debounceInterval = 100 * time.Millisecond

// Watch runs the script at path, then runs it again every time the file is
// written, until ctx is done. Each run is reported to fn. The parent
// directory is watched so editors that save by renaming are seen too.
func Watch(ctx context.Context, path string, opts Options, fn func(*Report, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving scenario path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("scenario: watching %s", abs)

	fn(Run(ctx, abs, opts))

	// A nil channel blocks until the first relevant event arms the timer.
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

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
			} else {
				timer.Reset(debounceInterval)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			logger.Debug("scenario: %s changed, running again", abs)
			fn(Run(ctx, abs, opts))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("scenario watcher error: %v", err)
		}
	}
}
