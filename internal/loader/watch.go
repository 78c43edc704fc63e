package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watch reloads path whenever it changes until ctx is cancelled. The parent
// directory is watched so editors that replace the file by rename are seen.
// A reload that fails leaves the previous conversation in place.
func (l *Loader) Watch(ctx context.Context, path string) error {
	return l.watch(ctx, path, defaultDebounce)
}

func (l *Loader) watch(ctx context.Context, path string, debounce time.Duration) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	l.logger.Info("watching export", "path", abs)

	// Armed only once a matching event arrives.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != abs {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("watcher error", "error", err)

		case <-timer.C:
			if _, err := l.LoadFile(ctx, abs); err != nil {
				l.logger.Warn("reload failed, keeping previous conversation", "path", abs, "error", err)
			}
		}
	}
}
