package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hupe1980/fastic"
)

// defaultDebounce coalesces the burst of events a single save produces.
const defaultDebounce = 250 * time.Millisecond

// watchFile calls reload after path has been written, created or renamed
// into place, at most once per debounce interval. It returns when ctx is
// done. Reload errors are logged and the previous state stays in service.
func watchFile(ctx context.Context, path string, debounce time.Duration, logger *fastic.Logger, reload func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors replace files by renaming, which drops a watch on the file itself.
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			logger.InfoContext(ctx, "ontology changed, reloading", "path", path)
			if err := reload(ctx); err != nil {
				logger.ErrorContext(ctx, "reload failed", "path", path, "error", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "watch error", "path", path, "error", err)
		}
	}
}
