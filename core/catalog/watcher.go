package catalog

import (
	"context"
	"fmt"
	"time"

	"beatstore/logger"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs the folder sync when files land in the beats folder, so
// the catalog stays warm between listing requests. Listings still sync on
// their own; the watcher is purely a freshness optimization.
type Watcher struct {
	sync     *Synchronizer
	dir      string
	debounce time.Duration
}

// NewWatcher creates a Watcher for the synchronizer's folder.
func NewWatcher(sync *Synchronizer, dir string) *Watcher {
	return &Watcher{sync: sync, dir: dir, debounce: 2 * time.Second}
}

// Run watches the folder until the context is canceled. Events are
// debounced so a batch of copied files triggers a single sync pass.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create folder watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	logger.Info("Watching beats folder", logger.String("dir", w.dir))

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			if _, err := w.sync.Sync(); err != nil {
				logger.Error("Watcher-triggered sync failed", logger.ErrorField(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Folder watcher error", logger.ErrorField(err))
		}
	}
}
