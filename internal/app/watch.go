package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"photos-go/internal/photos"
)

// DefaultWatchDebounce is how long the stock directory must stay quiet
// before a merge runs.
const DefaultWatchDebounce = 500 * time.Millisecond

// WatchStock merges new images from the stock directory into the stock
// library until ctx is cancelled. One merge runs at start, then one after
// each burst of changes has been quiet for debounce. notify, if not nil,
// receives the result of every merge.
func (a *PhotosApp) WatchStock(ctx context.Context, debounce time.Duration, notify func(added int, err error)) error {
	if notify == nil {
		notify = func(int, error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(a.cfg.StockDir); err != nil {
		return fmt.Errorf("watching %s: %w", a.cfg.StockDir, err)
	}
	a.logger.Info("watching stock directory", "dir", a.cfg.StockDir)

	added, err := a.BootstrapStock()
	notify(added, err)
	if err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !stockEvent(event) {
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
			added, err := a.BootstrapStock()
			if err != nil {
				a.logger.Error("stock merge failed", "error", err)
			} else if added > 0 {
				a.logger.Info("stock merge", "added", added)
			}
			notify(added, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

// stockEvent reports whether event may have introduced a new image.
func stockEvent(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") || !photos.IsImageFile(event.Name) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename)
}
