package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 300 * time.Millisecond

// watch re-renders job whenever its deck file is written, until ctx ends.
// Editors that save by rename are covered by watching the parent directory.
func (a *app) watch(ctx context.Context, job renderJob) error {
	target, err := filepath.Abs(job.deck)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch: %s: %w", filepath.Dir(target), err)
	}
	a.logger.Printf("[INFO] deckgen: watching %s", job.deck)

	rerender := make(chan struct{}, 1)
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
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if path, _ := filepath.Abs(event.Name); path != target {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case rerender <- struct{}{}:
				default:
				}
			})
		case <-rerender:
			a.logger.Printf("[INFO] deckgen: %s changed, rendering", job.deck)
			if err := a.render(ctx, job); err != nil {
				a.logger.Printf("[WARN] deckgen: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Printf("[WARN] deckgen: watch error: %v", err)
		}
	}
}
