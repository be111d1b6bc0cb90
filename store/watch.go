package store

import (
	"context"
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch reports created or removed PNG files in the save directory until ctx
// is cancelled. Each event carries the affected path. Consumers use it to
// keep recent-screenshot menus in sync with external deletions.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ch := make(chan string, 8)
	go func() {
		defer watcher.Close()
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(ev.Name, ".png") {
					continue
				}
				if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
					select {
					case ch <- ev.Name:
					case <-ctx.Done():
						return
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Store: watch error: %v", err)
			}
		}
	}()
	return ch, nil
}
