package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is emitted by Watch when the journal file was changed by someone other
// than this Store.
type Event struct {
	Path string
}

// Watch streams change events until ctx is cancelled. The parent directory is
// watched because saves replace the file by rename. The channel is closed once
// ctx is done or the watcher fails.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				s.log.Warn().Err(err).Msg("watcher close")
			}
		})
	}

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 1)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func() {
			if !s.changedSinceLastIO() {
				return
			}
			select {
			case events <- Event{Path: s.path}:
			default:
				// A refresh is already pending; it will pick this change up.
			}
		}

		// Timer callbacks only poke fire; events is written from this
		// goroutine alone.
		fire := make(chan struct{}, 1)
		poke := func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		}
		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-fire:
				send()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn().Err(err).Msg("watcher error")
				throttle.Enqueue(poke)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != s.path {
					continue
				}
				throttle.Enqueue(poke)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces a burst of filesystem notifications into one call.
type eventThrottle struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.mu.Lock()
			t.timer = nil
			t.mu.Unlock()
			fn()
		})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
