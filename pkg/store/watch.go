package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventType describes the nature of a storage change notification.
type EventType int

const (
	// EventFileChanged means the named document was written or removed.
	EventFileChanged EventType = iota
	// EventFilesInvalidated means the change could not be attributed to one
	// document and callers should refresh everything.
	EventFilesInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventFileChanged:
		return "changed"
	case EventFilesInvalidated:
		return "invalidated"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Watch when underlying storage changes.
type Event struct {
	Type EventType
	Name string
}

// watchDelay coalesces a burst of writes (temp file, rename, chmod) into one event.
const watchDelay = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain
// the returned channel; events are dropped rather than block the watcher.
// The channel is closed once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 64)
	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				p.log.Warn("store: watcher close", zap.Error(err))
			}
		}()

		var sendMu sync.Mutex
		closed := false
		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
			}
		}
		throttle := newEventThrottle(watchDelay)
		defer func() {
			throttle.Stop()
			sendMu.Lock()
			closed = true
			sendMu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Warn("store: watch error", zap.Error(err))
				throttle.Enqueue(Event{Type: EventFilesInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op == fsnotify.Chmod {
					continue
				}
				if filepath.Dir(filepath.Clean(evt.Name)) != filepath.Clean(p.basePath) {
					continue
				}
				name := nameForFile(filepath.Base(evt.Name))
				if name == "" {
					continue
				}
				throttle.Enqueue(Event{Type: EventFileChanged, Name: name}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so listeners react
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Name] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	// An invalidation covers every single-file change in the same burst.
	if _, ok := pending[EventFilesInvalidated]; ok {
		send(Event{Type: EventFilesInvalidated})
		return
	}
	for name := range pending[EventFileChanged] {
		send(Event{Type: EventFileChanged, Name: name})
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
