// Package autosave saves document snapshots after a quiet period. Each new
// snapshot rearms the timer, so a burst of edits is written once, after the
// burst ends.
package autosave

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultDelay is the quiet period before a save.
	DefaultDelay = 1500 * time.Millisecond
	// DefaultNotice is how long the "saved" notice stays visible.
	DefaultNotice = 2 * time.Second
)

// ErrStopped is returned by Flush after Stop.
var ErrStopped = errors.New("autosave: stopped")

// SaveFunc persists one snapshot.
type SaveFunc func(data []byte) error

// EventType describes an autosave notification.
type EventType int

const (
	// EventSaved follows a successful save; the notice becomes visible.
	EventSaved EventType = iota
	// EventFailed follows a failed save.
	EventFailed
	// EventNoticeHidden fires once the notice display time has passed.
	EventNoticeHidden
)

// Event is emitted on the Events channel.
type Event struct {
	Type EventType
	Err  error
	At   time.Time
}

// Options configure a Saver.
type Options struct {
	Delay  time.Duration
	Notice time.Duration
	Logger *zap.Logger
}

// Saver debounces saves. Schedule is called from the editing goroutine;
// saves run on timer goroutines and never overlap.
type Saver struct {
	save   SaveFunc
	delay  time.Duration
	notice time.Duration
	log    *zap.Logger
	events chan Event

	// saveMu is held across taking a snapshot and writing it so writes land
	// in schedule order.
	saveMu sync.Mutex

	mu          sync.Mutex
	timer       *time.Timer
	noticeTimer *time.Timer
	pending     []byte
	hasPending  bool
	generation  uint64
	noticeShown bool
	stopped     bool
}

// New returns a Saver writing through save.
func New(save SaveFunc, opts Options) *Saver {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Notice <= 0 {
		opts.Notice = DefaultNotice
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Saver{
		save:   save,
		delay:  opts.Delay,
		notice: opts.Notice,
		log:    opts.Logger,
		events: make(chan Event, 16),
	}
}

// Events streams save notifications. Events are dropped when the consumer
// falls behind.
func (s *Saver) Events() <-chan Event { return s.events }

// Schedule records data as the latest snapshot and (re)arms the timer.
func (s *Saver) Schedule(data []byte) {
	snapshot := append([]byte(nil), data...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.pending = snapshot
	s.hasPending = true
	s.generation++
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
}

// Pending reports whether a snapshot is waiting to be written.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasPending
}

// NoticeVisible reports whether the "saved" notice should be shown.
func (s *Saver) NoticeVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.noticeShown
}

func (s *Saver) fire(gen uint64) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if gen != s.generation || !s.hasPending {
		s.mu.Unlock()
		return
	}
	data := s.take()
	s.mu.Unlock()

	_ = s.write(data)
}

// take returns the pending snapshot. s.mu must be held.
func (s *Saver) take() []byte {
	data := s.pending
	s.pending = nil
	s.hasPending = false
	s.timer = nil
	return data
}

// Flush writes the pending snapshot now, if any.
func (s *Saver) Flush() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrStopped
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	if !s.hasPending {
		s.mu.Unlock()
		return nil
	}
	data := s.take()
	s.mu.Unlock()

	return s.write(data)
}

func (s *Saver) write(data []byte) error {
	start := time.Now()
	if err := s.save(data); err != nil {
		s.log.Error("autosave failed", zap.Error(err))
		s.send(Event{Type: EventFailed, Err: err, At: time.Now()})
		return err
	}
	s.log.Debug("autosaved", zap.Int("bytes", len(data)), zap.Duration("took", time.Since(start)))

	s.mu.Lock()
	s.noticeShown = true
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}
	s.noticeTimer = time.AfterFunc(s.notice, s.hideNotice)
	s.mu.Unlock()

	s.send(Event{Type: EventSaved, At: time.Now()})
	return nil
}

func (s *Saver) hideNotice() {
	s.mu.Lock()
	s.noticeShown = false
	s.noticeTimer = nil
	s.mu.Unlock()
	s.send(Event{Type: EventNoticeHidden, At: time.Now()})
}

func (s *Saver) send(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}

// Stop flushes the pending snapshot and disarms every timer. Later calls to
// Schedule are ignored.
func (s *Saver) Stop() error {
	err := s.Flush()
	if errors.Is(err, ErrStopped) {
		return nil
	}
	s.mu.Lock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
		s.noticeTimer = nil
	}
	s.mu.Unlock()
	return err
}
