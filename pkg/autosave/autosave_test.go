package autosave

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

type recorder struct {
	mu    sync.Mutex
	saves []string
	err   error
}

func (r *recorder) save(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saves = append(r.saves, string(data))
	return nil
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.saves...)
}

func waitEvent(t *testing.T, s *Saver, want EventType) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-s.Events():
			if ev.Type == want {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event %d", want)
		}
	}
}

func TestBurstSavesOnceWithLatestSnapshot(t *testing.T) {
	rec := &recorder{}
	s := New(rec.save, Options{Delay: 30 * time.Millisecond, Notice: time.Hour, Logger: zaptest.NewLogger(t)})

	buf := []byte("v1")
	s.Schedule(buf)
	buf[1] = 'X' // the saver must hold its own copy
	s.Schedule([]byte("v2"))
	s.Schedule([]byte("v3"))
	if !s.Pending() {
		t.Fatalf("expected pending snapshot")
	}

	waitEvent(t, s, EventSaved)
	time.Sleep(60 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 || got[0] != "v3" {
		t.Fatalf("expected exactly one save of v3, got %q", got)
	}
	if s.Pending() {
		t.Fatalf("nothing should be pending after the save")
	}
	if !s.NoticeVisible() {
		t.Fatalf("notice should be visible after a save")
	}
}

func TestNoticeHides(t *testing.T) {
	rec := &recorder{}
	s := New(rec.save, Options{Delay: 10 * time.Millisecond, Notice: 20 * time.Millisecond})
	s.Schedule([]byte("a"))
	waitEvent(t, s, EventSaved)
	waitEvent(t, s, EventNoticeHidden)
	if s.NoticeVisible() {
		t.Fatalf("notice should be hidden")
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	rec := &recorder{}
	s := New(rec.save, Options{Delay: time.Hour})
	s.Schedule([]byte("now"))
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := rec.snapshot(); len(got) != 1 || got[0] != "now" {
		t.Fatalf("expected flushed save, got %q", got)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("second flush: %v", err)
	}
	if got := rec.snapshot(); len(got) != 1 {
		t.Fatalf("empty flush must not save, got %q", got)
	}
}

func TestFailureIsReported(t *testing.T) {
	boom := errors.New("disk full")
	rec := &recorder{err: boom}
	s := New(rec.save, Options{Delay: 10 * time.Millisecond})
	s.Schedule([]byte("x"))
	ev := waitEvent(t, s, EventFailed)
	if !errors.Is(ev.Err, boom) {
		t.Fatalf("expected %v, got %v", boom, ev.Err)
	}
}

func TestStopFlushesAndIgnoresLaterSchedules(t *testing.T) {
	rec := &recorder{}
	s := New(rec.save, Options{Delay: time.Hour})
	s.Schedule([]byte("last"))
	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	s.Schedule([]byte("ignored"))
	if s.Pending() {
		t.Fatalf("schedule after stop must be ignored")
	}
	if got := rec.snapshot(); len(got) != 1 || got[0] != "last" {
		t.Fatalf("expected final flush, got %q", got)
	}
	if err := s.Flush(); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}
