package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newStore(t *testing.T) (FileIO, string) {
	t.Helper()
	base := t.TempDir()
	fio, err := Load(Dir(base), zaptest.NewLogger(t))
	require.NoError(t, err)
	return fio, base
}

func TestWriteReadList(t *testing.T) {
	fio, base := newStore(t)

	require.NoError(t, fio.WriteFile("defaultfile", []byte(`{"a":1}`)))
	require.NoError(t, fio.WriteFile("groceries", []byte(`{}`)))
	require.NoError(t, os.WriteFile(filepath.Join(base, "notes.txt"), []byte("x"), 0o644))

	got, err := fio.ReadFile("defaultfile")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
	assert.FileExists(t, filepath.Join(base, "defaultfile.json"))
	assert.Equal(t, filepath.Join(base, "groceries.json"), fio.Path("groceries"))

	names, err := fio.ListFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"defaultfile", "groceries"}, names)
}

func TestOverwriteReadsFreshContent(t *testing.T) {
	fio, base := newStore(t)
	require.NoError(t, fio.WriteFile("doc", []byte("one")))
	require.NoError(t, os.WriteFile(filepath.Join(base, "doc.json"), []byte("two"), 0o644))

	got, err := fio.ReadFile("doc")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestReadMissing(t *testing.T) {
	fio, _ := newStore(t)
	_, err := fio.ReadFile("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRemove(t *testing.T) {
	fio, _ := newStore(t)
	require.NoError(t, fio.WriteFile("doc", []byte("x")))
	require.NoError(t, fio.Remove("doc"))
	_, err := fio.ReadFile("doc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidNames(t *testing.T) {
	fio, _ := newStore(t)
	for _, name := range []string{"", "  ", ".hidden", "a/b", `a\b`} {
		assert.ErrorIs(t, fio.WriteFile(name, nil), ErrInvalidName, name)
	}
}

func TestTransformsRoundTrip(t *testing.T) {
	pk := keyToPathTransform("my notes")
	assert.Equal(t, "my notes.json", pk.FileName)
	assert.Equal(t, "my notes", pathToKeyTransform(pk))

	pk.Path = []string{tempDir}
	assert.Equal(t, "", pathToKeyTransform(pk))
}

func TestWatchEmitsFileChanges(t *testing.T) {
	fio, base := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := fio.Watch(ctx)
	require.NoError(t, err)

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(base, "inbox.json"), []byte("{}"), 0o644))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventFilesInvalidated {
				return
			}
			if evt.Type == EventFileChanged {
				require.Equal(t, "inbox", evt.Name)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for file change event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	fio, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := fio.Watch(ctx)
	require.NoError(t, err)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	got := make(chan Event, 10)
	send := func(ev Event) { got <- ev }

	th.Enqueue(Event{Type: EventFileChanged, Name: "a"}, send)
	th.Enqueue(Event{Type: EventFileChanged, Name: "a"}, send)
	th.Enqueue(Event{Type: EventFileChanged, Name: "a"}, send)

	select {
	case ev := <-got:
		assert.Equal(t, Event{Type: EventFileChanged, Name: "a"}, ev)
	case <-time.After(time.Second):
		t.Fatal("no flush")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected one event, got extra %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
