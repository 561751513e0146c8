package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatchUnwatch(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, w.Watch(path))
	assert.ErrorIs(t, w.Watch(path), ErrAlreadyWatching)
	assert.Len(t, w.Files(), 1)

	require.NoError(t, w.Unwatch(path))
	assert.ErrorIs(t, w.Unwatch(path), ErrNotWatching)
	assert.Empty(t, w.Files())
}

func TestWatchMissingDirectory(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing", "request.json")))
}

func TestWriteEvent(t *testing.T) {
	w, err := New(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "request.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`{"keyboardType":1}`), 0o644))

	ev := waitEvent(t, w)
	abs, _ := filepath.Abs(path)
	assert.Equal(t, abs, ev.Path)
	assert.True(t, ev.Op.Has(OpWrite))
}

func TestCreateCoalescesWrites(t *testing.T) {
	w, err := New(WithDebounce(50 * time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`{"keyboardType":0}`), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, OpCreate, ev.Op)

	select {
	case extra := <-w.Events():
		t.Fatalf("unexpected event %v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestQueue(t *testing.T) {
	w := &Watcher{pending: make(map[string]Event)}
	now := time.Now()

	w.queue(Event{Path: "a", Op: OpCreate, Timestamp: now})
	w.queue(Event{Path: "a", Op: OpWrite, Timestamp: now})
	assert.Equal(t, OpCreate, w.pending["a"].Op)

	w.queue(Event{Path: "a", Op: OpRemove, Timestamp: now})
	assert.Equal(t, OpRemove, w.pending["a"].Op)

	w.queue(Event{Path: "b", Op: OpWrite, Timestamp: now})
	w.queue(Event{Path: "b", Op: OpWrite | OpRename, Timestamp: now})
	assert.Equal(t, OpWrite|OpRename, w.pending["b"].Op)
}

func TestRunStopsOnContext(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.Run(ctx, func(Event) {}), context.Canceled)
}

func TestClose(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Watch(filepath.Join(t.TempDir(), "x")), ErrWatcherClosed)

	_, ok := <-w.Events()
	assert.False(t, ok)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "WRITE", OpWrite.String())
	assert.Equal(t, "UNKNOWN", (OpWrite | OpCreate).String())
}
