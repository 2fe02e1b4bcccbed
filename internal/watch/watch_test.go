package watch

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batch struct {
	changed []string
	removed []string
}

func TestDebouncer_BatchesIntoSingleCallback(t *testing.T) {
	d := newDebouncer(20)
	got := make(chan batch, 1)

	d.add("a.feature", fsnotify.Write)
	d.flush(func(changed, removed []string) { got <- batch{changed, removed} })
	d.add("b.feature", fsnotify.Create)
	d.flush(func(changed, removed []string) { got <- batch{changed, removed} })

	select {
	case b := <-got:
		sort.Strings(b.changed)
		assert.Equal(t, []string{"a.feature", "b.feature"}, b.changed)
		assert.Empty(t, b.removed)
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}

	select {
	case <-got:
		t.Fatal("expected a single batched callback")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_RemoveWinsOverWrite(t *testing.T) {
	d := newDebouncer(10)
	got := make(chan batch, 1)

	d.add("a.feature", fsnotify.Write)
	d.add("a.feature", fsnotify.Remove)
	d.flush(func(changed, removed []string) { got <- batch{changed, removed} })

	select {
	case b := <-got:
		assert.Empty(t, b.changed)
		assert.Equal(t, []string{"a.feature"}, b.removed)
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}
}

func TestWatcher_ReportsFeatureFileWrites(t *testing.T) {
	dir := t.TempDir()
	got := make(chan batch, 4)

	w, err := New(dir, func(changed, removed []string) {
		got <- batch{changed, removed}
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Close()

	path := filepath.Join(dir, "math.feature")
	require.NoError(t, os.WriteFile(path, []byte("Feature: Math\n"), 0o644))

	select {
	case b := <-got:
		assert.Contains(t, b.changed, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	got := make(chan batch, 4)

	w, err := New(dir, func(changed, removed []string) {
		got <- batch{changed, removed}
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case b := <-got:
		t.Fatalf("unexpected batch: %v %v", b.changed, b.removed)
	case <-time.After(300 * time.Millisecond):
	}
}
