package exportdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSettle = 20 * time.Millisecond

func TestNew(t *testing.T) {
	w := New("/exports")
	assert.Equal(t, "/exports", w.Root())
	assert.Equal(t, DefaultSettle, w.settle)

	assert.Equal(t, testSettle, New("/exports", WithSettle(testSettle)).settle)
	assert.Equal(t, DefaultSettle, New("/exports", WithSettle(0)).settle)
}

func TestIsExport(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"export.xml", true},
		{"EXPORT.XML", true},
		{"jira-2024.Xml", true},
		{".export.xml", false},
		{"export.xml.part", false},
		{"export.json", false},
		{"xml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isExport(tt.name))
		})
	}
}

func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		dir          bool
		create       bool
		operation    fsnotify.Op
		expectedType ChangeType
	}{
		{name: "create export", file: "a.xml", create: true, operation: fsnotify.Create, expectedType: ChangeCreated},
		{name: "write export", file: "a.xml", create: true, operation: fsnotify.Write, expectedType: ChangeUpdated},
		{name: "remove export", file: "a.xml", operation: fsnotify.Remove},
		{name: "rename export", file: "a.xml", operation: fsnotify.Rename},
		{name: "chmod export", file: "a.xml", create: true, operation: fsnotify.Chmod},
		{name: "create other file", file: "notes.txt", create: true, operation: fsnotify.Create},
		{name: "create hidden export", file: ".a.xml", create: true, operation: fsnotify.Create},
		{name: "create directory named like export", file: "dir.xml", dir: true, operation: fsnotify.Create},
		{name: "create vanished before stat", file: "gone.xml", operation: fsnotify.Create},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			if tt.create {
				require.NoError(t, os.WriteFile(path, []byte("<rss/>"), 0644))
			}
			if tt.dir {
				require.NoError(t, os.Mkdir(path, 0755))
			}

			change := New(dir).handleFsEvent(fsnotify.Event{Name: path, Op: tt.operation})

			if tt.expectedType == "" {
				assert.Nil(t, change)
				return
			}
			require.NotNil(t, change)
			assert.Equal(t, tt.expectedType, change.Type)
			assert.Equal(t, path, change.Path)
		})
	}
}

func TestSettled(t *testing.T) {
	now := time.Now()
	pending := map[string]pendingChange{
		"/b.xml": {change: Change{Path: "/b.xml"}, due: now.Add(-time.Millisecond)},
		"/a.xml": {change: Change{Path: "/a.xml"}, due: now.Add(-2 * time.Millisecond)},
		"/c.xml": {change: Change{Path: "/c.xml"}, due: now.Add(30 * time.Millisecond)},
	}

	ready, wait := settled(pending, now)

	assert.Equal(t, []Change{{Path: "/a.xml"}, {Path: "/b.xml"}}, ready)
	assert.Equal(t, 30*time.Millisecond, wait)
	assert.Len(t, pending, 1)
	assert.Contains(t, pending, "/c.xml")
}

func TestExisting(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xml", "a.XML", ".hidden.xml", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xml"), 0755))

	paths, err := New(dir).Existing()

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.XML"), filepath.Join(dir, "b.xml")}, paths)
}

func TestExisting_MissingDir(t *testing.T) {
	_, err := New("/non/existent/path").Existing()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root path error")
}

func receive(t *testing.T, changes <-chan Change) Change {
	t.Helper()
	select {
	case change, ok := <-changes:
		require.True(t, ok, "channel closed before a change arrived")
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for export change")
		return Change{}
	}
}

func TestWatcher_Watch(t *testing.T) {
	t.Run("reports new exports once", func(t *testing.T) {
		dir := t.TempDir()
		w := New(dir, WithSettle(testSettle))
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		path := filepath.Join(dir, "export.xml")
		f, err := os.Create(path)
		require.NoError(t, err)
		_, _ = f.WriteString("<rss>")
		_, _ = f.WriteString("</rss>")
		require.NoError(t, f.Close())

		change := receive(t, changes)
		assert.Equal(t, path, change.Path)
		assert.Equal(t, ChangeCreated, change.Type)

		select {
		case extra := <-changes:
			t.Fatalf("unexpected second change: %+v", extra)
		case <-time.After(5 * testSettle):
		}
	})

	t.Run("reports rewritten exports", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "export.xml")
		require.NoError(t, os.WriteFile(path, []byte("<rss/>"), 0644))

		w := New(dir, WithSettle(testSettle))
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("<rss></rss>"), 0644))

		change := receive(t, changes)
		assert.Equal(t, path, change.Path)
		assert.Equal(t, ChangeUpdated, change.Type)
	})

	t.Run("ignores other files", func(t *testing.T) {
		dir := t.TempDir()
		w := New(dir, WithSettle(testSettle))
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "real.xml"), []byte("x"), 0644))

		change := receive(t, changes)
		assert.Equal(t, filepath.Join(dir, "real.xml"), change.Path)
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		changes, err := New("/non/existent/path").Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("returns error for a file root", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "export.xml")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := New(file).Watch(context.Background())
		assert.ErrorContains(t, err, "not a directory")
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		w := New(t.TempDir())
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())

		changes, err := w.Watch(ctx)
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-changes:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
	})

	t.Run("closes channel when watcher is closed", func(t *testing.T) {
		w := New(t.TempDir())

		changes, err := w.Watch(context.Background())
		require.NoError(t, err)
		require.NoError(t, w.Close())

		select {
		case _, ok := <-changes:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel did not close after Close")
		}
	})

	t.Run("returns error when watcher is closed", func(t *testing.T) {
		w := New(t.TempDir())
		require.NoError(t, w.Close())

		changes, err := w.Watch(context.Background())

		assert.ErrorIs(t, err, ErrClosed)
		assert.Nil(t, changes)
	})

	t.Run("cannot start twice", func(t *testing.T) {
		w := New(t.TempDir())
		defer w.Close()

		_, err := w.Watch(context.Background())
		require.NoError(t, err)
		_, err = w.Watch(context.Background())
		assert.Error(t, err)
	})
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w := New(t.TempDir())

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
