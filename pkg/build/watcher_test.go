package build

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propdoc/pkg/util"
)

func TestWatcherDebouncesChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "Badge"), 0o755))

	changes := make(chan []string, 4)
	w, err := NewWatcher(root, WatchOptions{DebounceMs: 200}, func(paths []string) {
		changes <- paths
	}, util.DiscardLogger())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	badge := filepath.Join(root, "src", "Badge", "Badge.js")
	types := filepath.Join(root, "src", "Badge", "Badge.d.ts")
	require.NoError(t, os.WriteFile(badge, []byte("export default function Badge() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(types, []byte("export default function Badge(): null;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "Badge", "notes.txt"), []byte("x"), 0o644))

	select {
	case paths := <-changes:
		assert.Equal(t, []string{types, badge}, paths)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherShouldIgnore(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher(root, WatchOptions{IgnorePatterns: []string{"docs/api/**"}}, func([]string) {}, util.DiscardLogger())
	require.NoError(t, err)
	defer w.Stop()

	assert.True(t, w.shouldIgnore(filepath.Join(root, "node_modules")))
	assert.True(t, w.shouldIgnore(filepath.Join(root, "docs", "api", "pages", "badge.json")))
	assert.False(t, w.shouldIgnore(filepath.Join(root, "docs", "data", "badge.md")))
	assert.False(t, w.shouldIgnore(filepath.Join(root, "src", "Badge", "Badge.js")))

	_, err = NewWatcher(root, WatchOptions{IgnorePatterns: []string{"["}}, nil, nil)
	assert.Error(t, err)
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), WatchOptions{}, func([]string) {}, util.DiscardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.NoError(t, w.Stop(), "stop is idempotent")
}

func TestWatcherStopWhileScheduling(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher(root, WatchOptions{DebounceMs: 1}, func([]string) {}, util.DiscardLogger())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.schedule(filepath.Join(root, "Badge"+strconv.Itoa(i)+".js"))
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, w.Stop())
	}()
	wg.Wait()

	w.schedule(filepath.Join(root, "Late.js"))
	assert.Eventually(t, func() bool {
		w.pendMu.Lock()
		defer w.pendMu.Unlock()
		return len(w.pending) == 0
	}, time.Second, 5*time.Millisecond, "changes after stop are dropped")
}
