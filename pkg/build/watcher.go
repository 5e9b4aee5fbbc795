package build

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// watchedExtensions are the inputs of a build: sources, declarations,
// tests and demo pages.
var watchedExtensions = map[string]bool{
	".js": true, ".jsx": true, ".mjs": true, ".ts": true, ".tsx": true, ".md": true,
}

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// DebounceMs groups changes arriving within this window into one
	// callback. Defaults to 200.
	DebounceMs int
	// IgnorePatterns are doublestar globs relative to the root.
	IgnorePatterns []string
}

// Watcher reports changed build inputs under a root directory.
//
// Changes are debounced across files: a burst of saves, such as a branch
// switch, produces a single callback with every changed path.
//
// Usage:
//
//	w, err := NewWatcher(root, WatchOptions{}, func(paths []string) { ... }, logger)
//	if err != nil {
//	    return err
//	}
//	return w.Run(ctx)
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	options  WatchOptions
	onChange func(paths []string)
	logger   *slog.Logger

	// Debouncing
	pending map[string]struct{}
	timer   *time.Timer
	pendMu  sync.Mutex
	// runMu serializes onChange calls.
	runMu sync.Mutex

	// Lifecycle
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher for root. onChange runs on its own
// goroutine, never concurrently with itself.
func NewWatcher(root string, options WatchOptions, onChange func(paths []string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, pattern := range options.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern: %s", pattern)
		}
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		watcher:  fsw,
		root:     absRoot,
		options:  options,
		onChange: onChange,
		logger:   logger,
		pending:  make(map[string]struct{}),
		stopChan: make(chan struct{}),
	}, nil
}

// Start watches every non-ignored directory under the root and returns.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.logger.Info("file watcher started", "root", w.root)
	go w.eventLoop()
	return nil
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

// Stop stops watching. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.pendMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = make(map[string]struct{})
	w.pendMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("file watcher stopped")
	return err
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != w.root && w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.shouldIgnore(path) {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addTree(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
			return
		}
	}
	if !watchedExtensions[filepath.Ext(path)] {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", path)
	w.schedule(path)
}

// schedule adds path to the pending set and restarts the debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	w.pendMu.Lock()
	defer w.pendMu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(time.Duration(w.options.DebounceMs)*time.Millisecond, w.flush)
}

func (w *Watcher) flush() {
	w.pendMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.pendMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	w.runMu.Lock()
	defer w.runMu.Unlock()
	w.onChange(paths)
}

// shouldIgnore checks dependency and VCS directories and the configured
// patterns.
func (w *Watcher) shouldIgnore(path string) bool {
	switch filepath.Base(path) {
	case "node_modules", ".git", "dist", "build", ".next":
		return true
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.options.IgnorePatterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}
