// Package watch re-runs a callback when source files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrAlreadyStarted is returned when Run is called on a watcher more than
// once. A Watcher is single-use.
var ErrAlreadyStarted = errors.New("watch: watcher already started")

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// DefaultExtension is the source file extension matched inside watched
// directories.
const DefaultExtension = ".pm"

// Config configures a Watcher.
type Config struct {
	// Paths are files or directories. Directories are watched recursively
	// and filtered by Extensions.
	Paths      []string
	Extensions []string
	Debounce   time.Duration
	Logger     *slog.Logger
	// OnChange is called from the Run goroutine once per changed path after
	// events settle.
	OnChange func(ctx context.Context, path string)
}

// Watcher coalesces filesystem events into debounced change callbacks.
type Watcher struct {
	files      map[string]bool
	dirs       []string
	extensions []string
	debounce   time.Duration
	logger     *slog.Logger
	onChange   func(ctx context.Context, path string)
	ready      chan struct{}
	started    atomic.Bool
}

// New validates cfg and returns a watcher that is not yet running.
func New(cfg Config) (*Watcher, error) {
	if cfg.OnChange == nil {
		return nil, errors.New("watch: OnChange is required")
	}
	if len(cfg.Paths) == 0 {
		return nil, errors.New("watch: no paths to watch")
	}
	w := &Watcher{
		files:      make(map[string]bool),
		extensions: cfg.Extensions,
		debounce:   cfg.Debounce,
		logger:     cfg.Logger,
		onChange:   cfg.OnChange,
		ready:      make(chan struct{}),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if len(w.extensions) == 0 {
		w.extensions = []string{DefaultExtension}
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}

	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}
		if info.IsDir() {
			w.dirs = append(w.dirs, abs)
		} else {
			w.files[abs] = true
		}
	}
	return w, nil
}

// Ready is closed once the watches are registered.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run blocks until ctx is cancelled. It may be called once per Watcher.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Files are watched through their directory so editors that replace the
	// file on save are still seen.
	for file := range w.files {
		if err := watcher.Add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("watch %s: %w", file, err)
		}
	}
	for _, dir := range w.dirs {
		if err := watchDirRecursive(watcher, dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	close(w.ready)
	w.logger.Debug("watching", "files", len(w.files), "dirs", len(w.dirs), "debounce", w.debounce)

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op.Has(fsnotify.Create) && w.inWatchedDir(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDirRecursive(watcher, event.Name); err != nil {
						w.logger.Error("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.matches(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			for _, p := range paths {
				w.logger.Debug("file changed", "file", p)
				w.onChange(ctx, p)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) matches(path string) bool {
	if w.files[path] {
		return true
	}
	return w.inWatchedDir(path) && slices.Contains(w.extensions, filepath.Ext(path))
}

func (w *Watcher) inWatchedDir(path string) bool {
	for _, dir := range w.dirs {
		if rel, err := filepath.Rel(dir, path); err == nil && filepath.IsLocal(rel) {
			return true
		}
	}
	return false
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
