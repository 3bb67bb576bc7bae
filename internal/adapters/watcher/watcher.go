// Package watcher observes icon directories and coalesces bursts of changes
// into single regeneration passes.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that should not be watched.
var shouldSkipDirectories = map[string]bool{
	"node_modules": true,
}

// defaultPatterns select the files whose changes qualify for regeneration.
var defaultPatterns = []string{"**/*" + domain.IconExt}

// defaultIgnores exclude hidden files and everything below hidden directories.
var defaultIgnores = []string{
	".*",
	"**/.*",
	"**/.*/**",
}

const eventChannelBuffer = 100

// Watcher implements icon directory watching using fsnotify.
type Watcher struct {
	logger  ports.Logger
	started atomic.Bool

	fsWatcher *fsnotify.Watcher
	roots     []string
	events    chan ports.WatchEvent
	done      chan struct{}
	stopOnce  sync.Once

	mu   sync.Mutex
	dirs map[string]struct{}
	err  error
}

// NewWatcher creates a new watcher. No file system resources are acquired until Start.
func NewWatcher(log ports.Logger) *Watcher {
	return &Watcher{
		logger: log,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
		done:   make(chan struct{}),
		dirs:   make(map[string]struct{}),
	}
}

// Start begins watching every root recursively. A watcher serves exactly one
// session; calling Start again returns domain.ErrWatcherActive.
func (w *Watcher) Start(ctx context.Context, roots []string) error {
	if !w.started.CompareAndSwap(false, true) {
		return domain.ErrWatcherActive
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		close(w.events)
		close(w.done)
		return zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	w.fsWatcher = fsw

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			abs = root
		}
		w.roots = append(w.roots, abs)
	}

	for _, root := range w.roots {
		for dir := range w.watchRecursively(root) {
			if err := w.add(dir); err != nil {
				_ = fsw.Close()
				close(w.events)
				close(w.done)
				return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "dir", dir)
			}
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	if w.fsWatcher == nil {
		return nil
	}
	var err error
	w.stopOnce.Do(func() {
		err = w.fsWatcher.Close()
	})
	return err
}

// Events returns an iterator of qualifying icon events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// Done is closed once event processing has ended.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Err returns the fatal error that ended the watch, if any.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Watcher) add(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.mu.Lock()
	w.dirs[dir] = struct{}{}
	w.mu.Unlock()
	return nil
}

// watchRecursively walks the directory tree and yields all directories that
// are not hidden or skipped.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Continue walking even if there's an error accessing a directory.
				return nil //nolint:nilerr // skip problematic directories
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && w.shouldSkip(d.Name()) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip returns true if the directory should not be watched.
func (w *Watcher) shouldSkip(name string) bool {
	return shouldSkipDirectories[name] || strings.HasPrefix(name, ".")
}

// processEvents converts raw fsnotify events into qualifying ports.WatchEvent values.
//
//nolint:cyclop // event dispatch
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent := w.convertEvent(event)
			if watchEvent == nil {
				continue
			}

			// A created directory may already hold icons, so it is watched
			// and reported like an icon change.
			isDir := false
			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.shouldSkip(info.Name()) {
					isDir = true
					for dir := range w.watchRecursively(event.Name) {
						if err := w.add(dir); err != nil {
							w.logError(zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "dir", dir))
						}
					}
				}
			}
			if watchEvent.Operation == ports.OpRemove || watchEvent.Operation == ports.OpRename {
				isDir = w.forget(event.Name)
			}

			if !w.qualifies(watchEvent.Path, isDir) {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				_ = w.Stop()
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// isFatalFsnotifyError is platform-specific (see fatal_*.go).
			if isFatalFsnotifyError(err) {
				fatal := zerr.Wrap(err, domain.ErrWatcherFailed.Error())
				w.mu.Lock()
				w.err = fatal
				w.mu.Unlock()
				w.logError(fatal)
				_ = w.Stop()
				return
			}
			w.logError(zerr.Wrap(err, "file watcher error"))
		}
	}
}

// forget drops path from the watched directory set and reports whether it was
// a watched directory.
func (w *Watcher) forget(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.dirs[path]
	delete(w.dirs, path)
	return ok
}

// qualifies reports whether a change at path should trigger regeneration.
func (w *Watcher) qualifies(path string, isDir bool) bool {
	rel, ok := w.relative(path)
	if !ok {
		return false
	}
	normalized := filepath.ToSlash(rel)
	for _, pat := range defaultIgnores {
		if doublestar.MatchUnvalidated(pat, normalized) {
			return false
		}
	}
	if isDir {
		return true
	}
	lower := strings.ToLower(normalized)
	for _, pat := range defaultPatterns {
		if doublestar.MatchUnvalidated(pat, lower) {
			return true
		}
	}
	return false
}

// relative returns path relative to the watched root containing it.
func (w *Watcher) relative(path string) (string, bool) {
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		return rel, true
	}
	return "", false
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
func (w *Watcher) convertEvent(event fsnotify.Event) *ports.WatchEvent {
	path := event.Name

	switch {
	case event.Op.Has(fsnotify.Write):
		return &ports.WatchEvent{Path: path, Operation: ports.OpWrite}
	case event.Op.Has(fsnotify.Create):
		return &ports.WatchEvent{Path: path, Operation: ports.OpCreate}
	case event.Op.Has(fsnotify.Remove):
		return &ports.WatchEvent{Path: path, Operation: ports.OpRemove}
	case event.Op.Has(fsnotify.Rename):
		return &ports.WatchEvent{Path: path, Operation: ports.OpRename}
	default:
		return nil
	}
}

func (w *Watcher) logError(err error) {
	if w.logger != nil {
		w.logger.Error(err)
	}
}
