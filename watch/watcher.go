// Package watch reports changes of the M0 input files, so that a
// conversion can be rerun when a new snapshot lands.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const (
	// changeBuffer is the number of change batches waiting for a rerun.
	changeBuffer = 8

	defaultDebounce = 2 * time.Second
)

// Watcher watches the directories of a set of input globs and emits the
// batch of files whose content changed once the debounce delay elapses.
type Watcher struct {
	patterns []string
	ignored  []string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// pending holds the time of the last event of each changed file
	pendingMu sync.Mutex
	pending   map[string]time.Time

	// hashes holds the content hash of every matching file seen so far
	hashMu sync.Mutex
	hashes map[string]string

	changes chan []string
	dropped atomic.Int64
}

// New creates a watcher for the given doublestar patterns.
func New(patterns []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		cleaned = append(cleaned, filepath.Clean(p))
	}
	return &Watcher{
		patterns: cleaned,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]time.Time),
		hashes:   make(map[string]string),
		changes:  make(chan []string, changeBuffer),
	}, nil
}

// Ignore skips every file under dir, typically the output directory.
func (w *Watcher) Ignore(dir string) {
	w.ignored = append(w.ignored, filepath.Clean(dir))
}

// Changes returns the channel of changed file batches. It is closed when
// the watcher stops.
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Start records the current content of the matching files, watches their
// directories and processes events until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	for _, pattern := range w.patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		if err := w.addWatchesRecursive(filepath.FromSlash(base)); err != nil {
			return fmt.Errorf("watch %s: %w", base, err)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if hash, ok := fileHash(m); ok {
				w.setHash(m, hash)
			}
		}
	}

	go w.processEvents(ctx)

	w.logger.Info("Input watcher started",
		"patterns", w.patterns,
		"debounce", w.debounce,
		"files", w.known())
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Dropped returns the number of batches dropped because the change channel
// was full.
func (w *Watcher) Dropped() int64 {
	return w.dropped.Load()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if w.isIgnored(path) || (strings.HasPrefix(base, ".") && path != root) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.changes)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
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
			w.logger.Error("Watcher error", "error", err)

		case now := <-ticker.C:
			w.flushPending(now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if w.isIgnored(path) {
		return
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addWatchesRecursive(path); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
			}
			return
		}
	}
	if !w.matches(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = time.Now()
	w.pendingMu.Unlock()
	w.logger.Debug("Input change detected", "path", path, "op", event.Op.String())
}

// flushPending compares the files that have been quiet for the debounce
// delay with their last known content and emits the ones that changed.
func (w *Watcher) flushPending(now time.Time) {
	w.pendingMu.Lock()
	var paths []string
	for p, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			paths = append(paths, p)
			delete(w.pending, p)
		}
	}
	w.pendingMu.Unlock()
	if len(paths) == 0 {
		return
	}

	var changed []string
	for _, path := range paths {
		hash, exists := fileHash(path)
		old, known := w.hash(path)
		switch {
		case !exists && known:
			w.deleteHash(path)
			changed = append(changed, path)
		case exists && (!known || old != hash):
			w.setHash(path, hash)
			changed = append(changed, path)
		}
	}
	if len(changed) == 0 {
		return
	}
	slices.Sort(changed)

	select {
	case w.changes <- changed:
		w.logger.Info("Input files changed", "files", changed)
	default:
		dropped := w.dropped.Add(1)
		w.logger.Warn("Change channel full, dropping batch", "files", len(changed), "total_dropped", dropped)
	}
}

func (w *Watcher) matches(path string) bool {
	for _, pattern := range w.patterns {
		if ok, err := doublestar.PathMatch(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

func (w *Watcher) isIgnored(path string) bool {
	for _, dir := range w.ignored {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) hash(path string) (string, bool) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	h, ok := w.hashes[path]
	return h, ok
}

func (w *Watcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

func (w *Watcher) deleteHash(path string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	delete(w.hashes, path)
}

func (w *Watcher) known() int {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	return len(w.hashes)
}

// fileHash returns the SHA-256 of a regular file's content.
func fileHash(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:]), true
}
