package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/caption-synth/internal/logger"
)

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	lock          *flock.Flock
	maxConcurrent int
	settle        time.Duration

	mu   sync.Mutex
	seen map[string]struct{}

	// scanned holds manifests queued by the startup scan. A CREATE already in
	// flight for one of them is dropped; any event for the path clears it.
	scanned map[string]struct{}
}

// Start takes the folder lock, handles manifests already waiting in the input
// folder, then monitors it for new ones until ctx is done.
func (w *implWatcher) Start(ctx context.Context) error {
	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, w.lock.Path())
	}
	defer func() {
		if err := w.lock.Unlock(); err != nil {
			w.logger.Warn(ctx, "Failed to release lock: %v", err)
		}
		os.Remove(w.lock.Path())
	}()

	// Handler failures are logged, not propagated, so a plain group is enough.
	var g errgroup.Group
	g.SetLimit(w.maxConcurrent)

	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported manifests: .yaml, .yml")

	pending, err := w.pending()
	if err != nil {
		w.logger.Warn(ctx, "Failed to scan input folder: %v", err)
	}
	for _, path := range pending {
		w.logger.Info(ctx, "Pending manifest: %s", path)
		w.scanned[path] = struct{}{}
		w.dispatch(ctx, &g, path)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			g.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				g.Wait()
				return fmt.Errorf("watcher events channel closed")
			}

			w.handleEvent(ctx, &g, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				g.Wait()
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// handleEvent dispatches newly created manifests. Only the Start loop calls it.
func (w *implWatcher) handleEvent(ctx context.Context, g *errgroup.Group, event fsnotify.Event) {
	if _, ok := w.scanned[event.Name]; ok {
		delete(w.scanned, event.Name)
		if event.Has(fsnotify.Create) {
			w.logger.Debug(ctx, "Already queued at startup: %s", event.Name)
			return
		}
	}

	// Only process CREATE events
	if !event.Has(fsnotify.Create) {
		return
	}
	if !isManifest(event.Name) {
		w.logger.Debug(ctx, "Ignoring non-manifest file: %s", event.Name)
		return
	}

	w.logger.Info(ctx, "New manifest detected: %s", event.Name)

	// Small delay to ensure file is fully written
	if w.settle > 0 {
		time.Sleep(w.settle)
	}
	w.dispatch(ctx, g, event.Name)
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// dispatch runs the handler once per path. It blocks while every slot is busy.
func (w *implWatcher) dispatch(ctx context.Context, g *errgroup.Group, path string) {
	w.mu.Lock()
	if _, dup := w.seen[path]; dup {
		w.mu.Unlock()
		return
	}
	w.seen[path] = struct{}{}
	w.mu.Unlock()

	g.Go(func() error {
		defer func() {
			w.mu.Lock()
			delete(w.seen, path)
			w.mu.Unlock()
		}()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
		return nil
	})
}

// pending lists manifests already in the input folder, oldest name first.
func (w *implWatcher) pending() ([]string, error) {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isManifest(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(w.inputDir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// isManifest checks if the file has a manifest extension
func isManifest(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
