// Package watch re-runs work when source files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the quiet period after the last change before a run.
const DefaultDebounce = 100 * time.Millisecond

// ChangeFunc handles one burst of changes. changed holds the absolute
// paths that were modified, sorted.
type ChangeFunc func(ctx context.Context, changed []string)

// Options configures Files.
type Options struct {
	// Debounce is the quiet period before onChange runs (zero uses DefaultDebounce)
	Debounce time.Duration
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Ready, when set, is closed once the watches are in place
	Ready chan<- struct{}
}

// Files watches the given files and calls onChange after each burst of
// writes until ctx is cancelled. Runs of onChange never overlap.
//
// The parent directories are watched rather than the files, so editors
// that save by renaming a temporary file over the original still trigger.
func Files(ctx context.Context, files []string, opts Options, onChange ChangeFunc) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Debug("watching directory", "dir", dir)
	}
	if opts.Ready != nil {
		close(opts.Ready)
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]bool)
	)
	trigger := make(chan struct{}, 1)

	eg, egctx := errgroup.WithContext(ctx)

	// Collect events and debounce them into triggers
	eg.Go(func() error {
		var debounceTimer *time.Timer
		defer func() {
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
		}()

		for {
			select {
			case <-egctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				name, err := filepath.Abs(event.Name)
				if err != nil || !watched[name] {
					continue
				}

				mu.Lock()
				pending[name] = true
				mu.Unlock()

				// Debounce
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, func() {
					select {
					case trigger <- struct{}{}:
					default:
					}
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Error("watcher error", "error", err)
			}
		}
	})

	// Run onChange serially
	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case <-trigger:
				mu.Lock()
				changed := make([]string, 0, len(pending))
				for name := range pending {
					changed = append(changed, name)
				}
				pending = make(map[string]bool)
				mu.Unlock()

				if len(changed) == 0 {
					continue
				}
				sort.Strings(changed)
				logger.Debug("files changed", "files", changed)
				onChange(egctx, changed)
			}
		}
	})

	return eg.Wait()
}
