// Package watch re-runs documentation generation whenever the plugin tree
// changes. Each rebuild is a full batch run; there is no incremental state.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/younesStrittmatter/sweet-jsPsych/internal/config"
	"github.com/younesStrittmatter/sweet-jsPsych/internal/logfields"
	"github.com/younesStrittmatter/sweet-jsPsych/internal/site"
)

// Watcher monitors the plugin tree and triggers rebuilds, debouncing rapid
// bursts of file events.
type Watcher struct {
	cfg      *config.Config
	builder  *site.Builder
	watcher  *fsnotify.Watcher
	debounce time.Duration
	exclude  map[string]struct{}
}

// New creates a watcher over the configured root directory.
func New(cfg *config.Config, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	exclude := make(map[string]struct{}, len(cfg.ExcludeDirs))
	for _, d := range cfg.ExcludeDirs {
		exclude[d] = struct{}{}
	}
	return &Watcher{
		cfg:      cfg,
		builder:  site.NewBuilder(cfg),
		watcher:  fsw,
		debounce: debounce,
		exclude:  exclude,
	}, nil
}

// Run builds once, then blocks rebuilding on changes until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	if err := w.addRecursive(w.cfg.Root); err != nil {
		return err
	}

	if err := w.builder.Run(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	slog.Info("Watching for changes", logfields.Path(w.cfg.Root))

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories must be watched explicitly.
				if err := w.addRecursive(event.Name); err != nil {
					slog.Debug("Not watching new path", logfields.Path(event.Name), logfields.Error(err))
				}
			}
			slog.Debug("Change detected", logfields.Path(event.Name))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(err))
		case <-pending:
			pending = nil
			slog.Info("Rebuilding documentation")
			if err := w.builder.Run(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// addRecursive watches path and every directory below it, skipping excluded
// subtrees. Non-directory paths are ignored.
func (w *Watcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, skip := w.exclude[d.Name()]; skip {
			return fs.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
