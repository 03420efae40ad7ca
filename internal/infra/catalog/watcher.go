package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"aidex/internal/domain"
)

const defaultReloadDebounce = 200 * time.Millisecond

// ApplyFunc receives each configuration that reloads cleanly.
type ApplyFunc func(cfg domain.Config)

type WatcherOptions struct {
	Path     string
	Loader   *Loader
	Apply    ApplyFunc
	Debounce time.Duration
	Logger   *zap.Logger
}

// Watcher reloads the config file whenever it changes on disk.
type Watcher struct {
	path     string
	loader   *Loader
	apply    ApplyFunc
	debounce time.Duration
	logger   *zap.Logger
}

func NewWatcher(opts WatcherOptions) (*Watcher, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, fmt.Errorf("config watcher: path is required")
	}
	if opts.Apply == nil {
		return nil, fmt.Errorf("config watcher: apply func is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loader := opts.Loader
	if loader == nil {
		loader = NewLoader(logger)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	return &Watcher{
		path:     abs,
		loader:   loader,
		apply:    opts.Apply,
		debounce: debounce,
		logger:   logger.Named("config_watcher"),
	}, nil
}

// Run watches the directory holding the config file until ctx is done.
// Editors often replace files via rename, so the directory is watched rather
// than the file itself.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("config watcher add %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("watching config", zap.String("path", w.path))

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				w.logger.Warn("config watcher error", zap.Error(err))
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !shouldReloadForPath(event.Name, w.path) || event.Op == fsnotify.Chmod {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-timerChan(timer):
			timer = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	cfg, err := w.loader.Load(ctx, w.path)
	if err != nil {
		w.logger.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("config reloaded", zap.String("path", w.path))
	w.apply(cfg)
}

func shouldReloadForPath(path string, configPath string) bool {
	if path == "" || configPath == "" {
		return false
	}
	return filepath.Clean(path) == filepath.Clean(configPath)
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
