package content

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher serves a catalog loaded from a directory and reloads it when the
// locale files change. A reload that fails validation is logged and the
// previous catalog keeps serving.
type Watcher struct {
	dir      string
	logger   *zap.Logger
	debounce time.Duration
	current  atomic.Pointer[Catalog]
	onReload func(*Catalog)

	fs      *fsnotify.Watcher
	mu      sync.Mutex
	pending time.Time
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// WatcherOption customizes a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the directory must stay quiet before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithReloadHook registers fn to run after every successful reload.
func WithReloadHook(fn func(*Catalog)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher loads dir once; the initial load must validate.
func NewWatcher(dir string, logger *zap.Logger, opts ...WatcherOption) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cat, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		dir:      dir,
		logger:   logger,
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.current.Store(cat)
	return w, nil
}

// Catalog returns the most recent valid catalog.
func (w *Watcher) Catalog() *Catalog {
	return w.current.Load()
}

// Reload re-reads the directory and swaps the catalog in if it validates.
func (w *Watcher) Reload() error {
	cat, err := LoadDir(w.dir)
	if err != nil {
		w.logger.Warn("content reload rejected", zap.String("dir", w.dir), zap.Error(err))
		return err
	}
	w.current.Store(cat)
	w.logger.Info("content reloaded", zap.String("dir", w.dir))
	if w.onReload != nil {
		w.onReload(cat)
	}
	return nil
}

// Start begins watching the directory until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return err
	}

	w.fs = fsw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	w.logger.Info("watching content directory", zap.String("dir", w.dir))

	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stopCh)
	done := w.doneCh
	fsw := w.fs
	w.mu.Unlock()

	<-done
	return fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(max(w.debounce/3, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("content watcher error", zap.Error(err))
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !strings.HasSuffix(ev.Name, ".toml") {
		return
	}
	if _, ok := ParseLocale(strings.TrimSuffix(filepath.Base(ev.Name), ".toml")); !ok {
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return
	}
	w.logger.Debug("content file changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))

	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	// Reload logs rejected sets itself.
	_ = w.Reload()
}
