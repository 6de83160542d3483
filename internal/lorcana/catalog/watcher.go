package catalog

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the catalog when the data directory changes on disk.
// The data pipeline rewrites whole set files, so events are debounced and
// a single LoadDir runs after the writes settle.
type Watcher struct {
	catalog  *Service
	dir      string
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatcherConfig configures a catalog watcher.
type WatcherConfig struct {
	Catalog *Service
	Dir     string
	// Debounce is how long to wait after the last event before reloading.
	// Default: 500ms.
	Debounce time.Duration
	Logger   *slog.Logger
}

// NewWatcher creates a watcher for the given catalog and data directory.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if config.Dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if config.Debounce == 0 {
		config.Debounce = 500 * time.Millisecond
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Watcher{
		catalog:  config.Catalog,
		dir:      config.Dir,
		debounce: config.Debounce,
		logger:   config.Logger,
	}, nil
}

// Start begins watching. It returns once the filesystem watch is
// registered; reloads happen on a background goroutine until Stop.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return fmt.Errorf("watcher already started")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.watcher = fsw
	w.done = make(chan struct{})
	go w.run(fsw, w.done)

	w.logger.Info("Watching catalog directory", "dir", w.dir)
	return nil
}

// Stop ends watching and waits for the background goroutine to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	w.watcher = nil
	w.done = nil
	return err
}

func (w *Watcher) run(fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Catalog watch error", "error", err)

		case <-timerC:
			if err := w.catalog.LoadDir(w.dir); err != nil {
				w.logger.Warn("Catalog reload failed", "error", err)
			}
		}
	}
}
