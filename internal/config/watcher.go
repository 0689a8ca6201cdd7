package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"recipebox/internal/eventbus"
	"recipebox/internal/search"
)

// DefaultReloadDelay coalesces the burst of events editors produce on save
const DefaultReloadDelay = 250 * time.Millisecond

// Watcher reloads the config file when it changes on disk and publishes a
// ConfigChangedEvent with the new settings. Invalid files are reported as
// ErrorEvents and otherwise ignored.
type Watcher struct {
	svc       ConfigService
	bus       eventbus.EventBus
	path      string
	fsWatcher *fsnotify.Watcher
	debouncer *search.Debouncer

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher watches the file behind svc. The parent directory is watched
// rather than the file so atomic rename-on-save is picked up too.
func NewWatcher(svc ConfigService, bus eventbus.EventBus, delay time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	path := filepath.Clean(svc.Path())
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		svc:       svc,
		bus:       bus,
		path:      path,
		fsWatcher: fsWatcher,
		debouncer: search.NewDebouncer(delay),
	}, nil
}

// Start begins handling file events until ctx is done or Close is called
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.handleEvents(ctx)
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()

	w.debouncer.Stop()
	if cancel != nil {
		cancel()
		<-done
	}
	return w.fsWatcher.Close()
}

func (w *Watcher) handleEvents(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.debouncer.Schedule(w.reload)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.svc.LoadFromPath(w.path)
	if err != nil {
		log.Printf("Config reload failed: %v", err)
		if w.bus != nil {
			w.bus.Publish(eventbus.ErrorEvent{Message: "config reload failed", Err: err})
		}
		return
	}

	log.Printf("Config reloaded from %s", w.path)
	if w.bus != nil {
		w.bus.Publish(ChangedEvent(w.path, cfg))
	}
}

// ChangedEvent builds the event announcing the live-applicable parts of cfg
func ChangedEvent(path string, cfg *Config) eventbus.ConfigChangedEvent {
	return eventbus.ConfigChangedEvent{
		Path:          path,
		PageSize:      cfg.UI.PageSize,
		DefaultSort:   cfg.UI.DefaultSort,
		Debounce:      cfg.Search.Debounce.Std(),
		CacheCapacity: cfg.Search.CacheCapacity,
	}
}
