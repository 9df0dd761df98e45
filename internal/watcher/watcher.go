// Package watcher provides file system watching with debouncing for the stint database.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/stint/internal/pubsub"
)

// EventType discriminates watcher event payloads.
type EventType int

const (
	// DBChanged reports a write to the database, WAL, or shared-memory file.
	DBChanged EventType = iota
	// WatcherError reports an error from the underlying fsnotify watcher.
	WatcherError
)

// WatcherEvent is the payload published on the watcher's broker.
type WatcherEvent struct {
	Type  EventType
	Error error
}

// Watcher monitors the stint database for changes and publishes
// notifications on its broker. It reports every relevant write,
// including this process' own; callers decide which ones matter.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dbPath    string
	dbBase    string
	debounce  time.Duration
	broker    *pubsub.Broker[WatcherEvent]
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	DBPath      string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:      dbPath,
		DebounceDur: 1 * time.Second,
	}
}

// New creates a new database watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		dbPath:    cfg.DBPath,
		dbBase:    filepath.Base(cfg.DBPath),
		debounce:  cfg.DebounceDur,
		broker:    pubsub.NewBroker[WatcherEvent](),
		done:      make(chan struct{}),
	}, nil
}

// Broker returns the broker watcher events are published on.
// Subscribe before calling Start to avoid missing the first notification.
func (w *Watcher) Broker() *pubsub.Broker[WatcherEvent] {
	return w.broker
}

// Start begins watching the directory containing the database.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.dbPath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	return nil
}

// Stop terminates the watcher, closes its broker, and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.broker.Close()
	return err
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			// Only react to writes on database files
			if !w.isRelevantEvent(event) {
				continue
			}

			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = true
			} else {
				if !timer.Stop() {
					// Drain the timer channel if it already fired
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
				pending = true
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				w.broker.Publish(WatcherEvent{Type: DBChanged})
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.broker.Publish(WatcherEvent{Type: WatcherError, Error: err})

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a refresh.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	// WAL and shared-memory files may be created fresh
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}

	base := filepath.Base(event.Name)
	return base == w.dbBase || base == w.dbBase+"-wal" || base == w.dbBase+"-shm"
}
