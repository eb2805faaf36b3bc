package transport

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-pilot/internal/logger"
)

// Hotplug watches device directories and posts ActivityHotplug when the
// node of a tracked USB cradle is created.
type Hotplug struct {
	watcher *fsnotify.Watcher
	logger  *logger.Logger

	mu    sync.Mutex
	ports map[string]string
}

// NewHotplug watches dir, typically /dev.
func NewHotplug(dir string, log *logger.Logger) (*Hotplug, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return &Hotplug{watcher: w, logger: log, ports: make(map[string]string)}, nil
}

// Track registers the node path of a USB cradle. Nodes outside the watched
// directory get their own directory watch.
func (h *Hotplug) Track(device, port string) error {
	path := filepath.Clean(port)

	h.mu.Lock()
	h.ports[path] = device
	h.mu.Unlock()

	dir := filepath.Dir(path)
	for _, watched := range h.watcher.WatchList() {
		if watched == dir {
			return nil
		}
	}
	if err := h.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return nil
}

// Untrack forgets every tracked node.
func (h *Hotplug) Untrack() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.ports)
}

// Run posts activities until ctx is done or Close is called.
func (h *Hotplug) Run(ctx context.Context, out chan<- Activity) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}

			h.mu.Lock()
			device, tracked := h.ports[filepath.Clean(ev.Name)]
			h.mu.Unlock()
			if !tracked {
				continue
			}

			h.logger.Debug().Str("func", "Hotplug.Run").Str("device", device).Str("node", ev.Name).Msg("usb node appeared")
			select {
			case out <- Activity{Device: device, Kind: ActivityHotplug}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Warn().Err(err).Str("func", "Hotplug.Run").Msg("fsnotify error")
		}
	}
}

// Close stops the watcher.
func (h *Hotplug) Close() error {
	return h.watcher.Close()
}
