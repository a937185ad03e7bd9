package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/logging"
)

// ChangeType represents the kind of catalog file that changed
type ChangeType int

const (
	ChangeTypeProduct ChangeType = iota
	ChangeTypeInventory
)

// ChangeEvent represents a batch of catalog file changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// CatalogWatcher watches a catalog directory for file changes so the server
// can reload product definitions without a restart.
type CatalogWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
	events  chan ChangeEvent
}

// NewCatalogWatcher creates a watcher for a catalog directory
func NewCatalogWatcher(dir string) (*CatalogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &CatalogWatcher{
		watcher: watcher,
		dir:     dir,
		events:  make(chan ChangeEvent, 100),
	}, nil
}

// Start begins watching for file changes
func (cw *CatalogWatcher) Start(ctx context.Context) error {
	if err := cw.watcher.Add(cw.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cw.dir, err)
	}

	logging.Info("watching catalog directory", "path", cw.dir)

	go cw.processEvents(ctx)
	return nil
}

// processEvents batches raw fsnotify events by file kind. Editors fire
// several events per save; a short flush window collapses them.
func (cw *CatalogWatcher) processEvents(ctx context.Context) {
	var productFiles []string
	var inventoryFiles []string

	flushTimer := time.NewTimer(100 * time.Millisecond)
	flushTimer.Stop()

	flush := func() {
		if len(productFiles) > 0 {
			cw.events <- ChangeEvent{
				Type:      ChangeTypeProduct,
				Paths:     productFiles,
				Timestamp: time.Now(),
			}
			productFiles = nil
		}
		if len(inventoryFiles) > 0 {
			cw.events <- ChangeEvent{
				Type:      ChangeTypeInventory,
				Paths:     inventoryFiles,
				Timestamp: time.Now(),
			}
			inventoryFiles = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			cw.watcher.Close()
			close(cw.events)
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Ext(event.Name) != ".json" {
				continue
			}

			if filepath.Base(event.Name) == catalog.InventoryFileName {
				inventoryFiles = append(inventoryFiles, event.Name)
			} else {
				productFiles = append(productFiles, event.Name)
			}
			flushTimer.Reset(100 * time.Millisecond)

		case <-flushTimer.C:
			flush()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of change events
func (cw *CatalogWatcher) Events() <-chan ChangeEvent {
	return cw.events
}

// Stop stops the watcher
func (cw *CatalogWatcher) Stop() error {
	return cw.watcher.Close()
}
