package api

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ContentChangeType indicates what type of change occurred.
type ContentChangeType string

const (
	ContentChangeCreated  ContentChangeType = "created"
	ContentChangeModified ContentChangeType = "modified"
	ContentChangeDeleted  ContentChangeType = "deleted"
)

// ContentChangeKind indicates what kind of file changed.
type ContentChangeKind string

const (
	ContentChangeKindCard    ContentChangeKind = "card"
	ContentChangeKindImage   ContentChangeKind = "image"
	ContentChangeKindUnknown ContentChangeKind = "unknown"
)

// ContentChange represents a file system change notification for the
// content tree. Out-of-band edits (another process, a text editor) reach
// admin clients through these.
type ContentChange struct {
	Type       ContentChangeType `json:"type"`
	Kind       ContentChangeKind `json:"kind"`
	Collection string            `json:"collection,omitempty"`
	CardID     string            `json:"card_id,omitempty"` // For card changes
	Path       string            `json:"path"`              // Relative path from the content root
}

// ContentWatcherSubscriber receives content change notifications.
type ContentWatcherSubscriber interface {
	OnContentChange(change ContentChange)
}

// ContentWatcher watches the content directory for changes and notifies
// subscribers.
type ContentWatcher struct {
	watcher     *fsnotify.Watcher
	contentDir  string
	mu          sync.RWMutex
	subscribers []ContentWatcherSubscriber
	debounce    map[string]*time.Timer
	debounceMu  sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewContentWatcher creates a new watcher over a site's content directory.
func NewContentWatcher(contentDir string) (*ContentWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cw := &ContentWatcher{
		watcher:    watcher,
		contentDir: contentDir,
		debounce:   make(map[string]*time.Timer),
		stopCh:     make(chan struct{}),
	}

	return cw, nil
}

// Subscribe adds a subscriber to receive content change notifications.
func (cw *ContentWatcher) Subscribe(sub ContentWatcherSubscriber) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.subscribers = append(cw.subscribers, sub)
}

// Start begins watching the content directory for changes.
func (cw *ContentWatcher) Start() error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	if cw.stopped {
		cw.mu.Unlock()
		return fmt.Errorf("content watcher cannot be restarted after stop")
	}
	cw.running = true
	cw.mu.Unlock()

	// Add watches recursively
	if err := cw.addWatchesRecursive(cw.contentDir); err != nil {
		return err
	}

	go cw.run()
	return nil
}

// Stop stops watching for changes.
func (cw *ContentWatcher) Stop() error {
	cw.mu.Lock()
	if !cw.running || cw.stopped {
		cw.mu.Unlock()
		return nil
	}
	cw.running = false
	cw.stopped = true
	cw.mu.Unlock()

	// Cancel all pending debounce timers to prevent them from firing after stop
	cw.debounceMu.Lock()
	for path, timer := range cw.debounce {
		timer.Stop()
		delete(cw.debounce, path)
	}
	cw.debounceMu.Unlock()

	close(cw.stopCh)
	return cw.watcher.Close()
}

// addWatchesRecursive adds watches to a directory and all subdirectories.
func (cw *ContentWatcher) addWatchesRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Ignore errors, directory might not exist yet
		}
		if info.IsDir() {
			if err := cw.watcher.Add(path); err != nil {
				log.Printf("Warning: failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
}

func (cw *ContentWatcher) run() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Content watcher error: %v", err)

		case <-cw.stopCh:
			return
		}
	}
}

func (cw *ContentWatcher) handleEvent(event fsnotify.Event) {
	// Skip temporary files and hidden files
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return
	}

	// If a directory was created, add a watch for it
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			cw.watcher.Add(event.Name)
		}
	}

	// Debounce: wait 100ms before emitting to coalesce rapid changes
	cw.debounceMu.Lock()
	if timer, exists := cw.debounce[event.Name]; exists {
		timer.Stop()
	}
	cw.debounce[event.Name] = time.AfterFunc(100*time.Millisecond, func() {
		cw.emitChange(event)
		cw.debounceMu.Lock()
		delete(cw.debounce, event.Name)
		cw.debounceMu.Unlock()
	})
	cw.debounceMu.Unlock()
}

func (cw *ContentWatcher) emitChange(event fsnotify.Event) {
	// Check if watcher was stopped (debounce timer may fire after Stop)
	cw.mu.RLock()
	if cw.stopped {
		cw.mu.RUnlock()
		return
	}
	subs := make([]ContentWatcherSubscriber, len(cw.subscribers))
	copy(subs, cw.subscribers)
	cw.mu.RUnlock()

	change := cw.classifyChange(event)
	if change.Kind == ContentChangeKindUnknown {
		return // Don't emit unknown changes
	}

	for _, sub := range subs {
		sub.OnContentChange(change)
	}
}

func (cw *ContentWatcher) classifyChange(event fsnotify.Event) ContentChange {
	relPath, err := filepath.Rel(cw.contentDir, event.Name)
	if err != nil {
		return ContentChange{Kind: ContentChangeKindUnknown}
	}

	change := ContentChange{
		Path: relPath,
	}

	// Determine change type
	switch {
	case event.Op&fsnotify.Create != 0:
		change.Type = ContentChangeCreated
	case event.Op&fsnotify.Write != 0:
		change.Type = ContentChangeModified
	case event.Op&fsnotify.Remove != 0:
		change.Type = ContentChangeDeleted
	case event.Op&fsnotify.Rename != 0:
		change.Type = ContentChangeDeleted // Rename source is effectively deleted
	default:
		return ContentChange{Kind: ContentChangeKindUnknown}
	}

	// Classify by path pattern
	parts := strings.Split(relPath, string(filepath.Separator))

	// Card document: collections/<name>/<cardid>.json
	if len(parts) == 3 && parts[0] == "collections" && strings.HasSuffix(parts[2], ".json") {
		change.Kind = ContentChangeKindCard
		change.Collection = parts[1]
		change.CardID = strings.TrimSuffix(parts[2], ".json")
		return change
	}

	// Image blob: images/<collection>Images/<blob>
	if len(parts) == 3 && parts[0] == "images" && strings.HasSuffix(parts[1], "Images") {
		change.Kind = ContentChangeKindImage
		change.Collection = strings.TrimSuffix(parts[1], "Images")
		return change
	}

	return ContentChange{Kind: ContentChangeKindUnknown}
}
