package server

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"atsscore/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// CertWatcher watches certificate files and calls onChange after a quiet
// period once any of them has a newer modification time.
type CertWatcher struct {
	mu sync.Mutex

	files       []string
	lastModTime map[string]time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}
	onChange   func()
	logger     *errors.Logger
	running    bool
}

// NewCertWatcher watches the non-empty paths in files
func NewCertWatcher(files []string, debounceDelay time.Duration, onChange func(), logger *errors.Logger) *CertWatcher {
	if debounceDelay <= 0 {
		debounceDelay = time.Second
	}
	return &CertWatcher{
		files:         slices.DeleteFunc(slices.Clone(files), func(f string) bool { return f == "" }),
		lastModTime:   make(map[string]time.Time),
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		onChange:      onChange,
		logger:        logger,
	}
}

// Start begins watching. Directories are watched too so atomic renames are seen.
func (cw *CertWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return fmt.Errorf("certificate watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cw.fsWatcher = watcher

	for _, file := range cw.files {
		if stat, err := os.Stat(file); err == nil {
			cw.lastModTime[file] = stat.ModTime()
		}
		if err := watcher.Add(filepath.Dir(file)); err != nil {
			cw.logger.Warn("Failed to watch certificate directory", "file", file, "error", err)
		}
	}

	cw.running = true
	go cw.watchLoop()

	cw.logger.Info("Certificate file watcher started",
		"files", cw.files,
		"debounce_delay", cw.debounceDelay)
	return nil
}

// Stop stops the watcher; it is a no-op when not running
func (cw *CertWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.running {
		return nil
	}
	close(cw.stopChan)
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.running = false

	if err := cw.fsWatcher.Close(); err != nil {
		return fmt.Errorf("failed to close file watcher: %w", err)
	}
	cw.logger.Info("Certificate file watcher stopped")
	return nil
}

// IsRunning reports whether the watcher loop is active
func (cw *CertWatcher) IsRunning() bool {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.running
}

// Files returns the watched certificate paths
func (cw *CertWatcher) Files() []string {
	return slices.Clone(cw.files)
}

func (cw *CertWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-cw.fsWatcher.Events:
			if !ok {
				return
			}
			if cw.isRelevant(event) {
				cw.scheduleReload()
			}

		case err, ok := <-cw.fsWatcher.Errors:
			if !ok {
				return
			}
			cw.logger.LogError(err, "File watcher error")

		case <-cw.reloadChan:
			if cw.anyFileChanged() {
				cw.logger.Info("Certificate files changed, triggering reload")
				cw.onChange()
			}

		case <-cw.stopChan:
			return
		}
	}
}

func (cw *CertWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return slices.ContainsFunc(cw.files, func(file string) bool {
		return filepath.Clean(event.Name) == filepath.Clean(file)
	})
}

// anyFileChanged updates stored modification times and reports any advance
func (cw *CertWatcher) anyFileChanged() bool {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	changed := false
	for _, file := range cw.files {
		stat, err := os.Stat(file)
		if err != nil {
			continue
		}
		if last, ok := cw.lastModTime[file]; !ok || stat.ModTime().After(last) {
			cw.lastModTime[file] = stat.ModTime()
			changed = true
		}
	}
	return changed
}

// scheduleReload restarts the debounce timer
func (cw *CertWatcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.debounceTimer = time.AfterFunc(cw.debounceDelay, func() {
		select {
		case cw.reloadChan <- struct{}{}:
		default:
		}
	})
}
