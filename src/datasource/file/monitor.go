// monitor.go
package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileMonitor watches the directory holding the raw data file and
// reports writes to that one file. Watching the directory rather than
// the file survives editors and downloads that replace the file.
type FileMonitor struct {
	target  string
	watcher *fsnotify.Watcher
	lastMod time.Time
	mu      sync.Mutex
}

// NewFileMonitor sets up a watch on the directory containing target.
func NewFileMonitor(target string) (*FileMonitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &FileMonitor{
		target:  target,
		watcher: watcher,
	}, nil
}

// Close releases the underlying watcher.
func (m *FileMonitor) Close() error {
	return m.watcher.Close()
}

// Watch blocks, invoking handler whenever the target file is written
// with a newer modification time. It returns when the watcher is closed
// or fails.
func (m *FileMonitor) Watch(handler func(string)) error {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(m.target) {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			m.mu.Lock()
			if info.ModTime().After(m.lastMod) {
				m.lastMod = info.ModTime()
				go handler(event.Name)
			}
			m.mu.Unlock()
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
