// Package watch reloads the demo when its config file changes on disk.
package watch

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// ConfigChangedMsg is emitted when the watched config file changes.
type ConfigChangedMsg struct {
	Path string
}

// Debounce batches the bursts of events editors produce when saving.
const Debounce = 100 * time.Millisecond

// Watcher monitors a single config file for changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	msgChan   chan tea.Msg
	stopChan  chan struct{}
	mu        sync.Mutex
	stopped   bool
}

// New creates a watcher for path. The file does not need to exist yet; its
// directory does.
func New(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		path:      path,
		msgChan:   make(chan tea.Msg, 1),
		stopChan:  make(chan struct{}),
	}

	// The directory catches creates and atomic renames.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	_ = w.addFile()

	return w, nil
}

// addFile watches the config file itself when it exists. Failures are logged;
// the directory watch still reports creates and renames.
func (w *Watcher) addFile() error {
	if _, err := os.Stat(w.path); err != nil {
		return nil
	}
	if err := w.fsWatcher.Add(w.path); err != nil {
		slog.Debug("watch: add file", "path", w.path, "err", err)
		return err
	}
	return nil
}

// Start begins watching. The returned channel emits ConfigChangedMsg and is
// closed once the watcher stops.
func (w *Watcher) Start() <-chan tea.Msg {
	go w.run()
	return w.msgChan
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true

	close(w.stopChan)
	w.fsWatcher.Close()
}

func (w *Watcher) run() {
	defer close(w.msgChan)

	var debounceTimer *time.Timer
	name := filepath.Base(w.path)
	// Sends from the timer must not race the close above.
	var pending sync.WaitGroup
	defer pending.Wait()

	for {
		select {
		case <-w.stopChan:
			if debounceTimer != nil && debounceTimer.Stop() {
				pending.Done()
			}
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			slog.Debug("watch: event", "op", event.Op, "name", event.Name)

			if event.Op&fsnotify.Create != 0 {
				_ = w.addFile()
			}

			if debounceTimer != nil && debounceTimer.Stop() {
				pending.Done()
			}
			pending.Add(1)
			debounceTimer = time.AfterFunc(Debounce, func() {
				defer pending.Done()
				select {
				case w.msgChan <- ConfigChangedMsg{Path: w.path}:
				case <-w.stopChan:
				default:
				}
			})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Debug("watch: error", "err", err)
		}
	}
}

// Listen returns a command that waits for the next message on ch. It
// returns nil once ch is closed.
func Listen(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
