package tui

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/session"
)

// sessionFileChangedMsg signals that latest.json was rewritten by
// another process.
type sessionFileChangedMsg struct{}

// watcherClosedMsg signals that the watcher shut down.
type watcherClosedMsg struct{}

// fileWatcher surfaces external writes to latest.json so the track view
// can reload instead of clobbering them on the next toggle.
type fileWatcher struct {
	watcher    *fsnotify.Watcher
	latestPath string
}

// newFileWatcher watches the data directory for changes to latest.json.
// Watching the directory rather than the file survives the atomic
// rename the store performs on every save.
func newFileWatcher(dataDir string) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dataDir); err != nil {
		watcher.Close()
		return nil, err
	}
	return &fileWatcher{
		watcher:    watcher,
		latestPath: filepath.Join(dataDir, session.LatestFileName),
	}, nil
}

// waitForChange blocks until latest.json is written, created, or
// renamed into place. Run as a tea.Cmd; the caller re-arms it after
// each message.
func (w *fileWatcher) waitForChange() any {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return watcherClosedMsg{}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.latestPath {
				continue
			}
			return sessionFileChangedMsg{}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return watcherClosedMsg{}
			}
		}
	}
}

func (w *fileWatcher) Close() error {
	return w.watcher.Close()
}
