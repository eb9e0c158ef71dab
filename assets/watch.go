package assets

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports rewrites of a fixed set of files on C, emitting each
// path as it was originally given. Parent directories are watched so
// editors that replace files by rename are seen too. Sends never block;
// a full channel drops the event, which is fine because consumers treat
// any event as "reload now".
type Watcher struct {
	C chan string

	fw    *fsnotify.Watcher
	names map[string]string
}

// NewWatcher starts watching the given files. Empty paths are skipped;
// with nothing left to watch the returned Watcher is inert.
func NewWatcher(paths ...string) (*Watcher, error) {
	w := &Watcher{
		C:     make(chan string, 8),
		names: make(map[string]string),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("assets: watch %s: %w", p, err)
		}
		w.names[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	if len(dirs) == 0 {
		return w, nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("assets: watch: %w", err)
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, fmt.Errorf("assets: watch %s: %w", d, err)
		}
	}
	w.fw = fw
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, watched := w.names[filepath.Clean(ev.Name)]
			if !watched {
				continue
			}
			select {
			case w.C <- name:
			default:
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher. C is not closed; pending events may still be
// drained after Close returns.
func (w *Watcher) Close() error {
	if w.fw == nil {
		return nil
	}
	return w.fw.Close()
}
