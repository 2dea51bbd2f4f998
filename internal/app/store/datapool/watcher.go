package datapool

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the datapool when its backing file is edited outside the
// process (ops fixing content by hand is the expected case). The store's
// own flushes are never re-read: reloads are suppressed while a flush is in
// flight, and a disk snapshot that raced a Replace or matches the current
// document is refused by the store's generation check.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}
}

// NewWatcher starts watching the store's backing file. Call Close to stop.
func NewWatcher(ctx context.Context, store *Store) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors and our own temp+rename
	// flushes replace the inode, which breaks a direct file watch.
	if err := fw.Add(filepath.Dir(store.path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		store:    store,
		watcher:  fw,
		debounce: 500 * time.Millisecond,
		done:     make(chan struct{}),
	}
	go w.run(ctx)

	store.log.Info("datapool watcher started", zap.String("path", store.path))
	return w, nil
}

// Close stops the watcher and waits for its loop to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.store.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Debounce rapid saves.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.store.log.Warn("datapool watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	gen, pending := w.store.flushState()
	if pending > 0 {
		// One of the store's own flushes is mid-flight, so the file has not
		// settled yet. Its rename retriggers the watcher once it lands.
		return
	}

	raw, err := os.ReadFile(w.store.path)
	if err != nil {
		w.store.log.Warn("datapool reload: read failed", zap.Error(err))
		return
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		// A half-saved or malformed edit must not clobber the good in-memory
		// document.
		w.store.log.Warn("datapool reload: parse failed, keeping current document", zap.Error(err))
		return
	}

	if !w.store.installFromDisk(doc, gen) {
		return
	}
	w.store.log.Info("datapool reloaded from external edit", zap.String("path", w.store.path))
}
