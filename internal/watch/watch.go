// Package watch notices when the game, or anything else, rewrites the font
// documents behind fontswap's back.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a change
// is reported. The game replaces documents with several syscalls.
const DefaultDebounce = 500 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename | fsnotify.Chmod

// ChangeFunc receives the watched files that changed during one quiet period.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher reports changes to a fixed set of files.
type Watcher struct {
	files    map[string]struct{}
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// New watches files. Their parent directories must exist; the files
// themselves may come and go.
func New(files []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{files: make(map[string]struct{}), debounce: debounce, fsw: fsw}
	dirs := make(map[string]struct{})
	for _, f := range files {
		f = filepath.Clean(f)
		w.files[f] = struct{}{}
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers debounced changes to fn until ctx is done. fn runs on the
// Run goroutine, so events caused by fn itself are reported afterwards.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	log := logging.FromContext(ctx)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if _, watched := w.files[name]; !watched || !ev.Op.Has(relevantOps) {
				continue
			}
			log.Trace().Str("file", name).Str("op", ev.Op.String()).Msg("document event")
			pending[name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			sort.Strings(changed)
			clear(pending)
			log.Debug().Strs("files", changed).Msg("documents changed")
			fn(ctx, changed)
		}
	}
}
