// Package watch rebuilds the CV whenever its inputs change on disk.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jonathan/orcid-cv/internal/logger"
)

// DefaultDebounce collapses the burst of events an editor or an export
// produces into one rebuild.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a watch loop.
type Options struct {
	// Paths are directories (watched recursively) or single files.
	Paths []string
	// Ignore lists base names whose changes never trigger a rebuild, such
	// as the cache file the build itself writes.
	Ignore   []string
	Debounce time.Duration
	Log      *logger.Logger
}

// RebuildFunc runs one full build. Errors are logged and watching continues.
type RebuildFunc func(ctx context.Context) error

type watcher struct {
	w      *fsnotify.Watcher
	dirs   map[string]bool
	files  map[string]bool
	ignore map[string]bool
	log    *logger.Logger
}

// Watch blocks until ctx is cancelled, calling rebuild after every settled
// batch of relevant changes.
func Watch(ctx context.Context, opts Options, rebuild RebuildFunc) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	wt := &watcher{
		w:      fw,
		dirs:   map[string]bool{},
		files:  map[string]bool{},
		ignore: map[string]bool{},
		log:    logger.OrNop(opts.Log),
	}
	for _, name := range opts.Ignore {
		wt.ignore[name] = true
	}
	for _, p := range opts.Paths {
		if err := wt.add(p); err != nil {
			return err
		}
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	wt.log.Info("watching for changes", "paths", opts.Paths)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			wt.log.Info("watcher stopped")
			return nil

		case <-fire:
			wt.log.Info("change detected, rebuilding")
			if err := rebuild(ctx); err != nil {
				wt.log.Error("rebuild failed", "error", err)
			}

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := wt.addDir(ev.Name); addErr != nil {
						wt.log.Warn("could not watch new directory", "path", ev.Name, "error", addErr)
					}
					schedule()
					continue
				}
			}
			if !wt.relevant(ev) {
				continue
			}
			wt.log.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			schedule()

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			wt.log.Error("watcher error", "error", watchErr)
		}
	}
}

func (wt *watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return wt.addDir(abs)
	}
	wt.files[abs] = true
	return wt.w.Add(filepath.Dir(abs))
}

// addDir watches root and all its subdirectories.
func (wt *watcher) addDir(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			return absErr
		}
		wt.dirs[abs] = true
		return wt.w.Add(abs)
	})
}

// relevant reports whether an event should trigger a rebuild. Files in a
// watched tree count unless ignored or hidden; files outside any tree count
// only when they were named explicitly.
func (wt *watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	if wt.ignore[base] || strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	if wt.files[abs] {
		return true
	}
	return wt.dirs[filepath.Dir(abs)]
}
