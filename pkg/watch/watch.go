// Package watch reloads dictionaries and settings when their files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
)

// DefaultDebounce is the quiet period after the last event before changes
// are applied.
const DefaultDebounce = 200 * time.Millisecond

// Config selects the files to watch.
type Config struct {
	// DictDirs hold <locale>.txt word lists.
	DictDirs []string
	// SettingsFiles are passed to OnSettingsChange when they change.
	SettingsFiles []string
	// OnSettingsChange is called from the Run goroutine.
	OnSettingsChange func(path string)
	Debounce         time.Duration
}

// Watcher applies file changes to a dictionary store.
type Watcher struct {
	store    *dictionary.Store
	cfg      Config
	fsw      *fsnotify.Watcher
	dictDirs map[string]bool
	settings map[string]bool
}

// New creates a watcher. Directories that do not exist are skipped.
func New(store *dictionary.Store, cfg Config) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		store:    store,
		cfg:      cfg,
		fsw:      fsw,
		dictDirs: make(map[string]bool),
		settings: make(map[string]bool),
	}

	watched := make(map[string]bool)
	add := func(dir string) {
		if watched[dir] {
			return
		}
		if err := fsw.Add(dir); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Printf("[Watch] Cannot watch %s: %v", dir, err)
			}
			return
		}
		watched[dir] = true
	}

	for _, dir := range cfg.DictDirs {
		dir = clean(dir)
		w.dictDirs[dir] = true
		add(dir)
	}
	for _, file := range cfg.SettingsFiles {
		file = clean(file)
		w.settings[file] = true
		add(filepath.Dir(file))
	}
	log.Printf("[Watch] Watching %d directories", len(watched))
	return w, nil
}

func clean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Clean(path)
}

// Run processes events until ctx is cancelled and then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			if !w.relevant(path) {
				continue
			}
			pending[path] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			timerC = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[Watch] Watcher error: %v", err)

		case <-timerC:
			timerC = nil
			w.flush(ctx, pending)
			pending = make(map[string]struct{})
		}
	}
}

func (w *Watcher) relevant(path string) bool {
	if w.settings[path] {
		return true
	}
	return w.dictDirs[filepath.Dir(path)] && strings.EqualFold(filepath.Ext(path), ".txt")
}

func (w *Watcher) flush(ctx context.Context, paths map[string]struct{}) {
	log.Printf("[Watch] Processing %d changed files", len(paths))
	for path := range paths {
		if w.settings[path] {
			if w.cfg.OnSettingsChange != nil {
				w.cfg.OnSettingsChange(path)
			}
			continue
		}
		w.reloadDictionary(ctx, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
}

func (w *Watcher) reloadDictionary(ctx context.Context, locale string) {
	if w.store.Cached(locale) == nil {
		w.store.Invalidate(locale)
		return
	}
	changed, err := w.store.Reload(ctx, locale)
	if err != nil {
		log.Printf("[Watch] Reload of %s failed, dropping cached dictionary: %v", locale, err)
		w.store.Invalidate(locale)
		return
	}
	if changed {
		log.Printf("[Watch] Dictionary %s reloaded", locale)
	}
}
