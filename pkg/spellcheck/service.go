// Package spellcheck exposes the spell checker as MCP tools.
package spellcheck

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
	"github.com/Code-Monger/SpellSpinneret/pkg/settings"
	"github.com/Code-Monger/SpellSpinneret/pkg/stats"
	"github.com/Code-Monger/SpellSpinneret/pkg/validator"
)

// Service holds the dictionary store, the validator and the settings cache
// shared by the spell checking tools.
type Service struct {
	store     *dictionary.Store
	validator *validator.Validator
	userFile  string

	mu       sync.RWMutex
	settings map[string]settings.Settings
}

// NewService creates a Service. userFile is the user settings file words are
// added to; a leading ~ is expanded.
func NewService(store *dictionary.Store, userFile string) *Service {
	if store == nil {
		store = dictionary.NewStore(nil)
	}
	if expanded, err := settings.ExpandPath(userFile); err == nil {
		userFile = expanded
	} else {
		log.Printf("[SpellCheck] Cannot expand %s: %v", userFile, err)
	}
	return &Service{
		store:     store,
		validator: validator.New(store),
		userFile:  userFile,
		settings:  make(map[string]settings.Settings),
	}
}

// Store returns the dictionary store.
func (s *Service) Store() *dictionary.Store {
	return s.store
}

// UserSettingsFile returns the expanded user settings path.
func (s *Service) UserSettingsFile() string {
	return s.userFile
}

// Settings returns the effective settings for a workspace root: defaults,
// then the user settings file, then the workspace settings file.
func (s *Service) Settings(root string) settings.Settings {
	key := root
	if abs, err := filepath.Abs(root); err == nil {
		key = abs
	}

	s.mu.RLock()
	cached, ok := s.settings[key]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	loaded := settings.LoadWorkspace(s.userFile, key)
	s.mu.Lock()
	s.settings[key] = loaded
	s.mu.Unlock()
	return loaded
}

// InvalidateSettings drops the cached settings so the files are read again
// on next use.
func (s *Service) InvalidateSettings() {
	s.mu.Lock()
	s.settings = make(map[string]settings.Settings)
	s.mu.Unlock()
}

// AddWord adds word to every configured locale and persists it to the user
// settings file or the workspace settings file of root. A *PersistError
// means the word is known for this process but was not saved.
func (s *Service) AddWord(ctx context.Context, word string, scope dictionary.Scope, root string) (string, error) {
	target := s.userFile
	if scope == dictionary.ScopeWorkspace {
		target = settings.WorkspaceSettingsPath(root)
	}
	writer := settings.NewFileWordWriter(target)

	var persistErr error
	for i, locale := range s.Settings(root).Locales() {
		var w dictionary.WordWriter
		if i == 0 {
			w = writer
		}
		if err := s.store.AddWord(ctx, locale, word, scope, w); err != nil {
			var pe *dictionary.PersistError
			if !errors.As(err, &pe) {
				return target, err
			}
			persistErr = err
		}
	}

	s.InvalidateSettings()
	stats.RecordChecks(stats.CheckStats{WordsAdded: 1})
	return target, persistErr
}

// Suggest returns up to n suggestions for word from the dictionaries of the
// given locales.
func (s *Service) Suggest(ctx context.Context, word string, locales []string, n int) ([]dictionary.Suggestion, error) {
	dicts, err := s.store.LoadAll(ctx, locales)
	if len(dicts) == 0 && err != nil {
		return nil, fmt.Errorf("no dictionary available: %w", err)
	}
	return dictionary.Suggest(dicts, word, n), nil
}
