package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Scope selects where an added word is persisted.
type Scope int

const (
	ScopeUser Scope = iota
	ScopeWorkspace
)

func (s Scope) String() string {
	switch s {
	case ScopeUser:
		return "user"
	case ScopeWorkspace:
		return "workspace"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// WordWriter persists words added at runtime.
type WordWriter interface {
	AddWords(words ...string) error
}

// Store caches one dictionary per locale. Concurrent loads of the same
// locale share a single call to the Loader.
type Store struct {
	loader Loader

	mu    sync.RWMutex
	dicts map[string]*Dictionary
	added map[string][]string
	terms map[string]*Dictionary
	group singleflight.Group
}

// NewStore returns a Store backed by loader. A nil loader uses the embedded
// word lists.
func NewStore(loader Loader) *Store {
	if loader == nil {
		loader = EmbeddedLoader()
	}
	return &Store{
		loader: loader,
		dicts:  make(map[string]*Dictionary),
		added:  make(map[string][]string),
		terms:  make(map[string]*Dictionary),
	}
}

// Load returns the dictionary for locale, loading it on first use. A failed
// load is not cached, so a later call retries.
func (s *Store) Load(ctx context.Context, locale string) (*Dictionary, error) {
	key := NormalizeLocale(locale)
	if d := s.Cached(key); d != nil {
		return d, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		if d := s.Cached(key); d != nil {
			return d, nil
		}
		d, err := s.build(ctx, key)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.install(key, d)
		s.mu.Unlock()
		log.Printf("[Dictionary] Loaded %d words for locale %s", d.Len(), key)
		return d, nil
	})
	if err != nil {
		return nil, &DictionaryLoadError{Locale: key, Underlying: err}
	}
	return v.(*Dictionary), nil
}

func (s *Store) build(ctx context.Context, key string) (*Dictionary, error) {
	words, err := s.loader.LoadWords(ctx, key)
	if err != nil {
		return nil, err
	}
	return New(key, words), nil
}

// install applies the words added at runtime to d and makes it the
// dictionary for key. The caller holds s.mu.
func (s *Store) install(key string, d *Dictionary) {
	for _, w := range s.added[key] {
		d.Add(w)
	}
	s.dicts[key] = d
}

// LoadAll loads every locale. Locales that fail are left out of the
// collection and their errors are joined.
func (s *Store) LoadAll(ctx context.Context, locales []string) (Collection, error) {
	var (
		c    Collection
		errs []error
	)
	seen := make(map[string]bool, len(locales))
	for _, locale := range locales {
		key := NormalizeLocale(locale)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		d, err := s.Load(ctx, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c = append(c, d)
	}
	return c, errors.Join(errs...)
}

// Cached returns the loaded dictionary for locale, or nil.
func (s *Store) Cached(locale string) *Dictionary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dicts[NormalizeLocale(locale)]
}

// Locales returns the loaded locales in sorted order.
func (s *Store) Locales() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.dicts))
	for k := range s.dicts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Invalidate drops the cached dictionary for locale. Words added at runtime
// are kept and reapplied on the next load.
func (s *Store) Invalidate(locale string) {
	key := NormalizeLocale(locale)
	s.mu.Lock()
	delete(s.dicts, key)
	s.mu.Unlock()
	s.group.Forget(key)
}

// Reload reads the word list for locale again and swaps it in if its content
// changed. It reports whether the dictionary was replaced.
func (s *Store) Reload(ctx context.Context, locale string) (bool, error) {
	key := NormalizeLocale(locale)
	d, err := s.build(ctx, key)
	if err != nil {
		return false, &DictionaryLoadError{Locale: key, Underlying: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.dicts[key]; ok && old.Hash() == d.Hash() {
		return false, nil
	}
	s.install(key, d)
	log.Printf("[Dictionary] Reloaded %d words for locale %s", d.Len(), key)
	return true, nil
}

// AddWord adds word to the locale's dictionary for the rest of the process
// and then persists it through w. If persisting fails the word stays known
// and a *PersistError is returned.
func (s *Store) AddWord(ctx context.Context, locale, word string, scope Scope, w WordWriter) error {
	word = Normalize(word)
	if word == "" {
		return fmt.Errorf("word is required")
	}
	key := NormalizeLocale(locale)

	s.mu.Lock()
	s.added[key] = append(s.added[key], word)
	d := s.dicts[key]
	s.mu.Unlock()

	if d == nil {
		var err error
		if d, err = s.Load(ctx, key); err != nil {
			log.Printf("[Dictionary] Word %q recorded for %s but dictionary is not loaded: %v", word, key, err)
		}
	}
	if d != nil {
		d.Add(word)
	}

	if w == nil {
		return nil
	}
	if err := w.AddWords(word); err != nil {
		log.Printf("[Dictionary] Failed to persist %q to the %s dictionary: %v", word, scope, err)
		return &PersistError{Word: word, Scope: scope, Underlying: err}
	}
	log.Printf("[Dictionary] Added %q to the %s dictionary", word, scope)
	return nil
}

// SoftwareTerms returns the dictionary of programming terms and keywords for
// a code language, or nil for languages that are not code.
func (s *Store) SoftwareTerms(languageID string) *Dictionary {
	lang, ok := GetLanguageByID(languageID)
	if !ok || !lang.Code {
		return nil
	}

	s.mu.RLock()
	d := s.terms[lang.ID]
	s.mu.RUnlock()
	if d != nil {
		return d
	}

	words := append(embeddedSoftwareTerms(), lang.Keywords...)
	d = New("softwareTerms:"+lang.ID, words)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.terms[lang.ID]; existing != nil {
		return existing
	}
	s.terms[lang.ID] = d
	return d
}
