package dictionary

import (
	"errors"
	"fmt"
)

// ErrNoWordList is returned by loaders that have no word list for a locale.
var ErrNoWordList = errors.New("no word list for locale")

// DictionaryLoadError reports a locale whose word lists could not be loaded.
type DictionaryLoadError struct {
	Locale     string
	Underlying error
}

func (e *DictionaryLoadError) Error() string {
	return fmt.Sprintf("failed to load dictionary for %q: %v", e.Locale, e.Underlying)
}

func (e *DictionaryLoadError) Unwrap() error {
	return e.Underlying
}

// PersistError reports a word that was added in memory but could not be
// written to its settings file. The in-memory addition is kept.
type PersistError struct {
	Word       string
	Scope      Scope
	Underlying error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("word %q added for this session but not saved to the %s dictionary: %v", e.Word, e.Scope, e.Underlying)
}

func (e *PersistError) Unwrap() error {
	return e.Underlying
}
