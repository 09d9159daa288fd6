package dictionary

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed data/*.txt
var embeddedFS embed.FS

// softwareTermsFile is the embedded list shared by all code languages.
const softwareTermsFile = "data/softwareTerms.txt"

// Loader returns the words of a locale.
type Loader interface {
	LoadWords(ctx context.Context, locale string) ([]string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, locale string) ([]string, error)

// LoadWords calls f.
func (f LoaderFunc) LoadWords(ctx context.Context, locale string) ([]string, error) {
	return f(ctx, locale)
}

// NormalizeLocale lower-cases a locale code and uses - as the separator.
func NormalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}

// candidates returns the word list names tried for locale: the full code
// first, then the bare language.
func candidates(locale string) []string {
	locale = NormalizeLocale(locale)
	names := []string{locale}
	if lang, _, ok := strings.Cut(locale, "-"); ok && lang != "" {
		names = append(names, lang)
	}
	return names
}

// FSLoader reads <locale>.txt word lists from a file system.
type FSLoader struct {
	FS  fs.FS
	Dir string
}

// LoadWords implements Loader.
func (l FSLoader) LoadWords(ctx context.Context, locale string) ([]string, error) {
	for _, name := range candidates(locale) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := l.FS.Open(pathJoin(l.Dir, name+".txt"))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		words, err := ParseWordList(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading word list %s: %w", name, err)
		}
		return words, nil
	}
	return nil, ErrNoWordList
}

func pathJoin(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}

// EmbeddedLoader returns the loader for the word lists compiled into the
// binary.
func EmbeddedLoader() Loader {
	return FSLoader{FS: embeddedFS, Dir: "data"}
}

// DirLoader reads <locale>.txt word lists from directories on disk. Lists
// for the same locale found in several directories are concatenated.
type DirLoader struct {
	Dirs []string
}

// LoadWords implements Loader.
func (l DirLoader) LoadWords(ctx context.Context, locale string) ([]string, error) {
	var words []string
	found := false
	for _, dir := range l.Dirs {
		w, err := FSLoader{FS: os.DirFS(dir)}.LoadWords(ctx, locale)
		if errors.Is(err, ErrNoWordList) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Join(dir, NormalizeLocale(locale)+".txt"), err)
		}
		found = true
		words = append(words, w...)
	}
	if !found {
		return nil, ErrNoWordList
	}
	return words, nil
}

// MultiLoader concatenates the words of every loader that has a list for
// the locale. It fails only if none of them does or one of them errors.
type MultiLoader []Loader

// LoadWords implements Loader.
func (m MultiLoader) LoadWords(ctx context.Context, locale string) ([]string, error) {
	var words []string
	found := false
	for _, l := range m {
		w, err := l.LoadWords(ctx, locale)
		if errors.Is(err, ErrNoWordList) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = true
		words = append(words, w...)
	}
	if !found {
		return nil, ErrNoWordList
	}
	return words, nil
}

// DefaultLoader returns the embedded word lists extended by any lists found
// in dirs.
func DefaultLoader(dirs ...string) Loader {
	if len(dirs) == 0 {
		return EmbeddedLoader()
	}
	return MultiLoader{EmbeddedLoader(), DirLoader{Dirs: dirs}}
}

func embeddedSoftwareTerms() []string {
	f, err := embeddedFS.Open(softwareTermsFile)
	if err != nil {
		return nil
	}
	defer f.Close()
	words, _ := ParseWordList(f)
	return words
}
