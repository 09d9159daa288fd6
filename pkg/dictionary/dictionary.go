// Package dictionary loads word lists per locale and answers membership
// queries for the spell checker.
package dictionary

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/sajari/fuzzy"
	"golang.org/x/text/unicode/norm"

	"github.com/Code-Monger/SpellSpinneret/pkg/tokenizer"
)

const (
	// maxCompoundDepth bounds the recursion of compound decomposition.
	maxCompoundDepth = 4

	// minCompoundPart is the shortest piece a word is split into when
	// looking for concatenated compounds.
	minCompoundPart = 3
)

// contractionSuffixes are the suffixes split off a word before looking up
// its stem. The 't suffix only combines with contraction stems.
var contractionSuffixes = []string{"'s", "'t", "'ll", "'re", "'ve", "'d", "'m"}

// defaultStems are stems that only exist in n't contractions.
var defaultStems = []string{
	"ain", "aren", "can", "couldn", "didn", "doesn", "don", "hadn", "hasn",
	"haven", "isn", "mightn", "mustn", "needn", "oughtn", "shan", "shouldn",
	"wasn", "weren", "won", "wouldn",
}

// Options control how Contains resolves a word.
type Options struct {
	AllowCompoundWords bool
}

// Lookup is implemented by Dictionary and Collection.
type Lookup interface {
	// Has reports whether the normalized word is listed.
	Has(word string) bool
	// HasFragment reports whether the normalized word is a compound fragment.
	HasFragment(word string) bool
	// HasStem reports whether the normalized word is a contraction stem.
	HasStem(word string) bool
}

// Dictionary is a set of words for one locale or word list. It is safe for
// concurrent use; Add is serialized against readers.
type Dictionary struct {
	Name string

	mu        sync.RWMutex
	words     map[string]struct{}
	fragments map[string]struct{}
	stems     map[string]struct{}
	order     []string
	hash      uint64

	modelOnce sync.Once
	model     *fuzzy.Model
}

// New builds a dictionary from a list of words. Entries are parsed as word
// list lines: "+ing" and "pre+" are compound fragments.
func New(name string, words []string) *Dictionary {
	d := &Dictionary{
		Name:      name,
		words:     make(map[string]struct{}, len(words)),
		fragments: make(map[string]struct{}),
		stems:     make(map[string]struct{}, len(defaultStems)),
	}
	for _, s := range defaultStems {
		d.stems[s] = struct{}{}
	}

	h := xxhash.New()
	for _, w := range words {
		_, _ = h.WriteString(w)
		_, _ = h.WriteString("\n")
		d.addLine(w)
	}
	d.hash = h.Sum64()
	return d
}

// ParseWordList reads a newline separated word list. Blank lines and lines
// starting with # are skipped.
func ParseWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func (d *Dictionary) addLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "+") || strings.HasSuffix(line, "+") {
		if f := Normalize(strings.Trim(line, "+")); f != "" {
			d.fragments[f] = struct{}{}
		}
		return false
	}

	w := Normalize(line)
	if _, ok := d.words[w]; ok {
		return false
	}
	d.words[w] = struct{}{}
	d.order = append(d.order, w)
	if stem, ok := strings.CutSuffix(w, "'t"); ok && stem != "" {
		d.stems[stem] = struct{}{}
	}
	return true
}

// Normalize returns the lookup form of a word: NFC, lower case, with
// typographic apostrophes folded to '.
func Normalize(word string) string {
	word = norm.NFC.String(strings.TrimSpace(word))
	word = strings.ReplaceAll(word, "’", "'")
	return strings.ToLower(word)
}

// Has reports whether the normalized word is in the dictionary.
func (d *Dictionary) Has(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.words[word]
	return ok
}

// HasFragment reports whether the normalized word is a compound fragment.
func (d *Dictionary) HasFragment(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.fragments[word]
	return ok
}

// HasStem reports whether the normalized word is a contraction stem.
func (d *Dictionary) HasStem(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.stems[word]
	return ok
}

// Contains reports whether word is spelled correctly according to d.
func (d *Dictionary) Contains(word string, opts Options) bool {
	return Contains(d, word, opts)
}

// Add inserts a word. It returns false if the word was already present.
func (d *Dictionary) Add(word string) bool {
	d.mu.Lock()
	added := d.addLine(word)
	model := d.model
	d.mu.Unlock()

	if added && model != nil {
		model.TrainWord(Normalize(word))
	}
	return added
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}

// Words returns the words in load order followed by added words.
func (d *Dictionary) Words() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Hash is the xxhash of the word list the dictionary was built from.
func (d *Dictionary) Hash() uint64 {
	return d.hash
}

// fuzzyModel returns the suggestion model, training it on first use.
func (d *Dictionary) fuzzyModel() *fuzzy.Model {
	d.modelOnce.Do(func() {
		model := fuzzy.NewModel()
		model.SetDepth(2)
		model.SetThreshold(1)
		model.SetUseAutocomplete(false)
		words := d.Words()
		model.Train(words)

		// words added while training are not in the snapshot
		d.mu.Lock()
		extra := append([]string(nil), d.order[len(words):]...)
		d.model = model
		d.mu.Unlock()
		for _, w := range extra {
			model.TrainWord(w)
		}
	})
	return d.model
}

// Collection is an ordered group of dictionaries queried as one.
type Collection []*Dictionary

// Has reports whether any dictionary has the word.
func (c Collection) Has(word string) bool {
	for _, d := range c {
		if d != nil && d.Has(word) {
			return true
		}
	}
	return false
}

// HasFragment reports whether any dictionary has the fragment.
func (c Collection) HasFragment(word string) bool {
	for _, d := range c {
		if d != nil && d.HasFragment(word) {
			return true
		}
	}
	return false
}

// HasStem reports whether any dictionary has the stem.
func (c Collection) HasStem(word string) bool {
	for _, d := range c {
		if d != nil && d.HasStem(word) {
			return true
		}
	}
	return false
}

// Contains reports whether word is spelled correctly according to c.
func (c Collection) Contains(word string, opts Options) bool {
	return Contains(c, word, opts)
}

// Contains reports whether word is known to l: as an exact case-insensitive
// entry, as a stem plus contraction suffix, or, when compound words are
// allowed, as a combination of known parts.
func Contains(l Lookup, word string, opts Options) bool {
	w := Normalize(word)
	if w == "" {
		return false
	}
	if l.Has(w) || containsContraction(l, w) {
		return true
	}
	if opts.AllowCompoundWords {
		return containsCompound(l, word, 0)
	}
	return false
}

func containsContraction(l Lookup, w string) bool {
	for _, suffix := range contractionSuffixes {
		stem, ok := strings.CutSuffix(w, suffix)
		if !ok || stem == "" {
			continue
		}
		if suffix == "'t" {
			return l.HasStem(stem)
		}
		return l.Has(stem)
	}
	return false
}

// containsCompound splits word at case and hyphen boundaries; a word with a
// single part is tried as a concatenation of known words and fragments.
func containsCompound(l Lookup, word string, depth int) bool {
	if depth > maxCompoundDepth {
		return false
	}
	parts := tokenizer.SplitCompound(word)
	if len(parts) > 1 {
		for _, p := range parts {
			if !containsPart(l, p, depth+1) {
				return false
			}
		}
		return true
	}
	return containsConcatenation(l, Normalize(word), depth)
}

func containsPart(l Lookup, part string, depth int) bool {
	w := Normalize(part)
	if w == "" {
		return false
	}
	if l.Has(w) || l.HasFragment(w) || containsContraction(l, w) {
		return true
	}
	return containsCompound(l, part, depth)
}

func containsConcatenation(l Lookup, w string, depth int) bool {
	if depth > maxCompoundDepth || utf8.RuneCountInString(w) < 2*minCompoundPart {
		return false
	}
	runes := 0
	for i := range w {
		if runes >= minCompoundPart && utf8.RuneCountInString(w[i:]) >= minCompoundPart {
			left, right := w[:i], w[i:]
			if l.Has(left) || l.HasFragment(left) {
				if l.Has(right) || l.HasFragment(right) || containsContraction(l, right) ||
					containsConcatenation(l, right, depth+1) {
					return true
				}
			}
		}
		runes++
	}
	return false
}
