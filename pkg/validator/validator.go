// Package validator turns a document into a sequence of spelling issues.
package validator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
	"github.com/Code-Monger/SpellSpinneret/pkg/directive"
	"github.com/Code-Monger/SpellSpinneret/pkg/settings"
	"github.com/Code-Monger/SpellSpinneret/pkg/tokenizer"
)

const (
	// Source identifies the checker in reported issues.
	Source = "cSpell Checker"

	// SeverityInformation is the severity of every reported issue.
	SeverityInformation = "information"
)

// Document is a snapshot of the text to check.
type Document struct {
	URI        string
	LanguageID string
	Text       string
}

// Range is a zero based line/column span. Columns count runes.
type Range struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// Issue is a reported misspelling. Offset and Length are byte positions in
// the document text.
type Issue struct {
	Text     string `json:"text"`
	Offset   int    `json:"offset"`
	Length   int    `json:"length"`
	Range    Range  `json:"range"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Source   string `json:"source"`
}

// Validator checks documents against the dictionaries of a Store. It keeps
// no per-document state, so one Validator can serve concurrent calls.
type Validator struct {
	store *dictionary.Store

	mu     sync.Mutex
	warned map[string]bool
}

// New returns a Validator backed by store.
func New(store *dictionary.Store) *Validator {
	return &Validator{
		store:  store,
		warned: make(map[string]bool),
	}
}

// Store returns the dictionary store used by the validator.
func (v *Validator) Store() *dictionary.Store {
	return v.store
}

// ErrNoDictionaries is wrapped by the error Validate returns when none of
// the configured locales could be loaded.
var ErrNoDictionaries = errors.New("no dictionary available")

// Validate returns the issues of doc under base settings merged with the
// directives found in the document.
//
// Only the first checkLimit KB of text is scanned and at most
// maxNumberOfProblems issues are produced. Locales whose dictionary cannot
// be loaded are skipped and their load errors are returned as a warning
// alongside the issues found with the locales that did load. If no locale
// loads, the sequence is empty and the error wraps ErrNoDictionaries. The
// returned sequence may be ranged over more than once.
func (v *Validator) Validate(ctx context.Context, doc Document, base settings.Settings) (iter.Seq[Issue], error) {
	text := Truncate(doc.Text, base.CheckLimitBytes())
	found := directive.Find(text)
	s := settings.Merge(base, directive.Merge(found))

	if !s.LanguageEnabled(doc.LanguageID) {
		return empty, nil
	}

	dicts, err := v.store.LoadAll(ctx, s.Locales())
	if err != nil {
		v.warn(doc.URI, err)
		if len(dicts) == 0 {
			return empty, fmt.Errorf("%w: %w", ErrNoDictionaries, err)
		}
	}

	spans := make([]tokenizer.Span, len(found))
	for i, d := range found {
		spans[i] = tokenizer.Span{Start: d.Start, End: d.End}
	}

	c := make(dictionary.Collection, 0, len(dicts)+2)
	c = append(c, dictionary.New("settings", append(append([]string(nil), s.Words...), s.UserWords...)))
	if terms := v.store.SoftwareTerms(doc.LanguageID); terms != nil {
		c = append(c, terms)
	}
	c = append(c, dicts...)

	check := &checker{
		text:    text,
		spans:   spans,
		ignore:  tokenizer.CompilePatterns(append(append([]string(nil), tokenizer.DefaultIgnorePatterns...), s.IgnoreRegExpList...)),
		include: tokenizer.CompilePatterns(s.IncludeRegExpList),
		minLen:  s.MinLength(),
		limit:   s.ProblemLimit(),
		flagged: wordSet(s.FlagWords),
		ignored: wordSet(s.IgnoreWords),
		dicts:   c,
		opts:    dictionary.Options{AllowCompoundWords: s.CompoundWords()},
	}
	return check.issues, err
}

// Truncate cuts text to at most limit bytes without splitting a rune.
func Truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

func (v *Validator) warn(uri string, err error) {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for _, e := range errs {
		key := e.Error()
		var loadErr *dictionary.DictionaryLoadError
		if errors.As(e, &loadErr) {
			key = loadErr.Locale
		}
		if v.warned[key] {
			continue
		}
		v.warned[key] = true
		log.Printf("[Validator] Skipping %s: %v", uri, e)
	}
}

func empty(func(Issue) bool) {}

type checker struct {
	text    string
	spans   []tokenizer.Span
	ignore  []*regexp.Regexp
	include []*regexp.Regexp
	minLen  int
	limit   int
	flagged map[string]bool
	ignored map[string]bool
	dicts   dictionary.Collection
	opts    dictionary.Options
}

func (c *checker) issues(yield func(Issue) bool) {
	lines := newLineIndex(c.text)
	count := 0
	masked := tokenizer.MaskSpans(tokenizer.Mask(c.text, c.ignore, c.include), c.spans)
	for tok := range tokenizer.Words(masked, c.minLen) {
		if count >= c.limit {
			return
		}

		word := dictionary.Normalize(tok.Text)
		var message string
		switch {
		case c.flagged[word]:
			message = fmt.Sprintf("Forbidden word: %q", tok.Text)
		case c.ignored[word]:
			continue
		case c.dicts.Contains(tok.Text, c.opts):
			continue
		default:
			message = fmt.Sprintf("Unknown word: %q", tok.Text)
		}

		count++
		issue := Issue{
			Text:     tok.Text,
			Offset:   tok.Offset,
			Length:   tok.Length,
			Range:    lines.rangeOf(tok.Offset, tok.End()),
			Message:  message,
			Severity: SeverityInformation,
			Source:   Source,
		}
		if !yield(issue) {
			return
		}
	}
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if n := dictionary.Normalize(w); n != "" {
			set[n] = true
		}
	}
	return set
}
