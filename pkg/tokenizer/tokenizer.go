// Package tokenizer turns document text into candidate words.
//
// Text is first masked: spans matched by ignore patterns, and everything
// outside include patterns, are overwritten with spaces so byte offsets in
// the masked text equal offsets in the original. Words are then read from
// the masked text.
package tokenizer

import (
	"iter"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/camelcase"
)

// DefaultMinWordLength is the length below which words are not checked.
const DefaultMinWordLength = 4

// Token is a candidate word. Offset and Length are byte positions in the
// text the token was read from.
type Token struct {
	Text   string
	Offset int
	Length int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + t.Length
}

// Mask blanks the regions of text that must not be checked. When include is
// non-empty, only text covered by an include match survives. Ignore matches
// are always blanked, so ignore wins where the two overlap. Newlines are
// preserved.
func Mask(text string, ignore, include []*regexp.Regexp) string {
	if len(ignore) == 0 && len(include) == 0 {
		return text
	}

	b := []byte(text)

	if len(include) > 0 {
		keep := make([]bool, len(b))
		for _, re := range include {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				for i := loc[0]; i < loc[1]; i++ {
					keep[i] = true
				}
			}
		}
		for i := range b {
			if !keep[i] {
				blank(b, i)
			}
		}
	}

	for _, re := range ignore {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			for i := loc[0]; i < loc[1]; i++ {
				blank(b, i)
			}
		}
	}

	return string(b)
}

// Span is a half-open byte range of a text.
type Span struct {
	Start int
	End   int
}

// MaskSpans blanks the given byte ranges of text. Out of range offsets are
// clamped and newlines are preserved.
func MaskSpans(text string, spans []Span) string {
	if len(spans) == 0 {
		return text
	}
	b := []byte(text)
	for _, sp := range spans {
		start, end := max(sp.Start, 0), min(sp.End, len(b))
		for i := start; i < end; i++ {
			blank(b, i)
		}
	}
	return string(b)
}

func blank(b []byte, i int) {
	if b[i] != '\n' && b[i] != '\r' {
		b[i] = ' '
	}
}

// Words returns the words of text that are at least minLen runes long.
//
// A word is a run of letters, combining marks and internal apostrophes.
// Underscores, hyphens, whitespace and other punctuation end a word. Runs
// that contain digits and runs that look like part of a path, address or
// member access are dropped. The sequence can be ranged over any number of
// times.
func Words(text string, minLen int) iter.Seq[Token] {
	if minLen <= 0 {
		minLen = DefaultMinWordLength
	}
	return func(yield func(Token) bool) {
		i := 0
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if !isWordRune(r) {
				i += size
				continue
			}

			start := i
			hasDigit := false
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if !isWordRune(r) {
					break
				}
				if unicode.IsDigit(r) {
					hasDigit = true
				}
				i += size
			}
			if hasDigit {
				continue
			}

			tok, ok := trimApostrophes(text, start, i)
			if !ok || utf8.RuneCountInString(tok.Text) < minLen {
				continue
			}
			if strings.Contains(tok.Text, "''") || looksLikePath(text, start, i) {
				continue
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// Tokenize masks text and returns its words.
func Tokenize(text string, ignore, include []*regexp.Regexp, minLen int) iter.Seq[Token] {
	return Words(Mask(text, ignore, include), minLen)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || isApostrophe(r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

func trimApostrophes(text string, start, end int) (Token, bool) {
	for start < end {
		r, size := utf8.DecodeRuneInString(text[start:end])
		if !isApostrophe(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(text[start:end])
		if !isApostrophe(r) {
			break
		}
		end -= size
	}
	if start == end {
		return Token{}, false
	}
	return Token{Text: text[start:end], Offset: start, Length: end - start}, true
}

// looksLikePath reports whether the run text[start:end] is glued to path,
// address or member-access punctuation, as in "pkg/file", "user@host" or
// "fmt.Println". A dot only counts when a word character, ")" or "]"
// precedes it.
func looksLikePath(text string, start, end int) bool {
	if start > 0 {
		prev, size := utf8.DecodeLastRuneInString(text[:start])
		switch prev {
		case '/', '\\', '@', '$', '%':
			return true
		case '.':
			if start > size {
				before, _ := utf8.DecodeLastRuneInString(text[:start-size])
				return unicode.IsLetter(before) || unicode.IsDigit(before) || before == '_' || before == ')' || before == ']'
			}
		}
	}
	if end < len(text) {
		next, size := utf8.DecodeRuneInString(text[end:])
		switch next {
		case '/', '\\', '@':
			return true
		case '.':
			if end+size < len(text) {
				after, _ := utf8.DecodeRuneInString(text[end+size:])
				return unicode.IsLetter(after) || unicode.IsDigit(after) || after == '_'
			}
		}
	}
	return false
}

// SplitCompound splits word at hyphens and at case transitions. Apostrophes
// stay attached to the part they belong to. A word with no boundaries is
// returned as a single part.
func SplitCompound(word string) []string {
	var parts []string
	for _, piece := range strings.FieldsFunc(word, func(r rune) bool { return r == '-' || r == '_' }) {
		parts = append(parts, splitCase(piece)...)
	}
	return parts
}

func splitCase(piece string) []string {
	var out []string
	glue := false
	for _, p := range camelcase.Split(piece) {
		if strings.IndexFunc(p, func(r rune) bool { return !isApostrophe(r) }) < 0 {
			// apostrophes join the previous and next fragments
			if len(out) > 0 {
				out[len(out)-1] += p
				glue = true
			}
			continue
		}
		if glue && len(out) > 0 {
			out[len(out)-1] += p
			glue = false
			continue
		}
		out = append(out, p)
	}
	return out
}
