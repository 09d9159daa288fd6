// Package directive parses spell checker settings embedded in document
// text, such as
//
//	// cSpell:words foobar bazqux
//	# spell-checker: ignoreRegExp /0x[0-9a-f]+/i
//
// Unknown or malformed directives are ignored.
package directive

import (
	"regexp"
	"strings"

	"github.com/Code-Monger/SpellSpinneret/pkg/settings"
)

// marker finds a directive: a spell checker keyword at the start of a line
// or after a comment character. Group 1 is the keyword and group 2 the rest
// of the line.
var marker = regexp.MustCompile(`(?im)(?:^|[/#*;%'"!-])[ \t]*((?:cspell|spell-?checker)::?)[ \t]*([^\r\n]*)`)

var (
	compoundWords = regexp.MustCompile(`(?i)^(enable|disable)CompoundWords\b`)
	wordsKeyword  = regexp.MustCompile(`(?i)^words?(?:\s+|$)`)
	ignoreKeyword = regexp.MustCompile(`(?i)^ignore(?:Words?)?(?:\s+|$)`)
	flagKeyword   = regexp.MustCompile(`(?i)^flagWords?(?:\s+|$)`)
	ignoreRegExp  = regexp.MustCompile(`(?i)^ignoreRegExp(?:\s+|$)`)
	includeRegExp = regexp.MustCompile(`(?i)^includeRegExp(?:\s+|$)`)
	localeKeyword = regexp.MustCompile(`(?i)^(?:local|locale|language)(?:\s+|$)`)

	regExpLiteral = regexp.MustCompile(`^/((?:\\.|[^/\\])+)/([a-z]*)`)
	bareToken     = regexp.MustCompile(`^(?:\\ |\S)+`)
)

// commentClosers end a directive's arguments, so that
// "/* cSpell:words foo */ code" does not add "*/" or "code" as words.
var commentClosers = []string{"*/", "-->", "#>", "%>", "?>"}

// Directive is a recognized directive. Start and End are the byte offsets of
// the text it occupies, from the keyword to the end of its arguments.
type Directive struct {
	Settings settings.Settings
	Start    int
	End      int
}

// Find returns the directives of text in document order. Markers whose
// keyword is not recognized are left out.
func Find(text string) []Directive {
	var out []Directive
	for _, m := range marker.FindAllStringSubmatchIndex(text, -1) {
		bodyStart, bodyEnd := m[4], m[5]
		s, n, ok := parse(text[bodyStart:bodyEnd])
		if !ok {
			continue
		}
		out = append(out, Directive{Settings: s, Start: m[2], End: bodyStart + n})
	}
	return out
}

// Parse scans text for directives and folds them, in document order, into a
// single settings value using settings.Merge.
func Parse(text string) settings.Settings {
	return Merge(Find(text))
}

// Merge folds the settings of directives into one value.
func Merge(directives []Directive) settings.Settings {
	fragments := make([]settings.Settings, len(directives))
	for i, d := range directives {
		fragments[i] = d.Settings
	}
	return settings.Merge(fragments...)
}

// ParseDirective parses the text following a directive marker. The second
// result is false when the keyword is not recognized.
func ParseDirective(body string) (settings.Settings, bool) {
	s, _, ok := parse(strings.TrimSpace(body))
	return s, ok
}

// parse parses a directive body with no leading space and returns the
// number of bytes its arguments occupy.
func parse(body string) (settings.Settings, int, bool) {
	if m := compoundWords.FindStringSubmatchIndex(body); m != nil {
		return settings.Settings{
			AllowCompoundWords: settings.Bool(strings.EqualFold(body[m[2]:m[3]], "enable")),
		}, m[1], true
	}
	if rest, at, ok := cut(ignoreRegExp, body); ok {
		if p, n := parsePattern(rest); p != "" {
			return settings.Settings{IgnoreRegExpList: []string{p}}, at + n, true
		}
		return settings.Settings{}, 0, false
	}
	if rest, at, ok := cut(includeRegExp, body); ok {
		if p, n := parsePattern(rest); p != "" {
			return settings.Settings{IncludeRegExpList: []string{p}}, at + n, true
		}
		return settings.Settings{}, 0, false
	}

	end := closerIndex(body)
	args := body[:end]
	if rest, _, ok := cut(wordsKeyword, args); ok {
		return settings.Settings{Words: strings.Fields(rest)}, end, true
	}
	if rest, _, ok := cut(flagKeyword, args); ok {
		return settings.Settings{FlagWords: strings.Fields(rest)}, end, true
	}
	if rest, _, ok := cut(ignoreKeyword, args); ok {
		return settings.Settings{IgnoreWords: strings.Fields(rest)}, end, true
	}
	if rest, _, ok := cut(localeKeyword, args); ok {
		lang := strings.Join(strings.Fields(rest), " ")
		if lang == "" {
			return settings.Settings{}, 0, false
		}
		return settings.Settings{Language: lang}, end, true
	}
	return settings.Settings{}, 0, false
}

func cut(keyword *regexp.Regexp, body string) (string, int, bool) {
	loc := keyword.FindStringIndex(body)
	if loc == nil {
		return "", 0, false
	}
	return body[loc[1]:], loc[1], true
}

// parsePattern extracts a pattern argument: a /body/flags literal, or the
// first run of non-space characters where "\ " stands for a space. It also
// returns the number of bytes of args the pattern used.
func parsePattern(args string) (string, int) {
	if m := regExpLiteral.FindString(args); m != "" {
		return m, len(m)
	}
	tok := bareToken.FindString(args[:closerIndex(args)])
	return strings.ReplaceAll(tok, `\ `, " "), len(tok)
}

// closerIndex returns the offset of the first comment closer in body, or
// len(body).
func closerIndex(body string) int {
	end := len(body)
	for _, c := range commentClosers {
		if i := strings.Index(body, c); i >= 0 && i < end {
			end = i
		}
	}
	return end
}
