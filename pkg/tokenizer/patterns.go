package tokenizer

import (
	"log"
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"
)

// Named patterns that may be referenced by name from ignoreRegExpList and
// includeRegExpList.
var namedPatterns = map[string]*regexp.Regexp{
	"Urls":                xurls.Relaxed(),
	"Email":               regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)+`),
	"HexValues":           regexp.MustCompile(`(?i)\b0x[0-9a-f]+\b|#[0-9a-f]{3,8}\b`),
	"Base64":              regexp.MustCompile(`[A-Za-z0-9+/]{40,}={0,2}`),
	"EscapeCharacters":    regexp.MustCompile(`\\(?:[abfnrtv0]|x[0-9a-fA-F]{2}|u[0-9a-fA-F]{4})`),
	"CodeFence":           regexp.MustCompile("(?s)```.*?(?:```|\\z)|~~~.*?(?:~~~|\\z)"),
	"Markup":              regexp.MustCompile(`<[^<>\n]*>|&[a-zA-Z]+;`),
	"PublicKey":           regexp.MustCompile(`(?s)-----BEGIN [A-Z ]+-----.*?-----END [A-Z ]+-----`),
	"SpellCheckerDisable": regexp.MustCompile(`(?ism)(?:^|[/#*;%'"!-])[ \t]*(?:cspell|spell-?checker)::?[ \t]*disable\b.*?(?:(?:cspell|spell-?checker)::?[ \t]*enable\b|\z)`),
	"InDocSettings":       regexp.MustCompile(`(?im)(?:^|[/#*;%'"!-])[ \t]*(?:cspell|spell-?checker)::?[^\r\n]*`),
	"Everything":          regexp.MustCompile(`(?s).+`),
}

// DefaultIgnorePatterns are masked in every document regardless of
// settings.
var DefaultIgnorePatterns = []string{
	"Urls",
	"Email",
	"HexValues",
	"EscapeCharacters",
	"CodeFence",
	"Markup",
	"PublicKey",
	"SpellCheckerDisable",
}

// regExpLiteral matches a /body/flags pattern.
var regExpLiteral = regexp.MustCompile(`^/(.*)/([a-z]*)$`)

// NamedPattern returns the built-in pattern registered under name.
func NamedPattern(name string) (*regexp.Regexp, bool) {
	re, ok := namedPatterns[name]
	return re, ok
}

// CompilePatterns compiles each pattern with CompilePattern, skipping empty
// entries.
func CompilePatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if re := CompilePattern(p); re != nil {
			out = append(out, re)
		}
	}
	return out
}

// CompilePattern turns a pattern string into a regexp. The string may be the
// name of a built-in pattern, a /body/flags literal, or a bare expression.
//
// A pattern that fails to compile is matched as a literal substring: the
// body of a /body/flags literal or the bare pattern text. The i flag is kept
// in that case. CompilePattern returns nil only for an empty pattern.
func CompilePattern(pattern string) *regexp.Regexp {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	if re, ok := namedPatterns[pattern]; ok {
		return re
	}

	body := pattern
	prefix := ""
	literalPrefix := ""
	if m := regExpLiteral.FindStringSubmatch(pattern); m != nil {
		body = m[1]
		prefix, literalPrefix = flagPrefix(m[2])
	}

	re, err := regexp.Compile(prefix + body)
	if err == nil {
		return re
	}

	log.Printf("[Tokenizer] Pattern %q is not a valid expression, matching it literally: %v", pattern, err)
	return regexp.MustCompile(literalPrefix + regexp.QuoteMeta(body))
}

// flagPrefix converts JavaScript style regexp flags into an inline flag
// group. The second result keeps only the flags that still apply to a
// literal match.
func flagPrefix(flags string) (string, string) {
	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline.String(), f) {
				inline.WriteRune(f)
			}
		}
	}
	if inline.Len() == 0 {
		return "", ""
	}
	prefix := "(?" + inline.String() + ")"
	if strings.ContainsRune(inline.String(), 'i') {
		return prefix, "(?i)"
	}
	return prefix, ""
}
