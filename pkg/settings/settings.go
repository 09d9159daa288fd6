// Package settings holds the spell checker configuration model and its
// typed merge rule.
//
// Scalar options are considered unset when they hold their zero value
// (AllowCompoundWords is a pointer so that false can be expressed). Merging
// is right-biased for set scalars; list options concatenate and drop
// duplicates, keeping the first occurrence.
package settings

import (
	"strings"
	"unicode"
)

// Default values used when neither the settings files nor the document set
// an option.
const (
	DefaultVersion             = "0.1"
	DefaultLanguage            = "en"
	DefaultMaxNumberOfProblems = 100
	DefaultCheckLimit          = 500 // KB
	DefaultMinWordLength       = 4
)

// Settings is the set of options recognized by the spell checker.
type Settings struct {
	Version             string   `json:"version,omitempty" toml:"version,omitempty"`
	Language            string   `json:"language,omitempty" toml:"language,omitempty"`
	Words               []string `json:"words,omitempty" toml:"words,omitempty"`
	UserWords           []string `json:"userWords,omitempty" toml:"userWords,omitempty"`
	FlagWords           []string `json:"flagWords,omitempty" toml:"flagWords,omitempty"`
	IgnoreWords         []string `json:"ignoreWords,omitempty" toml:"ignoreWords,omitempty"`
	AllowCompoundWords  *bool    `json:"allowCompoundWords,omitempty" toml:"allowCompoundWords,omitempty"`
	IgnoreRegExpList    []string `json:"ignoreRegExpList,omitempty" toml:"ignoreRegExpList,omitempty"`
	IncludeRegExpList   []string `json:"includeRegExpList,omitempty" toml:"includeRegExpList,omitempty"`
	MaxNumberOfProblems int      `json:"maxNumberOfProblems,omitempty" toml:"maxNumberOfProblems,omitempty"`
	CheckLimit          int      `json:"checkLimit,omitempty" toml:"checkLimit,omitempty"`
	MinWordLength       int      `json:"minWordLength,omitempty" toml:"minWordLength,omitempty"`
	IgnorePaths         []string `json:"ignorePaths,omitempty" toml:"ignorePaths,omitempty"`
	EnabledLanguageIDs  []string `json:"enabledLanguageIds,omitempty" toml:"enabledLanguageIds,omitempty"`
}

// Default returns the built-in settings used when no settings file can be
// read.
func Default() Settings {
	return Settings{
		Version:             DefaultVersion,
		Language:            DefaultLanguage,
		Words:               []string{"cspell", "spellspinneret"},
		AllowCompoundWords:  Bool(false),
		MaxNumberOfProblems: DefaultMaxNumberOfProblems,
		CheckLimit:          DefaultCheckLimit,
		MinWordLength:       DefaultMinWordLength,
		IgnorePaths: []string{
			"**/node_modules",
			"**/.git",
			"**/vscode-extension",
			"**/*.min.js",
		},
		EnabledLanguageIDs: []string{
			"c", "cpp", "csharp", "css", "go", "html", "java", "javascript",
			"javascriptreact", "json", "jsonc", "latex", "markdown", "php",
			"plaintext", "powershell", "python", "ruby", "rust", "scss",
			"shellscript", "text", "typescript", "typescriptreact", "yaml",
		},
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Merge folds the given settings from left to right. Later scalar values
// override earlier ones; list values are concatenated and deduplicated.
// None of the inputs are modified.
func Merge(all ...Settings) Settings {
	var out Settings
	for _, s := range all {
		if s.Version != "" {
			out.Version = s.Version
		}
		if s.Language != "" {
			out.Language = s.Language
		}
		if s.AllowCompoundWords != nil {
			out.AllowCompoundWords = Bool(*s.AllowCompoundWords)
		}
		if s.MaxNumberOfProblems != 0 {
			out.MaxNumberOfProblems = s.MaxNumberOfProblems
		}
		if s.CheckLimit != 0 {
			out.CheckLimit = s.CheckLimit
		}
		if s.MinWordLength != 0 {
			out.MinWordLength = s.MinWordLength
		}
		out.Words = appendUnique(out.Words, s.Words)
		out.UserWords = appendUnique(out.UserWords, s.UserWords)
		out.FlagWords = appendUnique(out.FlagWords, s.FlagWords)
		out.IgnoreWords = appendUnique(out.IgnoreWords, s.IgnoreWords)
		out.IgnoreRegExpList = appendUnique(out.IgnoreRegExpList, s.IgnoreRegExpList)
		out.IncludeRegExpList = appendUnique(out.IncludeRegExpList, s.IncludeRegExpList)
		out.IgnorePaths = appendUnique(out.IgnorePaths, s.IgnorePaths)
		out.EnabledLanguageIDs = appendUnique(out.EnabledLanguageIDs, s.EnabledLanguageIDs)
	}
	return out
}

func appendUnique(dst, src []string) []string {
	if len(src) == 0 {
		return dst
	}
	seen := make(map[string]struct{}, len(dst)+len(src))
	for _, v := range dst {
		seen[v] = struct{}{}
	}
	out := make([]string, len(dst), len(dst)+len(src))
	copy(out, dst)
	for _, v := range src {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Locales returns the configured locales, split on commas and spaces. The default
// language is returned when none is set.
func (s Settings) Locales() []string {
	lang := s.Language
	if strings.TrimSpace(lang) == "" {
		lang = DefaultLanguage
	}
	locales := strings.FieldsFunc(lang, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(locales) == 0 {
		return []string{DefaultLanguage}
	}
	return locales
}

// ProblemLimit returns the maximum number of issues reported per document.
func (s Settings) ProblemLimit() int {
	if s.MaxNumberOfProblems > 0 {
		return s.MaxNumberOfProblems
	}
	return DefaultMaxNumberOfProblems
}

// CheckLimitBytes returns the maximum amount of text scanned per document.
func (s Settings) CheckLimitBytes() int {
	limit := s.CheckLimit
	if limit <= 0 {
		limit = DefaultCheckLimit
	}
	return limit * 1024
}

// MinLength returns the minimum length of a checked word.
func (s Settings) MinLength() int {
	if s.MinWordLength > 0 {
		return s.MinWordLength
	}
	return DefaultMinWordLength
}

// CompoundWords reports whether compound word decomposition is enabled.
func (s Settings) CompoundWords() bool {
	return s.AllowCompoundWords != nil && *s.AllowCompoundWords
}

// LanguageEnabled reports whether documents with the given language id are
// checked. An empty EnabledLanguageIDs list enables every language, as does
// an empty language id.
func (s Settings) LanguageEnabled(languageID string) bool {
	if len(s.EnabledLanguageIDs) == 0 || languageID == "" {
		return true
	}
	for _, id := range s.EnabledLanguageIDs {
		if strings.EqualFold(id, languageID) {
			return true
		}
	}
	return false
}
