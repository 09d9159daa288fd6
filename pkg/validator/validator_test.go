package validator

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
	"github.com/Code-Monger/SpellSpinneret/pkg/settings"
)

func newValidator() *Validator {
	return New(dictionary.NewStore(nil))
}

func validate(t *testing.T, v *Validator, doc Document, s settings.Settings) []Issue {
	t.Helper()
	seq, err := v.Validate(context.Background(), doc, s)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func texts(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Text
	}
	return out
}

func TestValidateSentence(t *testing.T) {
	v := newValidator()
	doc := Document{URI: "file:///fox.txt", LanguageID: "plaintext", Text: "The quick brouwn fox jumpped over the lazzy dog."}

	issues := validate(t, v, doc, settings.Default())
	require.Len(t, issues, 3)
	assert.Equal(t, []string{"brouwn", "jumpped", "lazzy"}, texts(issues))
	assert.Equal(t, []int{10, 21, 38}, []int{issues[0].Offset, issues[1].Offset, issues[2].Offset})

	first := issues[0]
	assert.Equal(t, 6, first.Length)
	assert.Equal(t, `Unknown word: "brouwn"`, first.Message)
	assert.Equal(t, SeverityInformation, first.Severity)
	assert.Equal(t, Source, first.Source)
	assert.Equal(t, Range{StartLine: 0, StartColumn: 10, EndLine: 0, EndColumn: 16}, first.Range)
}

func TestValidateKeywordsInCode(t *testing.T) {
	v := newValidator()
	text := "constructor const prototype type typeof null undefined"

	issues := validate(t, v, Document{LanguageID: "javascript", Text: text}, settings.Default())
	assert.Empty(t, issues)

	issues = validate(t, v, Document{LanguageID: "plaintext", Text: text}, settings.Default())
	assert.Contains(t, texts(issues), "prototype")
}

func TestValidateDirectiveWords(t *testing.T) {
	v := newValidator()

	issues := validate(t, v, Document{Text: "// cSpell:words foobar\nquick foobar here"}, settings.Default())
	assert.Empty(t, issues)

	issues = validate(t, v, Document{Text: "quick foobar here"}, settings.Default())
	assert.Equal(t, []string{"foobar"}, texts(issues), "directive words do not leak into other documents")
}

func TestValidateProseMentioningSpellchecker(t *testing.T) {
	v := newValidator()

	issues := validate(t, v, Document{Text: "Our spellchecker: thiss sentense is brokenn"}, settings.Default())
	assert.Equal(t, []string{"spellchecker", "thiss", "sentense", "brokenn"}, texts(issues))

	issues = validate(t, v, Document{Text: "Our spellchecker: words brouwn\nbrouwn again"}, settings.Default())
	assert.Equal(t, []string{"spellchecker", "brouwn", "brouwn"}, texts(issues), "prose does not add words")
}

func TestValidateChecksCodeAfterDirective(t *testing.T) {
	v := newValidator()

	issues := validate(t, v, Document{Text: "/* cSpell:words foobar */ brouwn foobar"}, settings.Default())
	require.Len(t, issues, 1)
	assert.Equal(t, "brouwn", issues[0].Text)
	assert.Equal(t, 26, issues[0].Offset)

	issues = validate(t, v, Document{Text: "<!-- cspell:ignore zork --> zork lazzy"}, settings.Default())
	assert.Equal(t, []string{"lazzy"}, texts(issues))
}

func TestValidateUnknownDirectiveIsChecked(t *testing.T) {
	v := newValidator()
	issues := validate(t, v, Document{Text: "// cSpell:wordz brouwn"}, settings.Default())
	assert.Equal(t, []string{"cSpell", "wordz", "brouwn"}, texts(issues))
}

func TestValidateDirectiveCompoundWords(t *testing.T) {
	v := newValidator()

	issues := validate(t, v, Document{Text: "the spellchecker"}, settings.Default())
	assert.Equal(t, []string{"spellchecker"}, texts(issues))

	issues = validate(t, v, Document{Text: "/* cSpell:enableCompoundWords */\nthe spellchecker"}, settings.Default())
	assert.Empty(t, issues)
}

func TestValidateMaxProblems(t *testing.T) {
	v := newValidator()
	var words []string
	for i := 0; i < 20; i++ {
		words = append(words, "zzyzx"+strings.Repeat("q", i))
	}
	doc := Document{Text: strings.Join(words, " ")}

	s := settings.Default()
	s.MaxNumberOfProblems = 3
	issues := validate(t, v, doc, s)
	assert.Len(t, issues, 3)
	assert.Equal(t, words[:3], texts(issues))

	assert.Len(t, validate(t, v, doc, settings.Default()), 20)
}

func TestValidateShortWordsNeverReported(t *testing.T) {
	v := newValidator()
	issues := validate(t, v, Document{Text: "xq zzq qqz brr a bc"}, settings.Default())
	assert.Empty(t, issues)
}

func TestValidateIsIdempotent(t *testing.T) {
	v := newValidator()
	doc := Document{Text: "The quick brouwn fox jumpped over the lazzy dog."}

	seq, err := v.Validate(context.Background(), doc, settings.Default())
	require.NoError(t, err)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	again := validate(t, v, doc, settings.Default())
	assert.Equal(t, first, again)
}

func TestValidateCheckLimit(t *testing.T) {
	v := newValidator()
	doc := Document{Text: strings.Repeat("quick ", 170) + "    brouwn"}

	s := settings.Default()
	s.CheckLimit = 1
	assert.Empty(t, validate(t, v, doc, s))

	s.CheckLimit = 2
	assert.Equal(t, []string{"brouwn"}, texts(validate(t, v, doc, s)))
}

func TestTruncateKeepsRunes(t *testing.T) {
	assert.Equal(t, "ab", Truncate("abé", 3))
	assert.Equal(t, "abé", Truncate("abé", 4))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestValidateFlagAndIgnoreWords(t *testing.T) {
	v := newValidator()
	s := settings.Default()
	s.FlagWords = []string{"Quick"}
	s.IgnoreWords = []string{"brouwn"}

	issues := validate(t, v, Document{Text: "quick brouwn jumpped"}, s)
	require.Len(t, issues, 2)
	assert.Equal(t, `Forbidden word: "quick"`, issues[0].Message)
	assert.Equal(t, `Unknown word: "jumpped"`, issues[1].Message)
}

func TestValidateSettingsWords(t *testing.T) {
	v := newValidator()
	s := settings.Default()
	s.Words = []string{"brouwn"}
	s.UserWords = []string{"jumpped"}

	assert.Empty(t, validate(t, v, Document{Text: "Brouwn jumpped"}, s))
}

func TestValidateRanges(t *testing.T) {
	v := newValidator()
	issues := validate(t, v, Document{Text: "quick\n  ééé brouwn\r\nlazzy"}, settings.Default())
	require.Len(t, issues, 2)

	assert.Equal(t, Range{StartLine: 1, StartColumn: 6, EndLine: 1, EndColumn: 12}, issues[0].Range)
	assert.Equal(t, Range{StartLine: 2, StartColumn: 0, EndLine: 2, EndColumn: 5}, issues[1].Range)
}

func TestValidateIgnoreRegExpDirective(t *testing.T) {
	v := newValidator()
	text := "// cSpell:ignoreRegExp /qq[a-z]+/\nquick qqbrouwn lazzy"
	assert.Equal(t, []string{"lazzy"}, texts(validate(t, v, Document{Text: text}, settings.Default())))
}

func TestValidateDisabledLanguage(t *testing.T) {
	v := newValidator()
	issues := validate(t, v, Document{LanguageID: "binary", Text: "brouwn"}, settings.Default())
	assert.Empty(t, issues)
}

func TestValidateDictionaryLoadFailure(t *testing.T) {
	v := newValidator()
	s := settings.Default()
	s.Language = "xx"

	seq, err := v.Validate(context.Background(), Document{Text: "brouwn"}, s)
	var loadErr *dictionary.DictionaryLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "xx", loadErr.Locale)
	assert.ErrorIs(t, err, ErrNoDictionaries)
	assert.Empty(t, slices.Collect(seq))

	_, err = v.Validate(context.Background(), Document{Text: "brouwn"}, s)
	require.Error(t, err, "every call reports the failure")
}

func TestValidatePartialDictionaryLoadFailure(t *testing.T) {
	v := newValidator()
	s := settings.Default()
	s.Language = "en,zz"

	seq, err := v.Validate(context.Background(), Document{Text: "The quick brouwn fox"}, s)
	var loadErr *dictionary.DictionaryLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "zz", loadErr.Locale)
	assert.NotErrorIs(t, err, ErrNoDictionaries)
	assert.Equal(t, []string{"brouwn"}, texts(slices.Collect(seq)))
}

func TestValidateConcurrentDocuments(t *testing.T) {
	v := newValidator()
	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := fmt.Sprintf("// cSpell:words word%c\nquick brouwn", 'a'+i)
			seq, err := v.Validate(context.Background(), Document{Text: text}, settings.Default())
			if !assert.NoError(t, err) {
				return
			}
			results[i] = texts(slices.Collect(seq))
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, []string{"brouwn"}, r)
	}
}
