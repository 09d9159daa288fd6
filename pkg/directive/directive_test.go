package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Code-Monger/SpellSpinneret/pkg/tokenizer"
)

func TestParseWords(t *testing.T) {
	s := Parse("// cSpell:words foobar bazqux\nbody text\n# spell-checker: word quux")
	assert.Equal(t, []string{"foobar", "bazqux", "quux"}, s.Words)
}

func TestParseIgnoreAndFlagWords(t *testing.T) {
	text := "/* cSpell:ignore zork blorb */\n" +
		"<!-- spellchecker:ignoreWords frobnicate -->\n" +
		"// cspell:flagWords hte"
	s := Parse(text)

	assert.Equal(t, []string{"zork", "blorb", "frobnicate"}, s.IgnoreWords)
	assert.Equal(t, []string{"hte"}, s.FlagWords)
}

func TestParseCompoundWords(t *testing.T) {
	s := Parse("cSpell:enableCompoundWords")
	require.NotNil(t, s.AllowCompoundWords)
	assert.True(t, *s.AllowCompoundWords)

	s = Parse("cSpell:enableCompoundWords\ncSpell:disableCompoundWords")
	require.NotNil(t, s.AllowCompoundWords)
	assert.False(t, *s.AllowCompoundWords, "later directives win")
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, "en-GB", Parse("cSpell:language en-GB").Language)
	assert.Equal(t, "en fr", Parse("cSpell:local en   fr").Language)
	assert.Equal(t, "de", Parse("cSpell:locale de").Language)
	assert.Empty(t, Parse("cSpell:language").Language)
}

func TestParseRegExpLiteral(t *testing.T) {
	s := Parse(`// cSpell:ignoreRegExp /0x[0-9a-f]+/gi trailing words`)
	assert.Equal(t, []string{"/0x[0-9a-f]+/gi"}, s.IgnoreRegExpList)

	s = Parse(`// cSpell:includeRegExp /"[^"]*"/`)
	assert.Equal(t, []string{`/"[^"]*"/`}, s.IncludeRegExpList)
}

func TestParseBareRegExpHonorsEscapedSpace(t *testing.T) {
	s := Parse(`cSpell:ignoreRegExp TODO:\ .* rest`)
	require.Len(t, s.IgnoreRegExpList, 1)
	assert.Equal(t, "TODO: .*", s.IgnoreRegExpList[0])
}

func TestMalformedRegExpDegradesToLiteral(t *testing.T) {
	s := Parse(`cSpell:ignoreRegExp /foo(bar/`)
	require.Equal(t, []string{"/foo(bar/"}, s.IgnoreRegExpList)

	re := tokenizer.CompilePattern(s.IgnoreRegExpList[0])
	require.NotNil(t, re)
	assert.True(t, re.MatchString("call foo(bar) now"))
	assert.False(t, re.MatchString("foobar"))
}

func TestUnknownDirectivesAreIgnored(t *testing.T) {
	s := Parse("cSpell:nonsense here\ncSpell:\nspell-checker:ignoreRegExp\nno directive at all")
	assert.Empty(t, s.Words)
	assert.Empty(t, s.IgnoreRegExpList)
	assert.Nil(t, s.AllowCompoundWords)
	assert.Empty(t, s.Language)
}

func TestParseDirective(t *testing.T) {
	_, ok := ParseDirective("disable")
	assert.False(t, ok)

	s, ok := ParseDirective("  words alpha beta  */")
	assert.True(t, ok)
	assert.Equal(t, []string{"alpha", "beta"}, s.Words)
}

func TestParseRequiresDirectiveContext(t *testing.T) {
	s := Parse("Our spellchecker: words are hard\nthe cspell:ignore flag")
	assert.Empty(t, s.Words)
	assert.Empty(t, s.IgnoreWords)

	s = Parse("  cSpell:words indented\n-- cspell:words sqlish\n% spell-checker:words texish")
	assert.Equal(t, []string{"indented", "sqlish", "texish"}, s.Words)
}

func TestFindStopsAtCommentCloser(t *testing.T) {
	text := "/* cSpell:words foobar */ code after"
	found := Find(text)
	require.Len(t, found, 1)
	assert.Equal(t, []string{"foobar"}, found[0].Settings.Words)
	assert.Equal(t, "cSpell:words foobar ", text[found[0].Start:found[0].End])
}

func TestFindRegExpSpan(t *testing.T) {
	text := "/* cspell:ignoreRegExp /a*/ */ rest"
	found := Find(text)
	require.Len(t, found, 1)
	assert.Equal(t, []string{"/a*/"}, found[0].Settings.IgnoreRegExpList)
	assert.Equal(t, "cspell:ignoreRegExp /a*/", text[found[0].Start:found[0].End])

	found = Find("# cspell:ignoreRegExp bare*/ rest")
	require.Len(t, found, 1)
	assert.Equal(t, []string{"bare"}, found[0].Settings.IgnoreRegExpList)
}

func TestFindSkipsUnknownKeywords(t *testing.T) {
	found := Find("// cSpell:wordz foo\n// cSpell:words bar")
	require.Len(t, found, 1)
	assert.Equal(t, []string{"bar"}, found[0].Settings.Words)
	assert.Equal(t, 23, found[0].Start)
}

func TestParseIsScopedToText(t *testing.T) {
	a := Parse("cSpell:words onlyhere")
	b := Parse("plain document")
	assert.Equal(t, []string{"onlyhere"}, a.Words)
	assert.Empty(t, b.Words)
}
