package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWordWriterCreatesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vscode", "cSpell.json")
	w := NewFileWordWriter(path)

	require.NoError(t, w.AddWords("foobar"))
	require.NoError(t, w.AddWords("foobar", "bazqux"))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"foobar", "bazqux"}, s.Words)
	assert.Equal(t, DefaultVersion, s.Version)
}

func TestFileWordWriterKeepsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cspell.json")
	original := `{
	// keep me
	"language": "en"
}
`
	require.NoError(t, os.WriteFile(path, []byte(original), 0644))

	require.NoError(t, NewFileWordWriter(path).AddWords("newword"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "// keep me")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, []string{"newword"}, s.Words)
}

func TestFileWordWriterTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cspell.toml")
	require.NoError(t, os.WriteFile(path, []byte("language = \"en\"\nwords = [\"one\"]\n"), 0644))

	require.NoError(t, NewFileWordWriter(path).AddWords("two", "one"))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, s.Words)
	assert.Equal(t, "en", s.Language)
}

func TestFileWordWriterWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	w := NewFileWordWriter(path)

	require.NoError(t, w.AddWords("alpha"))
	require.NoError(t, w.AddWords("beta"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\n", string(data))
}

func TestFileWordWriterReportsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cspell.json")
	require.NoError(t, os.WriteFile(path, []byte("{ broken"), 0644))

	assert.Error(t, NewFileWordWriter(path).AddWords("word"))
}
