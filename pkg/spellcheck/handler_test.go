package spellcheck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
	"github.com/Code-Monger/SpellSpinneret/pkg/validator"
	"github.com/Code-Monger/SpellSpinneret/pkg/workspace"
)

type fixture struct {
	svc       *Service
	root      string
	userFile  string
	sessionID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	userFile := filepath.Join(t.TempDir(), "user", "cSpell.json")

	writeFile(t, root, "notes.md", "The quick brouwn fox.\n")
	writeFile(t, root, "main.go", "package main\n\n// jumpped over\nfunc main() {}\n")
	writeFile(t, root, "node_modules/lib/index.js", "lazzy brouwn\n")
	writeFile(t, root, "sub/deep.txt", "hello wurld\n")
	writeFile(t, root, "data.bin", "zzzzzz qqqqqq\n")

	info := workspace.SetWorkspaceInfo(workspace.WorkspaceInfo{RootDir: root})
	t.Cleanup(func() { workspace.RemoveSession(info.SessionID) })

	return &fixture{
		svc:       NewService(dictionary.NewStore(nil), userFile),
		root:      root,
		userFile:  userFile,
		sessionID: info.SessionID,
	}
}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func request(name string, args map[string]interface{}) mcp.CallToolRequest {
	var r mcp.CallToolRequest
	r.Params.Name = name
	r.Params.Arguments = args
	return r
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	return result.Content[0].(mcp.TextContent).Text
}

func TestHandleSpellCheckDirectory(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleSpellCheck(context.Background(), request("spellcheck", map[string]interface{}{
		"path":       ".",
		"session_id": f.sessionID,
	}))
	require.NoError(t, err)
	text := resultText(t, result)

	assert.Contains(t, text, "Found 3 spelling issues")
	assert.Contains(t, text, "File: notes.md")
	assert.Contains(t, text, "Word: brouwn")
	assert.Contains(t, text, "File: main.go")
	assert.Contains(t, text, "Word: jumpped")
	assert.Contains(t, text, "Line: 3, Columns: 4-11")
	assert.Contains(t, text, filepath.Join("sub", "deep.txt"))
	assert.NotContains(t, text, "node_modules")
	assert.NotContains(t, text, "data.bin")
}

func TestHandleSpellCheckNonRecursiveWithSuggestions(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleSpellCheck(context.Background(), request("spellcheck", map[string]interface{}{
		"path":        f.root,
		"session_id":  f.sessionID,
		"recursive":   false,
		"suggestions": true,
	}))
	require.NoError(t, err)
	text := resultText(t, result)

	assert.Contains(t, text, "Found 2 spelling issues")
	assert.Contains(t, text, "Suggestions: brown")
	assert.NotContains(t, text, "wurld")
}

func TestHandleSpellCheckFileAbsolutePaths(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleSpellCheck(context.Background(), request("spellcheck", map[string]interface{}{
		"path":               "notes.md",
		"session_id":         f.sessionID,
		"use_relative_paths": false,
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), filepath.Join(f.root, "notes.md"))
}

func TestHandleSpellCheckHonorsWorkspaceSettings(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.root, "cspell.json", `{
		// project words
		"words": ["brouwn", "jumpped", "ignorePaths"],
		"ignorePaths": ["sub/**"],
	}`)

	result, err := f.svc.HandleSpellCheck(context.Background(), request("spellcheck", map[string]interface{}{
		"path":       ".",
		"session_id": f.sessionID,
	}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "No spelling issues found.")
	assert.Contains(t, text, "Checked 3 files, skipped 0.")
}

func TestHandleSpellCheckErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.HandleSpellCheck(context.Background(), request("spellcheck", map[string]interface{}{}))
	assert.Error(t, err)

	_, err = f.svc.HandleSpellCheck(context.Background(), request("spellcheck", map[string]interface{}{
		"path":       "missing.md",
		"session_id": f.sessionID,
	}))
	assert.Error(t, err)
}

func TestHandleSpellCheckText(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleSpellCheckText(context.Background(), request("spellcheck_text", map[string]interface{}{
		"text":  "The quick brouwn fox jumpped over the lazzy dog.",
		"words": []interface{}{"lazzy"},
	}))
	require.NoError(t, err)
	text := resultText(t, result)

	assert.Contains(t, text, "Found 2 spelling issues")
	assert.Contains(t, text, `Message: Unknown word: "brouwn"`)
	assert.Contains(t, text, "Line: 1, Columns: 11-17")
	assert.Contains(t, text, "brown")
	assert.NotContains(t, text, "Word: lazzy")
}

func TestHandleSpellCheckTextKeywords(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleSpellCheckText(context.Background(), request("spellcheck_text", map[string]interface{}{
		"text":        "constructor const prototype type typeof null undefined",
		"language_id": "javascript",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No spelling issues found.")
}

func TestHandleSpellCheckTextMissingDictionary(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleSpellCheckText(context.Background(), request("spellcheck_text", map[string]interface{}{
		"text":     "brouwn",
		"language": "xx",
	}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "No spelling issues found.")
	assert.Contains(t, text, "Warnings:")
}

func TestHandleSpellCheckTextPartialDictionary(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleSpellCheckText(context.Background(), request("spellcheck_text", map[string]interface{}{
		"text":     "The quick brouwn fox",
		"language": "en,xx",
	}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Found 1 spelling issues")
	assert.Contains(t, text, "Word: brouwn")
	assert.Contains(t, text, "Warnings:")
}

func TestCheckSummaryAdd(t *testing.T) {
	var summary CheckSummary
	loadErr := &dictionary.DictionaryLoadError{Locale: "xx", Underlying: errors.New("missing")}

	summary.Add("a.md", []SpellCheckResult{{FilePath: "a.md"}}, loadErr)
	summary.Add("b.md", nil, fmt.Errorf("%w: %w", validator.ErrNoDictionaries, loadErr))
	summary.Add("c.md", nil, nil)

	assert.Equal(t, 2, summary.Checked)
	assert.Equal(t, 1, summary.Skipped)
	assert.Len(t, summary.Results, 1)
	assert.Len(t, summary.Warnings, 2)
}

func TestHandleSuggest(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleSuggest(context.Background(), request("spellcheck_suggest", map[string]interface{}{
		"word":  "jumpped",
		"count": float64(3),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "jumped")

	_, err = f.svc.HandleSuggest(context.Background(), request("spellcheck_suggest", map[string]interface{}{"word": " "}))
	assert.Error(t, err)

	_, err = f.svc.HandleSuggest(context.Background(), request("spellcheck_suggest", map[string]interface{}{
		"word":     "jumpped",
		"language": "xx",
	}))
	assert.Error(t, err)
}

func TestHandleAddUserWord(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleAddUserWord(context.Background(), request("add_word_to_user_dictionary", map[string]interface{}{
		"word": "zorblax",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "user dictionary")

	data, err := os.ReadFile(f.userFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "zorblax")

	result, err = f.svc.HandleSpellCheckText(context.Background(), request("spellcheck_text", map[string]interface{}{
		"text": "zorblax",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No spelling issues found.")

	_, err = f.svc.HandleAddUserWord(context.Background(), request("add_word_to_user_dictionary", map[string]interface{}{
		"word": "two words",
	}))
	assert.Error(t, err)
}

func TestHandleAddWorkspaceWord(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.HandleAddWorkspaceWord(context.Background(), request("add_word_to_workspace_dictionary", map[string]interface{}{
		"word":       "brouwn",
		"session_id": f.sessionID,
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "workspace dictionary")

	data, err := os.ReadFile(filepath.Join(f.root, ".vscode", "cSpell.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "brouwn")

	result, err = f.svc.HandleSpellCheck(context.Background(), request("spellcheck", map[string]interface{}{
		"path":       "notes.md",
		"session_id": f.sessionID,
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No spelling issues found.")
}

func TestHandleAddWordPersistFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))
	svc := NewService(dictionary.NewStore(nil), filepath.Join(blocker, "cSpell.json"))

	result, err := svc.HandleAddUserWord(context.Background(), request("add_word_to_user_dictionary", map[string]interface{}{
		"word": "zorblax",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Warning")

	result, err = svc.HandleSpellCheckText(context.Background(), request("spellcheck_text", map[string]interface{}{
		"text":       "zorblax",
		"session_id": f.sessionID,
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No spelling issues found.")
}

func TestLineAt(t *testing.T) {
	text := "first\r\nsecond line\nthird"
	assert.Equal(t, "first", lineAt(text, 2))
	assert.Equal(t, "second line", lineAt(text, 9))
	assert.Equal(t, "third", lineAt(text, len(text)))
}
