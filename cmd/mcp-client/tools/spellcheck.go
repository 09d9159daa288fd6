package tools

import (
	"context"
	"log"
	"path/filepath"

	"github.com/mark3labs/mcp-go/client"
)

// spellFiles are written to a temporary directory for the spellcheck tests
var spellFiles = map[string]string{
	"comments.go": `package main

import (
	"fmt"
)

// This is a coment with a speling mistake
func main() {
	// Another coment with a mispelled word
	fmt.Println("Hello, World!")
}
`,
	"notes.md": `# Notes

The quick brouwn fox jumpped over the lazy dog.

<!-- cSpell:words brouwn -->
`,
	"identifiers.go": `package main

func main() {
	userAcount := "John"
	displayMessge(userAcount)
}

func displayMessge(text string) {}
`,
	"node_modules/dep/index.js": "// ignored becuase of ignorePaths\n",
}

// TestSpellCheck tests the spellcheck tool
func TestSpellCheck(ctx context.Context, c client.MCPClient) error {
	testDir, cleanup, err := writeTestFiles("mcp_test_spellcheck", spellFiles)
	if err != nil {
		log.Printf("%v", err)
		return err
	}
	defer cleanup()

	runCases(ctx, c, "spellcheck", []testCase{
		{
			name: "Check directory",
			arguments: map[string]interface{}{
				"path":               testDir,
				"recursive":          true,
				"use_relative_paths": false,
			},
		},
		{
			name: "Check directory with suggestions",
			arguments: map[string]interface{}{
				"path":        testDir,
				"recursive":   false,
				"suggestions": true,
			},
		},
		{
			name: "Check specific file",
			arguments: map[string]interface{}{
				"path": filepath.Join(testDir, "identifiers.go"),
			},
		},
		{
			name: "Check file as plain text",
			arguments: map[string]interface{}{
				"path":        filepath.Join(testDir, "comments.go"),
				"language_id": "plaintext",
			},
		},
	})
	return nil
}

// TestSpellCheckText tests the spellcheck_text tool
func TestSpellCheckText(ctx context.Context, c client.MCPClient) error {
	runCases(ctx, c, "spellcheck_text", []testCase{
		{
			name: "Plain text",
			arguments: map[string]interface{}{
				"text": "The quick brouwn fox jumpped over the lazy dog.",
			},
		},
		{
			name: "Extra words",
			arguments: map[string]interface{}{
				"text":  "The quick brouwn fox jumpped over the lazy dog.",
				"words": []interface{}{"brouwn", "jumpped"},
			},
		},
		{
			name: "Directives",
			arguments: map[string]interface{}{
				"text":        "// cSpell:ignore brouwn\n// cSpell:enableCompoundWords\nconst spellchecker = brouwn",
				"language_id": "javascript",
			},
		},
		{
			name: "Missing dictionary",
			arguments: map[string]interface{}{
				"text":     "bonjour",
				"language": "xx",
			},
		},
	})
	return nil
}

// TestSuggest tests the spellcheck_suggest and add word tools
func TestSuggest(ctx context.Context, c client.MCPClient) error {
	runCases(ctx, c, "spellcheck_suggest", []testCase{
		{
			name:      "Suggest for a misspelling",
			arguments: map[string]interface{}{"word": "jumpped"},
		},
		{
			name:      "Suggest with count",
			arguments: map[string]interface{}{"word": "Brouwn", "count": 2.0},
		},
	})

	runCases(ctx, c, "add_word_to_workspace_dictionary", []testCase{
		{
			name: "Add workspace word",
			arguments: map[string]interface{}{
				"word":       "spinneret",
				"session_id": testSession,
			},
		},
	})

	text, err := callTool(ctx, c, "spellcheck_text", map[string]interface{}{
		"text":       "spinneret",
		"session_id": testSession,
	})
	if err != nil {
		log.Printf("%v", err)
		return err
	}
	log.Printf("Check after adding the word:\n%s", text)
	return nil
}
