// Package tools provides smoke test functions for the spell checker MCP tools
package tools

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// testSession is the session id the smoke tests initialize their workspace with
const testSession = "spell-test-session"

// testCase is one tool call
type testCase struct {
	name      string
	arguments map[string]interface{}
}

// callTool calls a tool and logs its text result
func callTool(ctx context.Context, c client.MCPClient, name string, arguments map[string]interface{}) (string, error) {
	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = name
	callReq.Params.Arguments = arguments

	result, err := c.CallTool(ctx, callReq)
	if err != nil {
		return "", fmt.Errorf("failed to call %s: %w", name, err)
	}

	var text string
	if len(result.Content) > 0 {
		if textContent, ok := result.Content[0].(mcp.TextContent); ok {
			text = textContent.Text
		}
	}
	if result.IsError {
		return text, fmt.Errorf("%s returned an error: %s", name, text)
	}
	return text, nil
}

// runCases calls a tool once per test case and logs the results
func runCases(ctx context.Context, c client.MCPClient, tool string, cases []testCase) {
	for _, tc := range cases {
		log.Printf("Running %s test: %s", tool, tc.name)
		text, err := callTool(ctx, c, tool, tc.arguments)
		if err != nil {
			log.Printf("%v", err)
			continue
		}
		log.Printf("%s result:\n%s", tool, text)
	}
}

// writeTestFiles creates a temporary directory holding files
func writeTestFiles(name string, files map[string]string) (string, func(), error) {
	testDir := filepath.Join(os.TempDir(), name)
	if err := os.MkdirAll(testDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create test directory: %w", err)
	}
	cleanup := func() {
		os.RemoveAll(testDir)
		log.Println("Test directory removed")
	}

	for filename, content := range files {
		filePath := filepath.Join(testDir, filename)
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			cleanup()
			return "", nil, err
		}
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to create test file %s: %w", filename, err)
		}
		log.Printf("Created test file: %s", filePath)
	}
	return testDir, cleanup, nil
}

// TestAll runs every smoke test in order
func TestAll(ctx context.Context, c client.MCPClient) error {
	steps := []struct {
		name string
		fn   func(context.Context, client.MCPClient) error
	}{
		{"workspace", TestWorkspace},
		{"spellcheck", TestSpellCheck},
		{"spellcheck_text", TestSpellCheckText},
		{"spellcheck_suggest", TestSuggest},
		{"integration", TestWorkspaceIntegration},
		{"stats", TestStats},
	}
	for _, step := range steps {
		if err := step.fn(ctx, c); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}
