package tools

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/client"
)

// TestWorkspaceIntegration checks that relative paths and workspace settings
// follow the session's workspace root
func TestWorkspaceIntegration(ctx context.Context, c client.MCPClient) error {
	testDir, cleanup, err := writeTestFiles("mcp_test_spell_workspace", map[string]string{
		"README.md":   "Spinnerets and brouwn foxes\n",
		"cspell.json": "{\n  // project words\n  \"words\": [\"spinnerets\"]\n}\n",
	})
	if err != nil {
		log.Printf("%v", err)
		return err
	}
	defer cleanup()

	// Without a session the path is resolved against the server's directory
	log.Printf("Running integration test: spellcheck without workspace initialization")
	if text, err := callTool(ctx, c, "spellcheck", map[string]interface{}{"path": "README.md"}); err != nil {
		log.Printf("Spellcheck without workspace failed: %v", err)
	} else {
		log.Printf("Result: %s", text)
	}

	log.Printf("Running integration test: Initializing workspace")
	text, err := callTool(ctx, c, "workspace", map[string]interface{}{
		"operation":  "initialize",
		"root_dir":   testDir,
		"session_id": "spell-integration-session",
	})
	if err != nil {
		log.Printf("Workspace initialization failed: %v", err)
		return err
	}
	log.Printf("Result: %s", text)

	// The workspace cspell.json accepts "spinnerets"; only "brouwn" remains
	log.Printf("Running integration test: spellcheck with workspace initialization")
	text, err = callTool(ctx, c, "spellcheck", map[string]interface{}{
		"path":       "README.md",
		"session_id": "spell-integration-session",
	})
	if err != nil {
		log.Printf("Spellcheck with workspace failed: %v", err)
		return err
	}
	log.Printf("Result: %s", text)
	return nil
}
