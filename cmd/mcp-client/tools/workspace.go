package tools

import (
	"context"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// TestWorkspace tests the workspace tool
func TestWorkspace(ctx context.Context, c client.MCPClient) error {
	// Getting an unknown session should fail
	log.Printf("Running workspace test: Get workspace info without initialization")
	if text, err := workspaceCall(ctx, c, "get", "nonexistent-session"); err != nil {
		log.Printf("Workspace get without initialization failed as expected: %v", err)
	} else {
		log.Printf("Workspace get without initialization succeeded unexpectedly: %s", text)
	}

	log.Printf("Running workspace test: Initialize workspace")
	text, err := workspaceCall(ctx, c, "initialize", testSession)
	if err != nil {
		log.Printf("Workspace initialization failed: %v", err)
		return err
	}
	log.Printf("Workspace result:\n%s", text)

	log.Printf("Running workspace test: Get workspace info")
	if text, err = workspaceCall(ctx, c, "get", testSession); err != nil {
		log.Printf("Workspace get failed: %v", err)
		return err
	}
	log.Printf("Workspace result:\n%s", text)

	log.Printf("Running workspace test: List sessions")
	if text, err = workspaceCall(ctx, c, "list", ""); err != nil {
		log.Printf("Workspace list failed: %v", err)
		return err
	}
	log.Printf("Workspace result:\n%s", text)

	log.Printf("Reading workspace resource...")
	if err := readWorkspaceResource(ctx, c, "workspace://info/"+testSession); err != nil {
		log.Printf("Failed to read workspace resource: %v", err)
		return err
	}
	return nil
}

// workspaceCall calls the workspace tool. initialize uses the current
// directory as the root.
func workspaceCall(ctx context.Context, c client.MCPClient, operation, sessionID string) (string, error) {
	arguments := map[string]interface{}{
		"operation": operation,
	}
	if sessionID != "" {
		arguments["session_id"] = sessionID
	}
	if operation == "initialize" {
		root, err := os.Getwd()
		if err != nil {
			return "", err
		}
		arguments["root_dir"] = root
	}
	return callTool(ctx, c, "workspace", arguments)
}

// readWorkspaceResource reads a workspace resource
func readWorkspaceResource(ctx context.Context, c client.MCPClient, uri string) error {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri

	result, err := c.ReadResource(ctx, req)
	if err != nil {
		return err
	}

	if len(result.Contents) > 0 {
		if textContent, ok := result.Contents[0].(mcp.TextResourceContents); ok {
			log.Printf("Workspace Info:\n%s", textContent.Text)
		}
	}
	return nil
}
