package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// readTextResource returns the text of the first content block of a resource
func readTextResource(ctx context.Context, c client.MCPClient, uri string) (string, error) {
	readReq := mcp.ReadResourceRequest{}
	readReq.Params.URI = uri

	result, err := c.ReadResource(ctx, readReq)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", uri, err)
	}
	for _, content := range result.Contents {
		if textContent, ok := content.(mcp.TextResourceContents); ok {
			return textContent.Text, nil
		}
	}
	return "", fmt.Errorf("resource %s has no text content", uri)
}

// ReadServerInfo reads the server info resource, which lists the loaded
// dictionaries
func ReadServerInfo(ctx context.Context, c client.MCPClient) error {
	text, err := readTextResource(ctx, c, "server://info")
	if err != nil {
		log.Printf("Failed to read server info: %v", err)
		return err
	}
	log.Printf("Server Info:\n%s", text)
	return nil
}
