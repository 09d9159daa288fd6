package tools

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/client"
)

// TestStats tests the stats tool
func TestStats(ctx context.Context, c client.MCPClient) error {
	log.Printf("Running stats test")

	text, err := callTool(ctx, c, "stats", map[string]interface{}{})
	if err != nil {
		log.Printf("Failed to call stats: %v", err)
		return err
	}
	log.Printf("Stats result:\n%s", text)
	return nil
}
