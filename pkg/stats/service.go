package stats

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var (
	// Global stats manager instance
	globalStatsManager *StatsManager
)

// ToolHandler is the signature of an MCP tool handler
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InitStatsManager initializes the global stats manager
func InitStatsManager(dataDir string) error {
	statsFilePath := filepath.Join(dataDir, "stats.json")
	manager, err := NewStatsManager(statsFilePath)
	if err != nil {
		return err
	}
	globalStatsManager = manager
	return nil
}

// GetStatsManager returns the global stats manager
func GetStatsManager() *StatsManager {
	return globalStatsManager
}

// HandleGetStats handles requests to get usage statistics
func HandleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Printf("[Stats] Received request to get stats")

	if globalStatsManager == nil {
		log.Printf("[Stats] Error: stats manager not initialized")
		return nil, fmt.Errorf("stats manager not initialized")
	}

	statsText := FormatStats(globalStatsManager.GetSessionStats(), globalStatsManager.GetPersistentStats())

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: statsText,
			},
		},
	}, nil
}

// RecordToolUsage records statistics for a tool call
func RecordToolUsage(toolName string, startTime time.Time, failed bool) {
	if globalStatsManager == nil {
		return
	}

	executionTime := time.Since(startTime)
	if err := globalStatsManager.RecordToolUsage(toolName, executionTime, failed); err != nil {
		log.Printf("[Stats] Failed to record tool usage: %v", err)
	}
}

// RecordChecks records spell check counters
func RecordChecks(c CheckStats) {
	if globalStatsManager == nil {
		return
	}
	if err := globalStatsManager.RecordChecks(c); err != nil {
		log.Printf("[Stats] Failed to record check stats: %v", err)
	}
}

// WrapHandler wraps a tool handler with stats tracking
func WrapHandler(toolName string, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		log.Printf("[Stats] Starting execution of tool '%s'", toolName)

		result, err := handler(ctx, request)
		RecordToolUsage(toolName, startTime, err != nil || (result != nil && result.IsError))
		if err != nil {
			log.Printf("[Stats] Error executing tool '%s': %v", toolName, err)
			return nil, err
		}

		return result, nil
	}
}

// HandleClientDisconnect logs and resets the session statistics
func HandleClientDisconnect(sessionID string) {
	if globalStatsManager == nil {
		return
	}

	statsText := FormatStats(globalStatsManager.GetSessionStats(), globalStatsManager.GetPersistentStats())
	log.Printf("[Stats] Session statistics for client %s:\n%s", sessionID, statsText)

	globalStatsManager.ResetSessionStats()
	log.Printf("[Stats] Session statistics reset")
}

// RegisterStats registers the stats tool with the MCP server
func RegisterStats(mcpServer *server.MCPServer, dataDir string) error {
	if err := InitStatsManager(dataDir); err != nil {
		return err
	}

	statsTool := mcp.NewTool("stats",
		mcp.WithDescription("Retrieves spell checker usage statistics"),
	)

	mcpServer.AddTool(statsTool, WrapHandler("stats", HandleGetStats))

	log.Printf("[Stats] Registered stats tool")

	return nil
}
