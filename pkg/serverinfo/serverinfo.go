package serverinfo

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
)

// startTime is used to calculate uptime
var startTime = time.Now()

// Info reports the server runtime and the dictionaries currently cached.
func Info(store *dictionary.Store) string {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	var b strings.Builder
	b.WriteString("Server Information:\n\n")
	fmt.Fprintf(&b, "timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "go_version: %s\n", runtime.Version())
	fmt.Fprintf(&b, "os: %s\n", runtime.GOOS)
	fmt.Fprintf(&b, "architecture: %s\n", runtime.GOARCH)
	fmt.Fprintf(&b, "goroutines: %d\n", runtime.NumGoroutine())
	fmt.Fprintf(&b, "alloc_mb: %.2f\n", float64(memStats.Alloc)/1024/1024)
	fmt.Fprintf(&b, "uptime_seconds: %.0f\n", time.Since(startTime).Seconds())

	b.WriteString("\nDictionaries:\n")
	locales := store.Locales()
	if len(locales) == 0 {
		b.WriteString("  (none loaded)\n")
	}
	for _, locale := range locales {
		if d := store.Cached(locale); d != nil {
			fmt.Fprintf(&b, "  %s: %d words (hash %016x)\n", locale, d.Len(), d.Hash())
		}
	}
	return b.String()
}

// RegisterServerInfo registers the server info resource with the MCP server
func RegisterServerInfo(mcpServer *server.MCPServer, store *dictionary.Store) {
	mcpServer.AddResource(
		mcp.NewResource(
			"server://info",
			"Server Information",
			mcp.WithMIMEType("text/plain"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      request.Params.URI,
					MIMEType: "text/plain",
					Text:     Info(store),
				},
			}, nil
		},
	)
}
