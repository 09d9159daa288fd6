package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
	"github.com/Code-Monger/SpellSpinneret/pkg/serverinfo"
	"github.com/Code-Monger/SpellSpinneret/pkg/settings"
	"github.com/Code-Monger/SpellSpinneret/pkg/spellcheck"
	"github.com/Code-Monger/SpellSpinneret/pkg/stats"
	"github.com/Code-Monger/SpellSpinneret/pkg/watch"
	"github.com/Code-Monger/SpellSpinneret/pkg/workspace"
)

var (
	port         = flag.Int("port", 8080, "Port to listen on")
	baseURL      = flag.String("baseurl", "", "Base URL for the server (e.g., http://localhost:8080)")
	serverName   = flag.String("name", "SpellSpinneret MCP Server", "Server name")
	serverVer    = flag.String("version", "1.0.0", "Server version")
	timeoutSecs  = flag.Int("timeout", 300, "Server timeout in seconds")
	instructions = flag.String("instructions", "Spell checking for source code and documents. Call the workspace tool to set a root directory, then spellcheck files or text.", "Server instructions")
	dataDir      = flag.String("data-dir", filepath.Join(".", "data"), "Directory to store data files")
	dictDirs     = flag.String("dict-dir", "", "Comma separated directories with <locale>.txt word lists")
	userSettings = flag.String("user-settings", settings.DefaultUserFile, "User settings file that user words are added to")
	watchFiles   = flag.Bool("watch", false, "Reload dictionaries and settings when their files change")
	stdio        = flag.Bool("stdio", false, "Serve over stdin/stdout instead of SSE")
)

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	flag.Parse()

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dirs := splitList(*dictDirs)
	store := dictionary.NewStore(dictionary.DefaultLoader(dirs...))
	svc := spellcheck.NewService(store, *userSettings)

	// Warm the default dictionary so the first check is not slowed by loading
	if _, err := store.Load(context.Background(), settings.DefaultLanguage); err != nil {
		log.Printf("[Server] Failed to preload dictionary: %v", err)
	}

	// Create the MCP server
	mcpServer := server.NewMCPServer(
		*serverName,
		*serverVer,
		server.WithResourceCapabilities(true, true),
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithInstructions(*instructions),
	)

	// Initialize stats service
	if err := stats.InitStatsManager(*dataDir); err != nil {
		log.Fatalf("Failed to initialize stats manager: %v", err)
	}

	// Register tools and resources
	serverinfo.RegisterServerInfo(mcpServer, store)
	workspace.RegisterWorkspace(mcpServer)
	spellcheck.RegisterSpellCheck(mcpServer, svc)

	// Register stats tool
	if err := stats.RegisterStats(mcpServer, *dataDir); err != nil {
		log.Fatalf("Failed to register stats tool: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *watchFiles {
		w, err := watch.New(store, watch.Config{
			DictDirs:      dirs,
			SettingsFiles: []string{svc.UserSettingsFile()},
			OnSettingsChange: func(path string) {
				log.Printf("[Server] Settings changed: %s", path)
				svc.InvalidateSettings()
			},
		})
		if err != nil {
			log.Fatalf("Failed to start watcher: %v", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Printf("[Server] Watcher stopped: %v", err)
			}
		}()
	}

	if *stdio {
		log.Printf("[Server] Serving MCP over stdio")
		err := server.ServeStdio(mcpServer)
		stats.HandleClientDisconnect("stdio")
		if err != nil {
			log.Fatalf("[Server] Stdio server failed: %v", err)
		}
		return
	}

	// Create the SSE server
	baseURLValue := *baseURL
	if baseURLValue == "" {
		baseURLValue = fmt.Sprintf("http://localhost:%d", *port)
	}

	sseServer := server.NewSSEServer(
		mcpServer,
		server.WithBaseURL(baseURLValue),
		server.WithSSEEndpoint("/"),
		server.WithMessageEndpoint("/messages"),
	)

	// Set up HTTP server
	timeout := time.Duration(*timeoutSecs) * time.Second
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           sseServer,
		ReadHeaderTimeout: timeout,
	}

	// Start the server in a goroutine
	go func() {
		log.Printf("[Server] Starting MCP server on port %d...", *port)
		log.Printf("[Server] Base URL: %s", baseURLValue)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	// Create a deadline for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	log.Println("[Server] Shutting down server...")

	// Print final stats before shutdown
	if statsManager := stats.GetStatsManager(); statsManager != nil {
		statsText := stats.FormatStats(statsManager.GetSessionStats(), statsManager.GetPersistentStats())
		log.Printf("[Server] Final server statistics:\n%s", statsText)
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("[Server] Server shutdown failed: %v", err)
	}
	log.Println("[Server] Server stopped")
}
