package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	serverURL   = flag.String("server", "http://localhost:8080", "MCP server URL")
	timeoutSecs = flag.Int("timeout", 60, "Client timeout in seconds")
	testTool    = flag.String("tool", "all", "Tool to test (spellcheck, spellcheck_text, suggest, workspace, integration, stats, all)")
)

func main() {
	flag.Parse()

	// Create a context with timeout that is also cancelled by termination signals
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeoutSecs)*time.Second)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewClient(*serverURL).Run(ctx, *testTool); err != nil {
		log.Fatalf("Client failed: %v", err)
	}

	log.Println("Client operations completed successfully")
}
