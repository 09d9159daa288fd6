package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Code-Monger/SpellSpinneret/cmd/mcp-client/tools"
)

// toolTests maps a -tool value to its smoke test and the server tool it needs
var toolTests = map[string]struct {
	serverTool string
	run        func(context.Context, client.MCPClient) error
}{
	"spellcheck":      {"spellcheck", tools.TestSpellCheck},
	"spellcheck_text": {"spellcheck_text", tools.TestSpellCheckText},
	"suggest":         {"spellcheck_suggest", tools.TestSuggest},
	"workspace":       {"workspace", tools.TestWorkspace},
	"integration":     {"workspace", tools.TestWorkspaceIntegration},
	"stats":           {"stats", tools.TestStats},
	"all":             {"spellcheck", tools.TestAll},
}

// Client represents the MCP client application
type Client struct {
	serverURL string
	mcpClient client.MCPClient
}

// NewClient creates a new MCP client
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
	}
}

// Run initializes and runs the client with the specified tool test
func (c *Client) Run(ctx context.Context, testTool string) error {
	log.Printf("Connecting to MCP server at %s...", c.serverURL)
	sseClient, err := client.NewSSEMCPClient(c.serverURL)
	if err != nil {
		return fmt.Errorf("failed to create SSE client: %v", err)
	}
	defer sseClient.Close()

	if err := sseClient.Start(ctx); err != nil {
		return fmt.Errorf("failed to start SSE client: %v", err)
	}
	c.mcpClient = sseClient

	if err := c.initialize(ctx); err != nil {
		return err
	}

	resourcesResult, toolsResult, err := c.listResourcesAndTools(ctx)
	if err != nil {
		return err
	}

	if err := c.testTool(ctx, testTool, toolsResult); err != nil {
		return err
	}

	c.readServerInfoIfAvailable(ctx, resourcesResult)
	return nil
}

// initialize initializes the MCP client
func (c *Client) initialize(ctx context.Context) error {
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "spellspinneret-client",
		Version: "1.0.0",
	}

	initResult, err := c.mcpClient.Initialize(ctx, initReq)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %v", err)
	}

	log.Printf("Connected to server %s %s", initResult.ServerInfo.Name, initResult.ServerInfo.Version)
	log.Printf("Server capabilities: %+v", initResult.Capabilities)
	return nil
}

// listResourcesAndTools lists available resources and tools
func (c *Client) listResourcesAndTools(ctx context.Context) (*mcp.ListResourcesResult, *mcp.ListToolsResult, error) {
	resourcesResult, err := c.mcpClient.ListResources(ctx, mcp.ListResourcesRequest{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list resources: %v", err)
	}

	log.Printf("Available resources (%d):", len(resourcesResult.Resources))
	for _, resource := range resourcesResult.Resources {
		log.Printf("  - %s (%s)", resource.Name, resource.URI)
	}

	toolsResult, err := c.mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tools: %v", err)
	}

	log.Printf("Available tools (%d):", len(toolsResult.Tools))
	for _, tool := range toolsResult.Tools {
		log.Printf("  - %s: %s", tool.Name, tool.Description)
	}

	return resourcesResult, toolsResult, nil
}

// testTool tests the specified tool
func (c *Client) testTool(ctx context.Context, testTool string, toolsResult *mcp.ListToolsResult) error {
	test, ok := toolTests[testTool]
	if !ok {
		return fmt.Errorf("unknown tool: %s", testTool)
	}

	found := false
	for _, tool := range toolsResult.Tools {
		if tool.Name == test.serverTool {
			found = true
			break
		}
	}
	if !found {
		log.Printf("%s tool not found on server", test.serverTool)
		return nil
	}

	log.Printf("Testing %s...", testTool)
	return test.run(ctx, c.mcpClient)
}

// readServerInfoIfAvailable reads the server info resource if available
func (c *Client) readServerInfoIfAvailable(ctx context.Context, resourcesResult *mcp.ListResourcesResult) {
	for _, resource := range resourcesResult.Resources {
		if resource.URI == "server://info" {
			log.Println("Reading server info resource...")
			ReadServerInfo(ctx, c.mcpClient)
			return
		}
	}
	log.Println("Server info resource not found on server")
}
