package workspace

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Code-Monger/SpellSpinneret/pkg/settings"
	"github.com/Code-Monger/SpellSpinneret/pkg/stats"
)

// EnvRootDir names the environment variable used as the root directory when
// a request carries no known session.
const EnvRootDir = "SPELL_ROOT_DIR"

// WorkspaceInfo represents the workspace information
type WorkspaceInfo struct {
	RootDir      string    `json:"root_dir"`
	SettingsFile string    `json:"settings_file"`
	InitTime     time.Time `json:"init_time"`
	SessionID    string    `json:"session_id"`
	LastAccess   time.Time `json:"last_access"`
}

// SessionStore manages workspace information for multiple sessions
type SessionStore struct {
	sessions map[string]WorkspaceInfo
	mutex    sync.Mutex
}

// Global session store
var sessionStore = &SessionStore{
	sessions: make(map[string]WorkspaceInfo),
}

// GetWorkspaceInfo returns the workspace info for a session
func GetWorkspaceInfo(sessionID string) (WorkspaceInfo, bool) {
	sessionStore.mutex.Lock()
	defer sessionStore.mutex.Unlock()

	info, exists := sessionStore.sessions[sessionID]
	if exists {
		info.LastAccess = time.Now()
		sessionStore.sessions[sessionID] = info
	}

	return info, exists
}

// SetWorkspaceInfo sets the workspace info for a session and returns it with
// its session id, init time and settings file filled in
func SetWorkspaceInfo(info WorkspaceInfo) WorkspaceInfo {
	if info.SessionID == "" {
		info.SessionID = uuid.NewString()
	}
	if info.SettingsFile == "" && info.RootDir != "" {
		if path, err := settings.Find(info.RootDir); err == nil {
			info.SettingsFile = path
		}
	}

	sessionStore.mutex.Lock()
	defer sessionStore.mutex.Unlock()

	info.InitTime = time.Now()
	info.LastAccess = info.InitTime
	sessionStore.sessions[info.SessionID] = info
	return info
}

// RemoveSession forgets a session
func RemoveSession(sessionID string) {
	sessionStore.mutex.Lock()
	defer sessionStore.mutex.Unlock()
	delete(sessionStore.sessions, sessionID)
}

// ListSessions returns the sorted ids of all sessions
func ListSessions() []string {
	sessionStore.mutex.Lock()
	defer sessionStore.mutex.Unlock()

	sessions := make([]string, 0, len(sessionStore.sessions))
	for sessionID := range sessionStore.sessions {
		sessions = append(sessions, sessionID)
	}
	sort.Strings(sessions)

	return sessions
}

// GetRootDir returns the workspace root directory for a session. Unknown
// sessions fall back to $SPELL_ROOT_DIR and then the current directory.
func GetRootDir(sessionID string) string {
	if info, exists := GetWorkspaceInfo(sessionID); exists && info.RootDir != "" {
		return info.RootDir
	}
	if root := os.Getenv(EnvRootDir); root != "" {
		return root
	}
	return "."
}

// ResolveRelativePath resolves a relative path against the workspace root directory for a session
func ResolveRelativePath(path string, sessionID string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(GetRootDir(sessionID), path)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}

func formatInfo(b *strings.Builder, info WorkspaceInfo, indent string) {
	fmt.Fprintf(b, "%sRoot directory: %s\n", indent, info.RootDir)
	if info.SettingsFile != "" {
		fmt.Fprintf(b, "%sSettings file: %s\n", indent, info.SettingsFile)
	} else {
		fmt.Fprintf(b, "%sSettings file: none (words are added to %s)\n", indent, settings.WorkspaceFile)
	}
	fmt.Fprintf(b, "%sInitialized: %s\n", indent, info.InitTime.Format(time.RFC3339))
	fmt.Fprintf(b, "%sLast accessed: %s\n", indent, info.LastAccess.Format(time.RFC3339))
}

// HandleWorkspace is the handler function for the workspace tool
func HandleWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	operation, ok := arguments["operation"].(string)
	if !ok {
		return nil, fmt.Errorf("operation must be a string")
	}

	switch operation {
	case "initialize":
		rootDir, ok := arguments["root_dir"].(string)
		if !ok || rootDir == "" {
			return nil, fmt.Errorf("root_dir must be a string")
		}
		if abs, err := filepath.Abs(rootDir); err == nil {
			rootDir = abs
		}
		if info, err := os.Stat(rootDir); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("root_dir is not a directory: %s", rootDir)
		}

		sessionID, _ := arguments["session_id"].(string)
		info := SetWorkspaceInfo(WorkspaceInfo{
			RootDir:   rootDir,
			SessionID: sessionID,
		})
		log.Printf("[Workspace] Initialized session %s at %s", info.SessionID, info.RootDir)

		var b strings.Builder
		b.WriteString("Workspace initialized successfully\n\n")
		fmt.Fprintf(&b, "Session ID: %s\n", info.SessionID)
		formatInfo(&b, info, "")
		return textResult(b.String()), nil

	case "get":
		sessionID, ok := arguments["session_id"].(string)
		if !ok {
			return nil, fmt.Errorf("session_id must be a string")
		}

		info, exists := GetWorkspaceInfo(sessionID)
		if !exists {
			return nil, fmt.Errorf("session not found: %s", sessionID)
		}

		var b strings.Builder
		b.WriteString("Workspace Information\n\n")
		fmt.Fprintf(&b, "Session ID: %s\n", info.SessionID)
		formatInfo(&b, info, "")
		return textResult(b.String()), nil

	case "list":
		return textResult(formatSessions()), nil

	default:
		return nil, fmt.Errorf("unsupported operation: %s", operation)
	}
}

func formatSessions() string {
	sessions := ListSessions()

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d)\n\n", len(sessions))
	for i, sessionID := range sessions {
		info, _ := GetWorkspaceInfo(sessionID)
		fmt.Fprintf(&b, "%d. Session ID: %s\n", i+1, sessionID)
		formatInfo(&b, info, "   ")
		b.WriteString("\n")
	}
	return b.String()
}

// HandleWorkspaceResource is the handler function for the workspace resource
func HandleWorkspaceResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI

	// Format: workspace://info/session_id
	sessionID := strings.TrimPrefix(strings.TrimPrefix(uri, "workspace://info"), "/")

	var text string
	if sessionID == "" {
		text = formatSessions()
	} else {
		info, exists := GetWorkspaceInfo(sessionID)
		if !exists {
			return nil, fmt.Errorf("session not found: %s", sessionID)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Session ID: %s\n", info.SessionID)
		formatInfo(&b, info, "")
		text = b.String()
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}

// RegisterWorkspace registers the workspace tool and resource with the MCP server
func RegisterWorkspace(mcpServer *server.MCPServer) {
	workspaceTool := mcp.NewTool("workspace",
		mcp.WithDescription("Initializes and manages spell checking workspaces. A workspace root supplies the cspell settings file and receives workspace dictionary words."),
		mcp.WithString("operation",
			mcp.Description("Operation to perform: 'initialize' to set up a workspace, 'get' to retrieve workspace information, 'list' to list all sessions"),
			mcp.Required(),
		),
		mcp.WithString("root_dir",
			mcp.Description("Root directory of the workspace (for 'initialize' operation)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID (required for 'get' operation, optional for 'initialize' operation)"),
		),
	)

	mcpServer.AddTool(workspaceTool, stats.WrapHandler("workspace", HandleWorkspace))

	mcpServer.AddResource(
		mcp.NewResource(
			"workspace://info",
			"Workspace Information",
			mcp.WithMIMEType("text/plain"),
		),
		HandleWorkspaceResource,
	)

	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"workspace://info/{session_id}",
			"Workspace Session Information",
			mcp.WithTemplateMIMEType("text/plain"),
			mcp.WithTemplateDescription("Information about a specific workspace session"),
		),
		HandleWorkspaceResource,
	)

	log.Printf("[Workspace] Registered workspace tool and resource")
}
