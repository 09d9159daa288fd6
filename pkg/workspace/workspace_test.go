package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, args map[string]interface{}) (*mcp.CallToolResult, error) {
	t.Helper()
	var request mcp.CallToolRequest
	request.Params.Name = "workspace"
	request.Params.Arguments = args
	return HandleWorkspace(context.Background(), request)
}

func text(result *mcp.CallToolResult) string {
	return result.Content[0].(mcp.TextContent).Text
}

func TestInitializeAssignsSessionID(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "cspell.json"), []byte(`{"words":[]}`), 0644))

	info := SetWorkspaceInfo(WorkspaceInfo{RootDir: root})
	defer RemoveSession(info.SessionID)

	_, err := uuid.Parse(info.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "cspell.json"), info.SettingsFile)
	assert.Equal(t, root, GetRootDir(info.SessionID))
	assert.Contains(t, ListSessions(), info.SessionID)
}

func TestHandleWorkspaceOperations(t *testing.T) {
	root := t.TempDir()

	result, err := call(t, map[string]interface{}{"operation": "initialize", "root_dir": root, "session_id": "spell-test"})
	require.NoError(t, err)
	defer RemoveSession("spell-test")
	assert.Contains(t, text(result), "Session ID: spell-test")
	assert.Contains(t, text(result), "Settings file: none")

	result, err = call(t, map[string]interface{}{"operation": "get", "session_id": "spell-test"})
	require.NoError(t, err)
	assert.Contains(t, text(result), root)

	result, err = call(t, map[string]interface{}{"operation": "list"})
	require.NoError(t, err)
	assert.Contains(t, text(result), "spell-test")

	_, err = call(t, map[string]interface{}{"operation": "get", "session_id": "missing"})
	assert.Error(t, err)

	_, err = call(t, map[string]interface{}{"operation": "initialize", "root_dir": filepath.Join(root, "nope")})
	assert.Error(t, err)

	_, err = call(t, map[string]interface{}{"operation": "explode"})
	assert.Error(t, err)
}

func TestRootDirFallsBackToEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvRootDir, dir)

	assert.Equal(t, dir, GetRootDir("unknown-session"))
	assert.Equal(t, filepath.Join(dir, "a.txt"), ResolveRelativePath("a.txt", "unknown-session"))
	assert.Equal(t, "/abs/a.txt", ResolveRelativePath("/abs/a.txt", "unknown-session"))

	t.Setenv(EnvRootDir, "")
	assert.Equal(t, ".", GetRootDir("unknown-session"))
}

func TestWorkspaceResource(t *testing.T) {
	info := SetWorkspaceInfo(WorkspaceInfo{RootDir: t.TempDir(), SessionID: "resource-test"})
	defer RemoveSession(info.SessionID)

	var request mcp.ReadResourceRequest
	request.Params.URI = "workspace://info/resource-test"
	contents, err := HandleWorkspaceResource(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, info.RootDir)

	request.Params.URI = "workspace://info"
	contents, err = HandleWorkspaceResource(context.Background(), request)
	require.NoError(t, err)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, "resource-test")
}
