package spellcheck

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
	"github.com/Code-Monger/SpellSpinneret/pkg/settings"
	"github.com/Code-Monger/SpellSpinneret/pkg/stats"
	"github.com/Code-Monger/SpellSpinneret/pkg/validator"
	"github.com/Code-Monger/SpellSpinneret/pkg/workspace"
)

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

func boolArg(arguments map[string]interface{}, name string, def bool) bool {
	if v, ok := arguments[name].(bool); ok {
		return v
	}
	return def
}

func stringList(arguments map[string]interface{}, name string) []string {
	var out []string
	if values, ok := arguments[name].([]interface{}); ok {
		for _, v := range values {
			if s, ok := v.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// formatResults renders issues the way the spellcheck tools report them.
// Lines and columns are shown one based.
func formatResults(results []SpellCheckResult, warnings []string) string {
	var summary strings.Builder

	if len(results) == 0 {
		summary.WriteString("No spelling issues found.\n")
	} else {
		summary.WriteString(fmt.Sprintf("Found %d spelling issues:\n\n", len(results)))
		for i, issue := range results {
			summary.WriteString(fmt.Sprintf("%d. ", i+1))
			if issue.FilePath != "" {
				summary.WriteString(fmt.Sprintf("File: %s\n   ", issue.FilePath))
			}
			summary.WriteString(fmt.Sprintf("Line: %d, Columns: %d-%d\n", issue.Range.StartLine+1, issue.Range.StartColumn+1, issue.Range.EndColumn+1))
			summary.WriteString(fmt.Sprintf("   Word: %s\n", issue.Text))
			summary.WriteString(fmt.Sprintf("   Message: %s\n", issue.Message))
			summary.WriteString(fmt.Sprintf("   Context: %s\n", strings.TrimSpace(issue.Context)))
			if len(issue.Suggestions) > 0 {
				summary.WriteString(fmt.Sprintf("   Suggestions: %s\n", strings.Join(issue.Suggestions, ", ")))
			}
			summary.WriteString("\n")
		}
	}

	if len(warnings) > 0 {
		summary.WriteString("\nWarnings:\n")
		for _, w := range warnings {
			summary.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}
	return summary.String()
}

// HandleSpellCheck is the handler function for the spellcheck tool
func (s *Service) HandleSpellCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	path, ok := arguments["path"].(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("path must be a string")
	}

	sessionID, _ := arguments["session_id"].(string)
	languageID, _ := arguments["language_id"].(string)
	opts := CheckOptions{
		Root:        workspace.GetRootDir(sessionID),
		LanguageID:  languageID,
		Recursive:   boolArg(arguments, "recursive", true),
		Suggestions: boolArg(arguments, "suggestions", false),
	}
	useRelativePaths := boolArg(arguments, "use_relative_paths", true)

	if abs, err := filepath.Abs(opts.Root); err == nil {
		opts.Root = abs
	}
	log.Printf("[SpellCheck] Using workspace root directory: %s", opts.Root)

	summary, err := s.CheckPath(ctx, workspace.ResolveRelativePath(path, sessionID), opts)
	if err != nil {
		return nil, fmt.Errorf("error performing spell check: %v", err)
	}

	if useRelativePaths {
		for i := range summary.Results {
			if rel, err := filepath.Rel(opts.Root, summary.Results[i].FilePath); err == nil {
				summary.Results[i].FilePath = rel
			}
		}
	}

	stats.RecordChecks(stats.CheckStats{
		DocumentsChecked: summary.Checked,
		DocumentsSkipped: summary.Skipped,
		IssuesFound:      len(summary.Results),
	})

	text := formatResults(summary.Results, summary.Warnings)
	text += fmt.Sprintf("\nChecked %d files, skipped %d.\n", summary.Checked, summary.Skipped)
	return textResult(text), nil
}

// HandleSpellCheckText is the handler function for the spellcheck_text tool
func (s *Service) HandleSpellCheckText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	text, ok := arguments["text"].(string)
	if !ok {
		return nil, fmt.Errorf("text must be a string")
	}

	languageID, _ := arguments["language_id"].(string)
	if languageID == "" {
		languageID = "plaintext"
	}
	sessionID, _ := arguments["session_id"].(string)

	cfg := s.Settings(workspace.GetRootDir(sessionID))
	override := settings.Settings{Words: stringList(arguments, "words")}
	if language, _ := arguments["language"].(string); language != "" {
		override.Language = language
	}
	cfg = settings.Merge(cfg, override)

	doc := validator.Document{LanguageID: languageID, Text: text}
	results, err := s.CheckText(ctx, doc, cfg, boolArg(arguments, "suggestions", true))

	var warnings []string
	var loadErr *dictionary.DictionaryLoadError
	switch {
	case errors.As(err, &loadErr):
		warnings = append(warnings, err.Error())
	case err != nil:
		return nil, fmt.Errorf("error performing spell check: %v", err)
	}

	stats.RecordChecks(stats.CheckStats{DocumentsChecked: 1, IssuesFound: len(results)})
	return textResult(formatResults(results, warnings)), nil
}

// HandleSuggest is the handler function for the spellcheck_suggest tool
func (s *Service) HandleSuggest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	word, ok := arguments["word"].(string)
	if !ok || strings.TrimSpace(word) == "" {
		return nil, fmt.Errorf("word must be a string")
	}

	count := dictionary.DefaultSuggestionCount
	if c, ok := arguments["count"].(float64); ok && c > 0 {
		count = int(c)
	}

	sessionID, _ := arguments["session_id"].(string)
	locales := s.Settings(workspace.GetRootDir(sessionID)).Locales()
	if language, _ := arguments["language"].(string); language != "" {
		locales = settings.Settings{Language: language}.Locales()
	}

	suggestions, err := s.Suggest(ctx, word, locales, count)
	if err != nil {
		return nil, err
	}

	if len(suggestions) == 0 {
		return textResult(fmt.Sprintf("No suggestions for %q.", word)), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Suggestions for %q:\n\n", word)
	for i, sg := range suggestions {
		fmt.Fprintf(&b, "%d. %s (distance %d, similarity %.2f)\n", i+1, sg.Word, sg.Distance, sg.Similarity)
	}
	return textResult(b.String()), nil
}

func (s *Service) handleAddWord(ctx context.Context, request mcp.CallToolRequest, scope dictionary.Scope) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	word, ok := arguments["word"].(string)
	word = strings.TrimSpace(word)
	if !ok || word == "" || strings.ContainsAny(word, " \t\r\n") {
		return nil, fmt.Errorf("word must be a single word")
	}
	sessionID, _ := arguments["session_id"].(string)

	target, err := s.AddWord(ctx, word, scope, workspace.GetRootDir(sessionID))
	var persistErr *dictionary.PersistError
	switch {
	case errors.As(err, &persistErr):
		return textResult(fmt.Sprintf("Added %q for this session.\nWarning: %v", word, err)), nil
	case err != nil:
		return nil, err
	}
	return textResult(fmt.Sprintf("Added %q to the %s dictionary (%s).", word, scope, target)), nil
}

// HandleAddUserWord is the handler function for the add_word_to_user_dictionary tool
func (s *Service) HandleAddUserWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleAddWord(ctx, request, dictionary.ScopeUser)
}

// HandleAddWorkspaceWord is the handler function for the add_word_to_workspace_dictionary tool
func (s *Service) HandleAddWorkspaceWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleAddWord(ctx, request, dictionary.ScopeWorkspace)
}

// RegisterSpellCheck registers the spell checking tools with the MCP server
func RegisterSpellCheck(mcpServer *server.MCPServer, s *Service) {
	spellCheckTool := mcp.NewTool("spellcheck",
		mcp.WithDescription("Checks spelling in a file or in every file of a directory. Honors cspell settings files (words, ignoreWords, flagWords, ignoreRegExpList, language) and in-document cSpell: directives. Code files accept the keywords of their language."),
		mcp.WithString("path",
			mcp.Description("The path of the file or directory to check (absolute or relative to the workspace root)"),
			mcp.Required(),
		),
		mcp.WithString("language_id",
			mcp.Description("Language id of the files, e.g. 'go', 'markdown' (default: detected from the file extension)"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Whether to check files recursively in subdirectories (default: true)"),
		),
		mcp.WithBoolean("use_relative_paths",
			mcp.Description("Whether to use paths relative to the workspace root in the results (default: true)"),
		),
		mcp.WithBoolean("suggestions",
			mcp.Description("Whether to include correction suggestions for each issue (default: false)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID to use for resolving relative paths and workspace settings"),
		),
	)
	mcpServer.AddTool(spellCheckTool, stats.WrapHandler("spellcheck", s.HandleSpellCheck))

	textTool := mcp.NewTool("spellcheck_text",
		mcp.WithDescription("Checks spelling of a text snippet and returns each unknown word with its position and suggestions"),
		mcp.WithString("text",
			mcp.Description("The text to check"),
			mcp.Required(),
		),
		mcp.WithString("language_id",
			mcp.Description("Language id of the text (default: 'plaintext')"),
		),
		mcp.WithString("language",
			mcp.Description("Dictionary locale(s), comma separated, e.g. 'en' or 'en,fr' (default: from settings)"),
		),
		mcp.WithArray("words",
			mcp.Description("Additional words to accept"),
		),
		mcp.WithBoolean("suggestions",
			mcp.Description("Whether to include correction suggestions (default: true)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID whose workspace settings apply"),
		),
	)
	mcpServer.AddTool(textTool, stats.WrapHandler("spellcheck_text", s.HandleSpellCheckText))

	suggestTool := mcp.NewTool("spellcheck_suggest",
		mcp.WithDescription("Suggests corrections for a word, closest edit distance first"),
		mcp.WithString("word",
			mcp.Description("The misspelled word"),
			mcp.Required(),
		),
		mcp.WithString("language",
			mcp.Description("Dictionary locale(s) (default: from settings)"),
		),
		mcp.WithNumber("count",
			mcp.Description("Maximum number of suggestions (default: 5)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID whose workspace settings apply"),
		),
	)
	mcpServer.AddTool(suggestTool, stats.WrapHandler("spellcheck_suggest", s.HandleSuggest))

	userTool := mcp.NewTool("add_word_to_user_dictionary",
		mcp.WithDescription("Adds a word to the user dictionary. The word is accepted immediately and saved to the user settings file."),
		mcp.WithString("word",
			mcp.Description("The word to add"),
			mcp.Required(),
		),
	)
	mcpServer.AddTool(userTool, stats.WrapHandler("add_word_to_user_dictionary", s.HandleAddUserWord))

	workspaceTool := mcp.NewTool("add_word_to_workspace_dictionary",
		mcp.WithDescription("Adds a word to the workspace dictionary. The word is accepted immediately and saved to the workspace settings file."),
		mcp.WithString("word",
			mcp.Description("The word to add"),
			mcp.Required(),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID of the workspace"),
		),
	)
	mcpServer.AddTool(workspaceTool, stats.WrapHandler("add_word_to_workspace_dictionary", s.HandleAddWorkspaceWord))

	log.Printf("[SpellCheck] Registered spell checking tools")
}
