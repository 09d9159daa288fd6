package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// ToolStats represents statistics for a single tool
type ToolStats struct {
	Name                 string        `json:"name"`
	CallCount            int           `json:"call_count"`
	ErrorCount           int           `json:"error_count"`
	TotalExecutionTime   time.Duration `json:"total_execution_time"`
	AverageExecutionTime time.Duration `json:"average_execution_time"`
	LastUsed             time.Time     `json:"last_used"`
}

// CheckStats counts spell checking work
type CheckStats struct {
	DocumentsChecked int `json:"documents_checked"`
	DocumentsSkipped int `json:"documents_skipped"`
	IssuesFound      int `json:"issues_found"`
	WordsAdded       int `json:"words_added"`
}

func (c *CheckStats) add(o CheckStats) {
	c.DocumentsChecked += o.DocumentsChecked
	c.DocumentsSkipped += o.DocumentsSkipped
	c.IssuesFound += o.IssuesFound
	c.WordsAdded += o.WordsAdded
}

// SessionStats represents statistics for the current session
type SessionStats struct {
	StartTime time.Time             `json:"start_time"`
	Tools     map[string]*ToolStats `json:"tools"`
	Checks    CheckStats            `json:"checks"`
}

// PersistentStats represents statistics persisted across all sessions
type PersistentStats struct {
	FirstRecorded time.Time             `json:"first_recorded"`
	LastUpdated   time.Time             `json:"last_updated"`
	Tools         map[string]*ToolStats `json:"tools"`
	Checks        CheckStats            `json:"checks"`
}

// StatsManager manages tool usage and spell check statistics
type StatsManager struct {
	sessionStats    *SessionStats
	persistentStats *PersistentStats
	statsFilePath   string
	mutex           sync.RWMutex
}

// NewStatsManager creates a new StatsManager
func NewStatsManager(statsFilePath string) (*StatsManager, error) {
	manager := &StatsManager{
		sessionStats: &SessionStats{
			StartTime: time.Now(),
			Tools:     make(map[string]*ToolStats),
		},
		persistentStats: &PersistentStats{
			FirstRecorded: time.Now(),
			LastUpdated:   time.Now(),
			Tools:         make(map[string]*ToolStats),
		},
		statsFilePath: statsFilePath,
	}

	dir := filepath.Dir(statsFilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for stats file: %v", err)
	}

	data, err := os.ReadFile(statsFilePath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, manager.persistentStats); err != nil {
			return nil, fmt.Errorf("failed to parse stats file: %v", err)
		}
		if manager.persistentStats.Tools == nil {
			manager.persistentStats.Tools = make(map[string]*ToolStats)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read stats file: %v", err)
	}

	return manager, nil
}

func recordTool(tools map[string]*ToolStats, toolName string, executionTime time.Duration, failed bool) {
	tool, ok := tools[toolName]
	if !ok {
		tool = &ToolStats{Name: toolName}
		tools[toolName] = tool
	}
	tool.CallCount++
	if failed {
		tool.ErrorCount++
	}
	tool.TotalExecutionTime += executionTime
	tool.AverageExecutionTime = tool.TotalExecutionTime / time.Duration(tool.CallCount)
	tool.LastUsed = time.Now()
}

// RecordToolUsage records statistics for a tool call
func (m *StatsManager) RecordToolUsage(toolName string, executionTime time.Duration, failed bool) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	recordTool(m.sessionStats.Tools, toolName, executionTime, failed)
	recordTool(m.persistentStats.Tools, toolName, executionTime, failed)
	m.persistentStats.LastUpdated = time.Now()

	return m.savePersistentStats()
}

// RecordChecks adds spell check counters to the session and all-time totals
func (m *StatsManager) RecordChecks(c CheckStats) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessionStats.Checks.add(c)
	m.persistentStats.Checks.add(c)
	m.persistentStats.LastUpdated = time.Now()

	return m.savePersistentStats()
}

// GetSessionStats returns statistics for the current session
func (m *StatsManager) GetSessionStats() *SessionStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stats := &SessionStats{
		StartTime: m.sessionStats.StartTime,
		Tools:     make(map[string]*ToolStats),
		Checks:    m.sessionStats.Checks,
	}
	for name, tool := range m.sessionStats.Tools {
		toolCopy := *tool
		stats.Tools[name] = &toolCopy
	}
	return stats
}

// GetPersistentStats returns statistics persisted across all sessions
func (m *StatsManager) GetPersistentStats() *PersistentStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stats := &PersistentStats{
		FirstRecorded: m.persistentStats.FirstRecorded,
		LastUpdated:   m.persistentStats.LastUpdated,
		Tools:         make(map[string]*ToolStats),
		Checks:        m.persistentStats.Checks,
	}
	for name, tool := range m.persistentStats.Tools {
		toolCopy := *tool
		stats.Tools[name] = &toolCopy
	}
	return stats
}

// ResetSessionStats resets the session statistics
func (m *StatsManager) ResetSessionStats() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessionStats = &SessionStats{
		StartTime: time.Now(),
		Tools:     make(map[string]*ToolStats),
	}
}

// savePersistentStats saves persistent stats to file
func (m *StatsManager) savePersistentStats() error {
	data, err := json.MarshalIndent(m.persistentStats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %v", err)
	}

	if err := os.WriteFile(m.statsFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %v", err)
	}

	return nil
}

func formatTools(tools map[string]*ToolStats) string {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Tool                              | Calls | Errors | Avg Time  | Total Time\n")
	b.WriteString("----------------------------------|-------|--------|-----------|-----------\n")
	for _, name := range names {
		tool := tools[name]
		fmt.Fprintf(&b, "%-34s| %5d | %6d | %9s | %10s\n",
			tool.Name,
			tool.CallCount,
			tool.ErrorCount,
			tool.AverageExecutionTime.Round(time.Millisecond).String(),
			tool.TotalExecutionTime.Round(time.Millisecond).String())
	}
	return b.String()
}

func formatChecks(c CheckStats) string {
	return fmt.Sprintf("Documents checked: %d\nDocuments skipped: %d\nIssues found: %d\nWords added: %d\n",
		c.DocumentsChecked, c.DocumentsSkipped, c.IssuesFound, c.WordsAdded)
}

// FormatStats formats statistics as a string
func FormatStats(sessionStats *SessionStats, persistentStats *PersistentStats) string {
	result := "Spell Checker Statistics\n\n"

	result += "Current Session Statistics:\n"
	result += fmt.Sprintf("Session started: %s\n", sessionStats.StartTime.Format(time.RFC3339))
	result += fmt.Sprintf("Session duration: %s\n", time.Since(sessionStats.StartTime).Round(time.Second))
	result += formatChecks(sessionStats.Checks) + "\n"

	if len(sessionStats.Tools) > 0 {
		result += formatTools(sessionStats.Tools)
	} else {
		result += "No tools used in this session.\n"
	}

	result += "\nAll-Time Statistics:\n"
	result += fmt.Sprintf("First recorded: %s\n", persistentStats.FirstRecorded.Format(time.RFC3339))
	result += fmt.Sprintf("Last updated: %s\n", persistentStats.LastUpdated.Format(time.RFC3339))
	result += formatChecks(persistentStats.Checks) + "\n"

	if len(persistentStats.Tools) > 0 {
		result += formatTools(persistentStats.Tools)
	} else {
		result += "No tools used across all sessions.\n"
	}

	return result
}
