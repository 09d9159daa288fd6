package settings

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
)

// FileWordWriter appends words to a settings file or a plain word list.
//
// JSON settings files are patched in place so comments and layout survive;
// TOML files are rewritten; .txt files get one word per line.
type FileWordWriter struct {
	Path string

	mu sync.Mutex
}

// NewFileWordWriter returns a writer for path.
func NewFileWordWriter(path string) *FileWordWriter {
	return &FileWordWriter{Path: path}
}

// AddWords appends the words that are not already listed.
func (w *FileWordWriter) AddWords(words ...string) error {
	if len(words) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", w.Path, err)
	}

	switch strings.ToLower(filepath.Ext(w.Path)) {
	case ".txt":
		return w.appendWordList(words)
	case ".toml":
		return w.rewriteTOML(words)
	default:
		return w.patchJSON(words)
	}
}

func (w *FileWordWriter) appendWordList(words []string) error {
	f, err := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, word := range words {
		if _, err := bw.WriteString(word + "\n"); err != nil {
			return fmt.Errorf("failed to write word list: %w", err)
		}
	}
	return bw.Flush()
}

func (w *FileWordWriter) rewriteTOML(words []string) error {
	var s Settings
	data, err := os.ReadFile(w.Path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to parse %s: %w", w.Path, err)
		}
	case os.IsNotExist(err):
		s.Version = DefaultVersion
	default:
		return fmt.Errorf("failed to read %s: %w", w.Path, err)
	}

	s.Words = appendUnique(s.Words, words)
	out, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", w.Path, err)
	}
	return os.WriteFile(w.Path, out, 0644)
}

func (w *FileWordWriter) patchJSON(words []string) error {
	data, err := os.ReadFile(w.Path)
	if os.IsNotExist(err) {
		data = []byte(fmt.Sprintf("{\n\t\"version\": %q,\n\t\"words\": []\n}\n", DefaultVersion))
	} else if err != nil {
		return fmt.Errorf("failed to read %s: %w", w.Path, err)
	}

	v, err := hujson.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", w.Path, err)
	}

	var current Settings
	std := v.Clone()
	std.Standardize()
	if err := json.Unmarshal(std.Pack(), &current); err != nil {
		return fmt.Errorf("failed to decode %s: %w", w.Path, err)
	}

	var ops []map[string]any
	if current.Words == nil && !hasKey(std.Pack(), "words") {
		ops = append(ops, map[string]any{"op": "add", "path": "/words", "value": []string{}})
	}
	for _, word := range appendUnique(nil, words) {
		if slices.Contains(current.Words, word) {
			continue
		}
		ops = append(ops, map[string]any{"op": "add", "path": "/words/-", "value": word})
	}
	if len(ops) == 0 {
		return nil
	}

	patch, err := json.Marshal(ops)
	if err != nil {
		return err
	}
	if err := v.Patch(patch); err != nil {
		return fmt.Errorf("failed to update %s: %w", w.Path, err)
	}
	v.Format()
	return os.WriteFile(w.Path, v.Pack(), 0644)
}

func hasKey(data []byte, key string) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return false
	}
	_, ok := m[key]
	return ok
}
