package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
)

// FileNames lists the settings files looked up in a workspace root, in
// priority order.
var FileNames = []string{
	"cspell.json",
	"cSpell.json",
	filepath.Join(".vscode", "cSpell.json"),
	filepath.Join(".vscode", "cspell.json"),
	"cspell.toml",
}

// WorkspaceFile is where words added to the workspace dictionary are
// written when the workspace has no settings file yet.
var WorkspaceFile = filepath.Join(".vscode", "cSpell.json")

// DefaultUserFile is the user settings file.
const DefaultUserFile = "~/.cspell/cSpell.json"

// ErrNotFound is returned by Find when a workspace has no settings file.
var ErrNotFound = errors.New("no settings file found")

// LoadError reports a settings file that exists but cannot be used.
type LoadError struct {
	Path       string
	Underlying error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("settings %s: %v", e.Path, e.Underlying)
}

func (e *LoadError) Unwrap() error {
	return e.Underlying
}

// Load reads a settings file. Files ending in .toml are parsed as TOML;
// anything else is parsed as JSON with comments and trailing commas.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, &LoadError{Path: path, Underlying: err}
	}
	s, err := Parse(path, data)
	if err != nil {
		return Settings{}, &LoadError{Path: path, Underlying: err}
	}
	return s, nil
}

// Parse decodes settings data, using the file extension of name to pick the
// format.
func Parse(name string, data []byte) (Settings, error) {
	var s Settings
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		if err := toml.Unmarshal(data, &s); err != nil {
			return Settings{}, err
		}
		return s, nil
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return Settings{}, err
	}
	if err := json.Unmarshal(std, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Find returns the path of the first settings file present in root.
func Find(root string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// LoadOrDefault loads path and merges it over the built-in defaults. A
// missing or corrupt file is logged and the defaults are returned.
func LoadOrDefault(path string) Settings {
	if path == "" {
		return Default()
	}
	s, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[Settings] %s not found, using defaults", path)
		} else {
			log.Printf("[Settings] Warning: %v, using defaults", err)
		}
		return Default()
	}
	return Merge(Default(), s)
}

// LoadWorkspace returns the defaults merged with the user settings file and
// the first settings file found in root. Either file may be absent.
func LoadWorkspace(userFile, root string) Settings {
	layers := []Settings{Default()}
	if userFile != "" {
		if s, err := Load(userFile); err == nil {
			layers = append(layers, s)
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[Settings] Warning: %v", err)
		}
	}
	if root != "" {
		if path, err := Find(root); err == nil {
			if s, err := Load(path); err == nil {
				layers = append(layers, s)
			} else {
				log.Printf("[Settings] Warning: %v", err)
			}
		}
	}
	return Merge(layers...)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

// WorkspaceSettingsPath returns the settings file words should be added to
// for the workspace rooted at root: the existing settings file if there is
// one, otherwise WorkspaceFile.
func WorkspaceSettingsPath(root string) string {
	if path, err := Find(root); err == nil {
		return path
	}
	return filepath.Join(root, WorkspaceFile)
}
