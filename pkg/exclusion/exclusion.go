// Package exclusion decides whether a file is skipped by the spell checker.
package exclusion

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Func reports whether a path is excluded.
type Func func(path string) bool

// Build compiles globs into an exclusion function. A path is excluded when
// it, or one of its ancestors below root, matches a glob. Relative globs are
// matched against the slash separated path relative to root; globs starting
// with / are matched against the absolute path. Root itself and paths
// outside root never match.
// Invalid globs are logged and dropped.
func Build(globs []string, root string) Func {
	var patterns []string
	for _, g := range globs {
		g = strings.TrimSuffix(filepath.ToSlash(strings.TrimSpace(g)), "/")
		if g == "" {
			continue
		}
		if !doublestar.ValidatePattern(g) {
			log.Printf("[Exclusion] Ignoring invalid glob %q", g)
			continue
		}
		patterns = append(patterns, g)
	}
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
		root = filepath.Clean(root)
	}

	return func(path string) bool {
		if len(patterns) == 0 || path == "" {
			return false
		}
		p := path
		if !filepath.IsAbs(p) && root != "" {
			p = filepath.Join(root, p)
		}
		p = filepath.Clean(p)
		if root != "" && !within(root, p) {
			return false
		}

		for p != root {
			if matches(patterns, root, p) {
				return true
			}
			parent := filepath.Dir(p)
			if parent == p {
				break
			}
			p = parent
		}
		return false
	}
}

// within reports whether path is root or below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func matches(patterns []string, root, path string) bool {
	abs := filepath.ToSlash(path)
	rel := abs
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil {
			rel = filepath.ToSlash(r)
		}
	}
	for _, pattern := range patterns {
		target := rel
		if strings.HasPrefix(pattern, "/") {
			target = abs
		}
		if ok, err := doublestar.Match(pattern, target); err == nil && ok {
			return true
		}
	}
	return false
}
