package spellcheck

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
	"github.com/Code-Monger/SpellSpinneret/pkg/exclusion"
	"github.com/Code-Monger/SpellSpinneret/pkg/settings"
	"github.com/Code-Monger/SpellSpinneret/pkg/validator"
)

// suggestionCount is the number of suggestions attached to each issue when
// suggestions are requested.
const suggestionCount = 3

// CheckOptions control a file or directory check
type CheckOptions struct {
	Root        string
	LanguageID  string
	Recursive   bool
	Suggestions bool
	// Overrides are merged over the workspace settings.
	Overrides settings.Settings
}

// CheckText validates text and returns its issues, with the source line of
// each issue as context. Dictionary load errors are returned together with
// the issues found using the locales that did load.
func (s *Service) CheckText(ctx context.Context, doc validator.Document, cfg settings.Settings, suggest bool) ([]SpellCheckResult, error) {
	seq, err := s.validator.Validate(ctx, doc, cfg)

	var dicts dictionary.Collection
	if suggest {
		dicts, _ = s.store.LoadAll(ctx, cfg.Locales())
	}

	var results []SpellCheckResult
	for issue := range seq {
		result := SpellCheckResult{
			FilePath:   doc.URI,
			LanguageID: doc.LanguageID,
			Context:    lineAt(doc.Text, issue.Offset),
			Issue:      issue,
		}
		if suggest {
			for _, sg := range dictionary.Suggest(dicts, issue.Text, suggestionCount) {
				result.Suggestions = append(result.Suggestions, sg.Word)
			}
		}
		results = append(results, result)
	}
	return results, err
}

// CheckPath checks a file, or every file with a known language below a
// directory. Paths matched by the ignorePaths globs are skipped.
func (s *Service) CheckPath(ctx context.Context, path string, opts CheckOptions) (*CheckSummary, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if abs, err := filepath.Abs(opts.Root); err == nil {
		opts.Root = abs
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path: %v", err)
	}

	cfg := settings.Merge(s.Settings(opts.Root), opts.Overrides)
	excluded := exclusion.Build(cfg.IgnorePaths, opts.Root)
	summary := &CheckSummary{}

	if !info.IsDir() {
		if excluded(path) {
			summary.Skipped++
			return summary, nil
		}
		s.checkFile(ctx, path, cfg, opts, summary)
		return summary, nil
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("[SpellCheck] Error accessing %s: %v", p, err)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p == path {
				return nil
			}
			if !opts.Recursive || excluded(p) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, known := dictionary.GetLanguageByExtension(filepath.Ext(p)); !known && opts.LanguageID == "" {
			return nil
		}
		if excluded(p) {
			summary.Skipped++
			return nil
		}
		s.checkFile(ctx, p, cfg, opts, summary)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %v", err)
	}
	return summary, nil
}

func (s *Service) checkFile(ctx context.Context, path string, cfg settings.Settings, opts CheckOptions, summary *CheckSummary) {
	data, err := os.ReadFile(path)
	if err != nil {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("%s: %v", path, err))
		return
	}

	languageID := opts.LanguageID
	if languageID == "" {
		languageID = dictionary.LanguageIDForPath(path)
	}
	if !cfg.LanguageEnabled(languageID) {
		summary.Skipped++
		return
	}

	doc := validator.Document{URI: path, LanguageID: languageID, Text: string(data)}
	results, err := s.CheckText(ctx, doc, cfg, opts.Suggestions)
	summary.Add(path, results, err)
}

// lineAt returns the line of text containing offset, without its line
// terminator.
func lineAt(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += offset
	}
	return strings.TrimRight(text[start:end], "\r")
}
