package spellcheck

import (
	"errors"
	"fmt"

	"github.com/Code-Monger/SpellSpinneret/pkg/validator"
)

// SpellCheckResult represents a spelling issue found in a file
type SpellCheckResult struct {
	FilePath    string   `json:"file_path"`
	LanguageID  string   `json:"language_id"`
	Context     string   `json:"context"`
	Suggestions []string `json:"suggestions,omitempty"`

	validator.Issue
}

// CheckSummary collects the outcome of checking one or more files
type CheckSummary struct {
	Results  []SpellCheckResult
	Checked  int
	Skipped  int
	Warnings []string
}

// Add records the outcome of checking one document. A document for which no
// dictionary could be loaded counts as skipped; any other error is kept as a
// warning next to the document's results.
func (s *CheckSummary) Add(path string, results []SpellCheckResult, err error) {
	if err != nil {
		s.Warnings = append(s.Warnings, fmt.Sprintf("%s: %v", path, err))
		if errors.Is(err, validator.ErrNoDictionaries) {
			s.Skipped++
			return
		}
	}
	s.Checked++
	s.Results = append(s.Results, results...)
}
