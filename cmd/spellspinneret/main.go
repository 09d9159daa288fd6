package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/Code-Monger/SpellSpinneret/pkg/dictionary"
	"github.com/Code-Monger/SpellSpinneret/pkg/settings"
	"github.com/Code-Monger/SpellSpinneret/pkg/spellcheck"
	"github.com/Code-Monger/SpellSpinneret/pkg/validator"
)

// Version is the command line version.
var Version = "1.0.0"

// errIssuesFound makes the process exit with status 1 after a check that
// reported issues.
var errIssuesFound = errors.New("spelling issues found")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		if errors.Is(err, errIssuesFound) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "spellspinneret",
		Usage:                  "Spell checker for source code and documents",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Settings file applied over the workspace settings (cspell.json or cspell.toml)",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Workspace root whose settings files apply",
				Value:   ".",
			},
			&cli.StringSliceFlag{
				Name:  "dict-dir",
				Usage: "Directory with <locale>.txt word lists (repeatable)",
			},
			&cli.StringFlag{
				Name:  "user-settings",
				Usage: "User settings file that user words are added to",
				Value: settings.DefaultUserFile,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log progress to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if !c.Bool("verbose") {
				log.SetOutput(io.Discard)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Check files, directories, or stdin (-)",
				ArgsUsage: "[path ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "language-id",
						Aliases: []string{"l"},
						Usage:   "Language id of the input (default: detected from the file extension)",
					},
					&cli.StringFlag{
						Name:  "locale",
						Usage: "Dictionary locale(s), comma separated",
					},
					&cli.IntFlag{
						Name:  "max-problems",
						Usage: "Maximum number of issues reported per document",
					},
					&cli.BoolFlag{
						Name:  "suggestions",
						Usage: "Include correction suggestions",
					},
					&cli.BoolFlag{
						Name:  "no-recursive",
						Usage: "Do not descend into subdirectories",
					},
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: checkCommand,
			},
			{
				Name:      "suggest",
				Usage:     "Suggest corrections for a word",
				ArgsUsage: "<word>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Maximum number of suggestions",
						Value:   dictionary.DefaultSuggestionCount,
					},
					&cli.StringFlag{
						Name:  "locale",
						Usage: "Dictionary locale(s), comma separated",
					},
				},
				Action: suggestCommand,
			},
			{
				Name:      "add-word",
				Usage:     "Add a word to the user or workspace dictionary",
				ArgsUsage: "<word>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "workspace",
						Aliases: []string{"w"},
						Usage:   "Add to the workspace settings file instead of the user settings file",
					},
				},
				Action: addWordCommand,
			},
		},
	}
}

// newService builds the service from the global flags.
func newService(c *cli.Context) *spellcheck.Service {
	store := dictionary.NewStore(dictionary.DefaultLoader(c.StringSlice("dict-dir")...))
	return spellcheck.NewService(store, c.String("user-settings"))
}

func rootDir(c *cli.Context) (string, error) {
	root, err := filepath.Abs(c.String("root"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path %q: %w", c.String("root"), err)
	}
	return root, nil
}

// overrides returns the settings given on the command line: the --config
// file, then individual flags.
func overrides(c *cli.Context) (settings.Settings, error) {
	var out settings.Settings
	if path := c.String("config"); path != "" {
		loaded, err := settings.Load(path)
		if err != nil {
			return out, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		out = loaded
	}
	flags := settings.Settings{
		Language:            c.String("locale"),
		MaxNumberOfProblems: c.Int("max-problems"),
	}
	return settings.Merge(out, flags), nil
}

func checkCommand(c *cli.Context) error {
	root, err := rootDir(c)
	if err != nil {
		return err
	}
	cfg, err := overrides(c)
	if err != nil {
		return err
	}
	svc := newService(c)

	paths := c.Args().Slice()
	if len(paths) == 0 {
		paths = []string{root}
	}

	summary := &spellcheck.CheckSummary{}
	for _, path := range paths {
		if path == "-" {
			if err := checkStdin(c, svc, root, cfg, summary); err != nil {
				return err
			}
			continue
		}
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		result, err := svc.CheckPath(c.Context, path, spellcheck.CheckOptions{
			Root:        root,
			LanguageID:  c.String("language-id"),
			Recursive:   !c.Bool("no-recursive"),
			Suggestions: c.Bool("suggestions"),
			Overrides:   cfg,
		})
		if err != nil {
			return err
		}
		summary.Results = append(summary.Results, result.Results...)
		summary.Checked += result.Checked
		summary.Skipped += result.Skipped
		summary.Warnings = append(summary.Warnings, result.Warnings...)
	}

	for i := range summary.Results {
		if rel, err := filepath.Rel(root, summary.Results[i].FilePath); err == nil && summary.Results[i].FilePath != "" {
			summary.Results[i].FilePath = filepath.ToSlash(rel)
		}
	}

	if c.Bool("json") {
		if err := writeJSON(c.App.Writer, summary); err != nil {
			return err
		}
	} else {
		writeHuman(c.App.Writer, summary)
	}

	if len(summary.Results) > 0 {
		return errIssuesFound
	}
	return nil
}

func checkStdin(c *cli.Context, svc *spellcheck.Service, root string, cfg settings.Settings, summary *spellcheck.CheckSummary) error {
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	languageID := c.String("language-id")
	if languageID == "" {
		languageID = "plaintext"
	}

	doc := validator.Document{URI: "-", LanguageID: languageID, Text: string(data)}
	results, err := svc.CheckText(c.Context, doc, settings.Merge(svc.Settings(root), cfg), c.Bool("suggestions"))
	summary.Add("-", results, err)
	return nil
}

func writeJSON(w io.Writer, summary *spellcheck.CheckSummary) error {
	report := struct {
		Issues   []spellcheck.SpellCheckResult `json:"issues"`
		Checked  int                           `json:"checked"`
		Skipped  int                           `json:"skipped"`
		Warnings []string                      `json:"warnings,omitempty"`
	}{
		Issues:   summary.Results,
		Checked:  summary.Checked,
		Skipped:  summary.Skipped,
		Warnings: summary.Warnings,
	}
	if report.Issues == nil {
		report.Issues = []spellcheck.SpellCheckResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeHuman prints one file:line:column line per issue.
func writeHuman(w io.Writer, summary *spellcheck.CheckSummary) {
	for _, r := range summary.Results {
		fmt.Fprintf(w, "%s:%d:%d - %s", r.FilePath, r.Range.StartLine+1, r.Range.StartColumn+1, r.Message)
		if len(r.Suggestions) > 0 {
			fmt.Fprintf(w, " (%v)", r.Suggestions)
		}
		fmt.Fprintln(w)
	}
	for _, warning := range summary.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	fmt.Fprintf(w, "Checked %d files, skipped %d, %d issues.\n", summary.Checked, summary.Skipped, len(summary.Results))
}

func suggestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("suggest takes exactly one word")
	}
	root, err := rootDir(c)
	if err != nil {
		return err
	}
	svc := newService(c)

	locales := svc.Settings(root).Locales()
	if locale := c.String("locale"); locale != "" {
		locales = settings.Settings{Language: locale}.Locales()
	}

	suggestions, err := svc.Suggest(c.Context, c.Args().First(), locales, c.Int("count"))
	if err != nil {
		return err
	}
	for _, sg := range suggestions {
		fmt.Fprintln(c.App.Writer, sg.Word)
	}
	return nil
}

func addWordCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("add-word takes exactly one word")
	}
	root, err := rootDir(c)
	if err != nil {
		return err
	}
	svc := newService(c)

	scope := dictionary.ScopeUser
	if c.Bool("workspace") {
		scope = dictionary.ScopeWorkspace
	}

	target, err := svc.AddWord(c.Context, c.Args().First(), scope, root)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Added %q to %s\n", c.Args().First(), target)
	return nil
}
