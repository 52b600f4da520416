package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/doctree/internal/comments"
	"github.com/standardbeagle/doctree/internal/errors"
)

// Config is the full doctree configuration, loaded from .doctree.kdl and
// overridden by CLI flags.
type Config struct {
	Version  int
	Project  Project
	Entry    []string
	Exclude  []string
	External External
	Comments Comments
	Output   Output
}

type Project struct {
	Root string
	Name string
}

// External controls which bindings are classified as outside the analyzed
// program boundary.
type External struct {
	// Patterns are glob patterns matched against unit-relative file paths.
	Patterns []string
}

type Comments struct {
	// Style selects which comment shapes count as documentation.
	Style string
	// ResolveLinks enables {@link} cross-reference resolution, which
	// threads the type resolver into comment parsing.
	ResolveLinks bool
}

type Output struct {
	// Path of the JSON model file; empty means stdout.
	Path string
}

// Default returns the configuration used when no .doctree.kdl exists.
func Default() *Config {
	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	return &Config{
		Version: 1,
		Project: Project{Root: cwd},
		Entry:   []string{"**/*.ts", "**/*.tsx", "**/*.js"},
		Exclude: []string{"**/node_modules/**", "**/dist/**", "**/*.d.ts"},
		External: External{
			Patterns: []string{"**/node_modules/**"},
		},
		Comments: Comments{
			Style:        string(comments.StyleJSDoc),
			ResolveLinks: true,
		},
	}
}

// Load reads configuration from the given path, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg, err := LoadKDL(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values, attaching a closest-match suggestion when a
// name is probably a typo.
func (c *Config) Validate() error {
	if c.Project.Root == "" {
		return errors.NewConfigError("project.root", "", fmt.Errorf("must not be empty"))
	}
	if !filepath.IsAbs(c.Project.Root) {
		abs, err := filepath.Abs(c.Project.Root)
		if err != nil {
			return errors.NewConfigError("project.root", c.Project.Root, err)
		}
		c.Project.Root = abs
	}

	style := comments.Style(c.Comments.Style)
	if !style.Valid() {
		err := errors.NewConfigError("comments.style", c.Comments.Style,
			fmt.Errorf("unknown comment style"))
		if suggestion := closest(c.Comments.Style, comments.Styles()); suggestion != "" {
			err = err.WithSuggestion(suggestion)
		}
		return err
	}

	if len(c.Entry) == 0 {
		return errors.NewConfigError("entry", "", fmt.Errorf("at least one entry pattern is required"))
	}
	return nil
}

// Style returns the configured comment style.
func (c *Config) Style() comments.Style {
	return comments.Style(c.Comments.Style)
}

// closest picks the candidate most similar to the input, or "" when nothing
// is close enough to be a plausible typo.
func closest(input string, candidates []string) string {
	best := ""
	bestScore := float32(0)
	for _, cand := range candidates {
		score, err := edlib.StringsSimilarity(input, cand, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	if bestScore < 0.7 {
		return ""
	}
	return best
}
