package loader

import (
	"context"
	"os"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/doctree/internal/config"
	"github.com/standardbeagle/doctree/internal/debug"
	"github.com/standardbeagle/doctree/internal/errors"
	"github.com/standardbeagle/doctree/internal/parser"
	"github.com/standardbeagle/doctree/internal/semantics"
	"github.com/standardbeagle/doctree/internal/types"
	"github.com/standardbeagle/doctree/pkg/pathutil"
)

// Loader discovers entry files and assembles them into a compilation unit.
// Parsing runs in parallel; binding happens sequentially afterward in path
// order, so the resulting program is deterministic.
type Loader struct {
	parser *parser.Parser
	logger *debug.Logger
}

// New creates a loader.
func New(logger *debug.Logger) *Loader {
	if logger == nil {
		logger = debug.Discard("loader")
	}
	return &Loader{
		parser: parser.New(),
		logger: logger,
	}
}

// Close releases parser resources.
func (l *Loader) Close() {
	l.parser.Close()
}

// LoadProgram builds one program from the configured entry patterns.
// Per-file read and parse failures are collected and reported together;
// only cancellation aborts the walk early.
func (l *Loader) LoadProgram(ctx context.Context, cfg *config.Config) (*semantics.Program, error) {
	paths, err := l.discover(cfg)
	if err != nil {
		return nil, err
	}
	l.logger.Printf("discovered %d files under %s", len(paths), cfg.Project.Root)

	type parsed struct {
		path    string
		content []byte
		tree    *tree_sitter.Tree
		err     error
	}

	results := make([]parsed, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				results[i].err = errors.NewFileError("read", path, err)
				return nil
			}
			tree, err := l.parser.ParseFile(types.FileID(i+1), path, content)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i] = parsed{path: path, content: content, tree: tree}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failures := make([]error, 0, len(results))
	for _, r := range results {
		failures = append(failures, r.err)
	}
	if multi := errors.NewMultiError(failures); len(multi.Errors) > 0 {
		l.logger.Error("%d of %d files failed to load", len(multi.Errors), len(paths))
		return nil, multi
	}

	program := semantics.NewProgram(cfg.Project.Root)
	for _, r := range results {
		program.AddFile(r.path, r.content, r.tree)
	}
	return program, nil
}

// discover expands entry globs under the project root and filters excludes.
// Paths come back absolute and sorted.
func (l *Loader) discover(cfg *config.Config) ([]string, error) {
	rootFS := os.DirFS(cfg.Project.Root)
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range cfg.Entry {
		matches, err := doublestar.Glob(rootFS, pattern)
		if err != nil {
			return nil, errors.NewConfigError("entry", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] || !parser.Supported(rel) || l.excluded(cfg, rel) {
				continue
			}
			seen[rel] = true
			paths = append(paths, pathutil.ToAbsolute(cfg.Project.Root, rel))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func (l *Loader) excluded(cfg *config.Config, rel string) bool {
	for _, pattern := range cfg.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
