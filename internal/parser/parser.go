package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/standardbeagle/doctree/internal/errors"
	"github.com/standardbeagle/doctree/internal/types"
)

// Parser manages tree-sitter parsers for the languages doctree documents.
// Languages are initialized lazily under a mutex; the CGO grammar setup is
// cheap but not free, and most runs touch a single language.
type Parser struct {
	mu          sync.Mutex
	parsers     map[string]*tree_sitter.Parser
	initialized map[string]bool
}

// New creates a parser with no languages loaded yet.
func New() *Parser {
	return &Parser{
		parsers:     make(map[string]*tree_sitter.Parser),
		initialized: make(map[string]bool),
	}
}

// Supported reports whether the file extension maps to a known grammar.
func Supported(path string) bool {
	return languageForPath(path) != ""
}

// languageForPath maps a file path to its grammar key.
func languageForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts", ".tsx":
		return "typescript"
	case ".js", ".mjs", ".cjs", ".jsx":
		return "javascript"
	}
	return ""
}

// ParseFile parses source content for the given path. The returned tree must
// outlive every syntax node taken from it; callers hand it to the program,
// which retains it.
func (p *Parser) ParseFile(fileID types.FileID, path string, content []byte) (*tree_sitter.Tree, error) {
	lang := languageForPath(path)
	if lang == "" {
		return nil, errors.NewParseError(fileID, path, 0, 0,
			fmt.Errorf("unsupported file extension %q", filepath.Ext(path)))
	}

	parser, err := p.parserFor(lang)
	if err != nil {
		return nil, errors.NewParseError(fileID, path, 0, 0, err)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.NewParseError(fileID, path, 0, 0,
			fmt.Errorf("parser returned no tree for language %s", lang))
	}
	return tree, nil
}

// parserFor returns the initialized parser for a grammar key, creating it on
// first use.
func (p *Parser) parserFor(lang string) (*tree_sitter.Parser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized[lang] {
		return p.parsers[lang], nil
	}

	var language *tree_sitter.Language
	switch lang {
	case "typescript":
		language = tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	case "javascript":
		language = tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	default:
		return nil, fmt.Errorf("unknown language %q", lang)
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set %s language: %w", lang, err)
	}

	p.parsers[lang] = parser
	p.initialized[lang] = true
	return parser, nil
}

// Close releases every initialized parser.
func (p *Parser) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for lang, parser := range p.parsers {
		parser.Close()
		delete(p.parsers, lang)
		delete(p.initialized, lang)
	}
}
