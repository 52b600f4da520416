package comments

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/doctree/internal/debug"
	"github.com/standardbeagle/doctree/internal/model"
	"github.com/standardbeagle/doctree/internal/semantics"
	"github.com/standardbeagle/doctree/internal/types"
)

// cacheSize bounds the resolved-comment cache. Bindings are commonly
// resolved twice (export binding then declaration binding), so even a small
// cache removes most repeated parsing.
const cacheSize = 4096

// Options carries the per-call configuration threaded in from the
// conversion context.
type Options struct {
	Style Style

	// Program enables cross-reference resolution of {@link} targets. It is
	// nil when the configuration disables cross-references.
	Program *semantics.Program
}

// Resolver turns syntax-adjacent comment text into structured comments.
type Resolver struct {
	cache  *lru.Cache[uint64, *model.Comment]
	logger *debug.Logger
}

// NewResolver creates a comment resolver logging through the given logger.
func NewResolver(logger *debug.Logger) *Resolver {
	cache, err := lru.New[uint64, *model.Comment](cacheSize)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &Resolver{cache: cache, logger: logger}
}

// ForBinding resolves the documentation comment attached to a binding's
// declaration, or nil when it has none that the style accepts.
func (r *Resolver) ForBinding(b *semantics.Binding, kind types.ReflectionKind, opts Options) *model.Comment {
	if b == nil || b.Declaration == nil || b.File == nil {
		return nil
	}

	anchor := commentAnchor(b.Declaration)
	commentNode := precedingComment(anchor)
	if commentNode == nil {
		r.logger.Printf("no comment for %s binding %s", kind, b.Name)
		return nil
	}
	return r.parseNode(b.File, commentNode, opts)
}

// ForFile resolves a file-level comment: a comment that opens the file,
// before any declaration.
func (r *Resolver) ForFile(file *semantics.SourceFile, opts Options) *model.Comment {
	root := file.Root()
	if root.NamedChildCount() == 0 {
		return nil
	}
	first := root.NamedChild(0)
	if first == nil || first.Kind() != "comment" {
		return nil
	}
	return r.parseNode(file, first, opts)
}

// ForTagDeclaration parses a comment node that is itself the declaration —
// JSDoc constructs such as @typedef and @callback live entirely inside a
// comment.
func (r *Resolver) ForTagDeclaration(file *semantics.SourceFile, node *sitter.Node, opts Options) *model.Comment {
	if node == nil || node.Kind() != "comment" {
		return nil
	}
	return r.parseNode(file, node, opts)
}

// ForSignature resolves the comment for a signature node, falling back to
// the enclosing declaration's comment when the signature has none of its
// own.
func (r *Resolver) ForSignature(file *semantics.SourceFile, node *sitter.Node, opts Options) *model.Comment {
	if node == nil {
		return nil
	}
	if commentNode := precedingComment(node); commentNode != nil {
		if c := r.parseNode(file, commentNode, opts); c != nil {
			return c
		}
	}
	if parent := node.Parent(); parent != nil {
		if commentNode := precedingComment(commentAnchor(parent)); commentNode != nil {
			return r.parseNode(file, commentNode, opts)
		}
	}
	return nil
}

// parseNode style-filters, caches, and parses one comment node.
func (r *Resolver) parseNode(file *semantics.SourceFile, node *sitter.Node, opts Options) *model.Comment {
	raw := gatherCommentText(file, node, opts.Style)
	if raw == "" || !opts.Style.accepts(raw) {
		return nil
	}

	key := cacheKey(file.Path, node.StartByte(), opts.Style, opts.Program != nil)
	if cached, ok := r.cache.Get(key); ok {
		return cloneComment(cached)
	}

	comment := Parse(raw, opts.Program)
	r.cache.Add(key, comment)
	return cloneComment(comment)
}

// cloneComment copies a cached comment so attachment to one reflection can
// never alias another's.
func cloneComment(c *model.Comment) *model.Comment {
	if c == nil {
		return nil
	}
	out := model.NewComment(c.Summary)
	out.BlockTags = append(out.BlockTags, c.BlockTags...)
	out.Links = append(out.Links, c.Links...)
	for tag := range c.ModifierTags {
		out.AddModifierTag(tag)
	}
	return out
}

// commentAnchor climbs from a declaration to the statement its doc comment
// precedes. Comments on `export const x = ...` sit before the export
// statement, not the declarator, and comments on `export { a as b }` sit
// before the whole export statement.
func commentAnchor(node *sitter.Node) *sitter.Node {
	anchor := node
	for parent := anchor.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case "lexical_declaration", "variable_declaration", "export_clause", "export_statement":
			anchor = parent
		default:
			return anchor
		}
	}
	return anchor
}

// precedingComment returns the comment node immediately before the anchor,
// or nil.
func precedingComment(anchor *sitter.Node) *sitter.Node {
	if anchor == nil {
		return nil
	}
	prev := anchor.PrevNamedSibling()
	if prev == nil || prev.Kind() != "comment" {
		return nil
	}
	return prev
}

// gatherCommentText reads comment text, merging contiguous // lines into one
// group when the style wants line comments.
func gatherCommentText(file *semantics.SourceFile, node *sitter.Node, style Style) string {
	text := file.Text(node)
	if style != StyleLine && style != StyleAll {
		return text
	}
	if !strings.HasPrefix(text, "//") {
		return text
	}

	// Walk upward through adjacent line comments.
	lines := []string{text}
	cur := node
	for {
		prev := cur.PrevNamedSibling()
		if prev == nil || prev.Kind() != "comment" {
			break
		}
		prevText := file.Text(prev)
		if !strings.HasPrefix(prevText, "//") {
			break
		}
		if prev.EndPosition().Row+1 != cur.StartPosition().Row {
			break
		}
		lines = append([]string{prevText}, lines...)
		cur = prev
	}
	return strings.Join(lines, "\n")
}

// cacheKey hashes the comment's identity plus the options that affect its
// parse.
func cacheKey(path string, startByte uint, style Style, linked bool) uint64 {
	h := xxhash.New()
	h.WriteString(path)
	h.WriteString(fmt.Sprintf("|%d|%s|%t", startByte, style, linked))
	return h.Sum64()
}
