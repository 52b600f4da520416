package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/doctree/internal/debug"
	"github.com/standardbeagle/doctree/internal/parser"
	"github.com/standardbeagle/doctree/internal/semantics"
	"github.com/standardbeagle/doctree/internal/types"
)

func parseSource(t *testing.T, source string) (*semantics.Program, *semantics.SourceFile) {
	t.Helper()
	p := parser.New()
	t.Cleanup(p.Close)

	tree, err := p.ParseFile(1, "/proj/a.ts", []byte(source))
	require.NoError(t, err)

	program := semantics.NewProgram("/proj")
	file := program.AddFile("/proj/a.ts", []byte(source), tree)
	return program, file
}

func findKind(node *sitter.Node, kind string) *sitter.Node {
	if node.Kind() == kind {
		return node
	}
	count := node.NamedChildCount()
	for i := uint(0); i < count; i++ {
		if child := node.NamedChild(i); child != nil {
			if found := findKind(child, kind); found != nil {
				return found
			}
		}
	}
	return nil
}

func TestForBindingResolvesJSDoc(t *testing.T) {
	program, _ := parseSource(t, "/** Greets the caller. */\nexport function greet() {}\n")
	r := NewResolver(debug.Discard("comments"))

	b := program.LookupName("greet")
	require.NotNil(t, b)

	c := r.ForBinding(b, types.KindFunction, Options{Style: StyleJSDoc})
	require.NotNil(t, c)
	assert.Equal(t, "Greets the caller.", c.Summary)
}

func TestForBindingClimbsToExportStatement(t *testing.T) {
	// The comment sits before the export statement, two levels above the
	// declarator the binding points at.
	program, _ := parseSource(t, "/** The answer. */\nexport const answer = 42;\n")
	r := NewResolver(debug.Discard("comments"))

	b := program.LookupName("answer")
	require.NotNil(t, b)

	c := r.ForBinding(b, types.KindVariable, Options{Style: StyleJSDoc})
	require.NotNil(t, c)
	assert.Equal(t, "The answer.", c.Summary)
}

func TestForBindingStyleFiltering(t *testing.T) {
	program, _ := parseSource(t, "// line comment docs\nfunction f() {}\n")
	r := NewResolver(debug.Discard("comments"))

	b := program.LookupName("f")
	require.NotNil(t, b)

	assert.Nil(t, r.ForBinding(b, types.KindFunction, Options{Style: StyleJSDoc}))

	c := r.ForBinding(b, types.KindFunction, Options{Style: StyleLine})
	require.NotNil(t, c)
	assert.Equal(t, "line comment docs", c.Summary)
}

func TestForBindingMergesAdjacentLineComments(t *testing.T) {
	program, _ := parseSource(t, "// First line.\n// Second line.\nfunction f() {}\n")
	r := NewResolver(debug.Discard("comments"))

	b := program.LookupName("f")
	require.NotNil(t, b)

	c := r.ForBinding(b, types.KindFunction, Options{Style: StyleLine})
	require.NotNil(t, c)
	assert.Equal(t, "First line.\nSecond line.", c.Summary)
}

func TestForBindingNoComment(t *testing.T) {
	program, _ := parseSource(t, "function bare() {}\n")
	r := NewResolver(debug.Discard("comments"))

	b := program.LookupName("bare")
	require.NotNil(t, b)
	assert.Nil(t, r.ForBinding(b, types.KindFunction, Options{Style: StyleAll}))
	assert.Nil(t, r.ForBinding(nil, types.KindFunction, Options{Style: StyleAll}))
}

func TestForFile(t *testing.T) {
	_, file := parseSource(t, "/** Module docs. */\n\nconst x = 1;\n")
	r := NewResolver(debug.Discard("comments"))

	c := r.ForFile(file, Options{Style: StyleJSDoc})
	require.NotNil(t, c)
	assert.Equal(t, "Module docs.", c.Summary)
}

func TestForFileWithoutLeadingComment(t *testing.T) {
	_, file := parseSource(t, "const x = 1;\n")
	r := NewResolver(debug.Discard("comments"))
	assert.Nil(t, r.ForFile(file, Options{Style: StyleAll}))
}

func TestForTagDeclaration(t *testing.T) {
	_, file := parseSource(t, "/** @typedef {Object} Options */\nconst x = 1;\n")
	r := NewResolver(debug.Discard("comments"))

	commentNode := findKind(file.Root(), "comment")
	require.NotNil(t, commentNode)

	c := r.ForTagDeclaration(file, commentNode, Options{Style: StyleJSDoc})
	require.NotNil(t, c)
	require.NotNil(t, c.Tag("typedef"))

	// Only comment nodes qualify.
	assert.Nil(t, r.ForTagDeclaration(file, file.Root(), Options{Style: StyleJSDoc}))
}

func TestResolvedCommentsAreIsolatedCopies(t *testing.T) {
	program, _ := parseSource(t, "/** Shared docs. */\nexport const both = 1;\n")
	r := NewResolver(debug.Discard("comments"))

	b := program.LookupName("both")
	require.NotNil(t, b)

	first := r.ForBinding(b, types.KindVariable, Options{Style: StyleJSDoc})
	second := r.ForBinding(b, types.KindVariable, Options{Style: StyleJSDoc})
	require.NotNil(t, first)
	require.NotNil(t, second)
	require.NotSame(t, first, second)

	first.AddModifierTag("internal")
	assert.False(t, second.HasModifier("internal"), "mutating one attachment must not leak into another")
}

func TestLinkResolutionThroughProgram(t *testing.T) {
	source := "class Widget {}\n/** See {@link Widget}. */\nexport function make() {}\n"
	program, _ := parseSource(t, source)
	r := NewResolver(debug.Discard("comments"))

	b := program.LookupName("make")
	require.NotNil(t, b)

	c := r.ForBinding(b, types.KindFunction, Options{Style: StyleJSDoc, Program: program})
	require.NotNil(t, c)
	require.Len(t, c.Links, 1)
	assert.Equal(t, "Widget", c.Links[0].Text)
	assert.Equal(t, program.LookupName("Widget").ID, c.Links[0].Target)
}
