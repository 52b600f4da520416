package semantics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/doctree/internal/parser"
)

func parseInto(t *testing.T, program *Program, path, source string) *SourceFile {
	t.Helper()
	p := parser.New()
	t.Cleanup(p.Close)

	tree, err := p.ParseFile(1, path, []byte(source))
	require.NoError(t, err)
	return program.AddFile(path, []byte(source), tree)
}

func firstOfKind(node *sitter.Node, kind string) *sitter.Node {
	if node.Kind() == kind {
		return node
	}
	count := node.NamedChildCount()
	for i := uint(0); i < count; i++ {
		if child := node.NamedChild(i); child != nil {
			if found := firstOfKind(child, kind); found != nil {
				return found
			}
		}
	}
	return nil
}

func TestBinderRegistersTopLevelDeclarations(t *testing.T) {
	source := `function run() {}
class Widget {}
interface Opts {}
enum Color { Red }
type Alias = string;
const value = 1;
`
	program := NewProgram("/proj")
	parseInto(t, program, "/proj/a.ts", source)

	for _, name := range []string{"run", "Widget", "Opts", "Color", "Alias", "value"} {
		b := program.LookupName(name)
		require.NotNil(t, b, "expected top-level binding for %s", name)
		assert.Equal(t, name, b.Name)
		assert.Equal(t, name, b.EscapedName)
		assert.NotZero(t, b.ID)
		assert.Equal(t, "/proj/a.ts", b.Position.File)
	}
}

func TestBinderPositionsAreOneBased(t *testing.T) {
	program := NewProgram("/proj")
	parseInto(t, program, "/proj/a.ts", "\n\nfunction below() {}\n")

	b := program.LookupName("below")
	require.NotNil(t, b)
	assert.Equal(t, 3, b.Position.Line)
	assert.Equal(t, 10, b.Position.Column, "column points at the name, 1-based")
}

func TestBinderMarksExportedDeclarations(t *testing.T) {
	source := "export function visible() {}\nfunction hidden() {}\n"
	program := NewProgram("/proj")
	parseInto(t, program, "/proj/a.ts", source)

	assert.True(t, program.LookupName("visible").Exported)
	assert.False(t, program.LookupName("hidden").Exported)
}

func TestBinderRecordsDeclaredTypes(t *testing.T) {
	program := NewProgram("/proj")
	parseInto(t, program, "/proj/a.ts", "const n: number = 1;\nconst untyped = 2;\n")

	typed := program.LookupName("n")
	require.NotNil(t, typed)
	require.NotNil(t, typed.DeclaredType())
	assert.Equal(t, "number", typed.DeclaredType().Name)

	assert.Nil(t, program.LookupName("untyped").DeclaredType())
}

func TestBinderBindsEnumMembers(t *testing.T) {
	program := NewProgram("/proj")
	file := parseInto(t, program, "/proj/a.ts", "enum Color {\n  Red,\n  Green = 2,\n}\n")

	body := firstOfKind(file.Root(), "enum_body")
	require.NotNil(t, body)

	var names []string
	count := body.NamedChildCount()
	for i := uint(0); i < count; i++ {
		member := body.NamedChild(i)
		nameNode := member
		if member.Kind() == "enum_assignment" {
			nameNode = member.ChildByFieldName("name")
		}
		b := program.Resolver().BindingOf(nameNode)
		require.NotNil(t, b)
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Red", "Green"}, names)
}

func TestBinderCreatesExportAliasChains(t *testing.T) {
	source := "const widget = 1;\nexport { widget as gadget };\n"
	program := NewProgram("/proj")
	file := parseInto(t, program, "/proj/a.ts", source)

	spec := firstOfKind(file.Root(), "export_specifier")
	require.NotNil(t, spec)
	aliasNode := spec.ChildByFieldName("alias")
	require.NotNil(t, aliasNode)

	exportBinding := program.Resolver().BindingOf(aliasNode)
	require.NotNil(t, exportBinding)
	assert.Equal(t, "gadget", exportBinding.Name)
	assert.True(t, exportBinding.Exported)

	require.NotNil(t, exportBinding.Alias)
	assert.Equal(t, "widget", exportBinding.Alias.Name)
}

func TestBinderExportClauseWithoutAlias(t *testing.T) {
	source := "const widget = 1;\nexport { widget };\n"
	program := NewProgram("/proj")
	file := parseInto(t, program, "/proj/a.ts", source)

	spec := firstOfKind(file.Root(), "export_specifier")
	require.NotNil(t, spec)
	nameNode := spec.ChildByFieldName("name")
	require.NotNil(t, nameNode)

	exportBinding := program.Resolver().BindingOf(nameNode)
	require.NotNil(t, exportBinding)
	assert.Equal(t, "widget", exportBinding.Name)
	require.NotNil(t, exportBinding.Alias)
	assert.NotSame(t, exportBinding, exportBinding.Alias)
}

func TestBinderExportClauseReachesNamespace(t *testing.T) {
	// A statement-level namespace sits inside an expression statement, which
	// still counts as file scope for export clauses.
	source := "namespace util {}\nexport { util };\n"
	program := NewProgram("/proj")
	file := parseInto(t, program, "/proj/a.ts", source)

	spec := firstOfKind(file.Root(), "export_specifier")
	require.NotNil(t, spec)
	nameNode := spec.ChildByFieldName("name")
	require.NotNil(t, nameNode)

	exportBinding := program.Resolver().BindingOf(nameNode)
	require.NotNil(t, exportBinding)
	require.NotNil(t, exportBinding.Alias)
	assert.Equal(t, "util", exportBinding.Alias.Name)
	assert.Equal(t, "internal_module", exportBinding.Alias.Declaration.Kind())
}

func TestBinderFirstDeclarationWinsAcrossFiles(t *testing.T) {
	program := NewProgram("/proj")
	parseInto(t, program, "/proj/a.ts", "const shared = 1;\n")
	parseInto(t, program, "/proj/b.ts", "const shared = 2;\n")

	b := program.LookupName("shared")
	require.NotNil(t, b)
	assert.Equal(t, "/proj/a.ts", b.Position.File)
}

func TestBinderSkipsLocalDeclarations(t *testing.T) {
	source := "function outer() {\n  const local = 1;\n}\n"
	program := NewProgram("/proj")
	parseInto(t, program, "/proj/a.ts", source)

	assert.NotNil(t, program.LookupName("outer"))
	assert.Nil(t, program.LookupName("local"), "function-local names are not unit-level")
}

func TestProgramFileOf(t *testing.T) {
	program := NewProgram("/proj")
	fileA := parseInto(t, program, "/proj/a.ts", "const a = 1;\n")

	decl := firstOfKind(fileA.Root(), "variable_declarator")
	require.NotNil(t, decl)
	assert.Same(t, fileA, program.FileOf(decl))
	assert.Nil(t, program.FileOf(nil))
}

func TestProgramRelPath(t *testing.T) {
	program := NewProgram("/proj")
	assert.Equal(t, "src/a.ts", program.RelPath("/proj/src/a.ts"))
	assert.Equal(t, "rel.ts", program.RelPath("rel.ts"), "relative inputs pass through")
}
