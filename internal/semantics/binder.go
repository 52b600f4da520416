package semantics

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/doctree/internal/types"
)

// bindFile walks a parsed file and creates bindings for every declaration
// and export clause it finds. Bindings are registered under their name node,
// which is where resolution looks them up.
//
// Binding runs in two passes over each file: declarations first, so that
// export clauses in the second pass can chain their alias to the binding of
// the name they re-export regardless of declaration order.
func bindFile(program *Program, file *SourceFile) {
	b := &binder{
		program:  program,
		file:     file,
		topLevel: make(map[string]*Binding),
	}
	b.bindDeclarations(file.Root(), false)
	b.bindExportClauses(file.Root())
}

type binder struct {
	program *Program
	file    *SourceFile

	// topLevel maps declared names to their bindings within this file, so
	// export clauses can find their target.
	topLevel map[string]*Binding
}

// declarationKinds lists the syntax kinds the binder creates bindings for,
// all of which carry their name in the "name" field.
var declarationKinds = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"class_declaration":              true,
	"abstract_class_declaration":     true,
	"interface_declaration":          true,
	"enum_declaration":               true,
	"type_alias_declaration":         true,
	"internal_module":                true,
	"module":                         true,
	"variable_declarator":            true,
	"method_definition":              true,
	"method_signature":               true,
	"public_field_definition":        true,
	"property_signature":             true,
	"abstract_method_signature":      true,
}

// bindDeclarations recursively binds declaration nodes. exported marks the
// subtree as reached through an export statement.
func (b *binder) bindDeclarations(node *sitter.Node, exported bool) {
	kind := node.Kind()

	childExported := exported
	if kind == "export_statement" {
		childExported = true
	}

	if declarationKinds[kind] {
		b.bindOne(node, childExported)
	} else if kind == "enum_body" {
		b.bindEnumMembers(node)
	}

	count := node.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		// Export clauses are handled in the second pass.
		if child.Kind() == "export_clause" {
			continue
		}
		b.bindDeclarations(child, childExported)
	}
}

// bindOne creates a binding for a declaration node, keyed by its name node.
func (b *binder) bindOne(node *sitter.Node, exported bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := b.file.Text(nameNode)

	binding := &Binding{
		ID:          bindingID(b.file.Path, nameNode.StartByte(), name),
		Name:        name,
		EscapedName: name,
		Exported:    exported,
		Declaration: node,
		File:        b.file,
		Position:    b.position(nameNode),
	}
	if t := b.declaredType(node); t != nil {
		binding.declaredType = t
	}

	b.program.registerBinding(nameNode, b.file, binding)
	b.program.fileOfNode[node.Id()] = b.file

	if isTopLevelDeclaration(node) {
		b.topLevel[name] = binding
		if _, taken := b.program.byName[name]; !taken {
			b.program.byName[name] = binding
		}
	}
}

// bindEnumMembers binds each member of an enum body. Members are plain
// identifiers or assignments; neither carries a "name" field.
func (b *binder) bindEnumMembers(body *sitter.Node) {
	count := body.NamedChildCount()
	for i := uint(0); i < count; i++ {
		member := body.NamedChild(i)
		if member == nil {
			continue
		}
		nameNode := member
		if member.Kind() == "enum_assignment" {
			nameNode = member.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
		}
		name := b.file.Text(nameNode)
		binding := &Binding{
			ID:          bindingID(b.file.Path, nameNode.StartByte(), name),
			Name:        name,
			EscapedName: name,
			Declaration: member,
			File:        b.file,
			Position:    b.position(nameNode),
		}
		b.program.registerBinding(nameNode, b.file, binding)
	}
}

// bindExportClauses creates alias bindings for `export { a as b }` clauses.
// The export binding's name is the exported alias; its Alias link points at
// the underlying declaration binding.
func (b *binder) bindExportClauses(root *sitter.Node) {
	walkNodes(root, func(node *sitter.Node) {
		if node.Kind() != "export_specifier" {
			return
		}
		localNode := node.ChildByFieldName("name")
		if localNode == nil {
			return
		}
		local := b.file.Text(localNode)
		target := b.topLevel[local]

		exportedNode := node.ChildByFieldName("alias")
		exportedName := local
		registerUnder := localNode
		if exportedNode != nil {
			exportedName = b.file.Text(exportedNode)
			registerUnder = exportedNode
		}

		binding := &Binding{
			ID:          bindingID(b.file.Path, registerUnder.StartByte(), exportedName),
			Name:        exportedName,
			EscapedName: exportedName,
			Exported:    true,
			Alias:       target,
			Declaration: node,
			File:        b.file,
			Position:    b.position(registerUnder),
		}
		b.program.registerBinding(registerUnder, b.file, binding)
	})
}

// declaredType extracts an explicit type annotation from the declaration's
// "type" field, when present.
func (b *binder) declaredType(node *sitter.Node) *Type {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	text := b.file.Text(typeNode)
	// A type_annotation node's text includes the leading colon.
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), ":"))
	if text == "" {
		return nil
	}
	return &Type{Name: text}
}

// position converts a node's start point to a 1-based source position.
func (b *binder) position(node *sitter.Node) types.Position {
	point := node.StartPosition()
	return types.Position{
		File:   b.file.Path,
		Line:   int(point.Row) + 1,
		Column: int(point.Column) + 1,
	}
}

// isTopLevelDeclaration reports whether the declaration sits directly in the
// file scope (possibly wrapped by declaration lists, export statements, or
// the expression statement around a namespace), which is what export clauses
// can reference.
func isTopLevelDeclaration(node *sitter.Node) bool {
	parent := node.Parent()
	for parent != nil {
		switch parent.Kind() {
		case "program":
			return true
		case "export_statement", "expression_statement", "lexical_declaration", "variable_declaration":
			parent = parent.Parent()
		default:
			return false
		}
	}
	return false
}

// walkNodes visits every named node in the subtree in depth-first order.
func walkNodes(node *sitter.Node, visit func(*sitter.Node)) {
	visit(node)
	count := node.NamedChildCount()
	for i := uint(0); i < count; i++ {
		if child := node.NamedChild(i); child != nil {
			walkNodes(child, visit)
		}
	}
}
