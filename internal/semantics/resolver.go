package semantics

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Resolver answers semantic queries against one program. It is the engine
// boundary: TypeOf can fail at the engine level, and callers are expected to
// fold that failure into "no type available".
type Resolver struct {
	program *Program
}

func newResolver(p *Program) *Resolver {
	return &Resolver{program: p}
}

// BindingOf returns the binding registered for the exact node, or nil. Most
// bindings live on name nodes, so callers holding a declaration node retry
// with its name child.
func (r *Resolver) BindingOf(node *sitter.Node) *Binding {
	return r.program.bindingForNode(node)
}

// TypeOf resolves the node's type. It returns an error when the engine
// cannot analyze the node at all — a subtree the parser flagged as broken —
// and (nil, nil) for a plain resolution miss.
func (r *Resolver) TypeOf(node *sitter.Node) (*Type, error) {
	if node == nil {
		return nil, nil
	}
	if node.HasError() {
		return nil, fmt.Errorf("cannot type node %s: subtree has parse errors", node.Kind())
	}

	// An explicit annotation on the node wins.
	if b := r.BindingOf(node); b != nil && b.declaredType != nil {
		return b.declaredType, nil
	}
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		if file := r.program.fileOfNode[node.Id()]; file != nil {
			return typeFromAnnotation(file, typeNode), nil
		}
	}

	// Literal initializers give away primitive types.
	if value := node.ChildByFieldName("value"); value != nil {
		if t := literalType(value.Kind()); t != nil {
			return t, nil
		}
	}
	if t := literalType(node.Kind()); t != nil {
		return t, nil
	}

	return nil, nil
}

// DeclaredTypeOf returns the type from the binding's explicit annotation, or
// nil when it declared none.
func (r *Resolver) DeclaredTypeOf(b *Binding) *Type {
	return b.DeclaredType()
}

// ResolveAlias follows export-alias links to the underlying declaration
// binding. A binding with no alias resolves to itself. Cycles (possible with
// mutually re-exporting modules) terminate at the first repeated binding.
func (r *Resolver) ResolveAlias(b *Binding) *Binding {
	if b == nil {
		return nil
	}
	seen := map[*Binding]bool{b: true}
	cur := b
	for cur.Alias != nil && !seen[cur.Alias] {
		cur = cur.Alias
		seen[cur] = true
	}
	return cur
}

// typeFromAnnotation renders a type_annotation node as a Type.
func typeFromAnnotation(file *SourceFile, typeNode *sitter.Node) *Type {
	// The annotation wraps the actual type after the colon.
	inner := typeNode
	if typeNode.Kind() == "type_annotation" && typeNode.NamedChildCount() > 0 {
		inner = typeNode.NamedChild(0)
	}
	return &Type{Name: file.Text(inner)}
}

// literalType maps literal node kinds to their primitive type.
func literalType(kind string) *Type {
	switch kind {
	case "string", "template_string":
		return &Type{Name: "string"}
	case "number":
		return &Type{Name: "number"}
	case "true", "false":
		return &Type{Name: "boolean"}
	case "null":
		return &Type{Name: "null"}
	case "undefined":
		return &Type{Name: "undefined"}
	}
	return nil
}
