package semantics

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/doctree/internal/types"
)

// Binding is the semantic identity of a declaration: the link between a
// syntax node and its declared meaning. Export clauses produce bindings of
// their own, chained to the underlying declaration through Alias.
type Binding struct {
	// ID is stable across conversion passes for the same declaration.
	ID types.BindingID

	// Name is the raw source name, quoting artifacts included.
	Name string

	// EscapedName is the internal name used for disambiguation. For most
	// bindings it equals Name; string-literal names keep their quotes here
	// even after display-name normalization.
	EscapedName string

	// Exported marks bindings visible to importers of the file.
	Exported bool

	// Alias points at the underlying declaration binding when this binding
	// was produced by a re-export clause.
	Alias *Binding

	// Declaration is the syntax node the binding was created for.
	Declaration *sitter.Node

	// File is the source file the declaration lives in.
	File *SourceFile

	// Position locates the declaration in source (1-based line).
	Position types.Position

	// declaredType is the type recorded at bind time from an explicit
	// annotation, if any.
	declaredType *Type
}

// DeclaredType returns the type recorded from an explicit annotation, or nil.
func (b *Binding) DeclaredType() *Type {
	if b == nil {
		return nil
	}
	return b.declaredType
}

// String describes the binding for logs and error messages.
func (b *Binding) String() string {
	if b == nil {
		return "<nil binding>"
	}
	return fmt.Sprintf("%s@%s", b.Name, b.Position)
}

// Type is a resolved or declared type. Only the rendered name matters to the
// documentation model; Binding links back to the type's declaration when the
// engine could resolve one.
type Type struct {
	Name    string
	Binding *Binding
}

// bindingID derives the content-based identifier: same file, span, and name
// always hash to the same ID.
func bindingID(file string, startByte uint, name string) types.BindingID {
	h := xxhash.New()
	h.WriteString(file)
	h.Write([]byte{0})
	h.WriteString(fmt.Sprintf("%d", startByte))
	h.Write([]byte{0})
	h.WriteString(name)
	return types.BindingID(h.Sum64())
}
