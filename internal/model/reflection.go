package model

import (
	"github.com/standardbeagle/doctree/internal/types"
)

// Reflection is a node in the documentation model. Every node has a kind, a
// resolved display name, optional comment, a flag set, and a parent link.
// Container capability is fixed at construction from the node's kind, so
// call sites never re-derive it from shape.
type Reflection interface {
	Kind() types.ReflectionKind
	Name() string
	Comment() *Comment
	SetComment(c *Comment)
	Flags() types.FlagSet
	SetFlag(flag types.ReflectionFlag)
	Parent() Reflection
	setParent(p Reflection)

	// IsContainer reports whether this node holds an ordered child list.
	IsContainer() bool

	// AddChild appends a child in discovery order. On non-container nodes
	// this is a no-op; the child list is append-only.
	AddChild(child *DeclarationReflection)
	Children() []*DeclarationReflection
}

// baseReflection carries the state shared by every model node.
type baseReflection struct {
	kind      types.ReflectionKind
	name      string
	comment   *Comment
	flags     types.FlagSet
	parent    Reflection
	container bool
	children  []*DeclarationReflection
}

func (b *baseReflection) Kind() types.ReflectionKind { return b.kind }
func (b *baseReflection) Name() string               { return b.name }
func (b *baseReflection) Comment() *Comment          { return b.comment }
func (b *baseReflection) Flags() types.FlagSet       { return b.flags }
func (b *baseReflection) Parent() Reflection         { return b.parent }
func (b *baseReflection) IsContainer() bool          { return b.container }

func (b *baseReflection) SetComment(c *Comment) {
	b.comment = c
}

// SetFlag adds a flag. Flags accumulate; there is no clear operation, so
// enrichment passes cannot undo creation-time flags.
func (b *baseReflection) SetFlag(flag types.ReflectionFlag) {
	b.flags.Set(flag)
}

func (b *baseReflection) setParent(p Reflection) {
	b.parent = p
}

func (b *baseReflection) AddChild(child *DeclarationReflection) {
	if !b.container {
		return
	}
	b.children = append(b.children, child)
}

func (b *baseReflection) Children() []*DeclarationReflection {
	return b.children
}

// DeclarationReflection is a documented declaration: a module, class,
// function, property and so on. It records the position of the declaration
// it was created from and the binding's escaped name for disambiguation.
type DeclarationReflection struct {
	baseReflection

	// EscapedName is the binding's internal name, kept for later
	// disambiguation between declarations sharing a display name.
	EscapedName string

	// Position is where the declaration appears in source, when known.
	Position types.Position

	// Type is the rendered declared type, filled in by enrichment passes
	// after the node is structurally complete.
	Type string
}

// NewDeclaration creates a declaration node of the given kind. The intended
// parent is recorded immediately; appending to the parent's child list is a
// separate step so creation and linkage stay distinct.
func NewDeclaration(name string, kind types.ReflectionKind, parent Reflection) *DeclarationReflection {
	d := &DeclarationReflection{
		baseReflection: baseReflection{
			kind:      kind,
			name:      name,
			container: kind.IsContainer(),
		},
	}
	d.setParent(parent)
	return d
}

// Project walks parent links to the root project node. Returns nil if the
// node is detached.
func (d *DeclarationReflection) Project() *ProjectReflection {
	var cur Reflection = d
	for cur != nil {
		if p, ok := cur.(*ProjectReflection); ok {
			return p
		}
		cur = cur.Parent()
	}
	return nil
}
