package converter

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/doctree/internal/comments"
	"github.com/standardbeagle/doctree/internal/errors"
	"github.com/standardbeagle/doctree/internal/events"
	"github.com/standardbeagle/doctree/internal/model"
	"github.com/standardbeagle/doctree/internal/semantics"
	"github.com/standardbeagle/doctree/internal/types"
)

// Context is the per-traversal-step state every visitor works through. It
// tracks the current insertion scope, the active compilation unit, and the
// traversal mode, and it is the only path to binding resolution, node
// creation, and comment retrieval.
//
// Contexts form a tree mirroring the model tree: WithScope is the single
// derivation path, and a derived context never observes later mutations of
// its siblings. The converter dependencies are held by reference, injected
// at construction.
type Context struct {
	converter *Converter
	project   *model.ProjectReflection
	scope     model.Reflection

	programs []*semantics.Program
	active   *semantics.Program

	mode Mode
}

// newContext creates the root context bound to the project node. Only the
// converter calls this; visitors derive children via WithScope.
func newContext(cv *Converter, project *model.ProjectReflection, programs []*semantics.Program) *Context {
	return &Context{
		converter: cv,
		project:   project,
		scope:     project,
		programs:  programs,
	}
}

// Scope returns the current insertion point. Always non-nil.
func (c *Context) Scope() model.Reflection {
	return c.scope
}

// Project returns the root project node. Scope derivation never changes it.
func (c *Context) Project() *model.ProjectReflection {
	return c.project
}

// Programs returns the full compilation-unit set of this conversion run.
func (c *Context) Programs() []*semantics.Program {
	return c.programs
}

// Mode returns the current traversal mode flags.
func (c *Context) Mode() Mode {
	return c.mode
}

// SetConvertingTypeNode marks traversal in or out of a type position. This
// flag is inherited by derived scopes.
func (c *Context) SetConvertingTypeNode(v bool) {
	c.mode.ConvertingTypeNode = v
}

// SetConvertingClassOrInterface switches member-kind promotion on or off
// for nodes created through this context.
func (c *Context) SetConvertingClassOrInterface(v bool) {
	c.mode.ConvertingClassOrInterface = v
}

// SetShouldBeStatic controls the static flag applied to subsequently
// created nodes.
func (c *Context) SetShouldBeStatic(v bool) {
	c.mode.ShouldBeStatic = v
}

// WithScope derives a child context with the scope replaced. The converter,
// program set, project, and active program carry over; ConvertingTypeNode is
// copied and the other mode flags reset. This is the only derivation path.
func (c *Context) WithScope(scope model.Reflection) *Context {
	return &Context{
		converter: c.converter,
		project:   c.project,
		scope:     scope,
		programs:  c.programs,
		active:    c.active,
		mode:      c.mode.derive(),
	}
}

// SetActiveProgram switches which compilation unit is current. Passing nil
// clears it, after which any operation needing the unit fails fast.
func (c *Context) SetActiveProgram(p *semantics.Program) {
	c.active = p
}

// ActiveProgram returns the active compilation unit, or nil when traversal
// is not inside one. Callers that treat absence as a bug use RequireProgram.
func (c *Context) ActiveProgram() *semantics.Program {
	return c.active
}

// RequireProgram returns the active unit or an InactiveProgramError naming
// the operation. Absence here is a structural ordering bug, never a
// recoverable condition.
func (c *Context) RequireProgram(op string) (*semantics.Program, error) {
	if c.active == nil {
		return nil, errors.NewInactiveProgramError(op)
	}
	return c.active, nil
}

// RequireResolver returns the active unit's symbol resolver, failing fast
// like RequireProgram when no unit is active.
func (c *Context) RequireResolver(op string) (*semantics.Resolver, error) {
	program, err := c.RequireProgram(op)
	if err != nil {
		return nil, err
	}
	return program.Resolver(), nil
}

// TypeAt resolves the type of a syntax node. Engine-level resolution
// failure is swallowed and folded into the fallback chain: the node's own
// binding's declared type, then its parent's, then its grandparent's — no
// deeper. Returns nil when every step misses.
func (c *Context) TypeAt(node *sitter.Node) (*semantics.Type, error) {
	resolver, err := c.RequireResolver("TypeAt")
	if err != nil {
		return nil, err
	}

	if t, terr := resolver.TypeOf(node); terr == nil && t != nil {
		return t, nil
	} else if terr != nil {
		c.converter.logger.Printf("type resolution failed at %s node, using declared-type fallback: %v",
			node.Kind(), terr)
	}

	cur := node
	for depth := 0; depth < 3 && cur != nil; depth++ {
		if b := c.bindingAt(resolver, cur); b != nil {
			if t := resolver.DeclaredTypeOf(b); t != nil {
				return t, nil
			}
		}
		cur = cur.Parent()
	}
	return nil, nil
}

// BindingAt resolves a node's semantic binding, retrying against the node's
// explicit name child when the node itself has none. Returns nil for a
// plain miss.
func (c *Context) BindingAt(node *sitter.Node) (*semantics.Binding, error) {
	resolver, err := c.RequireResolver("BindingAt")
	if err != nil {
		return nil, err
	}
	return c.bindingAt(resolver, node), nil
}

func (c *Context) bindingAt(resolver *semantics.Resolver, node *sitter.Node) *semantics.Binding {
	if node == nil {
		return nil
	}
	if b := resolver.BindingOf(node); b != nil {
		return b
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return resolver.BindingOf(nameNode)
	}
	return nil
}

// RequireBindingAt resolves a binding that must exist. A miss is a
// programming-logic bug and produces a MissingBindingError carrying the
// node's syntactic kind and source position.
func (c *Context) RequireBindingAt(node *sitter.Node) (*semantics.Binding, error) {
	binding, err := c.BindingAt(node)
	if err != nil {
		return nil, err
	}
	if binding != nil {
		return binding, nil
	}

	pos := types.Position{File: "<unknown>", Line: 0}
	if file := c.active.FileOf(node); file != nil {
		point := node.StartPosition()
		pos = types.Position{
			File:   file.Path,
			Line:   int(point.Row) + 1,
			Column: int(point.Column) + 1,
		}
	}
	return nil, errors.NewMissingBindingError(node.Kind(), pos)
}

// ResolveAlias follows export-alias chains to the underlying declaration
// binding.
func (c *Context) ResolveAlias(binding *semantics.Binding) (*semantics.Binding, error) {
	resolver, err := c.RequireResolver("ResolveAlias")
	if err != nil {
		return nil, err
	}
	return resolver.ResolveAlias(binding), nil
}

// CreateDeclaration materializes a model node for a declaration and runs
// the shared post-creation protocol. The display name resolves as
// nameOverride, then the export binding's name, then the binding's name,
// then the literal "unknown"; all of them pass through human-name
// normalization. Inside class and interface bodies, Function promotes to
// Method and Variable to Property.
func (c *Context) CreateDeclaration(kind types.ReflectionKind, binding, exportBinding *semantics.Binding, nameOverride string) *model.DeclarationReflection {
	name := "unknown"
	switch {
	case nameOverride != "":
		name = nameOverride
	case exportBinding != nil && exportBinding.Name != "":
		name = exportBinding.Name
	case binding != nil && binding.Name != "":
		name = binding.Name
	}
	name = model.HumanName(name)

	if c.mode.ConvertingClassOrInterface {
		kind = kind.Promote()
	}

	node := model.NewDeclaration(name, kind, c.scope)
	if binding != nil {
		node.Position = binding.Position
	}

	c.postReflectionCreation(node, binding, exportBinding)
	return node
}

// postReflectionCreation applies the shared creation protocol, in order:
// export-first comment attachment, binding-comment fallback, static flag,
// parent linkage, external flag, registry registration.
func (c *Context) postReflectionCreation(node *model.DeclarationReflection, binding, exportBinding *semantics.Binding) {
	if exportBinding != nil && node.Kind().IsModuleLike() {
		if comment := c.commentForCreation(exportBinding, node.Kind()); comment != nil {
			node.SetComment(comment)
		}
	}
	if node.Comment().IsEmpty() && binding != nil {
		if comment := c.commentForCreation(binding, node.Kind()); comment != nil {
			node.SetComment(comment)
		}
	}

	if c.mode.ShouldBeStatic {
		node.SetFlag(types.FlagStatic)
	}

	if node.Kind().IsDeclaration() {
		if binding != nil {
			node.EscapedName = binding.EscapedName
		}
		c.scope.AddChild(node)
	}

	if binding != nil && c.converter.IsExternal(binding) {
		node.SetFlag(types.FlagExternal)
	}

	if exportBinding != nil {
		c.Register(node, exportBinding.ID)
	}
	if binding != nil {
		c.Register(node, binding.ID)
		c.converter.origins[node] = binding
	}
}

// commentForCreation resolves a comment during node creation. Unlike the
// public comment operations it tolerates a missing active unit: creation
// always happens inside a traversal pass, but link resolution quietly
// degrades instead of failing the whole creation protocol.
func (c *Context) commentForCreation(binding *semantics.Binding, kind types.ReflectionKind) *model.Comment {
	return c.converter.comments.ForBinding(binding, kind, c.commentOptions(c.active))
}

// commentOptions assembles resolver options from configuration. The program
// is threaded through only when cross-reference resolution is enabled.
func (c *Context) commentOptions(program *semantics.Program) comments.Options {
	opts := comments.Options{Style: c.converter.style}
	if c.converter.resolveLinks {
		opts.Program = program
	}
	return opts
}

// CommentFor resolves the documentation comment for a binding.
func (c *Context) CommentFor(binding *semantics.Binding, kind types.ReflectionKind) (*model.Comment, error) {
	program, err := c.linkProgram("CommentFor")
	if err != nil {
		return nil, err
	}
	return c.converter.comments.ForBinding(binding, kind, c.commentOptions(program)), nil
}

// FileComment resolves a compilation-unit file's leading comment.
func (c *Context) FileComment(file *semantics.SourceFile) (*model.Comment, error) {
	program, err := c.linkProgram("FileComment")
	if err != nil {
		return nil, err
	}
	return c.converter.comments.ForFile(file, c.commentOptions(program)), nil
}

// DeclarationComment parses a comment node that is itself a declaration,
// such as a @typedef block.
func (c *Context) DeclarationComment(file *semantics.SourceFile, node *sitter.Node) (*model.Comment, error) {
	program, err := c.linkProgram("DeclarationComment")
	if err != nil {
		return nil, err
	}
	return c.converter.comments.ForTagDeclaration(file, node, c.commentOptions(program)), nil
}

// SignatureComment resolves the comment for a signature node, falling back
// to the enclosing declaration.
func (c *Context) SignatureComment(file *semantics.SourceFile, node *sitter.Node) (*model.Comment, error) {
	program, err := c.linkProgram("SignatureComment")
	if err != nil {
		return nil, err
	}
	return c.converter.comments.ForSignature(file, node, c.commentOptions(program)), nil
}

// linkProgram returns the program to thread into comment resolution. When
// cross-reference resolution is disabled no unit access happens at all;
// when enabled, a missing active unit is the usual fail-fast violation.
func (c *Context) linkProgram(op string) (*semantics.Program, error) {
	if !c.converter.resolveLinks {
		return nil, nil
	}
	return c.RequireProgram(op)
}

// FinalizeDeclaration announces a structurally complete node so enrichment
// passes can run. The node is not mutated here.
func (c *Context) FinalizeDeclaration(node *model.DeclarationReflection) {
	c.converter.emit(events.EventCreateDeclaration, c, node, nil)
}

// AddChild appends a node to the current scope's child list. No-op when the
// scope cannot hold children.
func (c *Context) AddChild(node *model.DeclarationReflection) {
	c.scope.AddChild(node)
}

// Register records a binding → node association in the project registry.
func (c *Context) Register(node model.Reflection, binding types.BindingID) {
	c.project.RegisterReflection(node, binding)
}

// ShouldIgnore delegates to the converter's ignore policy. Pure query.
func (c *Context) ShouldIgnore(binding *semantics.Binding) bool {
	return c.converter.ShouldIgnore(binding)
}

// Emit dispatches a named event carrying this context and up to two nodes.
func (c *Context) Emit(event string, node, secondary model.Reflection) {
	c.converter.emit(event, c, node, secondary)
}
