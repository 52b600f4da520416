package converter

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/doctree/internal/errors"
	"github.com/standardbeagle/doctree/internal/semantics"
	"github.com/standardbeagle/doctree/internal/types"
)

// skipDeclaration records a declaration left out of the model because its
// binding could not be resolved. Conversion continues with the rest of the
// file, so the error is recoverable.
func skipDeclaration(ctx *Context, file *semantics.SourceFile, op string, err error) {
	ctx.converter.logger.Error("%v",
		errors.NewBindError(op, err).WithFile(file.Path).WithRecoverable(true))
}

// convertFile materializes the module node for one source file and descends
// into its top-level statements under a derived scope.
func convertFile(ctx *Context, file *semantics.SourceFile) {
	name := file.Path
	if program := ctx.ActiveProgram(); program != nil {
		name = program.RelPath(file.Path)
	}
	ctx.converter.logger.Printf("file %d: %s", file.ID, name)

	module := ctx.CreateDeclaration(types.KindModule, nil, nil, name)
	if module.Comment().IsEmpty() {
		if comment, err := ctx.FileComment(file); err == nil && comment != nil {
			module.SetComment(comment)
		}
	}
	ctx.FinalizeDeclaration(module)

	moduleCtx := ctx.WithScope(module)
	root := file.Root()
	count := root.NamedChildCount()
	for i := uint(0); i < count; i++ {
		if child := root.NamedChild(i); child != nil {
			convertNode(moduleCtx, file, child)
		}
	}
}

// convertNode dispatches one statement-level syntax node to its visitor.
// Unknown kinds are skipped silently; executable statements carry no
// declarations worth documenting.
func convertNode(ctx *Context, file *semantics.SourceFile, node *sitter.Node) {
	switch node.Kind() {
	case "export_statement":
		convertExport(ctx, file, node)
	case "function_declaration", "generator_function_declaration":
		convertFunction(ctx, file, node)
	case "class_declaration", "abstract_class_declaration":
		convertClass(ctx, file, node)
	case "interface_declaration":
		convertInterface(ctx, file, node)
	case "enum_declaration":
		convertEnum(ctx, file, node)
	case "type_alias_declaration":
		convertTypeAlias(ctx, file, node)
	case "lexical_declaration", "variable_declaration":
		convertVariableStatement(ctx, file, node)
	case "internal_module", "module":
		convertNamespace(ctx, file, node)
	case "expression_statement":
		// Statement-level `namespace x {}` arrives wrapped in an
		// expression statement; unwrap before dispatching.
		if inner := node.NamedChild(0); inner != nil {
			switch inner.Kind() {
			case "internal_module", "module":
				convertNamespace(ctx, file, inner)
			}
		}
	case "comment":
		convertTagDeclaration(ctx, file, node)
	}
}

// convertExport handles both exported declarations and re-export clauses.
func convertExport(ctx *Context, file *semantics.SourceFile, node *sitter.Node) {
	if decl := node.ChildByFieldName("declaration"); decl != nil {
		convertNode(ctx, file, decl)
		return
	}
	if value := node.ChildByFieldName("value"); value != nil {
		// export default <expression> — nothing bindable to document.
		return
	}

	count := node.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := node.NamedChild(i)
		if child == nil || child.Kind() != "export_clause" {
			continue
		}
		specCount := child.NamedChildCount()
		for j := uint(0); j < specCount; j++ {
			if spec := child.NamedChild(j); spec != nil && spec.Kind() == "export_specifier" {
				convertExportSpecifier(ctx, spec)
			}
		}
	}
}

// convertExportSpecifier creates a reference node for `export { a as b }`.
// The export binding carries the visible name; the alias chain leads to the
// declaration binding it re-exports.
func convertExportSpecifier(ctx *Context, spec *sitter.Node) {
	nameNode := spec.ChildByFieldName("alias")
	if nameNode == nil {
		nameNode = spec.ChildByFieldName("name")
	}
	exportBinding, err := ctx.BindingAt(nameNode)
	if err != nil || exportBinding == nil {
		return
	}

	target, err := ctx.ResolveAlias(exportBinding)
	if err != nil || target == nil || target == exportBinding {
		return
	}
	if ctx.ShouldIgnore(target) {
		return
	}

	ref := ctx.CreateDeclaration(types.KindReference, target, exportBinding, "")
	ctx.FinalizeDeclaration(ref)
}

func convertFunction(ctx *Context, file *semantics.SourceFile, node *sitter.Node) {
	binding, err := ctx.RequireBindingAt(node)
	if err != nil {
		skipDeclaration(ctx, file, "function", err)
		return
	}
	if ctx.ShouldIgnore(binding) {
		return
	}

	fn := ctx.CreateDeclaration(types.KindFunction, binding, nil, "")
	if binding.Exported {
		fn.SetFlag(types.FlagExported)
	}
	ctx.FinalizeDeclaration(fn)
}

func convertClass(ctx *Context, file *semantics.SourceFile, node *sitter.Node) {
	binding, err := ctx.RequireBindingAt(node)
	if err != nil {
		skipDeclaration(ctx, file, "class", err)
		return
	}
	if ctx.ShouldIgnore(binding) {
		return
	}

	class := ctx.CreateDeclaration(types.KindClass, binding, nil, "")
	if node.Kind() == "abstract_class_declaration" {
		class.SetFlag(types.FlagAbstract)
	}
	if binding.Exported {
		class.SetFlag(types.FlagExported)
	}
	ctx.FinalizeDeclaration(class)

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	memberCtx := ctx.WithScope(class)
	memberCtx.SetConvertingClassOrInterface(true)
	count := body.NamedChildCount()
	for i := uint(0); i < count; i++ {
		if member := body.NamedChild(i); member != nil {
			convertMember(memberCtx, file, member)
		}
	}
}

func convertInterface(ctx *Context, file *semantics.SourceFile, node *sitter.Node) {
	binding, err := ctx.RequireBindingAt(node)
	if err != nil {
		skipDeclaration(ctx, file, "interface", err)
		return
	}
	if ctx.ShouldIgnore(binding) {
		return
	}

	iface := ctx.CreateDeclaration(types.KindInterface, binding, nil, "")
	if binding.Exported {
		iface.SetFlag(types.FlagExported)
	}
	ctx.FinalizeDeclaration(iface)

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	memberCtx := ctx.WithScope(iface)
	memberCtx.SetConvertingClassOrInterface(true)
	count := body.NamedChildCount()
	for i := uint(0); i < count; i++ {
		if member := body.NamedChild(i); member != nil {
			convertMember(memberCtx, file, member)
		}
	}
}

// convertMember converts one class or interface member. The caller's scope
// already has ConvertingClassOrInterface set, so the free-standing kinds
// used here promote to Method and Property at creation.
func convertMember(ctx *Context, file *semantics.SourceFile, member *sitter.Node) {
	var kind types.ReflectionKind
	switch member.Kind() {
	case "method_definition", "method_signature", "abstract_method_signature":
		kind = types.KindFunction
	case "public_field_definition", "property_signature":
		kind = types.KindVariable
	default:
		return
	}

	binding, err := ctx.RequireBindingAt(member)
	if err != nil {
		skipDeclaration(ctx, file, "member", err)
		return
	}
	if ctx.ShouldIgnore(binding) {
		return
	}

	// Constructors and accessors get their own kinds; promotion cannot know
	// the shape is special.
	if kind == types.KindFunction && binding.Name == "constructor" {
		kind = types.KindConstructor
	}
	if kind == types.KindFunction && (hasChildToken(member, "get") || hasChildToken(member, "set")) {
		kind = types.KindAccessor
	}

	ctx.SetShouldBeStatic(hasChildToken(member, "static"))
	node := ctx.CreateDeclaration(kind, binding, nil, "")
	ctx.SetShouldBeStatic(false)

	if member.Kind() == "abstract_method_signature" {
		node.SetFlag(types.FlagAbstract)
	}
	if hasChildToken(member, "readonly") {
		node.SetFlag(types.FlagReadonly)
	}
	if hasChildToken(member, "?") {
		node.SetFlag(types.FlagOptional)
	}
	if hasAccessibility(member, "private") {
		node.SetFlag(types.FlagPrivate)
	}
	if hasAccessibility(member, "protected") {
		node.SetFlag(types.FlagProtected)
	}
	ctx.FinalizeDeclaration(node)
}

func convertEnum(ctx *Context, file *semantics.SourceFile, node *sitter.Node) {
	binding, err := ctx.RequireBindingAt(node)
	if err != nil {
		skipDeclaration(ctx, file, "enum", err)
		return
	}
	if ctx.ShouldIgnore(binding) {
		return
	}

	enum := ctx.CreateDeclaration(types.KindEnum, binding, nil, "")
	if binding.Exported {
		enum.SetFlag(types.FlagExported)
	}
	ctx.FinalizeDeclaration(enum)

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	memberCtx := ctx.WithScope(enum)
	count := body.NamedChildCount()
	for i := uint(0); i < count; i++ {
		member := body.NamedChild(i)
		if member == nil {
			continue
		}
		memberBinding, err := memberCtx.BindingAt(member)
		if err != nil || memberBinding == nil {
			continue
		}
		m := memberCtx.CreateDeclaration(types.KindEnumMember, memberBinding, nil, "")
		memberCtx.FinalizeDeclaration(m)
	}
}

// convertTypeAlias converts a type alias and, for object-literal aliases,
// its member signatures. Traversal below the alias happens in type position,
// which derived scopes inherit.
func convertTypeAlias(ctx *Context, file *semantics.SourceFile, node *sitter.Node) {
	binding, err := ctx.RequireBindingAt(node)
	if err != nil {
		skipDeclaration(ctx, file, "type alias", err)
		return
	}
	if ctx.ShouldIgnore(binding) {
		return
	}

	alias := ctx.CreateDeclaration(types.KindTypeAlias, binding, nil, "")
	if binding.Exported {
		alias.SetFlag(types.FlagExported)
	}
	ctx.FinalizeDeclaration(alias)

	value := node.ChildByFieldName("value")
	if value == nil || value.Kind() != "object_type" {
		return
	}

	typeCtx := ctx.WithScope(alias)
	typeCtx.SetConvertingTypeNode(true)
	count := value.NamedChildCount()
	for i := uint(0); i < count; i++ {
		member := value.NamedChild(i)
		if member == nil || member.Kind() != "property_signature" {
			continue
		}
		memberBinding, err := typeCtx.BindingAt(member)
		if err != nil || memberBinding == nil {
			continue
		}
		m := typeCtx.CreateDeclaration(types.KindProperty, memberBinding, nil, "")
		if hasChildToken(member, "?") {
			m.SetFlag(types.FlagOptional)
		}
		typeCtx.FinalizeDeclaration(m)
	}
}

func convertVariableStatement(ctx *Context, file *semantics.SourceFile, node *sitter.Node) {
	count := node.NamedChildCount()
	for i := uint(0); i < count; i++ {
		declarator := node.NamedChild(i)
		if declarator == nil || declarator.Kind() != "variable_declarator" {
			continue
		}
		convertVariable(ctx, file, declarator)
	}
}

func convertVariable(ctx *Context, file *semantics.SourceFile, declarator *sitter.Node) {
	binding, err := ctx.RequireBindingAt(declarator)
	if err != nil {
		skipDeclaration(ctx, file, "variable", err)
		return
	}
	if ctx.ShouldIgnore(binding) {
		return
	}

	v := ctx.CreateDeclaration(types.KindVariable, binding, nil, "")
	if binding.Exported {
		v.SetFlag(types.FlagExported)
	}
	ctx.FinalizeDeclaration(v)
}

func convertNamespace(ctx *Context, file *semantics.SourceFile, node *sitter.Node) {
	binding, err := ctx.RequireBindingAt(node)
	if err != nil {
		skipDeclaration(ctx, file, "namespace", err)
		return
	}
	if ctx.ShouldIgnore(binding) {
		return
	}

	ns := ctx.CreateDeclaration(types.KindNamespace, binding, nil, "")
	ctx.FinalizeDeclaration(ns)

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	nsCtx := ctx.WithScope(ns)
	count := body.NamedChildCount()
	for i := uint(0); i < count; i++ {
		if child := body.NamedChild(i); child != nil {
			convertNode(nsCtx, file, child)
		}
	}
}

// convertTagDeclaration documents declarations that live entirely inside a
// comment: JSDoc @typedef and @callback blocks.
func convertTagDeclaration(ctx *Context, file *semantics.SourceFile, node *sitter.Node) {
	comment, err := ctx.DeclarationComment(file, node)
	if err != nil || comment == nil {
		return
	}

	for _, tagName := range []string{"typedef", "callback"} {
		tag := comment.Tag(tagName)
		if tag == nil {
			continue
		}
		name := tagDeclarationName(tag.Content)
		if name == "" {
			continue
		}
		alias := ctx.CreateDeclaration(types.KindTypeAlias, nil, nil, name)
		alias.SetComment(comment)
		ctx.FinalizeDeclaration(alias)
		return
	}
}

// tagDeclarationName extracts the declared name from tag content such as
// "{Object} Options - description": the first word that is not a type
// expression.
func tagDeclarationName(content string) string {
	fields := strings.Fields(content)
	for _, f := range fields {
		if strings.HasPrefix(f, "{") {
			continue
		}
		return f
	}
	return ""
}

// hasChildToken reports whether the node has an anonymous child token of
// the given kind, such as "static" or "readonly".
func hasChildToken(node *sitter.Node, token string) bool {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		if child := node.Child(i); child != nil && child.Kind() == token {
			return true
		}
	}
	return false
}

// hasAccessibility checks a member's accessibility_modifier for the given
// keyword.
func hasAccessibility(node *sitter.Node, keyword string) bool {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "accessibility_modifier" {
			continue
		}
		// The modifier's only child is the keyword token.
		if child.ChildCount() > 0 {
			if kw := child.Child(0); kw != nil && kw.Kind() == keyword {
				return true
			}
		}
	}
	return false
}
