package semantics

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/doctree/internal/types"
	"github.com/standardbeagle/doctree/pkg/pathutil"
)

// SourceFile is one parsed file inside a compilation unit. The tree is
// retained for the lifetime of the program so syntax nodes stay valid.
type SourceFile struct {
	ID      types.FileID
	Path    string
	Content []byte
	Tree    *sitter.Tree
}

// Root returns the file's root syntax node.
func (f *SourceFile) Root() *sitter.Node {
	return f.Tree.RootNode()
}

// Text returns the source text of a node.
func (f *SourceFile) Text(node *sitter.Node) string {
	return string(f.Content[node.StartByte():node.EndByte()])
}

// Program is one type-checked compilation unit: a set of parsed files plus
// the symbol table the binder produced for them.
type Program struct {
	root       string
	files      []*SourceFile
	nextFileID types.FileID

	// bindings maps name-node identity to the binding declared there.
	bindings map[uintptr]*Binding

	// fileOfNode maps any bound node back to its file for position lookups.
	fileOfNode map[uintptr]*SourceFile

	// byName indexes top-level bindings by declared name across the unit,
	// for cross-reference resolution in doc comments. First declaration of
	// a name wins.
	byName map[string]*Binding

	resolver *Resolver
}

// NewProgram creates an empty compilation unit rooted at the given path.
func NewProgram(root string) *Program {
	p := &Program{
		root:       root,
		nextFileID: 1,
		bindings:   make(map[uintptr]*Binding),
		fileOfNode: make(map[uintptr]*SourceFile),
		byName:     make(map[string]*Binding),
	}
	p.resolver = newResolver(p)
	return p
}

// Root returns the unit's root directory.
func (p *Program) Root() string {
	return p.root
}

// AddFile registers a parsed file with the unit and binds its declarations.
// The returned SourceFile is owned by the program.
func (p *Program) AddFile(path string, content []byte, tree *sitter.Tree) *SourceFile {
	file := &SourceFile{
		ID:      p.nextFileID,
		Path:    path,
		Content: content,
		Tree:    tree,
	}
	p.nextFileID++
	p.files = append(p.files, file)

	bindFile(p, file)
	return file
}

// Files returns the unit's files in registration order.
func (p *Program) Files() []*SourceFile {
	return p.files
}

// Resolver returns the unit's symbol resolver.
func (p *Program) Resolver() *Resolver {
	return p.resolver
}

// RelPath renders a file path relative to the unit root for display.
func (p *Program) RelPath(path string) string {
	return pathutil.ToRelative(p.root, path)
}

// registerBinding indexes a binding under its name node and remembers which
// file the node came from.
func (p *Program) registerBinding(nameNode *sitter.Node, file *SourceFile, b *Binding) {
	p.bindings[nameNode.Id()] = b
	p.fileOfNode[nameNode.Id()] = file
}

// FileOf returns the source file a node belongs to, by climbing to the
// node's tree root. Returns nil for nodes from trees this unit never saw.
func (p *Program) FileOf(node *sitter.Node) *SourceFile {
	if node == nil {
		return nil
	}
	root := node
	for parent := root.Parent(); parent != nil; parent = parent.Parent() {
		root = parent
	}
	for _, f := range p.files {
		if f.Root().Id() == root.Id() {
			return f
		}
	}
	return nil
}

// LookupName resolves a top-level name anywhere in the unit, or nil.
func (p *Program) LookupName(name string) *Binding {
	return p.byName[name]
}

// bindingForNode looks up a binding by exact node identity.
func (p *Program) bindingForNode(node *sitter.Node) *Binding {
	if node == nil {
		return nil
	}
	return p.bindings[node.Id()]
}
