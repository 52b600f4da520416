package types

import "fmt"

// FileID identifies a source file within a conversion run.
type FileID uint32

// BindingID is the stable identifier of a semantic binding.
// IDs are content-derived (hash of unit, file span, and name) so the same
// declaration gets the same ID across conversion passes.
type BindingID uint64

// ReflectionKind tags every node in the documentation model with the
// program construct it represents.
type ReflectionKind uint16

const (
	KindNone ReflectionKind = iota
	KindProject
	KindModule
	KindNamespace
	KindClass
	KindInterface
	KindEnum
	KindEnumMember
	KindFunction
	KindMethod
	KindProperty
	KindVariable
	KindAccessor
	KindConstructor
	KindTypeAlias
	KindReference
)

var kindNames = map[ReflectionKind]string{
	KindNone:        "None",
	KindProject:     "Project",
	KindModule:      "Module",
	KindNamespace:   "Namespace",
	KindClass:       "Class",
	KindInterface:   "Interface",
	KindEnum:        "Enum",
	KindEnumMember:  "EnumMember",
	KindFunction:    "Function",
	KindMethod:      "Method",
	KindProperty:    "Property",
	KindVariable:    "Variable",
	KindAccessor:    "Accessor",
	KindConstructor: "Constructor",
	KindTypeAlias:   "TypeAlias",
	KindReference:   "Reference",
}

// String returns the human-readable kind name.
func (k ReflectionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ReflectionKind(%d)", uint16(k))
}

// IsContainer reports whether nodes of this kind hold an ordered child list.
// Resolved once here so call sites never re-derive container-ness from shape.
func (k ReflectionKind) IsContainer() bool {
	switch k {
	case KindProject, KindModule, KindNamespace, KindClass, KindInterface, KindEnum:
		return true
	}
	return false
}

// IsDeclaration reports whether nodes of this kind carry an escaped name and
// participate in parent linkage during post-creation.
func (k ReflectionKind) IsDeclaration() bool {
	return k != KindNone && k != KindProject
}

// IsModuleLike reports whether an export binding's comment takes priority
// over the declaration binding's comment for this kind.
func (k ReflectionKind) IsModuleLike() bool {
	switch k {
	case KindModule, KindNamespace, KindReference:
		return true
	}
	return false
}

// Promote maps free-standing kinds to their member-position equivalents.
// A function declared inside a class or interface body is semantically a
// method, and a variable in that position is a property, regardless of the
// syntactic shape the parser saw.
func (k ReflectionKind) Promote() ReflectionKind {
	switch k {
	case KindFunction:
		return KindMethod
	case KindVariable:
		return KindProperty
	}
	return k
}

// ReflectionFlag is a bit in a reflection's flag set.
type ReflectionFlag uint16

const (
	FlagStatic ReflectionFlag = 1 << iota
	FlagExternal
	FlagExported
	FlagOptional
	FlagReadonly
	FlagAbstract
	FlagPrivate
	FlagProtected
)

var flagNames = map[ReflectionFlag]string{
	FlagStatic:    "static",
	FlagExternal:  "external",
	FlagExported:  "exported",
	FlagOptional:  "optional",
	FlagReadonly:  "readonly",
	FlagAbstract:  "abstract",
	FlagPrivate:   "private",
	FlagProtected: "protected",
}

// FlagSet is the set of flags on a reflection. Creation-time flags are set
// at most once; enrichment passes may add bits but never clear them.
type FlagSet uint16

// Set adds a flag to the set. Clearing is deliberately not provided.
func (f *FlagSet) Set(flag ReflectionFlag) {
	*f |= FlagSet(flag)
}

// Has reports whether the flag is present.
func (f FlagSet) Has(flag ReflectionFlag) bool {
	return f&FlagSet(flag) != 0
}

// Names returns the set's flag names in bit order, for display and tests.
func (f FlagSet) Names() []string {
	var names []string
	for bit := ReflectionFlag(1); bit != 0 && uint16(bit) <= uint16(f); bit <<= 1 {
		if f.Has(bit) {
			names = append(names, flagNames[bit])
		}
	}
	return names
}

// Position is a source location. Line and Column are 1-based, matching what
// editors and error messages display.
type Position struct {
	File   string
	Line   int
	Column int
}

// String formats the position as file:line:column.
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
