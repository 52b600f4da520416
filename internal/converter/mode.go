package converter

// Mode is the traversal-mode state a context carries. The three flags have
// different inheritance rules, enforced in one place by derive: scope
// changes keep ConvertingTypeNode and reset the other two.
type Mode struct {
	// ConvertingTypeNode marks traversal inside a type position. Inherited
	// by every derived scope.
	ConvertingTypeNode bool

	// ConvertingClassOrInterface marks traversal of a class or interface
	// body, where member-position declarations promote their kind. Local to
	// one scope; never inherited.
	ConvertingClassOrInterface bool

	// ShouldBeStatic marks the next created member as static. Local to one
	// scope; never inherited.
	ShouldBeStatic bool
}

// derive produces the mode for a child scope.
func (m Mode) derive() Mode {
	return Mode{ConvertingTypeNode: m.ConvertingTypeNode}
}
