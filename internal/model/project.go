package model

import (
	"github.com/standardbeagle/doctree/internal/types"
)

// ProjectReflection is the root of the documentation model. It owns the
// registry mapping semantic bindings to the reflections they produced.
type ProjectReflection struct {
	baseReflection
	registry *Registry
}

// NewProject creates the root project node.
func NewProject(name string) *ProjectReflection {
	return &ProjectReflection{
		baseReflection: baseReflection{
			kind:      types.KindProject,
			name:      name,
			container: true,
		},
		registry: NewRegistry(),
	}
}

// Registry returns the project's binding registry.
func (p *ProjectReflection) Registry() *Registry {
	return p.registry
}

// RegisterReflection records that the given binding produced the given node.
// A nil binding ID (zero) is ignored.
func (p *ProjectReflection) RegisterReflection(node Reflection, binding types.BindingID) {
	p.registry.Register(node, binding)
}
