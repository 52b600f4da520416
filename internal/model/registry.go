package model

import (
	"github.com/standardbeagle/doctree/internal/types"
)

// Registry is the bidirectional map between semantic bindings and the model
// nodes they produced. A binding maps to at most one node; registering the
// same pair again is a no-op, which is what makes alias registration safe:
// an export binding and its underlying declaration binding both register the
// node they share.
type Registry struct {
	byBinding map[types.BindingID]Reflection
	byNode    map[Reflection][]types.BindingID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byBinding: make(map[types.BindingID]Reflection),
		byNode:    make(map[Reflection][]types.BindingID),
	}
}

// Register records binding → node. Idempotent: repeating an identical
// registration leaves the registry unchanged. If the binding is already
// registered to a different node, the first registration wins.
func (r *Registry) Register(node Reflection, binding types.BindingID) {
	if node == nil || binding == 0 {
		return
	}
	if existing, ok := r.byBinding[binding]; ok {
		if existing == node {
			return
		}
		// First registration wins; conflicting bindings are ignored.
		return
	}
	r.byBinding[binding] = node
	r.byNode[node] = append(r.byNode[node], binding)
}

// Lookup returns the node registered for a binding, or nil.
func (r *Registry) Lookup(binding types.BindingID) Reflection {
	return r.byBinding[binding]
}

// BindingsOf returns every binding registered to the node, in registration
// order. Alias relationships show up here as multiple bindings per node.
func (r *Registry) BindingsOf(node Reflection) []types.BindingID {
	return r.byNode[node]
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	return len(r.byBinding)
}
