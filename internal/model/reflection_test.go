package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/doctree/internal/types"
)

func TestContainerCapabilityFollowsKind(t *testing.T) {
	class := NewDeclaration("Widget", types.KindClass, nil)
	assert.True(t, class.IsContainer())

	fn := NewDeclaration("run", types.KindFunction, nil)
	assert.False(t, fn.IsContainer())
}

func TestAddChildNoOpOnNonContainers(t *testing.T) {
	fn := NewDeclaration("run", types.KindFunction, nil)
	fn.AddChild(NewDeclaration("local", types.KindVariable, fn))
	assert.Empty(t, fn.Children())

	class := NewDeclaration("Widget", types.KindClass, nil)
	a := NewDeclaration("a", types.KindProperty, class)
	b := NewDeclaration("b", types.KindProperty, class)
	class.AddChild(a)
	class.AddChild(b)
	require.Len(t, class.Children(), 2)
	assert.Same(t, a, class.Children()[0], "children keep discovery order")
}

func TestFlagsAccumulate(t *testing.T) {
	node := NewDeclaration("x", types.KindProperty, nil)
	assert.False(t, node.Flags().Has(types.FlagStatic))

	node.SetFlag(types.FlagStatic)
	node.SetFlag(types.FlagReadonly)
	assert.True(t, node.Flags().Has(types.FlagStatic))
	assert.True(t, node.Flags().Has(types.FlagReadonly))
	assert.False(t, node.Flags().Has(types.FlagAbstract))
}

func TestProjectClimbsParentLinks(t *testing.T) {
	project := NewProject("root")
	module := NewDeclaration("mod", types.KindModule, project)
	class := NewDeclaration("Widget", types.KindClass, module)

	assert.Same(t, project, class.Project())

	detached := NewDeclaration("loose", types.KindVariable, nil)
	assert.Nil(t, detached.Project())
}

func TestProjectRegisterReflection(t *testing.T) {
	project := NewProject("root")
	node := NewDeclaration("x", types.KindVariable, project)

	project.RegisterReflection(node, 11)
	assert.Same(t, node, project.Registry().Lookup(11).(*DeclarationReflection))

	project.RegisterReflection(node, 0)
	assert.Equal(t, 1, project.Registry().Len())
}
