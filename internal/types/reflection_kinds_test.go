package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPromote(t *testing.T) {
	assert.Equal(t, KindMethod, KindFunction.Promote())
	assert.Equal(t, KindProperty, KindVariable.Promote())

	// Everything else passes through unchanged.
	for _, k := range []ReflectionKind{KindClass, KindInterface, KindEnum, KindMethod, KindProperty, KindReference} {
		assert.Equal(t, k, k.Promote())
	}
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, KindProject.IsContainer())
	assert.True(t, KindClass.IsContainer())
	assert.False(t, KindFunction.IsContainer())
	assert.False(t, KindTypeAlias.IsContainer())

	assert.False(t, KindNone.IsDeclaration())
	assert.False(t, KindProject.IsDeclaration())
	assert.True(t, KindVariable.IsDeclaration())

	assert.True(t, KindModule.IsModuleLike())
	assert.True(t, KindNamespace.IsModuleLike())
	assert.True(t, KindReference.IsModuleLike())
	assert.False(t, KindClass.IsModuleLike())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "EnumMember", KindEnumMember.String())
	assert.Equal(t, "ReflectionKind(999)", ReflectionKind(999).String())
}

func TestFlagSet(t *testing.T) {
	var flags FlagSet
	assert.False(t, flags.Has(FlagStatic))

	flags.Set(FlagStatic)
	flags.Set(FlagReadonly)
	assert.True(t, flags.Has(FlagStatic))
	assert.True(t, flags.Has(FlagReadonly))
	assert.False(t, flags.Has(FlagPrivate))

	assert.Equal(t, []string{"static", "readonly"}, flags.Names())
}

func TestPositionString(t *testing.T) {
	pos := Position{File: "src/a.ts", Line: 3, Column: 7}
	assert.Equal(t, "src/a.ts:3:7", pos.String())
}
