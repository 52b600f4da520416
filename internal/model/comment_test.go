package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentIsEmpty(t *testing.T) {
	var nilComment *Comment
	assert.True(t, nilComment.IsEmpty())
	assert.True(t, NewComment("").IsEmpty())
	assert.True(t, NewComment("   \n  ").IsEmpty())
	assert.False(t, NewComment("docs").IsEmpty())

	tagged := NewComment("")
	tagged.AddBlockTag("param", "name the name")
	assert.False(t, tagged.IsEmpty())

	modified := NewComment("")
	modified.AddModifierTag("internal")
	assert.False(t, modified.IsEmpty())
}

func TestCommentTags(t *testing.T) {
	c := NewComment("summary")
	c.AddBlockTag("param", "  a the first  ")
	c.AddBlockTag("param", "b the second")
	c.AddBlockTag("returns", "nothing")

	first := c.Tag("param")
	require.NotNil(t, first)
	assert.Equal(t, "a the first", first.Content, "tag content is trimmed")
	assert.Nil(t, c.Tag("throws"))
}

func TestCommentModifiers(t *testing.T) {
	c := NewComment("summary")
	assert.False(t, c.HasModifier("internal"))
	c.AddModifierTag("internal")
	assert.True(t, c.HasModifier("internal"))

	var nilComment *Comment
	assert.False(t, nilComment.HasModifier("internal"))
}
