package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummaryOnly(t *testing.T) {
	c := Parse("/** Renders the widget. */", nil)
	require.NotNil(t, c)
	assert.Equal(t, "Renders the widget.", c.Summary)
	assert.Empty(t, c.BlockTags)
}

func TestParseBlockTags(t *testing.T) {
	raw := `/**
 * Adds two numbers.
 *
 * @param a the first operand
 * @param b the second operand
 * @returns the sum
 */`
	c := Parse(raw, nil)
	require.NotNil(t, c)
	assert.Equal(t, "Adds two numbers.", c.Summary)
	require.Len(t, c.BlockTags, 3)
	assert.Equal(t, "param", c.BlockTags[0].Tag)
	assert.Equal(t, "a the first operand", c.BlockTags[0].Content)
	assert.Equal(t, "returns", c.BlockTags[2].Tag)
}

func TestParseMultiLineTagContent(t *testing.T) {
	raw := `/**
 * @example
 * const w = make();
 * w.render();
 */`
	c := Parse(raw, nil)
	require.NotNil(t, c)
	tag := c.Tag("example")
	require.NotNil(t, tag)
	assert.Contains(t, tag.Content, "const w = make();")
	assert.Contains(t, tag.Content, "w.render();")
}

func TestParseModifierTags(t *testing.T) {
	raw := `/**
 * Internal helper.
 * @internal
 * @deprecated use render instead
 */`
	c := Parse(raw, nil)
	require.NotNil(t, c)
	assert.True(t, c.HasModifier("internal"))

	// A known modifier with trailing content stays a block tag.
	assert.False(t, c.HasModifier("deprecated"))
	dep := c.Tag("deprecated")
	require.NotNil(t, dep)
	assert.Equal(t, "use render instead", dep.Content)
}

func TestParseLineComments(t *testing.T) {
	raw := "// Renders the widget.\n// Slowly."
	c := Parse(raw, nil)
	require.NotNil(t, c)
	assert.Equal(t, "Renders the widget.\nSlowly.", c.Summary)
}

func TestParseEmptyReturnsNil(t *testing.T) {
	assert.Nil(t, Parse("/** */", nil))
	assert.Nil(t, Parse("//", nil))
	assert.Nil(t, Parse("", nil))
}

func TestParseLinksWithoutProgram(t *testing.T) {
	c := Parse("/** See {@link Widget} for details. */", nil)
	require.NotNil(t, c)
	require.Len(t, c.Links, 1)
	assert.Equal(t, "Widget", c.Links[0].Text)
	assert.Zero(t, c.Links[0].Target, "no program means no resolution")
}

func TestStyleAccepts(t *testing.T) {
	assert.True(t, StyleJSDoc.accepts("/** docs */"))
	assert.False(t, StyleJSDoc.accepts("/* docs */"))
	assert.False(t, StyleJSDoc.accepts("/*** banner ***/"))
	assert.False(t, StyleJSDoc.accepts("// docs"))

	assert.True(t, StyleBlock.accepts("/* docs */"))
	assert.True(t, StyleBlock.accepts("/** docs */"))
	assert.False(t, StyleBlock.accepts("// docs"))

	assert.True(t, StyleLine.accepts("// docs"))
	assert.False(t, StyleLine.accepts("/* docs */"))

	assert.True(t, StyleAll.accepts("// docs"))
	assert.True(t, StyleAll.accepts("/* docs */"))
}

func TestStyleValid(t *testing.T) {
	for _, name := range Styles() {
		assert.True(t, Style(name).Valid())
	}
	assert.False(t, Style("markdown").Valid())
	assert.False(t, Style("").Valid())
}
