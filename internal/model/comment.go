package model

import (
	"strings"

	"github.com/standardbeagle/doctree/internal/types"
)

// BlockTag is one documentation block tag, such as @param or @returns.
type BlockTag struct {
	Tag     string
	Content string
}

// Link is a resolved {@link} reference inside a comment. Target is zero when
// cross-reference resolution was disabled or the name did not resolve.
type Link struct {
	Text   string
	Target types.BindingID
}

// Comment is a resolved documentation comment: summary text plus parsed
// block and modifier tags.
type Comment struct {
	Summary      string
	BlockTags    []BlockTag
	ModifierTags map[string]struct{}
	Links        []Link
}

// NewComment creates a comment with the given summary.
func NewComment(summary string) *Comment {
	return &Comment{
		Summary:      summary,
		ModifierTags: make(map[string]struct{}),
	}
}

// IsEmpty reports whether the comment carries no content at all.
func (c *Comment) IsEmpty() bool {
	return c == nil || (strings.TrimSpace(c.Summary) == "" && len(c.BlockTags) == 0 && len(c.ModifierTags) == 0)
}

// AddBlockTag appends a block tag in source order.
func (c *Comment) AddBlockTag(tag, content string) {
	c.BlockTags = append(c.BlockTags, BlockTag{Tag: tag, Content: strings.TrimSpace(content)})
}

// AddModifierTag records a bare modifier tag such as @internal.
func (c *Comment) AddModifierTag(tag string) {
	if c.ModifierTags == nil {
		c.ModifierTags = make(map[string]struct{})
	}
	c.ModifierTags[tag] = struct{}{}
}

// HasModifier reports whether the modifier tag is present.
func (c *Comment) HasModifier(tag string) bool {
	if c == nil {
		return false
	}
	_, ok := c.ModifierTags[tag]
	return ok
}

// Tag returns the first block tag with the given name, or nil.
func (c *Comment) Tag(tag string) *BlockTag {
	for i := range c.BlockTags {
		if c.BlockTags[i].Tag == tag {
			return &c.BlockTags[i]
		}
	}
	return nil
}
