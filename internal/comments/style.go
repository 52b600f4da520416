package comments

import "strings"

// Style selects which comment shapes are treated as documentation.
type Style string

const (
	// StyleJSDoc accepts only /** ... */ comments.
	StyleJSDoc Style = "jsdoc"
	// StyleBlock accepts any /* ... */ comment.
	StyleBlock Style = "block"
	// StyleLine accepts contiguous // comment groups.
	StyleLine Style = "line"
	// StyleAll accepts everything.
	StyleAll Style = "all"
)

// Styles lists the valid style names, for config validation.
func Styles() []string {
	return []string{string(StyleJSDoc), string(StyleBlock), string(StyleLine), string(StyleAll)}
}

// Valid reports whether s names a known style.
func (s Style) Valid() bool {
	switch s {
	case StyleJSDoc, StyleBlock, StyleLine, StyleAll:
		return true
	}
	return false
}

// accepts reports whether raw comment text qualifies under the style.
func (s Style) accepts(text string) bool {
	switch s {
	case StyleJSDoc:
		return strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***")
	case StyleBlock:
		return strings.HasPrefix(text, "/*")
	case StyleLine:
		return strings.HasPrefix(text, "//")
	case StyleAll:
		return true
	}
	return false
}
