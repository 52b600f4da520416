package model

import "strings"

// HumanName normalizes a raw binding name for display. String-literal
// derived names keep their quoting artifacts in the semantic engine
// ("\"foo\"" or "'foo'"); computed member names arrive wrapped in brackets.
// Both are stripped so the model shows the name a reader would write.
func HumanName(raw string) string {
	name := strings.TrimSpace(raw)
	if len(name) >= 2 {
		switch {
		case name[0] == '"' && name[len(name)-1] == '"',
			name[0] == '\'' && name[len(name)-1] == '\'',
			name[0] == '`' && name[len(name)-1] == '`':
			return name[1 : len(name)-1]
		case name[0] == '[' && name[len(name)-1] == ']':
			return HumanName(name[1 : len(name)-1])
		}
	}
	return name
}
