package comments

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/doctree/internal/model"
	"github.com/standardbeagle/doctree/internal/semantics"
)

// modifierTags are bare tags that mark a declaration rather than describe
// it. Content after one of these on the same line is discarded.
var modifierTags = map[string]bool{
	"internal":             true,
	"hidden":               true,
	"ignore":               true,
	"public":               true,
	"private":              true,
	"protected":            true,
	"readonly":             true,
	"deprecated":           true,
	"experimental":         true,
	"event":                true,
	"packageDocumentation": true,
}

var linkPattern = regexp.MustCompile(`\{@link\s+([^}|\s]+)[^}]*\}`)

// Parse turns raw comment text into a structured comment. The program is
// consulted for {@link} target resolution only when non-nil; passing nil
// keeps links as plain text with no target.
func Parse(raw string, program *semantics.Program) *model.Comment {
	text := stripMarkers(raw)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	comment := model.NewComment("")
	var summary []string
	var curTag string
	var curContent []string

	flush := func() {
		if curTag == "" {
			return
		}
		content := strings.TrimSpace(strings.Join(curContent, "\n"))
		if modifierTags[curTag] && content == "" {
			comment.AddModifierTag(curTag)
		} else {
			comment.AddBlockTag(curTag, content)
		}
		curTag = ""
		curContent = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") {
			flush()
			fields := strings.SplitN(trimmed[1:], " ", 2)
			curTag = fields[0]
			if len(fields) == 2 {
				curContent = append(curContent, fields[1])
			}
			continue
		}
		if curTag != "" {
			curContent = append(curContent, line)
		} else {
			summary = append(summary, line)
		}
	}
	flush()

	comment.Summary = strings.TrimSpace(strings.Join(summary, "\n"))
	resolveLinks(comment, program)

	if comment.IsEmpty() && len(comment.Links) == 0 {
		return nil
	}
	return comment
}

// resolveLinks records every {@link Target} occurrence in the summary.
// Targets resolve through the unit's top-level names, following export
// aliases to the declaration binding.
func resolveLinks(comment *model.Comment, program *semantics.Program) {
	for _, match := range linkPattern.FindAllStringSubmatch(comment.Summary, -1) {
		link := model.Link{Text: match[1]}
		if program != nil {
			if b := program.LookupName(match[1]); b != nil {
				link.Target = program.Resolver().ResolveAlias(b).ID
			}
		}
		comment.Links = append(comment.Links, link)
	}
}

// stripMarkers removes comment delimiters and per-line decoration, leaving
// bare documentation text.
func stripMarkers(raw string) string {
	text := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimPrefix(text, "/**")
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")
		var lines []string
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "*")
			if len(line) > 0 && line[0] == ' ' {
				line = line[1:]
			}
			lines = append(lines, line)
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))

	case strings.HasPrefix(text, "//"):
		var lines []string
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "///")
			line = strings.TrimPrefix(line, "//")
			if len(line) > 0 && line[0] == ' ' {
				line = line[1:]
			}
			lines = append(lines, line)
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return text
}
