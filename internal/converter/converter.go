package converter

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/doctree/internal/comments"
	"github.com/standardbeagle/doctree/internal/config"
	"github.com/standardbeagle/doctree/internal/debug"
	"github.com/standardbeagle/doctree/internal/events"
	"github.com/standardbeagle/doctree/internal/model"
	"github.com/standardbeagle/doctree/internal/semantics"
	"github.com/standardbeagle/doctree/pkg/pathutil"
)

// Converter orchestrates conversion: it owns the compilation units, the one
// root context, the event bus, and the policies contexts consult. All
// collaborators are injected here so tests can substitute fakes.
type Converter struct {
	logger   *debug.Logger
	bus      *events.Bus
	comments *comments.Resolver

	style        comments.Style
	resolveLinks bool

	projectRoot string
	projectName string
	external    []string

	programs []*semantics.Program

	// origins remembers which binding produced each reflection, for
	// enrichment passes that need to get back to syntax.
	origins map[model.Reflection]*semantics.Binding
}

// New creates a converter from configuration. A nil bus gets a private one;
// a nil logger discards output.
func New(cfg *config.Config, logger *debug.Logger, bus *events.Bus) *Converter {
	if logger == nil {
		logger = debug.Discard("convert")
	}
	if bus == nil {
		bus = events.NewBus()
	}

	name := cfg.Project.Name
	if name == "" {
		name = filepath.Base(cfg.Project.Root)
	}

	cv := &Converter{
		logger:       logger,
		bus:          bus,
		comments:     comments.NewResolver(logger.Component("comments")),
		style:        cfg.Style(),
		resolveLinks: cfg.Comments.ResolveLinks,
		projectRoot:  cfg.Project.Root,
		projectName:  name,
		origins:      make(map[model.Reflection]*semantics.Binding),
	}
	for _, pattern := range cfg.External.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			logger.Error("invalid external pattern %q", pattern)
			continue
		}
		cv.external = append(cv.external, pattern)
	}
	return cv
}

// Bus exposes the event bus so enrichment passes can subscribe before
// conversion starts.
func (cv *Converter) Bus() *events.Bus {
	return cv.bus
}

// AddProgram registers a compilation unit for conversion.
func (cv *Converter) AddProgram(p *semantics.Program) {
	cv.programs = append(cv.programs, p)
}

// Convert builds the reflection tree for every registered unit. Traversal
// is synchronous and single-threaded; the returned project is complete when
// Convert returns.
func (cv *Converter) Convert() *model.ProjectReflection {
	project := model.NewProject(cv.projectName)
	ctx := newContext(cv, project, cv.programs)

	cv.emit(events.EventBegin, ctx, project, nil)
	cv.emit(events.EventCreateProject, ctx, project, nil)

	for _, program := range cv.programs {
		ctx.SetActiveProgram(program)
		for _, file := range program.Files() {
			convertFile(ctx, file)
		}
		ctx.SetActiveProgram(nil)
	}

	cv.emit(events.EventEnd, ctx, project, nil)
	return project
}

// IsExternal classifies a binding as outside the analyzed program boundary:
// declared under a path matching an external pattern, or outside the
// project root entirely.
func (cv *Converter) IsExternal(binding *semantics.Binding) bool {
	if binding == nil || binding.File == nil {
		return false
	}
	path := binding.File.Path

	if !pathutil.WithinRoot(cv.projectRoot, path) {
		return true
	}
	// Patterns match the same way the loader's excludes do, so `**/` also
	// covers paths directly under the root.
	rel := pathutil.ToSlashRelative(cv.projectRoot, path)
	for _, pattern := range cv.external {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// ShouldIgnore is the converter's ignore policy: bindings that exist in the
// symbol table but should never surface in documentation.
func (cv *Converter) ShouldIgnore(binding *semantics.Binding) bool {
	if binding == nil {
		return true
	}
	// ECMAScript private names are invisible outside their class.
	return strings.HasPrefix(binding.Name, "#")
}

// OriginOf returns the binding that produced a reflection, or nil for
// synthetic nodes such as file modules.
func (cv *Converter) OriginOf(node model.Reflection) *semantics.Binding {
	return cv.origins[node]
}

// Logger returns the converter's logger.
func (cv *Converter) Logger() *debug.Logger {
	return cv.logger
}

// emit dispatches a named event to the bus.
func (cv *Converter) emit(event string, ctx *Context, node, secondary model.Reflection) {
	cv.bus.Emit(event, events.Payload{
		Context:   ctx,
		Node:      node,
		Secondary: secondary,
	})
}
