package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/standardbeagle/doctree/internal/model"
	"github.com/standardbeagle/doctree/internal/types"
)

// ModelStats summarizes a generated reflection tree.
type ModelStats struct {
	// Node counts
	TotalNodes       int64
	KindDistribution map[string]int64

	// Documentation coverage
	DocumentedNodes int64
	CoveragePercent float64

	// Flag counts
	StaticNodes   int64
	ExternalNodes int64
	ExportedNodes int64

	// Nodes whose docs carry the @deprecated modifier
	DeprecatedNodes int64

	// Registry size
	RegisteredBindings int64
}

// Collect walks the project tree and gathers statistics.
func Collect(project *model.ProjectReflection) *ModelStats {
	stats := &ModelStats{
		KindDistribution: make(map[string]int64),
	}

	var walk func(r model.Reflection)
	walk = func(r model.Reflection) {
		if r.Kind() != types.KindProject {
			stats.TotalNodes++
			stats.KindDistribution[r.Kind().String()]++
			if !r.Comment().IsEmpty() {
				stats.DocumentedNodes++
			}
			if r.Comment().HasModifier("deprecated") {
				stats.DeprecatedNodes++
			}
			if r.Flags().Has(types.FlagStatic) {
				stats.StaticNodes++
			}
			if r.Flags().Has(types.FlagExternal) {
				stats.ExternalNodes++
			}
			if r.Flags().Has(types.FlagExported) {
				stats.ExportedNodes++
			}
		}
		for _, child := range r.Children() {
			walk(child)
		}
	}
	walk(project)

	if stats.TotalNodes > 0 {
		stats.CoveragePercent = float64(stats.DocumentedNodes) / float64(stats.TotalNodes) * 100
	}
	stats.RegisteredBindings = int64(project.Registry().Len())
	return stats
}

// Summary renders the statistics as a short human-readable report.
func (s *ModelStats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d nodes, %d documented (%.1f%%), %d bindings registered\n",
		s.TotalNodes, s.DocumentedNodes, s.CoveragePercent, s.RegisteredBindings)

	kinds := make([]string, 0, len(s.KindDistribution))
	for kind := range s.KindDistribution {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&b, "  %-12s %d\n", kind, s.KindDistribution[kind])
	}
	return b.String()
}
