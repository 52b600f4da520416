package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/doctree/internal/model"
	"github.com/standardbeagle/doctree/internal/types"
)

func buildFixtureProject() *model.ProjectReflection {
	project := model.NewProject("fixture")

	module := model.NewDeclaration("src/main.ts", types.KindModule, project)
	module.SetComment(model.NewComment("module docs"))
	project.AddChild(module)

	class := model.NewDeclaration("Widget", types.KindClass, module)
	class.SetFlag(types.FlagExported)
	module.AddChild(class)

	method := model.NewDeclaration("render", types.KindMethod, class)
	renders := model.NewComment("renders")
	renders.AddModifierTag("deprecated")
	method.SetComment(renders)
	class.AddChild(method)

	count := model.NewDeclaration("count", types.KindProperty, class)
	count.SetFlag(types.FlagStatic)
	class.AddChild(count)

	project.RegisterReflection(class, 1)
	project.RegisterReflection(method, 2)
	return project
}

func TestCollect(t *testing.T) {
	stats := Collect(buildFixtureProject())

	assert.Equal(t, int64(4), stats.TotalNodes, "the project root itself is not counted")
	assert.Equal(t, int64(2), stats.DocumentedNodes)
	assert.InDelta(t, 50.0, stats.CoveragePercent, 0.01)

	assert.Equal(t, int64(1), stats.StaticNodes)
	assert.Equal(t, int64(1), stats.ExportedNodes)
	assert.Equal(t, int64(0), stats.ExternalNodes)
	assert.Equal(t, int64(1), stats.DeprecatedNodes)
	assert.Equal(t, int64(2), stats.RegisteredBindings)

	assert.Equal(t, int64(1), stats.KindDistribution["Module"])
	assert.Equal(t, int64(1), stats.KindDistribution["Class"])
	assert.Equal(t, int64(1), stats.KindDistribution["Method"])
	assert.Equal(t, int64(1), stats.KindDistribution["Property"])
}

func TestCollectEmptyProject(t *testing.T) {
	stats := Collect(model.NewProject("empty"))
	assert.Zero(t, stats.TotalNodes)
	assert.Zero(t, stats.CoveragePercent)
}

func TestSummary(t *testing.T) {
	summary := Collect(buildFixtureProject()).Summary()
	require.NotEmpty(t, summary)
	assert.Contains(t, summary, "4 nodes")
	assert.Contains(t, summary, "2 documented (50.0%)")
	assert.Contains(t, summary, "2 bindings registered")
	assert.Contains(t, summary, "Class")
}
