package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToRelative(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "project")

	assert.Equal(t, filepath.Join("src", "index.ts"),
		ToRelative(root, filepath.Join(root, "src", "index.ts")))

	// Relative input passes through untouched.
	assert.Equal(t, "src/index.ts", ToRelative(root, "src/index.ts"))

	// Empty root passes through.
	assert.Equal(t, filepath.Join(root, "a.ts"), ToRelative("", filepath.Join(root, "a.ts")))
}

func TestToAbsolute(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "project")

	assert.Equal(t, filepath.Join(root, "src", "index.ts"),
		ToAbsolute(root, filepath.Join("src", "index.ts")))

	abs := filepath.Join(string(filepath.Separator), "other", "a.ts")
	assert.Equal(t, abs, ToAbsolute(root, abs))
}

func TestWithinRoot(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "project")

	assert.True(t, WithinRoot(root, filepath.Join(root, "src", "a.ts")))
	assert.True(t, WithinRoot(root, root))
	assert.False(t, WithinRoot(root, filepath.Join(string(filepath.Separator), "elsewhere", "a.ts")))
	assert.False(t, WithinRoot(root, filepath.Dir(root)))
}

func TestToSlashRelative(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "project")
	assert.Equal(t, "src/index.ts",
		ToSlashRelative(root, filepath.Join(root, "src", "index.ts")))
}
