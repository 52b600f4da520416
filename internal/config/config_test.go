package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/doctree/internal/comments"
	"github.com/standardbeagle/doctree/internal/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, filepath.IsAbs(cfg.Project.Root))
	assert.Equal(t, comments.StyleJSDoc, cfg.Style())
	assert.True(t, cfg.Comments.ResolveLinks)
	assert.NotEmpty(t, cfg.Entry)
}

func TestValidateResolvesRelativeRoot(t *testing.T) {
	cfg := Default()
	cfg.Project.Root = "."
	require.NoError(t, cfg.Validate())
	assert.True(t, filepath.IsAbs(cfg.Project.Root))
}

func TestValidateRejectsEmptyRoot(t *testing.T) {
	cfg := Default()
	cfg.Project.Root = ""

	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "project.root", cfgErr.Field)
}

func TestValidateSuggestsClosestStyle(t *testing.T) {
	cfg := Default()
	cfg.Comments.Style = "jsdocs"

	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "comments.style", cfgErr.Field)
	assert.Equal(t, "jsdoc", cfgErr.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "jsdoc"?`)
}

func TestValidateNoSuggestionForDistantTypo(t *testing.T) {
	cfg := Default()
	cfg.Comments.Style = "zzzzzz"

	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, cfgErr.Suggestion)
}

func TestValidateRejectsEmptyEntry(t *testing.T) {
	cfg := Default()
	cfg.Entry = nil

	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "entry", cfgErr.Field)
}
