//go:build cgo

package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/internal/cli"
)

func TestIntegration_TreeSitterParser(t *testing.T) {
	t.Parallel()

	cfgPath, jsPath := project(t, testSource)
	out, _, err := execute(t, "lint", "--config", cfgPath, "--color", "never", "--parser", "tree-sitter", jsPath)

	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Contains(t, out, "2 problems (1 error, 1 warning)")
}
