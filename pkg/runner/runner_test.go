package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
	"github.com/yaklabco/gojslint/pkg/metrics"
	"github.com/yaklabco/gojslint/pkg/parser/js"
	"github.com/yaklabco/gojslint/pkg/processor/markdown"
	"github.com/yaklabco/gojslint/pkg/runner"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newPipeline(dir string, rulesCfg map[string]any) *runner.Pipeline {
	cfg := &config.Config{Base: config.Base{Rules: rulesCfg}}
	return &runner.Pipeline{
		Linter:   lint.NewLinter(rules.Default()),
		Config:   configloader.NewResolver(cfg, dir),
		Parsers:  map[string]lint.Parser{"js": js.New()},
		Markdown: markdown.New(markdown.FlavorGFM),
		FixMode:  lint.FixOff,
	}
}

func TestRunner_Run_Empty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result, err := runner.New(newPipeline(dir, nil)).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_CollectsInPathOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.js":     "foo.__iterator__ = 1;\n",
		"a.js":     "var ok = 1;\n",
		"c/d.js":   "x.__iterator__;\ny.__iterator__;\n",
		"notes.md": "```js\nz.__iterator__;\n```\n",
	})

	pipeline := newPipeline(dir, map[string]any{"no-iterator": "error"})
	pipeline.Metrics = metrics.New()

	result, err := runner.New(pipeline).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Markdown:   true,
		Jobs:       2,
	})
	require.NoError(t, err)

	paths := make([]string, len(result.Files))
	for idx, file := range result.Files {
		require.NoError(t, file.Error)
		paths[idx], _ = filepath.Rel(dir, file.Path)
	}
	assert.Equal(t, []string{"a.js", "b.js", filepath.Join("c", "d.js"), "notes.md"}, paths)

	assert.Equal(t, 4, result.Stats.FilesLinted)
	assert.Equal(t, 3, result.Stats.FilesWithIssues)
	assert.Equal(t, 4, result.Stats.Errors)
	assert.True(t, result.HasErrors())

	md := result.Files[3].File.Result
	require.Len(t, md.Messages, 1)
	assert.Equal(t, 2, md.Messages[0].Line)
}

func TestRunner_Run_FixWritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "var foo = object.foo;\n"})

	pipeline := newPipeline(dir, map[string]any{"prefer-destructuring": "error"})
	pipeline.FixMode = lint.FixApply
	pipeline.Write = true

	result, err := runner.New(pipeline).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesFixed)
	assert.False(t, result.HasIssues())

	got, err := os.ReadFile(filepath.Join(dir, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "var {foo} = object;\n", string(got))
}

func TestRunner_Run_DryRunLeavesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "var foo = object.foo;\n"})

	pipeline := newPipeline(dir, map[string]any{"prefer-destructuring": "error"})
	pipeline.FixMode = lint.FixApply

	result, err := runner.New(pipeline).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "var {foo} = object;\n", result.Files[0].File.Result.Output)
	assert.Equal(t, 0, result.Stats.FilesFixed)

	got, err := os.ReadFile(filepath.Join(dir, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "var foo = object.foo;\n", string(got))
}

func TestRunner_Run_UnknownParserIsFileError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "1;\n"})

	pipeline := newPipeline(dir, nil)
	pipeline.ParserOverride = "nope"

	result, err := runner.New(pipeline).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.ErrorIs(t, result.Files[0].Error, runner.ErrUnknownParser)
	assert.Equal(t, 1, result.Stats.FilesErrored)
}

func TestRunner_Run_InvalidRuleOptionsAbort(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.js": "var f = function() {};\n",
		"b.js": "var ok = 1;\n",
	})

	pipeline := newPipeline(dir, map[string]any{"func-names": []any{"error", "bogus"}})
	result, err := runner.New(pipeline).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.Error(t, err)
	assert.Nil(t, result)

	var cfgErr *lint.ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
	assert.Equal(t, "func-names", cfgErr.RuleID)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "1;\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(newPipeline(dir, nil)).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}
