package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
	"github.com/yaklabco/gojslint/pkg/parser/js"
	"github.com/yaklabco/gojslint/pkg/processor/markdown"
)

const doc = "# Title\n" +
	"\n" +
	"```js\n" +
	"var foo = object.foo;\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"package main\n" +
	"```\n" +
	"\n" +
	"- item\n" +
	"\n" +
	"  ```javascript\n" +
	"  a.__iterator__ = 1;\n" +
	"  ```\n"

func TestPreprocess(t *testing.T) {
	t.Parallel()

	blocks := markdown.New(markdown.FlavorCommonMark).Preprocess([]byte(doc))

	require.Len(t, blocks, 2)
	assert.Equal(t, 0, blocks[0].Index)
	assert.Equal(t, "js", blocks[0].Lang)
	assert.Equal(t, "var foo = object.foo;\n", blocks[0].Text)
	assert.Equal(t, 1, blocks[1].Index)
	assert.Equal(t, "javascript", blocks[1].Lang)
	assert.Equal(t, "a.__iterator__ = 1;\n", blocks[1].Text)
}

func TestPreprocess_Untagged(t *testing.T) {
	t.Parallel()

	src := []byte("```\nconst f = () => 1;\n```\n\n```\nplain words here\n```\n")

	assert.Empty(t, markdown.New("").Preprocess(src))

	proc := markdown.New(markdown.FlavorGFM)
	proc.DetectUntagged = true
	blocks := proc.Preprocess(src)
	require.Len(t, blocks, 1)
	assert.Equal(t, "const f = () => 1;\n", blocks[0].Text)
}

func TestBlock_Offset(t *testing.T) {
	t.Parallel()

	blocks := markdown.New("").Preprocess([]byte(doc))
	require.Len(t, blocks, 2)

	first := blocks[0]
	assert.Equal(t, "var", doc[first.Offset(0):first.Offset(3)])

	// The indented block strips the list indentation.
	second := blocks[1]
	start := second.Offset(2)
	assert.Equal(t, "__iterator__", doc[start:start+len("__iterator__")])
}

func TestMapProblems_ThroughLinter(t *testing.T) {
	t.Parallel()

	src := ast.NewSource(doc)
	linter := lint.NewLinter(rules.Default())
	blocks := markdown.New("").Preprocess([]byte(doc))

	var problems []lint.Problem
	for _, block := range blocks {
		result, err := linter.Lint(lint.Input{
			FilePath: "README.md",
			Text:     block.Text,
			Parser:   js.New(),
			Rules: config.RuleTable{
				"no-iterator":          {Severity: config.SeverityError},
				"prefer-destructuring": {Severity: config.SeverityWarn},
			},
			FixMode: lint.FixSuggest,
		})
		require.NoError(t, err)
		problems = append(problems, block.MapProblems(src, result.Messages)...)
	}

	require.Len(t, problems, 2)

	assert.Equal(t, "prefer-destructuring", problems[0].RuleID)
	assert.Equal(t, 4, problems[0].Line)
	assert.Equal(t, 5, problems[0].Column)
	assert.Nil(t, problems[0].Fix)

	assert.Equal(t, "no-iterator", problems[1].RuleID)
	assert.Equal(t, 14, problems[1].Line)
	assert.Equal(t, 3, problems[1].Column)
}
