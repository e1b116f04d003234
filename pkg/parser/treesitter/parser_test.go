//go:build cgo

package treesitter_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
	"github.com/yaklabco/gojslint/pkg/parser/js"
	"github.com/yaklabco/gojslint/pkg/parser/treesitter"
)

// shape lists node types with their spans in traversal order.
func shape(root *ast.Node) []string {
	var out []string
	ast.Inspect(root, func(n *ast.Node) {
		out = append(out, fmt.Sprintf("%s@%d-%d", n.Type, n.Start, n.End))
	})
	return out
}

func tokenValues(toks []ast.Token) []string {
	out := make([]string, len(toks))
	for idx, tok := range toks {
		out[idx] = string(tok.Type) + ":" + tok.Value
	}
	return out
}

// The converted tree must match the built-in parser for the constructs
// rules and scope analysis depend on.
func TestParse_MatchesBuiltinParser(t *testing.T) {
	t.Parallel()

	sources := []string{
		"var foo = [1, 2];",
		"let a = 1, b;\nconst c = a + b * 2;",
		"Foo.prototype.bar = function() {};",
		"var x = function foo() { return foo(); };",
		"({ ['x']: 0, get [2]() {}, a, b() {} });",
		"class A extends B { constructor() { super(); } static m() {} }",
		"var foo = object.foo; foo = bar[0];",
		"getData().then(() => {});",
		"[a = 1, ...rest] = list;",
		"if (a) { b(); } else c();",
		"for (let i = 0; i < 3; i++) {}",
		"try { x(); } catch (e) { y(e); } finally { z(); }",
	}

	tree := treesitter.New()
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			want, err := js.Parse(src, js.SourceScript)
			require.NoError(t, err)
			got, err := tree.Parse(src, lint.ParserOptions{})
			require.NoError(t, err)

			assert.Equal(t, shape(want.Root), shape(got.Root))
			assert.Equal(t, tokenValues(want.Tokens), tokenValues(got.Tokens))
		})
	}
}

func TestParse_OptionalChainWrappedOnce(t *testing.T) {
	t.Parallel()

	prog, err := treesitter.New().Parse("a?.b.c();", lint.ParserOptions{})
	require.NoError(t, err)

	chains := ast.FindAll(prog.Root, "ChainExpression")
	require.Len(t, chains, 1)
	call := chains[0].Child("expression")
	require.NotNil(t, call)
	assert.Equal(t, "CallExpression", call.Type)
	assert.Equal(t, 0, chains[0].Start)
	assert.Equal(t, 8, chains[0].End)

	members := ast.FindAll(prog.Root, "MemberExpression")
	require.Len(t, members, 2)
	assert.False(t, members[0].Bool("optional"))
	assert.True(t, members[1].Bool("optional"))
}

func TestParse_Comments(t *testing.T) {
	t.Parallel()

	src := "/* head */\nfoo(); // tail\n"
	prog, err := treesitter.New().Parse(src, lint.ParserOptions{})
	require.NoError(t, err)

	require.Len(t, prog.Comments, 2)
	assert.Equal(t, ast.Token{Type: ast.CommentBlock, Value: " head ", Start: 0, End: 10}, prog.Comments[0])
	assert.Equal(t, ast.CommentLine, prog.Comments[1].Type)
	assert.Equal(t, " tail", prog.Comments[1].Value)
	assert.Equal(t, len(src), prog.Root.End)
}

func TestParse_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := treesitter.New().Parse("var a = ;\n", lint.ParserOptions{})
	var perr *ast.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, 1, perr.Line)
	assert.NotEmpty(t, perr.Message)
}

func TestParse_OpaqueNodesKeepChildren(t *testing.T) {
	t.Parallel()

	src := "switch (x) { case 1: foo(); }"
	prog, err := treesitter.New().Parse(src, lint.ParserOptions{})
	require.NoError(t, err)

	calls := ast.FindAll(prog.Root, "CallExpression")
	require.Len(t, calls, 1)
	assert.Equal(t, "foo()", src[calls[0].Start:calls[0].End])
}

func TestParse_LintsWithBuiltinRules(t *testing.T) {
	t.Parallel()

	result, err := lint.NewLinter(rules.Default()).Lint(lint.Input{
		FilePath: "a.js",
		Text:     "var foo = object.foo;\nvar x = { ['a']: 1 };\n",
		Parser:   treesitter.New(),
		Rules: config.RuleTable{
			"prefer-destructuring":    {Severity: config.SeverityError},
			"no-useless-computed-key": {Severity: config.SeverityError},
		},
		FixMode: lint.FixApply,
	})
	require.NoError(t, err)
	assert.Equal(t, "var {foo} = object;\nvar x = { 'a': 1 };\n", result.Output)
	assert.Empty(t, result.Messages)
}
