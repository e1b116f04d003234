package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/parser/js"
	"github.com/yaklabco/gojslint/pkg/scope"
)

func analyze(t *testing.T, src string, opts scope.Options) (*ast.Node, *scope.Manager) {
	t.Helper()
	sourceType := opts.SourceType
	if sourceType == "" {
		sourceType = js.SourceScript
	}
	prog, err := js.Parse(src, sourceType)
	require.NoError(t, err)
	return prog.Root, scope.Analyze(prog.Root, opts)
}

func names(vars []*scope.Variable) []string {
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Name)
	}
	return out
}

func TestAnalyze_HoistsVarToFunction(t *testing.T) {
	t.Parallel()

	root, mgr := analyze(t, "function f(a) { { var x = 1; let y = 2; } return x; }", scope.Options{})

	global := mgr.Global()
	assert.Equal(t, scope.TypeGlobal, global.Type)
	assert.Equal(t, []string{"f"}, names(global.Variables))

	fn := ast.FindAll(root, "FunctionDeclaration")[0]
	fnScope := mgr.Acquire(fn)
	require.NotNil(t, fnScope)
	assert.Equal(t, scope.TypeFunction, fnScope.Type)
	assert.Equal(t, []string{"a", "x"}, names(fnScope.Variables))

	block := ast.FindAll(root, "BlockStatement")[1]
	assert.Equal(t, []string{"y"}, names(mgr.Acquire(block).Variables))

	x := fnScope.Lookup("x")
	require.NotNil(t, x)
	require.Len(t, x.References, 2)
	assert.True(t, x.References[0].Write)
	assert.True(t, x.References[1].Read)
}

func TestAnalyze_UnresolvedGoesThrough(t *testing.T) {
	t.Parallel()

	_, mgr := analyze(t, "foo(bar.baz); window.x = 1;", scope.Options{
		Globals: map[string]bool{"window": false},
	})

	global := mgr.Global()
	var through []string
	for _, ref := range global.Through {
		through = append(through, ref.Identifier.Str("name"))
	}
	assert.Equal(t, []string{"foo", "bar"}, through)

	window := global.Lookup("window")
	require.NotNil(t, window)
	assert.False(t, window.Writable)
	assert.Empty(t, window.Defs)
	assert.Len(t, window.References, 1)
}

func TestAnalyze_NamedFunctionExpression(t *testing.T) {
	t.Parallel()

	root, mgr := analyze(t, "var g = function fact(n) { return fact(n - 1); };", scope.Options{})

	fn := ast.FindAll(root, "FunctionExpression")[0]
	assert.Equal(t, []string{"fact", "n"}, names(mgr.DeclaredVariables(fn)))

	call := ast.FindAll(root, "CallExpression")[0]
	inner := mgr.Innermost(call)
	assert.Equal(t, scope.TypeFunction, inner.Type)

	fact := inner.Resolve("fact")
	require.NotNil(t, fact)
	assert.Equal(t, scope.TypeFunctionExpressionName, fact.Scope.Type)
	assert.Len(t, fact.References, 1)
	assert.Equal(t, scope.DefFunctionName, fact.Defs[0].Type)
}

func TestAnalyze_ModuleAndInnermost(t *testing.T) {
	t.Parallel()

	root, mgr := analyze(t, "import a from 'a'; const b = a; export { b };", scope.Options{SourceType: "module"})

	assert.Equal(t, scope.TypeGlobal, mgr.Innermost(root).Type)

	module := mgr.Acquire(root)
	require.NotNil(t, module)
	assert.Equal(t, scope.TypeModule, module.Type)
	assert.Equal(t, []string{"a", "b"}, names(module.Variables))

	b := module.Lookup("b")
	require.NotNil(t, b)
	assert.Len(t, b.References, 2)

	imp := ast.FindAll(root, "ImportDeclaration")[0]
	assert.Equal(t, []string{"a"}, names(mgr.DeclaredVariables(imp)))
}

func TestAnalyze_GlobalReturn(t *testing.T) {
	t.Parallel()

	_, mgr := analyze(t, "var x = require('x');", scope.Options{GlobalReturn: true})

	assert.Nil(t, mgr.Global().Lookup("x"))
	require.Len(t, mgr.Global().ChildScopes, 1)
	assert.NotNil(t, mgr.Global().ChildScopes[0].Lookup("x"))
}

func TestAnalyze_PropertiesAndLabelsAreNotReferences(t *testing.T) {
	t.Parallel()

	_, mgr := analyze(t, "outer: for (const k of list) { o.k = { k: k, [k]: 1 }; continue outer; }", scope.Options{})

	var through []string
	for _, ref := range mgr.Global().Through {
		through = append(through, ref.Identifier.Str("name"))
	}
	assert.Equal(t, []string{"list", "o"}, through)

	forScope := mgr.Global().ChildScopes[0]
	assert.Equal(t, scope.TypeFor, forScope.Type)
	k := forScope.Lookup("k")
	require.NotNil(t, k)
	assert.Len(t, k.References, 3)
}

func TestAnalyze_DestructuringAndCatch(t *testing.T) {
	t.Parallel()

	root, mgr := analyze(t, "try {} catch ({ message, ...rest }) { [a, b = message] = rest; }", scope.Options{})

	catchClause := ast.FindAll(root, "CatchClause")[0]
	assert.Equal(t, []string{"message", "rest"}, names(mgr.DeclaredVariables(catchClause)))

	catchScope := mgr.Acquire(catchClause)
	require.NotNil(t, catchScope)
	assert.Equal(t, scope.TypeCatch, catchScope.Type)
	assert.Len(t, catchScope.Lookup("message").References, 1)

	var writes []string
	for _, ref := range mgr.Global().Through {
		if ref.Write {
			writes = append(writes, ref.Identifier.Str("name"))
		}
	}
	assert.Equal(t, []string{"a", "b"}, writes)
}

func TestAnalyze_Classes(t *testing.T) {
	t.Parallel()

	root, mgr := analyze(t, "class A extends B { m() { return A; } }", scope.Options{})

	assert.Equal(t, []string{"A"}, names(mgr.Global().Variables))
	class := ast.FindAll(root, "ClassDeclaration")[0]
	classScope := mgr.Acquire(class)
	require.NotNil(t, classScope)
	assert.Equal(t, scope.TypeClass, classScope.Type)
	assert.Len(t, classScope.Lookup("A").References, 1)
	assert.Empty(t, mgr.Global().Lookup("A").References)
}
