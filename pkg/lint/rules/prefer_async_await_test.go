package rules

import "testing"

func TestPreferAsyncAwait(t *testing.T) {
	t.Parallel()

	one := []wantError{{message: "Prefer async/await to Promise.then().", nodeType: "CallExpression"}}
	two := []wantError{{line: 1}, {line: 1}}
	runRuleTests(t, NewPreferAsyncAwaitRule(),
		[]validCase{
			{code: "async function a() { await getData(); }"},
			{code: "async function hi() { await thing().catch() }"},
			{code: "a = async () => (await something())"},
			{code: "doSomething(foo.then)"},
			{code: "hey['then'](x)"},
		},
		[]invalidCase{
			{code: "getData().then(() => {});", errors: one},
			{code: "function foo() { hey.then(x => {}) }", errors: one},
			{code: "function foo() { hey.then(function() { }).then() }", errors: two},
			{code: "function foo() { hey.then(function() { }).then(x).catch() }", errors: two},
			{code: "async function a() { hey.then(function() { }).then(function() { }) }", errors: two},
		},
	)
}
