package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferDestructuring(t *testing.T) {
	t.Parallel()

	useArray := func(nodeType string) []wantError {
		return []wantError{{message: "Use array destructuring.", nodeType: nodeType}}
	}
	useObject := func(nodeType string) []wantError {
		return []wantError{{message: "Use object destructuring.", nodeType: nodeType}}
	}
	rename := obj("enforceForRenamedProperties", true)
	noRename := obj("enforceForRenamedProperties", false)
	declObject := obj("VariableDeclarator", obj("object", true))

	valid := []validCase{
		{code: "var [foo] = array;"},
		{code: "var { foo } = object;"},
		{code: "var foo;"},
		{code: "var foo = object.bar;", options: opts(declObject)},
		{code: "var foo = object.bar;", options: opts(obj("object", true))},
		{code: "var foo = object['bar'];", options: opts(declObject, noRename)},
		{code: "var foo = object[bar];", options: opts(obj("object", true), noRename)},
		{code: "var { bar: foo } = object;", options: opts(declObject, rename)},
		{code: "var { [bar]: foo } = object;", options: opts(obj("object", true), rename)},
		{code: "var foo = array[0];", options: opts(obj("VariableDeclarator", obj("array", false)))},
		{code: "var foo = array[0];", options: opts(obj("array", false), rename)},
		{code: "var foo = object.foo;", options: opts(obj("VariableDeclarator", obj("object", false)))},
		{code: "({ foo } = object);"},
		{code: "[foo] = array;"},
		{code: "foo += array[0]"},
		{code: "foo += bar.foo"},
		{code: "foo = object.foo;", options: opts(obj("AssignmentExpression", obj("object", false)), rename)},
		{code: "foo = array[0];", options: opts(obj("AssignmentExpression", obj("array", false)), noRename)},
		{
			code: "var foo = array[0];",
			options: opts(obj(
				"VariableDeclarator", obj("array", false),
				"AssignmentExpression", obj("array", true),
			), noRename),
		},
		{
			code: "var foo = object.foo;",
			options: opts(obj(
				"VariableDeclarator", obj("object", false),
				"AssignmentExpression", obj("object", true),
			)),
		},
		{code: "class Foo extends Bar { static foo() {var foo = super.foo} }"},
		{code: "foo = bar[foo];"},
		{code: "var foo = bar[foo];"},
		{code: "var {foo: {bar}} = object;", options: opts(obj("object", true))},
		{code: "var {bar} = object.foo;", options: opts(obj("object", true))},
		{code: "var foo = array?.[0];"},
		{code: "var foo = object?.foo;"},
	}

	invalid := []invalidCase{
		{code: "var foo = array[0];", errors: useArray("VariableDeclarator")},
		{code: "foo = array[0];", errors: useArray("AssignmentExpression")},
		{code: "var foo = object.foo;", output: "var {foo} = object;", errors: useObject("VariableDeclarator")},
		{code: "var foo = object.bar.foo;", output: "var {foo} = object.bar;", errors: useObject("VariableDeclarator")},
		{code: "var foo = (a, b).foo;", output: "var {foo} = (a, b);", errors: useObject("VariableDeclarator")},
		{code: "var foo = /* keep */ object.foo;", errors: useObject("VariableDeclarator")},
		{code: "var foobar = object.bar;", options: opts(declObject, rename), errors: useObject("VariableDeclarator")},
		{code: "var foobar = object.bar;", options: opts(obj("object", true), rename), errors: useObject("VariableDeclarator")},
		{code: "var foo = object[bar];", options: opts(declObject, rename), errors: useObject("VariableDeclarator")},
		{code: "var foo = object['foo'];", errors: useObject("VariableDeclarator")},
		{code: "foo = object.foo;", errors: useObject("AssignmentExpression")},
		{code: "foo = object['foo'];", errors: useObject("AssignmentExpression")},
		{
			code:    "var foo = array[0];",
			options: opts(obj("VariableDeclarator", obj("array", true)), rename),
			errors:  useArray("VariableDeclarator"),
		},
		{
			code:    "foo = array[0];",
			options: opts(obj("AssignmentExpression", obj("array", true))),
			errors:  useArray("AssignmentExpression"),
		},
		{
			code: "foo = array[0];",
			options: opts(obj(
				"VariableDeclarator", obj("array", false),
				"AssignmentExpression", obj("array", true),
			)),
			errors: useArray("AssignmentExpression"),
		},
		{
			code: "foo = object.foo;",
			options: opts(obj(
				"VariableDeclarator", obj("array", true, "object", false),
				"AssignmentExpression", obj("object", true),
			)),
			errors: useObject("AssignmentExpression"),
		},
		{
			code:   "class Foo extends Bar { static foo() {var bar = super.foo.bar} }",
			output: "class Foo extends Bar { static foo() {var {bar} = super.foo} }",
			errors: useObject("VariableDeclarator"),
		},
	}

	runRuleTests(t, NewPreferDestructuringRule(), valid, invalid)
}

func TestNormalizeDestructuring_Defaults(t *testing.T) {
	t.Parallel()

	policy := normalizeDestructuring(nil, nil)
	for _, nodeType := range []string{"VariableDeclarator", "AssignmentExpression"} {
		assert.True(t, policy.shouldCheck(nodeType, "array"), nodeType)
		assert.True(t, policy.shouldCheck(nodeType, "object"), nodeType)
	}
	assert.False(t, policy.enforceRename)

	// Naming one node type switches the other off.
	policy = normalizeDestructuring(obj("VariableDeclarator", obj("array", true)), nil)
	assert.True(t, policy.shouldCheck("VariableDeclarator", "array"))
	assert.False(t, policy.shouldCheck("VariableDeclarator", "object"))
	assert.False(t, policy.shouldCheck("AssignmentExpression", "array"))
}
