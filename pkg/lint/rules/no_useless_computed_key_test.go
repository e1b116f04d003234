package rules

import (
	"fmt"
	"testing"
)

func TestNoUselessComputedKey(t *testing.T) {
	t.Parallel()

	found := func(nodeType, property string) []wantError {
		return []wantError{{
			message:  fmt.Sprintf("Unnecessarily computed property [%s] found.", property),
			nodeType: nodeType,
		}}
	}
	checkMethods := opts(obj("checkMethods", true))

	valid := []validCase{
		{code: "({ 'a': 0, b(){} })"},
		{code: "({ [x]: 0 });"},
		{code: "({ a: 0, [b](){} })"},
		{code: "({ ['__proto__']: [] })"},
		{code: "class Foo { 'a'() {} }"},
		{code: "class Foo { [x]() {} }"},
		{code: "class Foo { ['constructor']() {} }", options: checkMethods},
		{code: "class Foo { ['x']() {} }"},
	}

	invalid := []invalidCase{
		{code: "({ ['0']: 0 })", output: "({ '0': 0 })", errors: found("Property", "'0'")},
		{code: "({ ['0+1,234']: 0 })", output: "({ '0+1,234': 0 })", errors: found("Property", "'0+1,234'")},
		{code: "({ [0]: 0 })", output: "({ 0: 0 })", errors: found("Property", "0")},
		{code: "({ ['x']: 0 })", output: "({ 'x': 0 })", errors: found("Property", "'x'")},
		{code: "({ [/* this comment prevents a fix */ 'x']: 0 })", errors: found("Property", "'x'")},
		{code: "({ ['x' /* this comment also prevents a fix */]: 0 })", errors: found("Property", "'x'")},
		{code: "({ [('x')]: 0 })", output: "({ 'x': 0 })", errors: found("Property", "'x'")},
	}

	// Method forms are checked in object literals and, with checkMethods,
	// in class bodies.
	methods := []struct {
		member, output, property string
	}{
		{"['x']() {}", "'x'() {}", "'x'"},
		{"*['x']() {}", "*'x'() {}", "'x'"},
		{"async ['x']() {}", "async 'x'() {}", "'x'"},
		{"get[.2]() {}", "get.2() {}", ".2"},
		{"set[.2](value) {}", "set.2(value) {}", ".2"},
		{"async[.2]() {}", "async.2() {}", ".2"},
		{"[2]() {}", "2() {}", "2"},
		{"get [2]() {}", "get 2() {}", "2"},
		{"set [2](value) {}", "set 2(value) {}", "2"},
		{"async [2]() {}", "async 2() {}", "2"},
		{"get[2]() {}", "get 2() {}", "2"},
		{"set[2](value) {}", "set 2(value) {}", "2"},
		{"async[2]() {}", "async 2() {}", "2"},
		{"get['foo']() {}", "get'foo'() {}", "'foo'"},
		{"*[2]() {}", "*2() {}", "2"},
		{"async*[2]() {}", "async*2() {}", "2"},
	}
	for _, m := range methods {
		invalid = append(invalid,
			invalidCase{
				code:   "({ " + m.member + " })",
				output: "({ " + m.output + " })",
				errors: found("Property", m.property),
			},
			invalidCase{
				code:    "class Foo { " + m.member + " }",
				output:  "class Foo { " + m.output + " }",
				options: checkMethods,
				errors:  found("MethodDefinition", m.property),
			},
		)
	}
	invalid = append(invalid,
		invalidCase{
			code:    "class Foo { [/* this comment prevents a fix */ 'x']() {} }",
			options: checkMethods,
			errors:  found("MethodDefinition", "'x'"),
		},
		invalidCase{
			code:    "class Foo { [('x')]() {} }",
			output:  "class Foo { 'x'() {} }",
			options: checkMethods,
			errors:  found("MethodDefinition", "'x'"),
		},
	)

	runRuleTests(t, NewNoUselessComputedKeyRule(), valid, invalid)
}
