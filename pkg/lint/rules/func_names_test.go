package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// generatorOptions returns the object and two-item spellings of one
// base/generators combination.
func generatorOptions(base, generators string) [][]any {
	return [][]any{
		opts(obj("base", base, "generators", generators)),
		opts(base, obj("generators", generators)),
	}
}

func TestFuncNames(t *testing.T) {
	t.Parallel()

	unnamed := []wantError{{message: "Unexpected unnamed function.", nodeType: "FunctionExpression"}}
	valid := []validCase{
		{code: "Foo.prototype.bar = function bar(){};"},
		{code: "Foo.prototype.bar = () => {}"},
		{code: "function foo(){}"},
		{code: "new function bar(){}"},
		{code: "exports = { get foo() { return 1; }, set bar(val) { return val; } };"},
		{code: "({ foo() { return 1; } });"},
		{code: "class A { constructor(){} foo(){} get bar(){} set baz(value){} static qux(){}}"},
		{code: "var a = function foo() {};", options: opts("always")},
		{code: "class A { constructor(){} foo(){} get bar(){} set baz(value){} static qux(){}}", options: opts("as-needed")},
		{code: "({ foo() {} });", options: opts("as-needed")},
		{code: "var foo = function(){};", options: opts("as-needed")},
		{code: "({foo: function(){}});", options: opts("as-needed")},
		{code: "(foo = function(){});", options: opts("as-needed")},
		{code: "export default (function(){});", options: opts("as-needed"), module: true},
		{code: "({foo = function(){}} = {});", options: opts("as-needed")},
		{code: "({key: foo = function(){}} = {});", options: opts("as-needed")},
		{code: "[foo = function(){}] = [];", options: opts("as-needed")},
		{code: "function fn(foo = function(){}) {}", options: opts("as-needed")},
		{code: "var a = function() {};", options: opts("never")},
		{code: "var a = function foo() { foo(); };", options: opts("never")},
		{code: "var foo = {bar: function() {}};", options: opts("never")},
		{code: "$('#foo').click(function() {});", options: opts("never")},
		{code: "({ foo() {} });", options: opts("never")},
		{code: "var foo = bar(function *baz() {});", options: opts("as-needed")},
		{code: "var foo = bar(function *() {});", options: opts("never")},
	}
	for _, base := range []string{"always", "as-needed", "never"} {
		for _, generators := range []string{"always", "as-needed"} {
			for _, options := range generatorOptions(base, generators) {
				valid = append(valid, validCase{code: "var foo = bar(function *baz() {});", options: options})
			}
		}
		for _, options := range generatorOptions(base, "never") {
			valid = append(valid, validCase{code: "var foo = bar(function *() {});", options: options})
		}
	}

	invalid := []invalidCase{
		{code: "Foo.prototype.bar = function() {};", errors: unnamed},
		{code: "(function(){}())", errors: unnamed},
		{code: "f(function(){})", errors: unnamed},
		{code: "var a = new Date(function() {});", errors: unnamed},
		{code: "var test = function(d, e, f) {};", errors: unnamed},
		{code: "new function() {}", errors: unnamed},
		{code: "Foo.prototype.bar = function() {};", options: opts("as-needed"), errors: unnamed},
		{code: "(function(){}())", options: opts("as-needed"), errors: unnamed},
		{code: "new function() {}", options: opts("as-needed"), errors: unnamed},
		{code: "var {foo} = function(){};", options: opts("as-needed"), errors: unnamed},
		{
			code:    "var x = function foo() {};",
			options: opts("never"),
			errors:  []wantError{{message: "Unexpected named function 'foo'.", nodeType: "FunctionExpression", line: 1, column: 9}},
		},
		{
			code:    "({foo: function foo() {}})",
			options: opts("never"),
			errors:  []wantError{{message: "Unexpected named method 'foo'."}},
		},
		{
			code:    "var foo = bar(function *() {});",
			options: opts("always"),
			errors:  []wantError{{message: "Unexpected unnamed generator function."}},
		},
		{
			code:    "var foo = bar(function *baz() {});",
			options: opts("never"),
			errors:  []wantError{{message: "Unexpected named generator function 'baz'."}},
		},
	}
	for _, base := range []string{"always", "as-needed", "never"} {
		for _, generators := range []string{"always", "as-needed"} {
			for _, options := range generatorOptions(base, generators) {
				invalid = append(invalid, invalidCase{
					code:    "var foo = bar(function *() {});",
					options: options,
					errors:  []wantError{{message: "Unexpected unnamed generator function."}},
				})
			}
		}
		for _, options := range generatorOptions(base, "never") {
			invalid = append(invalid, invalidCase{
				code:    "var foo = bar(function *baz() {});",
				options: options,
				errors:  []wantError{{message: "Unexpected named generator function 'baz'."}},
			})
		}
	}

	runRuleTests(t, NewFuncNamesRule(), valid, invalid)
}

func TestNormalizeFuncNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options []any
		want    funcNamesPolicy
	}{
		{name: "defaults", want: funcNamesPolicy{base: "always", generators: "always"}},
		{name: "string", options: opts("never"), want: funcNamesPolicy{base: "never", generators: "never"}},
		{
			name:    "string with generators",
			options: opts("as-needed", obj("generators", "never")),
			want:    funcNamesPolicy{base: "as-needed", generators: "never"},
		},
		{
			name:    "object",
			options: opts(obj("base", "never", "generators", "always")),
			want:    funcNamesPolicy{base: "never", generators: "always"},
		},
		{
			name:    "base ignored in second position",
			options: opts("always", obj("base", "never")),
			want:    funcNamesPolicy{base: "always", generators: "always"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeFuncNames(tt.options))
		})
	}
}
