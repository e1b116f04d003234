package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	errNoBreakAfter  = "There should be no linebreak after '['."
	errBreakAfter    = "A linebreak is required after '['."
	errNoBreakBefore = "There should be no linebreak before ']'."
	errBreakBefore   = "A linebreak is required before ']'."
)

func TestArrayBracketNewline(t *testing.T) {
	t.Parallel()

	always := opts("always")
	never := opts("never")
	multiline := opts(obj("multiline", true))
	consistent := opts(obj("multiline", true, "consistent", true))

	valid := []validCase{
		// default { multiline: true }
		{code: "var foo = [];"},
		{code: "var foo = [1];"},
		{code: "var foo = /* any comment */[1];"},
		{code: "var foo = /* any comment */\n[1];"},
		{code: "var foo = [1, 2];"},
		{code: "var foo = [ // any comment\n1, 2\n];"},
		{code: "var foo = [\n// any comment\n1, 2\n];"},
		{code: "var foo = [\n1, 2\n// any comment\n];"},
		{code: "var foo = [\n1,\n2\n];"},
		{code: "var foo = [\nfunction foo() {\nreturn dosomething();\n}\n];"},

		{code: "var foo = [\n];", options: always},
		{code: "var foo = [\n1\n];", options: always},
		{code: "var foo = [\n// any\n1\n];", options: always},
		{code: "var foo = [\n1, 2 // any comment\n];", options: always},

		{code: "var foo = [];", options: never},
		{code: "var foo = [/* any comment */1];", options: never},
		{code: "var foo = [1,\n2];", options: never},
		{code: "var foo = [function foo() {\ndosomething();\n}];", options: never},

		{code: "var foo = [1]\n/* any comment*/\n;", options: opts(obj("multiline", false))},
		{code: "var foo = [1,\n2];", options: opts(obj("multiline", false))},

		{code: "var foo = [1];", options: opts(obj("minItems", 2))},
		{code: "var foo = [\n1, 2\n];", options: opts(obj("minItems", 2))},
		{code: "var foo = [\n];", options: opts(obj("minItems", 0))},
		{code: "var foo = [1,\n2];", options: opts(obj("minItems", nil))},
		{code: "var b = [ // any comment\n1\n];", options: opts(obj("multiline", true, "minItems", 2))},
		{code: "var c = [\n1, /* any comment */ 2\n];", options: opts(obj("multiline", true, "minItems", 2))},

		// ArrayPattern
		{code: "var [] = foo"},
		{code: "var [a, b] = foo;"},
		{code: "var [\na,\nb\n] = foo;"},
		{code: "var [\na\n] = foo;", options: always},

		{code: "var b = [\n    1\n];", options: consistent},
		{code: "var c = [1, 2];", options: consistent},
		{code: "var e = [function() { dosomething();}];", options: consistent},
		{code: "let [\n    a, b\n] = [1, 2];", options: consistent},
		{code: "var c = [1,\n2];", options: opts(obj("multiline", false, "consistent", true))},
		{code: "var c = [ 1 ];", options: opts(obj("multiline", true, "consistent", true, "minItems", 2))},
		{code: "let [\na\n] = [\n1\n];", options: opts(obj("multiline", true, "consistent", true, "minItems", 2))},
	}

	invalid := []invalidCase{
		{
			code:    "var foo = [];",
			output:  "var foo = [\n];",
			options: always,
			errors: []wantError{
				{message: errBreakAfter, nodeType: "ArrayExpression", line: 1, column: 11},
				{message: errBreakBefore, nodeType: "ArrayExpression", line: 1, column: 12},
			},
		},
		{
			code:    "var foo = [1];",
			output:  "var foo = [\n1\n];",
			options: always,
			errors:  []wantError{{message: errBreakAfter, column: 11}, {message: errBreakBefore, column: 13}},
		},
		{
			code:    "var foo = [ // any comment\n1];",
			output:  "var foo = [ // any comment\n1\n];",
			options: always,
			errors:  []wantError{{message: errBreakBefore, line: 2, column: 2}},
		},
		{
			code:    "var foo = [1, 2 /* any comment */];",
			output:  "var foo = [\n1, 2 /* any comment */\n];",
			options: always,
			errors:  []wantError{{message: errBreakAfter, column: 11}, {message: errBreakBefore, column: 34}},
		},
		{
			code:    "var foo = [\n];",
			output:  "var foo = [];",
			options: never,
			errors:  []wantError{{message: errNoBreakAfter, line: 1, column: 11}, {message: errNoBreakBefore, line: 2, column: 1}},
		},
		{
			code:    "var foo = [\n1,\n2\n];",
			output:  "var foo = [1,\n2];",
			options: never,
			errors:  []wantError{{message: errNoBreakAfter, line: 1}, {message: errNoBreakBefore, line: 4, column: 1}},
		},
		{
			code:    "var foo = [ /* any comment */\n1, 2\n];",
			output:  "var foo = [ /* any comment */\n1, 2];",
			options: never,
			errors:  []wantError{{message: errNoBreakAfter, line: 1, column: 11}, {message: errNoBreakBefore, line: 3}},
		},
		{
			code:    "var foo = [\n1, 2\n/* any comment */];",
			output:  "var foo = [1, 2\n/* any comment */];",
			options: never,
			errors:  []wantError{{message: errNoBreakAfter, line: 1}, {message: errNoBreakBefore, line: 3, column: 18}},
		},
		{
			code:    "var foo = [\n// any comment\n];",
			options: multiline,
			errors:  []wantError{{message: errNoBreakAfter, line: 1}, {message: errNoBreakBefore, line: 3}},
		},
		{
			code:    "var foo = [\n1, 2\n];",
			output:  "var foo = [1, 2];",
			options: multiline,
			errors:  []wantError{{message: errNoBreakAfter}, {message: errNoBreakBefore}},
		},
		{
			code:    "var foo = [1,\n2];",
			output:  "var foo = [\n1,\n2\n];",
			options: multiline,
			errors:  []wantError{{message: errBreakAfter, line: 1, column: 11}, {message: errBreakBefore, line: 2, column: 2}},
		},
		{
			code:    "var foo = [function foo() {\ndosomething();\n}];",
			output:  "var foo = [\nfunction foo() {\ndosomething();\n}\n];",
			errors:  []wantError{{message: errBreakAfter}, {message: errBreakBefore, line: 3, column: 2}},
		},
		{
			code:    "var [a, b] = foo;",
			output:  "var [\na, b\n] = foo;",
			options: opts(obj("minItems", 2)),
			errors:  []wantError{{message: errBreakAfter, nodeType: "ArrayPattern"}, {message: errBreakBefore, nodeType: "ArrayPattern"}},
		},
		{
			code:    "var b = [1\n];",
			output:  "var b = [1];",
			options: consistent,
			errors:  []wantError{{message: errNoBreakBefore, line: 2, column: 1}},
		},
		{
			code:    "var b = [\n1];",
			output:  "var b = [1];",
			options: consistent,
			errors:  []wantError{{message: errNoBreakAfter, line: 1, column: 9}},
		},
		{
			code:    "var c = [1,\n2];",
			output:  "var c = [\n1,\n2\n];",
			options: consistent,
			errors:  []wantError{{message: errBreakAfter, line: 1, column: 9}, {message: errBreakBefore, line: 2, column: 2}},
		},
	}

	runRuleTests(t, NewArrayBracketNewlineRule(), valid, invalid)
}

func TestNormalizeBracketOption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		option any
		want   bracketPolicy
	}{
		{name: "default", want: bracketPolicy{multiline: true, minItems: math.MaxInt}},
		{name: "always", option: "always", want: bracketPolicy{minItems: 0}},
		{name: "never", option: "never", want: bracketPolicy{minItems: math.MaxInt}},
		{name: "minItems zero", option: obj("minItems", 0, "multiline", true), want: bracketPolicy{minItems: 0}},
		{name: "minItems null", option: obj("minItems", nil), want: bracketPolicy{minItems: math.MaxInt}},
		{
			name:   "object",
			option: obj("multiline", true, "consistent", true, "minItems", 3),
			want:   bracketPolicy{multiline: true, consistent: true, minItems: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeBracketOption(tt.option))
		})
	}
}
