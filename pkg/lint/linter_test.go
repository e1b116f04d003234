package lint_test

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/parser/js"
)

func TestLint_ReportsWithInterpolation(t *testing.T) {
	t.Parallel()

	registry := lint.MustRegistry(noFoo())
	result := lintText(t, registry, lint.Input{
		FilePath: "a.js",
		Text:     "foo;\nbaz(foo);\n",
		Rules:    errorRules("no-foo"),
	})

	want := []string{"Unexpected 'foo'.", "Unexpected 'foo'."}
	if diff := cmp.Diff(want, messages(result)); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	second := result.Messages[1]
	if second.Line != 2 || second.Column != 5 || second.EndColumn != 8 {
		t.Errorf("unexpected location %d:%d-%d", second.Line, second.Column, second.EndColumn)
	}
	if second.RuleID != "no-foo" || second.NodeType != "Identifier" || second.MessageID != "unexpected" {
		t.Errorf("unexpected problem %+v", second)
	}
	if second.Fix != nil {
		t.Error("fixes must not be attached with FixOff")
	}
	if result.ErrorCount != 2 || result.FixableErrorCount != 0 {
		t.Errorf("counts: errors=%d fixable=%d", result.ErrorCount, result.FixableErrorCount)
	}
}

func TestLint_UnknownPlaceholderKept(t *testing.T) {
	t.Parallel()

	rule := newRule("templ", &lint.Meta{
		Messages: map[string]string{"m": "Saw {{kind}} {{ missing }}."},
	}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{"Program": func(node *ast.Node) {
			ctx.Report(lint.Descriptor{Node: node, MessageID: "m", Data: map[string]any{"kind": 3}})
		}}
	})

	result := lintText(t, lint.MustRegistry(rule), lint.Input{Text: "x;", Rules: errorRules("templ")})
	if diff := cmp.Diff([]string{"Saw 3 {{ missing }}."}, messages(result)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_UnknownMessageIDBecomesError(t *testing.T) {
	t.Parallel()

	rule := newRule("bad-id", &lint.Meta{}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{"Program": func(node *ast.Node) {
			ctx.Report(lint.Descriptor{Node: node, MessageID: "nope"})
		}}
	})

	result := lintText(t, lint.MustRegistry(rule), lint.Input{
		Text:  "x;",
		Rules: config.RuleTable{"bad-id": {Severity: config.SeverityWarn}},
	})
	if len(result.Messages) != 1 {
		t.Fatalf("expected 1 problem, got %d", len(result.Messages))
	}
	msg := result.Messages[0]
	if msg.Severity != config.SeverityError || !strings.Contains(msg.Message, `"nope"`) {
		t.Errorf("unexpected problem %+v", msg)
	}
}

func TestLint_ReportRangeClampedToSource(t *testing.T) {
	t.Parallel()

	rule := newRule("far", nil, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{"Program": func(*ast.Node) {
			ctx.Report(lint.Descriptor{Loc: &ast.Range{Start: 50, End: 999}, Message: "Far away."})
		}}
	})

	result := lintText(t, lint.MustRegistry(rule), lint.Input{Text: "x;", Rules: errorRules("far")})
	if len(result.Messages) != 1 {
		t.Fatalf("expected 1 problem, got %d", len(result.Messages))
	}
	msg := result.Messages[0]
	if msg.Range != (ast.Range{Start: 2, End: 2}) {
		t.Errorf("range = %+v, want it clamped to the end of the text", msg.Range)
	}
	if msg.Line != 1 || msg.Column != 3 || msg.EndLine != 1 || msg.EndColumn != 3 {
		t.Errorf("unexpected location %d:%d-%d:%d", msg.Line, msg.Column, msg.EndLine, msg.EndColumn)
	}
}

func TestLint_UnknownRule(t *testing.T) {
	t.Parallel()

	result := lintText(t, lint.MustRegistry(), lint.Input{Text: "x;", Rules: errorRules("does-not-exist")})
	if len(result.Messages) != 1 {
		t.Fatalf("expected 1 problem, got %d", len(result.Messages))
	}
	msg := result.Messages[0]
	if msg.Message != "Definition for rule 'does-not-exist' was not found." ||
		msg.Line != 1 || msg.Column != 1 || msg.RuleID != "does-not-exist" {
		t.Errorf("unexpected problem %+v", msg)
	}
}

func TestLint_ConfigErrors(t *testing.T) {
	t.Parallel()

	called := false
	strict := newRule("strict", &lint.Meta{
		Schema: lint.Positional(lint.EnumItem("always", "never")),
	}, func(*lint.Context) lint.Listeners {
		called = true
		return nil
	})
	registry := lint.MustRegistry(strict)

	tests := []struct {
		name  string
		rules config.RuleTable
	}{
		{name: "bad severity", rules: config.RuleTable{"strict": {Severity: 5}}},
		{name: "bad option", rules: config.RuleTable{"strict": {Severity: config.SeverityError, Options: []any{"sometimes"}}}},
		{name: "too many options", rules: config.RuleTable{"strict": {Severity: config.SeverityError, Options: []any{"always", "never"}}}},
	}

	for _, tt := range tests {
		_, err := lint.NewLinter(registry).Lint(lint.Input{Text: "x;", Parser: js.New(), Rules: tt.rules})
		var cfgErr *lint.ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.RuleID != "strict" {
			t.Errorf("%s: expected ConfigError for strict, got %v", tt.name, err)
		}
	}
	if called {
		t.Error("no rule may run when the configuration is invalid")
	}
}

func TestLint_ParseError(t *testing.T) {
	t.Parallel()

	result := lintText(t, lint.MustRegistry(noFoo()), lint.Input{
		Text:    "var = ;",
		Rules:   errorRules("no-foo"),
		FixMode: lint.FixApply,
	})
	if len(result.Messages) != 1 {
		t.Fatalf("expected 1 problem, got %d", len(result.Messages))
	}
	msg := result.Messages[0]
	if !msg.Fatal || msg.RuleID != "" || msg.Severity != config.SeverityError ||
		!strings.HasPrefix(msg.Message, "Parsing error: ") || msg.Fix != nil {
		t.Errorf("unexpected problem %+v", msg)
	}
	if result.Fixed || result.ErrorCount != 1 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestLint_ListenerOrder(t *testing.T) {
	t.Parallel()

	var events []string
	record := func(id, key string, ctx *lint.Context) lint.Listener {
		return func(*ast.Node) {
			var types []string
			for _, anc := range ctx.Ancestors() {
				types = append(types, anc.Type)
			}
			events = append(events, id+":"+key+"@"+strings.Join(types, "/"))
		}
	}

	first := newRule("first", nil, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{
			"Identifier":               record("first", "Identifier", ctx),
			"Identifier[name='a']":     record("first", "Identifier[name='a']", ctx),
			"Program:exit":             record("first", "Program:exit", ctx),
			"ExpressionStatement:exit": record("first", "ExpressionStatement:exit", ctx),
		}
	})
	second := newRule("second", nil, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{
			"Identifier":                       record("second", "Identifier", ctx),
			"ExpressionStatement > Identifier": record("second", "ExpressionStatement > Identifier", ctx),
		}
	})

	lintText(t, lint.MustRegistry(first, second), lint.Input{Text: "a;", Rules: errorRules("first", "second")})

	want := []string{
		"first:Identifier@Program/ExpressionStatement",
		"second:Identifier@Program/ExpressionStatement",
		"second:ExpressionStatement > Identifier@Program/ExpressionStatement",
		"first:Identifier[name='a']@Program/ExpressionStatement",
		"first:ExpressionStatement:exit@Program",
		"first:Program:exit@",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_PanicIsolation(t *testing.T) {
	t.Parallel()

	panicky := newRule("panicky", nil, func(*lint.Context) lint.Listeners {
		return lint.Listeners{"Identifier": func(*ast.Node) { panic("boom") }}
	})
	brokenCreate := newRule("broken-create", nil, func(*lint.Context) lint.Listeners {
		panic("no listeners")
	})
	badSelector := newRule("bad-selector", nil, func(*lint.Context) lint.Listeners {
		return lint.Listeners{"Identifier[": func(*ast.Node) {}}
	})

	registry := lint.MustRegistry(panicky, noFoo(), brokenCreate, badSelector)
	result := lintText(t, registry, lint.Input{
		Text:  "foo; foo;",
		Rules: errorRules("panicky", "no-foo", "broken-create", "bad-selector"),
	})

	counts := map[string]int{}
	for _, msg := range result.Messages {
		counts[msg.RuleID]++
	}
	want := map[string]int{"panicky": 2, "no-foo": 2, "broken-create": 1, "bad-selector": 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("problem counts mismatch (-want +got):\n%s", diff)
	}
	for _, msg := range result.Messages {
		if msg.RuleID == "panicky" && !strings.Contains(msg.Message, "boom") {
			t.Errorf("internal error should carry the panic value: %q", msg.Message)
		}
	}
}

// Scenario: a fix that overlaps another is deferred to the next pass.
func TestLint_OverlappingFixesResolveOverPasses(t *testing.T) {
	t.Parallel()

	registry := lint.MustRegistry(noFoo(), noVar())
	result := lintText(t, registry, lint.Input{
		Text:    "var foo = 1;\n",
		Rules:   errorRules("no-foo", "no-var"),
		FixMode: lint.FixApply,
	})

	if result.Output != "let bar = 1;\n" || !result.Fixed {
		t.Fatalf("unexpected output %q", result.Output)
	}
	if result.FixPasses != 2 || result.PassesRun != 3 {
		t.Errorf("passes: fix=%d run=%d", result.FixPasses, result.PassesRun)
	}
	if len(result.Messages) != 0 || result.FixLimitReached {
		t.Errorf("expected a clean fixed point, got %v", messages(result))
	}
}

// callFoo turns a bare foo reference into a call. Its insertion touches the
// end of the rename made by no-foo.
func callFoo() *testRule {
	return newRule("call-foo", &lint.Meta{Fixable: lint.FixableCode}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{
			"ExpressionStatement > Identifier[name='foo']": func(node *ast.Node) {
				ctx.Report(lint.Descriptor{
					Node:    node,
					Message: "Call foo.",
					Fix: func(fixer *lint.Fixer) []fix.Fix {
						return []fix.Fix{fixer.InsertTextAfter(node, "()")}
					},
				})
			},
		}
	})
}

func TestLint_TouchingFixesApplyInOnePass(t *testing.T) {
	t.Parallel()

	registry := lint.MustRegistry(noFoo(), callFoo())
	result := lintText(t, registry, lint.Input{
		Text:    "foo;\n",
		Rules:   errorRules("no-foo", "call-foo"),
		FixMode: lint.FixApply,
	})

	if result.Output != "bar();\n" || !result.Fixed {
		t.Fatalf("unexpected output %q", result.Output)
	}
	if result.FixPasses != 1 || result.PassesRun != 2 {
		t.Errorf("passes: fix=%d run=%d", result.FixPasses, result.PassesRun)
	}
	if len(result.Messages) != 0 {
		t.Errorf("expected no remaining problems, got %v", messages(result))
	}
}

func TestLint_FixIsIdempotent(t *testing.T) {
	t.Parallel()

	registry := lint.MustRegistry(noFoo(), noVar())
	in := lint.Input{Text: "var foo = foo;\nfoo();\n", Rules: errorRules("no-foo", "no-var"), FixMode: lint.FixApply}

	first := lintText(t, registry, in)
	in.Text = first.Output
	second := lintText(t, registry, in)

	if second.Fixed || second.FixPasses != 0 || len(second.Messages) != 0 {
		t.Errorf("re-fixing changed the text: %+v", second)
	}
}

func TestLint_PassCap(t *testing.T) {
	t.Parallel()

	result := lintText(t, lint.MustRegistry(growing()), lint.Input{
		Text:      "x;",
		Rules:     errorRules("growing"),
		FixMode:   lint.FixApply,
		MaxPasses: 3,
	})

	if result.FixPasses != 3 || !result.FixLimitReached {
		t.Errorf("expected the cap to stop the loop: passes=%d limit=%v", result.FixPasses, result.FixLimitReached)
	}
	if result.Output != "x;\n\n\n" {
		t.Errorf("unexpected output %q", result.Output)
	}
	if len(result.Messages) != 1 || result.Messages[0].Fix == nil {
		t.Errorf("the remaining problem should carry its fix: %+v", result.Messages)
	}
}

func TestLint_DefaultPassCap(t *testing.T) {
	t.Parallel()

	result := lintText(t, lint.MustRegistry(growing()), lint.Input{
		Text:    "x;",
		Rules:   errorRules("growing"),
		FixMode: lint.FixApply,
	})
	if result.FixPasses != lint.DefaultMaxFixPasses || !result.FixLimitReached {
		t.Errorf("passes=%d limit=%v", result.FixPasses, result.FixLimitReached)
	}
}

func TestLint_RevertsFixThatBreaksParsing(t *testing.T) {
	t.Parallel()

	breaker := newRule("breaker", &lint.Meta{Fixable: lint.FixableCode}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{"Identifier": func(node *ast.Node) {
			ctx.Report(lint.Descriptor{
				Node:    node,
				Message: "Break it.",
				Fix: func(fixer *lint.Fixer) []fix.Fix {
					return []fix.Fix{fixer.ReplaceText(node, "(")}
				},
			})
		}}
	})

	result := lintText(t, lint.MustRegistry(breaker), lint.Input{
		Text:    "x;",
		Rules:   errorRules("breaker"),
		FixMode: lint.FixApply,
	})
	if result.Fixed || result.Output != "" || result.FixPasses != 0 {
		t.Errorf("broken fix must be discarded: %+v", result)
	}
	if len(result.Messages) != 1 {
		t.Errorf("problem should still be reported: %v", messages(result))
	}
}

func TestLint_FixModes(t *testing.T) {
	t.Parallel()

	producerCalled := false
	tracked := newRule("tracked", &lint.Meta{Fixable: lint.FixableCode}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{"Program": func(node *ast.Node) {
			ctx.Report(lint.Descriptor{
				Node:    node,
				Message: "Tracked.",
				Fix: func(fixer *lint.Fixer) []fix.Fix {
					producerCalled = true
					return []fix.Fix{fixer.InsertTextBefore(node, "/* x */")}
				},
			})
		}}
	})
	registry := lint.MustRegistry(tracked)

	lintText(t, registry, lint.Input{Text: "x;", Rules: errorRules("tracked"), FixMode: lint.FixOff})
	if producerCalled {
		t.Fatal("FixOff must not call fix producers")
	}

	result := lintText(t, registry, lint.Input{Text: "x;", Rules: errorRules("tracked"), FixMode: lint.FixSuggest})
	if !producerCalled || result.Fixed || result.Messages[0].Fix == nil {
		t.Errorf("FixSuggest should attach without applying: %+v", result)
	}
	if want := (fix.Fix{Start: 0, End: 0, Text: "/* x */"}); *result.Messages[0].Fix != want {
		t.Errorf("fix = %v, want %v", *result.Messages[0].Fix, want)
	}
	if result.FixableErrorCount != 1 {
		t.Errorf("fixable count = %d", result.FixableErrorCount)
	}
}

func TestLint_FixRulesFilter(t *testing.T) {
	t.Parallel()

	registry := lint.MustRegistry(noFoo(), noVar())
	result := lintText(t, registry, lint.Input{
		Text:     "var foo = 1;",
		Rules:    errorRules("no-foo", "no-var"),
		FixMode:  lint.FixApply,
		FixRules: []string{"no-foo"},
	})
	if result.Output != "var bar = 1;" {
		t.Errorf("unexpected output %q", result.Output)
	}
	if diff := cmp.Diff([]string{"Unexpected var."}, messages(result)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_DropsUnsafeFixes(t *testing.T) {
	t.Parallel()

	notFixable := newRule("not-fixable", &lint.Meta{}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{"Identifier": func(node *ast.Node) {
			ctx.Report(lint.Descriptor{
				Node:    node,
				Message: "No meta.fixable.",
				Fix:     func(fixer *lint.Fixer) []fix.Fix { return []fix.Fix{fixer.Remove(node)} },
			})
		}}
	})
	unordered := newRule("unordered", &lint.Meta{Fixable: lint.FixableCode}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{"Identifier": func(node *ast.Node) {
			ctx.Report(lint.Descriptor{
				Node:    node,
				Message: "Edits out of order.",
				Fix: func(fixer *lint.Fixer) []fix.Fix {
					return []fix.Fix{fixer.InsertTextAfter(node, ")"), fixer.InsertTextBefore(node, "(")}
				},
			})
		}}
	})
	merged := newRule("merged", &lint.Meta{Fixable: lint.FixableCode}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{"Identifier": func(node *ast.Node) {
			ctx.Report(lint.Descriptor{
				Node:    node,
				Message: "Wrap.",
				Fix: func(fixer *lint.Fixer) []fix.Fix {
					return []fix.Fix{fixer.InsertTextBefore(node, "("), fixer.InsertTextAfter(node, ")")}
				},
			})
		}}
	})

	result := lintText(t, lint.MustRegistry(notFixable, unordered, merged), lint.Input{
		Text:    "abc;",
		Rules:   errorRules("not-fixable", "unordered", "merged"),
		FixMode: lint.FixSuggest,
	})

	fixes := map[string]*fix.Fix{}
	for _, msg := range result.Messages {
		fixes[msg.RuleID] = msg.Fix
	}
	if fixes["not-fixable"] != nil || fixes["unordered"] != nil {
		t.Errorf("unsafe fixes must be dropped: %v", fixes)
	}
	if got := fixes["merged"]; got == nil || *got != (fix.Fix{Start: 0, End: 3, Text: "(abc)"}) {
		t.Errorf("merged fix = %v", got)
	}
	if len(result.Messages) != 3 {
		t.Errorf("problems must be kept when fixes are dropped, got %d", len(result.Messages))
	}
}

func TestLint_Suppression(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"foo; // eslint-disable-line no-foo",
		"foo;",
		"/* eslint-disable */",
		"foo;",
		"/* eslint-enable */",
		"// eslint-disable-next-line no-var -- unrelated",
		"foo;",
		"/* eslint-disable no-foo, no-var */",
		"foo;",
		"",
	}, "\n")

	registry := lint.MustRegistry(noFoo(), noVar())
	result := lintText(t, registry, lint.Input{
		Text:                          text,
		Rules:                         errorRules("no-foo", "no-var"),
		ReportUnusedDisableDirectives: true,
	})

	var got []string
	for _, msg := range result.Messages {
		got = append(got, fmt.Sprintf("%s|%s@%d", msg.RuleID, msg.Message, msg.Line))
	}
	want := []string{
		"no-foo|Unexpected 'foo'.@2",
		"|Unused eslint-disable directive (no problems were reported from 'no-var').@6",
		"no-foo|Unexpected 'foo'.@7",
		"|Unused eslint-disable directive (no problems were reported from 'no-var').@8",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if result.UnusedDirectives != 2 {
		t.Errorf("unused directives = %d", result.UnusedDirectives)
	}
}

// Scenario: a disable-line directive naming one rule leaves the others.
func TestLint_DisableLineNamesOneRule(t *testing.T) {
	t.Parallel()

	registry := lint.MustRegistry(noFoo(), noVar())
	result := lintText(t, registry, lint.Input{
		Text:  "var foo = 1; // eslint-disable-line no-foo\n",
		Rules: errorRules("no-foo", "no-var"),
	})
	if diff := cmp.Diff([]string{"Unexpected var."}, messages(result)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_DisableLineSpanningLinesIsReported(t *testing.T) {
	t.Parallel()

	text := "foo; /* eslint-disable-line\n no-foo */\nfoo;\n"
	result := lintText(t, lint.MustRegistry(noFoo()), lint.Input{Text: text, Rules: errorRules("no-foo")})

	want := []string{
		"Unexpected 'foo'.",
		"eslint-disable-line comment should not span multiple lines.",
		"Unexpected 'foo'.",
	}
	if diff := cmp.Diff(want, messages(result)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	directive := result.Messages[1]
	if directive.RuleID != "" || directive.Severity != config.SeverityError ||
		directive.Line != 1 || directive.Column != 6 || directive.EndLine != 2 {
		t.Errorf("unexpected directive problem %+v", directive)
	}
}

func TestLint_SuppressedFixesAreNotApplied(t *testing.T) {
	t.Parallel()

	registry := lint.MustRegistry(noFoo())
	result := lintText(t, registry, lint.Input{
		Text:    "foo; // eslint-disable-line\nfoo;\n",
		Rules:   errorRules("no-foo"),
		FixMode: lint.FixApply,
	})
	if result.Output != "foo; // eslint-disable-line\nbar;\n" {
		t.Errorf("unexpected output %q", result.Output)
	}
}

func TestLint_NoInlineConfig(t *testing.T) {
	t.Parallel()

	result := lintText(t, lint.MustRegistry(noFoo()), lint.Input{
		Text:           "/* eslint-disable */ foo;",
		Rules:          errorRules("no-foo"),
		NoInlineConfig: true,
	})
	if len(result.Messages) != 1 {
		t.Errorf("directives must be ignored: %v", messages(result))
	}
}

func TestLint_ParseErrorsAreNeverSuppressed(t *testing.T) {
	t.Parallel()

	result := lintText(t, lint.MustRegistry(), lint.Input{Text: "/* eslint-disable */\nvar = ;"})
	if len(result.Messages) != 1 || !result.Messages[0].Fatal {
		t.Errorf("expected the parse error, got %v", messages(result))
	}
}

func TestLint_Deterministic(t *testing.T) {
	t.Parallel()

	registry := lint.MustRegistry(noVar(), noFoo(), growing())
	in := lint.Input{
		Text:      "var foo = foo + 1;\nfunction f() { var foo; }\n",
		Rules:     errorRules("no-foo", "no-var", "growing"),
		FixMode:   lint.FixApply,
		MaxPasses: 4,
	}
	first := lintText(t, registry, in)
	for range 5 {
		again := lintText(t, registry, in)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("non-deterministic result (-first +again):\n%s", diff)
		}
	}
}

func TestLint_ScopeAccess(t *testing.T) {
	t.Parallel()

	undef := newRule("undef", nil, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{"Program:exit": func(*ast.Node) {
			for _, ref := range ctx.Scope().Through {
				if ref.Resolved == nil {
					ctx.Report(lint.Descriptor{Node: ref.Identifier, Message: ref.Identifier.Str("name")})
				}
			}
		}}
	})

	result := lintText(t, lint.MustRegistry(undef), lint.Input{
		Text:    "var a = 1; a + b + window + process;",
		Rules:   errorRules("undef"),
		Globals: config.Globals{"window": config.GlobalReadonly, "process": config.GlobalOff},
	})
	got := messages(result)
	slices.Sort(got)
	if diff := cmp.Diff([]string{"b", "process"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_NoParser(t *testing.T) {
	t.Parallel()

	_, err := lint.NewLinter(lint.MustRegistry()).Lint(lint.Input{Text: "x;"})
	if !errors.Is(err, lint.ErrNoParser) {
		t.Errorf("expected ErrNoParser, got %v", err)
	}
}
