package lint_test

import (
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/parser/js"
)

// testRule adapts a closure to lint.Rule.
type testRule struct {
	lint.BaseRule
	create func(ctx *lint.Context) lint.Listeners
}

func (r *testRule) Create(ctx *lint.Context) lint.Listeners {
	return r.create(ctx)
}

func newRule(id string, meta *lint.Meta, create func(ctx *lint.Context) lint.Listeners) *testRule {
	return &testRule{BaseRule: lint.NewBaseRule(id, meta), create: create}
}

// noFoo reports every Identifier named foo and renames it to bar.
func noFoo() *testRule {
	return newRule("no-foo", &lint.Meta{
		Fixable:  lint.FixableCode,
		Messages: map[string]string{"unexpected": "Unexpected '{{name}}'."},
	}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{
			"Identifier[name='foo']": func(node *ast.Node) {
				ctx.Report(lint.Descriptor{
					Node:      node,
					MessageID: "unexpected",
					Data:      map[string]any{"name": node.Str("name")},
					Fix: func(fixer *lint.Fixer) []fix.Fix {
						return []fix.Fix{fixer.ReplaceText(node, "bar")}
					},
				})
			},
		}
	})
}

// noVar reports var declarations and rewrites the whole declaration with
// let, so its fix overlaps any fix inside the declaration.
func noVar() *testRule {
	return newRule("no-var", &lint.Meta{Fixable: lint.FixableCode}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{
			"VariableDeclaration": func(node *ast.Node) {
				if node.Str("kind") != "var" {
					return
				}
				text := ctx.SourceCode().GetText(node)
				ctx.Report(lint.Descriptor{
					Node:    node,
					Message: "Unexpected var.",
					Fix: func(fixer *lint.Fixer) []fix.Fix {
						return []fix.Fix{fixer.ReplaceText(node, "let"+text[len("var"):])}
					},
				})
			},
		}
	})
}

// growing always proposes another newline at the end of the program.
func growing() *testRule {
	return newRule("growing", &lint.Meta{Fixable: lint.FixableWhitespace}, func(ctx *lint.Context) lint.Listeners {
		return lint.Listeners{
			"Program": func(node *ast.Node) {
				ctx.Report(lint.Descriptor{
					Node:    node,
					Message: "Needs more space.",
					Fix: func(fixer *lint.Fixer) []fix.Fix {
						return []fix.Fix{fixer.InsertTextAfter(node, "\n")}
					},
				})
			},
		}
	})
}

func errorRules(ids ...string) config.RuleTable {
	table := config.RuleTable{}
	for _, id := range ids {
		table[id] = config.RuleSetting{Severity: config.SeverityError}
	}
	return table
}

func lintText(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, registry *lint.Registry, in lint.Input,
) *lint.Result {
	t.Helper()
	if in.Parser == nil {
		in.Parser = js.New()
	}
	result, err := lint.NewLinter(registry).Lint(in)
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	return result
}

func messages(result *lint.Result) []string {
	out := make([]string, 0, len(result.Messages))
	for _, msg := range result.Messages {
		out = append(out, msg.Message)
	}
	return out
}
