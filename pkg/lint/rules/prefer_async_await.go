package rules

import (
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// thenCall matches `x.then(...)` calls through the callee's property name.
const thenCall = "CallExpression[callee.type='MemberExpression'][callee.computed=false][callee.property.name='then']"

// PreferAsyncAwaitRule reports Promise.then() chains.
type PreferAsyncAwaitRule struct {
	lint.BaseRule
}

// NewPreferAsyncAwaitRule creates a new prefer-async-await rule.
func NewPreferAsyncAwaitRule() *PreferAsyncAwaitRule {
	return &PreferAsyncAwaitRule{
		BaseRule: lint.NewBaseRule("prefer-async-await", &lint.Meta{
			Type: lint.TypeSuggestion,
			Docs: lint.Docs{
				Description: "prefer async/await to Promise.then()",
				Category:    "ECMAScript 2017",
			},
			Messages: map[string]string{"preferAsyncAwait": "Prefer async/await to Promise.then()."},
		}),
	}
}

// Create registers the selector listener.
func (r *PreferAsyncAwaitRule) Create(ctx *lint.Context) lint.Listeners {
	return lint.Listeners{
		thenCall: func(node *ast.Node) {
			ctx.Report(lint.Descriptor{Node: node, MessageID: "preferAsyncAwait"})
		},
	}
}
