package rules

import (
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// NoIteratorRule reports use of the non-standard __iterator__ property.
type NoIteratorRule struct {
	lint.BaseRule
}

// NewNoIteratorRule creates a new no-iterator rule.
func NewNoIteratorRule() *NoIteratorRule {
	return &NoIteratorRule{
		BaseRule: lint.NewBaseRule("no-iterator", &lint.Meta{
			Type: lint.TypeSuggestion,
			Docs: lint.Docs{
				Description: "disallow the use of the `__iterator__` property",
				Category:    "Best Practices",
				Recommended: true,
			},
			Messages: map[string]string{"noIterator": "Reserved name '__iterator__'."},
		}),
	}
}

// Create registers the member expression check.
func (r *NoIteratorRule) Create(ctx *lint.Context) lint.Listeners {
	return lint.Listeners{
		"MemberExpression": func(node *ast.Node) {
			prop := node.Child("property")
			if prop == nil {
				return
			}
			named := !node.Bool("computed") && prop.Type == "Identifier" && prop.Str("name") == "__iterator__"
			literal := prop.Type == "Literal" && prop.Get("value") == "__iterator__"
			if named || literal {
				ctx.Report(lint.Descriptor{Node: node, MessageID: "noIterator"})
			}
		},
	}
}
