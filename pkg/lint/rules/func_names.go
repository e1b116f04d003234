package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/scope"
)

const (
	namesAlways   = "always"
	namesAsNeeded = "as-needed"
	namesNever    = "never"
)

// funcNamesObject is the object form of the func-names options. The base
// key is only meaningful when the object is the first option.
type funcNamesObject struct {
	Base       string `mapstructure:"base" validate:"omitempty,oneof=always as-needed never"`
	Generators string `mapstructure:"generators" validate:"omitempty,oneof=always as-needed never"`
}

// funcNamesPolicy is the normalized option pair.
type funcNamesPolicy struct {
	base       string
	generators string
}

func normalizeFuncNames(options []any) funcNamesPolicy {
	policy := funcNamesPolicy{base: namesAlways}
	for idx, option := range options {
		switch value := option.(type) {
		case string:
			if idx == 0 {
				policy.base = value
			}
		case map[string]any:
			var obj funcNamesObject
			if lint.Decode(value, &obj) != nil {
				continue
			}
			if obj.Base != "" && idx == 0 {
				policy.base = obj.Base
			}
			if obj.Generators != "" {
				policy.generators = obj.Generators
			}
		}
	}
	if policy.generators == "" {
		policy.generators = policy.base
	}
	return policy
}

// FuncNamesRule requires or disallows names on function expressions.
type FuncNamesRule struct {
	lint.BaseRule
}

// NewFuncNamesRule creates a new func-names rule.
func NewFuncNamesRule() *FuncNamesRule {
	value := lint.OneOf(lint.EnumItem(namesAlways, namesAsNeeded, namesNever), lint.ObjectItem[funcNamesObject]())
	return &FuncNamesRule{
		BaseRule: lint.NewBaseRule("func-names", &lint.Meta{
			Type: lint.TypeSuggestion,
			Docs: lint.Docs{
				Description: "require or disallow named `function` expressions",
				Category:    "Stylistic Issues",
			},
			Schema: lint.Positional(value, lint.ObjectItem[funcNamesObject]()),
			Messages: map[string]string{
				"unnamed": "Unexpected unnamed {{name}}.",
				"named":   "Unexpected named {{name}}.",
			},
		}),
	}
}

// Create registers the function expression check.
func (r *FuncNamesRule) Create(ctx *lint.Context) lint.Listeners {
	policy := normalizeFuncNames(ctx.Options())

	return lint.Listeners{
		"FunctionExpression:exit": func(node *ast.Node) {
			// A name used for recursion is always allowed.
			if vars := ctx.DeclaredVariables(node); len(vars) > 0 && isFunctionName(vars[0]) &&
				len(vars[0].References) > 0 {
				return
			}

			mode := policy.base
			if node.Bool("generator") {
				mode = policy.generators
			}
			hasName := node.Child("id") != nil && node.Child("id").Str("name") != ""

			switch {
			case mode == namesNever && hasName:
				ctx.Report(lint.Descriptor{
					Node:      node,
					MessageID: "named",
					Data:      map[string]any{"name": functionNameWithKind(node)},
				})
			case !hasName && (mode == namesAlways && !isObjectOrClassMethod(node) ||
				mode == namesAsNeeded && !hasInferredName(node)):
				ctx.Report(lint.Descriptor{
					Node:      node,
					MessageID: "unnamed",
					Data:      map[string]any{"name": functionNameWithKind(node)},
				})
			}
		},
	}
}

func isFunctionName(v *scope.Variable) bool {
	return v != nil && len(v.Defs) > 0 && v.Defs[0].Type == scope.DefFunctionName
}

func isObjectOrClassMethod(node *ast.Node) bool {
	parent := node.Parent
	if parent == nil {
		return false
	}
	return parent.Type == "MethodDefinition" ||
		parent.Type == "Property" && (parent.Bool("method") || parent.Str("kind") == "get" || parent.Str("kind") == "set")
}

// hasInferredName reports whether the runtime infers a name for the
// function from where it appears.
func hasInferredName(node *ast.Node) bool {
	parent := node.Parent
	if parent == nil {
		return false
	}
	if isObjectOrClassMethod(node) {
		return true
	}
	switch parent.Type {
	case "VariableDeclarator":
		return parent.Child("id").Is("Identifier") && parent.Child("init") == node
	case "Property":
		return parent.Child("value") == node
	case "AssignmentExpression":
		return parent.Child("left").Is("Identifier") && parent.Child("right") == node
	case "ExportDefaultDeclaration":
		return parent.Child("declaration") == node
	case "AssignmentPattern":
		return parent.Child("left").Is("Identifier") && parent.Child("right") == node
	}
	return false
}

// functionNameWithKind describes a function the way problem messages name
// it, e.g. "generator function 'baz'" or "method 'foo'".
func functionNameWithKind(node *ast.Node) string {
	parent := node.Parent
	var tokens []string

	if parent != nil && parent.Type == "MethodDefinition" && parent.Bool("static") {
		tokens = append(tokens, "static")
	}
	if node.Bool("async") {
		tokens = append(tokens, "async")
	}
	if node.Bool("generator") {
		tokens = append(tokens, "generator")
	}

	switch {
	case node.Type == "ArrowFunctionExpression":
		tokens = append(tokens, "arrow", "function")
	case parent != nil && (parent.Type == "Property" || parent.Type == "MethodDefinition"):
		switch parent.Str("kind") {
		case "constructor":
			return "constructor"
		case "get":
			tokens = append(tokens, "getter")
		case "set":
			tokens = append(tokens, "setter")
		default:
			tokens = append(tokens, "method")
		}
	default:
		tokens = append(tokens, "function")
	}

	if id := node.Child("id"); id != nil {
		tokens = append(tokens, fmt.Sprintf("'%s'", id.Str("name")))
	} else if parent != nil {
		if name, ok := staticPropertyName(parent); ok {
			tokens = append(tokens, fmt.Sprintf("'%s'", name))
		}
	}
	return strings.Join(tokens, " ")
}
