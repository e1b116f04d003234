package rules

import (
	"fmt"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// destructuringKinds enables array and object destructuring for one node
// type. A nil field is treated as false once an explicit option is given.
type destructuringKinds struct {
	Array  *bool `mapstructure:"array"`
	Object *bool `mapstructure:"object"`
}

func (k *destructuringKinds) enabled(kind string) bool {
	if k == nil {
		return false
	}
	switch kind {
	case "array":
		return k.Array != nil && *k.Array
	default:
		return k.Object != nil && *k.Object
	}
}

// destructuringTargets is the first option of prefer-destructuring, in
// either its flat ({array, object}) or per-node-type form.
type destructuringTargets struct {
	Array                *bool               `mapstructure:"array"`
	Object               *bool               `mapstructure:"object"`
	VariableDeclarator   *destructuringKinds `mapstructure:"VariableDeclarator"`
	AssignmentExpression *destructuringKinds `mapstructure:"AssignmentExpression"`
}

type destructuringFlags struct {
	EnforceForRenamedProperties bool `mapstructure:"enforceForRenamedProperties"`
}

// destructuringPolicy is the normalized option pair.
type destructuringPolicy struct {
	byType        map[string]*destructuringKinds
	enforceRename bool
}

func (p destructuringPolicy) shouldCheck(nodeType, kind string) bool {
	return p.byType[nodeType].enabled(kind)
}

func normalizeDestructuring(first, second any) destructuringPolicy {
	enabled := true
	all := &destructuringKinds{Array: &enabled, Object: &enabled}
	policy := destructuringPolicy{byType: map[string]*destructuringKinds{
		"VariableDeclarator":   all,
		"AssignmentExpression": all,
	}}

	if first != nil {
		var targets destructuringTargets
		if lint.Decode(first, &targets) == nil {
			if targets.Array != nil || targets.Object != nil {
				flat := &destructuringKinds{Array: targets.Array, Object: targets.Object}
				policy.byType = map[string]*destructuringKinds{"VariableDeclarator": flat, "AssignmentExpression": flat}
			} else {
				policy.byType = map[string]*destructuringKinds{
					"VariableDeclarator":   targets.VariableDeclarator,
					"AssignmentExpression": targets.AssignmentExpression,
				}
			}
		}
	}
	if second != nil {
		var flags destructuringFlags
		if lint.Decode(second, &flags) == nil {
			policy.enforceRename = flags.EnforceForRenamedProperties
		}
	}
	return policy
}

// PreferDestructuringRule suggests destructuring where a variable is
// initialized or assigned from a member access.
type PreferDestructuringRule struct {
	lint.BaseRule
}

// NewPreferDestructuringRule creates a new prefer-destructuring rule.
func NewPreferDestructuringRule() *PreferDestructuringRule {
	return &PreferDestructuringRule{
		BaseRule: lint.NewBaseRule("prefer-destructuring", &lint.Meta{
			Type: lint.TypeSuggestion,
			Docs: lint.Docs{
				Description: "require destructuring from arrays and/or objects",
				Category:    "ECMAScript 6",
			},
			Fixable: lint.FixableCode,
			Schema: lint.Positional(
				lint.ObjectItem[destructuringTargets](),
				lint.ObjectItem[destructuringFlags](),
			),
			Messages: map[string]string{"preferDestructuring": "Use {{type}} destructuring."},
		}),
	}
}

// Create registers the declarator and assignment checks.
func (r *PreferDestructuringRule) Create(ctx *lint.Context) lint.Listeners {
	policy := normalizeDestructuring(ctx.Option(0), ctx.Option(1))
	sc := ctx.SourceCode()

	report := func(node *ast.Node, kind string, canFix bool) {
		desc := lint.Descriptor{
			Node:      node,
			MessageID: "preferDestructuring",
			Data:      map[string]any{"type": kind},
		}
		if canFix {
			desc.Fix = func(fixer *lint.Fixer) []fix.Fix {
				return fixObjectDestructuring(sc, fixer, node)
			}
		}
		ctx.Report(desc)
	}

	check := func(left, right, node *ast.Node) {
		if right.Type != "MemberExpression" || right.Child("object").Is("Super") ||
			right.Child("property").Is("PrivateIdentifier") {
			return
		}

		if isArrayIndexAccess(right) {
			if policy.shouldCheck(node.Type, "array") {
				report(node, "array", false)
			}
			return
		}

		if !policy.shouldCheck(node.Type, "object") {
			return
		}
		canFix := shouldFixDestructuring(node)
		if policy.enforceRename {
			report(node, "object", canFix)
			return
		}

		prop := right.Child("property")
		name := left.Str("name")
		sameName := prop.Type == "Literal" && prop.Get("value") == any(name) ||
			prop.Type == "Identifier" && !right.Bool("computed") && prop.Str("name") == name
		if left.Is("Identifier") && sameName {
			report(node, "object", canFix)
		}
	}

	return lint.Listeners{
		"VariableDeclarator": func(node *ast.Node) {
			id, init := node.Child("id"), node.Child("init")
			if init == nil || !id.Is("Identifier") {
				return
			}
			check(id, init, node)
		},
		"AssignmentExpression": func(node *ast.Node) {
			if node.Str("operator") == "=" {
				check(node.Child("left"), node.Child("right"), node)
			}
		},
	}
}

// isArrayIndexAccess reports whether node is a computed member access with
// an integer literal, e.g. array[0].
func isArrayIndexAccess(node *ast.Node) bool {
	if !node.Bool("computed") {
		return false
	}
	prop := node.Child("property")
	if !prop.Is("Literal") {
		return false
	}
	value, ok := prop.Get("value").(float64)
	return ok && value == float64(int64(value))
}

func shouldFixDestructuring(node *ast.Node) bool {
	if node.Type != "VariableDeclarator" {
		return false
	}
	init := node.Child("init")
	prop := init.Child("property")
	return init.Is("MemberExpression") && !init.Bool("computed") && prop.Is("Identifier") &&
		node.Child("id").Str("name") == prop.Str("name")
}

// fixObjectDestructuring rewrites `foo = object.foo` as `{foo} = object`.
func fixObjectDestructuring(sc *lint.SourceCode, fixer *lint.Fixer, node *ast.Node) []fix.Fix {
	init := node.Child("init")
	object := init.Child("object")
	if len(sc.GetCommentsInside(node)) > len(sc.GetCommentsInside(object)) {
		return nil
	}

	objectText := sc.GetText(object)
	if object.Type == "SequenceExpression" {
		objectText = "(" + objectText + ")"
	}
	return []fix.Fix{fixer.ReplaceText(node, fmt.Sprintf("{%s} = %s", init.Child("property").Str("name"), objectText))}
}
