package rules

import (
	"slices"
	"strings"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
)

type computedKeyOptions struct {
	CheckMethods bool `mapstructure:"checkMethods"`
}

// NoUselessComputedKeyRule reports computed keys whose expression is a
// plain literal, as in {['a']: 1}.
type NoUselessComputedKeyRule struct {
	lint.BaseRule
}

// NewNoUselessComputedKeyRule creates a new no-useless-computed-key rule.
func NewNoUselessComputedKeyRule() *NoUselessComputedKeyRule {
	return &NoUselessComputedKeyRule{
		BaseRule: lint.NewBaseRule("no-useless-computed-key", &lint.Meta{
			Type: lint.TypeSuggestion,
			Docs: lint.Docs{
				Description: "disallow unnecessary computed property keys in objects and classes",
				Category:    "ECMAScript 6",
				Recommended: true,
			},
			Fixable:  lint.FixableCode,
			Schema:   lint.Positional(lint.ObjectItem[computedKeyOptions]()),
			Messages: map[string]string{"unnecessarilyComputedProperty": "Unnecessarily computed property [{{property}}] found."},
		}),
	}
}

// Create registers the property and method checks.
func (r *NoUselessComputedKeyRule) Create(ctx *lint.Context) lint.Listeners {
	var opts computedKeyOptions
	if option := ctx.Option(0); option != nil {
		_ = lint.Decode(option, &opts)
	}
	sc := ctx.SourceCode()

	check := func(node *ast.Node) {
		key := node.Child("key")
		if !node.Bool("computed") || key == nil || key.Type != "Literal" {
			return
		}
		// These names change meaning when the key is not computed.
		allowed := "__proto__"
		if node.Type == "MethodDefinition" {
			allowed = "constructor"
		}
		if value, ok := key.Get("value").(string); ok && value == allowed {
			return
		}

		ctx.Report(lint.Descriptor{
			Node:      node,
			MessageID: "unnecessarilyComputedProperty",
			Data:      map[string]any{"property": sc.GetText(key)},
			Fix: func(fixer *lint.Fixer) []fix.Fix {
				return uncomputeKey(sc, fixer, node, key)
			},
		})
	}

	listeners := lint.Listeners{"Property": check}
	if opts.CheckMethods {
		listeners["MethodDefinition"] = check
	}
	return listeners
}

// uncomputeKey replaces `[key]` with the raw key. A comment between the
// brackets blocks the fix.
func uncomputeKey(sc *lint.SourceCode, fixer *lint.Fixer, node, key *ast.Node) []fix.Fix {
	var left, right ast.Token
	var foundLeft, foundRight bool
	for _, tok := range sc.GetTokens(node) {
		switch {
		case !foundLeft && tok.Is("[") && tok.End <= key.Start:
			left, foundLeft = tok, true
		case foundLeft && tok.Is("]") && tok.Start >= key.End:
			right, foundRight = tok, true
		}
		if foundRight {
			break
		}
	}
	if !foundLeft || !foundRight {
		return nil
	}

	between := sc.GetTokensBetween(left, right, false)
	prevEnd := left.End
	for _, tok := range slices.Concat(between, []ast.Token{right}) {
		if strings.TrimSpace(sc.Slice(ast.Range{Start: prevEnd, End: tok.Start})) != "" {
			return nil
		}
		prevEnd = tok.End
	}

	raw := key.Str("raw")
	if before, ok := sc.GetTokenBefore(left, false); ok && before.End == left.Start &&
		!canBeAdjacent(before.Value, raw) {
		raw = " " + raw
	}
	return []fix.Fix{fixer.ReplaceTextRange(ast.Range{Start: left.Start, End: right.End}, raw)}
}
