package rules

import (
	"math"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// arrayBracketOptions is the object form of the array-bracket-newline option.
type arrayBracketOptions struct {
	Multiline  bool `mapstructure:"multiline"`
	MinItems   *int `mapstructure:"minItems" validate:"omitnil,gte=0"`
	Consistent bool `mapstructure:"consistent"`
}

// bracketPolicy is the normalized option.
type bracketPolicy struct {
	multiline  bool
	consistent bool
	minItems   int
}

func normalizeBracketOption(option any) bracketPolicy {
	switch value := option.(type) {
	case nil:
		return bracketPolicy{multiline: true, minItems: math.MaxInt}
	case string:
		if value == "always" {
			return bracketPolicy{minItems: 0}
		}
		return bracketPolicy{minItems: math.MaxInt}
	}

	var opts arrayBracketOptions
	if err := lint.Decode(option, &opts); err != nil {
		return bracketPolicy{multiline: true, minItems: math.MaxInt}
	}
	if opts.MinItems != nil && *opts.MinItems == 0 {
		return bracketPolicy{minItems: 0}
	}
	policy := bracketPolicy{multiline: opts.Multiline, consistent: opts.Consistent, minItems: math.MaxInt}
	if opts.MinItems != nil {
		policy.minItems = *opts.MinItems
	}
	return policy
}

// ArrayBracketNewlineRule enforces line breaks after the opening and before
// the closing bracket of array literals and array patterns.
type ArrayBracketNewlineRule struct {
	lint.BaseRule
}

// NewArrayBracketNewlineRule creates a new array-bracket-newline rule.
func NewArrayBracketNewlineRule() *ArrayBracketNewlineRule {
	return &ArrayBracketNewlineRule{
		BaseRule: lint.NewBaseRule("array-bracket-newline", &lint.Meta{
			Type: lint.TypeLayout,
			Docs: lint.Docs{
				Description: "enforce linebreaks after opening and before closing array brackets",
				Category:    "Stylistic Issues",
			},
			Fixable: lint.FixableWhitespace,
			Schema: lint.Positional(lint.OneOf(
				lint.EnumItem("always", "never"),
				lint.ObjectItem[arrayBracketOptions](),
			)),
			Messages: map[string]string{
				"unexpectedOpeningLinebreak": "There should be no linebreak after '['.",
				"unexpectedClosingLinebreak": "There should be no linebreak before ']'.",
				"missingOpeningLinebreak":    "A linebreak is required after '['.",
				"missingClosingLinebreak":    "A linebreak is required before ']'.",
			},
		}),
	}
}

// Create registers the array checks.
func (r *ArrayBracketNewlineRule) Create(ctx *lint.Context) lint.Listeners {
	policy := normalizeBracketOption(ctx.Option(0))
	sc := ctx.SourceCode()

	check := func(node *ast.Node) {
		report := func(tok ast.Token, messageID string, edit func(*lint.Fixer) []fix.Fix) {
			loc := tok.Span()
			ctx.Report(lint.Descriptor{Node: node, Loc: &loc, MessageID: messageID, Fix: edit})
		}

		open, ok := sc.GetFirstToken(node)
		if !ok || !open.Is("[") {
			return
		}
		closing, _ := sc.GetLastToken(node)
		first, _ := sc.GetTokenAfter(open, false)
		last, _ := sc.GetTokenBefore(closing, false)
		firstInc, _ := sc.GetTokenAfter(open, true)
		lastInc, _ := sc.GetTokenBefore(closing, true)
		count := len(node.List("elements"))

		line := func(offset int) int { return sc.Position(offset).Line }
		needsBreaks := count >= policy.minItems ||
			policy.multiline && count > 0 && line(firstInc.Start) != line(lastInc.End) ||
			count == 0 && firstInc.Type == ast.CommentBlock && firstInc == lastInc &&
				line(firstInc.Start) != line(lastInc.End)

		openSame := sc.SameLine(open, first)
		closeSame := sc.SameLine(last, closing)

		if needsBreaks {
			if openSame {
				report(open, "missingOpeningLinebreak", func(fixer *lint.Fixer) []fix.Fix {
					return []fix.Fix{fixer.InsertTextAfter(open, "\n")}
				})
			}
			if closeSame {
				report(closing, "missingClosingLinebreak", func(fixer *lint.Fixer) []fix.Fix {
					// In `[]` the opening break already separates the brackets.
					if openSame && open.End == closing.Start {
						return nil
					}
					return []fix.Fix{fixer.InsertTextBefore(closing, "\n")}
				})
			}
			return
		}

		// Breaks on both sides are accepted in consistent mode.
		if policy.consistent && !openSame && !closeSame {
			return
		}
		if !openSame {
			report(open, "unexpectedOpeningLinebreak", func(fixer *lint.Fixer) []fix.Fix {
				next, _ := sc.GetTokenAfter(open, true)
				if next.IsComment() {
					return nil
				}
				return []fix.Fix{fixer.RemoveRange(ast.Range{Start: open.End, End: next.Start})}
			})
		}
		if !closeSame {
			report(closing, "unexpectedClosingLinebreak", func(fixer *lint.Fixer) []fix.Fix {
				prev, _ := sc.GetTokenBefore(closing, true)
				if prev.IsComment() {
					return nil
				}
				return []fix.Fix{fixer.RemoveRange(ast.Range{Start: prev.End, End: closing.Start})}
			})
		}
	}

	return lint.Listeners{
		"ArrayExpression": check,
		"ArrayPattern":    check,
	}
}
