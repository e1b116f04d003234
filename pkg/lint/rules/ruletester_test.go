package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/parser/js"
)

// validCase is code the rule must accept.
type validCase struct {
	code    string
	options []any
	module  bool
}

// wantError describes one expected problem. Zero fields are not checked.
type wantError struct {
	message  string
	nodeType string
	line     int
	column   int
}

// invalidCase is code the rule must report. output is the text after one
// fix pass; empty means the code must be left unchanged.
type invalidCase struct {
	code    string
	output  string
	options []any
	module  bool
	errors  []wantError
}

func lintWith(t *testing.T, rule lint.Rule, code string, options []any, module bool) *lint.Result {
	t.Helper()

	opts := lint.ParserOptions{EcmaVersion: 2022, SourceType: js.SourceScript}
	if module {
		opts.SourceType = js.SourceModule
	}
	linter := lint.NewLinter(lint.MustRegistry(rule))
	result, err := linter.Lint(lint.Input{
		FilePath:      "test.js",
		Text:          code,
		Parser:        js.New(),
		ParserOptions: opts,
		Rules:         config.RuleTable{rule.ID(): {Severity: config.SeverityError, Options: options}},
		FixMode:       lint.FixSuggest,
	})
	require.NoError(t, err)
	for _, msg := range result.Messages {
		require.False(t, msg.Fatal, "unexpected parse error in %q: %s", code, msg.Message)
	}
	return result
}

// singlePassOutput applies the non-overlapping fixes of one pass.
func singlePassOutput(code string, result *lint.Result) string {
	var cands []fix.Candidate
	for idx, msg := range result.Messages {
		if msg.Fix != nil {
			cands = append(cands, fix.Candidate{Fix: *msg.Fix, Seq: idx})
		}
	}
	accepted, _ := fix.Select(cands)
	return fix.Apply(code, fix.Fixes(accepted))
}

func runRuleTests(t *testing.T, rule lint.Rule, valid []validCase, invalid []invalidCase) {
	t.Helper()

	for _, tc := range valid {
		t.Run("valid/"+tc.code, func(t *testing.T) {
			result := lintWith(t, rule, tc.code, tc.options, tc.module)
			assert.Empty(t, result.Messages, "options %v", tc.options)
		})
	}

	for _, tc := range invalid {
		t.Run("invalid/"+tc.code, func(t *testing.T) {
			result := lintWith(t, rule, tc.code, tc.options, tc.module)
			require.Len(t, result.Messages, len(tc.errors), "options %v: %v", tc.options, result.Messages)

			for idx, want := range tc.errors {
				got := result.Messages[idx]
				assert.Equal(t, rule.ID(), got.RuleID)
				if want.message != "" {
					assert.Equal(t, want.message, got.Message)
				}
				if want.nodeType != "" {
					assert.Equal(t, want.nodeType, got.NodeType)
				}
				if want.line != 0 {
					assert.Equal(t, want.line, got.Line, "line of %q", got.Message)
				}
				if want.column != 0 {
					assert.Equal(t, want.column, got.Column, "column of %q", got.Message)
				}
			}

			wantOutput := tc.output
			if wantOutput == "" {
				wantOutput = tc.code
			}
			assert.Equal(t, wantOutput, singlePassOutput(tc.code, result))
		})
	}
}

func opts(values ...any) []any {
	return values
}

func obj(kv ...any) map[string]any {
	out := make(map[string]any, len(kv)/2)
	for idx := 0; idx+1 < len(kv); idx += 2 {
		out[kv[idx].(string)] = kv[idx+1]
	}
	return out
}
