package lint

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
)

// Problem is a single reported issue.
type Problem struct {
	// RuleID is empty for parse errors and unused directives.
	RuleID    string
	Severity  config.Severity
	Message   string
	MessageID string

	// Range is the byte range in the text of the pass that produced the
	// problem.
	Range     ast.Range
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	NodeType  string

	// Fix is set when the rule proposed a valid fix and fixing is enabled.
	Fix *fix.Fix

	// Fatal marks parse errors.
	Fatal bool

	// Seq is the report order within the pass.
	Seq int
}

// HasFix returns true if the problem carries a fix.
func (p *Problem) HasFix() bool {
	return p.Fix != nil
}

// Result contains the outcome of linting one text.
type Result struct {
	FilePath string
	Messages []Problem

	// Output is the fixed text; Fixed reports whether it differs from the
	// input.
	Output string
	Fixed  bool

	// PassesRun counts every traversal, fixing or not. FixPasses counts
	// passes whose fixes were applied.
	PassesRun       int
	FixPasses       int
	FixLimitReached bool

	ErrorCount          int
	WarningCount        int
	FixableErrorCount   int
	FixableWarningCount int

	// UnusedDirectives counts disable directives that suppressed nothing.
	UnusedDirectives int
}

// HasIssues returns true if any problems were found.
func (r *Result) HasIssues() bool {
	return len(r.Messages) > 0
}

// HasErrors returns true if any error-severity problems were found.
func (r *Result) HasErrors() bool {
	return r.ErrorCount > 0
}

// Recount sorts Messages by position and recomputes the counters. Callers
// that assemble a Result from several lint runs use it once at the end.
func (r *Result) Recount() {
	sortProblems(r.Messages)
	r.tally()
}

func (r *Result) tally() {
	r.ErrorCount, r.WarningCount = 0, 0
	r.FixableErrorCount, r.FixableWarningCount = 0, 0
	for idx := range r.Messages {
		msg := &r.Messages[idx]
		switch {
		case msg.Fatal || msg.Severity == config.SeverityError:
			r.ErrorCount++
			if msg.HasFix() {
				r.FixableErrorCount++
			}
		case msg.Severity == config.SeverityWarn:
			r.WarningCount++
			if msg.HasFix() {
				r.FixableWarningCount++
			}
		}
	}
}

// sortProblems orders problems by position, keeping report order for ties.
func sortProblems(problems []Problem) {
	slices.SortStableFunc(problems, func(a, b Problem) int {
		return cmp.Or(
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
		)
	})
}

// ConfigError reports an invalid rule configuration. Linting does not start
// when one is returned.
type ConfigError struct {
	RuleID string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration for rule %q is invalid: %v", e.RuleID, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrNoParser is returned when Input.Parser is nil.
var ErrNoParser = errors.New("no parser configured")
