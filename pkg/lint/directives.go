package lint

import (
	"cmp"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
)

// DirectiveKind is the kind of an inline suppression comment.
type DirectiveKind string

const (
	DirectiveDisable         DirectiveKind = "disable"
	DirectiveEnable          DirectiveKind = "enable"
	DirectiveDisableLine     DirectiveKind = "disable-line"
	DirectiveDisableNextLine DirectiveKind = "disable-next-line"
)

// Directive is one eslint-disable / eslint-enable comment.
type Directive struct {
	Kind DirectiveKind
	// RuleIDs is empty when the directive applies to every rule.
	RuleIDs []string
	Comment ast.Range
	Line    int
	Column  int
	// EndLine is the line the comment ends on.
	EndLine int
}

var (
	directivePattern = regexp.MustCompile(`^(eslint-disable(?:-next-line|-line)?|eslint-enable)(?:\s|$)`)
	descriptionSep   = regexp.MustCompile(`\s-{2,}\s`)
)

// ParseDirectives scans the comments of sc for suppression directives, in
// source order. Both comment styles are recognised.
func ParseDirectives(sc *SourceCode) []Directive {
	var out []Directive
	for _, comment := range sc.Comments() {
		value := strings.TrimSpace(comment.Value)
		match := directivePattern.FindStringSubmatch(value)
		if match == nil {
			continue
		}

		rest := value[len(match[1]):]
		if loc := descriptionSep.FindStringIndex(rest); loc != nil {
			rest = rest[:loc[0]]
		}
		var ruleIDs []string
		for _, part := range strings.Split(rest, ",") {
			if id := strings.TrimSpace(part); id != "" {
				ruleIDs = append(ruleIDs, id)
			}
		}

		start, end := sc.Position(comment.Start), sc.Position(comment.End)
		out = append(out, Directive{
			Kind:    DirectiveKind(strings.TrimPrefix(match[1], "eslint-")),
			RuleIDs: ruleIDs,
			Comment: comment.Span(),
			Line:    start.Line,
			Column:  start.Column,
			EndLine: end.Line,
		})
	}
	return out
}

// directiveEntry is a directive expanded to one rule id at one offset.
type directiveEntry struct {
	disable bool
	ruleID  string
	offset  int
	rank    int
	origin  int
}

// Suppressions is the compiled, immutable form of a file's directives.
type Suppressions struct {
	directives []Directive
	block      []directiveEntry
	line       []directiveEntry
	// spanning holds the eslint-disable-line directives whose comment
	// covers more than one line. They suppress nothing.
	spanning []int
}

// CompileSuppressions expands directives into offset-ordered entries.
// An eslint-disable-line comment spanning several lines is ignored and
// reported by the linter instead.
func CompileSuppressions(directives []Directive, source *ast.Source) *Suppressions {
	s := &Suppressions{directives: directives}

	lineOffset := func(line int) int {
		if line > source.LineCount() {
			return math.MaxInt
		}
		return source.LineStart(line)
	}
	expand := func(dir Directive, fn func(ruleID string)) {
		if len(dir.RuleIDs) == 0 {
			fn("")
			return
		}
		for _, id := range dir.RuleIDs {
			fn(id)
		}
	}

	for origin, dir := range directives {
		switch dir.Kind {
		case DirectiveDisable, DirectiveEnable:
			expand(dir, func(id string) {
				s.block = append(s.block, directiveEntry{
					disable: dir.Kind == DirectiveDisable,
					ruleID:  id,
					offset:  dir.Comment.Start,
					origin:  origin,
				})
			})
		case DirectiveDisableLine, DirectiveDisableNextLine:
			if dir.Kind == DirectiveDisableLine && dir.EndLine != dir.Line {
				s.spanning = append(s.spanning, origin)
				continue
			}
			line := dir.Line
			if dir.Kind == DirectiveDisableNextLine {
				line = dir.EndLine + 1
			}
			expand(dir, func(id string) {
				s.line = append(s.line,
					directiveEntry{disable: true, ruleID: id, offset: lineOffset(line), rank: 1, origin: origin},
					directiveEntry{disable: false, ruleID: id, offset: lineOffset(line + 1), rank: 0, origin: origin},
				)
			})
		}
	}

	byOffset := func(a, b directiveEntry) int {
		return cmp.Or(cmp.Compare(a.offset, b.offset), cmp.Compare(a.rank, b.rank))
	}
	slices.SortStableFunc(s.block, byOffset)
	slices.SortStableFunc(s.line, byOffset)
	return s
}

// Len returns the number of directives.
func (s *Suppressions) Len() int {
	return len(s.directives)
}

// unusedDirective is a disable entry that suppressed nothing.
type unusedDirective struct {
	origin int
	ruleID string
}

// apply drops suppressed problems. problems must be sorted by position.
// Problems without a rule id are never suppressed. The second result lists
// disable entries that suppressed nothing, in directive order.
func (s *Suppressions) apply(problems []Problem) ([]Problem, []unusedDirective) {
	if s == nil || len(s.directives) == 0 {
		return problems, nil
	}
	afterBlock, unusedBlock := applyEntries(problems, s.block)
	kept, unusedLine := applyEntries(afterBlock, s.line)

	unused := append(unusedBlock, unusedLine...)
	slices.SortStableFunc(unused, func(a, b unusedDirective) int {
		return cmp.Compare(a.origin, b.origin)
	})
	return kept, unused
}

func applyEntries(problems []Problem, entries []directiveEntry) ([]Problem, []unusedDirective) {
	if len(entries) == 0 {
		return problems, nil
	}

	var (
		kept          []Problem
		next          int
		globalDisable = -1
		disabled      = map[string]int{}
		enabled       = map[string]bool{}
		used          = map[int]bool{}
	)

	for _, problem := range problems {
		for next < len(entries) && entries[next].offset <= problem.Range.Start {
			entry := entries[next]
			switch {
			case entry.disable && entry.ruleID == "":
				globalDisable = next
				clear(disabled)
				clear(enabled)
			case entry.disable:
				delete(enabled, entry.ruleID)
				disabled[entry.ruleID] = next
			case entry.ruleID == "":
				globalDisable = -1
				clear(disabled)
			default:
				if globalDisable >= 0 {
					enabled[entry.ruleID] = true
				}
				delete(disabled, entry.ruleID)
			}
			next++
		}

		if problem.RuleID == "" {
			kept = append(kept, problem)
			continue
		}
		if idx, ok := disabled[problem.RuleID]; ok {
			used[idx] = true
			continue
		}
		if globalDisable >= 0 && !enabled[problem.RuleID] {
			used[globalDisable] = true
			continue
		}
		kept = append(kept, problem)
	}

	var unused []unusedDirective
	for idx, entry := range entries {
		if entry.disable && !used[idx] {
			unused = append(unused, unusedDirective{origin: entry.origin, ruleID: entry.ruleID})
		}
	}
	return kept, unused
}

// unusedProblems renders unused disable entries as problems located at
// their comments.
func (s *Suppressions) unusedProblems(unused []unusedDirective, source *SourceCode) []Problem {
	out := make([]Problem, 0, len(unused))
	for _, u := range unused {
		dir := s.directives[u.origin]
		message := "Unused eslint-disable directive (no problems were reported)."
		if u.ruleID != "" {
			message = fmt.Sprintf("Unused eslint-disable directive (no problems were reported from '%s').", u.ruleID)
		}
		end := source.Position(dir.Comment.End)
		out = append(out, Problem{
			Severity:  config.SeverityError,
			Message:   message,
			Range:     dir.Comment,
			Line:      dir.Line,
			Column:    dir.Column,
			EndLine:   end.Line,
			EndColumn: end.Column,
		})
	}
	return out
}

// spanningProblems reports every eslint-disable-line comment that covers
// more than one line.
func (s *Suppressions) spanningProblems(source *SourceCode) []Problem {
	if s == nil || len(s.spanning) == 0 {
		return nil
	}
	out := make([]Problem, 0, len(s.spanning))
	for _, origin := range s.spanning {
		dir := s.directives[origin]
		end := source.Position(dir.Comment.End)
		out = append(out, Problem{
			Severity:  config.SeverityError,
			Message:   "eslint-disable-line comment should not span multiple lines.",
			Range:     dir.Comment,
			Line:      dir.Line,
			Column:    dir.Column,
			EndLine:   end.Line,
			EndColumn: end.Column,
		})
	}
	return out
}
