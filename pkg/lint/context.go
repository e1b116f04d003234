package lint

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/spf13/cast"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/scope"
)

// Descriptor is the argument of Context.Report.
type Descriptor struct {
	// Node locates the problem unless Loc is set.
	Node *ast.Node
	Loc  *ast.Range

	// Message is used when MessageID is empty.
	Message   string
	MessageID string
	// Data fills {{name}} placeholders.
	Data map[string]any

	// Fix returns the edits that repair the problem, in ascending order.
	// It is not called when fixing is disabled.
	Fix func(fixer *Fixer) []fix.Fix
}

// Context is the per-rule view of one pass. A new Context is created for
// every rule on every pass.
type Context struct {
	id       string
	order    int
	severity config.Severity
	options  []any
	meta     *Meta
	pass     *pass
}

// ID returns the id of the rule the context was created for.
func (c *Context) ID() string {
	return c.id
}

// Options returns the configured rule options (without the severity).
func (c *Context) Options() []any {
	return c.options
}

// Option returns the option at idx, or nil.
func (c *Context) Option(idx int) any {
	if idx < 0 || idx >= len(c.options) {
		return nil
	}
	return c.options[idx]
}

// Settings returns the shared settings object.
func (c *Context) Settings() map[string]any {
	return c.pass.settings
}

// Filename returns the path of the file being linted.
func (c *Context) Filename() string {
	return c.pass.filename
}

// SourceCode returns the parsed source of this pass.
func (c *Context) SourceCode() *SourceCode {
	return c.pass.source
}

// ParserOptions returns the parser options of this pass.
func (c *Context) ParserOptions() ParserOptions {
	return c.pass.parserOptions
}

// Ancestors returns the ancestors of the node currently being visited, root
// first. The slice is a copy.
func (c *Context) Ancestors() []*ast.Node {
	return slices.Clone(c.pass.ancestors)
}

// Scope returns the innermost scope containing the node currently being
// visited.
func (c *Context) Scope() *scope.Scope {
	return c.pass.scopeManager().Innermost(c.pass.current)
}

// DeclaredVariables returns the variables node declares.
func (c *Context) DeclaredVariables(node *ast.Node) []*scope.Variable {
	return c.pass.scopeManager().DeclaredVariables(node)
}

var placeholder = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// interpolate fills {{name}} placeholders from data. Unknown names are left
// as written.
func interpolate(template string, data map[string]any) string {
	if len(data) == 0 {
		return template
	}
	return placeholder.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		value, ok := data[name]
		if !ok {
			return match
		}
		return cast.ToString(value)
	})
}

// Report records a problem.
func (c *Context) Report(d Descriptor) {
	p := c.pass

	rng := ast.Range{}
	nodeType := ""
	switch {
	case d.Loc != nil:
		rng = *d.Loc
	case d.Node != nil:
		rng = d.Node.Span()
	}
	if d.Node != nil {
		nodeType = d.Node.Type
	}

	message := d.Message
	if d.MessageID != "" {
		template, ok := c.meta.Messages[d.MessageID]
		if !ok {
			p.collector.add(Problem{
				RuleID:   c.id,
				Severity: config.SeverityError,
				Message:  fmt.Sprintf("Rule %q reported unknown messageId %q.", c.id, d.MessageID),
				NodeType: nodeType,
			}, rng, p.source)
			return
		}
		message = template
	}

	problem := Problem{
		RuleID:    c.id,
		Severity:  c.severity,
		Message:   interpolate(message, d.Data),
		MessageID: d.MessageID,
		NodeType:  nodeType,
	}
	if d.Fix != nil {
		problem.Fix = c.buildFix(d)
	}
	seq := p.collector.add(problem, rng, p.source)
	if problem.Fix != nil {
		p.collector.candidates = append(p.collector.candidates, fixCandidate{
			problem: seq,
			cand:    fix.Candidate{Fix: *problem.Fix, RuleOrder: c.order, Seq: seq},
		})
	}
}

func (c *Context) buildFix(d Descriptor) *fix.Fix {
	p := c.pass
	if p.fixMode == FixOff || (p.fixRules != nil && !p.fixRules[c.id]) {
		return nil
	}
	if c.meta.Fixable == "" {
		p.logger.Debug("dropping fix from non-fixable rule", logging.FieldRule, c.id)
		return nil
	}

	edits := d.Fix(&Fixer{})
	if len(edits) == 0 {
		return nil
	}
	merged, err := fix.Merge(p.source.Text(), edits)
	if err != nil {
		p.logger.Debug("dropping malformed fix", logging.FieldRule, c.id, logging.FieldError, err)
		return nil
	}
	return &merged
}

type fixCandidate struct {
	problem int
	cand    fix.Candidate
}

// collector accumulates problems of one pass in report order.
type collector struct {
	problems   []Problem
	candidates []fixCandidate
}

// add appends a problem located at rng, clamped to the text, and returns
// its report sequence.
func (col *collector) add(problem Problem, rng ast.Range, source *SourceCode) int {
	rng = rng.Clamp(source.Len())
	start, end := source.Position(rng.Start), source.Position(rng.End)
	problem.Range = rng
	problem.Line, problem.Column = start.Line, start.Column
	problem.EndLine, problem.EndColumn = end.Line, end.Column
	problem.Seq = len(col.problems)
	col.problems = append(col.problems, problem)
	return problem.Seq
}

func (col *collector) internalError(ruleID string, node *ast.Node, source *SourceCode, cause any) {
	rng := ast.Range{}
	nodeType := ""
	if node != nil {
		rng, nodeType = node.Span(), node.Type
	}
	col.add(Problem{
		RuleID:   ruleID,
		Severity: config.SeverityError,
		Message:  fmt.Sprintf("Internal error in rule %s: %v", ruleID, cause),
		NodeType: nodeType,
	}, rng, source)
}
