package lint

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/scope"
)

// DefaultMaxFixPasses bounds the fix loop when Input.MaxPasses is zero.
const DefaultMaxFixPasses = 10

// FixMode selects how fixes are handled.
type FixMode int

const (
	// FixOff never calls fix producers.
	FixOff FixMode = iota
	// FixApply applies fixes over multiple passes and reports what remains.
	FixApply
	// FixSuggest attaches fixes to problems without applying them.
	FixSuggest
)

// Input is everything one Lint call needs. The Linter performs no I/O.
type Input struct {
	FilePath      string
	Text          string
	Parser        Parser
	ParserOptions ParserOptions

	// Rules is the resolved rule table for the file.
	Rules    config.RuleTable
	Globals  config.Globals
	Settings map[string]any

	FixMode FixMode
	// MaxPasses caps applied fix passes; zero means DefaultMaxFixPasses.
	MaxPasses int
	// FixRules restricts fixing to the listed rule ids when non-empty.
	FixRules []string

	ReportUnusedDisableDirectives bool
	// NoInlineConfig ignores eslint-disable/eslint-enable comments.
	NoInlineConfig bool
}

// Linter runs rules from a Registry over source text. A Linter holds no
// per-file state and may be shared between goroutines.
type Linter struct {
	Registry *Registry
	Logger   *log.Logger
}

// NewLinter creates a Linter over registry that logs nowhere.
func NewLinter(registry *Registry) *Linter {
	return &Linter{Registry: registry, Logger: logging.Discard()}
}

// activeRule is a rule enabled for this run.
type activeRule struct {
	rule     Rule
	order    int
	severity config.Severity
	options  []any
}

// pass is the mutable state of one traversal.
type pass struct {
	filename      string
	source        *SourceCode
	parserOptions ParserOptions
	settings      map[string]any
	scopeOptions  scope.Options
	scopes        *scope.Manager
	ancestors     []*ast.Node
	current       *ast.Node
	collector     *collector
	fixMode       FixMode
	fixRules      map[string]bool
	logger        *log.Logger
}

func (p *pass) scopeManager() *scope.Manager {
	if p.scopes == nil {
		p.scopes = scope.Analyze(p.source.Ast, p.scopeOptions)
	}
	return p.scopes
}

// passResult is the outcome of one traversal after suppression.
type passResult struct {
	problems   []Problem
	candidates []fix.Candidate
	unused     int
	fatal      bool
}

// run carries the per-call settings shared by every pass.
type run struct {
	in       Input
	active   []activeRule
	fixRules map[string]bool
	logger   *log.Logger
}

// Lint lints in.Text and, depending on in.FixMode, fixes it.
//
// The rule table is checked first: an invalid severity or options that fail
// a rule's schema return a *ConfigError before any rule runs. Rules missing
// from the registry are reported as problems instead.
//
// With FixApply the text is re-parsed and re-linted after every pass that
// applied fixes, until a pass proposes nothing or MaxPasses passes have
// applied fixes. A fixed text that no longer parses is discarded and the
// loop stops on the last good text.
func (l *Linter) Lint(in Input) (*Result, error) {
	if in.Parser == nil {
		return nil, ErrNoParser
	}

	active, missing, err := l.activate(in.Rules)
	if err != nil {
		return nil, err
	}

	r := &run{in: in, active: active, logger: l.Logger}
	if r.logger == nil {
		r.logger = logging.Discard()
	}
	if len(in.FixRules) > 0 {
		r.fixRules = make(map[string]bool, len(in.FixRules))
		for _, id := range in.FixRules {
			r.fixRules[id] = true
		}
	}

	maxPasses := in.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	result := &Result{FilePath: in.FilePath}
	started := time.Now()
	text := in.Text
	var last passResult

	if in.FixMode != FixApply {
		last = r.lintPass(text, nil, in.FixMode)
		result.PassesRun++
	} else {
		var prog *ast.Program
		for {
			current := r.lintPass(text, prog, FixApply)
			result.PassesRun++
			last = current
			if current.fatal || len(current.candidates) == 0 {
				break
			}

			accepted, skipped := fix.Select(current.candidates)
			fixed := fix.Apply(text, fix.Fixes(accepted))
			reparsed, err := in.Parser.Parse(fixed, in.ParserOptions)
			if err != nil {
				r.logger.Debug("fixed text does not parse, keeping previous text",
					logging.FieldFile, in.FilePath,
					logging.FieldPass, result.FixPasses+1,
					logging.FieldError, err,
				)
				break
			}

			text, prog = fixed, reparsed
			result.FixPasses++
			r.logger.Debug("applied fixes",
				logging.FieldFile, in.FilePath,
				logging.FieldPass, result.FixPasses,
				logging.FieldFixes, len(accepted),
				logging.FieldSkipped, len(skipped),
			)

			if result.FixPasses >= maxPasses {
				last = r.lintPass(text, prog, FixSuggest)
				result.PassesRun++
				result.FixLimitReached = len(last.candidates) > 0
				break
			}
		}
	}

	result.Messages = slices.Concat(missing, last.problems)
	sortProblems(result.Messages)
	result.UnusedDirectives = last.unused
	if text != in.Text {
		result.Output = text
		result.Fixed = true
	}
	result.tally()

	r.logger.Debug("linted file",
		logging.FieldFile, in.FilePath,
		logging.FieldPass, result.PassesRun,
		logging.FieldCount, len(result.Messages),
		logging.FieldDuration, time.Since(started),
	)
	return result, nil
}

// lintPass runs one traversal over text. prog is reused when the caller has
// already parsed text.
func (r *run) lintPass(text string, prog *ast.Program, mode FixMode) passResult {
	in := r.in
	if prog == nil {
		parsed, err := in.Parser.Parse(text, in.ParserOptions)
		if err != nil {
			return fatalPass(err)
		}
		prog = parsed
	}

	source := NewSourceCode(text, prog)
	p := &pass{
		filename:      in.FilePath,
		source:        source,
		parserOptions: in.ParserOptions,
		settings:      in.Settings,
		scopeOptions: scope.Options{
			Globals:      in.Globals.Names(),
			SourceType:   in.ParserOptions.SourceType,
			GlobalReturn: in.ParserOptions.Feature("globalReturn"),
		},
		collector: &collector{},
		fixMode:   mode,
		fixRules:  r.fixRules,
		logger:    r.logger,
	}

	d := newDispatcher(p)
	for _, ar := range r.active {
		meta := ar.rule.Meta()
		if meta == nil {
			meta = &Meta{}
		}
		ctx := &Context{
			id:       ar.rule.ID(),
			order:    ar.order,
			severity: ar.severity,
			options:  ar.options,
			meta:     meta,
			pass:     p,
		}
		d.register(ar.rule.ID(), ar.order, createListeners(ar.rule, ctx, p))
	}
	d.run(prog.Root)

	problems := slices.Clone(p.collector.problems)
	sortProblems(problems)

	var directiveProblems []Problem
	var unusedCount int
	if !in.NoInlineConfig {
		sup := CompileSuppressions(ParseDirectives(source), source.Source)
		kept, unusedEntries := sup.apply(problems)
		problems = kept
		unusedCount = len(unusedEntries)
		if in.ReportUnusedDisableDirectives {
			directiveProblems = sup.unusedProblems(unusedEntries, source)
		}
		directiveProblems = append(directiveProblems, sup.spanningProblems(source)...)
	}

	surviving := make(map[int]bool, len(problems))
	for _, problem := range problems {
		surviving[problem.Seq] = true
	}
	var candidates []fix.Candidate
	for _, fc := range p.collector.candidates {
		if surviving[fc.problem] {
			candidates = append(candidates, fc.cand)
		}
	}

	if len(directiveProblems) > 0 {
		problems = append(problems, directiveProblems...)
		sortProblems(problems)
	}
	return passResult{problems: problems, candidates: candidates, unused: unusedCount}
}

// createListeners calls Create, turning a panic into an internal-error
// problem for the rule.
func createListeners(rule Rule, ctx *Context, p *pass) (listeners Listeners) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Debug("rule create panicked", logging.FieldRule, rule.ID(), logging.FieldError, rec)
			p.collector.internalError(rule.ID(), nil, p.source, rec)
			listeners = nil
		}
	}()
	return rule.Create(ctx)
}

// fatalPass reports a parse failure as a single fatal problem.
func fatalPass(err error) passResult {
	problem := Problem{
		Severity: config.SeverityError,
		Message:  "Parsing error: " + err.Error(),
		Line:     1,
		Column:   1,
		Fatal:    true,
	}

	var parseErr *ast.ParseError
	if errors.As(err, &parseErr) {
		problem.Message = "Parsing error: " + parseErr.Message
		problem.Line, problem.Column = parseErr.Line, parseErr.Column
		problem.Range = ast.Range{Start: parseErr.Offset, End: parseErr.Offset}
	}
	problem.EndLine, problem.EndColumn = problem.Line, problem.Column
	return passResult{problems: []Problem{problem}, fatal: true}
}

// activate resolves the rule table against the registry. Checks run in
// sorted rule id order so the reported ConfigError is deterministic.
func (l *Linter) activate(table config.RuleTable) ([]activeRule, []Problem, error) {
	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var (
		active  []activeRule
		missing []Problem
	)
	for _, id := range ids {
		setting := table[id]
		if !setting.Severity.Valid() {
			return nil, nil, &ConfigError{
				RuleID: id,
				Err:    fmt.Errorf("%w: %d", config.ErrInvalidSeverity, int(setting.Severity)),
			}
		}
		if setting.Severity == config.SeverityOff {
			continue
		}

		rule, ok := l.Registry.Get(id)
		if !ok {
			missing = append(missing, Problem{
				RuleID:    id,
				Severity:  config.SeverityError,
				Message:   fmt.Sprintf("Definition for rule '%s' was not found.", id),
				Line:      1,
				Column:    1,
				EndLine:   1,
				EndColumn: 1,
			})
			continue
		}

		if err := CheckOptions(rule.Meta(), setting.Options); err != nil {
			return nil, nil, &ConfigError{RuleID: id, Err: err}
		}

		active = append(active, activeRule{
			rule:     rule,
			order:    l.Registry.Order(id),
			severity: setting.Severity,
			options:  setting.Options,
		})
	}

	slices.SortFunc(active, func(a, b activeRule) int { return a.order - b.order })
	return active, missing, nil
}
