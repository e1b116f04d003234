package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/fsutil"
	"github.com/yaklabco/gojslint/pkg/langdetect"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/metrics"
	"github.com/yaklabco/gojslint/pkg/processor/markdown"
)

// ConfigSource yields the effective configuration of a file.
// *configloader.Resolver implements it.
type ConfigSource interface {
	ForFile(path string) (*configloader.Resolved, error)
}

// Pipeline lints one file end to end: read, resolve config, lint (through
// the markdown processor when needed) and, when Write is set, write the
// fixed text back. A Pipeline is safe for concurrent use.
type Pipeline struct {
	Linter *lint.Linter
	Config ConfigSource

	// Parsers maps parser names used in configuration to implementations.
	Parsers map[string]lint.Parser
	// ParserOverride, when set, replaces the configured parser name.
	ParserOverride string

	Markdown *markdown.Processor

	FixMode   lint.FixMode
	MaxPasses int
	FixRules  []string
	// Write persists fixed output. Without it fixes are computed only.
	Write bool

	ReportUnusedDisableDirectives bool
	NoInlineConfig                bool

	Metrics *metrics.Recorder
	Logger  *log.Logger
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path   string
	Kind   langdetect.Kind
	Source string
	Result *lint.Result

	// Written reports that fixed output was saved. Skipped reports that it
	// was not saved because the file changed on disk in the meantime.
	Written bool
	Skipped bool
}

// ErrUnknownParser is returned when a file's configuration names a parser
// the pipeline does not have.
var ErrUnknownParser = errors.New("unknown parser")

// ProcessFile lints path.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	logger := p.logger()
	start := time.Now()

	content, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	kind := langdetect.Classify(path)
	out := &FileResult{Path: path, Kind: kind, Source: string(content)}

	if kind == langdetect.KindMarkdown && p.Markdown != nil {
		out.Result, err = p.lintMarkdown(path, out.Source)
	} else {
		out.Result, err = p.lintJavaScript(path, out.Source, p.FixMode)
	}
	if err != nil {
		p.Metrics.ObserveFailure(kind.String())
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Metrics.ObserveResult(kind.String(), out.Result, time.Since(start))

	if p.Write && out.Result.Fixed {
		switch err := fsutil.WriteFixed(ctx, snap, []byte(out.Result.Output)); {
		case errors.Is(err, fsutil.ErrChanged):
			logger.Warn("file changed during lint, fixes not written", logging.FieldFile, path)
			out.Skipped = true
		case err != nil:
			return nil, err
		default:
			out.Written = true
		}
	}

	logger.Debug("file linted",
		logging.FieldFile, path,
		logging.FieldProblemsTotal, len(out.Result.Messages),
		logging.FieldPass, out.Result.PassesRun,
		logging.FieldDuration, time.Since(start))

	return out, nil
}

func (p *Pipeline) input(path, text string, mode lint.FixMode) (lint.Input, error) {
	resolved, err := p.Config.ForFile(path)
	if err != nil {
		return lint.Input{}, fmt.Errorf("resolve config: %w", err)
	}

	name := resolved.Parser
	if p.ParserOverride != "" {
		name = p.ParserOverride
	}
	parser, ok := p.Parsers[name]
	if !ok {
		return lint.Input{}, fmt.Errorf("%w: %q", ErrUnknownParser, name)
	}

	return lint.Input{
		FilePath: path,
		Text:     text,
		Parser:   parser,
		ParserOptions: lint.ParserOptions{
			EcmaVersion:  resolved.ParserOptions.EcmaVersion,
			SourceType:   resolved.ParserOptions.SourceType,
			EcmaFeatures: resolved.ParserOptions.EcmaFeatures,
		},
		Rules:                         resolved.Rules,
		Globals:                       resolved.Globals,
		Settings:                      resolved.Settings,
		FixMode:                       mode,
		MaxPasses:                     p.MaxPasses,
		FixRules:                      p.FixRules,
		ReportUnusedDisableDirectives: p.ReportUnusedDisableDirectives,
		NoInlineConfig:                p.NoInlineConfig,
	}, nil
}

func (p *Pipeline) lintJavaScript(path, text string, mode lint.FixMode) (*lint.Result, error) {
	in, err := p.input(path, text, mode)
	if err != nil {
		return nil, err
	}
	result, err := p.Linter.Lint(in)
	if err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}
	return result, nil
}

// lintMarkdown lints each JavaScript block separately and merges the
// problems. Processed files are never fixed.
func (p *Pipeline) lintMarkdown(path, text string) (*lint.Result, error) {
	src := ast.NewSource(text)
	merged := &lint.Result{FilePath: path, Output: text}

	for _, block := range p.Markdown.Preprocess([]byte(text)) {
		result, err := p.lintJavaScript(path, block.Text, lint.FixOff)
		if err != nil {
			return nil, fmt.Errorf("code block %d: %w", block.Index, err)
		}
		merged.PassesRun += result.PassesRun
		merged.UnusedDirectives += result.UnusedDirectives
		merged.Messages = append(merged.Messages, block.MapProblems(src, result.Messages)...)
	}
	merged.Recount()
	return merged, nil
}

func (p *Pipeline) logger() *log.Logger {
	if p.Logger == nil {
		return logging.Discard()
	}
	return p.Logger
}
