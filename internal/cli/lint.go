package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
	"github.com/yaklabco/gojslint/pkg/metrics"
	"github.com/yaklabco/gojslint/pkg/parser/js"
	"github.com/yaklabco/gojslint/pkg/processor/markdown"
	"github.com/yaklabco/gojslint/pkg/reporter"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// ErrUsage marks invalid flag combinations. It maps to ExitFatal.
var ErrUsage = errors.New("invalid usage")

type lintFlags struct {
	fix            bool
	fixDryRun      bool
	fixRules       []string
	maxPasses      int
	format         string
	parser         string
	reportUnused   bool
	noInlineConfig bool
	jobs           int
	ignore         []string
	markdown       bool
	metricsFile    string
	quiet          bool
}

func newLintCommand(global *globalFlags) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint JavaScript files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, global, flags)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint JavaScript files.

By default, lints every .js, .mjs and .cjs file below the current directory,
skipping hidden and vendored directories such as node_modules. Files named
explicitly are linted whatever their extension.

Examples:
  gojslint lint                          # Lint the current directory
  gojslint lint src/ test/a.js           # Lint a directory and a file
  gojslint lint --fix                    # Apply fixes in place
  gojslint lint --fix-dry-run -f diff    # Show fixes as a unified diff
  gojslint lint --fix-rule func-names    # Only fix one rule
  gojslint lint --markdown docs/         # Lint js code blocks in Markdown
  gojslint lint -f json > report.json    # ESLint-compatible JSON output`

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "apply fixes and write them to disk")
	cmd.Flags().BoolVar(&flags.fixDryRun, "fix-dry-run", false, "compute fixes without writing them")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rule", nil, "only apply fixes from these rule ids")
	cmd.Flags().IntVar(&flags.maxPasses, "max-passes", lint.DefaultMaxFixPasses,
		"maximum lint passes when fixing")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(reporter.FormatStylish),
		"output format: stylish, compact, json, diff")
	cmd.Flags().StringVar(&flags.parser, "parser", "",
		"parser for every file, overriding configuration: js, tree-sitter")
	cmd.Flags().BoolVar(&flags.reportUnused, "report-unused-disable-directives", false,
		"report disable directives that suppress nothing")
	cmd.Flags().BoolVar(&flags.noInlineConfig, "no-inline-config", false,
		"ignore eslint-disable and eslint-enable comments")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = number of CPUs)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore-pattern", nil, "glob patterns of files to skip")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "also lint JavaScript code blocks in Markdown files")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "",
		"write Prometheus metrics for the run to this file")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "report errors only")
}

// parsers returns the available parsers keyed by the name used in
// configuration and on the command line.
func parsers() map[string]lint.Parser {
	out := map[string]lint.Parser{}
	for _, parser := range append([]lint.Parser{js.New()}, cgoParsers()...) {
		out[parser.Name()] = parser
	}
	return out
}

func (f *lintFlags) validate(available map[string]lint.Parser) (reporter.Format, error) {
	format, err := reporter.ParseFormat(f.format)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if f.fix && f.fixDryRun {
		return "", fmt.Errorf("%w: --fix and --fix-dry-run cannot be used together", ErrUsage)
	}
	if f.maxPasses < 1 {
		return "", fmt.Errorf("%w: --max-passes must be at least 1", ErrUsage)
	}
	if f.parser != "" {
		if _, ok := available[f.parser]; !ok {
			names := make([]string, 0, len(available))
			for name := range available {
				names = append(names, name)
			}
			slices.Sort(names)
			return "", fmt.Errorf("%w: unknown parser %q (available: %s)",
				ErrUsage, f.parser, strings.Join(names, ", "))
		}
	}
	return format, nil
}

// fixMode picks the fix mode. The diff format computes fixes even without
// --fix-dry-run, since it has nothing else to show.
func (f *lintFlags) fixMode(format reporter.Format) lint.FixMode {
	if f.fix || f.fixDryRun || format == reporter.FormatDiff {
		return lint.FixApply
	}
	return lint.FixOff
}

func runLint(cmd *cobra.Command, args []string, global *globalFlags, flags *lintFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	available := parsers()
	format, err := flags.validate(available)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	registry := rules.Default()
	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		Catalog:      registry,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	linter := lint.NewLinter(registry)
	linter.Logger = logger

	pipeline := &runner.Pipeline{
		Linter:                        linter,
		Config:                        configloader.NewResolver(loadResult.Config, loadResult.BaseDir),
		Parsers:                       available,
		ParserOverride:                flags.parser,
		FixMode:                       flags.fixMode(format),
		MaxPasses:                     flags.maxPasses,
		FixRules:                      flags.fixRules,
		Write:                         flags.fix,
		ReportUnusedDisableDirectives: flags.reportUnused,
		NoInlineConfig:                flags.noInlineConfig,
		Logger:                        logger,
	}
	if flags.markdown {
		pipeline.Markdown = markdown.New("gfm")
	}
	if flags.metricsFile != "" {
		pipeline.Metrics = metrics.New()
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, flags.jobs,
		logging.FieldFix, flags.fix,
		logging.FieldDryRun, flags.fixDryRun)

	result, err := runner.New(pipeline).Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		IgnorePatterns: flags.ignore,
		Markdown:       flags.markdown,
		Jobs:           flags.jobs,
	})
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     format,
		Color:      global.color,
		Quiet:      flags.quiet,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if flags.metricsFile != "" {
		if err := pipeline.Metrics.WriteFile(ctx, flags.metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	logger.Info("lint run complete",
		logging.FieldFilesProcessed, result.Stats.FilesLinted,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldProblemsTotal, result.Problems(),
		logging.FieldFilesModified, result.Stats.FilesFixed)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrLintIssuesFound
	}
	return nil
}
