// Package reporter formats runner results: ESLint's stylish and compact
// text formats, its JSON result array, and unified diffs of fixed output.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for result and returns the number of
	// problems it reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatStylish
	}

	switch format {
	case FormatStylish:
		return NewStylishReporter(opts), nil
	case FormatCompact:
		return NewCompactReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// problems returns the messages of a file to report, honoring quiet mode.
// A file that could not be linted yields one fatal problem per line of its
// error.
func problems(file runner.FileOutcome, quiet bool) []lint.Problem {
	if file.Error != nil {
		var out []lint.Problem
		for _, line := range strings.Split(file.Error.Error(), "\n") {
			if line = strings.TrimSpace(line); line == "" {
				continue
			}
			out = append(out, lint.Problem{
				Severity: config.SeverityError,
				Message:  line,
				Line:     1,
				Column:   1,
				Fatal:    true,
			})
		}
		return out
	}
	if file.File == nil || file.File.Result == nil {
		return nil
	}
	msgs := file.File.Result.Messages
	if !quiet {
		return msgs
	}
	kept := make([]lint.Problem, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Fatal || msg.Severity == config.SeverityError {
			kept = append(kept, msg)
		}
	}
	return kept
}

// displayPath makes path relative to workDir when it lies below it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
