package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// StylishReporter groups problems under each file path and ends with a
// problem count, like ESLint's default formatter.
type StylishReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewStylishReporter creates a new stylish reporter.
func NewStylishReporter(opts Options) *StylishReporter {
	return &StylishReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *StylishReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	if result == nil {
		return 0, nil
	}

	var total int
	var stats runner.Stats
	for _, file := range result.Files {
		msgs := problems(file, r.opts.Quiet)
		if len(msgs) == 0 {
			continue
		}
		if total > 0 {
			fmt.Fprintln(r.bw)
		}
		total += len(msgs)
		fmt.Fprint(r.bw, r.styles.FormatProblems(displayPath(file.Path, r.opts.WorkingDir), msgs))

		for idx := range msgs {
			msg := &msgs[idx]
			isError := msg.Fatal || msg.Severity == config.SeverityError
			switch {
			case isError && msg.HasFix():
				stats.Errors++
				stats.FixableErrors++
			case isError:
				stats.Errors++
			case msg.HasFix():
				stats.Warnings++
				stats.FixableWarnings++
			default:
				stats.Warnings++
			}
		}
	}
	stats.FilesFixed = result.Stats.FilesFixed
	stats.FilesSkipped = result.Stats.FilesSkipped

	fmt.Fprint(r.bw, r.styles.FormatSummary(stats))
	return total, nil
}
