package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// CompactReporter writes one line per problem:
//
//	/src/a.js: line 1, col 5, Error - Unexpected unnamed function. (func-names)
type CompactReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewCompactReporter creates a new compact reporter.
func NewCompactReporter(opts Options) *CompactReporter {
	return &CompactReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *CompactReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	if result == nil {
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)
		for _, msg := range problems(file, r.opts.Quiet) {
			severity := "Warning"
			if msg.Fatal || msg.Severity == config.SeverityError {
				severity = "Error"
			}
			fmt.Fprintf(r.bw, "%s: line %d, col %d, %s - %s", path, msg.Line, msg.Column, severity, msg.Message)
			if msg.RuleID != "" {
				fmt.Fprintf(r.bw, " (%s)", msg.RuleID)
			}
			fmt.Fprintln(r.bw)
			total++
		}
	}

	if total > 0 {
		fmt.Fprintf(r.bw, "\n%d problem", total)
		if total != 1 {
			fmt.Fprint(r.bw, "s")
		}
		fmt.Fprintln(r.bw)
	}
	return total, nil
}
