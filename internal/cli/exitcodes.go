package cli

import (
	"errors"

	"github.com/yaklabco/gojslint/pkg/runner"
)

// Exit codes for gojslint.
const (
	// ExitSuccess indicates no error-severity problems were found.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors, or a file
	// could not be linted.
	ExitLintErrors = 1

	// ExitFatal indicates a configuration, usage or internal error.
	ExitFatal = 2
)

// ErrLintIssuesFound is returned when the run should exit with
// ExitLintErrors. It carries no message for the user.
var ErrLintIssuesFound = errors.New("lint issues found")

// ExitCodeFromResult determines the exit code of a completed run.
// Warnings alone never fail the run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() || result.Stats.FilesErrored > 0 {
		return ExitLintErrors
	}
	return ExitSuccess
}

// ExitCode maps the error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintErrors
	default:
		return ExitFatal
	}
}
