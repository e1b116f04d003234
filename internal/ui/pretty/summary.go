package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gojslint/pkg/runner"
)

func plural(count int, word string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, word)
	}
	return fmt.Sprintf("%d %ss", count, word)
}

// FormatSummary renders the closing lines of the stylish output. It returns
// an empty string when there were no problems and nothing was fixed.
//
//	✖ 3 problems (2 errors, 1 warning)
//	  1 error and 0 warnings potentially fixable with the `--fix` option.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	total := stats.Errors + stats.Warnings

	var b strings.Builder
	if total > 0 {
		style := s.Warning
		if stats.Errors > 0 {
			style = s.Failure
		}
		line := fmt.Sprintf("✖ %s (%s, %s)",
			plural(total, "problem"), plural(stats.Errors, "error"), plural(stats.Warnings, "warning"))
		b.WriteString("\n" + style.Render(line) + "\n")

		if stats.FixableErrors+stats.FixableWarnings > 0 {
			fixable := fmt.Sprintf("  %s and %s potentially fixable with the `--fix` option.",
				plural(stats.FixableErrors, "error"), plural(stats.FixableWarnings, "warning"))
			b.WriteString(style.Render(fixable) + "\n")
		}
	}

	if stats.FilesFixed > 0 {
		b.WriteString(s.Success.Render(fmt.Sprintf("Fixed %s.", plural(stats.FilesFixed, "file"))) + "\n")
	}
	if stats.FilesSkipped > 0 {
		b.WriteString(s.Dim.Render(fmt.Sprintf("%s changed during the run and were not written.",
			plural(stats.FilesSkipped, "file"))) + "\n")
	}
	return b.String()
}
