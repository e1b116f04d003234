package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/runner"
)

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	if !pretty.IsColorEnabled("always", &buf) {
		t.Error("always should enable color")
	}
	if pretty.IsColorEnabled("never", &buf) {
		t.Error("never should disable color")
	}
	if pretty.IsColorEnabled("auto", &buf) {
		t.Error("auto should disable color for a non-TTY writer")
	}

	t.Setenv("NO_COLOR", "1")
	if pretty.IsColorEnabled("", &buf) {
		t.Error("NO_COLOR should disable color")
	}
}

func TestTerminalWidth_NonTTY(t *testing.T) {
	t.Parallel()

	if got := pretty.TerminalWidth(&bytes.Buffer{}); got != 100 {
		t.Errorf("TerminalWidth() = %d, want 100", got)
	}
}

func TestFormatProblems(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	problems := []lint.Problem{
		{RuleID: "no-iterator", Severity: config.SeverityError, Message: "Reserved name '__iterator__'.", Line: 1, Column: 5},
		{RuleID: "func-names", Severity: config.SeverityWarn, Message: "Unexpected unnamed function.", Line: 12, Column: 10, Fix: &fix.Fix{}},
		{Severity: config.SeverityError, Message: "Parsing error: Unexpected token", Line: 3, Column: 1, Fatal: true},
	}

	got := styles.FormatProblems("/src/a.js", problems)
	want := "/src/a.js\n" +
		"  1:5    error    Reserved name '__iterator__'     no-iterator\n" +
		"  12:10  warning  Unexpected unnamed function      func-names\n" +
		"  3:1    error    Parsing error: Unexpected token\n"
	if got != want {
		t.Errorf("FormatProblems() =\n%q\nwant\n%q", got, want)
	}

	if styles.FormatProblems("x.js", nil) != "" {
		t.Error("no problems should render nothing")
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name: "clean",
			want: "",
		},
		{
			name:  "mixed",
			stats: runner.Stats{Errors: 2, Warnings: 1, FixableErrors: 1},
			want: "\n✖ 3 problems (2 errors, 1 warning)\n" +
				"  1 error and 0 warnings potentially fixable with the `--fix` option.\n",
		},
		{
			name:  "single warning",
			stats: runner.Stats{Warnings: 1},
			want:  "\n✖ 1 problem (0 errors, 1 warning)\n",
		},
		{
			name:  "fixed files",
			stats: runner.Stats{FilesFixed: 2},
			want:  "Fixed 2 files.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := styles.FormatSummary(tt.stats); got != tt.want {
				t.Errorf("FormatSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRules(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 60)
	out := formatter.FormatRules([]pretty.RuleRow{
		{ID: "no-iterator", Type: "suggestion", Recommended: true, Description: "disallow the use of the `__iterator__` property"},
		{ID: "array-bracket-newline", Type: "layout", Fixable: true, Description: "enforce line breaks after opening and before closing array brackets"},
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "RULE") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "no-iterator ") {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "...") {
		t.Errorf("long description not truncated: %q", lines[2])
	}
}
