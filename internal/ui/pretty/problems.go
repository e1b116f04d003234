package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// FormatSeverity returns the styled severity word of a problem.
func (s *Styles) FormatSeverity(p *lint.Problem) string {
	if p.Fatal || p.Severity == config.SeverityError {
		return s.Error.Render("error")
	}
	return s.Warning.Render("warning")
}

// FormatProblems renders the stylish block of one file: an underlined path
// followed by one aligned row per problem.
//
//	/src/a.js
//	  1:5  error  Unexpected '__iterator__' property  no-iterator
func (s *Styles) FormatProblems(path string, problems []lint.Problem) string {
	if len(problems) == 0 {
		return ""
	}

	rows := make([][4]string, len(problems))
	var widths [4]int
	for idx := range problems {
		p := &problems[idx]
		severity := "warning"
		if p.Fatal || p.Severity == config.SeverityError {
			severity = "error"
		}
		rows[idx] = [4]string{
			fmt.Sprintf("%d:%d", p.Line, p.Column),
			severity,
			strings.TrimSuffix(p.Message, "."),
			p.RuleID,
		}
		for col, cell := range rows[idx] {
			widths[col] = max(widths[col], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	b.WriteString(s.FilePath.Render(path))
	b.WriteString("\n")
	for idx, row := range rows {
		p := &problems[idx]
		b.WriteString("  ")
		b.WriteString(s.Location.Render(pad(row[0], widths[0])))
		b.WriteString("  ")
		b.WriteString(s.FormatSeverity(p))
		b.WriteString(strings.Repeat(" ", widths[1]-len(row[1])))
		b.WriteString("  ")
		b.WriteString(s.Message.Render(pad(row[2], widths[2])))
		if row[3] != "" {
			b.WriteString("  ")
			b.WriteString(s.RuleID.Render(row[3]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(cell string, width int) string {
	return cell + strings.Repeat(" ", max(0, width-lipgloss.Width(cell)))
}
