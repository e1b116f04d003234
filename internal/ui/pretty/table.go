package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RuleRow is one line of the rule listing.
type RuleRow struct {
	ID          string
	Type        string
	Fixable     bool
	Recommended bool
	Description string
}

// TableFormatter renders the rule listing, truncating descriptions to fit
// the terminal width.
type TableFormatter struct {
	styles *Styles
	width  int
}

// NewTableFormatter creates a TableFormatter for a terminal width.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultWidth
	}
	return &TableFormatter{styles: styles, width: termWidth}
}

const (
	markFixable     = "\U0001F527"
	markRecommended = "✓"
	columnGap       = "  "
)

// FormatRules renders rows as an aligned table with a header.
func (t *TableFormatter) FormatRules(rows []RuleRow) string {
	idWidth, typeWidth := len("RULE"), len("TYPE")
	for _, row := range rows {
		idWidth = max(idWidth, len(row.ID))
		typeWidth = max(typeWidth, len(row.Type))
	}
	flagsWidth := len("REC FIX")
	descWidth := max(10, t.width-idWidth-typeWidth-flagsWidth-3*len(columnGap))

	var b strings.Builder
	header := strings.Join([]string{
		pad("RULE", idWidth), pad("TYPE", typeWidth), "REC FIX", "DESCRIPTION",
	}, columnGap)
	b.WriteString(t.styles.TableHeader.Render(header) + "\n")

	for _, row := range rows {
		rec, fixable := "   ", "   "
		if row.Recommended {
			rec = " " + markRecommended + " "
		}
		if row.Fixable {
			fixable = " " + t.styles.Fixable.Render(markFixable)
		}
		b.WriteString(pad(row.ID, idWidth) + columnGap)
		b.WriteString(t.styles.Dim.Render(pad(row.Type, typeWidth)) + columnGap)
		b.WriteString(rec + " " + fixable + columnGap)
		b.WriteString(truncate(row.Description, descWidth) + "\n")
	}
	return b.String()
}

func truncate(str string, maxWidth int) string {
	if lipgloss.Width(str) <= maxWidth {
		return str
	}
	runes := []rune(str)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
