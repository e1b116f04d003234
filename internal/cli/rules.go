package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
)

type rulesFlags struct {
	format      string
	recommended bool
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Recommended bool   `json:"recommended"`
	Fixable     string `json:"fixable,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	URL         string `json:"url,omitempty"`
}

func newRulesCommand(global *globalFlags) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List the built-in rules with their type, whether they can fix the
problems they report, and whether gojslint:recommended enables them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := selectRules(rules.Default().Rules(), flags.recommended)
			out := cmd.OutOrStdout()

			if flags.format == formatJSON {
				return outputRulesJSON(out, list)
			}
			if flags.format != "" && flags.format != "table" {
				return fmt.Errorf("%w: unsupported format %q: must be table or json", ErrUsage, flags.format)
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(global.color, out))
			table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(out))
			_, err := fmt.Fprint(out, table.FormatRules(ruleRows(list)))
			return err
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, json")
	cmd.Flags().BoolVar(&flags.recommended, "recommended", false, "only list recommended rules")

	return cmd
}

func selectRules(all []lint.Rule, recommendedOnly bool) []lint.Rule {
	if !recommendedOnly {
		return all
	}
	var out []lint.Rule
	for _, rule := range all {
		if rule.Meta().Docs.Recommended {
			out = append(out, rule)
		}
	}
	return out
}

func ruleRows(list []lint.Rule) []pretty.RuleRow {
	rows := make([]pretty.RuleRow, 0, len(list))
	for _, rule := range list {
		meta := rule.Meta()
		rows = append(rows, pretty.RuleRow{
			ID:          rule.ID(),
			Type:        string(meta.Type),
			Fixable:     meta.Fixable != "",
			Recommended: meta.Docs.Recommended,
			Description: meta.Docs.Description,
		})
	}
	return rows
}

// outputRulesJSON writes rules as an indented JSON array.
func outputRulesJSON(w io.Writer, list []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(list))
	for _, rule := range list {
		meta := rule.Meta()
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Type:        string(meta.Type),
			Description: meta.Docs.Description,
			Recommended: meta.Docs.Recommended,
			Fixable:     meta.Fixable,
			Deprecated:  meta.Deprecated,
			URL:         meta.Docs.URL,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
