package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every rule with its description. If false, a minimal
	// template extending the recommended set is generated.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// RuleInfo is the rule metadata used to document a full template. It is
// passed in by the caller so this package stays free of the rule registry.
type RuleInfo struct {
	ID          string
	Description string
	Recommended bool
	Fixable     bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions, rules []RuleInfo) ([]byte, error) {
	switch opts.Format {
	case "", "yaml":
		if opts.Full {
			return generateFullYAML(rules), nil
		}
		return generateMinimalYAML(), nil
	case "json":
		return generateJSON(opts, rules)
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

func generateMinimalYAML() []byte {
	return []byte(`# gojslint configuration
# See: https://github.com/yaklabco/gojslint

root: true

extends: gojslint:recommended

env:
  browser: true

parserOptions:
  ecmaVersion: 2022
  sourceType: module

# rules:
#   func-names: [warn, as-needed]
#   prefer-destructuring: error

# overrides:
#   - files: ["test/**/*.js"]
#     env:
#       mocha: true
`)
}

func generateFullYAML(rules []RuleInfo) []byte {
	var buf bytes.Buffer
	buf.WriteString(`# gojslint configuration
# See: https://github.com/yaklabco/gojslint

root: true

parserOptions:
  ecmaVersion: 2022
  sourceType: module

rules:
`)

	sorted := append([]RuleInfo(nil), rules...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, rule := range sorted {
		desc := rule.Description
		if rule.Fixable {
			desc += " (fixable)"
		}
		for _, line := range wrapComment(desc, commentWrapWidth) {
			buf.WriteString("  # " + line + "\n")
		}
		severity := SeverityOff
		if rule.Recommended {
			severity = SeverityError
		}
		fmt.Fprintf(&buf, "  %s: %s\n\n", rule.ID, severity)
	}

	return buf.Bytes()
}

func generateJSON(opts TemplateOptions, rules []RuleInfo) ([]byte, error) {
	cfg := &Config{
		Root: true,
		Base: Base{
			ParserOptions: &ParserOptions{EcmaVersion: 2022, SourceType: "module"},
		},
	}
	if opts.Full {
		cfg.Rules = make(map[string]any, len(rules))
		for _, rule := range rules {
			severity := SeverityOff
			if rule.Recommended {
				severity = SeverityError
			}
			cfg.Rules[rule.ID] = severity.String()
		}
	} else {
		cfg.Extends = StringList{ExtendsRecommended}
	}
	return cfg.ToJSON()
}

// wrapComment splits text into lines no longer than width, breaking on
// spaces.
func wrapComment(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
