package cli

import (
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Example    lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{plain, plain, plain, plain, plain, plain}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Example:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for Cobra commands. The color mode is
// read when help is printed, after flags have been parsed.
type HelpFormatter struct {
	colorMode *string
}

// NewHelpFormatter creates a help formatter reading the --color value.
func NewHelpFormatter(colorMode *string) *HelpFormatter {
	return &HelpFormatter{colorMode: colorMode}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ environment }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs(styles *HelpStyles) template.FuncMap {
	return template.FuncMap{
		"command":                 styles.Command.Render,
		"heading":                 styles.Heading.Render,
		"subcommand":              styles.Subcommand.Render,
		"example":                 styles.Example.Render,
		"flags":                   func(set flagUsager) string { return styleFlagsUsage(styles, set) },
		"environment":             func() string { return environment(styles) },
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

type flagUsager interface {
	FlagUsages() string
}

// ApplyToCommand installs styled help and usage output on cmd and its
// subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	render := func(command *cobra.Command, text string) error {
		out := command.OutOrStdout()
		mode := "auto"
		if h.colorMode != nil {
			mode = *h.colorMode
		}
		tmpl, err := template.New("help").Funcs(h.funcs(NewHelpStyles(pretty.IsColorEnabled(mode, out)))).Parse(text)
		if err != nil {
			return fmt.Errorf("parse help template: %w", err)
		}
		return tmpl.Execute(out, command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render(command, usageTemplate)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render(command, helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

// styleFlagsUsage colors the flag names of pflag's usage text and dims the
// value type.
func styleFlagsUsage(styles *HelpStyles, set flagUsager) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	lines := strings.Split(usages, "\n")
	for idx, line := range lines {
		lines[idx] = styleFlagLine(styles, line)
	}
	return strings.Join(lines, "\n")
}

func styleFlagLine(styles *HelpStyles, line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]
	flagPart, desc, ok := strings.Cut(trimmed, "   ")
	if !ok {
		return line
	}

	tokens := strings.Fields(flagPart)
	for idx, token := range tokens {
		if clean, comma := strings.CutSuffix(token, ","); strings.HasPrefix(clean, "-") {
			tokens[idx] = styles.Flag.Render(clean)
			if comma {
				tokens[idx] += ","
			}
			continue
		}
		tokens[idx] = styles.Dim.Render(token)
	}
	return indent + strings.Join(tokens, " ") + "   " + strings.TrimLeft(desc, " ")
}

// environment lists the supported environment variables.
func environment(styles *HelpStyles) string {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  "+styles.Flag.Render(rpad(name, width))+"   "+vars[name])
	}
	return strings.Join(lines, "\n")
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

