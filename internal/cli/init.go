package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fsutil"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gojslint configuration file",
		Long: `Create a .gojslintrc.yml configuration file in the current directory.
The minimal template extends gojslint:recommended; the full template lists
every rule with its description.

Examples:
  gojslint init                       Create a minimal .gojslintrc.yml
  gojslint init --full                List every rule in the template
  gojslint init --format json         Create .gojslintrc.json instead
  gojslint init --output custom.yml   Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "list every rule in the template")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .gojslintrc.yml or .gojslintrc.json)")

	return cmd
}

func templateRules() []config.RuleInfo {
	all := rules.Default().Rules()
	out := make([]config.RuleInfo, 0, len(all))
	for _, rule := range all {
		meta := rule.Meta()
		out = append(out, config.RuleInfo{
			ID:          rule.ID(),
			Description: meta.Docs.Description,
			Recommended: meta.Docs.Recommended,
			Fixable:     meta.Fixable != "",
		})
	}
	return out
}

func runInit(ctx context.Context, status io.Writer, flags *initFlags) error {
	logger := logging.NewWithWriter(status, "info")

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gojslintrc.yml"
		if flags.format == "json" {
			outputPath = ".gojslintrc.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	}, templateRules())
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gojslint rules' to see all available rules")

	return nil
}
