// Package cli provides the Cobra command structure for gojslint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	color      string
	debug      bool
	verbose    bool
}

// logLevel picks the level from the flags, then GOJSLINT_LOG_LEVEL.
func (g *globalFlags) logLevel() string {
	switch {
	case g.debug:
		return "debug"
	case g.verbose:
		return "info"
	}
	if level := configloader.LogLevelFromEnv(); level != "" {
		return level
	}
	return "warn"
}

// NewRootCommand creates the root gojslint command with all subcommands.
// Running the root command with paths is the same as `gojslint lint`.
func NewRootCommand(info BuildInfo) *cobra.Command {
	global := &globalFlags{}
	flags := &lintFlags{}

	rootCmd := &cobra.Command{
		Use:   "gojslint [paths...]",
		Short: "A pluggable JavaScript linter with multi-pass autofix",
		Long: `gojslint lints JavaScript with ESLint-compatible rules and configuration.

Rules subscribe to syntax-tree nodes through selectors, problems can be
suppressed with eslint-disable comments, and --fix applies non-overlapping
fixes over repeated passes until the source stops changing.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.SetLevel(global.logLevel())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, global, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&global.configPath, "config", "c", "",
		"use this configuration file, overriding discovery")
	rootCmd.PersistentFlags().StringVar(&global.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&global.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&global.verbose, "verbose", "v", false, "log progress information")
	addLintFlags(rootCmd, flags)

	rootCmd.AddCommand(newLintCommand(global))
	rootCmd.AddCommand(newRulesCommand(global))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(&global.color).ApplyToCommand(rootCmd)

	return rootCmd
}
