package cli

import (
	"context"

	"atsscore/internal/common"
	"atsscore/internal/config"
	"atsscore/internal/errors"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "atsscore",
	Short: "Deterministic ATS scoring for structured resumes",
	Long: `atsscore scores structured resumes (JSON or YAML) the way an applicant
tracking system would: a 0-100 score split across seven categories, with
feedback, suggestions, warnings and critical issues.

It runs as a CLI over files and globs, or as an HTTP service with an optional
resume store and an optional AI enhancer for summary, bullet and project text.`,
	SilenceUsage: true,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// addOutputFlags registers --output, --format and --no-color on cmd
func addOutputFlags(cmd *cobra.Command, target *common.CommandConfig, noColor *bool) {
	cmd.Flags().StringVarP(&target.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&target.OutputFormat, "format", "", "Output format: json, text, or markdown")
	cmd.Flags().BoolVar(noColor, "no-color", false, "Disable coloured text output")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return getConfigFromContext(cmd.Context()).App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveOutput applies config defaults to an output config and validates it
func resolveOutput(cmd *cobra.Command, target *common.CommandConfig, noColor bool) error {
	cfg := getConfigFromContext(cmd.Context())
	if target.OutputFormat == "" {
		target.OutputFormat = cfg.App.DefaultFormat
	}
	target.Color = cfg.App.Color && !noColor
	return common.ValidateOutputFormat(target.OutputFormat, cfg.App.SupportedFormats)
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(enhanceCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
