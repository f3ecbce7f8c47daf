package cli

import (
	"fmt"
	"strings"

	"atsscore/internal/ai"
	"atsscore/internal/common"
	"atsscore/internal/errors"
	"atsscore/internal/observability"
	"atsscore/internal/types"

	"github.com/spf13/cobra"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Rewrite a summary, bullet or project description with AI",
	Long: `Rewrite one piece of resume text through the configured AI model.

The text comes from --text or from a plain-text file given with --file.
Sections:
- summary: professional summary paragraph
- bullet:  a single experience bullet point
- project: a project description

Requires an AI API key (ATSSCORE_AI_APIKEY or GEMINI_API_KEY). Scoring never
depends on this command.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if (enhanceOpts.text == "") == (enhanceOpts.file == "") {
			return errors.NewValidationError(errors.ErrCodeInvalidRequest, "exactly one of --text or --file is required", nil)
		}
		return resolveOutput(cmd, &enhanceOpts.output, enhanceOpts.noColor)
	},
	RunE: runEnhance,
}

var enhanceOpts struct {
	output     common.CommandConfig
	noColor    bool
	section    string
	text       string
	file       string
	targetRole string
}

func init() {
	addOutputFlags(enhanceCmd, &enhanceOpts.output, &enhanceOpts.noColor)
	enhanceCmd.Flags().StringVarP(&enhanceOpts.section, "section", "s", string(types.SectionSummary), "Section type: summary, bullet, or project")
	enhanceCmd.Flags().StringVarP(&enhanceOpts.text, "text", "t", "", "Text to enhance")
	enhanceCmd.Flags().StringVarP(&enhanceOpts.file, "file", "f", "", "Read the text to enhance from a file")
	enhanceCmd.Flags().StringVar(&enhanceOpts.targetRole, "target-role", "", "Role the text should be tailored towards")

	_ = enhanceCmd.RegisterFlagCompletionFunc("section", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(types.SectionSummary), string(types.SectionBullet), string(types.SectionProject)}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runEnhance(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	text := enhanceOpts.text
	if enhanceOpts.file != "" {
		content, err := common.NewFileProcessor(logger, cfg.App.MaxFileSize).ReadFile(enhanceOpts.file)
		if err != nil {
			return err
		}
		text = string(content)
	}

	obs, err := observability.NewManager(cfg.Observability, Version)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer shutdownObservability(obs, logger)

	service, err := ai.NewService(cmd.Context(), cfg.AI, obs.Metrics(), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := service.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err)
		}
	}()

	input := types.EnhanceInput{
		Section:    types.EnhanceSection(strings.ToLower(enhanceOpts.section)),
		Text:       text,
		TargetRole: enhanceOpts.targetRole,
	}
	logger.Info("Enhancing text",
		"section", input.Section,
		"chars", len(input.Text),
		"target_role", input.TargetRole,
		"model", cfg.AI.Model)

	output, err := service.Enhance(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("failed to enhance %s: %w", input.Section, err)
	}

	if err := common.NewOutputHandler(logger).HandleOutput(output, enhanceOpts.output); err != nil {
		return err
	}
	logger.Info("Enhancement completed successfully")
	return nil
}
