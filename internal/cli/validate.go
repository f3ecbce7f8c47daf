package cli

import (
	"context"

	"atsscore/internal/common"
	"atsscore/internal/errors"
	"atsscore/internal/snapshot"
	"atsscore/internal/types"
	"atsscore/internal/utils"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [resume-file|glob]...",
	Short: "Check resumes against the resume schema",
	Long: `Check structured resumes against the resume JSON schema without scoring
them. Schema issues never block scoring; this command only reports them so
authors can fix fields that the scorer would otherwise ignore.

Exits with an error when any file is unreadable or has schema issues.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutput(cmd, &validateOpts.output, validateOpts.noColor)
	},
	RunE: runValidate,
}

var validateOpts struct {
	output  common.CommandConfig
	noColor bool
}

func init() {
	addOutputFlags(validateCmd, &validateOpts.output, &validateOpts.noColor)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	paths, err := utils.ExpandInputs(args)
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeFileNotFound, "Cannot resolve input files", err)
	}

	fp := common.NewFileProcessor(logger, cfg.App.MaxFileSize)
	reports, failed, err := common.ProcessFiles(cmd.Context(), logger, paths, cfg.Scoring.Concurrency,
		func(_ context.Context, path string) (types.ValidationReport, error) {
			raw, err := fp.ReadResume(path)
			if err != nil {
				return types.ValidationReport{}, err
			}
			issues, err := snapshot.Diagnose(raw)
			if err != nil {
				return types.ValidationReport{}, err
			}
			return types.ValidationReport{Source: path, Valid: len(issues) == 0, Issues: issues}, nil
		})
	if err != nil {
		return err
	}

	// unreadable files are reported alongside schema results
	for _, f := range failed {
		reports = append(reports, types.ValidationReport{
			Source: f.Source,
			Issues: []types.SchemaIssue{{Field: "(document)", Description: f.Error}},
		})
	}

	if err := common.NewOutputHandler(logger).HandleOutput(reports, validateOpts.output); err != nil {
		return err
	}

	var invalid []string
	for _, r := range reports {
		if !r.Valid {
			invalid = append(invalid, r.Source)
		}
	}
	if len(invalid) > 0 {
		return errors.NewValidationError(errors.ErrCodeInvalidResume, "Schema validation failed", nil).
			WithContext("resumes", invalid)
	}
	return nil
}
