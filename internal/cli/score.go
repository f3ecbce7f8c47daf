package cli

import (
	"context"
	"fmt"
	"time"

	"atsscore/internal/common"
	"atsscore/internal/errors"
	"atsscore/internal/observability"
	"atsscore/internal/types"
	"atsscore/internal/utils"

	"github.com/spf13/cobra"
)

const observabilityShutdownTimeout = 5 * time.Second

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file|glob]...",
	Short: "Score one or more resumes",
	Long: `Score structured resumes (JSON or YAML) and print the ATS report.

Arguments may be file paths or glob patterns such as "resumes/**/*.json".
Files are scored concurrently; a file that cannot be read or parsed is
reported as a failure without stopping the rest of the batch.

Use --fail-under to exit non-zero when any resume scores below a threshold,
which makes the command usable as a CI gate.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := common.ValidateThreshold(scoreOpts.failUnder); err != nil {
			return err
		}
		return resolveOutput(cmd, &scoreOpts.output, scoreOpts.noColor)
	},
	RunE: runScore,
}

var scoreOpts struct {
	output      common.CommandConfig
	noColor     bool
	concurrency int
	diagnose    bool
	failUnder   int
}

func init() {
	addOutputFlags(scoreCmd, &scoreOpts.output, &scoreOpts.noColor)
	scoreCmd.Flags().IntVarP(&scoreOpts.concurrency, "concurrency", "c", 0, "Files scored in parallel (default from config)")
	scoreCmd.Flags().BoolVar(&scoreOpts.diagnose, "diagnose", false, "Attach schema diagnostics to each report")
	scoreCmd.Flags().IntVar(&scoreOpts.failUnder, "fail-under", 0, "Exit with an error if any resume scores below this value")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	paths, err := utils.ExpandInputs(args)
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeFileNotFound, "Cannot resolve input files", err)
	}

	concurrency := scoreOpts.concurrency
	if concurrency <= 0 {
		concurrency = cfg.Scoring.Concurrency
	}
	diagnose := scoreOpts.diagnose || cfg.Scoring.Diagnose

	obs, err := observability.NewManager(cfg.Observability, Version)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer shutdownObservability(obs, logger)

	logger.Info("Scoring resumes",
		"files", len(paths),
		"concurrency", concurrency,
		"diagnose", diagnose,
		"output_format", scoreOpts.output.OutputFormat)

	fp := common.NewFileProcessor(logger, cfg.App.MaxFileSize)
	metrics := obs.Metrics()
	results, failed, err := common.ProcessFiles(cmd.Context(), logger, paths, concurrency,
		func(ctx context.Context, path string) (types.ScoredResume, error) {
			raw, err := fp.ReadResume(path)
			if err != nil {
				metrics.RecordScoringFailure(ctx, errors.CodeOf(err), "cli")
				return types.ScoredResume{}, err
			}
			scored := common.ScoreDocument(ctx, raw, "cli", diagnose, metrics, logger)
			scored.Source = path
			return scored, nil
		})
	if err != nil {
		return err
	}

	var output any = types.ScoreBatch{Results: results, Failed: failed}
	if len(paths) == 1 && len(results) == 1 {
		output = results[0]
	}
	if err := common.NewOutputHandler(logger).HandleOutput(output, scoreOpts.output); err != nil {
		return err
	}

	logger.Info("Scoring completed", "scored", len(results), "failed", len(failed))

	if len(results) == 0 && len(failed) > 0 {
		return errors.NewValidationError(errors.ErrCodeInvalidResume,
			fmt.Sprintf("No resume could be scored (%d failed)", len(failed)), nil)
	}
	return common.CheckThreshold(results, scoreOpts.failUnder)
}

func shutdownObservability(obs *observability.Manager, logger *errors.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), observabilityShutdownTimeout)
	defer cancel()
	if err := obs.Shutdown(ctx); err != nil {
		logger.Warn("Observability shutdown failed", "error", err)
	}
}
