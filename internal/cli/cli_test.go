package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"atsscore/internal/common"
	"atsscore/internal/config"
	"atsscore/internal/errors"
	"atsscore/internal/types"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommand(t *testing.T, cfg *config.Config) *cobra.Command {
	t.Helper()
	ctx := context.WithValue(context.Background(), configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, errors.NewLoggerWithWriter(io.Discard, slog.LevelError))
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	return cmd
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			DefaultFormat:    "text",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1 << 20,
			Color:            true,
		},
		Scoring: config.ScoringConfig{Concurrency: 2},
	}
}

func TestApplyServeFlags(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Port = "8080"
	cfg.Server.Host = "localhost"

	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(serveCmd.Flags())
	require.NoError(t, cmd.Flags().Set("port", "9090"))
	require.NoError(t, cmd.Flags().Set("tls-mode", "server"))

	applyServeFlags(cmd, cfg)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "server", cfg.Server.TLS.Mode)
	assert.Equal(t, "localhost", cfg.Server.Host, "unset flags keep config values")
}

func TestResolveOutput(t *testing.T) {
	tests := []struct {
		name      string
		in        common.CommandConfig
		noColor   bool
		want      common.CommandConfig
		wantError bool
	}{
		{name: "defaults", want: common.CommandConfig{OutputFormat: "text", Color: true}},
		{name: "no color", noColor: true, want: common.CommandConfig{OutputFormat: "text"}},
		{name: "explicit", in: common.CommandConfig{OutputFormat: "json"}, want: common.CommandConfig{OutputFormat: "json", Color: true}},
		{name: "unsupported", in: common.CommandConfig{OutputFormat: "xml"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.in
			err := resolveOutput(testCommand(t, testConfig()), &target, tt.noColor)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, target)
		})
	}
}

func writeResume(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunScoreBatch(t *testing.T) {
	dir := t.TempDir()
	writeResume(t, dir, "a.json", `{"personalInfo": {"fullName": "Ada", "email": "ada@example.com"}, "summary": "Engineer"}`)
	writeResume(t, dir, "b.yaml", "personalInfo:\n  fullName: Bob\n")
	writeResume(t, dir, "broken.json", `[1, 2]`)
	out := filepath.Join(dir, "out", "report.json")

	scoreOpts.output = common.CommandConfig{OutputFile: out, OutputFormat: "json"}
	scoreOpts.concurrency, scoreOpts.diagnose, scoreOpts.failUnder = 0, true, 0
	t.Cleanup(func() { scoreOpts.output = common.CommandConfig{} })

	err := runScore(testCommand(t, testConfig()), []string{filepath.Join(dir, "*.json"), filepath.Join(dir, "b.yaml")})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var batch types.ScoreBatch
	require.NoError(t, json.Unmarshal(data, &batch))

	require.Len(t, batch.Results, 2)
	require.Len(t, batch.Failed, 1)
	assert.Equal(t, filepath.Join(dir, "broken.json"), batch.Failed[0].Source)
	for _, r := range batch.Results {
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Source)
		assert.Equal(t, r.Breakdown.Total(), r.Score)
	}
}

func TestRunScoreFailUnder(t *testing.T) {
	dir := t.TempDir()
	path := writeResume(t, dir, "thin.json", `{"personalInfo": {"fullName": "Ada"}}`)

	scoreOpts.output = common.CommandConfig{OutputFile: filepath.Join(dir, "out.json"), OutputFormat: "json"}
	scoreOpts.concurrency, scoreOpts.diagnose, scoreOpts.failUnder = 1, false, 90
	t.Cleanup(func() {
		scoreOpts.output = common.CommandConfig{}
		scoreOpts.failUnder = 0
	})

	err := runScore(testCommand(t, testConfig()), []string{path})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeScoreBelow, errors.CodeOf(err))

	// a single input is written as a bare report
	data, err := os.ReadFile(filepath.Join(dir, "out.json"))
	require.NoError(t, err)
	var single types.ScoredResume
	require.NoError(t, json.Unmarshal(data, &single))
	assert.Equal(t, path, single.Source)
}

func TestRunValidateReportsIssues(t *testing.T) {
	dir := t.TempDir()
	good := writeResume(t, dir, "good.json", `{"personalInfo": {"fullName": "Ada"}}`)
	bad := writeResume(t, dir, "bad.json", `{"personalInfo": {"fullName": 42}, "skills": "go"}`)
	out := filepath.Join(dir, "validation.json")

	validateOpts.output = common.CommandConfig{OutputFile: out, OutputFormat: "json"}
	t.Cleanup(func() { validateOpts.output = common.CommandConfig{} })

	err := runValidate(testCommand(t, testConfig()), []string{good, bad})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidResume, errors.CodeOf(err))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var reports []types.ValidationReport
	require.NoError(t, json.Unmarshal(data, &reports))
	require.Len(t, reports, 2)
	assert.True(t, reports[0].Valid)
	assert.False(t, reports[1].Valid)
	assert.NotEmpty(t, reports[1].Issues)
}
