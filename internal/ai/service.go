package ai

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"atsscore/internal/config"
	"atsscore/internal/errors"
	"atsscore/internal/observability"
	"atsscore/internal/types"

	"github.com/go-playground/validator/v10"
)

// Service validates enhancement requests and runs them through an Enhancer
// with a timeout and metrics.
type Service struct {
	enhancer Enhancer
	timeout  time.Duration
	metrics  *observability.Metrics
	validate *validator.Validate
	logger   *errors.Logger
}

// NewService builds the configured provider. It returns an AI_DISABLED
// config error when no API key is set.
func NewService(ctx context.Context, cfg config.AIConfig, metrics *observability.Metrics, logger *errors.Logger) (*Service, error) {
	if !cfg.Enabled() {
		return nil, errors.NewConfigError(errors.ErrCodeAIDisabled, "text enhancement requires an AI API key", nil)
	}

	var enhancer Enhancer
	var err error
	switch cfg.Provider {
	case "gemini", "":
		enhancer, err = NewGeminiProvider(ctx, cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Debug("Enhancer initialized", "provider", cfg.Provider, "model", cfg.Model)
	}
	return NewServiceWithEnhancer(enhancer, cfg.Timeout, metrics, logger), nil
}

// NewServiceWithEnhancer wraps an existing Enhancer
func NewServiceWithEnhancer(enhancer Enhancer, timeout time.Duration, metrics *observability.Metrics, logger *errors.Logger) *Service {
	return &Service{
		enhancer: enhancer,
		timeout:  timeout,
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Enhance validates input and asks the enhancer for a rewrite
func (s *Service) Enhance(ctx context.Context, input types.EnhanceInput) (types.EnhanceOutput, error) {
	input.Text = strings.TrimSpace(input.Text)
	if err := s.validate.Struct(input); err != nil {
		return types.EnhanceOutput{}, errors.NewValidationError(errors.ErrCodeInvalidRequest, describeValidation(err), err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var output types.EnhanceOutput
	err := s.metrics.TrackEnhance(ctx, string(input.Section), func(ctx context.Context) *observability.EnhanceResult {
		out, usage, err := s.enhancer.Enhance(ctx, input)
		output = out
		result := &observability.EnhanceResult{Error: err}
		if usage != nil {
			result.TokenUsage = &observability.TokenUsage{
				InputTokens:  usage.InputTokens,
				OutputTokens: usage.OutputTokens,
				TotalTokens:  usage.TotalTokens,
			}
		}
		return result
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return types.EnhanceOutput{}, errors.NewAIError(errors.ErrCodeAITimeout, "text enhancement timed out", err)
		}
		if s.logger != nil {
			s.logger.LogError(err, "Text enhancement failed", "section", input.Section)
		}
		return types.EnhanceOutput{}, err
	}

	output.Section = input.Section
	output.Original = input.Text
	return output, nil
}

// ModelInfo reports the backing model's availability
func (s *Service) ModelInfo(ctx context.Context) *ModelInfo {
	return s.enhancer.ModelInfo(ctx)
}

// Stats returns breaker statistics when the enhancer exposes them
func (s *Service) Stats() map[string]any {
	if reporter, ok := s.enhancer.(interface{ BreakerStats() map[string]any }); ok {
		return reporter.BreakerStats()
	}
	return map[string]any{}
}

// Close releases the enhancer
func (s *Service) Close() error {
	return s.enhancer.Close()
}

// describeValidation turns validator errors into one readable sentence
func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fieldName(fe.Field())))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", fieldName(fe.Field()), fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", fieldName(fe.Field()), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fieldName(fe.Field())))
		}
	}
	return strings.Join(parts, "; ")
}

func fieldName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
